package routes

import (
	"coreops-backend/controllers"

	"github.com/gofiber/fiber/v2"
)

// SetupProjectRoutes настраивает маршруты для проектов и участников
func SetupProjectRoutes(app *fiber.App, projectController *controllers.ProjectController, authRequired fiber.Handler) {
	projects := app.Group("/projects", authRequired)

	// GET /projects - список проектов
	projects.Get("/", projectController.ListProjects)

	// GET /projects/:id - проект по идентификатору
	projects.Get("/:id", projectController.GetProject)

	// POST /projects - создание проекта
	projects.Post("/", projectController.CreateProject)

	// PUT /projects/:id - обновление проекта
	projects.Put("/:id", projectController.UpdateProject)

	// DELETE /projects/:id - мягкое удаление проекта
	projects.Delete("/:id", projectController.DeleteProject)

	// GET /projects/:id/members - участники проекта
	projects.Get("/:id/members", projectController.ListMembers)

	// POST /projects/:id/members - добавление участника
	projects.Post("/:id/members", projectController.AddMember)

	// DELETE /projects/:id/members/:userId - удаление участника
	projects.Delete("/:id/members/:userId", projectController.RemoveMember)
}
