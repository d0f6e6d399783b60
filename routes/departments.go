package routes

import (
	"coreops-backend/controllers"

	"github.com/gofiber/fiber/v2"
)

// SetupDepartmentRoutes настраивает маршруты для отделов
func SetupDepartmentRoutes(app *fiber.App, departmentController *controllers.DepartmentController, authRequired fiber.Handler) {
	departments := app.Group("/departments", authRequired)

	// GET /departments - список отделов
	departments.Get("/", departmentController.ListDepartments)

	// GET /departments/:id - отдел по идентификатору
	departments.Get("/:id", departmentController.GetDepartment)

	// POST /departments - создание отдела
	departments.Post("/", departmentController.CreateDepartment)

	// PUT /departments/:id - обновление отдела
	departments.Put("/:id", departmentController.UpdateDepartment)

	// DELETE /departments/:id - мягкое удаление отдела
	departments.Delete("/:id", departmentController.DeleteDepartment)
}
