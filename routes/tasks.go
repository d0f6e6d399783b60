package routes

import (
	"coreops-backend/controllers"

	"github.com/gofiber/fiber/v2"
)

// SetupTaskRoutes настраивает маршруты для задач и комментариев
func SetupTaskRoutes(app *fiber.App, taskController *controllers.TaskController, commentController *controllers.CommentController, authRequired fiber.Handler) {
	tasks := app.Group("/tasks", authRequired)

	// GET /tasks - задачи проекта либо назначенные текущему пользователю
	tasks.Get("/", taskController.ListTasks)

	// GET /tasks/observed - задачи под наблюдением
	tasks.Get("/observed", taskController.ListObservedTasks)

	// GET /tasks/auth - проверка права создавать задачи в проекте
	tasks.Get("/auth", taskController.CheckTaskAuth)

	// POST /tasks - создание задачи
	tasks.Post("/", taskController.CreateTask)

	// PUT /tasks/:id - обновление задачи
	tasks.Put("/:id", taskController.UpdateTask)

	// PUT /tasks/:id/stage - смена этапа
	tasks.Put("/:id/stage", taskController.ChangeStage)

	// PUT /tasks/:id/completion - смена статуса выполнения
	tasks.Put("/:id/completion", taskController.ToggleCompletion)

	// PUT /tasks/:id/deactivate - снятие задачи с доски
	tasks.Put("/:id/deactivate", taskController.DeactivateTask)

	// PUT /tasks/:id/delete - мягкое удаление и восстановление
	tasks.Put("/:id/delete", taskController.SetDeleted)

	// GET /tasks/:taskId/comments - комментарии задачи
	tasks.Get("/:taskId/comments", commentController.ListComments)

	// POST /tasks/:taskId/comments - добавление комментария
	tasks.Post("/:taskId/comments", commentController.CreateComment)

	comments := app.Group("/comments", authRequired)

	// PUT /comments/:id - правка комментария
	comments.Put("/:id", commentController.UpdateComment)

	// DELETE /comments/:id - мягкое удаление комментария
	comments.Delete("/:id", commentController.DeleteComment)
}
