package controllers

import (
	"strconv"

	"coreops-backend/services"
	"coreops-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// TaskController контроллер жизненного цикла задач
type TaskController struct {
	Tasks *services.TaskService
}

// NewTaskController создает новый экземпляр TaskController
func NewTaskController(tasks *services.TaskService) *TaskController {
	return &TaskController{Tasks: tasks}
}

// StageRequest структура запроса смены этапа
type StageRequest struct {
	Stage int `json:"stage"`
}

// CompletionRequest структура запроса смены статуса выполнения
type CompletionRequest struct {
	IsComplete bool `json:"is_complete"`
}

// DeleteRequest структура запроса мягкого удаления
type DeleteRequest struct {
	IsDeleted bool `json:"is_deleted"`
}

// taskID извлекает идентификатор задачи из пути
func taskID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return 0, err
	}
	return uint(id), nil
}

// ListTasks возвращает задачи проекта либо назначенные текущему пользователю
func (tc *TaskController) ListTasks(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)
	projectID := uint(c.QueryInt("project_id"))

	tasks, err := tc.Tasks.GetTasks(userID, projectID)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, tasks)
}

// ListObservedTasks возвращает задачи под наблюдением текущего пользователя
func (tc *TaskController) ListObservedTasks(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	tasks, err := tc.Tasks.GetObservedTasks(userID)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, tasks)
}

// CreateTask создает задачу
func (tc *TaskController) CreateTask(c *fiber.Ctx) error {
	actor := utils.CurrentUser(c)

	var input services.CreateTaskInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неверный формат данных",
		})
	}
	if input.Name == "" || input.ProjectID == 0 || input.AssignedTo == 0 {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Название, проект и исполнитель обязательны",
		})
	}

	task, err := tc.Tasks.CreateTask(actor, input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"data":    task,
	})
}

// UpdateTask обновляет поля задачи
func (tc *TaskController) UpdateTask(c *fiber.Ctx) error {
	actor := utils.CurrentUser(c)
	id, err := taskID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неверный идентификатор",
		})
	}

	var input services.UpdateTaskInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неверный формат данных",
		})
	}

	task, err := tc.Tasks.UpdateTask(actor, id, input)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, task)
}

// ChangeStage переводит задачу на новый этап
func (tc *TaskController) ChangeStage(c *fiber.Ctx) error {
	actor := utils.CurrentUser(c)
	id, err := taskID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неверный идентификатор",
		})
	}

	var req StageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неверный формат данных",
		})
	}

	task, err := tc.Tasks.ChangeStage(actor, id, req.Stage)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, task)
}

// ToggleCompletion меняет статус выполнения задачи
func (tc *TaskController) ToggleCompletion(c *fiber.Ctx) error {
	actor := utils.CurrentUser(c)
	id, err := taskID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неверный идентификатор",
		})
	}

	var req CompletionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неверный формат данных",
		})
	}

	task, err := tc.Tasks.ToggleCompletion(actor, id, req.IsComplete)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, task)
}

// DeactivateTask снимает задачу с доски
func (tc *TaskController) DeactivateTask(c *fiber.Ctx) error {
	actor := utils.CurrentUser(c)
	id, err := taskID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неверный идентификатор",
		})
	}

	task, err := tc.Tasks.DeactivateTask(actor, id)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, task)
}

// SetDeleted меняет флаг мягкого удаления задачи
func (tc *TaskController) SetDeleted(c *fiber.Ctx) error {
	actor := utils.CurrentUser(c)
	id, err := taskID(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неверный идентификатор",
		})
	}

	var req DeleteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неверный формат данных",
		})
	}

	task, err := tc.Tasks.SetDeleted(actor, id, req.IsDeleted)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, task)
}

// CheckTaskAuth сообщает, может ли пользователь создавать задачи в проекте
func (tc *TaskController) CheckTaskAuth(c *fiber.Ctx) error {
	actor := utils.CurrentUser(c)
	projectID := uint(c.QueryInt("project_id"))
	if projectID == 0 {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Идентификатор проекта обязателен",
		})
	}

	allowed, err := tc.Tasks.CheckTaskAuth(actor, projectID)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.Map{"authorized": allowed})
}
