package controllers

import (
	"strconv"

	"coreops-backend/services"
	"coreops-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// LogController контроллер журнала активности
type LogController struct {
	Logs *services.ActivityLogService
}

// NewLogController создает новый экземпляр LogController
func NewLogController(logs *services.ActivityLogService) *LogController {
	return &LogController{Logs: logs}
}

// LogUpdateRequest структура запроса правки описания записи
type LogUpdateRequest struct {
	Description string `json:"description"`
}

// GetUserLogs возвращает записи журнала текущего пользователя
func (lc *LogController) GetUserLogs(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)
	logID := uint(c.QueryInt("log_id"))

	logs, err := lc.Logs.GetUserLogs(userID, logID)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, logs)
}

// GetActivityFeed возвращает ленту активности
func (lc *LogController) GetActivityFeed(c *fiber.Ctx) error {
	actor := utils.CurrentUser(c)

	feed, err := lc.Logs.GetActivityFeed(actor)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, feed)
}

// UpdateLog правит описание записи журнала
func (lc *LogController) UpdateLog(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неверный идентификатор",
		})
	}

	var req LogUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неверный формат данных",
		})
	}

	logEntry, err := lc.Logs.UpdateDescription(userID, uint(id), req.Description)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, logEntry)
}

// DeleteLog удаляет запись журнала
func (lc *LogController) DeleteLog(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неверный идентификатор",
		})
	}

	if err := lc.Logs.DeleteLog(userID, uint(id)); err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, "Запись удалена")
}
