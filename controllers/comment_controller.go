package controllers

import (
	"strconv"

	"coreops-backend/services"
	"coreops-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// CommentController контроллер комментариев к задачам
type CommentController struct {
	Comments *services.CommentService
}

// NewCommentController создает новый экземпляр CommentController
func NewCommentController(comments *services.CommentService) *CommentController {
	return &CommentController{Comments: comments}
}

// CommentRequest структура запроса создания и обновления комментария
type CommentRequest struct {
	Text string `json:"text"`
}

// ListComments возвращает комментарии задачи
func (cc *CommentController) ListComments(c *fiber.Ctx) error {
	taskID, err := strconv.Atoi(c.Params("taskId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неверный идентификатор задачи",
		})
	}

	comments, err := cc.Comments.GetComments(uint(taskID))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, comments)
}

// CreateComment добавляет комментарий к задаче
func (cc *CommentController) CreateComment(c *fiber.Ctx) error {
	actor := utils.CurrentUser(c)
	taskID, err := strconv.Atoi(c.Params("taskId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неверный идентификатор задачи",
		})
	}

	var req CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неверный формат данных",
		})
	}

	comment, err := cc.Comments.CreateComment(actor, uint(taskID), req.Text)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"data":    comment,
	})
}

// UpdateComment меняет текст комментария
func (cc *CommentController) UpdateComment(c *fiber.Ctx) error {
	actor := utils.CurrentUser(c)
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неверный идентификатор",
		})
	}

	var req CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неверный формат данных",
		})
	}

	comment, err := cc.Comments.UpdateComment(actor, uint(id), req.Text)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, comment)
}

// DeleteComment мягко удаляет комментарий
func (cc *CommentController) DeleteComment(c *fiber.Ctx) error {
	actor := utils.CurrentUser(c)
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неверный идентификатор",
		})
	}

	if err := cc.Comments.DeleteComment(actor, uint(id)); err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, "Комментарий удален")
}
