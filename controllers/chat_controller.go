package controllers

import (
	"strconv"

	"coreops-backend/services"
	"coreops-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// ChatController REST-контроллер чата.
// Работает поверх того же сервиса, что и WebSocket-хаб.
type ChatController struct {
	Chat *services.ChatService
}

// NewChatController создает новый экземпляр ChatController
func NewChatController(chat *services.ChatService) *ChatController {
	return &ChatController{Chat: chat}
}

// SendMessageRequest структура запроса отправки сообщения
type SendMessageRequest struct {
	ReceiverID uint   `json:"receiver_id"`
	Message    string `json:"message"`
}

// ListChatableUsers возвращает список собеседников
func (cc *ChatController) ListChatableUsers(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	users, err := cc.Chat.ChatableUsers(userID)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, users)
}

// GetHistory возвращает переписку с собеседником
func (cc *ChatController) GetHistory(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)
	peerID, err := strconv.Atoi(c.Params("peerId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неверный идентификатор собеседника",
		})
	}

	messages, err := cc.Chat.History(userID, uint(peerID))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, messages)
}

// GetUnread возвращает непрочитанные сообщения и их количество
func (cc *ChatController) GetUnread(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	messages, count, err := cc.Chat.UnreadMessages(userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    messages,
		"count":   count,
	})
}

// SendMessage отправляет сообщение
func (cc *ChatController) SendMessage(c *fiber.Ctx) error {
	actor := utils.CurrentUser(c)

	var req SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неверный формат данных",
		})
	}

	message, err := cc.Chat.Send(actor, req.ReceiverID, req.Message)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"data":    message,
	})
}

// MarkRead помечает сообщение прочитанным
func (cc *ChatController) MarkRead(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неверный идентификатор",
		})
	}

	if _, err := cc.Chat.MarkRead(userID, uint(id)); err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, "Сообщение прочитано")
}
