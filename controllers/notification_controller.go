package controllers

import (
	"coreops-backend/services"
	"coreops-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// NotificationController контроллер подписок на push-уведомления.
// Подписка привязана к bearer-токену сессии.
type NotificationController struct {
	Notifier *services.NotificationService
}

// NewNotificationController создает новый экземпляр NotificationController
func NewNotificationController(notifier *services.NotificationService) *NotificationController {
	return &NotificationController{Notifier: notifier}
}

// SubscribeRequest структура запроса подписки
type SubscribeRequest struct {
	Endpoint string `json:"endpoint"`
	Auth     string `json:"auth"`
	P256dh   string `json:"p256dh"`
}

// Subscribe регистрирует подписку текущей сессии
func (nc *NotificationController) Subscribe(c *fiber.Ctx) error {
	token := utils.TokenFromHeader(c)
	if token == "" {
		return c.Status(401).JSON(fiber.Map{
			"success": false,
			"message": "Authorization header required",
		})
	}

	var req SubscribeRequest
	if err := c.BodyParser(&req); err != nil || req.Endpoint == "" {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Endpoint обязателен",
		})
	}

	userID := c.Locals("user_id").(uint)
	nc.Notifier.Subscribe(token, services.PushSubscription{
		UserID:   userID,
		Endpoint: req.Endpoint,
		Auth:     req.Auth,
		P256dh:   req.P256dh,
	})
	return respondMessage(c, "Подписка оформлена")
}

// Unsubscribe убирает подписку текущей сессии
func (nc *NotificationController) Unsubscribe(c *fiber.Ctx) error {
	token := utils.TokenFromHeader(c)
	if token == "" {
		return c.Status(401).JSON(fiber.Map{
			"success": false,
			"message": "Authorization header required",
		})
	}

	nc.Notifier.Unsubscribe(token)
	return respondMessage(c, "Подписка отменена")
}
