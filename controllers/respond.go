package controllers

import (
	"errors"

	"coreops-backend/services"

	"github.com/gofiber/fiber/v2"
)

// respondError переводит ошибки сервисов в HTTP-статусы
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return c.Status(404).JSON(fiber.Map{
			"success": false,
			"message": "Запись не найдена",
		})
	case errors.Is(err, services.ErrPermissionDenied):
		return c.Status(403).JSON(fiber.Map{
			"success": false,
			"message": "Недостаточно прав",
		})
	case errors.Is(err, services.ErrValidation):
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неверные данные запроса",
		})
	case errors.Is(err, services.ErrInsufficientStock):
		return c.Status(409).JSON(fiber.Map{
			"success": false,
			"message": "Недостаточный остаток на складе",
		})
	default:
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"message": "Внутренняя ошибка сервера",
		})
	}
}

// respondData возвращает успешный ответ с данными
func respondData(c *fiber.Ctx, data interface{}) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

// respondMessage возвращает успешный ответ с сообщением
func respondMessage(c *fiber.Ctx, message string) error {
	return c.JSON(fiber.Map{
		"success": true,
		"message": message,
	})
}
