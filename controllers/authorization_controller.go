package controllers

import (
	"strconv"

	"coreops-backend/models"
	"coreops-backend/services"
	"coreops-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// AuthorizationController контроллер доменных списков доступа.
// Управлять списками может только правление и администратор.
type AuthorizationController struct {
	Authz *services.AuthorizationService
}

// NewAuthorizationController создает новый экземпляр AuthorizationController
func NewAuthorizationController(authz *services.AuthorizationService) *AuthorizationController {
	return &AuthorizationController{Authz: authz}
}

// GrantRequest структура запроса выдачи доступа
type GrantRequest struct {
	UserIDs []uint `json:"user_ids"`
}

// validDomain проверяет название домена
func validDomain(domain string) bool {
	return domain == models.DomainInventory || domain == models.DomainProduction
}

// canManageAccess проверяет право управления доменными списками
func canManageAccess(actor *models.User) bool {
	return actor.IsBoard() || actor.Role == models.RoleAdmin
}

// ListAuthorized возвращает членов доменного списка
func (ac *AuthorizationController) ListAuthorized(c *fiber.Ctx) error {
	domain := c.Params("domain")
	if !validDomain(domain) {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неизвестный домен",
		})
	}

	users, err := ac.Authz.ListAuthorized(domain)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, users)
}

// Grant добавляет пользователей в доменный список
func (ac *AuthorizationController) Grant(c *fiber.Ctx) error {
	actor := utils.CurrentUser(c)
	if !canManageAccess(actor) {
		return c.Status(403).JSON(fiber.Map{
			"success": false,
			"message": "Недостаточно прав",
		})
	}

	domain := c.Params("domain")
	if !validDomain(domain) {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неизвестный домен",
		})
	}

	var req GrantRequest
	if err := c.BodyParser(&req); err != nil || len(req.UserIDs) == 0 {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Список пользователей обязателен",
		})
	}

	created, existing, err := ac.Authz.Grant(domain, req.UserIDs)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"created":  created,
		"existing": existing,
	})
}

// Revoke убирает пользователя из доменного списка
func (ac *AuthorizationController) Revoke(c *fiber.Ctx) error {
	actor := utils.CurrentUser(c)
	if !canManageAccess(actor) {
		return c.Status(403).JSON(fiber.Map{
			"success": false,
			"message": "Недостаточно прав",
		})
	}

	domain := c.Params("domain")
	if !validDomain(domain) {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неизвестный домен",
		})
	}

	userID, err := strconv.Atoi(c.Params("userId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неверный идентификатор пользователя",
		})
	}

	if err := ac.Authz.Revoke(domain, uint(userID)); err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, "Доступ отозван")
}
