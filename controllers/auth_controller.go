package controllers

import (
	"time"

	"coreops-backend/models"
	"coreops-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AuthController контроллер для аутентификации
type AuthController struct {
	DB *gorm.DB
}

// NewAuthController создает новый экземпляр AuthController
func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

// LoginRequest структура запроса входа
type LoginRequest struct {
	UserName string `json:"user_name"`
	Password string `json:"password"`
}

// UpdatePasswordRequest структура запроса смены пароля
type UpdatePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// Login обрабатывает вход пользователя.
// Токен возвращается и в теле, и в cookie.
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неверный формат данных",
		})
	}
	if req.UserName == "" || req.Password == "" {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Логин и пароль обязательны",
		})
	}

	var user models.User
	err := ac.DB.Where("user_name = ? AND is_deleted = ?", req.UserName, false).
		First(&user).Error
	if err != nil {
		return c.Status(401).JSON(fiber.Map{
			"success": false,
			"message": "Неверный логин или пароль",
		})
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		return c.Status(401).JSON(fiber.Map{
			"success": false,
			"message": "Неверный логин или пароль",
		})
	}

	if !user.IsActive {
		return c.Status(401).JSON(fiber.Map{
			"success": false,
			"message": "Аккаунт заблокирован",
		})
	}

	token, err := utils.GenerateJWT(user.ID, user.UserName)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"message": "Ошибка при создании токена",
		})
	}

	c.Cookie(&fiber.Cookie{
		Name:     "token",
		Value:    token,
		Expires:  time.Now().Add(24 * time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Успешный вход в систему",
		"token":   token,
		"user":    user,
	})
}

// Logout очищает cookie с токеном
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return respondMessage(c, "Выход выполнен")
}

// Me возвращает текущего пользователя
func (ac *AuthController) Me(c *fiber.Ctx) error {
	return respondData(c, utils.CurrentUser(c))
}

// UpdatePassword меняет пароль текущего пользователя
func (ac *AuthController) UpdatePassword(c *fiber.Ctx) error {
	var req UpdatePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неверный формат данных",
		})
	}
	if len(req.NewPassword) < 6 {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Пароль должен содержать минимум 6 символов",
		})
	}

	user := utils.CurrentUser(c)
	if !utils.CheckPassword(user.PasswordHash, req.OldPassword) {
		return c.Status(401).JSON(fiber.Map{
			"success": false,
			"message": "Неверный текущий пароль",
		})
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"message": "Ошибка при смене пароля",
		})
	}

	if err := ac.DB.Model(user).Update("password_hash", hash).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"message": "Ошибка при смене пароля",
		})
	}
	return respondMessage(c, "Пароль обновлен")
}
