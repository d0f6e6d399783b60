package controllers

import (
	"strconv"

	"coreops-backend/models"
	"coreops-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// UserController контроллер для управления пользователями
type UserController struct {
	DB *gorm.DB
}

// NewUserController создает новый экземпляр UserController
func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// CreateUserRequest структура запроса создания пользователя
type CreateUserRequest struct {
	Name           string `json:"name"`
	Surname        string `json:"surname"`
	FullName       string `json:"full_name"`
	UserName       string `json:"user_name"`
	Mail           string `json:"mail"`
	Phone          string `json:"phone"`
	Password       string `json:"password"`
	DepartmentID   uint   `json:"department_id"`
	Role           int    `json:"role"`
	DepartmentRole int    `json:"department_role"`
}

// UpdateUserRequest структура запроса обновления пользователя
type UpdateUserRequest struct {
	Name           *string `json:"name"`
	Surname        *string `json:"surname"`
	FullName       *string `json:"full_name"`
	Mail           *string `json:"mail"`
	Phone          *string `json:"phone"`
	DepartmentID   *uint   `json:"department_id"`
	Role           *int    `json:"role"`
	DepartmentRole *int    `json:"department_role"`
	IsActive       *bool   `json:"is_active"`
}

// ListUsers возвращает всех живых пользователей
func (uc *UserController) ListUsers(c *fiber.Ctx) error {
	query := uc.DB.Where("is_deleted = ?", false)
	if departmentID := c.QueryInt("department_id"); departmentID > 0 {
		query = query.Where("department_id = ?", departmentID)
	}

	var users []models.User
	if err := query.Order("user_name ASC").Find(&users).Error; err != nil {
		return respondError(c, err)
	}
	return respondData(c, users)
}

// GetUser возвращает пользователя по идентификатору
func (uc *UserController) GetUser(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неверный идентификатор",
		})
	}

	var user models.User
	err = uc.DB.Where("id = ? AND is_deleted = ?", id, false).First(&user).Error
	if err != nil {
		return c.Status(404).JSON(fiber.Map{
			"success": false,
			"message": "Пользователь не найден",
		})
	}
	return respondData(c, user)
}

// CreateUser создает пользователя; доступно администратору и правлению
func (uc *UserController) CreateUser(c *fiber.Ctx) error {
	actor := utils.CurrentUser(c)
	if actor.Role != models.RoleAdmin && actor.Role != models.RoleBoard {
		return c.Status(403).JSON(fiber.Map{
			"success": false,
			"message": "Недостаточно прав",
		})
	}

	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неверный формат данных",
		})
	}
	if req.UserName == "" || len(req.Password) < 6 {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Логин и пароль (минимум 6 символов) обязательны",
		})
	}

	var existing models.User
	if err := uc.DB.Where("user_name = ?", req.UserName).First(&existing).Error; err == nil {
		return c.Status(409).JSON(fiber.Map{
			"success": false,
			"message": "Пользователь с таким логином уже существует",
		})
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return respondError(c, err)
	}

	role := req.Role
	if role == 0 {
		role = models.RoleUser
	}
	departmentRole := req.DepartmentRole
	if departmentRole == 0 {
		departmentRole = models.DeptRoleMember
	}

	user := models.User{
		Name:           req.Name,
		Surname:        req.Surname,
		FullName:       req.FullName,
		UserName:       req.UserName,
		Mail:           req.Mail,
		Phone:          req.Phone,
		PasswordHash:   hash,
		DepartmentID:   req.DepartmentID,
		Role:           role,
		DepartmentRole: departmentRole,
		IsActive:       true,
	}
	if err := uc.DB.Create(&user).Error; err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"data":    user,
	})
}

// UpdateUser обновляет пользователя; доступно администратору и правлению
func (uc *UserController) UpdateUser(c *fiber.Ctx) error {
	actor := utils.CurrentUser(c)
	if actor.Role != models.RoleAdmin && actor.Role != models.RoleBoard {
		return c.Status(403).JSON(fiber.Map{
			"success": false,
			"message": "Недостаточно прав",
		})
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неверный идентификатор",
		})
	}

	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неверный формат данных",
		})
	}

	var user models.User
	err = uc.DB.Where("id = ? AND is_deleted = ?", id, false).First(&user).Error
	if err != nil {
		return c.Status(404).JSON(fiber.Map{
			"success": false,
			"message": "Пользователь не найден",
		})
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Surname != nil {
		user.Surname = *req.Surname
	}
	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Mail != nil {
		user.Mail = *req.Mail
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.DepartmentID != nil {
		user.DepartmentID = *req.DepartmentID
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.DepartmentRole != nil {
		user.DepartmentRole = *req.DepartmentRole
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := uc.DB.Save(&user).Error; err != nil {
		return respondError(c, err)
	}
	return respondData(c, user)
}

// DeleteUser мягко удаляет пользователя; доступно администратору и правлению
func (uc *UserController) DeleteUser(c *fiber.Ctx) error {
	actor := utils.CurrentUser(c)
	if actor.Role != models.RoleAdmin && actor.Role != models.RoleBoard {
		return c.Status(403).JSON(fiber.Map{
			"success": false,
			"message": "Недостаточно прав",
		})
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неверный идентификатор",
		})
	}

	result := uc.DB.Model(&models.User{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("is_deleted", true)
	if result.Error != nil {
		return respondError(c, result.Error)
	}
	if result.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{
			"success": false,
			"message": "Пользователь не найден",
		})
	}
	return respondMessage(c, "Пользователь удален")
}
