package controllers

import (
	"strconv"

	"coreops-backend/models"
	"coreops-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// DepartmentController контроллер для управления отделами
type DepartmentController struct {
	DB *gorm.DB
}

// NewDepartmentController создает новый экземпляр DepartmentController
func NewDepartmentController(db *gorm.DB) *DepartmentController {
	return &DepartmentController{DB: db}
}

// DepartmentRequest структура запроса создания и обновления отдела
type DepartmentRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	HeadUserID  uint   `json:"head_user_id"`
}

// ListDepartments возвращает все живые отделы
func (dc *DepartmentController) ListDepartments(c *fiber.Ctx) error {
	var departments []models.Department
	err := dc.DB.Where("is_deleted = ?", false).
		Order("name ASC").
		Find(&departments).Error
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, departments)
}

// GetDepartment возвращает отдел по идентификатору
func (dc *DepartmentController) GetDepartment(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неверный идентификатор",
		})
	}

	var department models.Department
	err = dc.DB.Where("id = ? AND is_deleted = ?", id, false).
		First(&department).Error
	if err != nil {
		return c.Status(404).JSON(fiber.Map{
			"success": false,
			"message": "Отдел не найден",
		})
	}
	return respondData(c, department)
}

// CreateDepartment создает отдел; доступно администратору и правлению
func (dc *DepartmentController) CreateDepartment(c *fiber.Ctx) error {
	actor := utils.CurrentUser(c)
	if actor.Role != models.RoleAdmin && actor.Role != models.RoleBoard {
		return c.Status(403).JSON(fiber.Map{
			"success": false,
			"message": "Недостаточно прав",
		})
	}

	var req DepartmentRequest
	if err := c.BodyParser(&req); err != nil || req.Name == "" {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Название отдела обязательно",
		})
	}

	department := models.Department{
		Name:        req.Name,
		Description: req.Description,
		HeadUserID:  req.HeadUserID,
	}
	if err := dc.DB.Create(&department).Error; err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"data":    department,
	})
}

// UpdateDepartment обновляет отдел; доступно администратору и правлению
func (dc *DepartmentController) UpdateDepartment(c *fiber.Ctx) error {
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

	var req DepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неверный формат данных",
		})
	}

	var department models.Department
	err = dc.DB.Where("id = ? AND is_deleted = ?", id, false).
		First(&department).Error
	if err != nil {
		return c.Status(404).JSON(fiber.Map{
			"success": false,
			"message": "Отдел не найден",
		})
	}

	if req.Name != "" {
		department.Name = req.Name
	}
	department.Description = req.Description
	department.HeadUserID = req.HeadUserID

	if err := dc.DB.Save(&department).Error; err != nil {
		return respondError(c, err)
	}
	return respondData(c, department)
}

// DeleteDepartment мягко удаляет отдел; доступно администратору и правлению
func (dc *DepartmentController) DeleteDepartment(c *fiber.Ctx) error {
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

	result := dc.DB.Model(&models.Department{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("is_deleted", true)
	if result.Error != nil {
		return respondError(c, result.Error)
	}
	if result.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{
			"success": false,
			"message": "Отдел не найден",
		})
	}
	return respondMessage(c, "Отдел удален")
}
