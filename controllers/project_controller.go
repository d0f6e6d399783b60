package controllers

import (
	"strconv"
	"time"

	"coreops-backend/models"
	"coreops-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ProjectController контроллер для управления проектами и их участниками
type ProjectController struct {
	DB *gorm.DB
}

// NewProjectController создает новый экземпляр ProjectController
func NewProjectController(db *gorm.DB) *ProjectController {
	return &ProjectController{DB: db}
}

// ProjectRequest структура запроса создания и обновления проекта
type ProjectRequest struct {
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	ManagerID    uint       `json:"manager_id"`
	DepartmentID uint       `json:"department_id"`
	StartDate    *time.Time `json:"start_date"`
	DueDate      *time.Time `json:"due_date"`
}

// MemberRequest структура запроса добавления участника
type MemberRequest struct {
	UserID uint `json:"user_id"`
}

// canManageProject проверяет право управления проектом
func canManageProject(actor *models.User, project *models.Project) bool {
	return project.ManagerID == actor.ID || actor.IsBoard() || actor.Role == models.RoleAdmin
}

// ListProjects возвращает живые проекты
func (pc *ProjectController) ListProjects(c *fiber.Ctx) error {
	query := pc.DB.Preload("Manager").Where("is_deleted = ?", false)
	if departmentID := c.QueryInt("department_id"); departmentID > 0 {
		query = query.Where("department_id = ?", departmentID)
	}

	var projects []models.Project
	if err := query.Order("created_at DESC").Find(&projects).Error; err != nil {
		return respondError(c, err)
	}
	return respondData(c, projects)
}

// GetProject возвращает проект по идентификатору
func (pc *ProjectController) GetProject(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неверный идентификатор",
		})
	}

	var project models.Project
	err = pc.DB.Preload("Manager").
		Where("id = ? AND is_deleted = ?", id, false).
		First(&project).Error
	if err != nil {
		return c.Status(404).JSON(fiber.Map{
			"success": false,
			"message": "Проект не найден",
		})
	}
	return respondData(c, project)
}

// CreateProject создает проект; обычному пользователю недоступно
func (pc *ProjectController) CreateProject(c *fiber.Ctx) error {
	actor := utils.CurrentUser(c)
	if actor.Role == models.RoleUser && !actor.IsDeptHead() {
		return c.Status(403).JSON(fiber.Map{
			"success": false,
			"message": "Недостаточно прав",
		})
	}

	var req ProjectRequest
	if err := c.BodyParser(&req); err != nil || req.Name == "" {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Название проекта обязательно",
		})
	}

	managerID := req.ManagerID
	if managerID == 0 {
		managerID = actor.ID
	}
	departmentID := req.DepartmentID
	if departmentID == 0 {
		departmentID = actor.DepartmentID
	}

	project := models.Project{
		Name:         req.Name,
		Description:  req.Description,
		ManagerID:    managerID,
		DepartmentID: departmentID,
		StartDate:    req.StartDate,
		DueDate:      req.DueDate,
		IsActive:     true,
	}
	if err := pc.DB.Create(&project).Error; err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"data":    project,
	})
}

// UpdateProject обновляет проект; доступно менеджеру проекта и правлению
func (pc *ProjectController) UpdateProject(c *fiber.Ctx) error {
	actor := utils.CurrentUser(c)
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неверный идентификатор",
		})
	}

	var project models.Project
	err = pc.DB.Where("id = ? AND is_deleted = ?", id, false).
		First(&project).Error
	if err != nil {
		return c.Status(404).JSON(fiber.Map{
			"success": false,
			"message": "Проект не найден",
		})
	}

	if !canManageProject(actor, &project) {
		return c.Status(403).JSON(fiber.Map{
			"success": false,
			"message": "Недостаточно прав",
		})
	}

	var req ProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неверный формат данных",
		})
	}

	if req.Name != "" {
		project.Name = req.Name
	}
	project.Description = req.Description
	if req.ManagerID != 0 {
		project.ManagerID = req.ManagerID
	}
	if req.DepartmentID != 0 {
		project.DepartmentID = req.DepartmentID
	}
	if req.StartDate != nil {
		project.StartDate = req.StartDate
	}
	if req.DueDate != nil {
		project.DueDate = req.DueDate
	}

	if err := pc.DB.Save(&project).Error; err != nil {
		return respondError(c, err)
	}
	return respondData(c, project)
}

// DeleteProject мягко удаляет проект; доступно менеджеру проекта и правлению
func (pc *ProjectController) DeleteProject(c *fiber.Ctx) error {
	actor := utils.CurrentUser(c)
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неверный идентификатор",
		})
	}

	var project models.Project
	err = pc.DB.Where("id = ? AND is_deleted = ?", id, false).
		First(&project).Error
	if err != nil {
		return c.Status(404).JSON(fiber.Map{
			"success": false,
			"message": "Проект не найден",
		})
	}

	if !canManageProject(actor, &project) {
		return c.Status(403).JSON(fiber.Map{
			"success": false,
			"message": "Недостаточно прав",
		})
	}

	project.IsDeleted = true
	if err := pc.DB.Save(&project).Error; err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, "Проект удален")
}

// ListMembers возвращает участников проекта
func (pc *ProjectController) ListMembers(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неверный идентификатор",
		})
	}

	var members []models.Member
	err = pc.DB.Preload("User").Where("project_id = ?", id).Find(&members).Error
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, members)
}

// AddMember добавляет участника в проект; повторное добавление не ошибка
func (pc *ProjectController) AddMember(c *fiber.Ctx) error {
	actor := utils.CurrentUser(c)
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неверный идентификатор",
		})
	}

	var project models.Project
	err = pc.DB.Where("id = ? AND is_deleted = ?", id, false).
		First(&project).Error
	if err != nil {
		return c.Status(404).JSON(fiber.Map{
			"success": false,
			"message": "Проект не найден",
		})
	}

	if !canManageProject(actor, &project) {
		return c.Status(403).JSON(fiber.Map{
			"success": false,
			"message": "Недостаточно прав",
		})
	}

	var req MemberRequest
	if err := c.BodyParser(&req); err != nil || req.UserID == 0 {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Идентификатор пользователя обязателен",
		})
	}

	member := models.Member{ProjectID: project.ID, UserID: req.UserID}
	err = pc.DB.Where("project_id = ? AND user_id = ?", project.ID, req.UserID).
		FirstOrCreate(&member).Error
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"data":    member,
	})
}

// RemoveMember убирает участника из проекта
func (pc *ProjectController) RemoveMember(c *fiber.Ctx) error {
	actor := utils.CurrentUser(c)
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неверный идентификатор",
		})
	}
	userID, err := strconv.Atoi(c.Params("userId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неверный идентификатор пользователя",
		})
	}

	var project models.Project
	err = pc.DB.Where("id = ? AND is_deleted = ?", id, false).
		First(&project).Error
	if err != nil {
		return c.Status(404).JSON(fiber.Map{
			"success": false,
			"message": "Проект не найден",
		})
	}

	if !canManageProject(actor, &project) {
		return c.Status(403).JSON(fiber.Map{
			"success": false,
			"message": "Недостаточно прав",
		})
	}

	result := pc.DB.Where("project_id = ? AND user_id = ?", id, userID).
		Delete(&models.Member{})
	if result.Error != nil {
		return respondError(c, result.Error)
	}
	if result.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{
			"success": false,
			"message": "Участник не найден",
		})
	}
	return respondMessage(c, "Участник удален")
}
