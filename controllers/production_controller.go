package controllers

import (
	"strconv"

	"coreops-backend/services"
	"coreops-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// ProductionController контроллер учета выработки
type ProductionController struct {
	Production *services.ProductionService
}

// NewProductionController создает новый экземпляр ProductionController
func NewProductionController(production *services.ProductionService) *ProductionController {
	return &ProductionController{Production: production}
}

// MachineRequest структура запроса создания и обновления станка
type MachineRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// MaterialRequest структура запроса создания и обновления материала
type MaterialRequest struct {
	Name string `json:"name"`
	Unit string `json:"unit"`
}

// UpsertRecord записывает выработку по составному ключу
func (pc *ProductionController) UpsertRecord(c *fiber.Ctx) error {
	actor := utils.CurrentUser(c)

	var input services.UpsertRecordInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неверный формат данных",
		})
	}

	record, err := pc.Production.UpsertRecord(actor, input)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, record)
}

// DeleteRecord мягко удаляет запись выработки
func (pc *ProductionController) DeleteRecord(c *fiber.Ctx) error {
	actor := utils.CurrentUser(c)
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неверный идентификатор",
		})
	}

	if err := pc.Production.DeleteRecord(actor, uint(id)); err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, "Запись удалена")
}

// ListRecords возвращает записи выработки по фильтрам
func (pc *ProductionController) ListRecords(c *fiber.Ctx) error {
	filter := services.RecordFilter{
		MachineID:  uint(c.QueryInt("machine_id")),
		MaterialID: uint(c.QueryInt("material_id")),
		DateFrom:   c.Query("date_from"),
		DateTo:     c.Query("date_to"),
		Shift:      c.Query("shift"),
	}

	records, err := pc.Production.ListRecords(filter)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, records)
}

// ListLogs возвращает журнал производства с фильтрами
func (pc *ProductionController) ListLogs(c *fiber.Ctx) error {
	filter := services.ProductionLogFilter{
		Action:       c.Query("action"),
		MachineName:  c.Query("machine_name"),
		MaterialName: c.Query("material_name"),
		UserName:     c.Query("user_name"),
		DateFrom:     parseDate(c.Query("date_from")),
		DateTo:       parseDate(c.Query("date_to")),
	}

	logs, err := pc.Production.ListLogs(filter)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, logs)
}

// DailyTotals возвращает суммарную выработку по дням
func (pc *ProductionController) DailyTotals(c *fiber.Ctx) error {
	totals, err := pc.Production.DailyTotals(c.Query("date_from"), c.Query("date_to"))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, totals)
}

// MachineTotals возвращает суммарную выработку по станкам
func (pc *ProductionController) MachineTotals(c *fiber.Ctx) error {
	totals, err := pc.Production.MachineTotals(c.Query("date_from"), c.Query("date_to"))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, totals)
}

// MaterialTotals возвращает суммарную выработку по материалам
func (pc *ProductionController) MaterialTotals(c *fiber.Ctx) error {
	totals, err := pc.Production.MaterialTotals(c.Query("date_from"), c.Query("date_to"))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, totals)
}

// ListMachines возвращает станки
func (pc *ProductionController) ListMachines(c *fiber.Ctx) error {
	machines, err := pc.Production.ListMachines()
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, machines)
}

// CreateMachine создает станок
func (pc *ProductionController) CreateMachine(c *fiber.Ctx) error {
	actor := utils.CurrentUser(c)

	var req MachineRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неверный формат данных",
		})
	}

	machine, err := pc.Production.CreateMachine(actor, req.Name, req.Description)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"data":    machine,
	})
}

// UpdateMachine обновляет станок
func (pc *ProductionController) UpdateMachine(c *fiber.Ctx) error {
	actor := utils.CurrentUser(c)
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неверный идентификатор",
		})
	}

	var req MachineRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неверный формат данных",
		})
	}

	machine, err := pc.Production.UpdateMachine(actor, uint(id), req.Name, req.Description)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, machine)
}

// DeleteMachine мягко удаляет станок
func (pc *ProductionController) DeleteMachine(c *fiber.Ctx) error {
	actor := utils.CurrentUser(c)
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неверный идентификатор",
		})
	}

	if err := pc.Production.DeleteMachine(actor, uint(id)); err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, "Станок удален")
}

// ListMaterials возвращает материалы
func (pc *ProductionController) ListMaterials(c *fiber.Ctx) error {
	materials, err := pc.Production.ListMaterials()
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, materials)
}

// CreateMaterial создает материал
func (pc *ProductionController) CreateMaterial(c *fiber.Ctx) error {
	actor := utils.CurrentUser(c)

	var req MaterialRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неверный формат данных",
		})
	}

	material, err := pc.Production.CreateMaterial(actor, req.Name, req.Unit)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"data":    material,
	})
}

// UpdateMaterial обновляет материал
func (pc *ProductionController) UpdateMaterial(c *fiber.Ctx) error {
	actor := utils.CurrentUser(c)
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неверный идентификатор",
		})
	}

	var req MaterialRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неверный формат данных",
		})
	}

	material, err := pc.Production.UpdateMaterial(actor, uint(id), req.Name, req.Unit)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, material)
}

// DeleteMaterial мягко удаляет материал
func (pc *ProductionController) DeleteMaterial(c *fiber.Ctx) error {
	actor := utils.CurrentUser(c)
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неверный идентификатор",
		})
	}

	if err := pc.Production.DeleteMaterial(actor, uint(id)); err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, "Материал удален")
}
