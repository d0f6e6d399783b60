package controllers

import (
	"strconv"
	"time"

	"coreops-backend/services"
	"coreops-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// InventoryController контроллер складского учета
type InventoryController struct {
	Inventory *services.InventoryService
}

// NewInventoryController создает новый экземпляр InventoryController
func NewInventoryController(inventory *services.InventoryService) *InventoryController {
	return &InventoryController{Inventory: inventory}
}

// StockOutRequest структура запроса списания со склада
type StockOutRequest struct {
	Quantity int    `json:"quantity"`
	Purpose  string `json:"purpose"`
}

// NamedRequest структура запроса для категорий и мест хранения
type NamedRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Coordinates string `json:"coordinates"`
}

// parseDate разбирает дату фильтра в формате YYYY-MM-DD
func parseDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil
	}
	return &t
}

// ListItems возвращает складские позиции; параметр q включает поиск по названию
func (ic *InventoryController) ListItems(c *fiber.Ctx) error {
	if query := c.Query("q"); query != "" {
		items, err := ic.Inventory.SearchItems(query)
		if err != nil {
			return respondError(c, err)
		}
		return respondData(c, items)
	}

	items, err := ic.Inventory.ListItems()
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, items)
}

// GetItem возвращает позицию по идентификатору
func (ic *InventoryController) GetItem(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неверный идентификатор",
		})
	}

	item, err := ic.Inventory.GetItem(uint(id))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, item)
}

// CreateItem создает складскую позицию
func (ic *InventoryController) CreateItem(c *fiber.Ctx) error {
	actor := utils.CurrentUser(c)

	var input services.CreateItemInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неверный формат данных",
		})
	}

	item, err := ic.Inventory.CreateItem(actor, input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"data":    item,
	})
}

// UpdateItem обновляет складскую позицию
func (ic *InventoryController) UpdateItem(c *fiber.Ctx) error {
	actor := utils.CurrentUser(c)
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неверный идентификатор",
		})
	}

	var input services.UpdateItemInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неверный формат данных",
		})
	}

	item, err := ic.Inventory.UpdateItem(actor, uint(id), input)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, item)
}

// DeleteItem мягко удаляет складскую позицию
func (ic *InventoryController) DeleteItem(c *fiber.Ctx) error {
	actor := utils.CurrentUser(c)
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неверный идентификатор",
		})
	}

	if err := ic.Inventory.DeleteItem(actor, uint(id)); err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, "Позиция удалена")
}

// StockOut списывает количество со склада
func (ic *InventoryController) StockOut(c *fiber.Ctx) error {
	actor := utils.CurrentUser(c)
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неверный идентификатор",
		})
	}

	var req StockOutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неверный формат данных",
		})
	}

	item, err := ic.Inventory.StockOut(actor, uint(id), req.Quantity, req.Purpose)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, item)
}

// ListLogs возвращает журнал склада с фильтрами из query-параметров
func (ic *InventoryController) ListLogs(c *fiber.Ctx) error {
	filter := services.InventoryLogFilter{
		Action:        c.Query("action"),
		InventoryName: c.Query("inventory_name"),
		UserName:      c.Query("user_name"),
		DateFrom:      parseDate(c.Query("date_from")),
		DateTo:        parseDate(c.Query("date_to")),
	}

	logs, err := ic.Inventory.ListLogs(filter)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, logs)
}

// ListCategories возвращает категории склада
func (ic *InventoryController) ListCategories(c *fiber.Ctx) error {
	categories, err := ic.Inventory.ListCategories()
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, categories)
}

// CreateCategory создает категорию
func (ic *InventoryController) CreateCategory(c *fiber.Ctx) error {
	actor := utils.CurrentUser(c)

	var req NamedRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неверный формат данных",
		})
	}

	category, err := ic.Inventory.CreateCategory(actor, req.Name, req.Description)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"data":    category,
	})
}

// UpdateCategory обновляет категорию
func (ic *InventoryController) UpdateCategory(c *fiber.Ctx) error {
	actor := utils.CurrentUser(c)
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неверный идентификатор",
		})
	}

	var req NamedRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неверный формат данных",
		})
	}

	category, err := ic.Inventory.UpdateCategory(actor, uint(id), req.Name, req.Description)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, category)
}

// DeleteCategory мягко удаляет категорию
func (ic *InventoryController) DeleteCategory(c *fiber.Ctx) error {
	actor := utils.CurrentUser(c)
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неверный идентификатор",
		})
	}

	if err := ic.Inventory.DeleteCategory(actor, uint(id)); err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, "Категория удалена")
}

// ListLocations возвращает места хранения
func (ic *InventoryController) ListLocations(c *fiber.Ctx) error {
	locations, err := ic.Inventory.ListLocations()
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, locations)
}

// CreateLocation создает место хранения
func (ic *InventoryController) CreateLocation(c *fiber.Ctx) error {
	actor := utils.CurrentUser(c)

	var req NamedRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неверный формат данных",
		})
	}

	location, err := ic.Inventory.CreateLocation(actor, req.Name, req.Description, req.Coordinates)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"data":    location,
	})
}

// UpdateLocation обновляет место хранения
func (ic *InventoryController) UpdateLocation(c *fiber.Ctx) error {
	actor := utils.CurrentUser(c)
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неверный идентификатор",
		})
	}

	var req NamedRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неверный формат данных",
		})
	}

	location, err := ic.Inventory.UpdateLocation(actor, uint(id), req.Name, req.Description, req.Coordinates)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, location)
}

// DeleteLocation мягко удаляет место хранения
func (ic *InventoryController) DeleteLocation(c *fiber.Ctx) error {
	actor := utils.CurrentUser(c)
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Неверный идентификатор",
		})
	}

	if err := ic.Inventory.DeleteLocation(actor, uint(id)); err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, "Место хранения удалено")
}
