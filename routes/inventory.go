package routes

import (
	"coreops-backend/controllers"

	"github.com/gofiber/fiber/v2"
)

// SetupInventoryRoutes настраивает маршруты складского учета
func SetupInventoryRoutes(app *fiber.App, inventoryController *controllers.InventoryController, authRequired fiber.Handler) {
	inventory := app.Group("/inventory", authRequired)

	// GET /inventory/items - складские позиции (параметр q для поиска)
	inventory.Get("/items", inventoryController.ListItems)

	// GET /inventory/items/:id - позиция по идентификатору
	inventory.Get("/items/:id", inventoryController.GetItem)

	// POST /inventory/items - создание позиции
	inventory.Post("/items", inventoryController.CreateItem)

	// PUT /inventory/items/:id - обновление позиции
	inventory.Put("/items/:id", inventoryController.UpdateItem)

	// DELETE /inventory/items/:id - мягкое удаление позиции
	inventory.Delete("/items/:id", inventoryController.DeleteItem)

	// POST /inventory/items/:id/stock-out - списание со склада
	inventory.Post("/items/:id/stock-out", inventoryController.StockOut)

	// GET /inventory/logs - журнал склада
	inventory.Get("/logs", inventoryController.ListLogs)

	// GET /inventory/categories - категории
	inventory.Get("/categories", inventoryController.ListCategories)

	// POST /inventory/categories - создание категории
	inventory.Post("/categories", inventoryController.CreateCategory)

	// PUT /inventory/categories/:id - обновление категории
	inventory.Put("/categories/:id", inventoryController.UpdateCategory)

	// DELETE /inventory/categories/:id - мягкое удаление категории
	inventory.Delete("/categories/:id", inventoryController.DeleteCategory)

	// GET /inventory/locations - места хранения
	inventory.Get("/locations", inventoryController.ListLocations)

	// POST /inventory/locations - создание места хранения
	inventory.Post("/locations", inventoryController.CreateLocation)

	// PUT /inventory/locations/:id - обновление места хранения
	inventory.Put("/locations/:id", inventoryController.UpdateLocation)

	// DELETE /inventory/locations/:id - мягкое удаление места хранения
	inventory.Delete("/locations/:id", inventoryController.DeleteLocation)
}
