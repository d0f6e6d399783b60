package routes

import (
	"coreops-backend/controllers"

	"github.com/gofiber/fiber/v2"
)

// SetupProductionRoutes настраивает маршруты учета выработки
func SetupProductionRoutes(app *fiber.App, productionController *controllers.ProductionController, authRequired fiber.Handler) {
	production := app.Group("/production", authRequired)

	// GET /production/records - записи выработки
	production.Get("/records", productionController.ListRecords)

	// POST /production/records - запись выработки по составному ключу
	production.Post("/records", productionController.UpsertRecord)

	// DELETE /production/records/:id - мягкое удаление записи
	production.Delete("/records/:id", productionController.DeleteRecord)

	// GET /production/logs - журнал производства
	production.Get("/logs", productionController.ListLogs)

	// GET /production/totals/daily - выработка по дням
	production.Get("/totals/daily", productionController.DailyTotals)

	// GET /production/totals/machines - выработка по станкам
	production.Get("/totals/machines", productionController.MachineTotals)

	// GET /production/totals/materials - выработка по материалам
	production.Get("/totals/materials", productionController.MaterialTotals)

	// GET /production/machines - станки
	production.Get("/machines", productionController.ListMachines)

	// POST /production/machines - создание станка
	production.Post("/machines", productionController.CreateMachine)

	// PUT /production/machines/:id - обновление станка
	production.Put("/machines/:id", productionController.UpdateMachine)

	// DELETE /production/machines/:id - мягкое удаление станка
	production.Delete("/machines/:id", productionController.DeleteMachine)

	// GET /production/materials - материалы
	production.Get("/materials", productionController.ListMaterials)

	// POST /production/materials - создание материала
	production.Post("/materials", productionController.CreateMaterial)

	// PUT /production/materials/:id - обновление материала
	production.Put("/materials/:id", productionController.UpdateMaterial)

	// DELETE /production/materials/:id - мягкое удаление материала
	production.Delete("/materials/:id", productionController.DeleteMaterial)
}
