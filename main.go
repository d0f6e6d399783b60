package main

import (
	"log"
	"os"
	"time"

	"coreops-backend/controllers"
	"coreops-backend/models"
	"coreops-backend/routes"
	"coreops-backend/services"
	"coreops-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/websocket/v2"
	"github.com/joho/godotenv"
)

func main() {
	// Переменные окружения из .env, если файл есть
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Инициализация базы данных
	db, err := models.InitDB()
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Автомиграция
	db.AutoMigrate(&models.User{}, &models.Department{}, &models.Project{}, &models.Member{}, &models.Task{}, &models.Observer{}, &models.Comment{}, &models.ActivityLog{}, &models.TodoItem{}, &models.ChatMessage{}, &models.InventoryItem{}, &models.InventoryCategory{}, &models.InventoryLocation{}, &models.InventoryLog{}, &models.Machine{}, &models.Material{}, &models.ProductionRecord{}, &models.ProductionLog{}, &models.AuthorizedUser{})

	// Создание Fiber приложения
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"success": false,
				"message": err.Error(),
				"code":    code,
			})
		},
	})

	// Middleware
	app.Use(logger.New())

	// CORS настройки
	corsOrigins := os.Getenv("CORS_ORIGINS")
	if corsOrigins == "" {
		corsOrigins = "http://localhost:3000,http://127.0.0.1:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	// Инициализация сервисов
	notifier := services.NewNotificationService(services.NewHTTPPushSender())
	authzService := services.NewAuthorizationService(db)
	taskService := services.NewTaskService(db, notifier)
	commentService := services.NewCommentService(db, notifier)
	logService := services.NewActivityLogService(db)
	chatService := services.NewChatService(db, notifier)
	inventoryService := services.NewInventoryService(db, authzService)
	productionService := services.NewProductionService(db, authzService)

	// Инициализация контроллеров
	authController := controllers.NewAuthController(db)
	userController := controllers.NewUserController(db)
	departmentController := controllers.NewDepartmentController(db)
	projectController := controllers.NewProjectController(db)
	todoController := controllers.NewTodoController(db)
	taskController := controllers.NewTaskController(taskService)
	commentController := controllers.NewCommentController(commentService)
	logController := controllers.NewLogController(logService)
	chatController := controllers.NewChatController(chatService)
	inventoryController := controllers.NewInventoryController(inventoryService)
	productionController := controllers.NewProductionController(productionService)
	authorizationController := controllers.NewAuthorizationController(authzService)
	notificationController := controllers.NewNotificationController(notifier)

	// Общий middleware аутентификации
	authRequired := utils.AuthMiddleware(db)

	// Настройка маршрутов
	routes.SetupAuthRoutes(app, authController, authRequired)
	routes.SetupUserRoutes(app, userController, authRequired)
	routes.SetupDepartmentRoutes(app, departmentController, authRequired)
	routes.SetupProjectRoutes(app, projectController, authRequired)
	routes.SetupTodoRoutes(app, todoController, authRequired)
	routes.SetupTaskRoutes(app, taskController, commentController, authRequired)
	routes.SetupLogRoutes(app, logController, authRequired)
	routes.SetupChatRoutes(app, chatController, authRequired)
	routes.SetupInventoryRoutes(app, inventoryController, authRequired)
	routes.SetupProductionRoutes(app, productionController, authRequired)
	routes.SetupAuthorizationRoutes(app, authorizationController, authRequired)
	routes.SetupNotificationRoutes(app, notificationController, authRequired)

	// Инициализация WebSocket хаба
	hub := services.NewHub(db, chatService)
	go hub.Run()

	// WebSocket маршрут
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		hub.HandleWebSocket(c)
	}))

	// Общий health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "ok",
			"message":   "CoreOps Backend is running",
			"timestamp": time.Now().Unix(),
		})
	})

	// Запуск сервера
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	log.Fatal(app.Listen(":" + port))
}
