package main

import (
	"errors"
	"sync"
	"time"

	"coreops-backend/models"
	"coreops-backend/services"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB создает тестовую базу данных в памяти
func setupTestDB() *gorm.DB {
	db, _ := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	db.AutoMigrate(&models.User{}, &models.Department{}, &models.Project{}, &models.Member{}, &models.Task{}, &models.Observer{}, &models.Comment{}, &models.ActivityLog{}, &models.TodoItem{}, &models.ChatMessage{}, &models.InventoryItem{}, &models.InventoryCategory{}, &models.InventoryLocation{}, &models.InventoryLog{}, &models.Machine{}, &models.Material{}, &models.ProductionRecord{}, &models.ProductionLog{}, &models.AuthorizedUser{})
	return db
}

// createTestUsers создает рядового сотрудника, руководителя отдела и члена
// правления
func createTestUsers(db *gorm.DB) (*models.User, *models.User, *models.User) {
	member := models.User{
		Name:           "Test",
		FullName:       "Test Member",
		UserName:       "member",
		PasswordHash:   "hash1",
		DepartmentID:   1,
		Role:           models.RoleUser,
		DepartmentRole: models.DeptRoleMember,
		IsActive:       true,
	}
	head := models.User{
		Name:           "Test",
		FullName:       "Test Head",
		UserName:       "head",
		PasswordHash:   "hash2",
		DepartmentID:   1,
		Role:           models.RoleAdmin,
		DepartmentRole: models.DeptRoleHead,
		IsActive:       true,
	}
	board := models.User{
		Name:           "Test",
		FullName:       "Test Board",
		UserName:       "board",
		PasswordHash:   "hash3",
		DepartmentID:   1,
		Role:           models.RoleBoard,
		DepartmentRole: models.DeptRoleMember,
		IsActive:       true,
	}

	db.Create(&member)
	db.Create(&head)
	db.Create(&board)

	return &member, &head, &board
}

// generateTestJWT создает тестовый JWT токен для указанного пользователя
func generateTestJWT(userID uint) string {
	secretKey := "coreops-secret-key-change-in-production"
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(time.Hour * 24).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, _ := token.SignedString([]byte(secretKey))
	return tokenString
}

// failWritesTo заставляет вставки в указанную таблицу падать,
// имитируя сбой посреди транзакции
func failWritesTo(db *gorm.DB, table string) {
	db.Callback().Create().Before("gorm:create").Register("fail_writes_"+table, func(tx *gorm.DB) {
		if tx.Statement.Table == table {
			tx.AddError(errors.New("write failed"))
		}
	})
}

// recordingSender собирает доставленные уведомления для проверок
type recordingSender struct {
	mu      sync.Mutex
	sent    []services.PushSubscription
	failFor string // endpoint, доставка на который падает
}

func (r *recordingSender) Send(sub services.PushSubscription, payload []byte) error {
	if r.failFor != "" && sub.Endpoint == r.failFor {
		return &timeoutError{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, sub)
	return nil
}

func (r *recordingSender) sentCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sent)
}

type timeoutError struct{}

func (e *timeoutError) Error() string { return "delivery timeout" }

// newTestNotifier создает диспетчер уведомлений с записывающим отправителем
func newTestNotifier() (*services.NotificationService, *recordingSender) {
	sender := &recordingSender{}
	return services.NewNotificationService(sender), sender
}
