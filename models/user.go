package models

import (
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Глобальные роли пользователей
const (
	RoleUser  = 1
	RoleAdmin = 2
	RoleBoard = 3 // обходит все проверки доменной авторизации
)

// Роли внутри отдела
const (
	DeptRoleMember = 1
	DeptRoleHead   = 2
)

// User представляет модель пользователя в системе
type User struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Name           string    `json:"name" gorm:"not null"`
	Surname        string    `json:"surname" gorm:"default:''"`
	FullName       string    `json:"full_name" gorm:"default:''"`
	UserName       string    `json:"user_name" gorm:"uniqueIndex;not null"`
	Mail           string    `json:"mail" gorm:"default:''"`
	Phone          string    `json:"phone" gorm:"default:''"`
	PasswordHash   string    `json:"-" gorm:"not null"` // Скрываем хэш пароля в JSON
	DepartmentID   uint      `json:"department_id" gorm:"index"`
	Role           int       `json:"role" gorm:"default:1"`
	DepartmentRole int       `json:"department_role" gorm:"default:1"`
	IsActive       bool      `json:"is_active" gorm:"default:true"`
	IsDeleted      bool      `json:"is_deleted" gorm:"default:false;index"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// DisplayName возвращает имя для уведомлений и снимков в журналах
func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.UserName
}

// IsDeptHead проверяет, является ли пользователь руководителем отдела
func (u *User) IsDeptHead() bool {
	return u.DepartmentRole == DeptRoleHead
}

// IsBoard проверяет привилегированную роль
func (u *User) IsBoard() bool {
	return u.Role == RoleBoard
}

// InitDB инициализирует подключение к базе данных
func InitDB() (*gorm.DB, error) {
	// Проверяем переменную окружения для выбора базы данных
	databaseURL := os.Getenv("DATABASE_URL")

	if databaseURL != "" {
		// Используем PostgreSQL для продакшена
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if err != nil {
			return nil, err
		}
		return db, nil
	}

	// Используем SQLite для разработки
	db, err := gorm.Open(sqlite.Open("coreops.db"), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	return db, nil
}

// BeforeCreate хук для установки времени создания
func (u *User) BeforeCreate(tx *gorm.DB) error {
	u.CreatedAt = time.Now()
	u.UpdatedAt = time.Now()
	return nil
}

// BeforeUpdate хук для обновления времени изменения
func (u *User) BeforeUpdate(tx *gorm.DB) error {
	u.UpdatedAt = time.Now()
	return nil
}
