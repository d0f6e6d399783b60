package models

import (
	"time"

	"gorm.io/gorm"
)

// TodoItem представляет запись личного списка дел
type TodoItem struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	UserID        uint      `json:"user_id" gorm:"index;not null"`
	Title         string    `json:"title" gorm:"size:255;not null"`
	Description   string    `json:"description" gorm:"type:text;default:''"`
	IsComplete    bool      `json:"is_complete" gorm:"default:false"`
	PriorityLevel int       `json:"priority_level" gorm:"default:0"`
	IsDeleted     bool      `json:"is_deleted" gorm:"default:false;index"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// BeforeCreate хук для установки времени создания
func (t *TodoItem) BeforeCreate(tx *gorm.DB) error {
	t.CreatedAt = time.Now()
	t.UpdatedAt = time.Now()
	return nil
}

// BeforeUpdate хук для обновления времени изменения
func (t *TodoItem) BeforeUpdate(tx *gorm.DB) error {
	t.UpdatedAt = time.Now()
	return nil
}
