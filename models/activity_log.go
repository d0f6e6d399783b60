package models

import (
	"time"

	"gorm.io/gorm"
)

// Типы записей журнала активности
const (
	ActivityTypeStage   = 1 // смена этапа
	ActivityTypeComment = 2 // комментарий или смена статуса выполнения
)

// ActivityLog представляет запись журнала активности по задаче.
// Имена и назначение фиксируются на момент события и больше не обновляются,
// чтобы журнал отражал историю даже после переименований.
type ActivityLog struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	TaskID      uint      `json:"task_id" gorm:"index;not null"`
	UserID      uint      `json:"user_id" gorm:"index;not null"`
	Stage       int       `json:"stage" gorm:"default:0"`
	Type        int       `json:"type" gorm:"index;not null"`
	Description string    `json:"description" gorm:"type:text;default:''"`
	AssignedBy  uint      `json:"assigned_by"`
	AssignedTo  uint      `json:"assigned_to"`
	TriggeredBy string    `json:"triggered_by" gorm:"size:255"` // снимок имени на момент события
	TaskName    string    `json:"task_name" gorm:"size:255"`    // снимок названия задачи
	CommentID   uint      `json:"comment_id" gorm:"default:0"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BeforeCreate хук для установки времени создания
func (l *ActivityLog) BeforeCreate(tx *gorm.DB) error {
	l.CreatedAt = time.Now()
	l.UpdatedAt = time.Now()
	return nil
}
