package models

import (
	"time"

	"gorm.io/gorm"
)

// Этапы задачи
const (
	StageToDo       = 0
	StageInProgress = 1
	StageDone       = 2
	StageArchived   = 3
)

// StageLabels содержит отображаемые названия этапов для журнала активности
var StageLabels = [...]string{
	"Yapılacak Görevler",
	"Devam Eden",
	"Tamamlanan",
	"Arşiv",
}

// StageLabel возвращает название этапа или пустую строку для неизвестного значения
func StageLabel(stage int) string {
	if stage < 0 || stage >= len(StageLabels) {
		return ""
	}
	return StageLabels[stage]
}

// Task представляет задачу внутри проекта
type Task struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	ProjectID    uint       `json:"project_id" gorm:"index"`
	AssignedBy   uint       `json:"assigned_by" gorm:"index;not null"`
	AssignedTo   uint       `json:"assigned_to" gorm:"index;not null"`
	Name         string     `json:"name" gorm:"size:255;not null"`
	Description  string     `json:"description" gorm:"type:text;default:''"`
	Stage        int        `json:"stage" gorm:"default:0"`
	IsComplete   bool       `json:"is_complete" gorm:"default:false"`
	CommentCount int        `json:"comment_count" gorm:"default:0"`
	StartDate    *time.Time `json:"start_date"`
	DueDate      *time.Time `json:"due_date"`
	FinishDate   *time.Time `json:"finish_date"`
	UpdateUserID uint       `json:"update_user_id" gorm:"default:0"`
	IsActive     bool       `json:"is_active" gorm:"default:true"`
	IsDeleted    bool       `json:"is_deleted" gorm:"default:false;index"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Observer представляет наблюдателя задачи (получает уведомления и может комментировать)
type Observer struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	TaskID    uint      `json:"task_id" gorm:"index:idx_task_observer,unique;not null"`
	UserID    uint      `json:"user_id" gorm:"index:idx_task_observer,unique;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Comment представляет комментарий к задаче
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	TaskID    uint      `json:"task_id" gorm:"index;not null"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	Text      string    `json:"text" gorm:"type:text;not null"`
	IsDeleted bool      `json:"is_deleted" gorm:"default:false;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate хук для установки времени создания
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	t.CreatedAt = time.Now()
	t.UpdatedAt = time.Now()
	return nil
}

// BeforeUpdate хук для обновления времени изменения
func (t *Task) BeforeUpdate(tx *gorm.DB) error {
	t.UpdatedAt = time.Now()
	return nil
}

// BeforeCreate хук для установки времени создания
func (o *Observer) BeforeCreate(tx *gorm.DB) error {
	o.CreatedAt = time.Now()
	o.UpdatedAt = time.Now()
	return nil
}

// BeforeCreate хук для установки времени создания
func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	c.CreatedAt = time.Now()
	c.UpdatedAt = time.Now()
	return nil
}

// BeforeUpdate хук для обновления времени изменения
func (c *Comment) BeforeUpdate(tx *gorm.DB) error {
	c.UpdatedAt = time.Now()
	return nil
}
