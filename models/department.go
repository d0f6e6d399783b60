package models

import (
	"time"

	"gorm.io/gorm"
)

// Department представляет отдел компании
type Department struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null;size:255"`
	Description string    `json:"description" gorm:"type:text;default:''"`
	HeadUserID  uint      `json:"head_user_id" gorm:"default:0"`
	IsDeleted   bool      `json:"is_deleted" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BeforeCreate хук для установки времени создания
func (d *Department) BeforeCreate(tx *gorm.DB) error {
	d.CreatedAt = time.Now()
	d.UpdatedAt = time.Now()
	return nil
}

// BeforeUpdate хук для обновления времени изменения
func (d *Department) BeforeUpdate(tx *gorm.DB) error {
	d.UpdatedAt = time.Now()
	return nil
}
