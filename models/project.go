package models

import (
	"time"

	"gorm.io/gorm"
)

// Project представляет проект, объединяющий задачи
type Project struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Name         string     `json:"name" gorm:"not null;size:255"`
	Description  string     `json:"description" gorm:"type:text;default:''"`
	ManagerID    uint       `json:"manager_id" gorm:"index;not null"`
	DepartmentID uint       `json:"department_id" gorm:"index"`
	StartDate    *time.Time `json:"start_date"`
	DueDate      *time.Time `json:"due_date"`
	IsActive     bool       `json:"is_active" gorm:"default:true"`
	IsDeleted    bool       `json:"is_deleted" gorm:"default:false;index"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Связи
	Manager User `json:"manager" gorm:"foreignKey:ManagerID"`
}

// Member представляет участника проекта
type Member struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ProjectID uint      `json:"project_id" gorm:"index:idx_project_member,unique;not null"`
	UserID    uint      `json:"user_id" gorm:"index:idx_project_member,unique;not null"`
	CreatedAt time.Time `json:"created_at"`

	// Связи
	User User `json:"user" gorm:"foreignKey:UserID"`
}

// BeforeCreate хук для установки времени создания
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()
	return nil
}

// BeforeUpdate хук для обновления времени изменения
func (p *Project) BeforeUpdate(tx *gorm.DB) error {
	p.UpdatedAt = time.Now()
	return nil
}

// BeforeCreate хук для установки времени создания
func (m *Member) BeforeCreate(tx *gorm.DB) error {
	m.CreatedAt = time.Now()
	return nil
}
