package models

import (
	"time"

	"gorm.io/gorm"
)

// Домены с собственными списками авторизованных пользователей
const (
	DomainInventory  = "inventory"
	DomainProduction = "production"
)

// AuthorizedUser представляет членство пользователя в доменном списке доступа.
// Пара (домен, пользователь) уникальна: повторное добавление не создаёт дубликат.
type AuthorizedUser struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Domain    string    `json:"domain" gorm:"size:32;index:idx_domain_user,unique;not null"`
	UserID    uint      `json:"user_id" gorm:"index:idx_domain_user,unique;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthorizedUserInfo представляет членство вместе с именем пользователя
type AuthorizedUserInfo struct {
	UserID   uint   `json:"user_id"`
	FullName string `json:"full_name"`
}

// BeforeCreate хук для установки времени создания
func (a *AuthorizedUser) BeforeCreate(tx *gorm.DB) error {
	a.CreatedAt = time.Now()
	return nil
}
