package models

import (
	"time"

	"gorm.io/gorm"
)

// ChatMessage представляет прямое сообщение между двумя пользователями.
// Сообщение неизменяемо, кроме флага прочтения, который меняется ровно один раз.
type ChatMessage struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	SenderID   uint      `json:"sender_id" gorm:"index;not null"`
	ReceiverID uint      `json:"receiver_id" gorm:"index;not null"`
	Message    string    `json:"message" gorm:"type:text;not null"`
	IsRead     bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt  time.Time `json:"created_at"`
}

// ChatableUser представляет собеседника в списке чатов с количеством
// непрочитанных сообщений от него
type ChatableUser struct {
	ID                 uint   `json:"id"`
	FullName           string `json:"full_name"`
	UserName           string `json:"user_name"`
	DepartmentID       uint   `json:"department_id"`
	UnreadMessageCount int64  `json:"unread_message_count"`
}

// BeforeCreate хук для установки времени создания
func (m *ChatMessage) BeforeCreate(tx *gorm.DB) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	return nil
}

// CountUnread возвращает количество непрочитанных сообщений пользователя
func CountUnread(db *gorm.DB, receiverID uint) (int64, error) {
	var count int64
	err := db.Model(&ChatMessage{}).
		Where("receiver_id = ? AND is_read = ?", receiverID, false).
		Count(&count).Error
	return count, err
}
