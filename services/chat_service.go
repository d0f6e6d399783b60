package services

import (
	"coreops-backend/models"

	"gorm.io/gorm"
)

// ChatService реализует личные сообщения между пользователями
type ChatService struct {
	db       *gorm.DB
	notifier *NotificationService
}

// NewChatService создает новый сервис чата
func NewChatService(db *gorm.DB, notifier *NotificationService) *ChatService {
	return &ChatService{db: db, notifier: notifier}
}

// Send сохраняет сообщение и отправляет получателю push-уведомление
func (s *ChatService) Send(sender *models.User, receiverID uint, text string) (*models.ChatMessage, error) {
	if text == "" || receiverID == 0 {
		return nil, ErrValidation
	}

	var receiver models.User
	err := s.db.Where("id = ? AND is_deleted = ?", receiverID, false).
		First(&receiver).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	message := models.ChatMessage{
		SenderID:   sender.ID,
		ReceiverID: receiverID,
		Message:    text,
	}
	if err := s.db.Create(&message).Error; err != nil {
		return nil, err
	}

	s.notifier.Notify(sender.DisplayName(), text, "newMessage", receiverID)

	return &message, nil
}

// MarkRead помечает сообщение прочитанным и возвращает отправителя.
// Пометить можно только адресованное себе сообщение; повторная пометка
// не ошибка.
func (s *ChatService) MarkRead(readerID uint, messageID uint) (uint, error) {
	var message models.ChatMessage
	if err := s.db.First(&message, messageID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, ErrNotFound
		}
		return 0, err
	}
	if message.ReceiverID != readerID {
		return 0, ErrPermissionDenied
	}

	if !message.IsRead {
		err := s.db.Model(&message).Update("is_read", true).Error
		if err != nil {
			return 0, err
		}
	}
	return message.SenderID, nil
}

// History возвращает переписку двух пользователей в хронологическом порядке
func (s *ChatService) History(userID, peerID uint) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	err := s.db.Where(
		"(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
		userID, peerID, peerID, userID).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}

// UnreadMessages возвращает непрочитанные сообщения пользователя и их число
func (s *ChatService) UnreadMessages(userID uint) ([]models.ChatMessage, int64, error) {
	var messages []models.ChatMessage
	err := s.db.Where("receiver_id = ? AND is_read = ?", userID, false).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, 0, err
	}
	return messages, int64(len(messages)), nil
}

// ChatableUsers возвращает список собеседников: все активные пользователи,
// кроме самого актора, с числом непрочитанных сообщений от каждого
func (s *ChatService) ChatableUsers(userID uint) ([]models.ChatableUser, error) {
	var users []models.User
	err := s.db.Where("id <> ? AND is_deleted = ? AND is_active = ?",
		userID, false, true).
		Order("user_name ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	type senderCount struct {
		SenderID uint
		Count    int64
	}
	var counts []senderCount
	err = s.db.Model(&models.ChatMessage{}).
		Select("sender_id, COUNT(*) AS count").
		Where("receiver_id = ? AND is_read = ?", userID, false).
		Group("sender_id").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	unreadBySender := make(map[uint]int64, len(counts))
	for _, c := range counts {
		unreadBySender[c.SenderID] = c.Count
	}

	chatable := make([]models.ChatableUser, 0, len(users))
	for _, u := range users {
		chatable = append(chatable, models.ChatableUser{
			ID:                 u.ID,
			FullName:           u.DisplayName(),
			UserName:           u.UserName,
			DepartmentID:       u.DepartmentID,
			UnreadMessageCount: unreadBySender[u.ID],
		})
	}
	return chatable, nil
}
