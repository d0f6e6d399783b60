package main

import (
	"testing"

	"coreops-backend/models"
	"coreops-backend/services"

	"github.com/stretchr/testify/assert"
)

func TestSendMessage(t *testing.T) {
	db := setupTestDB()
	member, head, _ := createTestUsers(db)
	notifier, _ := newTestNotifier()
	chat := services.NewChatService(db, notifier)

	message, err := chat.Send(member, head.ID, "hello")
	assert.NoError(t, err)
	assert.Equal(t, member.ID, message.SenderID)
	assert.Equal(t, head.ID, message.ReceiverID)
	assert.False(t, message.IsRead)

	// Пустой текст и несуществующий получатель отклоняются
	_, err = chat.Send(member, head.ID, "")
	assert.ErrorIs(t, err, services.ErrValidation)
	_, err = chat.Send(member, 999, "hello")
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestMarkReadIdempotent(t *testing.T) {
	db := setupTestDB()
	member, head, _ := createTestUsers(db)
	notifier, _ := newTestNotifier()
	chat := services.NewChatService(db, notifier)

	message, _ := chat.Send(member, head.ID, "hello")

	// Пометить может только получатель
	_, err := chat.MarkRead(member.ID, message.ID)
	assert.ErrorIs(t, err, services.ErrPermissionDenied)

	senderID, err := chat.MarkRead(head.ID, message.ID)
	assert.NoError(t, err)
	assert.Equal(t, member.ID, senderID)

	// Повторная пометка не ошибка
	senderID, err = chat.MarkRead(head.ID, message.ID)
	assert.NoError(t, err)
	assert.Equal(t, member.ID, senderID)

	var stored models.ChatMessage
	db.First(&stored, message.ID)
	assert.True(t, stored.IsRead)
}

func TestHistoryIsSymmetricAndOrdered(t *testing.T) {
	db := setupTestDB()
	member, head, board := createTestUsers(db)
	notifier, _ := newTestNotifier()
	chat := services.NewChatService(db, notifier)

	chat.Send(member, head.ID, "first")
	chat.Send(head, member.ID, "second")
	chat.Send(member, head.ID, "third")
	chat.Send(member, board.ID, "other conversation")

	history, err := chat.History(member.ID, head.ID)
	assert.NoError(t, err)
	assert.Len(t, history, 3)
	assert.Equal(t, "first", history[0].Message)
	assert.Equal(t, "second", history[1].Message)
	assert.Equal(t, "third", history[2].Message)

	// Та же переписка с другой стороны
	mirror, err := chat.History(head.ID, member.ID)
	assert.NoError(t, err)
	assert.Len(t, mirror, 3)
}

func TestUnreadMessages(t *testing.T) {
	db := setupTestDB()
	member, head, _ := createTestUsers(db)
	notifier, _ := newTestNotifier()
	chat := services.NewChatService(db, notifier)

	first, _ := chat.Send(member, head.ID, "one")
	chat.Send(member, head.ID, "two")

	messages, count, err := chat.UnreadMessages(head.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.Len(t, messages, 2)

	chat.MarkRead(head.ID, first.ID)

	_, count, err = chat.UnreadMessages(head.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// У отправителя непрочитанных нет
	_, count, err = chat.UnreadMessages(member.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestChatableUsers(t *testing.T) {
	db := setupTestDB()
	member, head, board := createTestUsers(db)
	notifier, _ := newTestNotifier()
	chat := services.NewChatService(db, notifier)

	chat.Send(head, member.ID, "one")
	chat.Send(head, member.ID, "two")
	chat.Send(board, member.ID, "three")

	users, err := chat.ChatableUsers(member.ID)
	assert.NoError(t, err)
	assert.Len(t, users, 2)

	unreadByID := make(map[uint]int64)
	for _, u := range users {
		assert.NotEqual(t, member.ID, u.ID)
		unreadByID[u.ID] = u.UnreadMessageCount
	}
	assert.Equal(t, int64(2), unreadByID[head.ID])
	assert.Equal(t, int64(1), unreadByID[board.ID])
}
