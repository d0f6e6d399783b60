package main

import (
	"sync"
	"testing"

	"coreops-backend/services"

	"github.com/stretchr/testify/assert"
)

// newTestClient создает подключение без реального сокета
func newTestClient(hub *services.Hub, userID uint) *services.Client {
	client := &services.Client{
		UserID: userID,
		Send:   make(chan services.WSMessage, 16),
		Hub:    hub,
	}
	hub.Register(client)
	return client
}

// drain забирает все сообщения из канала подключения
func drain(client *services.Client) []services.WSMessage {
	var messages []services.WSMessage
	for {
		select {
		case m := <-client.Send:
			messages = append(messages, m)
		default:
			return messages
		}
	}
}

func TestSendMessageFansOutToAllConnections(t *testing.T) {
	db := setupTestDB()
	member, head, board := createTestUsers(db)
	notifier, _ := newTestNotifier()
	chat := services.NewChatService(db, notifier)
	hub := services.NewHub(db, chat)

	// У отправителя два подключения, у получателя два, у третьего одно
	sender1 := newTestClient(hub, member.ID)
	sender2 := newTestClient(hub, member.ID)
	receiver1 := newTestClient(hub, head.ID)
	receiver2 := newTestClient(hub, head.ID)
	bystander := newTestClient(hub, board.ID)

	sender1.HandleIncoming(services.WSMessage{
		Type: "sendMessage",
		Payload: map[string]interface{}{
			"receiver_id": float64(head.ID),
			"message":     "hello",
		},
	})

	// Каждое подключение отправителя и получателя получает ровно одно сообщение
	for _, client := range []*services.Client{sender1, sender2, receiver1, receiver2} {
		messages := drain(client)
		assert.Len(t, messages, 1)
		assert.Equal(t, "messageReceived", messages[0].Type)
	}

	// Посторонний не получает ничего
	assert.Len(t, drain(bystander), 0)
}

func TestConcurrentFanOutEvictsSlowConnection(t *testing.T) {
	db := setupTestDB()
	_, head, _ := createTestUsers(db)
	notifier, _ := newTestNotifier()
	chat := services.NewChatService(db, notifier)
	hub := services.NewHub(db, chat)

	// Подключение без буфера никогда не принимает сообщение
	slow := &services.Client{
		UserID: head.ID,
		Send:   make(chan services.WSMessage),
		Hub:    hub,
	}
	hub.Register(slow)
	healthy := newTestClient(hub, head.ID)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hub.SendToUser(head.ID, services.WSMessage{Type: "messageReceived"})
		}()
	}
	wg.Wait()

	// Живое подключение получило все рассылки, переполненное снято
	// с учета ровно один раз и его канал закрыт
	assert.Len(t, drain(healthy), 16)
	_, open := <-slow.Send
	assert.False(t, open)

	hub.SendToUser(head.ID, services.WSMessage{Type: "messageReceived"})
	assert.Len(t, drain(healthy), 1)
}

func TestSendMessageErrorOnlyToOriginatingConnection(t *testing.T) {
	db := setupTestDB()
	member, _, _ := createTestUsers(db)
	notifier, _ := newTestNotifier()
	chat := services.NewChatService(db, notifier)
	hub := services.NewHub(db, chat)

	sender1 := newTestClient(hub, member.ID)
	sender2 := newTestClient(hub, member.ID)

	// Получатель не существует - сохранение падает
	sender1.HandleIncoming(services.WSMessage{
		Type: "sendMessage",
		Payload: map[string]interface{}{
			"receiver_id": float64(999),
			"message":     "hello",
		},
	})

	messages := drain(sender1)
	assert.Len(t, messages, 1)
	assert.Equal(t, "error", messages[0].Type)

	// Второе подключение отправителя ошибку не видит
	assert.Len(t, drain(sender2), 0)
}

func TestMessageReadNotifiesSenderConnectionsOnly(t *testing.T) {
	db := setupTestDB()
	member, head, _ := createTestUsers(db)
	notifier, _ := newTestNotifier()
	chat := services.NewChatService(db, notifier)
	hub := services.NewHub(db, chat)

	message, err := chat.Send(member, head.ID, "hello")
	assert.NoError(t, err)

	sender1 := newTestClient(hub, member.ID)
	sender2 := newTestClient(hub, member.ID)
	reader := newTestClient(hub, head.ID)

	reader.HandleIncoming(services.WSMessage{
		Type: "messageRead",
		Payload: map[string]interface{}{
			"message_id": float64(message.ID),
		},
	})

	// Квитанция уходит во все подключения отправителя
	for _, client := range []*services.Client{sender1, sender2} {
		messages := drain(client)
		assert.Len(t, messages, 1)
		assert.Equal(t, "messageRead", messages[0].Type)
	}

	// Читающему квитанция не отправляется
	assert.Len(t, drain(reader), 0)
}

func TestChatHistoryOnlyToOriginatingConnection(t *testing.T) {
	db := setupTestDB()
	member, head, _ := createTestUsers(db)
	notifier, _ := newTestNotifier()
	chat := services.NewChatService(db, notifier)
	hub := services.NewHub(db, chat)

	chat.Send(member, head.ID, "hello")

	requester := newTestClient(hub, member.ID)
	other := newTestClient(hub, member.ID)

	requester.HandleIncoming(services.WSMessage{
		Type: "getChatHistory",
		Payload: map[string]interface{}{
			"peer_id": float64(head.ID),
		},
	})

	messages := drain(requester)
	assert.Len(t, messages, 1)
	assert.Equal(t, "chatHistory", messages[0].Type)

	assert.Len(t, drain(other), 0)
}
