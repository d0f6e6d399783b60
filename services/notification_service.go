package services

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Допустимые типы push-уведомлений
var validEventTypes = map[string]bool{
	"repair":       true,
	"newTask":      true,
	"taskUpdate":   true,
	"taskComplete": true,
	"comment":      true,
	"newOrder":     true,
	"newMessage":   true,
}

// PushSubscription представляет подписку на push-уведомления одной сессии
type PushSubscription struct {
	UserID   uint   `json:"user_id"`
	Endpoint string `json:"endpoint"`
	Auth     string `json:"auth"`
	P256dh   string `json:"p256dh"`
}

// PushPayload представляет тело push-уведомления
type PushPayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Type  string `json:"type"`
}

// PushSender доставляет полезную нагрузку провайдеру push-уведомлений.
// Сбой доставки касается только одной подписки и не возвращается вызывающему.
type PushSender interface {
	Send(sub PushSubscription, payload []byte) error
}

// HTTPPushSender отправляет полезную нагрузку на endpoint подписки по HTTP
type HTTPPushSender struct {
	Client *http.Client
}

// NewHTTPPushSender создает отправителя с разумным таймаутом
func NewHTTPPushSender() *HTTPPushSender {
	return &HTTPPushSender{Client: &http.Client{Timeout: 10 * time.Second}}
}

// Send выполняет POST полезной нагрузки на endpoint подписки
func (s *HTTPPushSender) Send(sub PushSubscription, payload []byte) error {
	resp, err := s.Client.Post(sub.Endpoint, "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return &providerError{status: resp.StatusCode}
	}
	return nil
}

type providerError struct {
	status int
}

func (e *providerError) Error() string {
	return "push provider returned status " + http.StatusText(e.status)
}

// NotificationService хранит реестр подписок в памяти процесса.
// Подписки живут не дольше процесса; клиент переподписывается после рестарта.
type NotificationService struct {
	mu     sync.RWMutex
	subs   map[string]PushSubscription // ключ: bearer-токен сессии
	sender PushSender
}

// NewNotificationService создает новый диспетчер уведомлений
func NewNotificationService(sender PushSender) *NotificationService {
	return &NotificationService{
		subs:   make(map[string]PushSubscription),
		sender: sender,
	}
}

// Subscribe регистрирует подписку; повторная подписка с тем же токеном
// перезаписывает предыдущую
func (n *NotificationService) Subscribe(token string, sub PushSubscription) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.subs[token] = sub
}

// Unsubscribe убирает подписку по токену сессии
func (n *NotificationService) Unsubscribe(token string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.subs, token)
}

// SubscriptionCount возвращает текущее число подписок
func (n *NotificationService) SubscriptionCount() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.subs)
}

// Notify доставляет уведомление всем подпискам указанных пользователей.
// Доставка лучшая из возможных: сбои логируются и не прерывают остальных.
func (n *NotificationService) Notify(title, body, eventType string, userIDs ...uint) {
	if !validEventTypes[eventType] {
		log.Printf("Invalid notification type: %s", eventType)
		return
	}

	payload, err := json.Marshal(PushPayload{Title: title, Body: body, Type: eventType})
	if err != nil {
		log.Printf("Error marshaling notification payload: %v", err)
		return
	}

	targets := make(map[uint]bool, len(userIDs))
	for _, id := range userIDs {
		targets[id] = true
	}

	n.mu.RLock()
	matched := make([]PushSubscription, 0)
	for _, sub := range n.subs {
		if targets[sub.UserID] {
			matched = append(matched, sub)
		}
	}
	n.mu.RUnlock()

	if len(matched) == 0 {
		return
	}

	for _, sub := range matched {
		go func(sub PushSubscription) {
			deliveryID := uuid.NewString()
			if err := n.sender.Send(sub, payload); err != nil {
				log.Printf("Error sending notification %s to user %d: %v", deliveryID, sub.UserID, err)
				return
			}
			log.Printf("Notification %s sent to user %d", deliveryID, sub.UserID)
		}(sub)
	}
}
