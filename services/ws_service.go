package services

import (
	"log"
	"sync"
	"time"

	"coreops-backend/models"
	"coreops-backend/utils"

	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

// WSMessage представляет сообщение WebSocket
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Client представляет одно подключение пользователя.
// У пользователя может быть несколько подключений одновременно.
type Client struct {
	ID       uint
	UserID   uint
	Conn     *websocket.Conn
	Send     chan WSMessage
	Hub      *Hub
	LastPing time.Time
}

// Hub управляет всеми подключениями
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
	db         *gorm.DB
	chat       *ChatService
}

// NewHub создает новый хаб
func NewHub(db *gorm.DB, chat *ChatService) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		db:         db,
		chat:       chat,
	}
}

// Run запускает хаб
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.Register(client)
			log.Printf("Client %d connected. Total clients: %d", client.UserID, len(h.clients))

		case client := <-h.unregister:
			h.Unregister(client)
			log.Printf("Client %d disconnected. Total clients: %d", client.UserID, len(h.clients))
		}
	}
}

// Register добавляет клиента в хаб напрямую, минуя цикл Run
func (h *Hub) Register(client *Client) {
	h.mutex.Lock()
	h.clients[client] = true
	h.mutex.Unlock()
}

// Unregister убирает клиента из хаба напрямую, минуя цикл Run
func (h *Hub) Unregister(client *Client) {
	h.mutex.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.Send)
	}
	h.mutex.Unlock()
}

// SendToUser отправляет сообщение во все подключения пользователя.
// Канал закрывается только под полной блокировкой в Unregister, поэтому
// запись под блокировкой чтения не попадет в закрытый канал.
func (h *Hub) SendToUser(userID uint, message WSMessage) {
	var stale []*Client

	h.mutex.RLock()
	for client := range h.clients {
		if client.UserID != userID {
			continue
		}
		select {
		case client.Send <- message:
		default:
			stale = append(stale, client)
		}
	}
	h.mutex.RUnlock()

	// Переполненные подключения снимаются с учета под полной блокировкой;
	// Unregister перепроверяет членство, повторное снятие безвредно
	for _, client := range stale {
		h.Unregister(client)
	}
}

// sendToClient отправляет сообщение только в одно подключение
func (h *Hub) sendToClient(client *Client, message WSMessage) {
	stale := false

	h.mutex.RLock()
	if _, ok := h.clients[client]; ok {
		select {
		case client.Send <- message:
		default:
			stale = true
		}
	}
	h.mutex.RUnlock()

	if stale {
		h.Unregister(client)
	}
}

// HandleWebSocket обрабатывает WebSocket соединение.
// Анонимное подключение закрывается сразу.
func (h *Hub) HandleWebSocket(c *websocket.Conn) {
	tokenString := c.Query("token")
	if tokenString == "" {
		c.Close()
		return
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return utils.JWTSecret(), nil
	})
	if err != nil || !token.Valid {
		c.Close()
		return
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		c.Close()
		return
	}

	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		c.Close()
		return
	}
	userID := uint(userIDFloat)

	client := &Client{
		ID:       uint(time.Now().UnixNano()),
		UserID:   userID,
		Conn:     c,
		Send:     make(chan WSMessage, 256),
		Hub:      h,
		LastPing: time.Now(),
	}

	h.register <- client

	go client.writePump()
	client.readPump()
}

// readPump читает сообщения из WebSocket
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(4096)
	c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		c.LastPing = time.Now()
		return nil
	})

	for {
		var message WSMessage
		err := c.Conn.ReadJSON(&message)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		c.HandleIncoming(message)
	}
}

// writePump записывает сообщения в WebSocket
func (c *Client) writePump() {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteJSON(message); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// HandleIncoming обрабатывает входящие сообщения
func (c *Client) HandleIncoming(message WSMessage) {
	switch message.Type {
	case "sendMessage":
		c.handleSendMessage(message)
	case "getChatHistory":
		c.handleChatHistory(message)
	case "messageRead":
		c.handleMessageRead(message)
	case "ping":
		c.handlePing()
	}
}

// sendError отправляет ошибку только в исходное подключение
func (c *Client) sendError(text string) {
	c.Hub.sendToClient(c, WSMessage{
		Type:    "error",
		Payload: map[string]interface{}{"message": text},
	})
}

// handleSendMessage сохраняет сообщение и рассылает его во все подключения
// отправителя и получателя
func (c *Client) handleSendMessage(message WSMessage) {
	payload, ok := message.Payload.(map[string]interface{})
	if !ok {
		c.sendError("invalid payload")
		return
	}

	text, _ := payload["message"].(string)
	receiverIDFloat, _ := payload["receiver_id"].(float64)
	receiverID := uint(receiverIDFloat)

	var sender models.User
	if err := c.Hub.db.First(&sender, c.UserID).Error; err != nil {
		c.sendError("sender not found")
		return
	}

	msg, err := c.Hub.chat.Send(&sender, receiverID, text)
	if err != nil {
		c.sendError(err.Error())
		return
	}

	received := WSMessage{
		Type: "messageReceived",
		Payload: map[string]interface{}{
			"id":          msg.ID,
			"sender_id":   msg.SenderID,
			"receiver_id": msg.ReceiverID,
			"message":     msg.Message,
			"is_read":     msg.IsRead,
			"created_at":  msg.CreatedAt,
		},
	}

	c.Hub.SendToUser(msg.SenderID, received)
	if msg.ReceiverID != msg.SenderID {
		c.Hub.SendToUser(msg.ReceiverID, received)
	}
}

// handleChatHistory возвращает переписку с собеседником только в
// исходное подключение
func (c *Client) handleChatHistory(message WSMessage) {
	payload, ok := message.Payload.(map[string]interface{})
	if !ok {
		c.sendError("invalid payload")
		return
	}

	peerIDFloat, _ := payload["peer_id"].(float64)
	peerID := uint(peerIDFloat)

	history, err := c.Hub.chat.History(c.UserID, peerID)
	if err != nil {
		c.sendError(err.Error())
		return
	}

	c.Hub.sendToClient(c, WSMessage{
		Type: "chatHistory",
		Payload: map[string]interface{}{
			"peer_id":  peerID,
			"messages": history,
		},
	})
}

// handleMessageRead помечает сообщение прочитанным и уведомляет
// все подключения отправителя
func (c *Client) handleMessageRead(message WSMessage) {
	payload, ok := message.Payload.(map[string]interface{})
	if !ok {
		c.sendError("invalid payload")
		return
	}

	messageIDFloat, _ := payload["message_id"].(float64)
	messageID := uint(messageIDFloat)

	senderID, err := c.Hub.chat.MarkRead(c.UserID, messageID)
	if err != nil {
		c.sendError(err.Error())
		return
	}

	c.Hub.SendToUser(senderID, WSMessage{
		Type: "messageRead",
		Payload: map[string]interface{}{
			"message_id": messageID,
			"reader_id":  c.UserID,
		},
	})
}

// handlePing отвечает pong в исходное подключение
func (c *Client) handlePing() {
	c.Hub.sendToClient(c, WSMessage{
		Type:    "pong",
		Payload: map[string]interface{}{"timestamp": time.Now().Unix()},
	})
}
