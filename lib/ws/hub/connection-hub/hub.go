package connectionhub

import (
	"sync"

	"github.com/gofiber/contrib/websocket"
	wsmodels "request-flow-backend/models/ws"
)

type Provider interface {
	AddClient(userID string, conn *websocket.Conn)
	DeleteClient(userID string, conn *websocket.Conn)
	// SendMessage отправляет сообщение, если пользователь подключен. Возвращает false, если подключения нет.
	SendMessage(msg wsmodels.ServerMessage) bool
	IsConnected(userID string) bool
}

var Instance Provider

func Init() {
	Instance = &impl{
		clients: map[string]*clientSession{},
	}
}

type impl struct {
	mu      sync.RWMutex
	clients map[string]*clientSession //map[userID]
}

// DeleteClient удаляет сессию, только если она принадлежит переданному соединению
func (i *impl) DeleteClient(userID string, conn *websocket.Conn) {
	i.mu.Lock()
	sess, ok := i.clients[userID]
	if !ok || sess.conn != conn {
		i.mu.Unlock()
		return
	}
	delete(i.clients, userID)
	i.mu.Unlock()
	sess.stop()
}

func (i *impl) AddClient(userID string, conn *websocket.Conn) {
	sess := newSession(conn)
	i.mu.Lock()
	oldSess, ok := i.clients[userID]
	i.clients[userID] = sess
	i.mu.Unlock()
	if ok {
		oldSess.stop()
	}
}

func (i *impl) SendMessage(msg wsmodels.ServerMessage) bool {
	i.mu.RLock()
	sess, ok := i.clients[msg.ToUserID]
	i.mu.RUnlock()
	if !ok {
		return false
	}
	return sess.push(msg)
}

func (i *impl) IsConnected(userID string) bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	sess, ok := i.clients[userID]
	return ok && sess.conn != nil && sess.conn.Conn != nil
}
