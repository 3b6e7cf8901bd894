package connectionhub

import (
	"context"
	"time"

	"github.com/gofiber/contrib/websocket"
	log "github.com/sirupsen/logrus"
)

const sendBufferSize = 16

type clientSession struct {
	conn   *websocket.Conn
	ctx    context.Context
	sendCh chan any
	stop   func()
}

func newSession(conn *websocket.Conn) *clientSession {
	ctx, cancelFn := context.WithCancel(context.Background())
	sess := &clientSession{
		stop:   cancelFn,
		ctx:    ctx,
		conn:   conn,
		sendCh: make(chan any, sendBufferSize),
	}
	go sess.startSend()
	return sess
}

// push не блокирует вызывающего: при переполненном буфере сообщение отбрасывается
func (s *clientSession) push(msg any) bool {
	if s.ctx.Err() != nil {
		return false
	}
	select {
	case s.sendCh <- msg:
		return true
	default:
		log.Warn("буфер ws сессии переполнен, сообщение отброшено")
		return false
	}
}

func (s *clientSession) startSend() {
	for {
		select {
		case <-s.ctx.Done():
			s.close()
			return
		case msg := <-s.sendCh:
			if err := s.send(msg); err != nil {
				log.WithError(err).Error("ошибка отправки сообщения")
			}
		}
	}
}

func (s *clientSession) send(msg any) error {
	if s.conn == nil || s.conn.Conn == nil {
		return nil
	}
	return s.conn.WriteJSON(msg)
}

func (s *clientSession) close() {
	if s.conn == nil || s.conn.Conn == nil {
		return
	}
	err := s.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	if err != nil {
		log.WithError(err).Debug("ошибка закрытия ws соединения")
	}
}
