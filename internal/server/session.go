package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/coder/websocket"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
	maxMsgSize = 1 << 20
)

// Session is one websocket connection. Results are queued on send and
// written by WritePump.
type Session struct {
	srv    *Server
	conn   *websocket.Conn
	send   chan []byte
	ID     string
	logger *slog.Logger
}

func newSession(srv *Server, conn *websocket.Conn, id string) *Session {
	return &Session{
		srv:    srv,
		conn:   conn,
		send:   make(chan []byte, 16),
		ID:     id,
		logger: srv.logger.With("session", id),
	}
}

func (s *Session) ReadPump(ctx context.Context) {
	defer func() {
		s.srv.sessions.remove(s)
		s.conn.Close(websocket.StatusNormalClosure, "")
	}()

	s.conn.SetReadLimit(maxMsgSize)

	for {
		_, data, err := s.conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure ||
				websocket.CloseStatus(err) == websocket.StatusGoingAway {
				return
			}
			s.logger.Debug("read error", "error", err)
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			s.logger.Warn("invalid message", "error", err)
			s.sendError(0, "invalid message")
			continue
		}
		if msg.Type != TypeTrace {
			s.sendError(msg.Seq, "unknown message type "+msg.Type)
			continue
		}

		res, err := s.srv.trace(msg.Payload)
		if err != nil {
			s.sendError(msg.Seq, err.Error())
			continue
		}
		payload, err := json.Marshal(res)
		if err != nil {
			s.logger.Error("marshal result", "error", err)
			continue
		}
		s.Send(&Message{Type: TypeResult, Seq: msg.Seq, Payload: payload})
	}
}

func (s *Session) WritePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		select {
		case message, ok := <-s.send:
			if !ok {
				return
			}

			writeCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := s.conn.Write(writeCtx, websocket.MessageText, message)
			cancel()
			if err != nil {
				s.logger.Debug("write error", "error", err)
				return
			}

		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := s.conn.Ping(pingCtx)
			cancel()
			if err != nil {
				return
			}

		case <-ctx.Done():
			return
		}
	}
}

func (s *Session) Send(msg *Message) {
	msg.SessionID = s.ID
	data, err := json.Marshal(msg)
	if err != nil {
		s.logger.Error("marshal message", "error", err)
		return
	}

	select {
	case s.send <- data:
	default:
		s.logger.Warn("session send buffer full, dropping message", "type", msg.Type)
	}
}

func (s *Session) sendError(seq int64, text string) {
	payload, _ := json.Marshal(ErrorPayload{Error: text})
	s.Send(&Message{Type: TypeError, Seq: seq, Payload: payload})
}
