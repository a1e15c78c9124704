package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/yoockh/chatrel/internal/models"
	"github.com/yoockh/chatrel/internal/services"
	"github.com/yoockh/chatrel/internal/utils"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsMaxMessage = 64 << 10
)

type WSHandler struct {
	sessions services.SessionService
	chat     services.ChatService
	log      *logrus.Logger
	upgrader websocket.Upgrader

	// pongWait is the read deadline refreshed by every pong. Pings go out
	// at 9/10 of it.
	pongWait time.Duration
}

func NewWSHandler(sessions services.SessionService, chat services.ChatService, log *logrus.Logger) *WSHandler {
	return &WSHandler{
		sessions: sessions,
		chat:     chat,
		log:      log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true }, // TODO: restrict origin once the UI host is fixed
		},
		pongWait: wsPongWait,
	}
}

type wsClientMsg struct {
	Type string `json:"type"` // chat_message|history
	Text string `json:"text"`
}

type wsServerMsg struct {
	Type     string               `json:"type"` // status|chat_reply|history|error
	Status   string               `json:"status,omitempty"`
	Code     utils.Code           `json:"code,omitempty"`
	Message  any                  `json:"message,omitempty"` // *models.ChatMessage for chat_reply, text for error
	Messages []models.ChatMessage `json:"messages,omitempty"`
}

type wsConn struct {
	c  *websocket.Conn
	mu sync.Mutex
}

func (w *wsConn) writeJSON(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	_ = w.c.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return w.c.WriteMessage(websocket.TextMessage, b)
}

func (w *wsConn) ping() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.c.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait))
}

func (w *wsConn) writeErr(err error) error {
	ae := toAPIError(err)
	return w.writeJSON(wsServerMsg{Type: "error", Code: ae.Code, Message: ae.Message})
}

// SessionWS carries the follow-up chat for one session. Each chat_message is
// answered with a "thinking" status and then either a chat_reply or an error.
// Frames are read on their own goroutine so pongs keep the connection alive
// while a chat reply is being generated.
func (h *WSHandler) SessionWS(c *gin.Context) {
	sessionID := c.Param("session_id")
	if _, err := h.sessions.Get(c.Request.Context(), sessionID); err != nil {
		writeError(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// upgrade already wrote response
		return
	}

	wc := &wsConn{c: conn}
	ctx, cancel := context.WithCancel(c.Request.Context())
	entry := h.log.WithField("session_id", sessionID)

	var replies sync.WaitGroup
	readDone := make(chan struct{})
	defer func() {
		cancel()
		_ = conn.Close()
		<-readDone
		replies.Wait()
	}()

	conn.SetReadLimit(wsMaxMessage)
	_ = conn.SetReadDeadline(time.Now().Add(h.pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(h.pongWait))
	})

	if err := h.sendHistory(ctx, wc, sessionID); err != nil {
		close(readDone)
		return
	}

	// reader: frames -> chat workers
	go func() {
		defer close(readDone)
		for {
			_, data, rerr := conn.ReadMessage()
			if rerr != nil {
				if websocket.IsUnexpectedCloseError(rerr, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					entry.WithError(rerr).Debug("ws closed")
				}
				return
			}

			var msg wsClientMsg
			if err := json.Unmarshal(data, &msg); err != nil {
				_ = wc.writeErr(utils.E(utils.CodeInvalidArgument, "WSHandler.SessionWS", "invalid json", err))
				continue
			}

			switch msg.Type {
			case "chat_message":
				// a second message while one is pending is rejected by the chat gate
				replies.Add(1)
				go func(text string) {
					defer replies.Done()
					h.reply(ctx, wc, sessionID, text)
				}(msg.Text)

			case "history":
				if err := h.sendHistory(ctx, wc, sessionID); err != nil {
					return
				}

			default:
				_ = wc.writeErr(utils.E(utils.CodeInvalidArgument, "WSHandler.SessionWS", "unknown message type", nil))
			}
		}
	}()

	// writer side: keepalive pings until the reader stops
	t := time.NewTicker(h.pongWait * 9 / 10)
	defer t.Stop()
	for {
		select {
		case <-readDone:
			return
		case <-ctx.Done():
			return
		case <-t.C:
			if err := wc.ping(); err != nil {
				return
			}
		}
	}
}

func (h *WSHandler) reply(ctx context.Context, wc *wsConn, sessionID, text string) {
	if err := wc.writeJSON(wsServerMsg{Type: "status", Status: "thinking"}); err != nil {
		return
	}
	msg, err := h.chat.Send(ctx, sessionID, text)
	if err != nil {
		_ = wc.writeErr(err)
		return
	}
	_ = wc.writeJSON(wsServerMsg{Type: "chat_reply", Message: msg})
}

func (h *WSHandler) sendHistory(ctx context.Context, wc *wsConn, sessionID string) error {
	msgs, err := h.chat.History(ctx, sessionID)
	if err != nil {
		return wc.writeErr(err)
	}
	return wc.writeJSON(wsServerMsg{Type: "history", Messages: msgs})
}
