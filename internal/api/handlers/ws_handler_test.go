package handlers

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yoockh/chatrel/internal/logger"
	"github.com/yoockh/chatrel/internal/providers/llm"
	"github.com/yoockh/chatrel/internal/repositories/memory"
	"github.com/yoockh/chatrel/internal/services"
	"github.com/yoockh/chatrel/internal/utils"
)

// slowProvider answers after delay, like a high-effort model would.
type slowProvider struct {
	delay time.Duration
	reply string
}

func (p *slowProvider) Generate(ctx context.Context, _ llm.Request) (string, error) {
	select {
	case <-time.After(p.delay):
		return p.reply, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (p *slowProvider) Close() error { return nil }

type wsFrame struct {
	Type string     `json:"type"`
	Code utils.Code `json:"code"`
}

func dialChat(t *testing.T, p llm.Provider, pongWait time.Duration) *websocket.Conn {
	t.Helper()
	gin.SetMode(gin.TestMode)
	l := logger.Discard()
	repo := memory.NewSessionRepo()
	sessions := services.NewSessionService(repo)
	chat := services.NewChatService(repo, p, l)

	sess, err := sessions.Start(context.Background(), "Alice: hi\nBob: hi")
	require.NoError(t, err)

	h := NewWSHandler(sessions, chat, l)
	h.pongWait = pongWait

	r := gin.New()
	r.GET("/ws/sessions/:session_id", h.SessionWS)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/sessions/" + sess.SessionID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	var f wsFrame
	require.NoError(t, conn.ReadJSON(&f))
	require.Equal(t, "history", f.Type)
	return conn
}

func TestSessionWS_SurvivesReplySlowerThanPongWait(t *testing.T) {
	pongWait := 200 * time.Millisecond
	conn := dialChat(t, &slowProvider{delay: 4 * pongWait, reply: "Eventually."}, pongWait)

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "chat_message", "text": "How are they?"}))

	var f wsFrame
	require.NoError(t, conn.ReadJSON(&f))
	assert.Equal(t, "status", f.Type)
	require.NoError(t, conn.ReadJSON(&f))
	assert.Equal(t, "chat_reply", f.Type)

	// connection is still usable after the long call
	require.NoError(t, conn.WriteJSON(map[string]string{"type": "history"}))
	f = wsFrame{}
	require.NoError(t, conn.ReadJSON(&f))
	assert.Equal(t, "history", f.Type)
}

func TestSessionWS_SecondMessageWhilePendingIsRejected(t *testing.T) {
	conn := dialChat(t, &slowProvider{delay: 300 * time.Millisecond, reply: "ok"}, time.Minute)

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "chat_message", "text": "one"}))
	require.NoError(t, conn.WriteJSON(map[string]string{"type": "chat_message", "text": "two"}))

	got := map[string]int{}
	var conflict utils.Code
	for got["chat_reply"]+got["error"] < 2 {
		var f wsFrame
		require.NoError(t, conn.ReadJSON(&f))
		got[f.Type]++
		if f.Type == "error" {
			conflict = f.Code
		}
	}
	assert.Equal(t, 2, got["status"])
	assert.Equal(t, 1, got["chat_reply"])
	assert.Equal(t, utils.CodeConflict, conflict)
}
