package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yoockh/chatrel/internal/services"
	"github.com/yoockh/chatrel/internal/utils"
)

type ConversationHandler struct {
	svc services.ChatService
}

func NewConversationHandler(svc services.ChatService) *ConversationHandler {
	return &ConversationHandler{svc: svc}
}

type SendMessageRequest struct {
	Text string `json:"text" binding:"required"`
}

func (h *ConversationHandler) List(c *gin.Context) {
	sessionID := c.Param("session_id")
	msgs, err := h.svc.History(c.Request.Context(), sessionID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id": sessionID,
		"messages":   msgs,
	})
}

func (h *ConversationHandler) Send(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ConversationHandler.Send", "invalid request body", err))
		return
	}

	msg, err := h.svc.Send(c.Request.Context(), c.Param("session_id"), req.Text)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}
