package handlers

import (
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/yoockh/chatrel/internal/services"
	"github.com/yoockh/chatrel/internal/utils"
)

// MaxUploadBytes caps an uploaded transcript file.
const MaxUploadBytes = 10 << 20

type SessionHandler struct {
	svc services.SessionService
}

func NewSessionHandler(svc services.SessionService) *SessionHandler {
	return &SessionHandler{svc: svc}
}

type TranscriptRequest struct {
	Transcript string `json:"transcript" binding:"required"`
}

// readTranscript accepts either a JSON body or a multipart "file" field
// holding plain text.
func readTranscript(c *gin.Context, op string) (string, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, err := c.FormFile("file")
		if err != nil {
			return "", utils.E(utils.CodeInvalidArgument, op, "file is required", err)
		}
		if fh.Size > MaxUploadBytes {
			return "", utils.E(utils.CodeInvalidArgument, op, "file exceeds 10MB", nil)
		}
		f, err := fh.Open()
		if err != nil {
			return "", utils.E(utils.CodeInvalidArgument, op, "cannot read file", err)
		}
		defer f.Close()

		b, err := io.ReadAll(io.LimitReader(f, MaxUploadBytes+1))
		if err != nil {
			return "", utils.E(utils.CodeInvalidArgument, op, "cannot read file", err)
		}
		if len(b) > MaxUploadBytes {
			return "", utils.E(utils.CodeInvalidArgument, op, "file exceeds 10MB", nil)
		}
		if !utf8.Valid(b) {
			return "", utils.E(utils.CodeInvalidArgument, op, "file must be plain text", nil)
		}
		return string(b), nil
	}

	var req TranscriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return "", utils.E(utils.CodeInvalidArgument, op, "invalid request body", err)
	}
	return req.Transcript, nil
}

func (h *SessionHandler) Start(c *gin.Context) {
	transcript, err := readTranscript(c, "SessionHandler.Start")
	if err != nil {
		writeError(c, err)
		return
	}

	sess, err := h.svc.Start(c.Request.Context(), transcript)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sess)
}

func (h *SessionHandler) Get(c *gin.Context) {
	sess, err := h.svc.Get(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (h *SessionHandler) ReplaceTranscript(c *gin.Context) {
	transcript, err := readTranscript(c, "SessionHandler.ReplaceTranscript")
	if err != nil {
		writeError(c, err)
		return
	}

	sess, err := h.svc.ReplaceTranscript(c.Request.Context(), c.Param("session_id"), transcript)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (h *SessionHandler) End(c *gin.Context) {
	if err := h.svc.End(c.Request.Context(), c.Param("session_id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
