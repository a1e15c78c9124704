package services

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/yoockh/chatrel/internal/conversation"
	"github.com/yoockh/chatrel/internal/models"
	"github.com/yoockh/chatrel/internal/prompt"
	"github.com/yoockh/chatrel/internal/providers/llm"
	"github.com/yoockh/chatrel/internal/repositories/memory"
	"github.com/yoockh/chatrel/internal/utils"
)

type ChatService interface {
	// Send appends the user message, asks the model and appends its reply.
	Send(ctx context.Context, sessionID, text string) (*models.ChatMessage, error)
	History(ctx context.Context, sessionID string) ([]models.ChatMessage, error)
}

type chatService struct {
	sessions memory.SessionRepository
	llm      llm.Provider
	log      *logrus.Logger
}

func NewChatService(sessions memory.SessionRepository, provider llm.Provider, log *logrus.Logger) ChatService {
	return &chatService{sessions: sessions, llm: provider, log: log}
}

func (s *chatService) Send(ctx context.Context, sessionID, text string) (*models.ChatMessage, error) {
	const op = "ChatService.Send"

	if strings.TrimSpace(text) == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "message is empty", nil)
	}
	sess, err := lookup(ctx, s.sessions, op, sessionID)
	if err != nil {
		return nil, err
	}

	tr, history, err := sess.BeginChat(text)
	if err != nil {
		return nil, err
	}
	defer sess.Finish(models.TaskChat)

	reply, err := s.llm.Generate(ctx, prompt.Chat(tr.Text, history, text))
	switch {
	case errors.Is(err, llm.ErrEmptyResponse):
		reply = ""
	case err != nil:
		diagnose(s.log, op, sessionID, err, "")
		// a stale transcript already reset the log; nothing to pair with
		_, _ = sess.RecordReply(tr.ID, conversation.ErrorReplyText)
		return nil, err
	}
	if strings.TrimSpace(reply) == "" {
		reply = conversation.EmptyReplyText
	}

	msg, err := sess.RecordReply(tr.ID, reply)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

func (s *chatService) History(ctx context.Context, sessionID string) ([]models.ChatMessage, error) {
	const op = "ChatService.History"

	sess, err := lookup(ctx, s.sessions, op, sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Messages(), nil
}
