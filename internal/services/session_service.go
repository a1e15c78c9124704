package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/yoockh/chatrel/internal/models"
	"github.com/yoockh/chatrel/internal/repositories/memory"
	"github.com/yoockh/chatrel/internal/session"
	"github.com/yoockh/chatrel/internal/utils"
)

type SessionService interface {
	Start(ctx context.Context, transcript string) (*models.Session, error)
	Get(ctx context.Context, sessionID string) (*models.Session, error)
	ReplaceTranscript(ctx context.Context, sessionID, transcript string) (*models.Session, error)
	End(ctx context.Context, sessionID string) error
}

type sessionService struct {
	sessions memory.SessionRepository
}

func NewSessionService(sessions memory.SessionRepository) SessionService {
	return &sessionService{sessions: sessions}
}

func checkTranscript(op, transcript string) error {
	if strings.TrimSpace(transcript) == "" {
		return utils.E(utils.CodeInvalidArgument, op, "transcript is empty", nil)
	}
	return nil
}

func (s *sessionService) Start(ctx context.Context, transcript string) (*models.Session, error) {
	const op = "SessionService.Start"

	if err := checkTranscript(op, transcript); err != nil {
		return nil, err
	}

	sess := session.New(uuid.NewString(), transcript)
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create session", err)
	}
	v := sess.View()
	return &v, nil
}

func (s *sessionService) Get(ctx context.Context, sessionID string) (*models.Session, error) {
	const op = "SessionService.Get"

	sess, err := lookup(ctx, s.sessions, op, sessionID)
	if err != nil {
		return nil, err
	}
	v := sess.View()
	return &v, nil
}

func (s *sessionService) ReplaceTranscript(ctx context.Context, sessionID, transcript string) (*models.Session, error) {
	const op = "SessionService.ReplaceTranscript"

	if err := checkTranscript(op, transcript); err != nil {
		return nil, err
	}
	sess, err := lookup(ctx, s.sessions, op, sessionID)
	if err != nil {
		return nil, err
	}
	sess.ReplaceTranscript(transcript)
	v := sess.View()
	return &v, nil
}

func (s *sessionService) End(ctx context.Context, sessionID string) error {
	const op = "SessionService.End"

	if sessionID == "" {
		return utils.E(utils.CodeInvalidArgument, op, "session_id is required", nil)
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "session not found", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to end session", err)
	}
	return nil
}
