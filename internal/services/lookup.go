package services

import (
	"context"
	"errors"

	"github.com/yoockh/chatrel/internal/repositories/memory"
	"github.com/yoockh/chatrel/internal/session"
	"github.com/yoockh/chatrel/internal/utils"
)

func lookup(ctx context.Context, sessions memory.SessionRepository, op, sessionID string) (*session.Session, error) {
	if sessionID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "session_id is required", nil)
	}
	s, err := sessions.GetBySessionID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "session not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get session", err)
	}
	return s, nil
}
