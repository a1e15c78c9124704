package memory

import (
	"context"
	"sync"
	"time"

	"github.com/yoockh/chatrel/internal/session"
	"github.com/yoockh/chatrel/internal/utils"
)

type SessionRepository interface {
	Create(ctx context.Context, s *session.Session) error
	GetBySessionID(ctx context.Context, sessionID string) (*session.Session, error)
	Delete(ctx context.Context, sessionID string) error
	// PurgeIdle removes sessions whose last activity is older than ttl and
	// returns how many were dropped.
	PurgeIdle(ctx context.Context, ttl time.Duration) int
	Count() int
}

type sessionRepo struct {
	mu   sync.RWMutex
	byID map[string]*session.Session
	now  func() time.Time
}

func NewSessionRepo() SessionRepository {
	return &sessionRepo{
		byID: make(map[string]*session.Session),
		now:  time.Now,
	}
}

func (r *sessionRepo) Create(_ context.Context, s *session.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[s.ID()]; ok {
		return utils.E(utils.CodeConflict, "SessionRepo.Create", "session already exists", nil)
	}
	r.byID[s.ID()] = s
	return nil
}

func (r *sessionRepo) GetBySessionID(_ context.Context, sessionID string) (*session.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byID[sessionID]
	if !ok {
		return nil, utils.ErrNotFound
	}
	return s, nil
}

func (r *sessionRepo) Delete(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[sessionID]; !ok {
		return utils.ErrNotFound
	}
	delete(r.byID, sessionID)
	return nil
}

func (r *sessionRepo) PurgeIdle(ctx context.Context, ttl time.Duration) int {
	if ttl <= 0 {
		return 0
	}
	cutoff := r.now().Add(-ttl)

	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, s := range r.byID {
		if ctx.Err() != nil {
			break
		}
		if s.LastActive().Before(cutoff) {
			delete(r.byID, id)
			n++
		}
	}
	return n
}

func (r *sessionRepo) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}
