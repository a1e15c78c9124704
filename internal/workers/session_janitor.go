package workers

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yoockh/chatrel/internal/repositories/memory"
)

// minJanitorInterval bounds how often the janitor sweeps.
const minJanitorInterval = time.Second

// SessionJanitor drops sessions that have been idle for longer than TTL.
type SessionJanitor struct {
	Sessions memory.SessionRepository
	TTL      time.Duration
	// Interval defaults to TTL/4, never below one second.
	Interval time.Duration

	Logger *logrus.Logger
}

func (j *SessionJanitor) Start(ctx context.Context) error {
	if j.Sessions == nil {
		return errors.New("SessionJanitor missing dependency: Sessions must be set")
	}
	if j.TTL <= 0 {
		return errors.New("SessionJanitor TTL must be positive")
	}
	if j.Interval <= 0 {
		j.Interval = max(j.TTL/4, minJanitorInterval)
	}
	if j.Logger == nil {
		j.Logger = logrus.New()
	}

	go j.run(ctx)
	return nil
}

func (j *SessionJanitor) run(ctx context.Context) {
	t := time.NewTicker(j.Interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			j.sweep(ctx)
		}
	}
}

func (j *SessionJanitor) sweep(ctx context.Context) int {
	n := j.Sessions.PurgeIdle(ctx, j.TTL)
	if n > 0 {
		j.Logger.WithFields(logrus.Fields{
			"purged":    n,
			"remaining": j.Sessions.Count(),
			"ttl":       j.TTL.String(),
		}).Info("idle sessions purged")
	}
	return n
}
