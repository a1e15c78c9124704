package services

import (
	"context"
	"sync"

	"github.com/yoockh/chatrel/internal/providers/llm"
)

type fakeProvider struct {
	mu   sync.Mutex
	reqs []llm.Request

	reply string
	err   error

	// when set, Generate signals started and waits on release
	started chan struct{}
	release chan struct{}
}

func (f *fakeProvider) Generate(ctx context.Context, req llm.Request) (string, error) {
	f.mu.Lock()
	f.reqs = append(f.reqs, req)
	f.mu.Unlock()

	if f.started != nil {
		f.started <- struct{}{}
		select {
		case <-f.release:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.reply, f.err
}

func (f *fakeProvider) Close() error { return nil }

func (f *fakeProvider) last() llm.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reqs[len(f.reqs)-1]
}

func (f *fakeProvider) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.reqs)
}
