// Package inflight blocks duplicate profile submissions from the same
// session while one is still being generated.
package inflight

import (
	"context"
	"errors"
	"sync"
)

// ErrInFlight is returned when a submission for the key is already
// outstanding.
var ErrInFlight = errors.New("submission already in flight")

// Guard hands out one slot per key. The returned release func must be
// called when the submission finishes; calling it more than once is safe.
type Guard interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// MemoryGuard tracks outstanding keys in process memory.
type MemoryGuard struct {
	mu     sync.Mutex
	active map[string]struct{}
}

func NewMemoryGuard() *MemoryGuard {
	return &MemoryGuard{active: make(map[string]struct{})}
}

func (g *MemoryGuard) Acquire(_ context.Context, key string) (func(), error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.active[key]; busy {
		return nil, ErrInFlight
	}
	g.active[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.active, key)
			g.mu.Unlock()
		})
	}, nil
}

// Len reports how many keys are currently held.
func (g *MemoryGuard) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.active)
}
