// Package readiness provides a set-once gate observed with a bounded wait.
package readiness

import (
	"context"
	"sync"
	"time"
)

type Gate struct {
	once sync.Once
	done chan struct{}
}

func New() *Gate {
	return &Gate{done: make(chan struct{})}
}

// Set opens the gate. Later calls are no-ops; the gate is never closed again.
func (g *Gate) Set() {
	g.once.Do(func() { close(g.done) })
}

func (g *Gate) IsSet() bool {
	select {
	case <-g.done:
		return true
	default:
		return false
	}
}

// Done is closed once the gate is set.
func (g *Gate) Done() <-chan struct{} {
	return g.done
}

// Wait blocks until the gate is set, the timeout elapses or ctx ends.
// It reports whether the gate is set.
func (g *Gate) Wait(ctx context.Context, timeout time.Duration) bool {
	if g.IsSet() {
		return true
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-g.done:
		return true
	case <-timer.C:
		return g.IsSet()
	case <-ctx.Done():
		return g.IsSet()
	}
}
