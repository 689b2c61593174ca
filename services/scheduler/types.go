package scheduler

import (
	"context"
	"news-pulse/pkg/readiness"
	"news-pulse/services/fetcher"
	"sync"
	"sync/atomic"
	"time"
)

type State int32

const (
	StateInitializing State = iota
	StateIdle
	StateFetching
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFetching:
		return "fetching"
	default:
		return "initializing"
	}
}

type Service interface {
	Start()
	// Trigger starts a pass when idle; it reports false when the request
	// was coalesced with a pass already running or the first pass pending.
	Trigger() bool
	State() State
	LastPass() time.Time
	Shutdown()
}

type Impl struct {
	gate      *readiness.Gate
	firstPass *readiness.Gate
	fetcher   fetcher.Service
	interval  time.Duration
	state     atomic.Int32
	lastPass  atomic.Int64
	ctx       context.Context
	cancel    context.CancelFunc
	mu        sync.Mutex
	stopped   bool
	wg        sync.WaitGroup
}
