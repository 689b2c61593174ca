package scheduler

import (
	"context"
	"fmt"
	"news-pulse/models/constants"
	"news-pulse/pkg/readiness"
	"news-pulse/services/fetcher"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
)

// New registers the refresh job. Passes wait for gate; firstPass is set once
// the first pass has written every region.
func New(scheduler gocron.Scheduler, gate, firstPass *readiness.Gate, fetcherService fetcher.Service,
	interval time.Duration) (*Impl, error) {
	ctx, cancel := context.WithCancel(context.Background())
	service := &Impl{
		gate:      gate,
		firstPass: firstPass,
		fetcher:   fetcherService,
		interval:  interval,
		ctx:       ctx,
		cancel:    cancel,
	}
	service.state.Store(int32(StateInitializing))

	_, errJob := scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() { service.tick() }),
		gocron.WithName("Refresh regional news"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if errJob != nil {
		cancel()
		return nil, errJob
	}

	return service, nil
}

// Start waits for the backend in the background, then runs the first pass
// immediately instead of waiting for the first tick.
func (service *Impl) Start() {
	if !service.track() {
		return
	}
	go func() {
		defer service.wg.Done()

		select {
		case <-service.gate.Done():
		case <-service.ctx.Done():
			return
		}

		if !service.state.CompareAndSwap(int32(StateInitializing), int32(StateFetching)) {
			return
		}
		log.Info().Msg("Feed backend ready, running first fetch pass")
		service.run()
	}()
}

func (service *Impl) Trigger() bool {
	if !service.state.CompareAndSwap(int32(StateIdle), int32(StateFetching)) {
		log.Info().Str(constants.LogState, service.State().String()).Msg("Refresh requested while busy, ignored")
		return false
	}

	if !service.track() {
		service.state.Store(int32(StateIdle))
		return false
	}
	go func() {
		defer service.wg.Done()
		service.run()
	}()
	return true
}

// track adds a goroutine to the wait group unless Shutdown already began.
func (service *Impl) track() bool {
	service.mu.Lock()
	defer service.mu.Unlock()
	if service.stopped {
		return false
	}
	service.wg.Add(1)
	return true
}

func (service *Impl) State() State {
	return State(service.state.Load())
}

func (service *Impl) LastPass() time.Time {
	nanos := service.lastPass.Load()
	if nanos == 0 {
		return time.Time{}
	}
	return time.Unix(0, nanos)
}

// Shutdown cancels the pass in progress, if any, and waits for it to return.
func (service *Impl) Shutdown() {
	service.mu.Lock()
	service.stopped = true
	service.mu.Unlock()

	service.cancel()
	service.wg.Wait()
}

func (service *Impl) tick() {
	if !service.state.CompareAndSwap(int32(StateIdle), int32(StateFetching)) {
		log.Debug().Str(constants.LogState, service.State().String()).Msg("Tick skipped")
		return
	}
	service.run()
}

// run expects the caller to have moved the state to Fetching.
func (service *Impl) run() {
	defer service.state.Store(int32(StateIdle))
	defer func() {
		if r := recover(); r != nil {
			log.Error().Err(fmt.Errorf("%v", r)).Msg("Recovered from panic in fetch pass")
		}
	}()

	if service.ctx.Err() != nil {
		return
	}

	start := time.Now()
	service.fetcher.FetchAll(service.ctx)
	if service.ctx.Err() != nil {
		return
	}
	service.lastPass.Store(time.Now().UnixNano())
	service.firstPass.Set()
	log.Info().Dur(constants.LogDuration, time.Since(start)).Msg("Fetch pass completed")
}
