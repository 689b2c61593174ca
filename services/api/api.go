package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"news-pulse/services/distributor"
	"news-pulse/services/health"
	"news-pulse/services/history"
	"news-pulse/services/scheduler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

func New(port int, distributorService distributor.Service, schedulerService scheduler.Service,
	healthService health.Service, historyService history.Service) *Impl {
	service := &Impl{
		distributor: distributorService,
		scheduler:   schedulerService,
		health:      healthService,
		history:     historyService,
	}

	// request contexts derive from baseCtx so open streams end on Shutdown
	baseCtx, cancel := context.WithCancel(context.Background())
	service.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           service.Router(),
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}
	service.server.RegisterOnShutdown(cancel)

	return service
}

// Router serves the news endpoints. The stream route stays outside the
// request timeout since it lives as long as its subscriber.
func (service *Impl) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(requestTimeout))
		r.Get(newsDataPath, service.handleNewsData)
		r.Get(statusPath, service.handleStatus)
		r.Post(refreshPath, service.handleRefresh)
		r.Get(historyPath, service.handleHistory)
		r.Get(healthzPath, service.handleHealthz)
	})

	r.Get(newsStreamPath, service.handleNewsStream)

	return r
}

func (service *Impl) ListenAndServe() {
	log.Info().Msgf("HTTP server listening on %s", service.server.Addr)
	if err := service.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("HTTP server stopped unexpectedly")
	}
}

func (service *Impl) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := service.server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Cannot shutdown HTTP server gracefully, continuing...")
	}
}
