package api

import (
	"net/http"
	"news-pulse/services/distributor"
	"news-pulse/services/health"
	"news-pulse/services/history"
	"news-pulse/services/scheduler"
	"time"
)

const (
	newsDataPath   = "/news-data"
	newsStreamPath = "/news-stream"
	statusPath     = "/status"
	refreshPath    = "/refresh"
	historyPath    = "/history"
	healthzPath    = "/healthz"

	paramLimit = "limit"

	headerContentType   = "Content-Type"
	contentTypeJSON     = "application/json; charset=utf-8"
	contentTypeStream   = "text/event-stream"
	initializingMessage = "Initializing..."

	requestTimeout    = 30 * time.Second
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

type Server interface {
	ListenAndServe()
	Shutdown()
}

type Impl struct {
	distributor distributor.Service
	scheduler   scheduler.Service
	health      health.Service
	history     history.Service
	server      *http.Server
}

type statusResponse struct {
	ScraperReady      bool   `json:"scraper_ready"`
	ChromeInitialized bool   `json:"chrome_initialized"`
	State             string `json:"state"`
}

type refreshResponse struct {
	Triggered bool `json:"triggered"`
}

type errorResponse struct {
	Error string `json:"error"`
}
