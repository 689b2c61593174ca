package sources

import (
	"context"
	"errors"
	"net/http"
	"news-pulse/pkg/readiness"
	"sync/atomic"
	"time"
)

var (
	ErrUnexpectedStatus = errors.New("feed source answered with an unexpected status")
	ErrProbeFailed      = errors.New("session backend probe failed")
)

// Source retrieves raw feed documents.
type Source interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

type Config struct {
	UserAgent    string
	ProbeURL     string
	InitAttempts int
	InitDelay    time.Duration
	Timeout      time.Duration
}

// Backend fetches through a warmed-up session when available and falls
// back to direct retrieval otherwise.
type Backend struct {
	cfg            Config
	gate           *readiness.Gate
	session        *httpSource
	direct         *httpSource
	fullCapability atomic.Bool
}

type httpSource struct {
	client    *http.Client
	userAgent string
	headers   map[string]string
}
