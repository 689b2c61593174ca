package distributor

import (
	"context"
	"errors"
	"news-pulse/pkg/readiness"
	"news-pulse/repositories/news"
	"time"
)

const (
	noNewsAnalysis = "No news available"
)

var (
	ErrInitializing   = errors.New("feed backend is still initializing")
	ErrSubscriberGone = errors.New("stream subscriber is gone")
)

type Service interface {
	Query(ctx context.Context) (*Snapshot, error)
	Stream(ctx context.Context, emitter Emitter) error
}

// Emitter pushes one encoded event to a stream subscriber. It returns
// ErrSubscriberGone once the subscriber cannot be reached anymore.
type Emitter interface {
	Emit(data []byte) error
}

type Config struct {
	ReadinessTimeout time.Duration
	StreamInterval   time.Duration
	ErrorBackoff     time.Duration
	Location         *time.Location
}

type Impl struct {
	newsRepo news.Repository
	gate     *readiness.Gate
	cfg      Config
	now      func() time.Time
}

type Snapshot struct {
	News        []KeyFeedView `json:"news"`
	GeneratedAt time.Time     `json:"generatedAt"`
}

type KeyFeedView struct {
	Name       string     `json:"name"`
	Key        string     `json:"key"`
	Items      []ItemView `json:"items"`
	Analysis   string     `json:"analysis"`
	Sentiment  string     `json:"sentiment"`
	Updated    time.Time  `json:"updated"`
	UpdatedAgo string     `json:"updatedAgo"`
}

type ItemView struct {
	Headline    string    `json:"headline"`
	Source      string    `json:"source"`
	Link        string    `json:"link"`
	Timestamp   string    `json:"timestamp"`
	PublishedAt time.Time `json:"publishedAt"`
}

type errorEvent struct {
	Error string `json:"error"`
}
