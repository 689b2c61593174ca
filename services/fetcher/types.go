package fetcher

import (
	"context"
	"news-pulse/models/constants"
	"news-pulse/models/entities"
	"news-pulse/pkg/observer"
	"news-pulse/repositories/news"
	"news-pulse/services/feeds"
	"news-pulse/services/sentiment"
	"news-pulse/services/sources"
	"sync"
	"time"
)

type Service interface {
	FetchOne(ctx context.Context, region constants.Region) Result
	FetchAll(ctx context.Context) []Result
	observer.Notifier
}

// Result of one region fetch. An empty item list with a nil Err is a
// successful fetch of a quiet feed.
type Result struct {
	Region    string
	FeedURL   string
	Items     []entities.NewsItem
	Sentiment entities.Sentiment
	Err       error
	StartedAt time.Time
	Duration  time.Duration
}

type Impl struct {
	regions     []constants.Region
	baseURL     string
	timeout     time.Duration
	source      sources.Source
	parser      feeds.Parser
	newsRepo    news.Repository
	sentiment   sentiment.Service
	now         func() time.Time
	observersMu sync.RWMutex
	observers   map[observer.Observer]struct{}
}
