package news

import (
	"errors"
	"news-pulse/models/entities"
	"sync"
	"time"
)

var (
	ErrUnknownKey = errors.New("unknown region key")
)

type Repository interface {
	Write(key string, items []entities.NewsItem, sentiment entities.Sentiment) error
	ReadItems(key string) []entities.NewsItem
	ReadSentiment(key string) entities.Sentiment
	Snapshot() []entities.KeyFeed
	Keys() []string
}

type Impl struct {
	mu    sync.RWMutex
	keys  []string
	feeds map[string]*entities.KeyFeed
	now   func() time.Time
}
