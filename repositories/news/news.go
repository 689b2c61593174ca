package news

import (
	"fmt"
	"news-pulse/models/entities"
	"time"
)

// New creates the in-memory news cache with one empty feed per key.
// The key set is fixed for the lifetime of the repository.
func New(keys []string) *Impl {
	repo := &Impl{
		keys:  append([]string(nil), keys...),
		feeds: make(map[string]*entities.KeyFeed, len(keys)),
		now:   time.Now,
	}

	for _, key := range keys {
		repo.feeds[key] = &entities.KeyFeed{
			Key:       key,
			Items:     []entities.NewsItem{},
			Sentiment: entities.SentimentUnavailable,
		}
	}

	return repo
}

func (repo *Impl) Write(key string, items []entities.NewsItem, sentiment entities.Sentiment) error {
	// copied outside the critical section
	stored := copyItems(items)
	now := repo.now()

	repo.mu.Lock()
	defer repo.mu.Unlock()

	feed, found := repo.feeds[key]
	if !found {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}

	feed.Items = stored
	feed.Sentiment = sentiment
	feed.LastUpdated = now
	return nil
}

func (repo *Impl) ReadItems(key string) []entities.NewsItem {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	feed, found := repo.feeds[key]
	if !found {
		return []entities.NewsItem{}
	}

	return copyItems(feed.Items)
}

func (repo *Impl) ReadSentiment(key string) entities.Sentiment {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	feed, found := repo.feeds[key]
	if !found {
		return entities.SentimentUnavailable
	}

	return feed.Sentiment
}

// Snapshot copies every feed, in key order, under a single read lock.
func (repo *Impl) Snapshot() []entities.KeyFeed {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	snapshot := make([]entities.KeyFeed, 0, len(repo.keys))
	for _, key := range repo.keys {
		feed := repo.feeds[key]
		snapshot = append(snapshot, entities.KeyFeed{
			Key:         feed.Key,
			Items:       copyItems(feed.Items),
			Sentiment:   feed.Sentiment,
			LastUpdated: feed.LastUpdated,
		})
	}

	return snapshot
}

func (repo *Impl) Keys() []string {
	return append([]string(nil), repo.keys...)
}

func copyItems(items []entities.NewsItem) []entities.NewsItem {
	result := make([]entities.NewsItem, len(items))
	copy(result, items)
	return result
}
