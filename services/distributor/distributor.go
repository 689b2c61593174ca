package distributor

import (
	"context"
	"encoding/json"
	"errors"
	"news-pulse/models/constants"
	"news-pulse/models/entities"
	"news-pulse/pkg/readiness"
	"news-pulse/repositories/news"
	"news-pulse/utils/dates"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"
)

func New(newsRepo news.Repository, gate *readiness.Gate, cfg Config) *Impl {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &Impl{
		newsRepo: newsRepo,
		gate:     gate,
		cfg:      cfg,
		now:      time.Now,
	}
}

// Query answers once the first fetch pass has filled the cache, waiting
// at most the readiness timeout.
func (service *Impl) Query(ctx context.Context) (*Snapshot, error) {
	if !service.gate.Wait(ctx, service.cfg.ReadinessTimeout) {
		return nil, ErrInitializing
	}
	return service.snapshot(), nil
}

// Stream pushes a full snapshot every stream interval until ctx ends or the
// subscriber is gone. Other failures are reported to the subscriber as an
// error event and the loop resumes after the error backoff.
func (service *Impl) Stream(ctx context.Context, emitter Emitter) error {
	for {
		err := service.emitOnce(ctx, emitter)
		switch {
		case ctx.Err() != nil:
			return nil
		case errors.Is(err, ErrSubscriberGone):
			return nil
		case err != nil:
			log.Warn().Err(err).Msg("Stream event failed, backing off")
			if errEmit := emitter.Emit(encodeError(err)); errors.Is(errEmit, ErrSubscriberGone) {
				return nil
			}
			if !sleep(ctx, service.cfg.ErrorBackoff) {
				return nil
			}
		default:
			if !sleep(ctx, service.cfg.StreamInterval) {
				return nil
			}
		}
	}
}

func (service *Impl) emitOnce(ctx context.Context, emitter Emitter) error {
	snapshot, err := service.Query(ctx)
	if err != nil {
		return err
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	return emitter.Emit(data)
}

func (service *Impl) snapshot() *Snapshot {
	now := service.now()
	feeds := service.newsRepo.Snapshot()

	views := make([]KeyFeedView, 0, len(feeds))
	for _, feed := range feeds {
		views = append(views, service.toView(feed, now))
	}

	return &Snapshot{
		News:        views,
		GeneratedAt: now.In(service.cfg.Location),
	}
}

func (service *Impl) toView(feed entities.KeyFeed, now time.Time) KeyFeedView {
	items := make([]ItemView, 0, len(feed.Items))
	for _, item := range feed.Items {
		items = append(items, ItemView{
			Headline:    item.Headline,
			Source:      item.Source,
			Link:        item.Link,
			Timestamp:   dates.ClockString(item.PublishedAt, service.cfg.Location),
			PublishedAt: item.PublishedAt,
		})
	}

	analysis := string(feed.Sentiment)
	if len(items) == 0 {
		analysis = noNewsAnalysis
	}

	view := KeyFeedView{
		Name:      strings.ToLower(feed.Key),
		Key:       feed.Key,
		Items:     items,
		Analysis:  analysis,
		Sentiment: string(feed.Sentiment),
		Updated:   feed.LastUpdated,
	}
	if !feed.LastUpdated.IsZero() {
		view.UpdatedAgo = humanize.RelTime(feed.LastUpdated, now, "ago", "from now")
	}
	return view
}

func encodeError(err error) []byte {
	data, errMarshal := json.Marshal(errorEvent{Error: err.Error()})
	if errMarshal != nil {
		log.Error().Err(errMarshal).Str(constants.LogState, "stream").Msg("Cannot encode error event")
		return []byte(`{"error":"internal error"}`)
	}
	return data
}

func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
