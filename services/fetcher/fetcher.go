package fetcher

import (
	"context"
	"fmt"
	"news-pulse/models/constants"
	"news-pulse/models/entities"
	"news-pulse/pkg/observer"
	"news-pulse/repositories/news"
	"news-pulse/services/feeds"
	"news-pulse/services/sentiment"
	"news-pulse/services/sources"
	"time"

	"github.com/rs/zerolog/log"
)

func New(regions []constants.Region, baseURL string, timeout time.Duration,
	source sources.Source, parser feeds.Parser,
	newsRepo news.Repository, sentimentService sentiment.Service) *Impl {
	return &Impl{
		regions:   regions,
		baseURL:   baseURL,
		timeout:   timeout,
		source:    source,
		parser:    parser,
		newsRepo:  newsRepo,
		sentiment: sentimentService,
		now:       time.Now,
		observers: map[observer.Observer]struct{}{},
	}
}

func (service *Impl) RegisterObserver(o observer.Observer) {
	service.observersMu.Lock()
	defer service.observersMu.Unlock()
	service.observers[o] = struct{}{}
}

func (service *Impl) notify(e observer.Event) {
	service.observersMu.RLock()
	defer service.observersMu.RUnlock()
	for o := range service.observers {
		o.OnNotify(e)
	}
}

// FetchAll fetches every region one after the other, in configured order.
// A failing region never stops the pass.
func (service *Impl) FetchAll(ctx context.Context) []Result {
	log.Info().Msg("Start fetching regions")
	start := service.now()

	results := make([]Result, 0, len(service.regions))
	for _, region := range service.regions {
		if ctx.Err() != nil {
			log.Warn().Err(ctx.Err()).Msg("Fetch pass interrupted")
			break
		}
		results = append(results, service.FetchOne(ctx, region))
	}

	failed := 0
	for _, result := range results {
		if result.Err != nil {
			failed++
		}
	}

	log.Info().
		Dur(constants.LogDuration, service.now().Sub(start)).
		Int("failed", failed).
		Msg("End fetching regions")
	service.notify(observer.Event{E: observer.PassCompletedEvent, StartedAt: start, Duration: service.now().Sub(start)})
	return results
}

func (service *Impl) FetchOne(ctx context.Context, region constants.Region) (result Result) {
	result = Result{
		Region:    region.Key,
		FeedURL:   region.FeedURL(service.baseURL),
		StartedAt: service.now(),
	}

	defer func() {
		if r := recover(); r != nil {
			result.Err = fmt.Errorf("panic while fetching %s: %v", region.Key, r)
			result.Items = []entities.NewsItem{}
			result.Sentiment = entities.SentimentUnavailable
			log.Error().Err(result.Err).Str(constants.LogRegion, region.Key).Msg("Recovered from panic, region emptied")
			service.write(region.Key, result.Items, result.Sentiment)
		}
		result.Duration = service.now().Sub(result.StartedAt)
		service.notify(observer.NewRegionFetchedEvent(result.Region, result.FeedURL, result.StartedAt,
			result.Duration, len(result.Items), string(result.Sentiment), result.Err))
	}()

	log.Info().
		Str(constants.LogRegion, region.Key).
		Str(constants.LogFeedURL, result.FeedURL).
		Msg("Reading feed source...")

	result.Items = service.retrieve(ctx, &result)

	// sentiment untouched until the new label is known
	service.write(region.Key, result.Items, service.newsRepo.ReadSentiment(region.Key))

	result.Sentiment = service.sentiment.Analyze(ctx, region.Key, entities.Headlines(result.Items))
	service.write(region.Key, result.Items, result.Sentiment)

	log.Info().
		Str(constants.LogRegion, region.Key).
		Int(constants.LogItemCount, len(result.Items)).
		Str(constants.LogSentiment, string(result.Sentiment)).
		Msg("Feed read and cached")
	return result
}

func (service *Impl) retrieve(ctx context.Context, result *Result) []entities.NewsItem {
	fetchCtx, cancel := context.WithTimeout(ctx, service.timeout)
	defer cancel()

	data, err := service.source.Fetch(fetchCtx, result.FeedURL)
	if err != nil {
		result.Err = err
		log.Error().
			Err(err).
			Str(constants.LogRegion, result.Region).
			Str(constants.LogFeedURL, result.FeedURL).
			Msg("Cannot retrieve feed, region emptied")
		return []entities.NewsItem{}
	}

	return service.parser.Parse(data, service.now())
}

func (service *Impl) write(key string, items []entities.NewsItem, label entities.Sentiment) {
	if err := service.newsRepo.Write(key, items, label); err != nil {
		log.Error().Err(err).Str(constants.LogRegion, key).Msg("Cannot write region in cache")
	}
}
