package history

import (
	"news-pulse/models/constants"
	"news-pulse/models/entities"
	"news-pulse/pkg/observer"
	"news-pulse/repositories/fetchhistory"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
)

func New(scheduler gocron.Scheduler, historyRepo fetchhistory.Repository,
	purgeCronTab string, retention time.Duration) (*Impl, error) {
	service := &Impl{
		historyRepo: historyRepo,
		retention:   retention,
		now:         time.Now,
	}

	_, errJob := scheduler.NewJob(
		gocron.CronJob(purgeCronTab, false),
		gocron.NewTask(func() { service.purge() }),
		gocron.WithName("Purge fetch history"),
	)
	if errJob != nil {
		return nil, errJob
	}

	return service, nil
}

func (service *Impl) OnNotify(e observer.Event) {
	switch e.E {
	case observer.RegionFetchedEvent:
		service.record(e)
	case observer.PassCompletedEvent:
		log.Debug().
			Dur(constants.LogDuration, e.Duration).
			Int64(constants.LogRowCount, service.historyRepo.Count()).
			Msg("Fetch pass recorded")
	default:
		log.Warn().Msgf("Event not handled: %v", e.E)
	}
}

func (service *Impl) Latest(limit int) ([]entities.FetchRun, error) {
	return service.historyRepo.FetchLatest(limit)
}

func (service *Impl) record(e observer.Event) {
	run := entities.FetchRun{
		RegionKey:  e.Region,
		FeedURL:    e.FeedURL,
		StartedAt:  e.StartedAt,
		DurationMs: e.Duration.Milliseconds(),
		ItemCount:  e.ItemCount,
		Failed:     e.Err != nil,
		Sentiment:  e.Sentiment,
	}
	if e.Err != nil {
		run.Error = e.Err.Error()
	}

	if err := service.historyRepo.Save(run); err != nil {
		log.Error().Err(err).Str(constants.LogRegion, e.Region).Msg("Cannot record fetch run, continuing...")
	}
}

func (service *Impl) purge() {
	deleted, err := service.historyRepo.DeleteBefore(service.now().Add(-service.retention))
	if err != nil {
		log.Error().Err(err).Msg("Cannot purge fetch history")
		return
	}
	log.Info().Int64(constants.LogRowCount, deleted).Msg("Fetch history purged")
}
