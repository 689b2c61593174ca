package application

import (
	"context"
	"news-pulse/models/constants"
	"news-pulse/models/entities"
	"news-pulse/pkg/readiness"
	"news-pulse/repositories/fetchhistory"
	"news-pulse/repositories/news"
	"news-pulse/services/api"
	"news-pulse/services/distributor"
	"news-pulse/services/feeds"
	"news-pulse/services/fetcher"
	"news-pulse/services/health"
	"news-pulse/services/history"
	"news-pulse/services/scheduler"
	"news-pulse/services/sentiment"
	"news-pulse/services/sources"
	databases "news-pulse/utils/databases"
	"news-pulse/utils/dates"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func New() (*Impl, error) {
	db := databases.New(viper.GetString(constants.SqliteURL))
	if errDB := db.Run(&entities.FetchRun{}); errDB != nil {
		return nil, errDB
	}

	location := dates.LoadLocation(viper.GetString(constants.DisplayTimezone))
	cronScheduler, errScheduler := gocron.NewScheduler(gocron.WithLocation(location))
	if errScheduler != nil {
		return nil, errScheduler
	}

	gate := readiness.New()
	firstPass := readiness.New()

	// Repositories
	newsRepo := news.New(constants.GetRegionKeys())
	historyRepo := fetchhistory.New(db)

	backend, errBackend := sources.New(sources.Config{
		UserAgent:    viper.GetString(constants.UserAgent),
		ProbeURL:     viper.GetString(constants.BackendProbeURL),
		InitAttempts: viper.GetInt(constants.BackendInitAttempts),
		InitDelay:    viper.GetDuration(constants.BackendInitDelay),
		Timeout:      viper.GetDuration(constants.FeedTimeout),
	}, gate)
	if errBackend != nil {
		return nil, errBackend
	}

	sentimentService := sentiment.New(sentiment.Config{
		BaseURL:  viper.GetString(constants.SentimentBaseURL),
		APIKey:   viper.GetString(constants.SentimentAPIKey),
		Model:    viper.GetString(constants.SentimentModel),
		Timeout:  viper.GetDuration(constants.SentimentTimeout),
		CacheTTL: viper.GetDuration(constants.SentimentCache),
	})

	fetcherService := fetcher.New(constants.GetRegions(),
		viper.GetString(constants.FeedBaseURL), viper.GetDuration(constants.FeedTimeout),
		backend, feeds.New(location), newsRepo, sentimentService)

	historyService, errHistory := history.New(cronScheduler, historyRepo,
		viper.GetString(constants.HistoryPurgeCronTab), viper.GetDuration(constants.HistoryRetention))
	if errHistory != nil {
		return nil, errHistory
	}
	fetcherService.RegisterObserver(historyService)

	schedulerService, errJob := scheduler.New(cronScheduler, gate, firstPass, fetcherService,
		viper.GetDuration(constants.FetchInterval))
	if errJob != nil {
		return nil, errJob
	}

	healthService, errHealth := health.New(cronScheduler, viper.GetString(constants.HealthCronTab),
		gate, backend, schedulerService, db)
	if errHealth != nil {
		return nil, errHealth
	}

	distributorService := distributor.New(newsRepo, firstPass, distributor.Config{
		ReadinessTimeout: viper.GetDuration(constants.ReadinessTimeout),
		StreamInterval:   viper.GetDuration(constants.StreamInterval),
		ErrorBackoff:     viper.GetDuration(constants.StreamErrorBackoff),
		Location:         location,
	})

	apiServer := api.New(viper.GetInt(constants.HTTPPort),
		distributorService, schedulerService, healthService, historyService)

	ctx, cancel := context.WithCancel(context.Background())
	return &Impl{
		cronScheduler:    cronScheduler,
		backend:          backend,
		schedulerService: schedulerService,
		apiServer:        apiServer,
		db:               db,
		ctx:              ctx,
		cancel:           cancel,
	}, nil
}

func (app *Impl) Run() {
	app.cronScheduler.Start()
	go app.backend.Initialize(app.ctx)
	app.schedulerService.Start()

	for _, job := range app.cronScheduler.Jobs() {
		scheduledTime, err := job.NextRun()
		if err == nil {
			log.Info().Msgf("%v scheduled at %v", job.Name(), scheduledTime)
		}
	}

	go app.apiServer.ListenAndServe()
}

func (app *Impl) Shutdown() {
	app.apiServer.Shutdown()
	app.cancel()
	app.schedulerService.Shutdown()
	if err := app.cronScheduler.Shutdown(); err != nil {
		log.Error().Err(err).Msg("Cannot shutdown scheduler, continuing...")
	}
	app.db.Shutdown()
	log.Info().Msgf("Application is no longer running")
}
