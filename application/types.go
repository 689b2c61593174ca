package application

import (
	"context"
	"news-pulse/services/api"
	"news-pulse/services/scheduler"
	"news-pulse/services/sources"
	databases "news-pulse/utils/databases"

	"github.com/go-co-op/gocron/v2"
)

type Application interface {
	Run()
	Shutdown()
}

type Impl struct {
	cronScheduler    gocron.Scheduler
	backend          *sources.Backend
	schedulerService scheduler.Service
	apiServer        api.Server
	db               databases.SqlConnection
	ctx              context.Context
	cancel           context.CancelFunc
}
