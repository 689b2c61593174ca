package health

import (
	"news-pulse/models/constants"
	"news-pulse/pkg/readiness"
	"news-pulse/services/scheduler"
	databases "news-pulse/utils/databases"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
)

func New(cronScheduler gocron.Scheduler, cronTab string, gate *readiness.Gate, backend CapabilityProvider,
	schedulerService scheduler.Service, db databases.SqlConnection) (*Impl, error) {
	service := Impl{
		gate:      gate,
		backend:   backend,
		scheduler: schedulerService,
		db:        db,
	}

	_, errJob := cronScheduler.NewJob(
		gocron.CronJob(cronTab, false),
		gocron.NewTask(func() { service.echo() }),
		gocron.WithName("Check app running"),
	)
	if errJob != nil {
		return nil, errJob
	}

	return &service, nil
}

func (service *Impl) Report() Report {
	return Report{
		Ready:             service.gate.IsSet(),
		FullCapability:    service.backend.FullCapability(),
		State:             service.scheduler.State().String(),
		LastPass:          service.scheduler.LastPass(),
		DatabaseConnected: service.db.IsConnected(),
	}
}

func (service *Impl) echo() {
	report := service.Report()
	log.Info().
		Bool("ready", report.Ready).
		Bool("fullCapability", report.FullCapability).
		Str(constants.LogState, report.State).
		Bool("databaseConnected", report.DatabaseConnected).
		Msgf("Application is running")
}
