package history

import (
	"news-pulse/models/entities"
	"news-pulse/pkg/observer"
	"news-pulse/repositories/fetchhistory"
	"time"
)

// Service records every region fetch and serves the latest records.
type Service interface {
	observer.Observer
	Latest(limit int) ([]entities.FetchRun, error)
}

type Impl struct {
	historyRepo fetchhistory.Repository
	retention   time.Duration
	now         func() time.Time
}
