package fetchhistory

import (
	"news-pulse/models/entities"
	"news-pulse/utils/databases"
	"time"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

type Repository interface {
	Save(run entities.FetchRun) error
	FetchLatest(limit int) ([]entities.FetchRun, error)
	DeleteBefore(before time.Time) (int64, error)
	Count() int64
}

type Impl struct {
	db databases.SqlConnection
}
