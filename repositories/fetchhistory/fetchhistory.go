package fetchhistory

import (
	"fmt"
	"news-pulse/models/entities"
	"news-pulse/utils/databases"
	"time"
)

func New(db databases.SqlConnection) *Impl {
	return &Impl{db: db}
}

func (repo *Impl) Save(run entities.FetchRun) error {
	if err := repo.db.GetDB().Create(&run).Error; err != nil {
		return fmt.Errorf("failed to save fetch run: %w", err)
	}
	return nil
}

// FetchLatest returns the most recent runs first. Out of range limits are
// clamped.
func (repo *Impl) FetchLatest(limit int) ([]entities.FetchRun, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	var runs []entities.FetchRun
	res := repo.db.GetDB().
		Order("started_at desc").
		Order("id desc").
		Limit(limit).
		Find(&runs)

	return runs, res.Error
}

func (repo *Impl) DeleteBefore(before time.Time) (int64, error) {
	res := repo.db.GetDB().Where("started_at < ?", before).Delete(&entities.FetchRun{})
	return res.RowsAffected, res.Error
}

func (repo *Impl) Count() int64 {
	count := new(int64)
	repo.db.GetDB().Model(&entities.FetchRun{}).Count(count)

	return *count
}
