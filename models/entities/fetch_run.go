package entities

import "time"

type FetchRun struct {
	ID         uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	RegionKey  string    `json:"region" gorm:"index"`
	FeedURL    string    `json:"feedURL"`
	StartedAt  time.Time `json:"startedAt" gorm:"index"`
	DurationMs int64     `json:"durationMs"`
	ItemCount  int       `json:"itemCount"`
	Failed     bool      `json:"failed"`
	Error      string    `json:"error,omitempty"`
	Sentiment  string    `json:"sentiment"`
}
