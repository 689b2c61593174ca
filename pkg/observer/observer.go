package observer

import "time"

type EventType int

const (
	RegionFetchedEvent EventType = 1
	PassCompletedEvent EventType = 2
)

type Event struct {
	E         EventType
	Region    string
	FeedURL   string
	StartedAt time.Time
	Duration  time.Duration
	ItemCount int
	Sentiment string
	Err       error
}

func NewRegionFetchedEvent(region, feedURL string, startedAt time.Time, duration time.Duration,
	itemCount int, sentiment string, err error) Event {
	return Event{
		E:         RegionFetchedEvent,
		Region:    region,
		FeedURL:   feedURL,
		StartedAt: startedAt,
		Duration:  duration,
		ItemCount: itemCount,
		Sentiment: sentiment,
		Err:       err,
	}
}

type Observer interface {
	OnNotify(Event)
}

type Notifier interface {
	RegisterObserver(Observer)
}
