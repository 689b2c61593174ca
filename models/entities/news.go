package entities

import "time"

const UnknownSource = "Unknown Source"

type NewsItem struct {
	Headline    string
	Source      string
	Link        string
	PublishedAt time.Time
	FetchedAt   time.Time
}

type KeyFeed struct {
	Key         string
	Items       []NewsItem
	Sentiment   Sentiment
	LastUpdated time.Time
}

// Headlines returns the item headlines in feed order.
func Headlines(items []NewsItem) []string {
	headlines := make([]string, 0, len(items))
	for _, item := range items {
		headlines = append(headlines, item.Headline)
	}
	return headlines
}
