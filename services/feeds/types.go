package feeds

import (
	"news-pulse/models/entities"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/mmcdole/gofeed/rss"
)

type Parser interface {
	// Parse never fails: malformed documents yield no items.
	Parse(data []byte, fetchedAt time.Time) []entities.NewsItem
}

type Impl struct {
	rssParser  *rss.Parser
	feedParser *gofeed.Parser
	location   *time.Location
}
