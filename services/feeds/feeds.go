package feeds

import (
	"bytes"
	"news-pulse/models/constants"
	"news-pulse/models/entities"
	"news-pulse/utils/dates"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/mmcdole/gofeed/rss"
	"github.com/rs/zerolog/log"
)

func New(location *time.Location) *Impl {
	if location == nil {
		location = time.UTC
	}

	return &Impl{
		rssParser:  &rss.Parser{},
		feedParser: gofeed.NewParser(),
		location:   location,
	}
}

func (service *Impl) Parse(data []byte, fetchedAt time.Time) []entities.NewsItem {
	if len(bytes.TrimSpace(data)) == 0 {
		log.Warn().Msg("Empty feed document, no item read")
		return []entities.NewsItem{}
	}

	feedType := gofeed.DetectFeedType(bytes.NewReader(data))
	switch feedType {
	case gofeed.FeedTypeRSS:
		return service.parseRSS(data, fetchedAt)
	case gofeed.FeedTypeAtom, gofeed.FeedTypeJSON:
		return service.parseUniversal(data, fetchedAt)
	default:
		log.Warn().Msg("Unrecognized feed document, no item read")
		return []entities.NewsItem{}
	}
}

func (service *Impl) parseRSS(data []byte, fetchedAt time.Time) []entities.NewsItem {
	feed, err := service.rssParser.Parse(bytes.NewReader(data))
	if err != nil {
		log.Warn().Err(err).Str(constants.LogFeedType, "rss").Msg("Malformed feed document, no item read")
		return []entities.NewsItem{}
	}

	items := make([]entities.NewsItem, 0, len(feed.Items))
	for _, feedItem := range feed.Items {
		if feedItem == nil {
			continue
		}

		source := ""
		if feedItem.Source != nil {
			source = feedItem.Source.Title
		}

		item, ok := service.newItem(feedItem.Title, feedItem.Link, source,
			feedItem.PubDate, feedItem.PubDateParsed, fetchedAt)
		if !ok {
			log.Debug().Str(constants.LogFeedType, "rss").Msg("Entry without title or link, skipped")
			continue
		}
		items = append(items, item)
	}

	return items
}

func (service *Impl) parseUniversal(data []byte, fetchedAt time.Time) []entities.NewsItem {
	feed, err := service.feedParser.Parse(bytes.NewReader(data))
	if err != nil {
		log.Warn().Err(err).Msg("Malformed feed document, no item read")
		return []entities.NewsItem{}
	}

	items := make([]entities.NewsItem, 0, len(feed.Items))
	for _, feedItem := range feed.Items {
		if feedItem == nil {
			continue
		}

		source := feed.Title
		if feedItem.Author != nil && strings.TrimSpace(feedItem.Author.Name) != "" {
			source = feedItem.Author.Name
		}

		published := feedItem.PublishedParsed
		if published == nil {
			published = feedItem.UpdatedParsed
		}

		item, ok := service.newItem(feedItem.Title, feedItem.Link, source,
			feedItem.Published, published, fetchedAt)
		if !ok {
			log.Debug().Str(constants.LogFeedType, feed.FeedType).Msg("Entry without title or link, skipped")
			continue
		}
		items = append(items, item)
	}

	return items
}

func (service *Impl) newItem(title, link, source, rawDate string, parsedDate *time.Time,
	fetchedAt time.Time) (entities.NewsItem, bool) {
	title = strings.TrimSpace(title)
	link = strings.TrimSpace(link)
	if title == "" || link == "" {
		return entities.NewsItem{}, false
	}

	source = strings.TrimSpace(source)
	if source == "" {
		source = entities.UnknownSource
	}

	return entities.NewsItem{
		Headline:    title,
		Source:      source,
		Link:        link,
		PublishedAt: service.publishedAt(rawDate, parsedDate, fetchedAt),
		FetchedAt:   fetchedAt,
	}, true
}

func (service *Impl) publishedAt(rawDate string, parsedDate *time.Time, fetchedAt time.Time) time.Time {
	if published, ok := dates.ParseFeedDate(strings.TrimSpace(rawDate)); ok {
		return published.In(service.location)
	}

	if parsedDate != nil && !parsedDate.IsZero() {
		return parsedDate.In(service.location)
	}

	return fetchedAt.In(service.location)
}
