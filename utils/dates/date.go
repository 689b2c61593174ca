package dates

import (
	"time"

	"github.com/rs/zerolog/log"
)

const (
	ClockFormat = "03:04 PM"
)

// LoadLocation returns the named location, UTC when it is unknown.
func LoadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Warn().Err(err).Msgf("Unknown timezone '%s', continue with UTC...", name)
		return time.UTC
	}
	return location
}

// ParseFeedDate parses dates in the RFC1123 flavours used by syndication feeds.
// A zone abbreviation time cannot resolve (e.g. "EST" outside its local zone)
// is reported as a failure rather than read as UTC.
func ParseFeedDate(value string) (time.Time, bool) {
	for _, layout := range []string{time.RFC1123, time.RFC1123Z, time.RFC822, time.RFC822Z} {
		parsed, err := time.Parse(layout, value)
		if err != nil {
			continue
		}
		if name, offset := parsed.Zone(); offset == 0 && !isUTCName(name) {
			return time.Time{}, false
		}
		return parsed, true
	}
	return time.Time{}, false
}

func isUTCName(name string) bool {
	switch name {
	case "", "UTC", "GMT", "UT", "Z":
		return true
	default:
		return false
	}
}

func ClockString(from time.Time, location *time.Location) string {
	return from.In(location).Format(ClockFormat)
}
