package constants

import "github.com/rs/zerolog"

const (
	LogFileName      = "fileName"
	LogRegion        = "region"
	LogFeedURL       = "feedURL"
	LogFeedType      = "feedType"
	LogItemCount     = "itemCount"
	LogSentiment     = "sentiment"
	LogState         = "state"
	LogDuration      = "duration"
	LogAttempt       = "attempt"
	LogSubscriberID  = "subscriberID"
	LogRowCount      = "rowCount"
	LogLevelFallback = zerolog.InfoLevel
)
