package constants

import (
	"time"

	"github.com/rs/zerolog"
)

const (
	ConfigFileName = ".env"

	// Flag used to override the config file path.
	ConfigFlag = "config"

	// Zerolog values from [trace, debug, info, warn, error, fatal, panic].
	LogLevel = "LOG_LEVEL"

	// Port serving news-data, status and the news stream.
	HTTPPort = "HTTP_PORT"

	// Delay between two fetch passes. Duration type.
	FetchInterval = "FETCH_INTERVAL"

	// Delay between two stream emissions. Duration type.
	StreamInterval = "STREAM_INTERVAL"

	// Pause after an error event on the stream. Duration type.
	StreamErrorBackoff = "STREAM_ERROR_BACKOFF"

	// Maximum wait on the readiness gate before answering "initializing". Duration type.
	ReadinessTimeout = "READINESS_TIMEOUT"

	// Timeout of a single feed retrieval. Duration type.
	FeedTimeout = "FEED_TIMEOUT"

	// Search endpoint the regional queries are appended to.
	FeedBaseURL = "FEED_BASE_URL"

	// User agent sent to feed sources.
	UserAgent = "USER_AGENT"

	// IANA timezone used to display publication dates.
	DisplayTimezone = "DISPLAY_TIMEZONE"

	// URL visited to warm up the session backend.
	BackendProbeURL = "BACKEND_PROBE_URL"

	// Warm-up attempts before falling back to direct retrieval.
	BackendInitAttempts = "BACKEND_INIT_ATTEMPTS"

	// Delay between two warm-up attempts. Duration type.
	BackendInitDelay = "BACKEND_INIT_DELAY"

	// OpenAI compatible endpoint used for sentiment analysis.
	SentimentBaseURL = "SENTIMENT_BASE_URL"

	//nolint:gosec // False positive.
	// API key of the sentiment endpoint.
	SentimentAPIKey = "SENTIMENT_API_KEY"

	// Model asked for sentiment analysis.
	SentimentModel = "SENTIMENT_MODEL"

	// Timeout of a single sentiment call. Duration type.
	SentimentTimeout = "SENTIMENT_TIMEOUT"

	// Sentiment memo lifetime. Duration type.
	SentimentCache = "SENTIMENT_CACHE"

	// SQLITE_URL URL.
	SqliteURL = "SQLITE_URL"

	// Cron tab to health.
	HealthCronTab = "HEALTH_CRON_TAB"

	// Age after which fetch history rows are purged. Duration type.
	HistoryRetention = "HISTORY_RETENTION"

	// Cron tab to purge fetch history.
	HistoryPurgeCronTab = "HISTORY_PURGE_CRON_TAB"

	defaultHTTPPort            = 5000
	defaultFetchInterval       = 20 * time.Second
	defaultStreamInterval      = 2 * time.Second
	defaultStreamErrorBackoff  = 5 * time.Second
	defaultReadinessTimeout    = 10 * time.Second
	defaultFeedTimeout         = 15 * time.Second
	defaultFeedBaseURL         = "https://news.google.com/rss/search"
	defaultUserAgent           = "Mozilla/5.0"
	defaultDisplayTimezone     = "Asia/Kolkata"
	defaultBackendProbeURL     = "https://news.google.com"
	defaultBackendInitAttempts = 3
	defaultBackendInitDelay    = 2 * time.Second
	defaultSentimentBaseURL    = "https://openrouter.ai/api/v1"
	defaultSentimentAPIKey     = ""
	defaultSentimentModel      = "nvidia/llama-3.1-nemotron-70b-instruct:free"
	defaultSentimentTimeout    = 20 * time.Second
	defaultSentimentCache      = 10 * time.Minute
	defaultSqliteURL           = "news-pulse.db"
	defaultHealthCrontab       = "* * * * *"
	defaultHistoryRetention    = 72 * time.Hour
	defaultHistoryPurgeCrontab = "0 * * * *"
	defaultLogLevel            = zerolog.InfoLevel
)

func GetDefaultConfigValues() map[string]any {
	return map[string]any{
		LogLevel:            defaultLogLevel.String(),
		HTTPPort:            defaultHTTPPort,
		FetchInterval:       defaultFetchInterval,
		StreamInterval:      defaultStreamInterval,
		StreamErrorBackoff:  defaultStreamErrorBackoff,
		ReadinessTimeout:    defaultReadinessTimeout,
		FeedTimeout:         defaultFeedTimeout,
		FeedBaseURL:         defaultFeedBaseURL,
		UserAgent:           defaultUserAgent,
		DisplayTimezone:     defaultDisplayTimezone,
		BackendProbeURL:     defaultBackendProbeURL,
		BackendInitAttempts: defaultBackendInitAttempts,
		BackendInitDelay:    defaultBackendInitDelay,
		SentimentBaseURL:    defaultSentimentBaseURL,
		SentimentAPIKey:     defaultSentimentAPIKey,
		SentimentModel:      defaultSentimentModel,
		SentimentTimeout:    defaultSentimentTimeout,
		SentimentCache:      defaultSentimentCache,
		SqliteURL:           defaultSqliteURL,
		HealthCronTab:       defaultHealthCrontab,
		HistoryRetention:    defaultHistoryRetention,
		HistoryPurgeCronTab: defaultHistoryPurgeCrontab,
	}
}
