package sources

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"news-pulse/models/constants"
	"news-pulse/pkg/readiness"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/publicsuffix"
)

const (
	defaultTimeout      = 15 * time.Second
	defaultInitAttempts = 3
	defaultInitDelay    = 2 * time.Second
	maxFeedSize         = 10 << 20
)

func New(cfg Config, gate *readiness.Gate) (*Backend, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.InitAttempts <= 0 {
		cfg.InitAttempts = defaultInitAttempts
	}
	if cfg.InitDelay < 0 {
		cfg.InitDelay = defaultInitDelay
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, err
	}

	return &Backend{
		cfg:  cfg,
		gate: gate,
		session: &httpSource{
			client:    &http.Client{Timeout: cfg.Timeout, Jar: jar},
			userAgent: cfg.UserAgent,
			headers: map[string]string{
				"Accept":          "application/rss+xml,application/xml;q=0.9,text/xml;q=0.8,*/*;q=0.5",
				"Accept-Language": "en-IN,en;q=0.9",
			},
		},
		direct: &httpSource{
			client:    &http.Client{Timeout: cfg.Timeout},
			userAgent: cfg.UserAgent,
		},
	}, nil
}

// Initialize warms the session backend up and opens the readiness gate,
// whether the warm-up succeeded or the backend fell back to direct retrieval.
func (b *Backend) Initialize(ctx context.Context) {
	defer b.gate.Set()

	log.Info().Str(constants.LogFeedURL, b.cfg.ProbeURL).Msg("Starting feed backend initialization...")
	attempt := 0
	operation := func() error {
		attempt++
		err := b.probe(ctx)
		if err != nil {
			log.Warn().Err(err).Int(constants.LogAttempt, attempt).Msgf("Backend warm-up failed (%d/%d)", attempt, b.cfg.InitAttempts)
		}
		return err
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(b.cfg.InitDelay), uint64(b.cfg.InitAttempts-1)),
		ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		log.Error().Err(err).Msg("Backend initialization failed, falling back to direct retrieval")
		b.fullCapability.Store(false)
		return
	}

	b.fullCapability.Store(true)
	log.Info().Msg("Feed backend initialized")
}

// FullCapability reports whether the session backend is in use.
func (b *Backend) FullCapability() bool {
	return b.fullCapability.Load()
}

func (b *Backend) Fetch(ctx context.Context, url string) ([]byte, error) {
	if b.FullCapability() {
		return b.session.Fetch(ctx, url)
	}
	return b.direct.Fetch(ctx, url)
}

func (b *Backend) probe(ctx context.Context) error {
	if b.cfg.ProbeURL == "" {
		return fmt.Errorf("%w: no probe URL", ErrProbeFailed)
	}

	if _, err := b.session.Fetch(ctx, b.cfg.ProbeURL); err != nil {
		return fmt.Errorf("%w: %w", ErrProbeFailed, err)
	}
	return nil
}

func (source *httpSource) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if source.userAgent != "" {
		req.Header.Set("User-Agent", source.userAgent)
	}
	for k, v := range source.headers {
		req.Header.Set(k, v)
	}

	resp, err := source.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return body, nil
}
