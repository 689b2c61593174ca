package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"news-pulse/models/constants"
	"news-pulse/models/entities"
	"strconv"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
)

const (
	defaultTimeout  = 20 * time.Second
	defaultCacheTTL = 10 * time.Minute
	maxScoreTokens  = 4
	referer         = "http://localhost:5000"
	appTitle        = "News Analyzer"
)

func New(cfg Config) *Impl {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaultCacheTTL
	}
	if cfg.APIKey == "" {
		log.Warn().Msg("Sentiment API key not set, every analysis will be Neutral")
	}

	return &Impl{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		timeout: cfg.Timeout,
		// the request context carries the bound; the client timeout is a backstop
		client: &http.Client{Timeout: cfg.Timeout + time.Second},
		cache:  cache.New(cfg.CacheTTL, 2*cfg.CacheTTL),
	}
}

func (service *Impl) Analyze(ctx context.Context, key string, headlines []string) entities.Sentiment {
	if len(headlines) == 0 {
		return entities.SentimentUnavailable
	}

	text := strings.Join(headlines, "\n")
	cacheKey := key + "\x00" + text
	if x, found := service.cache.Get(cacheKey); found {
		return x.(entities.Sentiment)
	}

	ctx, cancel := context.WithTimeout(ctx, service.timeout)
	defer cancel()

	content, err := service.complete(ctx, buildPrompt(key, text))
	if err != nil {
		log.Error().Err(err).Str(constants.LogRegion, key).Msg("Sentiment analysis failed, falling back to Neutral")
		return entities.SentimentNeutral
	}

	label, err := parseLabel(content)
	if err != nil {
		log.Warn().Err(err).Str(constants.LogRegion, key).Str("content", content).
			Msg("Unexpected sentiment answer, falling back to Neutral")
		return entities.SentimentNeutral
	}

	service.cache.SetDefault(cacheKey, label)
	return label
}

func (service *Impl) complete(ctx context.Context, prompt string) (string, error) {
	if service.apiKey == "" {
		return "", ErrAPIKeyMissing
	}

	body, err := json.Marshal(chatRequest{
		Model:     service.model,
		Messages:  []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens: maxScoreTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to prepare request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, service.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+service.apiKey)
	req.Header.Set("HTTP-Referer", referer)
	req.Header.Set("X-Title", appTitle)

	resp, err := service.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API request failed with status: %d", resp.StatusCode)
	}

	var result chatResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if result.Error != nil && result.Error.Message != "" {
		return "", fmt.Errorf("API error: %s", result.Error.Message)
	}
	if len(result.Choices) == 0 {
		return "", ErrNoChoice
	}

	return result.Choices[0].Message.Content, nil
}

func parseLabel(content string) (entities.Sentiment, error) {
	score, err := strconv.Atoi(strings.TrimSpace(content))
	if err != nil {
		return entities.SentimentNeutral, fmt.Errorf("%w: %q", ErrUnexpectedText, content)
	}

	label, ok := entities.SentimentFromScore(score)
	if !ok {
		return entities.SentimentNeutral, fmt.Errorf("%w: %d", ErrUnexpectedText, score)
	}

	return label, nil
}

func buildPrompt(key, headlines string) string {
	var sb strings.Builder
	sb.WriteString("Rate the overall sentiment of these ")
	sb.WriteString(key)
	sb.WriteString(" news headlines.\n")
	sb.WriteString("Answer with a single digit and nothing else:\n")
	sb.WriteString("1 = Very Negative, 2 = Negative, 3 = Neutral, 4 = Positive, 5 = Very Positive.\n")
	sb.WriteString("Judge only from the headlines below.\n\nHeadlines:\n")
	sb.WriteString(headlines)
	return sb.String()
}
