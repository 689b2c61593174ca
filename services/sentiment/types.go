package sentiment

import (
	"context"
	"errors"
	"net/http"
	"news-pulse/models/entities"
	"time"

	"github.com/patrickmn/go-cache"
)

var (
	ErrAPIKeyMissing  = errors.New("sentiment API key is missing")
	ErrNoChoice       = errors.New("sentiment response has no choice")
	ErrUnexpectedText = errors.New("sentiment response is not a 1-5 score")
)

type Service interface {
	// Analyze never fails: errors degrade to the neutral label.
	Analyze(ctx context.Context, key string, headlines []string) entities.Sentiment
}

type Config struct {
	BaseURL  string
	APIKey   string
	Model    string
	Timeout  time.Duration
	CacheTTL time.Duration
}

type Impl struct {
	baseURL string
	apiKey  string
	model   string
	timeout time.Duration
	client  *http.Client
	cache   *cache.Cache
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}
