package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"news-pulse/models/entities"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func newServer(t *testing.T, calls *atomic.Int32, handler func(w http.ResponseWriter, req chatRequest)) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("unexpected authorization header %q", r.Header.Get("Authorization"))
		}
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		handler(w, req)
	}))
	t.Cleanup(server.Close)
	return server
}

func answer(content string) func(w http.ResponseWriter, req chatRequest) {
	return func(w http.ResponseWriter, req chatRequest) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"choices":[{"message":{"role":"assistant","content":%q}}]}`, content)
	}
}

func newClient(baseURL string) *Impl {
	return New(Config{BaseURL: baseURL, APIKey: "test-key", Model: "test-model", Timeout: 200 * time.Millisecond})
}

func TestAnalyze_EmptyHeadlinesSkipsRequest(t *testing.T) {
	var calls atomic.Int32
	server := newServer(t, &calls, answer("4"))

	got := newClient(server.URL).Analyze(context.Background(), "Delhi", nil)
	if got != entities.SentimentUnavailable {
		t.Fatalf("expected unavailable, got %s", got)
	}
	if calls.Load() != 0 {
		t.Fatalf("expected no request, got %d", calls.Load())
	}
}

func TestAnalyze_MapsScores(t *testing.T) {
	tests := []struct {
		content string
		want    entities.Sentiment
	}{
		{"1", entities.SentimentVeryNegative},
		{"2", entities.SentimentNegative},
		{" 3\n", entities.SentimentNeutral},
		{"4", entities.SentimentPositive},
		{"5", entities.SentimentVeryPositive},
		{"7", entities.SentimentNeutral},
		{"0", entities.SentimentNeutral},
		{"Positive", entities.SentimentNeutral},
		{"", entities.SentimentNeutral},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.content), func(t *testing.T) {
			var calls atomic.Int32
			server := newServer(t, &calls, answer(tt.content))

			got := newClient(server.URL).Analyze(context.Background(), "Delhi", []string{"headline"})
			if got != tt.want {
				t.Errorf("Analyze with %q = %s, want %s", tt.content, got, tt.want)
			}
			if calls.Load() != 1 {
				t.Errorf("expected exactly one request, got %d", calls.Load())
			}
		})
	}
}

func TestAnalyze_SendsAllHeadlinesInOneRequest(t *testing.T) {
	var calls atomic.Int32
	var prompt string
	server := newServer(t, &calls, func(w http.ResponseWriter, req chatRequest) {
		if len(req.Messages) == 1 {
			prompt = req.Messages[0].Content
		}
		if req.Model != "test-model" {
			t.Errorf("unexpected model %s", req.Model)
		}
		answer("2")(w, req)
	})

	got := newClient(server.URL).Analyze(context.Background(), "Mumbai", []string{"first", "second"})
	if got != entities.SentimentNegative {
		t.Fatalf("expected Negative, got %s", got)
	}
	if !strings.Contains(prompt, "first\nsecond") {
		t.Fatalf("expected headlines joined by line breaks in prompt, got %q", prompt)
	}
}

func TestAnalyze_ServerErrorIsNeutral(t *testing.T) {
	var calls atomic.Int32
	server := newServer(t, &calls, func(w http.ResponseWriter, req chatRequest) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	got := newClient(server.URL).Analyze(context.Background(), "Delhi", []string{"headline"})
	if got != entities.SentimentNeutral {
		t.Fatalf("expected Neutral, got %s", got)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected a single attempt, got %d", calls.Load())
	}
}

func TestAnalyze_TimeoutIsNeutral(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	server := newServer(t, &calls, func(w http.ResponseWriter, req chatRequest) {
		select {
		case <-release:
		case <-time.After(2 * time.Second):
		}
		answer("5")(w, req)
	})
	defer close(release)

	start := time.Now()
	got := newClient(server.URL).Analyze(context.Background(), "Delhi", []string{"headline"})
	if got != entities.SentimentNeutral {
		t.Fatalf("expected Neutral, got %s", got)
	}
	if time.Since(start) > time.Second {
		t.Fatalf("expected bounded call, took %v", time.Since(start))
	}
}

func TestAnalyze_MissingKeyIsNeutral(t *testing.T) {
	var calls atomic.Int32
	server := newServer(t, &calls, answer("5"))

	client := New(Config{BaseURL: server.URL, Model: "m"})
	if got := client.Analyze(context.Background(), "Delhi", []string{"headline"}); got != entities.SentimentNeutral {
		t.Fatalf("expected Neutral, got %s", got)
	}
	if calls.Load() != 0 {
		t.Fatalf("expected no request without API key, got %d", calls.Load())
	}
}

func TestAnalyze_MemoizesSameHeadlines(t *testing.T) {
	var calls atomic.Int32
	server := newServer(t, &calls, answer("4"))
	client := newClient(server.URL)

	for i := 0; i < 3; i++ {
		if got := client.Analyze(context.Background(), "Delhi", []string{"a", "b"}); got != entities.SentimentPositive {
			t.Fatalf("expected Positive, got %s", got)
		}
	}
	if calls.Load() != 1 {
		t.Fatalf("expected one request for identical headlines, got %d", calls.Load())
	}

	client.Analyze(context.Background(), "Mumbai", []string{"a", "b"})
	if calls.Load() != 2 {
		t.Fatalf("expected a new request for another key, got %d", calls.Load())
	}
}
