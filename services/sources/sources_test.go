package sources

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"news-pulse/pkg/readiness"
	"sync/atomic"
	"testing"
)

func TestInitialize_SessionBackend(t *testing.T) {
	var probes atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/probe" {
			probes.Add(1)
			http.SetCookie(w, &http.Cookie{Name: "consent", Value: "yes", Path: "/"})
			return
		}
		if _, err := r.Cookie("consent"); err != nil {
			t.Errorf("expected session cookie on feed request")
		}
		if r.Header.Get("User-Agent") != "Mozilla/5.0" {
			t.Errorf("unexpected user agent %q", r.Header.Get("User-Agent"))
		}
		w.Write([]byte("<rss/>"))
	}))
	defer server.Close()

	gate := readiness.New()
	backend, err := New(Config{UserAgent: "Mozilla/5.0", ProbeURL: server.URL + "/probe", InitAttempts: 3}, gate)
	if err != nil {
		t.Fatal(err)
	}

	backend.Initialize(context.Background())
	if !gate.IsSet() {
		t.Fatal("expected gate to be set")
	}
	if !backend.FullCapability() {
		t.Fatal("expected full capability backend")
	}
	if probes.Load() != 1 {
		t.Fatalf("expected 1 probe, got %d", probes.Load())
	}

	body, err := backend.Fetch(context.Background(), server.URL+"/feed")
	if err != nil {
		t.Fatal(err)
	}
	if string(body) != "<rss/>" {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestInitialize_FallsBackToDirect(t *testing.T) {
	var probes atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/probe" {
			probes.Add(1)
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("<rss/>"))
	}))
	defer server.Close()

	gate := readiness.New()
	backend, err := New(Config{ProbeURL: server.URL + "/probe", InitAttempts: 3}, gate)
	if err != nil {
		t.Fatal(err)
	}

	backend.Initialize(context.Background())
	if !gate.IsSet() {
		t.Fatal("expected gate to be set after fallback")
	}
	if backend.FullCapability() {
		t.Fatal("expected fallback backend")
	}
	if probes.Load() != 3 {
		t.Fatalf("expected 3 warm-up attempts, got %d", probes.Load())
	}

	if _, err := backend.Fetch(context.Background(), server.URL+"/feed"); err != nil {
		t.Fatalf("expected direct retrieval to work, got %v", err)
	}
}

func TestFetch_UnexpectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	backend, err := New(Config{}, readiness.New())
	if err != nil {
		t.Fatal(err)
	}

	_, err = backend.Fetch(context.Background(), server.URL)
	if !errors.Is(err, ErrUnexpectedStatus) {
		t.Fatalf("expected ErrUnexpectedStatus, got %v", err)
	}
}
