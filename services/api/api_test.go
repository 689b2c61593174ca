package api

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"news-pulse/models/entities"
	"news-pulse/pkg/observer"
	"news-pulse/services/distributor"
	"news-pulse/services/health"
	"news-pulse/services/scheduler"
	"strings"
	"testing"
	"time"
)

type fakeDistributor struct {
	ready  bool
	events [][]byte
	// hold keeps the stream open until the subscriber context ends
	hold bool
}

func (f *fakeDistributor) Query(context.Context) (*distributor.Snapshot, error) {
	if !f.ready {
		return nil, distributor.ErrInitializing
	}
	return &distributor.Snapshot{News: []distributor.KeyFeedView{{Name: "delhi", Key: "Delhi", Sentiment: "Neutral"}}}, nil
}

func (f *fakeDistributor) Stream(ctx context.Context, emitter distributor.Emitter) error {
	for _, event := range f.events {
		if err := emitter.Emit(event); err != nil {
			return nil
		}
	}
	if f.hold {
		<-ctx.Done()
	}
	return nil
}

type fakeScheduler struct{ idle bool }

func (f *fakeScheduler) Start()                 {}
func (f *fakeScheduler) Trigger() bool          { return f.idle }
func (f *fakeScheduler) State() scheduler.State { return scheduler.StateIdle }
func (f *fakeScheduler) LastPass() time.Time    { return time.Time{} }
func (f *fakeScheduler) Shutdown()              {}

type fakeHealth struct{ report health.Report }

func (f fakeHealth) Report() health.Report { return f.report }

type fakeHistory struct {
	runs      []entities.FetchRun
	lastLimit int
}

func (f *fakeHistory) OnNotify(observer.Event) {}

func (f *fakeHistory) Latest(limit int) ([]entities.FetchRun, error) {
	f.lastLimit = limit
	return f.runs, nil
}

type fixture struct {
	distributor *fakeDistributor
	scheduler   *fakeScheduler
	history     *fakeHistory
	handler     http.Handler
}

func newFixture() *fixture {
	f := &fixture{
		distributor: &fakeDistributor{},
		scheduler:   &fakeScheduler{},
		history:     &fakeHistory{},
	}
	h := fakeHealth{report: health.Report{Ready: true, FullCapability: false, State: "idle"}}
	f.handler = New(0, f.distributor, f.scheduler, h, f.history).Router()
	return f
}

func (f *fixture) do(method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestNewsData_Initializing(t *testing.T) {
	f := newFixture()

	rec := f.do(http.MethodGet, newsDataPath)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != `{"error":"Initializing..."}` {
		t.Fatalf("unexpected body %s", body)
	}
}

func TestNewsData_Ready(t *testing.T) {
	f := newFixture()
	f.distributor.ready = true

	rec := f.do(http.MethodGet, newsDataPath)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var snapshot distributor.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snapshot); err != nil {
		t.Fatalf("unexpected body: %v", err)
	}
	if len(snapshot.News) != 1 || snapshot.News[0].Name != "delhi" {
		t.Fatalf("unexpected snapshot %+v", snapshot)
	}
}

func TestStatus(t *testing.T) {
	f := newFixture()

	rec := f.do(http.MethodGet, statusPath)
	var status map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatalf("unexpected body: %v", err)
	}
	if status["scraper_ready"] != true || status["chrome_initialized"] != false || status["state"] != "idle" {
		t.Fatalf("unexpected status %v", status)
	}
}

func TestRefresh(t *testing.T) {
	f := newFixture()

	rec := f.do(http.MethodPost, refreshPath)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"triggered":false`) {
		t.Fatalf("expected coalesced refresh, got %d %s", rec.Code, rec.Body.String())
	}

	f.scheduler.idle = true
	rec = f.do(http.MethodPost, refreshPath)
	if rec.Code != http.StatusAccepted || !strings.Contains(rec.Body.String(), `"triggered":true`) {
		t.Fatalf("expected triggered refresh, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestHistory(t *testing.T) {
	f := newFixture()
	f.history.runs = []entities.FetchRun{{RegionKey: "Mumbai", Failed: true}}

	rec := f.do(http.MethodGet, historyPath+"?limit=5")
	if rec.Code != http.StatusOK || f.history.lastLimit != 5 {
		t.Fatalf("expected 200 with limit 5, got %d and %d", rec.Code, f.history.lastLimit)
	}
	if !strings.Contains(rec.Body.String(), `"region":"Mumbai"`) {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}

	rec = f.do(http.MethodGet, historyPath+"?limit=abc")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	rec := newFixture().do(http.MethodGet, healthzPath)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ready":true`) {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}
}

func TestNewsStream(t *testing.T) {
	f := newFixture()
	f.distributor.events = [][]byte{[]byte(`{"news":[]}`), []byte(`{"error":"boom"}`)}

	rec := f.do(http.MethodGet, newsStreamPath)
	if got := rec.Header().Get(headerContentType); got != contentTypeStream {
		t.Fatalf("expected event stream content type, got %s", got)
	}
	if body := rec.Body.String(); body != "data: {\"news\":[]}\n\ndata: {\"error\":\"boom\"}\n\n" {
		t.Fatalf("unexpected stream body %q", body)
	}
}

func TestSSEEmitter_SubscriberGone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	emitter := &sseEmitter{ctx: ctx, w: httptest.NewRecorder(), flusher: httptest.NewRecorder()}
	if err := emitter.Emit([]byte("{}")); !errors.Is(err, distributor.ErrSubscriberGone) {
		t.Fatalf("expected ErrSubscriberGone, got %v", err)
	}
}

func TestShutdown_EndsOpenStreams(t *testing.T) {
	f := newFixture()
	f.distributor.events = [][]byte{[]byte(`{"news":[]}`)}
	f.distributor.hold = true

	service := New(0, f.distributor, f.scheduler, fakeHealth{}, f.history)
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("cannot listen: %v", err)
	}
	go func() { _ = service.server.Serve(listener) }()

	resp, err := http.Get("http://" + listener.Addr().String() + newsStreamPath)
	if err != nil {
		t.Fatalf("cannot open stream: %v", err)
	}
	defer resp.Body.Close()

	line, err := bufio.NewReader(resp.Body).ReadString('\n')
	if err != nil || !strings.HasPrefix(line, "data: ") {
		t.Fatalf("expected a first event, got %q (%v)", line, err)
	}

	start := time.Now()
	service.Shutdown()
	if elapsed := time.Since(start); elapsed >= shutdownTimeout/2 {
		t.Fatalf("expected shutdown to end the open stream promptly, took %v", elapsed)
	}
}
