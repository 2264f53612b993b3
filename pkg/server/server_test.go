package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/gearrs/pkg/document"
	"github.com/vango-dev/gearrs/pkg/element"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testPage() *document.Page {
	return &document.Page{
		Title: "Preview",
		Body:  element.New("body", true).Add(document.Wrap(document.Text("p", "Hello"))),
	}
}

func newTestServer(t *testing.T, cfg Config) (*Server, *httptest.Server) {
	t.Helper()
	if cfg.Source == nil {
		cfg.Source = StaticSource(testPage())
	}
	cfg.Logger = quietLogger()

	s, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, string(body)
}

func TestNewRequiresSource(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Error("New without Source should fail")
	}
}

func TestServePage(t *testing.T) {
	_, ts := newTestServer(t, Config{})

	resp, body := get(t, ts.URL+"/")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
	if want := testPage().Render(); body != want {
		t.Errorf("got %q, want %q", body, want)
	}
}

func TestServeNilPage(t *testing.T) {
	_, ts := newTestServer(t, Config{Source: StaticSource(nil)})

	_, body := get(t, ts.URL+"/")
	var empty document.Page
	if body != empty.Render() {
		t.Errorf("got %q, want %q", body, empty.Render())
	}
}

func TestServeSourceError(t *testing.T) {
	_, ts := newTestServer(t, Config{
		Source: func(context.Context) (*document.Page, error) {
			return nil, errors.New("source down")
		},
	})

	resp, body := get(t, ts.URL+"/")
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", resp.StatusCode)
	}
	if strings.Contains(body, "source down") {
		t.Error("internal error text should not leak to the client")
	}
}

func TestHealthz(t *testing.T) {
	_, ts := newTestServer(t, Config{})

	resp, body := get(t, ts.URL+"/healthz")
	if resp.StatusCode != http.StatusOK || body != "ok" {
		t.Errorf("healthz = %d %q", resp.StatusCode, body)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	_, ts := newTestServer(t, Config{Registry: prometheus.NewRegistry(), Namespace: "preview"})

	get(t, ts.URL+"/")
	resp, body := get(t, ts.URL+"/metrics")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	for _, want := range []string{
		`preview_requests_total{path="/",status="200"} 1`,
		"preview_document_bytes_count 1",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}

func TestMetricsLabels(t *testing.T) {
	_, ts := newTestServer(t, Config{
		Registry:    prometheus.NewRegistry(),
		Namespace:   "preview",
		Subsystem:   "http",
		ConstLabels: prometheus.Labels{"env": "test"},
	})

	get(t, ts.URL+"/")
	_, body := get(t, ts.URL+"/metrics")
	if want := `preview_http_requests_total{env="test",path="/",status="200"} 1`; !strings.Contains(body, want) {
		t.Errorf("metrics missing %q", want)
	}
}

func TestMetricsDisabled(t *testing.T) {
	_, ts := newTestServer(t, Config{})

	resp, _ := get(t, ts.URL+"/metrics")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404 without a registry", resp.StatusCode)
	}
}

func TestLivePageIncludesScript(t *testing.T) {
	page := testPage()
	_, ts := newTestServer(t, Config{LiveReload: true, Source: StaticSource(page)})

	_, body := get(t, ts.URL+"/")
	if !strings.Contains(body, "<script>") || !strings.Contains(body, LivePath) {
		t.Errorf("live page should carry the live script, got %q", body)
	}
	if !strings.HasSuffix(body, "</script></body>") {
		t.Errorf("script should be the last child of body, got %q", body)
	}
	if page.Body.Len() != 1 {
		t.Errorf("source page was mutated: %d children", page.Body.Len())
	}
}

func TestLiveReloadBroadcast(t *testing.T) {
	s, ts := newTestServer(t, Config{LiveReload: true})

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + LivePath
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	waitFor(t, func() bool { return s.Live().ClientCount() == 1 })

	s.Reload()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != `{"type":"reload"}` {
		t.Errorf("message = %s", data)
	}

	conn.Close()
	waitFor(t, func() bool { return s.Live().ClientCount() == 0 })
}

func TestLiveDisabled(t *testing.T) {
	s, ts := newTestServer(t, Config{})
	if s.Live() != nil {
		t.Error("Live() should be nil when live reload is off")
	}
	s.Reload()

	resp, _ := get(t, ts.URL+LivePath)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestServeShutdown(t *testing.T) {
	s, err := New(Config{Source: StaticSource(testPage()), Logger: quietLogger()})
	if err != nil {
		t.Fatal(err)
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	waitFor(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	})

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve returned %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestStartBadAddress(t *testing.T) {
	s, err := New(Config{Address: "not-an-address", Source: StaticSource(testPage()), Logger: quietLogger()})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Start(context.Background()); err == nil {
		t.Error("Start should fail on an invalid address")
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}
