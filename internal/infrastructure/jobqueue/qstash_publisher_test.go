package jobqueue

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestQStashPublisher_EnqueueRecompute(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var gotPath string
	var gotHeaders http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		gotPath = r.URL.Path
		gotHeaders = r.Header.Clone()
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	pub := NewQStashPublisher(QStashPublisherConfig{
		BaseURL:          srv.URL,
		Token:            "qstash-token",
		TargetBaseURL:    "https://fantasy-gp.example.com",
		Retries:          3,
		InternalJobToken: "internal-secret",
	}, nil)

	if err := pub.EnqueueRecompute(context.Background()); err != nil {
		t.Fatalf("enqueue recompute: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	wantPath := "/v2/publish/https://fantasy-gp.example.com" + RecomputeJobPath
	if gotPath != wantPath {
		t.Fatalf("unexpected publish path:\nwant: %s\ngot:  %s", wantPath, gotPath)
	}
	if got := gotHeaders.Get("Authorization"); got != "Bearer qstash-token" {
		t.Fatalf("unexpected Authorization header: %q", got)
	}
	if got := gotHeaders.Get("Upstash-Retries"); got != "3" {
		t.Fatalf("unexpected Upstash-Retries header: %q", got)
	}
	if got := gotHeaders.Get("Upstash-Deduplication-Id"); got != "leaderboard-recompute" {
		t.Fatalf("unexpected deduplication id: %q", got)
	}
	if got := gotHeaders.Get("Upstash-Forward-X-Internal-Job-Token"); got != "internal-secret" {
		t.Fatalf("unexpected forwarded job token: %q", got)
	}
}

func TestQStashPublisher_Enqueue_RejectsBadConfig(t *testing.T) {
	t.Parallel()

	pub := NewQStashPublisher(QStashPublisherConfig{
		BaseURL:       "ftp://queue.example.com",
		TargetBaseURL: "https://fantasy-gp.example.com",
	}, nil)
	if err := pub.Enqueue(context.Background(), "/internal/jobs/x", nil, 0, ""); err == nil {
		t.Fatal("expected error for non-http base url")
	}

	pub = NewQStashPublisher(QStashPublisherConfig{
		BaseURL:       "https://qstash.upstash.io",
		TargetBaseURL: "https://fantasy-gp.example.com",
	}, nil)
	if err := pub.Enqueue(context.Background(), "  ", nil, 0, ""); err == nil {
		t.Fatal("expected error for empty job path")
	}
}

func TestQStashPublisher_Enqueue_SurfacesPublishFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	t.Cleanup(srv.Close)

	pub := NewQStashPublisher(QStashPublisherConfig{
		BaseURL:       srv.URL,
		Token:         "qstash-token",
		TargetBaseURL: "https://fantasy-gp.example.com",
	}, nil)

	err := pub.EnqueueRecompute(context.Background())
	if err == nil {
		t.Fatal("expected error for 429 publish response")
	}
	if !strings.Contains(err.Error(), "status=429") {
		t.Fatalf("expected status in error, got %v", err)
	}
}

func TestNormalizeDelay(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0s"},
		{-time.Second, "0s"},
		{90 * time.Second, "90s"},
		{1500 * time.Millisecond, "2s"},
	}
	for _, tt := range tests {
		if got := normalizeDelay(tt.in); got != tt.want {
			t.Fatalf("normalizeDelay(%v)=%q want=%q", tt.in, got, tt.want)
		}
	}
}

func TestBuildCurlPreview_MasksSecrets(t *testing.T) {
	t.Parallel()

	preview := buildCurlPreview("https://qstash.upstash.io/v2/publish/x", "/internal/jobs/x", "30s", 2, "dedupe-1", `{}`, true)

	if strings.Contains(preview, "qstash-token") || strings.Contains(preview, "internal-secret") {
		t.Fatalf("preview leaked a secret: %s", preview)
	}
	for _, want := range []string{"Authorization: Bearer ***", "Upstash-Retries: 2", "Upstash-Delay: 30s", "Upstash-Deduplication-Id: dedupe-1", "Upstash-Forward-X-Internal-Job-Token: ***"} {
		if !strings.Contains(preview, want) {
			t.Fatalf("preview missing %q: %s", want, preview)
		}
	}
}
