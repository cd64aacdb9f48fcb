package holiday

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vacations/internal/platform/cache"
)

func TestForYearParsesRemotePayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/2026" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"date":"2026-12-25","name":"Natal"},{"date":"2026-01-01","name":"Confraternização"}]`))
	}))
	defer server.Close()

	p := NewProvider(server.URL, time.Second, nil, 0)
	dates := p.ForYear(context.Background(), 2026)
	if len(dates) != 2 {
		t.Fatalf("expected 2 holidays, got %d", len(dates))
	}
	if !dates[0].Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected sorted dates, first was %v", dates[0])
	}
}

func TestForYearFallsBackOnServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	p := NewProvider(server.URL, time.Second, nil, 0)
	dates := p.ForYear(context.Background(), 2026)
	if len(dates) != 8 {
		t.Fatalf("expected 8 fallback holidays, got %d", len(dates))
	}
	for _, d := range dates {
		if d.Year() != 2026 {
			t.Fatalf("fallback date %v not in requested year", d)
		}
	}
}

func TestForYearFallsBackOnMalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"a list"}`))
	}))
	defer server.Close()

	p := NewProvider(server.URL, time.Second, nil, 0)
	if got := len(p.ForYear(context.Background(), 2027)); got != 8 {
		t.Fatalf("expected fallback, got %d dates", got)
	}
}

func TestForYearUsesCache(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(`[{"date":"2026-05-01","name":"Dia do Trabalho"}]`))
	}))
	defer server.Close()

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	p := NewProvider(server.URL, time.Second, cache.New(func() time.Time { return now }), time.Hour)

	p.ForYear(context.Background(), 2026)
	p.ForYear(context.Background(), 2026)
	if calls != 1 {
		t.Fatalf("expected a single remote call, got %d", calls)
	}
}
