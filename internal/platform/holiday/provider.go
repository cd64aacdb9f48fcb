package holiday

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"vacations/internal/platform/cache"
)

// fallbackDates are the fixed national holidays (month/day) used whenever the
// remote lookup fails. The year is substituted at call time.
var fallbackDates = []struct {
	month time.Month
	day   int
}{
	{time.January, 1},
	{time.April, 21},
	{time.May, 1},
	{time.September, 7},
	{time.October, 12},
	{time.November, 2},
	{time.November, 15},
	{time.December, 25},
}

type Provider struct {
	BaseURL string
	Client  *http.Client
	Cache   *cache.Cache
	TTL     time.Duration
}

func NewProvider(baseURL string, timeout time.Duration, c *cache.Cache, ttl time.Duration) *Provider {
	return &Provider{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: timeout},
		Cache:   c,
		TTL:     ttl,
	}
}

type holidayPayload struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

// ForYear returns the sorted public holidays for a year. Lookup failures are
// logged and absorbed; the static fallback list is returned instead. Never
// errors, never retries.
func (p *Provider) ForYear(ctx context.Context, year int) []time.Time {
	cacheKey := fmt.Sprintf("holidays:%d", year)
	if p.Cache != nil {
		if cached, ok := p.Cache.Get(cacheKey); ok {
			return cached.([]time.Time)
		}
	}

	dates, err := p.fetch(ctx, year)
	if err != nil {
		slog.Warn("holiday lookup failed, using fallback", "year", year, "err", err)
		dates = Fallback(year)
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	if p.Cache != nil {
		p.Cache.Set(cacheKey, dates, p.TTL)
	}
	return dates
}

func (p *Provider) fetch(ctx context.Context, year int) ([]time.Time, error) {
	url := fmt.Sprintf("%s/%d", p.BaseURL, year)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("holiday api returned status %d", resp.StatusCode)
	}

	var payload []holidayPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	dates := make([]time.Time, 0, len(payload))
	for _, entry := range payload {
		parsed, err := time.Parse("2006-01-02", entry.Date)
		if err != nil {
			return nil, fmt.Errorf("malformed holiday date %q: %w", entry.Date, err)
		}
		dates = append(dates, parsed)
	}
	return dates, nil
}

// Fallback returns the fixed national holiday list for a year.
func Fallback(year int) []time.Time {
	dates := make([]time.Time, 0, len(fallbackDates))
	for _, d := range fallbackDates {
		dates = append(dates, time.Date(year, d.month, d.day, 0, 0, 0, 0, time.UTC))
	}
	return dates
}
