package weather

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"aria/internal/config"
)

func newTestClient(baseURL string) *Client {
	return NewClient(&config.Settings{
		WeatherAPIKey:  "test-key",
		WeatherBaseURL: baseURL,
		DefaultCity:    "london",
	})
}

func TestCurrentNotConfigured(t *testing.T) {
	c := NewClient(&config.Settings{DefaultCity: "london"})
	if _, err := c.Current(context.Background(), "paris"); err != ErrNotConfigured {
		t.Errorf("Expected ErrNotConfigured, got %v", err)
	}
}

func TestCurrentParsesAndCaches(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		if got := r.URL.Query().Get("q"); got != "paris" {
			t.Errorf("Expected city paris, got %q", got)
		}
		fmt.Fprint(w, `{"name":"Paris","weather":[{"description":"light rain"}],"main":{"temp":14.3,"feels_like":13.1,"humidity":82}}`)
	}))
	defer server.Close()

	c := newTestClient(server.URL)

	summary, err := c.Current(context.Background(), "paris")
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}
	if summary.City != "Paris" || summary.Description != "light rain" || summary.Humidity != 82 {
		t.Errorf("Unexpected summary: %+v", summary)
	}

	// Second call must come from the cache
	if _, err := c.Current(context.Background(), "Paris"); err != nil {
		t.Fatalf("Cached Current failed: %v", err)
	}
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Errorf("Expected 1 upstream hit, got %d", n)
	}
}

func TestCurrentDefaultCityFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "london" {
			t.Errorf("Expected default city london, got %q", got)
		}
		fmt.Fprint(w, `{"name":"London","weather":[{"description":"overcast clouds"}],"main":{"temp":9,"feels_like":7,"humidity":90}}`)
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	if _, err := c.Current(context.Background(), ""); err != nil {
		t.Fatalf("Current with empty city failed: %v", err)
	}
}

func TestCurrentUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "city not found", http.StatusNotFound)
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	if _, err := c.Current(context.Background(), "atlantis"); err == nil {
		t.Error("Expected error for upstream 404, got none")
	}
}

func TestSummarySentence(t *testing.T) {
	s := Summary{City: "Paris", Description: "light rain", TempC: 14.3, FeelsLikeC: 13.1, Humidity: 82}
	want := "It's 14 degrees with light rain in Paris, feels like 13. Humidity is 82 percent."
	if got := s.Sentence(); got != want {
		t.Errorf("Sentence() = %q, want %q", got, want)
	}
}
