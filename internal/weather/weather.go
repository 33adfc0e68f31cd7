// Package weather wraps the OpenWeatherMap current-conditions API behind a
// small client with a TTL cache and a rate limiter, so repeating "what's the
// weather" does not hammer the upstream.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"aria/internal/config"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// ErrNotConfigured is returned when no weather API key is present in settings.
var ErrNotConfigured = errors.New("weather api key not configured")

// Summary is the spoken-friendly slice of a weather report
type Summary struct {
	City        string  `json:"city"`
	Description string  `json:"description"`
	TempC       float64 `json:"tempC"`
	FeelsLikeC  float64 `json:"feelsLikeC"`
	Humidity    int     `json:"humidity"`
}

// Sentence renders the summary the way the assistant speaks it
func (s Summary) Sentence() string {
	return fmt.Sprintf("It's %.0f degrees with %s in %s, feels like %.0f. Humidity is %d percent.",
		s.TempC, s.Description, s.City, s.FeelsLikeC, s.Humidity)
}

// Client fetches current conditions for a city.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	defaultCity string
	cache       *gocache.Cache
	limiter     *rate.Limiter
}

// NewClient builds a weather client from the settings document
func NewClient(settings *config.Settings) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		baseURL:     settings.WeatherBaseURL,
		apiKey:      settings.WeatherAPIKey,
		defaultCity: settings.DefaultCity,
		cache:       gocache.New(10*time.Minute, 30*time.Minute),
		limiter:     rate.NewLimiter(rate.Limit(1), 3), // 1 req/s, burst 3
	}
}

// openWeatherResponse mirrors the fields we need from the API payload
type openWeatherResponse struct {
	Name    string `json:"name"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
}

// Current returns the conditions for city, falling back to the configured
// default city when city is empty. Responses are cached for 10 minutes.
func (c *Client) Current(ctx context.Context, city string) (Summary, error) {
	if city == "" {
		city = c.defaultCity
	}
	if c.apiKey == "" {
		return Summary{}, ErrNotConfigured
	}

	key := strings.ToLower(city)
	if cached, found := c.cache.Get(key); found {
		return cached.(Summary), nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return Summary{}, err
	}

	reqURL := fmt.Sprintf("%s?q=%s&appid=%s&units=metric",
		c.baseURL, url.QueryEscape(city), url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to build weather request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Summary{}, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Summary{}, fmt.Errorf("weather API returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload openWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Summary{}, fmt.Errorf("failed to decode weather response: %w", err)
	}

	summary := Summary{
		City:       payload.Name,
		TempC:      payload.Main.Temp,
		FeelsLikeC: payload.Main.FeelsLike,
		Humidity:   payload.Main.Humidity,
	}
	if len(payload.Weather) > 0 {
		summary.Description = payload.Weather[0].Description
	}
	if summary.City == "" {
		summary.City = city
	}

	c.cache.Set(key, summary, gocache.DefaultExpiration)
	log.Printf("🌤️  [WEATHER] Fetched conditions for %s", summary.City)
	return summary, nil
}
