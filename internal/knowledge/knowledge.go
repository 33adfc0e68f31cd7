// Package knowledge answers open questions through the Wikipedia REST
// summary endpoint, cached and rate-limited like the weather client.
package knowledge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"aria/internal/config"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// ErrNotFound is returned when the encyclopedia has no page for the query.
var ErrNotFound = errors.New("no article found")

// Client looks up short encyclopedic summaries.
type Client struct {
	httpClient *http.Client
	baseURL    string
	cache      *gocache.Cache
	limiter    *rate.Limiter
}

// NewClient builds a knowledge client from the settings document
func NewClient(settings *config.Settings) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    settings.KnowledgeBaseURL,
		cache:      gocache.New(time.Hour, 2*time.Hour),
		limiter:    rate.NewLimiter(rate.Limit(2), 4),
	}
}

// question words stripped from the front of queries before the page lookup
var queryPrefixes = []string{
	"what is ", "what are ", "who is ", "who are ",
	"tell me about ", "search for ", "what's ",
}

// titleFromQuery turns a spoken query into a page title guess
func titleFromQuery(query string) string {
	q := strings.ToLower(strings.TrimSpace(query))
	for _, prefix := range queryPrefixes {
		if strings.HasPrefix(q, prefix) {
			q = strings.TrimPrefix(q, prefix)
			break
		}
	}
	q = strings.TrimSuffix(q, "?")
	q = strings.TrimSpace(strings.TrimPrefix(q, "the "))
	return strings.ReplaceAll(q, " ", "_")
}

type summaryResponse struct {
	Extract string `json:"extract"`
}

// Lookup returns a short summary for the query, or ErrNotFound.
func (c *Client) Lookup(ctx context.Context, query string) (string, error) {
	title := titleFromQuery(query)
	if title == "" {
		return "", ErrNotFound
	}

	if cached, found := c.cache.Get(title); found {
		return cached.(string), nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	reqURL := fmt.Sprintf("%s/%s", c.baseURL, url.PathEscape(title))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build lookup request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("lookup request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("knowledge API returned %d", resp.StatusCode)
	}

	var payload summaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode summary: %w", err)
	}
	if strings.TrimSpace(payload.Extract) == "" {
		return "", ErrNotFound
	}

	c.cache.Set(title, payload.Extract, gocache.DefaultExpiration)
	log.Printf("📚 [KNOWLEDGE] Answered lookup for %q", title)
	return payload.Extract, nil
}
