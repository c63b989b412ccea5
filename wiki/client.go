package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/json-cam/Poe2-Wiki-MCP/internal/infra"
	"github.com/json-cam/Poe2-Wiki-MCP/metrics"
)

// MaxConcurrentRequests limits parallel API calls to prevent overwhelming the wiki
const MaxConcurrentRequests = 3

// Client handles communication with the PoE2 wiki's MediaWiki/Cargo API
type Client struct {
	config     *Config
	httpClient *http.Client
	logger     *slog.Logger

	// Rate limiting - semaphore to control concurrent requests
	semaphore chan struct{}

	// Response cache
	cache *infra.Cache
}

// ClientOption configures the Client
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = h
	}
}

// WithCache sets a custom cache
func WithCache(cache *infra.Cache) ClientOption {
	return func(c *Client) {
		c.cache = cache
	}
}

// NewClient creates a new PoE2 wiki API client
func NewClient(config *Config, logger *slog.Logger, opts ...ClientOption) *Client {
	// Configure HTTP transport for connection reuse
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
	}

	c := &Client{
		config: config,
		httpClient: &http.Client{
			Timeout:   config.Timeout,
			Transport: transport,
		},
		logger:    logger,
		semaphore: make(chan struct{}, MaxConcurrentRequests),
		cache:     infra.NewCache(infra.DefaultMaxCacheEntries),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Close releases resources held by the client
func (c *Client) Close() {
	if c.cache != nil {
		c.cache.Close()
	}
}

// Cache exposes the underlying cache, mainly so tests can control its clock.
func (c *Client) Cache() *infra.Cache {
	return c.cache
}

// getCached retrieves a cached value if it exists and hasn't expired
func (c *Client) getCached(key string) (interface{}, bool) {
	data, ok := c.cache.Get(key)
	metrics.RecordCacheAccess(ok)
	return data, ok
}

// setCache stores a value in the cache with the gem TTL from config
func (c *Client) setCache(key string, data interface{}) {
	c.cache.Set(key, data, c.config.GemCacheTTL)
	metrics.SetCacheSize(c.cache.Size())
}

// apiRequest makes a GET request to the wiki API with rate limiting.
// The wiki is public, so requests carry no credentials; failures surface
// as errors for the calling operation to downgrade.
func (c *Client) apiRequest(ctx context.Context, action string, params url.Values) (map[string]interface{}, error) {
	// Acquire semaphore slot (rate limiting)
	select {
	case c.semaphore <- struct{}{}:
		defer func() { <-c.semaphore }()
	case <-ctx.Done():
		return nil, fmt.Errorf("context cancelled while waiting for rate limiter: %w", ctx.Err())
	}

	params.Set("action", action)
	params.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.config.UserAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordAPICall(action, time.Since(start).Seconds(), false)
		return nil, fmt.Errorf("request failed: %w", err)
	}

	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close() // Error ignored intentionally; body already read
	duration := time.Since(start).Seconds()

	if err != nil {
		metrics.RecordAPICall(action, duration, false)
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		metrics.RecordAPICall(action, duration, false)
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var result map[string]interface{}
	if err := json.Unmarshal(body, &result); err != nil {
		metrics.RecordAPICall(action, duration, false)
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	// Check for API errors
	if errObj, ok := result["error"].(map[string]interface{}); ok {
		code, _ := errObj["code"].(string)
		info, _ := errObj["info"].(string)
		metrics.RecordAPICall(action, duration, false)
		return nil, fmt.Errorf("API error [%s]: %s", code, info)
	}

	metrics.RecordAPICall(action, duration, true)
	return result, nil
}

// fetchPageWikitext retrieves the main-slot wikitext of a page by title.
func (c *Client) fetchPageWikitext(ctx context.Context, title string) (PageContent, error) {
	params := url.Values{}
	params.Set("titles", title)
	params.Set("prop", "revisions")
	params.Set("rvprop", "content")
	params.Set("rvslots", "main")

	resp, err := c.apiRequest(ctx, "query", params)
	if err != nil {
		return PageContent{}, err
	}

	query, ok := resp["query"].(map[string]interface{})
	if !ok {
		return PageContent{}, fmt.Errorf("unexpected API response: missing 'query' object")
	}

	pages, ok := query["pages"].(map[string]interface{})
	if !ok {
		return PageContent{}, fmt.Errorf("unexpected API response: missing 'pages' object")
	}

	for pageID, pageData := range pages {
		page, ok := pageData.(map[string]interface{})
		if !ok {
			continue
		}

		if _, missing := page["missing"]; missing {
			return PageContent{}, &PageNotFoundError{Title: title}
		}
		if pageID == "-1" {
			return PageContent{}, &PageNotFoundError{Title: title}
		}

		revisions, ok := page["revisions"].([]interface{})
		if !ok || len(revisions) == 0 {
			return PageContent{}, &PageNotFoundError{Title: title}
		}

		rev, ok := revisions[0].(map[string]interface{})
		if !ok {
			return PageContent{}, fmt.Errorf("invalid revision data for page '%s'", title)
		}

		slots, ok := rev["slots"].(map[string]interface{})
		if !ok {
			return PageContent{}, fmt.Errorf("invalid slots data for page '%s'", title)
		}

		main, ok := slots["main"].(map[string]interface{})
		if !ok {
			return PageContent{}, fmt.Errorf("invalid main slot data for page '%s'", title)
		}

		// MediaWiki returns content under "*"; newer versions use "content"
		content, ok := main["*"].(string)
		if !ok {
			content, ok = main["content"].(string)
			if !ok {
				return PageContent{}, fmt.Errorf("page '%s' has no content or content is not text", title)
			}
		}

		id := 0
		if pid, ok := page["pageid"].(float64); ok {
			id = int(pid)
		}
		pageTitle, _ := page["title"].(string)
		if pageTitle == "" {
			pageTitle = title
		}

		return PageContent{
			Title:   pageTitle,
			PageID:  id,
			Content: content,
		}, nil
	}

	return PageContent{}, &PageNotFoundError{Title: title}
}

// GetPage retrieves raw page wikitext, truncated at CharacterLimit.
func (c *Client) GetPage(ctx context.Context, args GetPageArgs) (PageContent, error) {
	if args.Title == "" {
		return PageContent{}, &ValidationError{Field: "title", Message: "title is required"}
	}

	cacheKey := "page:" + args.Title
	if cached, ok := c.getCached(cacheKey); ok {
		return cached.(PageContent), nil
	}

	result, err := c.fetchPageWikitext(ctx, args.Title)
	if err != nil {
		return PageContent{}, err
	}

	if truncated, wasTruncated := truncateContent(result.Content, CharacterLimit); wasTruncated {
		result.Content = truncated
		result.Truncated = true
		result.Message = "Content was truncated due to size limits."
	}

	c.setCache(cacheKey, result)
	return result, nil
}

// truncateContent truncates content if it exceeds the limit
func truncateContent(content string, limit int) (string, bool) {
	if len(content) <= limit {
		return content, false
	}

	truncationMsg := fmt.Sprintf("\n\n---\n[CONTENT TRUNCATED]\nShowing: %d of %d characters",
		limit, len(content))

	return content[:limit] + truncationMsg, true
}

// normalizeLimit ensures limit is within bounds
func normalizeLimit(limit, defaultVal, maxVal int) int {
	if limit <= 0 {
		return defaultVal
	}
	if limit > maxVal {
		return maxVal
	}
	return limit
}
