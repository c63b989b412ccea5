package wiki

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestGetPage(t *testing.T) {
	server := mockWikiServer(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("action") != "query" {
			t.Errorf("action = %q, want query", q.Get("action"))
		}
		if q.Get("titles") != "Gas Grenade" {
			t.Errorf("titles = %q", q.Get("titles"))
		}
		if q.Get("rvslots") != "main" {
			t.Errorf("rvslots = %q", q.Get("rvslots"))
		}
		writeJSON(t, w, wikitextResponse("Gas Grenade", gasGrenadeWikitext))
	})
	defer server.Close()

	client := createMockClient(t, server)
	defer client.Close()

	page, err := client.GetPage(context.Background(), GetPageArgs{Title: "Gas Grenade"})
	if err != nil {
		t.Fatalf("GetPage failed: %v", err)
	}

	if page.Title != "Gas Grenade" || page.PageID != 42 {
		t.Errorf("page = %+v", page)
	}
	if page.Content != gasGrenadeWikitext {
		t.Errorf("content should be verbatim wikitext: %q", page.Content)
	}
	if page.Truncated {
		t.Error("short content must not be marked truncated")
	}
}

func TestGetPage_Truncation(t *testing.T) {
	long := strings.Repeat("x", CharacterLimit+500)
	server := mockWikiServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, wikitextResponse("Big Page", long))
	})
	defer server.Close()

	client := createMockClient(t, server)
	defer client.Close()

	page, err := client.GetPage(context.Background(), GetPageArgs{Title: "Big Page"})
	if err != nil {
		t.Fatalf("GetPage failed: %v", err)
	}

	if !page.Truncated {
		t.Fatal("oversized content should be truncated")
	}
	if !strings.HasPrefix(page.Content, strings.Repeat("x", 100)) {
		t.Error("truncated content should keep the original prefix")
	}
	if !strings.Contains(page.Content, "[CONTENT TRUNCATED]") {
		t.Errorf("truncation marker missing")
	}
	if page.Message == "" {
		t.Error("truncation should set a message")
	}
}

func TestGetPage_NotFound(t *testing.T) {
	server := mockWikiServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, missingPageResponse("Nope"))
	})
	defer server.Close()

	client := createMockClient(t, server)
	defer client.Close()

	_, err := client.GetPage(context.Background(), GetPageArgs{Title: "Nope"})
	if !IsNotFound(err) {
		t.Fatalf("error = %v, want page-not-found", err)
	}
	var pnf *PageNotFoundError
	if !errors.As(err, &pnf) || pnf.Title != "Nope" {
		t.Errorf("error = %v, want PageNotFoundError for Nope", err)
	}
}

func TestGetPage_Validation(t *testing.T) {
	client := createTestClient(t)
	defer client.Close()

	_, err := client.GetPage(context.Background(), GetPageArgs{})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("error = %v, want *ValidationError", err)
	}
}

func TestGetPage_Caching(t *testing.T) {
	var requests atomic.Int64
	server := mockWikiServer(t, func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		writeJSON(t, w, wikitextResponse("Gas Grenade", gasGrenadeWikitext))
	})
	defer server.Close()

	client := createMockClient(t, server)
	defer client.Close()

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := client.GetPage(ctx, GetPageArgs{Title: "Gas Grenade"}); err != nil {
			t.Fatalf("GetPage failed: %v", err)
		}
	}
	if n := requests.Load(); n != 1 {
		t.Errorf("server saw %d requests, want 1", n)
	}
}

func TestGetPage_CacheExpiry(t *testing.T) {
	var requests atomic.Int64
	server := mockWikiServer(t, func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		writeJSON(t, w, wikitextResponse("Gas Grenade", gasGrenadeWikitext))
	})
	defer server.Close()

	client := createMockClient(t, server)
	defer client.Close()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	current := base
	client.Cache().SetNowFunc(func() time.Time { return current })

	ctx := context.Background()
	if _, err := client.GetPage(ctx, GetPageArgs{Title: "Gas Grenade"}); err != nil {
		t.Fatalf("GetPage failed: %v", err)
	}

	current = base.Add(30 * time.Minute)
	if _, err := client.GetPage(ctx, GetPageArgs{Title: "Gas Grenade"}); err != nil {
		t.Fatalf("GetPage failed: %v", err)
	}
	if n := requests.Load(); n != 1 {
		t.Fatalf("server saw %d requests before the TTL elapsed, want 1", n)
	}

	current = base.Add(61 * time.Minute)
	if _, err := client.GetPage(ctx, GetPageArgs{Title: "Gas Grenade"}); err != nil {
		t.Fatalf("GetPage failed: %v", err)
	}
	if n := requests.Load(); n != 2 {
		t.Errorf("server saw %d requests after expiry, want 2", n)
	}
}

func TestAPIRequest_ContextCancellation(t *testing.T) {
	client := createTestClient(t)
	defer client.Close()

	// Fill the semaphore so the request has to wait
	for i := 0; i < MaxConcurrentRequests; i++ {
		client.semaphore <- struct{}{}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.fetchPageWikitext(ctx, "Gas Grenade")
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestFetchPageWikitext_ContentKeyFallback(t *testing.T) {
	server := mockWikiServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]interface{}{
			"query": map[string]interface{}{
				"pages": map[string]interface{}{
					"7": map[string]interface{}{
						"pageid": float64(7),
						"title":  "Spark",
						"revisions": []interface{}{
							map[string]interface{}{
								"slots": map[string]interface{}{
									"main": map[string]interface{}{
										"content": "modern format",
									},
								},
							},
						},
					},
				},
			},
		})
	})
	defer server.Close()

	client := createMockClient(t, server)
	defer client.Close()

	page, err := client.fetchPageWikitext(context.Background(), "Spark")
	if err != nil {
		t.Fatalf("fetchPageWikitext failed: %v", err)
	}
	if page.Content != "modern format" {
		t.Errorf("content = %q", page.Content)
	}
}

func TestTruncateContent(t *testing.T) {
	content, truncated := truncateContent("short", 100)
	if truncated || content != "short" {
		t.Errorf("short content should pass through: %q, %v", content, truncated)
	}

	content, truncated = truncateContent(strings.Repeat("a", 150), 100)
	if !truncated {
		t.Fatal("expected truncation")
	}
	if !strings.HasPrefix(content, strings.Repeat("a", 100)) {
		t.Error("truncated content should keep the first limit characters")
	}
	if !strings.Contains(content, "100 of 150 characters") {
		t.Errorf("truncation note = %q", content)
	}

	// Exactly at the limit is not truncated
	if _, truncated = truncateContent(strings.Repeat("a", 100), 100); truncated {
		t.Error("content at the limit should pass through")
	}
}

func TestNormalizeLimit(t *testing.T) {
	tests := []struct {
		limit, def, max, want int
	}{
		{0, 10, 50, 10},
		{-1, 10, 50, 10},
		{5, 10, 50, 5},
		{50, 10, 50, 50},
		{51, 10, 50, 50},
	}
	for _, tt := range tests {
		if got := normalizeLimit(tt.limit, tt.def, tt.max); got != tt.want {
			t.Errorf("normalizeLimit(%d, %d, %d) = %d, want %d", tt.limit, tt.def, tt.max, got, tt.want)
		}
	}
}
