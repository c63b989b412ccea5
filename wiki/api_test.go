package wiki

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"
)

// createTestClient creates a client for testing with minimal config
func createTestClient(t *testing.T) *Client {
	t.Helper()
	config := &Config{
		BaseURL:     "https://test.wiki.com/w/api.php",
		Timeout:     30 * time.Second,
		UserAgent:   "TestClient/1.0",
		GemCacheTTL: time.Hour,
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewClient(config, logger)
}

// createMockClient creates a client that talks to a mock server
func createMockClient(t *testing.T, server *httptest.Server) *Client {
	t.Helper()
	config := &Config{
		BaseURL:     server.URL,
		Timeout:     5 * time.Second,
		UserAgent:   "TestClient/1.0",
		GemCacheTTL: time.Hour,
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewClient(config, logger)
}

// mockWikiServer creates a test server that returns mock wiki API responses
func mockWikiServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(handler)
}

// writeJSON encodes a response body for a mock handler
func writeJSON(t *testing.T, w http.ResponseWriter, body map[string]interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		t.Fatalf("failed to encode mock response: %v", err)
	}
}

// wikitextResponse builds a revisions query response carrying page wikitext
func wikitextResponse(title, content string) map[string]interface{} {
	return map[string]interface{}{
		"query": map[string]interface{}{
			"pages": map[string]interface{}{
				"42": map[string]interface{}{
					"pageid": float64(42),
					"title":  title,
					"revisions": []interface{}{
						map[string]interface{}{
							"slots": map[string]interface{}{
								"main": map[string]interface{}{
									"*": content,
								},
							},
						},
					},
				},
			},
		},
	}
}

// missingPageResponse builds a query response for a nonexistent title
func missingPageResponse(title string) map[string]interface{} {
	return map[string]interface{}{
		"query": map[string]interface{}{
			"pages": map[string]interface{}{
				"-1": map[string]interface{}{
					"title":   title,
					"missing": "",
				},
			},
		},
	}
}

// cargoResponse builds a cargoquery response from row field maps
func cargoResponse(rows ...map[string]interface{}) map[string]interface{} {
	wrapped := make([]interface{}, 0, len(rows))
	for _, row := range rows {
		wrapped = append(wrapped, map[string]interface{}{"title": row})
	}
	return map[string]interface{}{"cargoquery": wrapped}
}
