// PoE2 Wiki MCP Server - A Model Context Protocol server for the Path of
// Exile 2 community wiki. Provides tools for looking up skill gem data and
// support gem pairings extracted from raw wikitext.
package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/json-cam/Poe2-Wiki-MCP/tools"
	"github.com/json-cam/Poe2-Wiki-MCP/tracing"
	"github.com/json-cam/Poe2-Wiki-MCP/wiki"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	ServerName    = "poe2-wiki-mcp-server"
	ServerVersion = "1.0.0"
)

func main() {
	// Configure logging to stderr (stdout is used for MCP protocol)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(),
	}))

	// Load configuration from environment
	config, err := wiki.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	// Initialize tracing
	shutdownTracing, err := tracing.Setup(ctx, tracing.DefaultConfig())
	if err != nil {
		logger.Warn("Tracing setup failed, continuing without tracing", "error", err)
		shutdownTracing = func(context.Context) error { return nil }
	}
	defer func() { _ = shutdownTracing(ctx) }()

	// Create wiki client
	client := wiki.NewClient(config, logger)
	defer client.Close()

	// Optionally expose Prometheus metrics
	if config.MetricsAddr != "" {
		go serveMetrics(config.MetricsAddr, logger)
	}

	// Create MCP server
	server := mcp.NewServer(&mcp.Implementation{
		Name:    ServerName,
		Version: ServerVersion,
	}, &mcp.ServerOptions{
		Logger: logger,
		Instructions: `PoE2 Wiki MCP Server provides tools for querying Path of Exile 2 skill gem data from the community wiki.

Available tools:
- poe2_get_gem_info: Get a gem's parsed template data and readable summary
- poe2_get_recommended_supports: Get the wiki's curated support recommendations for a gem
- poe2_find_compatible_supports: Find support gems sharing tags with a gem
- poe2_search_gems: Search gems by partial name
- poe2_get_page: Fetch a page's raw wikitext

Configure via environment variables:
- POE2_WIKI_URL: Wiki API URL (default https://www.poe2wiki.net/w/api.php)
- POE2_WIKI_CACHE_TTL: Gem data cache lifetime (default 1h)
- POE2_WIKI_METRICS_ADDR: Serve Prometheus metrics on this address (optional)`,
	})

	// Register all tools
	registry := tools.NewHandlerRegistry(client, logger)
	registry.RegisterAll(server)

	// Run server on stdio transport
	logger.Info("Starting PoE2 Wiki MCP Server",
		"name", ServerName,
		"version", ServerVersion,
		"wiki_url", config.BaseURL,
	)

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// logLevel reads POE2_WIKI_LOG_LEVEL, defaulting to info.
func logLevel() slog.Level {
	switch os.Getenv("POE2_WIKI_LOG_LEVEL") {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// serveMetrics exposes the Prometheus /metrics endpoint.
func serveMetrics(addr string, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	logger.Info("Serving metrics", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("Metrics server stopped", "error", err)
	}
}
