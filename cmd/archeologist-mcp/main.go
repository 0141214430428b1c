package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"archeologist/internal/adapters/filesystem"
	"archeologist/internal/adapters/forcelayout"
	"archeologist/internal/adapters/httpapi"
	mcpadapter "archeologist/internal/adapters/mcp"
	"archeologist/internal/adapters/sqlite"
	"archeologist/internal/application"
	"archeologist/internal/application/commands"
	"archeologist/internal/config"
	"archeologist/internal/domain"
	"archeologist/internal/logging"
	"archeologist/internal/ports"
)

func main() {
	configFlag := flag.String("config", "", "path to the config file")
	timeoutFlag := flag.Duration("timeout", 30*time.Second, "graph fetch timeout")
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("archeologist-mcp: %v", err)
	}
	// stdout carries the protocol
	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("archeologist-mcp: %v", err)
	}
	defer logger.Sync()

	var backend ports.Backend = httpapi.NewClient(cfg.Backend.URL, httpapi.WithClientLogger(logger))
	if cfg.Backend.Snapshot != "" {
		backend = filesystem.NewSource(cfg.Backend.Snapshot)
	}

	loaderOpts := []application.LoaderOption{application.WithLoaderLogger(logger)}
	if path := cfg.CachePath(); path != "" {
		if cache, err := sqlite.Open(path); err == nil {
			defer cache.Close()
			loaderOpts = append(loaderOpts, application.WithCache(cache))
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeoutFlag)
	params := cfg.Layout
	res, err := commands.NewLoadGraphCommand(
		application.NewGraphLoader(backend, loaderOpts...),
		func(g *domain.Graph) ports.LayoutEngine { return forcelayout.New(g, params) },
	).Execute(ctx)
	cancel()
	if err != nil {
		log.Fatalf("archeologist-mcp: %v", err)
	}

	mcpServer := server.NewMCPServer(
		"archeologist-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterTools(mcpServer, res.Graph, res.Clusters, cfg.Navigation())

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("archeologist-mcp: %v", err)
	}
}
