package main

import (
	"context"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"shoebox/internal/adapters/embedded"
	"shoebox/internal/adapters/exiftool"
	"shoebox/internal/adapters/filesystem"
	mcpadapter "shoebox/internal/adapters/mcp"
	"shoebox/internal/adapters/sqlite"
	"shoebox/internal/config"
	"shoebox/internal/ports"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("shoebox-mcp: %v", err)
	}
	config.SetupLogger(cfg)

	var reader ports.MetadataReader
	if exiftool.Available() {
		if reader, err = exiftool.NewReader(); err != nil {
			log.Fatalf("shoebox-mcp: %v", err)
		}
	} else {
		reader = embedded.NewReader()
	}
	defer reader.Close()

	cachePath := cfg.CachePath
	if cachePath == "" {
		cachePath = sqlite.DefaultPath()
	}
	cache, err := sqlite.NewCache(cachePath)
	if err != nil {
		log.Fatalf("shoebox-mcp: %v", err)
	}
	defer cache.Close()

	tools := mcpadapter.Tools{
		Library:     filesystem.NewLibrary(cfg.ExtensionSet()),
		Reader:      reader,
		Cache:       cache,
		FS:          filesystem.NewFiles(),
		Concurrency: cfg.Concurrency,
		MaxNameLen:  cfg.MaxFileNameLength,
	}

	mcpServer := server.NewMCPServer(
		"shoebox-mcp",
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

	mcpadapter.RegisterReadTools(mcpServer, tools)
	mcpadapter.RegisterWriteTools(mcpServer, tools)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("shoebox-mcp: %v", err)
	}
}
