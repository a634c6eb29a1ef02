package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/devdeck/internal/app"
	"github.com/peterkuimelis/devdeck/internal/config"
	devmcp "github.com/peterkuimelis/devdeck/internal/mcp"
)

func main() {
	configPath := flag.String("config", "devdeck.yaml", "path to config file")
	deck := flag.String("deck", "", "starting deck, by name or number (from the deck file)")
	flag.Parse()

	if err := run(*configPath, *deck); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, deck string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if deck != "" {
		cfg.Game.Deck = deck
	}

	// stdout carries the MCP stream; zap writes to stderr.
	logger, err := app.NewLogger(cfg.Server.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rt, err := app.Start(ctx, cfg, logger, app.Options{})
	if err != nil {
		return err
	}
	defer rt.Close()

	s := server.NewMCPServer(cfg.MCP.Name, cfg.MCP.Version)
	devmcp.RegisterTools(s, devmcp.NewGameSession(ctx, rt.Engine, rt.Selector, logger.Named("mcp")))

	return server.ServeStdio(s)
}
