package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/peterkuimelis/devdeck/internal/app"
	"github.com/peterkuimelis/devdeck/internal/config"
	"github.com/peterkuimelis/devdeck/internal/web"
)

func main() {
	configPath := flag.String("config", "devdeck.yaml", "path to config file")
	addr := flag.String("addr", "", "HTTP address to listen on (default from config)")
	flag.Parse()

	if err := run(*configPath, *addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, addr string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.HTTPAddr = addr
	}

	logger, err := app.NewLogger(cfg.Server.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := web.NewHub(logger.Named("hub"))
	rt, err := app.Start(ctx, cfg, logger, app.Options{Cues: hub, Banner: hub})
	if err != nil {
		return err
	}
	defer rt.Close()
	hub.Attach(ctx, rt.Engine, rt.Selector)

	srv := web.NewServer(rt.Engine, rt.Selector, hub, web.Options{
		DecksFile:      cfg.Game.DeckFile,
		RequestTimeout: cfg.Server.RequestTimeout,
		Logger:         logger.Named("web"),
	})
	return srv.ListenAndServe(ctx, cfg.Server.HTTPAddr)
}
