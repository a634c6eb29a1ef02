package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/peterkuimelis/devdeck/internal/app"
	"github.com/peterkuimelis/devdeck/internal/config"
	devnet "github.com/peterkuimelis/devdeck/internal/net"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch os.Args[1] {
	case "play":
		err = runPlay(ctx, os.Args[2:])
	case "serve":
		err = runServe(ctx, os.Args[2:])
	case "join":
		err = runJoin(ctx, os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  devdeck play  [--config FILE] [--deck NAME|N] [--difficulty D] [--name NAME]")
	fmt.Println("  devdeck serve [--config FILE] [--deck NAME|N] [--addr ADDR]")
	fmt.Println("  devdeck join  [--addr ADDR] [--name NAME]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  play    Start a session and play it in this terminal")
	fmt.Println("  serve   Start a session and accept players over TCP")
	fmt.Println("  join    Connect to a serving session")
}

type sessionFlags struct {
	config     *string
	deck       *string
	difficulty *string
}

func addSessionFlags(fs *flag.FlagSet) sessionFlags {
	return sessionFlags{
		config:     fs.String("config", "devdeck.yaml", "path to config file"),
		deck:       fs.String("deck", "", "starting deck, by name or number (from the deck file)"),
		difficulty: fs.String("difficulty", "", "easy, normal, hard or expert"),
	}
}

func (f sessionFlags) load() (config.Config, error) {
	cfg, err := config.Load(*f.config)
	if err != nil {
		return cfg, err
	}
	if *f.deck != "" {
		cfg.Game.Deck = *f.deck
	}
	if *f.difficulty != "" {
		cfg.Game.Difficulty = *f.difficulty
	}
	return cfg, cfg.Validate()
}

func runPlay(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	sf := addSessionFlags(fs)
	name := fs.String("name", "player", "your name")
	fs.Parse(args)

	cfg, err := sf.load()
	if err != nil {
		return err
	}
	// The terminal belongs to the game; only problems reach stderr.
	logger, err := app.NewLogger("warn")
	if err != nil {
		return err
	}
	defer logger.Sync()

	rt, err := app.Start(ctx, cfg, logger, app.Options{})
	if err != nil {
		return err
	}
	defer rt.Close()

	srv := &devnet.Server{Engine: rt.Engine, Selector: rt.Selector, Logger: logger}
	serverConn, clientConn := net.Pipe()
	go srv.ServeConn(ctx, serverConn)

	return devnet.NewClient(clientConn, os.Stdin, os.Stdout).RunREPL(ctx, *name)
}

func runServe(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	sf := addSessionFlags(fs)
	addr := fs.String("addr", "", "TCP address to listen on (default from config)")
	fs.Parse(args)

	cfg, err := sf.load()
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.Server.TCPAddr = *addr
	}
	logger, err := app.NewLogger(cfg.Server.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	rt, err := app.Start(ctx, cfg, logger, app.Options{})
	if err != nil {
		return err
	}
	defer rt.Close()

	srv := &devnet.Server{
		Engine:   rt.Engine,
		Selector: rt.Selector,
		Addr:     cfg.Server.TCPAddr,
		Logger:   logger,
	}
	logger.Info("serving devdeck", zap.String("addr", cfg.Server.TCPAddr))
	return srv.Run(ctx)
}

func runJoin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("join", flag.ExitOnError)
	addr := fs.String("addr", "localhost:9000", "server address to connect to")
	name := fs.String("name", "player", "your name")
	fs.Parse(args)

	return devnet.Connect(ctx, *addr, *name)
}
