package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/JaimeStill/palette/internal/config"
)

type command struct {
	name    string
	summary string
	run     func(ctx context.Context, app *App, args []string) (any, error)
}

var commands = []command{
	{"learn", "learn templates and style profiles from approved work", runLearn},
	{"recommend", "rank templates by performance and recency", runRecommend},
	{"match", "score templates against a campaign brief", runMatch},
	{"apply", "apply one template to source text", runApply},
	{"select", "apply the top templates and keep the best result", runSelect},
	{"score", "score a creative for brand consistency", runScore},
	{"seed", "store the built-in templates for a workspace", runSeed},
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	name := os.Args[1]
	if name == "-h" || name == "--help" || name == "help" {
		usage()
		return
	}

	cmd, ok := lookup(name)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", name)
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config load failed: ", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, cmd, os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, cmd command, args []string) error {
	app, err := NewApp(cfg)
	if err != nil {
		return err
	}

	if err := app.Start(); err != nil {
		return err
	}
	defer func() {
		if err := app.Shutdown(cfg.ShutdownTimeoutDuration()); err != nil {
			app.infra.Logger.Error("shutdown failed", "error", err)
		}
	}()

	out, err := cmd.run(ctx, app, args)
	if err != nil {
		return err
	}
	return writeJSON(os.Stdout, out)
}

func lookup(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: palette <command> [flags]")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "commands:")
	for _, c := range commands {
		fmt.Fprintf(os.Stderr, "  %-10s %s\n", c.name, c.summary)
	}
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "run 'palette <command> -h' for command flags")
}
