package main

import (
	"embed"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"

	"github.com/JaimeStill/palette/internal/config"
)

//go:embed migrations/*.sql
var migrations embed.FS

const envDSN = "PALETTE_DB_DSN"

var errUsage = errors.New("usage: migrate [-dsn URL] up | down | steps N | version | force V")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "migrate:", err)
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	dsn := fs.String("dsn", "", "database URL (default: $"+envDSN+", then config.toml)")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	op, arg, err := parseOperation(fs.Args())
	if err != nil {
		return err
	}

	url, err := resolveDSN(*dsn)
	if err != nil {
		return err
	}

	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("migration source: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", source, url)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	defer m.Close()

	switch op {
	case "version":
		v, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			fmt.Fprintln(out, "version: none")
			return nil
		}
		if err != nil {
			return fmt.Errorf("read version: %w", err)
		}
		fmt.Fprintf(out, "version: %d, dirty: %v\n", v, dirty)
		return nil
	case "force":
		if err := m.Force(arg); err != nil {
			return fmt.Errorf("force version %d: %w", arg, err)
		}
		fmt.Fprintf(out, "forced to version %d\n", arg)
		return nil
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "steps":
		err = m.Steps(arg)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		fmt.Fprintln(out, "no change")
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	fmt.Fprintf(out, "%s complete\n", op)
	return nil
}

// parseOperation validates the positional arguments. steps and force take an
// integer; the rest take none.
func parseOperation(args []string) (string, int, error) {
	if len(args) == 0 {
		return "", 0, errUsage
	}

	op := args[0]
	switch op {
	case "up", "down", "version":
		if len(args) != 1 {
			return "", 0, errUsage
		}
		return op, 0, nil
	case "steps", "force":
		if len(args) != 2 {
			return "", 0, errUsage
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return "", 0, fmt.Errorf("%w: %s needs an integer", errUsage, op)
		}
		if op == "steps" && n == 0 {
			return "", 0, fmt.Errorf("%w: steps cannot be zero", errUsage)
		}
		return op, n, nil
	}
	return "", 0, fmt.Errorf("%w: unknown operation %q", errUsage, op)
}

func resolveDSN(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if v := os.Getenv(envDSN); v != "" {
		return v, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return "", fmt.Errorf("load config: %w", err)
	}
	return cfg.Database.URL(), nil
}
