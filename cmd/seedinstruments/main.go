// Package main provides the seed-instruments tool: upsert the embedded
// instrument catalog and report how many rows loaded.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"gorm.io/driver/postgres"

	"github.com/kbukum/alexops/internal/config"
	"github.com/kbukum/alexops/internal/database"
	apperrors "github.com/kbukum/alexops/internal/errors"
	"github.com/kbukum/alexops/internal/instruments"
	"github.com/kbukum/alexops/internal/logger"
	"github.com/kbukum/alexops/internal/version"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet("seed-instruments", flag.ContinueOnError)
	fs.SetOutput(errOut)
	configFile := fs.String("config", "", "config file path")
	showVersion := fs.Bool("version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if *showVersion {
		version.Print(out, "seed-instruments")
		return 0
	}

	var cfg appConfig
	var loadOpts []config.LoaderOption
	if *configFile != "" {
		loadOpts = append(loadOpts, config.WithConfigFile(*configFile))
	}
	if err := config.Load("seedinstruments", &cfg, loadOpts...); err != nil {
		fmt.Fprintf(errOut, "Error: %v\n", err)
		return 1
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(errOut, "Error: %v\n", err)
		return 1
	}

	log := logger.New(&cfg.Logging, cfg.Name)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, postgres.Open(cfg.Database.URL), cfg.Database, log)
	if err != nil {
		fmt.Fprintf(errOut, "Error: %v\n", err)
		return 1
	}
	defer db.Close()

	loaded, total, err := instruments.NewLoader(db, log).Load(ctx)
	if err != nil {
		log.Error("Catalog load failed", map[string]interface{}{
			"error":  err.Error(),
			"loaded": loaded,
			"total":  total,
		})
		fmt.Fprintf(errOut, "Error: %v\n", err)
		return apperrors.ExitCode(err)
	}

	// The reset orchestrator scans stdout for this exact line.
	fmt.Fprintf(out, "%d/%d instruments loaded\n", loaded, total)
	return 0
}
