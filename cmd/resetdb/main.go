// Package main provides the reset-db tool: drop, migrate, reseed and
// verify a development database in one run.
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
	"github.com/kbukum/alexops/internal/fixture"
	"github.com/kbukum/alexops/internal/logger"
	"github.com/kbukum/alexops/internal/process"
	"github.com/kbukum/alexops/internal/reset"
	"github.com/kbukum/alexops/internal/version"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet("reset-db", flag.ContinueOnError)
	fs.SetOutput(errOut)
	withTestData := fs.Bool("with-test-data", false, "create the test user and portfolio after seeding")
	skipDrop := fs.Bool("skip-drop", false, "skip teardown and migrations, only reload data")
	migrateBin := fs.String("migrate-bin", reset.DefaultMigrateBinary, "migration runner binary")
	seedBin := fs.String("seed-bin", reset.DefaultSeedBinary, "reference data loader binary")
	configFile := fs.String("config", "", "config file path")
	showVersion := fs.Bool("version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if *showVersion {
		version.Print(out, "reset-db")
		return 0
	}

	var cfg appConfig
	var loadOpts []config.LoaderOption
	if *configFile != "" {
		loadOpts = append(loadOpts, config.WithConfigFile(*configFile))
	}
	if err := config.Load("resetdb", &cfg, loadOpts...); err != nil {
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

	opts := reset.Options{
		WithTestData: *withTestData,
		SkipDrop:     *skipDrop,
	}
	// Resolve only the children this run will invoke, and do it before
	// connecting so a missing binary aborts with nothing dropped.
	if !*skipDrop {
		path, err := process.ResolveBinary(*migrateBin)
		if err != nil {
			fmt.Fprintf(errOut, "Error: %v\n", err)
			return 1
		}
		opts.MigrateBinary = path
	}
	seedPath, err := process.ResolveBinary(*seedBin)
	if err != nil {
		fmt.Fprintf(errOut, "Error: %v\n", err)
		return 1
	}
	opts.SeedBinary = seedPath

	db, err := database.Open(ctx, postgres.Open(cfg.Database.URL), cfg.Database, log)
	if err != nil {
		fmt.Fprintf(errOut, "Error: %v\n", err)
		return 1
	}
	defer db.Close()

	runner := reset.NewRunner(opts, reset.Deps{
		Execer:  db,
		Counter: db,
		Invoke:  process.Run,
		Fixture: fixture.NewProvisioner(db, log, out),
		Log:     log,
		Out:     out,
		ErrOut:  errOut,
	})
	if err := runner.Run(ctx); err != nil {
		log.Error("Reset failed", map[string]interface{}{
			"error": err.Error(),
			"state": string(runner.State),
		})
		fmt.Fprintf(errOut, "Error: %v\n", err)
		return apperrors.ExitCode(err)
	}
	return 0
}
