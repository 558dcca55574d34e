// Package main provides the migrate tool: apply or roll back the
// embedded SQL schema migrations.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	migrate "github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"gorm.io/driver/postgres"

	"github.com/kbukum/alexops/internal/config"
	"github.com/kbukum/alexops/internal/database"
	"github.com/kbukum/alexops/internal/database/migration"
	"github.com/kbukum/alexops/internal/logger"
	"github.com/kbukum/alexops/internal/migrations"
	"github.com/kbukum/alexops/internal/version"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	fs.SetOutput(errOut)
	down := fs.Int("down", 0, "roll back N migrations instead of migrating up")
	dbVersion := fs.Bool("db-version", false, "print the current schema version and exit")
	configFile := fs.String("config", "", "config file path")
	showVersion := fs.Bool("version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if *showVersion {
		version.Print(out, "migrate")
		return 0
	}
	if *down < 0 {
		fmt.Fprintln(errOut, "Error: --down must be a positive step count")
		return 2
	}

	var cfg appConfig
	var loadOpts []config.LoaderOption
	if *configFile != "" {
		loadOpts = append(loadOpts, config.WithConfigFile(*configFile))
	}
	if err := config.Load("migrate", &cfg, loadOpts...); err != nil {
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

	driverFunc := func(sqlDB *sql.DB) (migratedb.Driver, error) {
		return migratepg.WithInstance(sqlDB, &migratepg.Config{})
	}

	switch {
	case *dbVersion:
		v, dirty, err := migration.Version(db.GormDB, migrations.FS, migrations.Path, driverFunc)
		if errors.Is(err, migrate.ErrNilVersion) {
			fmt.Fprintln(out, "no migrations applied")
			return 0
		}
		if err != nil {
			fmt.Fprintf(errOut, "Error: %v\n", err)
			return 1
		}
		fmt.Fprintf(out, "schema version %d (dirty: %t)\n", v, dirty)
	case *down > 0:
		log.Info("Rolling back migrations", map[string]interface{}{"steps": *down})
		if err := migration.Steps(db.GormDB, migrations.FS, migrations.Path, -*down, driverFunc); err != nil {
			fmt.Fprintf(errOut, "Error: %v\n", err)
			return 1
		}
		fmt.Fprintf(out, "rolled back %d migrations\n", *down)
	default:
		log.Info("Applying migrations")
		if err := migration.Up(db.GormDB, migrations.FS, migrations.Path, driverFunc); err != nil {
			fmt.Fprintf(errOut, "Error: %v\n", err)
			return 1
		}
		fmt.Fprintln(out, "migrations applied")
	}
	return 0
}
