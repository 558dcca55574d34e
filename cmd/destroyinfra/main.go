// Package main provides the destroy-infra tool: empty the platform's
// S3 buckets, destroy the terraform stack and remove build artifacts.
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

	"github.com/kbukum/alexops/internal/config"
	"github.com/kbukum/alexops/internal/infra"
	"github.com/kbukum/alexops/internal/logger"
	"github.com/kbukum/alexops/internal/process"
	"github.com/kbukum/alexops/internal/storage"
	"github.com/kbukum/alexops/internal/version"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, out, errOut io.Writer) int {
	fs := flag.NewFlagSet("destroy-infra", flag.ContinueOnError)
	fs.SetOutput(errOut)
	yes := fs.Bool("yes", false, "skip confirmation and auto-approve terraform destroy")
	projectRoot := fs.String("root", ".", "project root anchoring terraform and artifact paths")
	terraformDir := fs.String("terraform-dir", infra.DefaultTerraformDir, "terraform directory relative to the project root")
	configFile := fs.String("config", "", "config file path")
	showVersion := fs.Bool("version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if *showVersion {
		version.Print(out, "destroy-infra")
		return 0
	}

	var cfg appConfig
	var loadOpts []config.LoaderOption
	if *configFile != "" {
		loadOpts = append(loadOpts, config.WithConfigFile(*configFile))
	}
	if err := config.Load("destroyinfra", &cfg, loadOpts...); err != nil {
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

	var buckets infra.BucketStore
	client, err := storage.New(ctx, cfg.AWS, log)
	if err != nil {
		// Bucket cleanup degrades to a skipped step; the rest of the
		// teardown still runs.
		log.Warn("AWS client unavailable", map[string]interface{}{"error": err.Error()})
		buckets = unavailableStore{err: err}
	} else {
		buckets = client
	}

	destroyer := infra.NewDestroyer(infra.Options{
		Yes:          *yes,
		ProjectRoot:  *projectRoot,
		TerraformDir: *terraformDir,
	}, infra.Deps{
		Buckets: buckets,
		Run:     process.RunAttached,
		Log:     log,
		Out:     out,
		ErrOut:  errOut,
		Stdin:   stdin,
	})
	if err := destroyer.Run(ctx); err != nil {
		fmt.Fprintf(errOut, "Error: %v\n", err)
		return 1
	}
	return 0
}

// unavailableStore stands in when the AWS client cannot be built. Every
// call reports the construction error, which the bucket step logs
// before moving on.
type unavailableStore struct{ err error }

func (u unavailableStore) AccountID(context.Context) (string, error) { return "", u.err }

func (u unavailableStore) BucketExists(context.Context, string) (bool, error) {
	return false, u.err
}

func (u unavailableStore) EmptyBucket(context.Context, string) (int, error) { return 0, u.err }
