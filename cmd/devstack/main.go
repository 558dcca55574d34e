// Package main provides the devstack tool: start the local backend and
// frontend, wait until they answer, and keep them supervised until
// interrupted.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/kbukum/alexops/internal/config"
	"github.com/kbukum/alexops/internal/logger"
	"github.com/kbukum/alexops/internal/process"
	"github.com/kbukum/alexops/internal/supervisor"
	"github.com/kbukum/alexops/internal/version"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet("devstack", flag.ContinueOnError)
	fs.SetOutput(errOut)
	projectRoot := fs.String("root", ".", "project root anchoring service directories and env files")
	configFile := fs.String("config", "", "config file path")
	showVersion := fs.Bool("version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if *showVersion {
		version.Print(out, "devstack")
		return 0
	}

	var cfg appConfig
	var loadOpts []config.LoaderOption
	if *configFile != "" {
		loadOpts = append(loadOpts, config.WithConfigFile(*configFile))
	}
	if err := config.Load("devstack", &cfg, loadOpts...); err != nil {
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

	fmt.Fprintln(out, "Local Dev Stack")
	fmt.Fprintln(out, strings.Repeat("=", 50))

	if !checkPrerequisites(out, errOut, cfg.Prerequisites) {
		return 1
	}
	if !checkEnvFiles(out, errOut, *projectRoot, cfg.EnvFiles) {
		return 1
	}

	grace, _ := time.ParseDuration(cfg.GracePeriod)
	healthTimeout, _ := time.ParseDuration(cfg.HealthTimeout)

	sup := supervisor.New(log, out, grace)
	defer sup.Shutdown()

	for _, sc := range cfg.Services {
		svc := supervisor.Service{
			Name:      sc.Name,
			Binary:    sc.Binary,
			Args:      sc.Args,
			Dir:       joinRoot(*projectRoot, sc.Dir),
			Stdout:    os.Stdout,
			Stderr:    os.Stderr,
			HealthURL: sc.HealthURL,
			URL:       sc.URL,
		}

		fmt.Fprintf(out, "\nStarting %s...\n", svc.Name)
		if err := sup.Start(svc); err != nil {
			fmt.Fprintf(errOut, "Error: %v\n", err)
			return 1
		}
		if err := sup.AwaitHealthy(ctx, svc, healthTimeout); err != nil {
			if ctx.Err() != nil {
				return 0
			}
			fmt.Fprintf(errOut, "Error: %v\n", err)
			return 1
		}
		if svc.HealthURL != "" {
			fmt.Fprintf(out, "   %s is up\n", svc.Name)
		}
	}

	printSummary(out, cfg.Services)

	select {
	case <-ctx.Done():
		return 0
	case exit := <-sup.Exits():
		log.Error("Service exited unexpectedly", map[string]interface{}{
			"service": exit.Name,
			"code":    exit.Code,
		})
		fmt.Fprintf(errOut, "\n%s exited unexpectedly with code %d\n", exit.Name, exit.Code)
		return 1
	}
}

func checkPrerequisites(out, errOut io.Writer, names []string) bool {
	fmt.Fprintln(out, "\nChecking prerequisites...")
	var missing []string
	for _, name := range names {
		path, err := process.ResolveBinary(name)
		if err != nil {
			fmt.Fprintf(out, "   %s: not found\n", name)
			missing = append(missing, name)
			continue
		}
		fmt.Fprintf(out, "   %s: %s\n", name, path)
	}
	if len(missing) > 0 {
		fmt.Fprintf(errOut, "Error: missing prerequisites: %s\n", strings.Join(missing, ", "))
		return false
	}
	return true
}

func checkEnvFiles(out, errOut io.Writer, root string, files []string) bool {
	fmt.Fprintln(out, "\nChecking environment files...")
	var missing []string
	for _, f := range files {
		path := joinRoot(root, f)
		if _, err := os.Stat(path); err != nil {
			fmt.Fprintf(out, "   %s: missing\n", f)
			missing = append(missing, f)
			continue
		}
		fmt.Fprintf(out, "   %s: ok\n", f)
	}
	if len(missing) > 0 {
		fmt.Fprintf(errOut, "Error: missing environment files: %s\n", strings.Join(missing, ", "))
		return false
	}
	return true
}

func joinRoot(root, path string) string {
	if path == "" {
		return root
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

func printSummary(out io.Writer, services []serviceConfig) {
	fmt.Fprintln(out, "\n"+strings.Repeat("=", 50))
	fmt.Fprintln(out, "Dev stack is running")
	for _, sc := range services {
		if sc.URL == "" {
			continue
		}
		fmt.Fprintf(out, "   %s: %s\n", sc.Name, sc.URL)
	}
	fmt.Fprintln(out, "Press Ctrl+C to stop")
	fmt.Fprintln(out, strings.Repeat("=", 50))
}
