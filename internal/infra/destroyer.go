package infra

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kbukum/alexops/internal/logger"
	"github.com/kbukum/alexops/internal/process"
)

// Default paths and bucket prefixes of the platform's footprint. Bucket
// prefixes are completed with "-<account id>".
var (
	DefaultBucketPrefixes = []string{"alex-frontend", "alex-lambda-packages", "alex-vector"}
	DefaultArtifacts      = []string{
		filepath.Join("backend", "api", "api_lambda.zip"),
		filepath.Join("frontend", "out"),
		filepath.Join("frontend", ".next"),
	}
)

// DefaultTerraformDir is where terraform destroy runs, relative to the
// project root.
const DefaultTerraformDir = "terraform/frontend"

// BucketStore is the storage surface teardown uses. Satisfied by
// *storage.Client.
type BucketStore interface {
	AccountID(ctx context.Context) (string, error)
	BucketExists(ctx context.Context, bucket string) (bool, error)
	EmptyBucket(ctx context.Context, bucket string) (int, error)
}

// Runner executes a child process with inherited stdio.
// process.RunAttached in production.
type Runner func(ctx context.Context, cmd process.Command) (*process.Result, error)

// Options control a destruction run.
type Options struct {
	// Yes skips the interactive confirmation and auto-approves the
	// terraform destroy.
	Yes bool
	// ProjectRoot anchors TerraformDir and Artifacts.
	ProjectRoot string
	// TerraformDir is the terraform working directory, relative to
	// ProjectRoot.
	TerraformDir string
	// BucketPrefixes name the buckets to empty, completed with the
	// account id.
	BucketPrefixes []string
	// Artifacts are local build outputs removed at the end, relative
	// to ProjectRoot.
	Artifacts []string
}

// Deps are the destroyer's collaborators.
type Deps struct {
	Buckets BucketStore
	Run     Runner
	Log     *logger.Logger
	Out     io.Writer
	ErrOut  io.Writer
	Stdin   io.Reader
}

// Destroyer drives one destruction run.
type Destroyer struct {
	opts Options
	deps Deps
}

// NewDestroyer creates a destroyer. Nil writers are discarded; a nil
// stdin means the confirmation prompt can never be answered, so only
// Yes runs proceed.
func NewDestroyer(opts Options, deps Deps) *Destroyer {
	if opts.ProjectRoot == "" {
		opts.ProjectRoot = "."
	}
	if opts.TerraformDir == "" {
		opts.TerraformDir = DefaultTerraformDir
	}
	if opts.BucketPrefixes == nil {
		opts.BucketPrefixes = DefaultBucketPrefixes
	}
	if opts.Artifacts == nil {
		opts.Artifacts = DefaultArtifacts
	}
	if deps.Out == nil {
		deps.Out = io.Discard
	}
	if deps.ErrOut == nil {
		deps.ErrOut = io.Discard
	}
	if deps.Stdin == nil {
		deps.Stdin = strings.NewReader("")
	}
	return &Destroyer{opts: opts, deps: deps}
}

// Run empties the platform buckets, destroys the terraform stack and
// removes local artifacts. Steps are individually best-effort; a
// cancelled confirmation ends the run cleanly without touching
// anything.
func (d *Destroyer) Run(ctx context.Context) error {
	out := d.deps.Out

	fmt.Fprintln(out, "Infrastructure Destruction")
	fmt.Fprintln(out, strings.Repeat("=", 60))
	fmt.Fprintln(out, "WARNING: this will destroy the deployed infrastructure,")
	fmt.Fprintln(out, "including the CloudFront distribution, API Gateway, Lambda")
	fmt.Fprintln(out, "functions, S3 buckets and their contents, and IAM roles.")
	fmt.Fprintln(out)

	if !d.opts.Yes && !d.confirm() {
		fmt.Fprintln(out, "Destruction cancelled")
		return nil
	}

	d.emptyBuckets(ctx)
	d.destroyTerraform(ctx)
	d.cleanArtifacts()

	fmt.Fprintln(out, strings.Repeat("=", 60))
	fmt.Fprintln(out, "Destruction complete")
	return nil
}

func (d *Destroyer) confirm() bool {
	fmt.Fprint(d.deps.Out, "Are you sure you want to continue? Type 'yes' to confirm: ")
	scanner := bufio.NewScanner(d.deps.Stdin)
	if !scanner.Scan() {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(scanner.Text()), "yes")
}

func (d *Destroyer) emptyBuckets(ctx context.Context) {
	out := d.deps.Out
	fmt.Fprintln(out, "\nEmptying S3 buckets...")

	account, err := d.deps.Buckets.AccountID(ctx)
	if err != nil {
		d.deps.Log.Warn("Could not resolve AWS account id", map[string]interface{}{"error": err.Error()})
		fmt.Fprintf(out, "   could not resolve AWS account id: %v\n", err)
		return
	}

	for _, prefix := range d.opts.BucketPrefixes {
		bucket := fmt.Sprintf("%s-%s", prefix, account)

		exists, err := d.deps.Buckets.BucketExists(ctx, bucket)
		if err != nil {
			fmt.Fprintf(out, "   error checking %s: %v\n", bucket, err)
			continue
		}
		if !exists {
			fmt.Fprintf(out, "   %s does not exist, skipping\n", bucket)
			continue
		}

		deleted, err := d.deps.Buckets.EmptyBucket(ctx, bucket)
		if err != nil {
			fmt.Fprintf(out, "   error emptying %s: %v\n", bucket, err)
			continue
		}
		fmt.Fprintf(out, "   emptied %s (%d objects)\n", bucket, deleted)
	}
}

func (d *Destroyer) destroyTerraform(ctx context.Context) {
	out := d.deps.Out
	fmt.Fprintln(out, "\nDestroying infrastructure with terraform...")

	dir := filepath.Join(d.opts.ProjectRoot, d.opts.TerraformDir)
	if _, err := os.Stat(dir); err != nil {
		fmt.Fprintf(out, "   terraform directory not found: %s\n", dir)
		return
	}
	if _, err := os.Stat(filepath.Join(dir, ".terraform")); err != nil {
		fmt.Fprintln(out, "   terraform not initialized, nothing to destroy")
		return
	}

	args := []string{"destroy"}
	if d.opts.Yes {
		args = append(args, "-auto-approve")
	} else {
		fmt.Fprintln(out, "   type 'yes' when terraform prompts to confirm")
	}

	if _, err := d.deps.Run(ctx, process.Command{Binary: "terraform", Args: args, Dir: dir}); err != nil {
		d.deps.Log.Warn("terraform destroy failed", map[string]interface{}{"error": err.Error()})
		fmt.Fprintf(out, "   terraform destroy failed: %v\n", err)
		fmt.Fprintln(out, "   remaining resources may need manual cleanup in the AWS console")
		return
	}
	fmt.Fprintln(out, "   infrastructure destroyed")
}

func (d *Destroyer) cleanArtifacts() {
	out := d.deps.Out
	fmt.Fprintln(out, "\nCleaning up local artifacts...")

	for _, rel := range d.opts.Artifacts {
		path := filepath.Join(d.opts.ProjectRoot, rel)
		info, err := os.Stat(path)
		if err != nil {
			continue
		}

		if info.IsDir() {
			if err := os.RemoveAll(path); err != nil {
				fmt.Fprintf(out, "   error deleting %s: %v\n", path, err)
				continue
			}
			fmt.Fprintf(out, "   deleted directory %s\n", path)
			continue
		}

		if err := os.Remove(path); err != nil {
			fmt.Fprintf(out, "   error deleting %s: %v\n", path, err)
			continue
		}
		fmt.Fprintf(out, "   deleted %s\n", path)
	}
}
