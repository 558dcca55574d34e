package reset

import (
	"context"
	"fmt"
	"io"

	"github.com/kbukum/alexops/internal/logger"
	"github.com/kbukum/alexops/internal/models"
)

// Execer runs a raw SQL statement. Satisfied by *database.DB.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...interface{}) error
}

// Teardown drops the schema so migrations can rebuild it from scratch.
type Teardown struct {
	exec Execer
	log  *logger.Logger
	out  io.Writer
}

// NewTeardown creates a schema teardown against the given executor.
func NewTeardown(exec Execer, log *logger.Logger, out io.Writer) *Teardown {
	if out == nil {
		out = io.Discard
	}
	return &Teardown{exec: exec, log: log.WithComponent("teardown"), out: out}
}

// Drop issues a cascading drop per table in dependency order, then
// drops the updated_at trigger function. Each failure is logged and the
// loop continues; Drop never reports an error to the caller. The fixed
// order and CASCADE back each other up: order alone covers engines that
// ignore cascade, cascade alone covers an incomplete ordering.
func (t *Teardown) Drop(ctx context.Context) {
	fmt.Fprintln(t.out, "Dropping existing tables...")

	for _, table := range models.DropOrder {
		stmt := fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table)
		if err := t.exec.Exec(ctx, stmt); err != nil {
			t.log.Warn("Failed to drop table", map[string]interface{}{
				"table": table,
				"error": err.Error(),
			})
			fmt.Fprintf(t.out, "   error dropping %s: %v\n", table, err)
			continue
		}
		fmt.Fprintf(t.out, "   dropped %s\n", table)
	}

	if err := t.exec.Exec(ctx, "DROP FUNCTION IF EXISTS update_updated_at_column() CASCADE"); err != nil {
		t.log.Warn("Failed to drop trigger function", map[string]interface{}{
			"error": err.Error(),
		})
		fmt.Fprintf(t.out, "   error dropping update_updated_at_column: %v\n", err)
		return
	}
	fmt.Fprintln(t.out, "   dropped function update_updated_at_column")
}
