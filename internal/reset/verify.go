package reset

import (
	"context"
	"fmt"
	"io"

	"github.com/kbukum/alexops/internal/logger"
	"github.com/kbukum/alexops/internal/models"
)

// Counter counts the rows of a table. Satisfied by *database.DB.
type Counter interface {
	CountTable(ctx context.Context, table string) (int64, error)
}

// Verifier prints row counts for the tracked tables after a reset.
type Verifier struct {
	counter Counter
	log     *logger.Logger
	out     io.Writer
}

// NewVerifier creates a verification reporter against the given counter.
func NewVerifier(counter Counter, log *logger.Logger, out io.Writer) *Verifier {
	if out == nil {
		out = io.Discard
	}
	return &Verifier{counter: counter, log: log.WithComponent("verify"), out: out}
}

// Report counts every tracked table in order and prints the result.
// The step is observational: count errors are informational and a zero
// count is a valid outcome. Report never fails the run.
func (v *Verifier) Report(ctx context.Context) {
	fmt.Fprintln(v.out, "Final verification...")

	for _, table := range models.TrackedTables {
		count, err := v.counter.CountTable(ctx, table)
		if err != nil {
			v.log.Warn("Count query failed", map[string]interface{}{
				"table": table,
				"error": err.Error(),
			})
			fmt.Fprintf(v.out, "   %s: count unavailable (%v)\n", table, err)
			continue
		}
		fmt.Fprintf(v.out, "   %s: %d rows\n", table, count)
	}
}
