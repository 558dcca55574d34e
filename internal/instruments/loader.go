package instruments

import (
	"context"

	"gorm.io/gorm/clause"

	"github.com/kbukum/alexops/internal/database"
	apperrors "github.com/kbukum/alexops/internal/errors"
	"github.com/kbukum/alexops/internal/logger"
	"github.com/kbukum/alexops/internal/validation"
)

// Loader upserts the embedded catalog into the instruments table.
type Loader struct {
	db  *database.DB
	log *logger.Logger
}

// NewLoader creates a catalog loader on the given database.
func NewLoader(db *database.DB, log *logger.Logger) *Loader {
	return &Loader{db: db, log: log.WithComponent("instruments")}
}

// Load upserts every catalog instrument in order. An existing symbol is
// updated in place rather than rejected, so repeated runs converge on
// the same catalog. A failed row is logged and skipped; Load reports
// how many rows were written out of the catalog total, and returns a
// non-nil error when any row failed.
func (l *Loader) Load(ctx context.Context) (loaded, total int, err error) {
	total = len(catalog)

	var firstErr error
	for _, inst := range catalog {
		if vErr := validation.Validate(&inst); vErr != nil {
			l.log.Error("Catalog entry is invalid", map[string]interface{}{
				"symbol": inst.Symbol,
				"error":  vErr.Error(),
			})
			if firstErr == nil {
				firstErr = vErr
			}
			continue
		}

		res := l.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "symbol"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "asset_class", "region", "expense_ratio", "updated_at"}),
		}).Create(&inst)
		if res.Error != nil {
			l.log.Error("Instrument upsert failed", map[string]interface{}{
				"symbol": inst.Symbol,
				"error":  res.Error.Error(),
			})
			if firstErr == nil {
				firstErr = res.Error
			}
			continue
		}
		loaded++
	}

	if firstErr != nil {
		return loaded, total, apperrors.DatabaseError(firstErr).
			WithDetail("loaded", loaded).
			WithDetail("total", total)
	}

	l.log.Info("Instrument catalog loaded", map[string]interface{}{
		"loaded": loaded,
		"total":  total,
	})
	return loaded, total, nil
}
