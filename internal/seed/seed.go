// Package seed loads catalog plants into the database at startup.
package seed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Simplici0/farmyield/internal/catalog"
	"github.com/Simplici0/farmyield/pkg/farm"
)

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
	Skipped int
}

// Run inserts plants that are not yet in the catalog, in one transaction.
// Plants whose name already exists are left untouched, so Run is idempotent.
func Run(ctx context.Context, db *sql.DB, plants []farm.Plant) (Stats, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}
	for _, p := range plants {
		err := catalog.InsertTx(ctx, tx, p)
		switch {
		case err == nil:
			stats.Inserts++
		case errors.Is(err, catalog.ErrConflict):
			stats.Skipped++
		default:
			_ = tx.Rollback()
			return Stats{}, fmt.Errorf("seed plant %q: %w", p.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

// Plants returns the plants to seed: the catalog file at path, or the
// built-in catalog when path is empty.
func Plants(path string) ([]farm.Plant, error) {
	if path == "" {
		return catalog.Default().Plants, nil
	}
	f, err := catalog.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return f.Plants, nil
}
