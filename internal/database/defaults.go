package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/sujal12344/client-list-table-ui/internal/database/repository"
	"github.com/sujal12344/client-list-table-ui/internal/testdata"
)

// SeedDefaults fills an empty clients table with n sample clients and
// reports how many were written. It is idempotent and safe to run on every
// startup.
func SeedDefaults(ctx context.Context, db *sql.DB, n int) (int, error) {
	repo := repository.NewClientRepo(db)
	existing, err := repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if existing > 0 || n <= 0 {
		return 0, nil
	}
	if err := testdata.Seed(ctx, repo, n, time.Now(), 1); err != nil {
		return 0, err
	}
	return n, nil
}
