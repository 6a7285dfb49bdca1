package repo

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// Querier is the part of *pgxpool.Pool the repositories use.
type Querier interface {
	Query(ctx context.Context, query string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) pgx.Row
}
