package history_db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PgxIface is the subset of *pgxpool.Pool the repository uses. It has no
// transaction methods because every operation is a single statement.
type PgxIface interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

var errNoPool = errors.New("database connection not available")

type HistoryDBRepository struct {
	pool PgxIface
}

func NewHistoryDBRepository(pool PgxIface) *HistoryDBRepository {
	return &HistoryDBRepository{pool: pool}
}

// Ping checks database connectivity.
func (r *HistoryDBRepository) Ping(ctx context.Context) error {
	if r.pool == nil {
		return errNoPool
	}
	return r.pool.Ping(ctx)
}
