package repositories

import (
	"context"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

// DB is the slice of pgxpool.Pool the repositories need. Satisfied by
// *pgxpool.Pool and by a pgx.Tx, which keeps repositories usable
// inside transactions without knowing about them.
type DB interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}
