package pgxadapter

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// Conn is satisfied by *pgx.Conn, *pgxpool.Conn and *pgxpool.Pool.
type Conn interface {
	Query(ctx context.Context, statement string, args ...interface{}) (pgx.Rows, error)
	BeginTx(ctx context.Context, options pgx.TxOptions) (pgx.Tx, error)
}
