package sqlcompat

import (
	"context"
	"io"
	"time"
)

// Driver is the boundary to the underlying database driver. Statements handed to a
// Driver already use the driver's native positional placeholders ($1, $2, ...).
type Driver interface {
	Fetch(ctx context.Context, statement string, args ...interface{}) ([]Row, error)
	Begin(ctx context.Context) (Transaction, error)
}

type Transaction interface {
	Cursor(ctx context.Context, statement string, args ...interface{}) (Cursor, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Cursor yields rows one at a time. Next returns io.EOF once the result set is exhausted.
type Cursor interface {
	Next(ctx context.Context) (Row, error)
	io.Closer
}

// Row is an opaque record whose values are addressable by column name.
type Row interface {
	Columns() []string
	Values() []interface{}
	Value(column string) (interface{}, bool)
}

type Monitor interface {
	QueryExecuted(duration time.Duration, err error)
	StreamOpened(err error)
	RowStreamed()
	TransactionCommitted(err error)
	TransactionRolledBack(err error)
}

type Logger interface {
	Printf(format string, args ...interface{})
}
