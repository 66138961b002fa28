package adapter

import (
	"context"
	"database/sql"
	"io"
)

// Handle is satisfied by the wrappers around *sql.DB and *sql.Conn. With *sql.DB each
// streaming transaction pins one pooled connection for its lifetime.
type Handle interface {
	Reader
	BeginTx(ctx context.Context, options *sql.TxOptions) (Transaction, error)
	io.Closer
}

type Reader interface {
	QueryContext(ctx context.Context, statement string, args ...interface{}) (QueryResult, error)
}
type QueryResult interface {
	RowScanner
	Columns() ([]string, error)
	Next() bool
	Err() error
	io.Closer
}
type RowScanner interface {
	Scan(...interface{}) error
}

type Transaction interface {
	Reader
	Transactional
}
type Transactional interface {
	Commit() error
	Rollback() error
}
