package pgxadapter

import (
	"context"
	"fmt"
	"io"

	"github.com/jackc/pgx/v5"
	"github.com/smartystreets/sqlcompat"
)

// Driver runs sqlcompat statements through pgx. Streams are backed by a server-side
// cursor declared inside the implicit transaction and read in batches of the configured
// prefetch size.
type Driver struct {
	conn       Conn
	txOptions  pgx.TxOptions
	prefetch   int
	cursorName func() string
}

func New(conn Conn, options ...option) *Driver {
	var config configuration
	Options.apply(options...)(&config)
	return &Driver{
		conn:       conn,
		txOptions:  config.TxOptions,
		prefetch:   config.Prefetch,
		cursorName: config.CursorName,
	}
}

func (this *Driver) Fetch(ctx context.Context, statement string, args ...interface{}) ([]sqlcompat.Row, error) {
	if rows, err := this.conn.Query(ctx, statement, args...); err != nil {
		return nil, err
	} else {
		return collect(rows)
	}
}

func (this *Driver) Begin(ctx context.Context) (sqlcompat.Transaction, error) {
	if tx, err := this.conn.BeginTx(ctx, this.txOptions); err != nil {
		return nil, err
	} else {
		return &transaction{inner: tx, prefetch: this.prefetch, cursorName: this.cursorName}, nil
	}
}

////////////////////////////////////////////////////////////////////////////////////////////////////////////////////////

type transaction struct {
	inner      pgx.Tx
	prefetch   int
	cursorName func() string
}

// Cursor declares a cursor over the statement. The DECLARE is described on every call
// because each cursor name is unique and would otherwise fill the statement cache.
func (this *transaction) Cursor(ctx context.Context, statement string, args ...interface{}) (sqlcompat.Cursor, error) {
	name := pgx.Identifier{this.cursorName()}.Sanitize()
	declare := "DECLARE " + name + " NO SCROLL CURSOR FOR " + statement

	arguments := append([]interface{}{pgx.QueryExecModeDescribeExec}, args...)
	if _, err := this.inner.Exec(ctx, declare, arguments...); err != nil {
		return nil, err
	}

	return &cursor{
		tx:    this.inner,
		fetch: fmt.Sprintf("FETCH FORWARD %d FROM %s", this.prefetch, name),
		batch: this.prefetch,
	}, nil
}
func (this *transaction) Commit(ctx context.Context) error   { return this.inner.Commit(ctx) }
func (this *transaction) Rollback(ctx context.Context) error { return this.inner.Rollback(ctx) }

type cursor struct {
	tx      pgx.Tx
	fetch   string
	batch   int
	buffer  []sqlcompat.Row
	drained bool
}

func (this *cursor) Next(ctx context.Context) (sqlcompat.Row, error) {
	if len(this.buffer) == 0 && !this.drained {
		if err := this.fill(ctx); err != nil {
			return nil, err
		}
	}

	if len(this.buffer) == 0 {
		return nil, io.EOF
	}

	row := this.buffer[0]
	this.buffer[0] = nil
	this.buffer = this.buffer[1:]
	return row, nil
}
func (this *cursor) fill(ctx context.Context) error {
	rows, err := this.tx.Query(ctx, this.fetch, pgx.QueryExecModeSimpleProtocol)
	if err != nil {
		return err
	}

	batch, err := collect(rows)
	if err != nil {
		return err
	}

	this.buffer = batch
	this.drained = len(batch) < this.batch
	return nil
}

// Close discards buffered rows. The server-side cursor itself ends with its transaction.
func (this *cursor) Close() error {
	this.buffer = nil
	this.drained = true
	return nil
}

func collect(rows pgx.Rows) ([]sqlcompat.Row, error) {
	defer rows.Close()

	fields := rows.FieldDescriptions()
	columns := make([]string, len(fields))
	for i, field := range fields {
		columns[i] = field.Name
	}

	var results []sqlcompat.Row
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		results = append(results, sqlcompat.NewRecord(columns, values))
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}
