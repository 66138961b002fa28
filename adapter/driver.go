package adapter

import (
	"context"
	"database/sql"
	"io"

	"github.com/smartystreets/sqlcompat"
)

// Driver runs sqlcompat statements through database/sql. Streams read from the rows of a
// query issued inside the implicit transaction; the underlying driver decides whether
// those rows arrive incrementally.
type Driver struct {
	handle    Handle
	txOptions sql.TxOptions
}

func New(handle Handle, options ...option) *Driver {
	var config configuration
	Options.apply(options...)(&config)
	return &Driver{handle: handle, txOptions: config.TxOptions}
}

// Open panics when the driver name has not been registered with database/sql.
func Open(driverName, dataSource string, options ...option) *Driver {
	if handle, err := sql.Open(driverName, dataSource); err != nil {
		panic(err)
	} else {
		return New(WrapDB(handle), options...)
	}
}

func (this *Driver) Fetch(ctx context.Context, statement string, args ...interface{}) ([]sqlcompat.Row, error) {
	rows, err := this.handle.QueryContext(ctx, statement, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var results []sqlcompat.Row
	for rows.Next() {
		row, err := scanRow(rows, columns)
		if err != nil {
			return nil, err
		}
		results = append(results, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

func (this *Driver) Begin(ctx context.Context) (sqlcompat.Transaction, error) {
	options := this.txOptions
	if tx, err := this.handle.BeginTx(ctx, &options); err != nil {
		return nil, err
	} else {
		return transaction{inner: tx}, nil
	}
}

func (this *Driver) Close() error { return this.handle.Close() }

////////////////////////////////////////////////////////////////////////////////////////////////////////////////////////

type transaction struct{ inner Transaction }

func (this transaction) Cursor(ctx context.Context, statement string, args ...interface{}) (sqlcompat.Cursor, error) {
	rows, err := this.inner.QueryContext(ctx, statement, args...)
	if err != nil {
		return nil, err
	}

	columns, err := rows.Columns()
	if err != nil {
		_ = rows.Close()
		return nil, err
	}

	return &cursor{rows: rows, columns: columns}, nil
}
func (this transaction) Commit(_ context.Context) error   { return this.inner.Commit() }
func (this transaction) Rollback(_ context.Context) error { return this.inner.Rollback() }

type cursor struct {
	rows    QueryResult
	columns []string
}

func (this *cursor) Next(ctx context.Context) (sqlcompat.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if this.rows.Next() {
		return scanRow(this.rows, this.columns)
	}

	if err := this.rows.Err(); err != nil {
		return nil, err
	}

	return nil, io.EOF
}
func (this *cursor) Close() error { return this.rows.Close() }

func scanRow(scanner RowScanner, columns []string) (sqlcompat.Row, error) {
	values := make([]interface{}, len(columns))
	targets := make([]interface{}, len(columns))
	for i := range values {
		targets[i] = &values[i]
	}

	if err := scanner.Scan(targets...); err != nil {
		return nil, err
	}

	return sqlcompat.NewRecord(columns, values), nil
}
