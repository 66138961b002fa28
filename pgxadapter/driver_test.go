package pgxadapter

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/smartystreets/assertions/should"
	"github.com/smartystreets/gunit"
	"github.com/smartystreets/sqlcompat"
)

func TestDriverFixture(t *testing.T) {
	gunit.Run(new(DriverFixture), t)
}

type DriverFixture struct {
	*gunit.Fixture

	ctx    context.Context
	driver *Driver
	tx     *fakeTx

	queryStatement string
	queryArgs      []interface{}
	queryRows      *fakeRows
	queryError     error

	beginOptions pgx.TxOptions
	beginError   error
}

func (this *DriverFixture) Setup() {
	this.ctx = context.Background()
	this.tx = &fakeTx{}
	this.driver = New(this, Options.Prefetch(2), Options.CursorName(func() string { return "c1" }))
}

func (this *DriverFixture) TestFetchCollectsRowsWithColumnNames() {
	this.queryRows = newFakeRows("id", "name")
	this.queryRows.values = [][]interface{}{{int32(1), "foo"}, {int32(2), nil}}

	rows, err := this.driver.Fetch(this.ctx, "SELECT id, name FROM users WHERE id > $1", 0)

	this.So(err, should.BeNil)
	this.So(this.queryStatement, should.Equal, "SELECT id, name FROM users WHERE id > $1")
	this.So(this.queryArgs, should.Resemble, []interface{}{0})
	this.So(this.queryRows.closed, should.BeTrue)
	this.So(rows, should.HaveLength, 2)
	this.So(rows[0].Columns(), should.Resemble, []string{"id", "name"})
	this.So(rows[1].Values(), should.Resemble, []interface{}{int32(2), nil})
}
func (this *DriverFixture) TestFetchReturnsQueryError() {
	this.queryError = errors.New("syntax error")

	rows, err := this.driver.Fetch(this.ctx, "SELEC 1")

	this.So(rows, should.BeNil)
	this.So(err, should.Equal, this.queryError)
}
func (this *DriverFixture) TestFetchReturnsIterationError() {
	this.queryRows = newFakeRows("id")
	this.queryRows.values = [][]interface{}{{1}}
	this.queryRows.err = errors.New("connection reset")

	rows, err := this.driver.Fetch(this.ctx, "SELECT id FROM users")

	this.So(rows, should.BeNil)
	this.So(err, should.Equal, this.queryRows.err)
	this.So(this.queryRows.closed, should.BeTrue)
}

func (this *DriverFixture) TestBeginAppliesTransactionOptions() {
	driver := New(this, Options.IsolationLevel(pgx.Serializable), Options.ReadOnly(true))

	tx, err := driver.Begin(this.ctx)

	this.So(err, should.BeNil)
	this.So(tx, should.NotBeNil)
	this.So(this.beginOptions, should.Resemble, pgx.TxOptions{IsoLevel: pgx.Serializable, AccessMode: pgx.ReadOnly})
}
func (this *DriverFixture) TestBeginReturnsDriverError() {
	this.beginError = errors.New("too many connections")

	tx, err := this.driver.Begin(this.ctx)

	this.So(tx, should.BeNil)
	this.So(err, should.Equal, this.beginError)
}
func (this *DriverFixture) TestDefaultsUseAsyncpgPrefetchAndUniqueCursorNames() {
	driver := New(this, Options.Prefetch(0))

	first, second := driver.cursorName(), driver.cursorName()

	this.So(driver.prefetch, should.Equal, 50)
	this.So(first, should.NotEqual, second)
	this.So(strings.HasPrefix(first, "sqlcompat_"), should.BeTrue)
	this.So(len(first), should.Equal, len("sqlcompat_")+32)
}

func (this *DriverFixture) TestCursorIsDeclaredWithDescribedArguments() {
	tx, _ := this.driver.Begin(this.ctx)

	cursor, err := tx.Cursor(this.ctx, "SELECT name FROM users WHERE id = $1", 7)

	this.So(err, should.BeNil)
	this.So(cursor, should.NotBeNil)
	this.So(this.tx.executed, should.Resemble, []string{`DECLARE "c1" NO SCROLL CURSOR FOR SELECT name FROM users WHERE id = $1`})
	this.So(this.tx.executedArgs, should.Resemble, [][]interface{}{{pgx.QueryExecModeDescribeExec, 7}})
	this.So(this.tx.queried, should.BeEmpty)
}
func (this *DriverFixture) TestCursorDeclarationErrorIsReturned() {
	this.tx.execError = errors.New("relation does not exist")
	tx, _ := this.driver.Begin(this.ctx)

	cursor, err := tx.Cursor(this.ctx, "SELECT * FROM missing")

	this.So(cursor, should.BeNil)
	this.So(err, should.Equal, this.tx.execError)
}
func (this *DriverFixture) TestCursorFetchesInBatchesUntilAShortBatch() {
	this.tx.batches = [][][]interface{}{{{"a"}, {"b"}}, {{"c"}}}
	cursor := this.declare()

	names, err := drain(this.ctx, cursor)

	this.So(err, should.Equal, io.EOF)
	this.So(names, should.Resemble, []interface{}{"a", "b", "c"})
	this.So(this.tx.queried, should.Resemble, []string{`FETCH FORWARD 2 FROM "c1"`, `FETCH FORWARD 2 FROM "c1"`})
	this.So(this.tx.queriedArgs[0], should.Resemble, []interface{}{pgx.QueryExecModeSimpleProtocol})
}
func (this *DriverFixture) TestFullFinalBatchNeedsOneEmptyFetch() {
	this.tx.batches = [][][]interface{}{{{"a"}, {"b"}}, {}}
	cursor := this.declare()

	names, err := drain(this.ctx, cursor)
	_, again := cursor.Next(this.ctx)

	this.So(err, should.Equal, io.EOF)
	this.So(again, should.Equal, io.EOF)
	this.So(names, should.Resemble, []interface{}{"a", "b"})
	this.So(len(this.tx.queried), should.Equal, 2)
}
func (this *DriverFixture) TestFetchFailureDuringIterationIsReturned() {
	this.tx.batches = [][][]interface{}{{{"a"}, {"b"}}}
	this.tx.queryErrors = []error{nil, errors.New("canceling statement due to user request")}
	cursor := this.declare()

	names, err := drain(this.ctx, cursor)

	this.So(names, should.Resemble, []interface{}{"a", "b"})
	this.So(err, should.Equal, this.tx.queryErrors[1])
}
func (this *DriverFixture) TestClosedCursorYieldsNothingMore() {
	this.tx.batches = [][][]interface{}{{{"a"}, {"b"}}}
	cursor := this.declare()
	_, _ = cursor.Next(this.ctx)

	this.So(cursor.Close(), should.BeNil)
	_, err := cursor.Next(this.ctx)

	this.So(err, should.Equal, io.EOF)
	this.So(len(this.tx.queried), should.Equal, 1)
}

func (this *DriverFixture) TestTransactionDelegatesCommitAndRollback() {
	tx, _ := this.driver.Begin(this.ctx)

	this.So(tx.Commit(this.ctx), should.BeNil)
	this.So(tx.Rollback(this.ctx), should.BeNil)

	this.So(this.tx.commits, should.Equal, 1)
	this.So(this.tx.rollbacks, should.Equal, 1)
}
func (this *DriverFixture) TestStreamThroughConnectionCommitsAfterLastBatch() {
	this.tx.batches = [][][]interface{}{{{"a"}, {"b"}}, {{"c"}}}
	connection := sqlcompat.NewConnection(this.driver, sqlcompat.Options.Queries(sqlcompat.NewQueryCache()))

	stream, err := connection.Stream(this.ctx, connection.Text("SELECT name FROM users WHERE id > :p1"), map[string]interface{}{"p1": 0})
	this.So(err, should.BeNil)

	var names []interface{}
	for row, err := range stream.Rows(this.ctx) {
		this.So(err, should.BeNil)
		name, _ := row.Value("name")
		names = append(names, name)
	}

	this.So(names, should.Resemble, []interface{}{"a", "b", "c"})
	this.So(stream.State(), should.Equal, sqlcompat.Committed)
	this.So(this.tx.commits, should.Equal, 1)
	this.So(this.tx.rollbacks, should.Equal, 0)
}

func (this *DriverFixture) declare() sqlcompat.Cursor {
	tx, err := this.driver.Begin(this.ctx)
	this.So(err, should.BeNil)
	cursor, err := tx.Cursor(this.ctx, "SELECT name FROM users")
	this.So(err, should.BeNil)
	return cursor
}

////////////////////////////////////////////////////////////////////////////////////////////////////////////////////////

func (this *DriverFixture) Query(_ context.Context, statement string, args ...interface{}) (pgx.Rows, error) {
	this.queryStatement = statement
	this.queryArgs = args
	if this.queryError != nil {
		return nil, this.queryError
	}
	return this.queryRows, nil
}
func (this *DriverFixture) BeginTx(_ context.Context, options pgx.TxOptions) (pgx.Tx, error) {
	this.beginOptions = options
	if this.beginError != nil {
		return nil, this.beginError
	}
	return this.tx, nil
}

////////////////////////////////////////////////////////////////////////////////////////////////////////////////////////

type fakeTx struct {
	pgx.Tx

	executed     []string
	executedArgs [][]interface{}
	execError    error

	queried     []string
	queriedArgs [][]interface{}
	queryErrors []error
	batches     [][][]interface{}

	commits   int
	rollbacks int
}

func (this *fakeTx) Exec(_ context.Context, statement string, args ...interface{}) (pgconn.CommandTag, error) {
	this.executed = append(this.executed, statement)
	this.executedArgs = append(this.executedArgs, args)
	return pgconn.NewCommandTag("DECLARE CURSOR"), this.execError
}
func (this *fakeTx) Query(_ context.Context, statement string, args ...interface{}) (pgx.Rows, error) {
	call := len(this.queried)
	this.queried = append(this.queried, statement)
	this.queriedArgs = append(this.queriedArgs, args)

	if call < len(this.queryErrors) && this.queryErrors[call] != nil {
		return nil, this.queryErrors[call]
	}

	rows := newFakeRows("name")
	if call < len(this.batches) {
		rows.values = this.batches[call]
	}
	return rows, nil
}
func (this *fakeTx) Commit(_ context.Context) error   { this.commits++; return nil }
func (this *fakeTx) Rollback(_ context.Context) error { this.rollbacks++; return nil }

type fakeRows struct {
	pgx.Rows

	fields []pgconn.FieldDescription
	values [][]interface{}
	index  int
	err    error
	closed bool
}

func newFakeRows(columns ...string) *fakeRows {
	fields := make([]pgconn.FieldDescription, len(columns))
	for i, column := range columns {
		fields[i] = pgconn.FieldDescription{Name: column}
	}
	return &fakeRows{fields: fields}
}

func (this *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return this.fields }
func (this *fakeRows) Next() bool {
	if this.index >= len(this.values) {
		return false
	}
	this.index++
	return true
}
func (this *fakeRows) Values() ([]interface{}, error) { return this.values[this.index-1], nil }
func (this *fakeRows) Err() error                     { return this.err }
func (this *fakeRows) Close()                         { this.closed = true }

func drain(ctx context.Context, cursor sqlcompat.Cursor) (names []interface{}, err error) {
	for {
		row, err := cursor.Next(ctx)
		if err != nil {
			return names, err
		}
		name, _ := row.Value("name")
		names = append(names, name)
	}
}
