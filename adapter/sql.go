package adapter

import (
	"context"
	"database/sql"
)

func WrapDB(value *sql.DB) Handle     { return sqlDB{DB: value} }
func WrapConn(value *sql.Conn) Handle { return sqlConn{Conn: value} }

type sqlDB struct{ *sql.DB }

func (this sqlDB) QueryContext(ctx context.Context, statement string, args ...interface{}) (QueryResult, error) {
	return this.DB.QueryContext(ctx, statement, args...)
}
func (this sqlDB) BeginTx(ctx context.Context, options *sql.TxOptions) (Transaction, error) {
	if tx, err := this.DB.BeginTx(ctx, options); err != nil {
		return nil, err
	} else {
		return sqlTx{Tx: tx}, nil
	}
}

type sqlConn struct{ *sql.Conn }

func (this sqlConn) QueryContext(ctx context.Context, statement string, args ...interface{}) (QueryResult, error) {
	return this.Conn.QueryContext(ctx, statement, args...)
}
func (this sqlConn) BeginTx(ctx context.Context, options *sql.TxOptions) (Transaction, error) {
	if tx, err := this.Conn.BeginTx(ctx, options); err != nil {
		return nil, err
	} else {
		return sqlTx{Tx: tx}, nil
	}
}

type sqlTx struct{ *sql.Tx }

func (this sqlTx) QueryContext(ctx context.Context, statement string, args ...interface{}) (QueryResult, error) {
	return this.Tx.QueryContext(ctx, statement, args...)
}
