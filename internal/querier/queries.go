// Package querier is a hand-maintained stand-in for sqlc output: the same statements and
// method shapes, written against a sqlcompat.Connection.
package querier

import (
	"context"
	"errors"
	"iter"

	"github.com/smartystreets/sqlcompat"
)

var ErrUnexpectedType = errors.New("unexpected column type")

const insertOne = `INSERT INTO sqlc_test (name, description) VALUES (:p1, :p2)`

const selectOne = `SELECT id, name, description FROM sqlc_test WHERE name = :p1`

const selectMany = `SELECT id, name, description FROM sqlc_test ORDER BY id`

const deleteAll = `DELETE FROM sqlc_test`

type Querier struct {
	conn *sqlcompat.Connection
}

func New(conn *sqlcompat.Connection) *Querier {
	return &Querier{conn: conn}
}

func (this *Querier) InsertOne(ctx context.Context, name string, description *string) error {
	var value interface{}
	if description != nil {
		value = *description
	}

	_, err := this.conn.Execute(ctx, this.conn.Text(insertOne), map[string]interface{}{"p1": name, "p2": value})
	return err
}

// SelectOne returns nil when no row matches.
func (this *Querier) SelectOne(ctx context.Context, name string) (*SqlcTest, error) {
	result, err := this.conn.Execute(ctx, this.conn.Text(selectOne), map[string]interface{}{"p1": name})
	if err != nil {
		return nil, err
	}

	row, found := result.First()
	if !found {
		return nil, nil
	}

	record, err := decodeSqlcTest(row)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (this *Querier) SelectMany(ctx context.Context) iter.Seq2[SqlcTest, error] {
	return func(yield func(SqlcTest, error) bool) {
		stream, err := this.conn.Stream(ctx, this.conn.Text(selectMany), nil)
		if err != nil {
			yield(SqlcTest{}, err)
			return
		}

		for row, err := range stream.Rows(ctx) {
			if err != nil {
				yield(SqlcTest{}, err)
				return
			}

			record, err := decodeSqlcTest(row)
			if err != nil {
				yield(SqlcTest{}, err)
				return
			}

			if !yield(record, nil) {
				return
			}
		}
	}
}

func (this *Querier) DeleteAll(ctx context.Context) error {
	_, err := this.conn.Execute(ctx, this.conn.Text(deleteAll), nil)
	return err
}
