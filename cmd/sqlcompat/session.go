package main

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/smartystreets/sqlcompat"
	"github.com/smartystreets/sqlcompat/adapter"
	"github.com/smartystreets/sqlcompat/internal/config"
	"github.com/smartystreets/sqlcompat/pgxadapter"
)

var ErrMissingDatabaseURL = errors.New("no database URL configured (set --database-url, SQLCOMPAT_DATABASE_URL or DATABASE_URL)")

type session struct {
	connection *sqlcompat.Connection
	close      func() error
}

func openSession(ctx context.Context, settings config.Config, logger sqlcompat.Logger, monitor sqlcompat.Monitor) (*session, error) {
	if settings.DatabaseURL == "" {
		return nil, ErrMissingDatabaseURL
	}

	driver, closer, err := openDriver(ctx, settings)
	if err != nil {
		return nil, err
	}

	connection := sqlcompat.NewConnection(driver,
		sqlcompat.Options.Logger(logger),
		sqlcompat.Options.Monitor(monitor),
	)
	return &session{connection: connection, close: closer}, nil
}

func openDriver(ctx context.Context, settings config.Config) (sqlcompat.Driver, func() error, error) {
	if settings.Driver == config.DriverPgx {
		conn, err := pgx.Connect(ctx, settings.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}

		driver := pgxadapter.New(conn, pgxadapter.Options.Prefetch(settings.Prefetch))
		return driver, func() error { return conn.Close(context.Background()) }, nil
	}

	db, err := sql.Open(settings.Driver, settings.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	db.SetMaxOpenConns(1) // one session, one server connection

	driver := adapter.New(adapter.WrapDB(db))
	return driver, driver.Close, nil
}

func (this *session) Close() { _ = this.close() }
