package sqlcompat

import (
	"context"

	"github.com/smartystreets/clock"
)

// Connection is handed to generated query code in place of the connection type it was
// generated against. Statements it receives are expected to have been rewritten already
// (see Text). A Connection wraps a single driver connection and must be used by one
// caller at a time; while a Stream is active no other statement may be issued on it.
type Connection struct {
	driver  Driver
	queries *QueryCache
	monitor Monitor
	logger  Logger
	clock   *clock.Clock
}

func NewConnection(driver Driver, options ...option) *Connection {
	var config configuration
	Options.apply(options...)(&config)

	return &Connection{
		driver:  driver,
		queries: config.Queries,
		monitor: config.Monitor,
		logger:  config.Logger,
		clock:   config.Clock,
	}
}

// Text rewrites the query through the cache owned by this connection.
func (this *Connection) Text(query string) string {
	return this.queries.Text(query)
}

// Execute runs the statement in a single round trip and returns the complete row set.
func (this *Connection) Execute(ctx context.Context, statement string, params map[string]interface{}) (*Result, error) {
	args, err := OrderParameters(params)
	if err != nil {
		return nil, err
	}

	started := this.clock.UTCNow()
	rows, err := this.driver.Fetch(ctx, statement, args...)
	this.monitor.QueryExecuted(this.clock.TimeSince(started), err)
	if err != nil {
		return nil, err
	}

	return NewResult(rows), nil
}

// Stream begins a transaction and opens a cursor for the statement within it. The
// transaction stays open until the returned Stream is drained, fails or is closed.
func (this *Connection) Stream(ctx context.Context, statement string, params map[string]interface{}) (*Stream, error) {
	args, err := OrderParameters(params)
	if err != nil {
		return nil, err
	}

	return openStream(ctx, this.driver, statement, args, this.monitor, this.logger)
}
