package sqlcompat

import (
	"context"
	"io"
	"iter"
	"sync"
)

type StreamState int

const (
	Idle StreamState = iota
	Active
	Committed
	RolledBack
)

func (this StreamState) String() string {
	switch this {
	case Idle:
		return "idle"
	case Active:
		return "active"
	case Committed:
		return "committed"
	case RolledBack:
		return "rolled-back"
	default:
		return "unknown"
	}
}

// Stream is a lazy, single-pass sequence of rows read through a cursor that lives inside
// an implicit transaction. The transaction is committed when the rows run out and rolled
// back on any failure, when the stream is closed, or when the context it was opened with
// ends first. It is resolved exactly once.
type Stream struct {
	monitor Monitor
	logger  Logger

	mutex  sync.Mutex
	state  StreamState
	tx     Transaction
	cursor Cursor
	stop   func() bool
}

func openStream(ctx context.Context, driver Driver, statement string, args []interface{}, monitor Monitor, logger Logger) (*Stream, error) {
	this := &Stream{monitor: monitor, logger: logger}

	tx, err := driver.Begin(ctx)
	if err != nil {
		this.logger.Printf("[WARN] Unable to begin streaming transaction [%s].", err)
		this.monitor.StreamOpened(err)
		return nil, err
	}

	cursor, err := tx.Cursor(ctx, statement, args...)
	if err != nil {
		this.logger.Printf("[WARN] Unable to open cursor, rolling back transaction [%s].", err)
		this.monitor.StreamOpened(err)
		this.tx = tx
		return nil, chain(err, this.rollback(ctx))
	}

	this.monitor.StreamOpened(nil)

	this.mutex.Lock()
	this.tx, this.cursor, this.state = tx, cursor, Active
	this.stop = context.AfterFunc(ctx, func() { _ = this.Close() })
	this.mutex.Unlock()
	return this, nil
}

func (this *Stream) State() StreamState {
	this.mutex.Lock()
	defer this.mutex.Unlock()
	return this.state
}

// Next returns the next row. When the rows are exhausted the transaction is committed and
// io.EOF is returned; any other failure rolls the transaction back and is returned as-is.
// Once the stream has ended, Next returns io.EOF without touching the driver.
func (this *Stream) Next(ctx context.Context) (Row, error) {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	if this.state != Active {
		return nil, io.EOF
	}

	row, err := this.cursor.Next(ctx)
	if err == nil {
		this.monitor.RowStreamed()
		return row, nil
	}

	if err == io.EOF {
		return nil, this.exhausted(ctx)
	}

	this.closeCursor()
	return nil, this.fail(ctx, err)
}

// Rows adapts the stream to a range-over-func loop. Leaving the loop early (break, return
// or panic) rolls the transaction back before control returns to the caller.
func (this *Stream) Rows(ctx context.Context) iter.Seq2[Row, error] {
	return func(yield func(Row, error) bool) {
		defer func() { _ = this.Close() }()

		for {
			row, err := this.Next(ctx)
			if err == io.EOF {
				return
			} else if err != nil {
				yield(nil, err)
				return
			} else if !yield(row, nil) {
				return
			}
		}
	}
}

// Close abandons an active stream by rolling back its transaction. It does nothing once
// the stream has ended.
func (this *Stream) Close() error {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	if this.state != Active {
		return nil
	}

	this.closeCursor()
	return this.rollback(context.Background())
}

func (this *Stream) exhausted(ctx context.Context) error {
	if err := this.cursor.Close(); err != nil {
		return this.fail(ctx, err)
	}

	this.release()
	err := this.tx.Commit(context.WithoutCancel(ctx))
	this.monitor.TransactionCommitted(err)
	if err != nil {
		this.logger.Printf("[WARN] Unable to commit streaming transaction [%s].", err)
		this.state = RolledBack
		return err
	}

	this.state = Committed
	return io.EOF
}
func (this *Stream) fail(ctx context.Context, cause error) error {
	this.logger.Printf("[WARN] Streaming failed, rolling back transaction [%s].", cause)
	return chain(cause, this.rollback(ctx))
}
// release detaches the stream from the context it was opened with.
func (this *Stream) release() {
	if this.stop != nil {
		this.stop()
	}
}
func (this *Stream) closeCursor() {
	if err := this.cursor.Close(); err != nil {
		this.logger.Printf("[WARN] Unable to close cursor [%s].", err)
	}
}
func (this *Stream) rollback(ctx context.Context) error {
	this.release()
	err := this.tx.Rollback(context.WithoutCancel(ctx))
	this.state = RolledBack
	this.monitor.TransactionRolledBack(err)
	if err != nil {
		this.logger.Printf("[WARN] Unable to roll back streaming transaction [%s].", err)
	}

	return err
}
