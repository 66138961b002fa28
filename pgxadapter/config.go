package pgxadapter

import (
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type configuration struct {
	TxOptions  pgx.TxOptions
	Prefetch   int
	CursorName func() string
}

var Options singleton

type singleton struct{}
type option func(*configuration)

// IsolationLevel applies to the implicit transaction opened for each stream.
func (singleton) IsolationLevel(value pgx.TxIsoLevel) option {
	return func(this *configuration) { this.TxOptions.IsoLevel = value }
}
func (singleton) ReadOnly(value bool) option {
	return func(this *configuration) {
		if value {
			this.TxOptions.AccessMode = pgx.ReadOnly
		} else {
			this.TxOptions.AccessMode = pgx.ReadWrite
		}
	}
}

// Prefetch is the number of rows requested from the server-side cursor per round trip.
func (singleton) Prefetch(value int) option {
	return func(this *configuration) { this.Prefetch = value }
}
func (singleton) CursorName(value func() string) option {
	return func(this *configuration) { this.CursorName = value }
}

func (singleton) apply(options ...option) option {
	return func(this *configuration) {
		for _, option := range Options.defaults(options...) {
			option(this)
		}

		if this.Prefetch <= 0 {
			this.Prefetch = defaultPrefetch
		}

		if this.CursorName == nil {
			this.CursorName = newCursorName
		}
	}
}
func (singleton) defaults(options ...option) []option {
	return append([]option{
		Options.Prefetch(defaultPrefetch),
		Options.CursorName(newCursorName),
	}, options...)
}

const defaultPrefetch = 50

func newCursorName() string {
	return "sqlcompat_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}
