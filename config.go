package sqlcompat

import (
	"time"

	"github.com/smartystreets/clock"
	"github.com/smartystreets/logging"
)

type configuration struct {
	Queries *QueryCache
	Monitor Monitor
	Logger  Logger
	Clock   *clock.Clock
}

var Options singleton

type singleton struct{}
type option func(*configuration)

// Queries replaces the process-wide rewrite cache with one owned by the caller.
func (singleton) Queries(value *QueryCache) option {
	return func(this *configuration) { this.Queries = value }
}
func (singleton) Monitor(value Monitor) option {
	return func(this *configuration) { this.Monitor = value }
}
func (singleton) Logger(value Logger) option {
	return func(this *configuration) { this.Logger = value }
}
func (singleton) Clock(value *clock.Clock) option {
	return func(this *configuration) { this.Clock = value }
}

func (singleton) apply(options ...option) option {
	return func(this *configuration) {
		for _, option := range Options.defaults(options...) {
			option(this)
		}

		if this.Queries == nil {
			this.Queries = Queries
		}

		if this.Monitor == nil {
			this.Monitor = nop{}
		}

		if this.Logger == nil {
			this.Logger = nop{}
		}
	}
}
func (singleton) defaults(options ...option) []option {
	var defaultLogger *logging.Logger // nil forwards to the standard log package
	var defaultClock *clock.Clock     // nil reads the system clock

	return append([]option{
		Options.Queries(Queries),
		Options.Monitor(nop{}),
		Options.Logger(defaultLogger),
		Options.Clock(defaultClock),
	}, options...)
}

type nop struct{}

func (nop) Printf(_ string, _ ...interface{}) {}

func (nop) QueryExecuted(_ time.Duration, _ error) {}
func (nop) StreamOpened(_ error)                   {}
func (nop) RowStreamed()                           {}
func (nop) TransactionCommitted(_ error)           {}
func (nop) TransactionRolledBack(_ error)          {}
