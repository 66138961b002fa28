// Package metrics reports connection and stream activity through VictoriaMetrics.
package metrics

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/VictoriaMetrics/metrics"
)

// Monitor satisfies sqlcompat.Monitor. All series are created up front.
type Monitor struct {
	set *metrics.Set

	queries       *metrics.Counter
	queryErrors   *metrics.Counter
	queryDuration *metrics.Histogram

	streamsOpened *metrics.Counter
	streamErrors  *metrics.Counter
	rowsStreamed  *metrics.Counter

	commits        *metrics.Counter
	commitErrors   *metrics.Counter
	rollbacks      *metrics.Counter
	rollbackErrors *metrics.Counter
}

func New(options ...option) *Monitor {
	var config configuration
	Options.apply(options...)(&config)

	this := &Monitor{set: config.Set}
	this.register(config.Prefix)
	return this
}

func (this *Monitor) register(prefix string) {
	name := func(suffix string) string { return fmt.Sprintf("%s_%s", prefix, suffix) }

	this.queries = this.set.NewCounter(name("queries_total"))
	this.queryErrors = this.set.NewCounter(name("query_errors_total"))
	this.queryDuration = this.set.NewHistogram(name("query_duration_seconds"))

	this.streamsOpened = this.set.NewCounter(name("streams_opened_total"))
	this.streamErrors = this.set.NewCounter(name("stream_open_errors_total"))
	this.rowsStreamed = this.set.NewCounter(name("rows_streamed_total"))

	this.commits = this.set.NewCounter(name("transactions_committed_total"))
	this.commitErrors = this.set.NewCounter(name("commit_errors_total"))
	this.rollbacks = this.set.NewCounter(name("transactions_rolled_back_total"))
	this.rollbackErrors = this.set.NewCounter(name("rollback_errors_total"))
}

func (this *Monitor) QueryExecuted(duration time.Duration, err error) {
	this.queries.Inc()
	this.queryDuration.Update(duration.Seconds())
	if err != nil {
		this.queryErrors.Inc()
	}
}
func (this *Monitor) StreamOpened(err error) {
	if err != nil {
		this.streamErrors.Inc()
	} else {
		this.streamsOpened.Inc()
	}
}
func (this *Monitor) RowStreamed() { this.rowsStreamed.Inc() }
func (this *Monitor) TransactionCommitted(err error) {
	if err != nil {
		this.commitErrors.Inc()
	} else {
		this.commits.Inc()
	}
}
func (this *Monitor) TransactionRolledBack(err error) {
	this.rollbacks.Inc()
	if err != nil {
		this.rollbackErrors.Inc()
	}
}

func (this *Monitor) Set() *metrics.Set { return this.set }

func (this *Monitor) WritePrometheus(writer io.Writer) { this.set.WritePrometheus(writer) }

// ServeHTTP exposes the series in Prometheus text format.
func (this *Monitor) ServeHTTP(response http.ResponseWriter, _ *http.Request) {
	this.set.WritePrometheus(response)
}
