package metrics

import "github.com/VictoriaMetrics/metrics"

type configuration struct {
	Prefix string
	Set    *metrics.Set
}

var Options singleton

type singleton struct{}
type option func(*configuration)

func (singleton) Prefix(value string) option {
	return func(this *configuration) { this.Prefix = value }
}

// Set registers the series with a caller-managed set instead of a new, globally
// registered one.
func (singleton) Set(value *metrics.Set) option {
	return func(this *configuration) { this.Set = value }
}

func (singleton) apply(options ...option) option {
	return func(this *configuration) {
		for _, option := range Options.defaults(options...) {
			option(this)
		}

		if this.Set == nil {
			this.Set = metrics.NewSet()
			metrics.RegisterSet(this.Set)
		}
	}
}
func (singleton) defaults(options ...option) []option {
	return append([]option{
		Options.Prefix("sqlcompat"),
	}, options...)
}
