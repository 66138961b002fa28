package adapter

import "database/sql"

type configuration struct {
	TxOptions sql.TxOptions
}

var Options singleton

type singleton struct{}
type option func(*configuration)

// IsolationLevel applies to the implicit transaction opened for each stream.
func (singleton) IsolationLevel(value sql.IsolationLevel) option {
	return func(this *configuration) { this.TxOptions.Isolation = value }
}
func (singleton) ReadOnly(value bool) option {
	return func(this *configuration) { this.TxOptions.ReadOnly = value }
}

func (singleton) apply(options ...option) option {
	return func(this *configuration) {
		for _, option := range Options.defaults(options...) {
			option(this)
		}
	}
}
func (singleton) defaults(options ...option) []option {
	const defaultIsolationLevel = sql.LevelDefault
	const defaultReadOnly = false

	return append([]option{
		Options.IsolationLevel(defaultIsolationLevel),
		Options.ReadOnly(defaultReadOnly),
	}, options...)
}
