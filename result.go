package sqlcompat

// Result holds the complete, finite row set of a single-shot query.
type Result struct {
	rows []Row
}

func NewResult(rows []Row) *Result {
	return &Result{rows: rows}
}

// First returns the first row; false means the result set was empty.
func (this *Result) First() (Row, bool) {
	if len(this.rows) == 0 {
		return nil, false
	}

	return this.rows[0], true
}

// All returns every row in query order. Each call returns a fresh slice so callers
// cannot disturb the underlying set.
func (this *Result) All() []Row {
	return append(make([]Row, 0, len(this.rows)), this.rows...)
}

func (this *Result) Len() int { return len(this.rows) }
