package sqlcompat

// NewRecord builds a Row from parallel column and value slices as produced by a driver.
// When a column name repeats, Value resolves to its first occurrence.
func NewRecord(columns []string, values []interface{}) Row {
	index := make(map[string]int, len(columns))
	for i := len(columns) - 1; i >= 0; i-- {
		index[columns[i]] = i
	}

	return record{columns: columns, values: values, index: index}
}

type record struct {
	columns []string
	values  []interface{}
	index   map[string]int
}

func (this record) Columns() []string     { return this.columns }
func (this record) Values() []interface{} { return this.values }
func (this record) Value(column string) (interface{}, bool) {
	if i, found := this.index[column]; found && i < len(this.values) {
		return this.values[i], true
	}

	return nil, false
}
