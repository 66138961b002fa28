package sqlcompat

import (
	"fmt"
	"sort"
	"strconv"
)

// OrderParameters projects the named arguments (p1, p2, ...) into a positional sequence
// ordered by ascending placeholder number. The map is not cross-checked against any
// query text and is never modified.
func OrderParameters(params map[string]interface{}) ([]interface{}, error) {
	if len(params) == 0 {
		return nil, nil
	}

	positions := make([]parameter, 0, len(params))
	seen := make(map[uint64]string, len(params))
	for name, value := range params {
		position, err := parsePosition(name)
		if err != nil {
			return nil, err
		}

		if previous, found := seen[position]; found {
			return nil, fmt.Errorf("%w: %q and %q", ErrDuplicateParameter, previous, name)
		}

		seen[position] = name
		positions = append(positions, parameter{position: position, value: value})
	}

	sort.Slice(positions, func(i, j int) bool { return positions[i].position < positions[j].position })

	ordered := make([]interface{}, len(positions))
	for i, item := range positions {
		ordered[i] = item.value
	}

	return ordered, nil
}

type parameter struct {
	position uint64
	value    interface{}
}

func parsePosition(name string) (uint64, error) {
	if len(name) < 2 || name[0] != parameterPrefix {
		return 0, fmt.Errorf("%w: %q", ErrMalformedParameter, name)
	}

	digits := name[1:]
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, fmt.Errorf("%w: %q", ErrMalformedParameter, name)
		}
	}

	position, err := strconv.ParseUint(digits, 10, 64)
	if err != nil || position == 0 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedParameter, name)
	}

	return position, nil
}

const parameterPrefix = 'p'
