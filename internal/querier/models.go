package querier

import (
	"fmt"

	"github.com/smartystreets/sqlcompat"
)

type SqlcTest struct {
	ID          int64
	Name        string
	Description *string
}

func decodeSqlcTest(row sqlcompat.Row) (record SqlcTest, err error) {
	if record.ID, err = int64Column(row, "id"); err != nil {
		return record, err
	}
	if record.Name, err = stringColumn(row, "name"); err != nil {
		return record, err
	}
	if value, found := row.Value("description"); found && value != nil {
		description, err := stringColumn(row, "description")
		if err != nil {
			return record, err
		}
		record.Description = &description
	}
	return record, nil
}

func int64Column(row sqlcompat.Row, column string) (int64, error) {
	value, _ := row.Value(column)
	switch typed := value.(type) {
	case int64:
		return typed, nil
	case int32:
		return int64(typed), nil
	case int:
		return int64(typed), nil
	default:
		return 0, fmt.Errorf("%w: column %q holds %T", ErrUnexpectedType, column, value)
	}
}
func stringColumn(row sqlcompat.Row, column string) (string, error) {
	value, _ := row.Value(column)
	switch typed := value.(type) {
	case string:
		return typed, nil
	case []byte:
		return string(typed), nil
	default:
		return "", fmt.Errorf("%w: column %q holds %T", ErrUnexpectedType, column, value)
	}
}
