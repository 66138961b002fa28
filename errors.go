package sqlcompat

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedParameter = errors.New("the parameter name must be the letter 'p' followed by a positive number")
	ErrDuplicateParameter = errors.New("more than one parameter name refers to the same placeholder position")
)

// CleanupError is returned when resolving a transaction fails after another failure
// already occurred. Both failures remain reachable through errors.Is and errors.As.
type CleanupError struct {
	Cause   error
	Cleanup error
}

func (this *CleanupError) Error() string {
	return fmt.Sprintf("%s (transaction cleanup also failed: %s)", this.Cause, this.Cleanup)
}
func (this *CleanupError) Unwrap() []error {
	return []error{this.Cause, this.Cleanup}
}

func chain(cause, cleanup error) error {
	if cleanup == nil {
		return cause
	}

	return &CleanupError{Cause: cause, Cleanup: cleanup}
}
