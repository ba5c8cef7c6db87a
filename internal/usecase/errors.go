package usecase

import (
	"fmt"

	crerr "github.com/cockroachdb/errors"
)

var (
	ErrInvalidInput          = crerr.New("invalid input")
	ErrNotFound              = crerr.New("resource not found")
	ErrDependencyUnavailable = crerr.New("dependency unavailable")
	ErrInsufficientCoverage  = crerr.New("insufficient coverage")
)

// InsufficientCoverageError reports how many live records resolved when the
// fetcher gave up. The partial map is never returned alongside it.
type InsufficientCoverageError struct {
	Resolved  int
	Threshold int
}

func (e *InsufficientCoverageError) Error() string {
	return fmt.Sprintf("insufficient coverage: resolved %d teams, need more than %d", e.Resolved, e.Threshold)
}

func (e *InsufficientCoverageError) Is(target error) bool {
	return target == ErrInsufficientCoverage
}
