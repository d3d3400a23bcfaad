package services

import (
	"errors"
	"fmt"

	"github.com/orenolabs/academy-board/repository"
)

// Error taxonomy. Controllers map these to HTTP statuses; everything else is a
// store failure surfaced as a generic 5xx.
var (
	// ErrValidation marks input rejected before any store or storage call.
	ErrValidation = errors.New("validation failed")
	// ErrForbidden marks an authorization denial. No mutation happens on denial.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound marks a missing target post, comment, or profile.
	ErrNotFound = errors.New("not found")
)

func validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func forbiddenf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrForbidden, fmt.Sprintf(format, args...))
}

// mapStoreErr translates repository sentinels into the service taxonomy,
// wrapping anything else with context.
func mapStoreErr(op string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
