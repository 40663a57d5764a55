package bedstatus

import (
	"errors"
	"fmt"

	"github.com/geims/bedboard/internal/domain/ward"
)

var (
	// ErrConfiguration marks a startup failure (store credentials, catalog
	// file). It is fatal: nothing is served.
	ErrConfiguration = errors.New("configuration error")

	// ErrInvalidStatus marks a write whose status is outside the closed set.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrInvalidBed marks a write with an empty bed id.
	ErrInvalidBed = errors.New("invalid bed id")

	// ErrStoreUnavailable marks a read or write the store could not complete.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrUnauthorized marks a write attempted without admin authorization.
	ErrUnauthorized = errors.New("unauthorized write")

	// ErrBedNotFound is returned by single-bed lookups for ids that are
	// neither in the catalog nor in the store.
	ErrBedNotFound = errors.New("bed not found")
)

// WriteError reports a rejected or failed update. errors.Is matches both the
// kind and the underlying cause.
type WriteError struct {
	BedID ward.BedID
	Kind  error
	Err   error
}

func (e *WriteError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("update bed %q: %v: %v", e.BedID, e.Kind, e.Err)
	}
	return fmt.Sprintf("update bed %q: %v", e.BedID, e.Kind)
}

func (e *WriteError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// ConfigError wraps a startup failure so callers can match ErrConfiguration.
func ConfigError(format string, args ...any) error {
	return fmt.Errorf("%w: %w", ErrConfiguration, fmt.Errorf(format, args...))
}
