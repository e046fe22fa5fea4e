package recordstore

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors returned by Store implementations. Callers match them
// with errors.Is; the wrapped message carries the backend detail.
var (
	// ErrUnavailable means the backing could not be reached or written.
	ErrUnavailable = errors.New("record store unavailable")

	// ErrSerialization means a value could not be encoded into a payload.
	ErrSerialization = errors.New("record serialization failed")

	// ErrDeserialization means a stored payload could not be decoded.
	ErrDeserialization = errors.New("record deserialization failed")

	// ErrNotFound means no record exists under the requested id.
	ErrNotFound = errors.New("record not found")

	// ErrTimeout means the operation exceeded its context deadline.
	ErrTimeout = errors.New("record store timeout")
)

// classify maps a backend error onto the store error taxonomy. Deadline
// expiry becomes ErrTimeout, everything else ErrUnavailable.
func classify(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s: %v", ErrTimeout, op, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrUnavailable, op, err)
}
