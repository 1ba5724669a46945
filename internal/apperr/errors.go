package apperr

import "errors"

// ErrInvalid is returned when the input fails validation before dispatch.
var ErrInvalid = errors.New("invalid input")

// ErrAddressNotFound indicates that the order references an address absent
// from the customer's address book.
var ErrAddressNotFound = errors.New("address not found")

// ErrNoRiders indicates that no delivery partner services the order's city.
var ErrNoRiders = errors.New("no riders in city")

// ErrNotFound indicates that the requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrPersistence indicates that the atomic assignment commit failed. The
// assignment may be retried with fresh candidate data.
var ErrPersistence = errors.New("assignment not persisted")

// Retryable reports whether the dispatch failure is worth retrying.
func Retryable(err error) bool {
	return errors.Is(err, ErrPersistence)
}
