package bank

import "errors"

// Domain errors surfaced to the CLI shell. The messages are shown to
// the user verbatim, so they are phrased for display rather than for
// logs.
var (
	// ErrInvalidAmount is returned when a deposit or withdrawal amount
	// does not parse as a strictly positive number.
	ErrInvalidAmount = errors.New("invalid amount: please enter a positive number")

	// ErrInsufficientFunds is returned when a withdrawal exceeds the
	// current balance.
	ErrInsufficientFunds = errors.New("insufficient funds for this transaction")

	// ErrDuplicateName is returned when an account name is already in
	// use. Account names are unique across the whole registry.
	ErrDuplicateName = errors.New("this name is already taken, please choose a different name")

	// ErrInvalidName is returned when an account name is blank.
	ErrInvalidName = errors.New("account name must not be empty")

	// ErrAccountNotFound is returned when no account matches the given
	// id or owner name.
	ErrAccountNotFound = errors.New("account not found, please check and try again")
)

// RetrievalError wraps a persistence failure so that callers see a
// domain-level error instead of a raw driver or I/O error. The cause
// stays reachable through errors.Is / errors.As.
type RetrievalError struct {
	Err error
}

func (e *RetrievalError) Error() string {
	return "failed to access account data: " + e.Err.Error()
}

func (e *RetrievalError) Unwrap() error {
	return e.Err
}
