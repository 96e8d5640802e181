package bank

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind identifies the direction of a ledger entry.
type EntryKind string

const (
	EntryDeposit    EntryKind = "deposit"
	EntryWithdrawal EntryKind = "withdrawal"
)

// Entry is one recorded deposit or withdrawal. Entries are immutable
// once created; the amount is always strictly positive regardless of
// kind.
type Entry struct {
	Kind   EntryKind
	Amount decimal.Decimal
	Date   time.Time
}

// NewEntry parses a raw amount string and builds an entry stamped with
// the current time. Non-numeric, zero, and negative amounts are
// rejected with ErrInvalidAmount. There is no upper bound.
func NewEntry(kind EntryKind, amount string) (Entry, error) {
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return Entry{}, fmt.Errorf("%w (got %q)", ErrInvalidAmount, amount)
	}
	if !value.IsPositive() {
		return Entry{}, fmt.Errorf("%w (got %q)", ErrInvalidAmount, amount)
	}

	return Entry{
		Kind:   kind,
		Amount: value,
		Date:   time.Now(),
	}, nil
}

// Signed returns the amount with the sign implied by the entry kind:
// positive for deposits, negative for withdrawals.
func (e Entry) Signed() decimal.Decimal {
	if e.Kind == EntryWithdrawal {
		return e.Amount.Neg()
	}
	return e.Amount
}
