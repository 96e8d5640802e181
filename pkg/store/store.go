// Package store defines the persistence contract for the account
// registry and its two implementations: a flat CSV file and a
// relational database. Both move data through the same record types;
// the registry never sees backend-specific details.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Persistence errors. Implementations wrap these with detail so that
// callers can branch with errors.Is. A load that failed because the
// backing file does not exist additionally matches fs.ErrNotExist,
// which callers treat as recoverable (start with an empty registry).
var (
	ErrLoad      = errors.New("failed to load account data")
	ErrSave      = errors.New("failed to save account data")
	ErrBadFormat = errors.New("invalid account data format")
)

// AccountRecord is the persisted shape of one account. Transaction
// history is intentionally absent: it is not part of the load/save
// round-trip.
type AccountRecord struct {
	ID      int64
	Name    string
	Balance decimal.Decimal
}

// EntryRecord is the persisted shape of one ledger entry, used by
// backends that keep a durable transaction log.
type EntryRecord struct {
	Kind   string
	Amount decimal.Decimal
	Date   time.Time
}

// Store is the persistence adapter contract. Variant-specific
// guarantees:
//
//   - The CSV backend persists only on Save; CreateAccount and
//     AppendEntry are no-ops and durability is deferred to the
//     end-of-session snapshot.
//   - The SQL backend is durable per operation: CreateAccount inserts
//     immediately, and AppendEntry commits the balance update and the
//     transaction row as a single unit of work or not at all.
type Store interface {
	// Load reads every persisted account. Entry history is never
	// reloaded; each account starts its session with an empty ledger.
	Load(ctx context.Context) ([]AccountRecord, error)

	// Save writes the full account set, replacing whatever was
	// persisted before. The replacement is atomic from the caller's
	// perspective.
	Save(ctx context.Context, accounts []AccountRecord) error

	// CreateAccount persists a newly opened account.
	CreateAccount(ctx context.Context, account AccountRecord) error

	// AppendEntry persists one deposit or withdrawal together with the
	// resulting balance.
	AppendEntry(ctx context.Context, accountID int64, entry EntryRecord, newBalance decimal.Decimal) error

	// Close releases any resources held by the backend.
	Close() error
}
