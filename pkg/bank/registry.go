package bank

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/shunichi-ikebuchi/banking-cli/pkg/store"
)

// MortgageRequirement is the total balance a customer needs across
// their accounts to qualify for a mortgage.
var MortgageRequirement = decimal.NewFromInt(10000)

// Registry owns the collection of accounts for one session. It assigns
// sequential ids starting at 1, enforces globally unique owner names,
// and routes every mutation through the injected store so that
// in-memory state never runs ahead of what has been persisted.
//
// The registry is not safe for concurrent use; the interaction model
// is one synchronous operation at a time.
type Registry struct {
	store    store.Store
	accounts map[int64]*Account
	order    []int64
	names    map[string]struct{}
	nextID   int64
}

// NewRegistry builds an empty registry backed by the given store.
func NewRegistry(st store.Store) *Registry {
	return &Registry{
		store:    st,
		accounts: make(map[int64]*Account),
		names:    make(map[string]struct{}),
		nextID:   1,
	}
}

// Load populates the registry from the store. A missing backing file
// is recoverable: the registry stays empty and the session proceeds.
// Malformed data aborts the load so that a later Save cannot silently
// drop accounts. Loaded accounts start with empty entry histories.
func (r *Registry) Load(ctx context.Context) error {
	records, err := r.store.Load(ctx)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Warn("no existing account data, starting empty", "error", err)
			return nil
		}
		return &RetrievalError{Err: err}
	}

	for _, rec := range records {
		acct := newAccount(rec.ID, rec.Name, rec.Balance)
		r.accounts[rec.ID] = acct
		r.order = append(r.order, rec.ID)
		r.names[rec.Name] = struct{}{}
		if rec.ID >= r.nextID {
			r.nextID = rec.ID + 1
		}
	}

	slog.Debug("accounts loaded", "count", len(records))
	return nil
}

// Save writes the full account snapshot through the store.
func (r *Registry) Save(ctx context.Context) error {
	records := make([]store.AccountRecord, 0, len(r.order))
	for _, id := range r.order {
		acct := r.accounts[id]
		records = append(records, store.AccountRecord{
			ID:      acct.id,
			Name:    acct.name,
			Balance: acct.balance,
		})
	}

	if err := r.store.Save(ctx, records); err != nil {
		return &RetrievalError{Err: err}
	}
	slog.Debug("accounts saved", "count", len(records))
	return nil
}

// CreateAccount opens a new account under the given owner name. The
// name must be non-blank and not already in use. The next sequential
// id is consumed only after the store has accepted the account, so ids
// stay gap-free.
func (r *Registry) CreateAccount(ctx context.Context, name string, initial decimal.Decimal) (*Account, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidName
	}
	if _, taken := r.names[name]; taken {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	if initial.IsNegative() {
		return nil, fmt.Errorf("%w (got %q)", ErrInvalidAmount, initial.String())
	}

	id := r.nextID
	rec := store.AccountRecord{ID: id, Name: name, Balance: initial}
	if err := r.store.CreateAccount(ctx, rec); err != nil {
		return nil, &RetrievalError{Err: err}
	}

	acct := newAccount(id, name, initial)
	r.accounts[id] = acct
	r.order = append(r.order, id)
	r.names[name] = struct{}{}
	r.nextID++

	slog.Info("account created", "id", id, "name", name)
	return acct, nil
}

// Account returns the account with the given id or ErrAccountNotFound.
func (r *Registry) Account(id int64) (*Account, error) {
	acct, ok := r.accounts[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrAccountNotFound, id)
	}
	return acct, nil
}

// Accounts returns every account in creation order.
func (r *Registry) Accounts() []*Account {
	out := make([]*Account, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.accounts[id])
	}
	return out
}

// Deposit credits an account. The entry is validated first, then
// persisted, and applied to the in-memory account only after the store
// has committed, so a failed persist never leaves the balance ahead of
// the durable state. Returns the new balance.
func (r *Registry) Deposit(ctx context.Context, id int64, amount string) (decimal.Decimal, error) {
	acct, err := r.Account(id)
	if err != nil {
		return decimal.Zero, err
	}
	entry, err := NewEntry(EntryDeposit, amount)
	if err != nil {
		return decimal.Zero, err
	}
	return r.commit(ctx, acct, entry)
}

// Withdraw debits an account, following the same persist-then-apply
// discipline as Deposit. Returns the new balance.
func (r *Registry) Withdraw(ctx context.Context, id int64, amount string) (decimal.Decimal, error) {
	acct, err := r.Account(id)
	if err != nil {
		return decimal.Zero, err
	}
	entry, err := NewEntry(EntryWithdrawal, amount)
	if err != nil {
		return decimal.Zero, err
	}
	if entry.Amount.GreaterThan(acct.balance) {
		return decimal.Zero, fmt.Errorf("%w: balance is %s", ErrInsufficientFunds, acct.balance.String())
	}
	return r.commit(ctx, acct, entry)
}

func (r *Registry) commit(ctx context.Context, acct *Account, entry Entry) (decimal.Decimal, error) {
	newBalance := acct.balance.Add(entry.Signed())
	rec := store.EntryRecord{
		Kind:   string(entry.Kind),
		Amount: entry.Amount,
		Date:   entry.Date,
	}
	if err := r.store.AppendEntry(ctx, acct.id, rec, newBalance); err != nil {
		return decimal.Zero, &RetrievalError{Err: err}
	}

	acct.apply(entry)
	slog.Debug("entry recorded",
		"account_id", acct.id,
		"kind", entry.Kind,
		"amount", entry.Amount.String(),
		"balance", acct.balance.String(),
	)
	return acct.balance, nil
}

// TotalBalanceForName sums the balances of every account whose owner
// name matches exactly. No matches is not an error; the total is zero.
func (r *Registry) TotalBalanceForName(name string) decimal.Decimal {
	total := decimal.Zero
	for _, id := range r.order {
		if acct := r.accounts[id]; acct.name == name {
			total = total.Add(acct.balance)
		}
	}
	return total
}

// ApplyForMortgage checks the owner's total balance against
// MortgageRequirement and returns the qualification message. It is a
// pure query; no state changes.
func (r *Registry) ApplyForMortgage(name string) string {
	total := r.TotalBalanceForName(name)
	if total.GreaterThanOrEqual(MortgageRequirement) {
		return fmt.Sprintf("%s qualifies for a mortgage.", name)
	}
	return fmt.Sprintf("Hello %s, you would need a balance of %s to qualify.", name, MortgageRequirement.String())
}
