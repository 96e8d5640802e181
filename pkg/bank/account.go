// Package bank implements the in-memory ledger: accounts, their
// entries, and the registry that owns them. Persistence is delegated
// to a store injected into the registry.
package bank

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Account owns a balance and the ordered ledger entries that produced
// it. The balance always equals the starting balance plus the signed
// sum of the entries and never goes negative. Accounts are created by
// the registry and mutated only through deposits and withdrawals.
type Account struct {
	id      int64
	name    string
	balance decimal.Decimal
	entries []Entry
}

func newAccount(id int64, name string, balance decimal.Decimal) *Account {
	return &Account{id: id, name: name, balance: balance}
}

// ID returns the registry-assigned account identifier.
func (a *Account) ID() int64 { return a.id }

// Name returns the owner name the account was opened under.
func (a *Account) Name() string { return a.name }

// Balance returns the current balance.
func (a *Account) Balance() decimal.Decimal { return a.balance }

// Entries returns the ledger entries in insertion order. The returned
// slice is a copy and can be re-read freely.
func (a *Account) Entries() []Entry {
	out := make([]Entry, len(a.entries))
	copy(out, a.entries)
	return out
}

// Deposit parses the raw amount, credits the account, and records a
// deposit entry. On any validation error the account is left
// untouched.
func (a *Account) Deposit(amount string) (Entry, error) {
	entry, err := NewEntry(EntryDeposit, amount)
	if err != nil {
		return Entry{}, err
	}
	a.apply(entry)
	return entry, nil
}

// Withdraw parses the raw amount, debits the account, and records a
// withdrawal entry. Withdrawing more than the current balance fails
// with ErrInsufficientFunds and leaves the account untouched.
func (a *Account) Withdraw(amount string) (Entry, error) {
	entry, err := NewEntry(EntryWithdrawal, amount)
	if err != nil {
		return Entry{}, err
	}
	if entry.Amount.GreaterThan(a.balance) {
		return Entry{}, fmt.Errorf("%w: balance is %s", ErrInsufficientFunds, a.balance.String())
	}
	a.apply(entry)
	return entry, nil
}

// apply commits an already validated entry to the account. The caller
// is responsible for any persistence that must happen first.
func (a *Account) apply(entry Entry) {
	a.balance = a.balance.Add(entry.Signed())
	a.entries = append(a.entries, entry)
}
