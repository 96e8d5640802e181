// Package receipt builds the end-of-session receipt document: a JSON
// snapshot of every account held under one owner name, with the full
// in-session transaction listing and the aggregate balance.
package receipt

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"

	"github.com/shunichi-ikebuchi/banking-cli/pkg/bank"
)

// dateLayout is the timestamp format used inside receipt documents.
const dateLayout = "2006-01-02 15:04:05"

// Receipt is the derived, write-only document. It is computed on
// demand and is not part of the live ledger state.
type Receipt struct {
	Name         string           `json:"name"`
	Transactions []AccountSummary `json:"transactions"`
	TotalBalance json.Number      `json:"total_balance"`
}

// AccountSummary is one account's slice of the receipt.
type AccountSummary struct {
	AccountID    int64       `json:"account_id"`
	Balance      json.Number `json:"balance"`
	Transactions []EntryLine `json:"transactions"`
}

// EntryLine is one ledger entry rendered for the document.
type EntryLine struct {
	Type   string      `json:"type"`
	Amount json.Number `json:"amount"`
	Date   string      `json:"date"`
}

// Build assembles the receipt for every account whose owner name
// matches exactly. No matching account is an error: a receipt for
// nobody is a caller mistake, not an empty document.
func Build(name string, accounts []*bank.Account) (*Receipt, error) {
	var summaries []AccountSummary
	for _, acct := range accounts {
		if acct.Name() != name {
			continue
		}
		entries := acct.Entries()
		lines := make([]EntryLine, 0, len(entries))
		for _, e := range entries {
			lines = append(lines, EntryLine{
				Type:   string(e.Kind),
				Amount: json.Number(e.Amount.String()),
				Date:   e.Date.Format(dateLayout),
			})
		}
		summaries = append(summaries, AccountSummary{
			AccountID:    acct.ID(),
			Balance:      json.Number(acct.Balance().String()),
			Transactions: lines,
		})
	}

	if len(summaries) == 0 {
		return nil, fmt.Errorf("%w: no accounts for name %q", bank.ErrAccountNotFound, name)
	}

	total := decimal.Zero
	for _, acct := range accounts {
		if acct.Name() == name {
			total = total.Add(acct.Balance())
		}
	}

	return &Receipt{
		Name:         name,
		Transactions: summaries,
		TotalBalance: json.Number(total.String()),
	}, nil
}

// Write serializes the receipt as pretty-printed JSON (4-space
// indentation) at path, creating intermediate directories as needed
// and overwriting any prior receipt. The write goes through a
// temporary file and a rename.
func Write(path string, r *Receipt) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create receipt directory: %w", err)
	}

	data, err := json.MarshalIndent(r, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode receipt: %w", err)
	}
	data = append(data, '\n')

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write receipt: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to write receipt: %w", err)
	}
	return nil
}

// Generate builds the receipt for name and writes it at path.
func Generate(path, name string, accounts []*bank.Account) error {
	r, err := Build(name, accounts)
	if err != nil {
		return err
	}
	return Write(path, r)
}
