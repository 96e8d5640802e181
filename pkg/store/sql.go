package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/shunichi-ikebuchi/banking-cli/pkg/db"
)

// SQLStore persists accounts and their transaction log in a relational
// database. Unlike the CSV backend it is durable per operation: every
// opened account is inserted immediately and every deposit/withdrawal
// commits the balance update and the transaction row together.
type SQLStore struct {
	conn *db.Connection
}

// NewSQLStore creates a store over an open connection. The caller owns
// the connection's lifetime only until the store is constructed; Close
// releases it.
func NewSQLStore(conn *db.Connection) *SQLStore {
	return &SQLStore{conn: conn}
}

// Load reads every account ordered by id. Transaction rows are not
// reloaded; history is session-scoped by design.
func (s *SQLStore) Load(ctx context.Context) ([]AccountRecord, error) {
	rows, err := s.conn.Query(`
		SELECT account_id, name, balance
		FROM accounts
		ORDER BY account_id
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	defer rows.Close()

	var records []AccountRecord
	for rows.Next() {
		var (
			rec     AccountRecord
			balance string
		)
		if err := rows.Scan(&rec.ID, &rec.Name, &balance); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoad, err)
		}
		rec.Balance, err = decimal.NewFromString(balance)
		if err != nil {
			return nil, fmt.Errorf("%w: account %d has balance %q: %w", ErrBadFormat, rec.ID, balance, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	return records, nil
}

// Save upserts the full account set in one transaction. Accounts are
// never deleted in-session, so an upsert of every record is a complete
// overwrite of the live state.
func (s *SQLStore) Save(ctx context.Context, accounts []AccountRecord) error {
	err := s.conn.Transaction(func(tx *sql.Tx) error {
		query := s.conn.Rebind(`
			INSERT INTO accounts (account_id, name, balance)
			VALUES (?, ?, ?)
			ON CONFLICT(account_id) DO UPDATE SET
				name = excluded.name,
				balance = excluded.balance
		`)
		for _, rec := range accounts {
			if _, err := tx.ExecContext(ctx, query, rec.ID, rec.Name, rec.Balance.String()); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	return nil
}

// CreateAccount inserts a newly opened account.
func (s *SQLStore) CreateAccount(ctx context.Context, account AccountRecord) error {
	_, err := s.conn.Exec(`
		INSERT INTO accounts (account_id, name, balance)
		VALUES (?, ?, ?)
	`, account.ID, account.Name, account.Balance.String())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	return nil
}

// AppendEntry records one deposit or withdrawal as a single unit of
// work: the balance update and the transaction-log insert commit
// together or roll back together, so a reader can never observe one
// without the other.
func (s *SQLStore) AppendEntry(ctx context.Context, accountID int64, entry EntryRecord, newBalance decimal.Decimal) error {
	err := s.conn.Transaction(func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, s.conn.Rebind(`
			UPDATE accounts SET balance = ? WHERE account_id = ?
		`), newBalance.String(), accountID)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return fmt.Errorf("account %d not found for balance update", accountID)
		}

		_, err = tx.ExecContext(ctx, s.conn.Rebind(`
			INSERT INTO transactions (account_id, amount, transaction_type, transaction_date)
			VALUES (?, ?, ?, ?)
		`), accountID, entry.Amount.String(), entry.Kind, entry.Date)
		return err
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	return nil
}

// Close releases the underlying connection.
func (s *SQLStore) Close() error {
	return s.conn.Close()
}
