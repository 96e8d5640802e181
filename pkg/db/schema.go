// Package db provides relational database management for the account
// registry: one connection per session, schema initialization, and a
// transaction helper shared by SQLite and Postgres backends.
package db

// schemaSQLite defines the account and transaction tables for SQLite.
// Balances and amounts are stored as decimal text to avoid float
// rounding.
const schemaSQLite = `
CREATE TABLE IF NOT EXISTS accounts (
    account_id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    balance TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS transactions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    account_id INTEGER NOT NULL REFERENCES accounts(account_id),
    amount TEXT NOT NULL,
    transaction_type TEXT NOT NULL,
    transaction_date TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_transactions_account
    ON transactions(account_id);
`

// schemaPostgres is the same layout in Postgres types.
const schemaPostgres = `
CREATE TABLE IF NOT EXISTS accounts (
    account_id BIGINT PRIMARY KEY,
    name TEXT NOT NULL,
    balance NUMERIC(20,4) NOT NULL
);

CREATE TABLE IF NOT EXISTS transactions (
    id BIGSERIAL PRIMARY KEY,
    account_id BIGINT NOT NULL REFERENCES accounts(account_id),
    amount NUMERIC(20,4) NOT NULL,
    transaction_type TEXT NOT NULL,
    transaction_date TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_transactions_account
    ON transactions(account_id);
`

// InitializeSchema creates all tables if they don't exist.
func InitializeSchema(conn *Connection) error {
	schema := schemaSQLite
	if conn.Driver() == DriverPostgres {
		schema = schemaPostgres
	}
	if _, err := conn.Exec(schema); err != nil {
		return err
	}
	return nil
}
