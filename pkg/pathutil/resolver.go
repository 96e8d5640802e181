// Package pathutil provides centralized path management for the bank
// data directory: the CSV snapshot, the SQLite database, and receipts.
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// PathResolver manages paths inside the bank data directory.
type PathResolver struct {
	dataRoot    string
	csvPath     string
	dbPath      string
	receiptPath string
}

// Config represents the configuration for PathResolver.
type Config struct {
	// DataRoot is the root directory for all bank data (e.g., ~/bank)
	DataRoot string
	// CSVPath is the path to the flat-file account snapshot
	CSVPath string
	// DBPath is the path to the SQLite database file
	DBPath string
	// ReceiptPath is the default path for the session receipt
	ReceiptPath string
}

// New creates a new PathResolver with the given configuration.
// If CSVPath is empty, it defaults to {DataRoot}/accounts.csv
// If DBPath is empty, it defaults to {DataRoot}/bank.db
// If ReceiptPath is empty, it defaults to {DataRoot}/receipts/receipt.json
func New(config Config) *PathResolver {
	csvPath := config.CSVPath
	if csvPath == "" {
		csvPath = filepath.Join(config.DataRoot, "accounts.csv")
	}

	dbPath := config.DBPath
	if dbPath == "" {
		dbPath = filepath.Join(config.DataRoot, "bank.db")
	}

	receiptPath := config.ReceiptPath
	if receiptPath == "" {
		receiptPath = filepath.Join(config.DataRoot, "receipts", "receipt.json")
	}

	return &PathResolver{
		dataRoot:    config.DataRoot,
		csvPath:     csvPath,
		dbPath:      dbPath,
		receiptPath: receiptPath,
	}
}

// GetDataRoot returns the bank data root directory.
func (p *PathResolver) GetDataRoot() string {
	return p.dataRoot
}

// GetCSVPath returns the account snapshot file path.
func (p *PathResolver) GetCSVPath() string {
	return p.csvPath
}

// GetDatabasePath returns the database file path.
func (p *PathResolver) GetDatabasePath() string {
	return p.dbPath
}

// GetReceiptPath returns the default receipt file path.
func (p *PathResolver) GetReceiptPath() string {
	return p.receiptPath
}

// EnsureDir creates a directory if it doesn't exist.
// It creates all parent directories as needed (like mkdir -p).
func (p *PathResolver) EnsureDir(dirPath string) error {
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dirPath, err)
	}
	return nil
}

// EnsureParentDir ensures the parent directory of a file exists.
func (p *PathResolver) EnsureParentDir(filePath string) error {
	return p.EnsureDir(filepath.Dir(filePath))
}

// FileExists checks if a file exists.
func (p *PathResolver) FileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return err == nil
}
