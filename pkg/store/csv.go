package store

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/shopspring/decimal"
)

// csvHeader is the fixed column layout of the flat-file backend.
var csvHeader = []string{"account_id", "name", "balance"}

// CSVStore persists the account set to a single CSV file. It offers no
// per-operation durability: CreateAccount and AppendEntry are no-ops
// and the file is rewritten in full by Save. The rewrite goes through
// a temporary file and a rename so a crash mid-save cannot corrupt the
// previous snapshot.
type CSVStore struct {
	path string
}

// NewCSVStore creates a store backed by the CSV file at path. The file
// does not need to exist yet.
func NewCSVStore(path string) *CSVStore {
	return &CSVStore{path: path}
}

// Load reads every account row. A missing file surfaces as ErrLoad
// wrapping fs.ErrNotExist so the caller can choose to start empty. Any
// malformed row aborts the whole load with ErrBadFormat: a partial
// load followed by a save would silently drop the unreadable accounts.
func (s *CSVStore) Load(ctx context.Context) ([]AccountRecord, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadFormat, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	if err := checkHeader(rows[0]); err != nil {
		return nil, err
	}

	records := make([]AccountRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rec, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", ErrBadFormat, i+2, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// Save rewrites the file with the full account set.
func (s *CSVStore) Save(ctx context.Context, accounts []AccountRecord) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("%w: %w", ErrSave, err)
	}

	tmp := s.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSave, err)
	}

	writer := csv.NewWriter(f)
	if err := writer.Write(csvHeader); err != nil {
		f.Close()
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	for _, rec := range accounts {
		row := []string{
			strconv.FormatInt(rec.ID, 10),
			rec.Name,
			rec.Balance.String(),
		}
		if err := writer.Write(row); err != nil {
			f.Close()
			return fmt.Errorf("%w: %w", ErrSave, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		f.Close()
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrSave, err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	return nil
}

// CreateAccount is a no-op; the flat-file variant persists only on
// Save.
func (s *CSVStore) CreateAccount(ctx context.Context, account AccountRecord) error {
	return nil
}

// AppendEntry is a no-op; the flat-file variant keeps no durable
// transaction log.
func (s *CSVStore) AppendEntry(ctx context.Context, accountID int64, entry EntryRecord, newBalance decimal.Decimal) error {
	return nil
}

// Close is a no-op; the store holds no open handles between calls.
func (s *CSVStore) Close() error {
	return nil
}

func checkHeader(row []string) error {
	if len(row) != len(csvHeader) {
		return fmt.Errorf("%w: expected header %v, got %v", ErrBadFormat, csvHeader, row)
	}
	for i, col := range csvHeader {
		if row[i] != col {
			return fmt.Errorf("%w: expected header %v, got %v", ErrBadFormat, csvHeader, row)
		}
	}
	return nil
}

func parseRow(row []string) (AccountRecord, error) {
	if len(row) != len(csvHeader) {
		return AccountRecord{}, fmt.Errorf("expected %d fields, got %d", len(csvHeader), len(row))
	}
	id, err := strconv.ParseInt(row[0], 10, 64)
	if err != nil {
		return AccountRecord{}, fmt.Errorf("invalid account_id %q", row[0])
	}
	balance, err := decimal.NewFromString(row[2])
	if err != nil {
		return AccountRecord{}, fmt.Errorf("invalid balance %q", row[2])
	}
	return AccountRecord{ID: id, Name: row[1], Balance: balance}, nil
}
