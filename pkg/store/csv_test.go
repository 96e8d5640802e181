package store

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
)

func TestCSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accounts.csv")
	st := NewCSVStore(path)
	ctx := context.Background()

	want := []AccountRecord{
		{ID: 1, Name: "Alice", Balance: decimal.NewFromInt(100)},
		{ID: 2, Name: "Bob", Balance: decimal.RequireFromString("0.05")},
		{ID: 3, Name: "Carol", Balance: decimal.Zero},
	}
	if err := st.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := st.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("loaded %d records, expected %d", len(got), len(want))
	}
	for i := range want {
		if got[i].ID != want[i].ID || got[i].Name != want[i].Name || !got[i].Balance.Equal(want[i].Balance) {
			t.Errorf("record %d = %+v, expected %+v", i, got[i], want[i])
		}
	}
}

func TestCSVSaveWritesHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accounts.csv")
	st := NewCSVStore(path)

	if err := st.Save(context.Background(), nil); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "account_id,name,balance\n" {
		t.Errorf("file content = %q, expected header only", data)
	}
}

func TestCSVSaveCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "nested", "accounts.csv")
	st := NewCSVStore(path)

	if err := st.Save(context.Background(), []AccountRecord{{ID: 1, Name: "Alice", Balance: decimal.Zero}}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("saved file missing: %v", err)
	}
}

func TestCSVLoadMissingFile(t *testing.T) {
	st := NewCSVStore(filepath.Join(t.TempDir(), "nope.csv"))

	_, err := st.Load(context.Background())
	if !errors.Is(err, ErrLoad) {
		t.Errorf("error = %v, expected ErrLoad", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("error = %v, expected to match fs.ErrNotExist for recoverable handling", err)
	}
}

func TestCSVLoadMalformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad header", "id,owner,total\n1,Alice,100\n"},
		{"non-numeric balance", "account_id,name,balance\n1,Alice,lots\n"},
		{"non-numeric id", "account_id,name,balance\none,Alice,100\n"},
		{"missing field", "account_id,name,balance\n1,Alice\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "accounts.csv")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}

			_, err := NewCSVStore(path).Load(context.Background())
			if !errors.Is(err, ErrBadFormat) {
				t.Errorf("error = %v, expected ErrBadFormat", err)
			}
		})
	}
}

func TestCSVLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accounts.csv")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	records, err := NewCSVStore(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("loaded %d records from empty file, expected 0", len(records))
	}
}

func TestCSVSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accounts.csv")
	st := NewCSVStore(path)
	ctx := context.Background()

	if err := st.Save(ctx, []AccountRecord{
		{ID: 1, Name: "Alice", Balance: decimal.NewFromInt(1)},
		{ID: 2, Name: "Bob", Balance: decimal.NewFromInt(2)},
	}); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	if err := st.Save(ctx, []AccountRecord{
		{ID: 1, Name: "Alice", Balance: decimal.NewFromInt(42)},
	}); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	records, err := st.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("loaded %d records after overwrite, expected 1", len(records))
	}
	if !records[0].Balance.Equal(decimal.NewFromInt(42)) {
		t.Errorf("balance = %s, expected 42", records[0].Balance)
	}
}
