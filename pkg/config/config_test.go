package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Storage.Backend != BackendCSV {
		t.Errorf("Backend = %q, expected %q", cfg.Storage.Backend, BackendCSV)
	}
	if cfg.Storage.DataRoot != "./bankdata" {
		t.Errorf("DataRoot = %q, expected ./bankdata", cfg.Storage.DataRoot)
	}
	if cfg.Database.Driver != "sqlite3" {
		t.Errorf("Driver = %q, expected sqlite3", cfg.Database.Driver)
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("Port = %d, expected 5432", cfg.Database.Port)
	}
	if cfg.Database.SSLMode != "disable" {
		t.Errorf("SSLMode = %q, expected disable", cfg.Database.SSLMode)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("BANK_STORAGE_BACKEND", BackendSQL)
	t.Setenv("BANK_DATA_ROOT", "/var/lib/bank")
	t.Setenv("BANK_DB_DRIVER", "postgres")
	t.Setenv("BANK_DB_HOST", "db.internal")
	t.Setenv("BANK_DB_PORT", "5433")
	t.Setenv("BANK_DB_USER", "bank")
	t.Setenv("BANK_DB_PASSWORD", "secret")
	t.Setenv("BANK_DB_NAME", "bank_db")
	t.Setenv("DEBUG", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Storage.Backend != BackendSQL {
		t.Errorf("Backend = %q, expected %q", cfg.Storage.Backend, BackendSQL)
	}
	if cfg.Database.Host != "db.internal" || cfg.Database.Port != 5433 {
		t.Errorf("Host:Port = %s:%d, expected db.internal:5433", cfg.Database.Host, cfg.Database.Port)
	}
	if cfg.Database.User != "bank" || cfg.Database.Password != "secret" || cfg.Database.Name != "bank_db" {
		t.Errorf("credentials not picked up: %+v", cfg.Database)
	}
	if !cfg.Debug {
		t.Error("Debug = false, expected true")
	}
}

func TestLoadInvalidPort(t *testing.T) {
	t.Setenv("BANK_DB_PORT", "not-a-port")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid BANK_DB_PORT")
	}
}

func TestLoadYAMLOverridesEnv(t *testing.T) {
	t.Setenv("BANK_DATA_ROOT", "/from/env")
	t.Setenv("BANK_DB_HOST", "env-host")

	path := filepath.Join(t.TempDir(), "bank.yaml")
	content := strings.Join([]string{
		"storage:",
		"  backend: sql",
		"  data_root: /from/yaml",
		"database:",
		"  driver: postgres",
		"  host: yaml-host",
		"  user: bank",
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Storage.DataRoot != "/from/yaml" {
		t.Errorf("DataRoot = %q, expected the yaml value", cfg.Storage.DataRoot)
	}
	if cfg.Database.Host != "yaml-host" {
		t.Errorf("Host = %q, expected the yaml value", cfg.Database.Host)
	}
	// fields absent from the file keep their env/default values
	if cfg.Database.Port != 5432 {
		t.Errorf("Port = %d, expected default 5432", cfg.Database.Port)
	}
}

func TestLoadEnvFile(t *testing.T) {
	// register cleanup so the variable godotenv sets does not leak
	// into later tests, then clear it so godotenv can set it
	t.Setenv("BANK_STORAGE_BACKEND", "")
	os.Unsetenv("BANK_STORAGE_BACKEND")

	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("BANK_STORAGE_BACKEND=sql\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage.Backend != BackendSQL {
		t.Errorf("Backend = %q, expected %q from .env file", cfg.Storage.Backend, BackendSQL)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		required []string
		wantErr  bool
	}{
		{"all present", func(c *Config) {}, []string{"storage.backend", "database.driver"}, false},
		{"missing host", func(c *Config) { c.Database.Host = "" }, []string{"database.host"}, true},
		{"missing user", func(c *Config) {}, []string{"database.user"}, true},
		{"nothing required", func(c *Config) { c.Database.Host = "" }, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			tt.mutate(cfg)

			err = cfg.Validate(tt.required...)
			if tt.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}
