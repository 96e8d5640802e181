// Package config provides configuration management for the banking
// CLI. It loads configuration from environment variables and .env
// files, with optional overrides from a YAML config file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Storage backend names accepted by BANK_STORAGE_BACKEND.
const (
	BackendCSV = "csv"
	BackendSQL = "sql"
)

// Config represents the application configuration.
type Config struct {
	Storage  StorageConfig  `yaml:"storage"`
	Database DatabaseConfig `yaml:"database"`
	Debug    bool           `yaml:"debug"`
}

// StorageConfig selects the persistence backend and file locations.
type StorageConfig struct {
	Backend     string `yaml:"backend"`
	DataRoot    string `yaml:"data_root"`
	CSVPath     string `yaml:"csv_path"`
	ReceiptPath string `yaml:"receipt_path"`
}

// DatabaseConfig holds relational connection parameters. Path is used
// by the sqlite3 driver; the host/user/password/name block by postgres.
type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Path     string `yaml:"path"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"sslmode"`
}

// Load loads configuration from environment variables. A .env file in
// the current directory is loaded automatically when present. An
// optional path argument names either a .env file or, when it ends in
// .yaml/.yml, a YAML file whose values override the environment.
func Load(path ...string) (*Config, error) {
	var yamlPath string
	if len(path) > 0 && path[0] != "" {
		if strings.HasSuffix(path[0], ".yaml") || strings.HasSuffix(path[0], ".yml") {
			yamlPath = path[0]
		} else {
			if err := godotenv.Load(path[0]); err != nil {
				return nil, fmt.Errorf("failed to load .env file: %w", err)
			}
		}
	} else {
		// Try to load .env from current directory (ignore error if not found)
		_ = godotenv.Load()
	}

	port, err := parseIntEnv("BANK_DB_PORT", 5432)
	if err != nil {
		return nil, fmt.Errorf("invalid BANK_DB_PORT: %w", err)
	}

	config := &Config{
		Storage: StorageConfig{
			Backend:     getEnvOrDefault("BANK_STORAGE_BACKEND", BackendCSV),
			DataRoot:    getEnvOrDefault("BANK_DATA_ROOT", "./bankdata"),
			CSVPath:     os.Getenv("BANK_CSV_PATH"),
			ReceiptPath: os.Getenv("BANK_RECEIPT_PATH"),
		},
		Database: DatabaseConfig{
			Driver:   getEnvOrDefault("BANK_DB_DRIVER", "sqlite3"),
			Path:     os.Getenv("BANK_DB_PATH"),
			Host:     getEnvOrDefault("BANK_DB_HOST", "localhost"),
			Port:     port,
			User:     os.Getenv("BANK_DB_USER"),
			Password: os.Getenv("BANK_DB_PASSWORD"),
			Name:     os.Getenv("BANK_DB_NAME"),
			SSLMode:  getEnvOrDefault("BANK_DB_SSLMODE", "disable"),
		},
		Debug: os.Getenv("DEBUG") == "true",
	}

	if yamlPath != "" {
		if err := applyYAML(config, yamlPath); err != nil {
			return nil, err
		}
	}

	return config, nil
}

// applyYAML overlays values from a YAML file onto the environment-built
// configuration. Fields absent from the file keep their current value.
func applyYAML(config *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// Validate checks that all required dotted fields (e.g. "database.host")
// are set.
func (c *Config) Validate(required ...string) error {
	var missing []string

	for _, field := range required {
		var value string
		switch field {
		case "storage.backend":
			value = c.Storage.Backend
		case "storage.data_root":
			value = c.Storage.DataRoot
		case "database.driver":
			value = c.Database.Driver
		case "database.host":
			value = c.Database.Host
		case "database.user":
			value = c.Database.User
		case "database.password":
			value = c.Database.Password
		case "database.name":
			value = c.Database.Name
		}

		if value == "" {
			missing = append(missing, field)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %v\nPlease check your .env file or environment variables", missing)
	}

	return nil
}

// getEnvOrDefault returns the value of the environment variable or a default value if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseIntEnv parses an int from an environment variable.
// Returns defaultValue if the environment variable is not set.
func parseIntEnv(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid integer value for %s: %s", key, value)
	}

	return parsed, nil
}
