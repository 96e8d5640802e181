// Package cmd provides CLI commands for bankctl.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/shunichi-ikebuchi/banking-cli/pkg/config"
	"github.com/shunichi-ikebuchi/banking-cli/pkg/pathutil"
	"github.com/shunichi-ikebuchi/banking-cli/pkg/store"
)

var (
	cfgFile string
	debug   bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "bankctl",
	Short: "Single-session banking ledger",
	Long: `bankctl is a CLI banking ledger for one user session.

It supports:
- Opening accounts and making deposits and withdrawals
- Balance queries and mortgage eligibility checks
- Persistence to a flat CSV file or a relational database
- An end-of-session JSON receipt

Example:
  bankctl run
  bankctl stats
  bankctl receipt --name Alice`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Setup logging
		logLevel := slog.LevelInfo
		if debug {
			logLevel = slog.LevelDebug
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
		}))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (.env or .yaml, default is .env)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(receiptCmd)
}

// Helper function to get config file path.
func getConfigFile() string {
	if cfgFile != "" {
		return cfgFile
	}
	return "" // Will use default .env loading
}

// loadEnvironment loads the configuration, builds the path resolver,
// and opens the configured persistence backend. The returned store
// must be closed by the caller on every exit path.
func loadEnvironment() (*pathutil.PathResolver, store.Store, error) {
	cfg, err := config.Load(getConfigFile())
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate("storage.backend", "storage.data_root"); err != nil {
		return nil, nil, err
	}

	resolver := pathutil.New(pathutil.Config{
		DataRoot:    cfg.Storage.DataRoot,
		CSVPath:     cfg.Storage.CSVPath,
		ReceiptPath: cfg.Storage.ReceiptPath,
	})

	st, err := openStore(cfg, resolver)
	if err != nil {
		return nil, nil, err
	}
	return resolver, st, nil
}

// Helper function to handle errors and exit.
func exitOnError(err error, msg string) {
	if err != nil {
		slog.Error(msg, "error", err)
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
		os.Exit(1)
	}
}
