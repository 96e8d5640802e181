package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/shunichi-ikebuchi/banking-cli/pkg/bank"
)

// statsCmd represents the stats command.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Display account statistics",
	Long: `Display statistics about the persisted accounts.

Shows:
- Total number of accounts
- Total balance across all accounts
- Balance totals per owner name

Example:
  bankctl stats`,
	Run: runStats,
}

func runStats(cmd *cobra.Command, args []string) {
	exitOnError(showStats(os.Stdout), "stats command failed")
}

func showStats(out io.Writer) error {
	slog.Info("Loading configuration")

	_, st, err := loadEnvironment()
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer st.Close()

	ctx := context.Background()
	registry := bank.NewRegistry(st)
	if err := registry.Load(ctx); err != nil {
		return fmt.Errorf("failed to load account data: %w", err)
	}

	accounts := registry.Accounts()

	fmt.Fprintln(out, "\n=== Account Statistics ===")
	fmt.Fprintf(out, "Total accounts: %d\n", len(accounts))

	total := decimal.Zero
	seen := make(map[string]bool)
	for _, acct := range accounts {
		total = total.Add(acct.Balance())
	}
	fmt.Fprintf(out, "Total balance:  %s\n", total.StringFixed(2))

	for _, acct := range accounts {
		if seen[acct.Name()] {
			continue
		}
		seen[acct.Name()] = true
		fmt.Fprintf(out, "  %-20s %s\n", acct.Name(), registry.TotalBalanceForName(acct.Name()).StringFixed(2))
	}

	fmt.Fprintln(out)
	slog.Info("Statistics displayed successfully")
	return nil
}
