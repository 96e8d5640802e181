package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/shunichi-ikebuchi/banking-cli/pkg/bank"
	"github.com/shunichi-ikebuchi/banking-cli/pkg/receipt"
)

var (
	receiptName string
	receiptOut  string
)

// receiptCmd represents the receipt command.
var receiptCmd = &cobra.Command{
	Use:   "receipt",
	Short: "Generate a JSON receipt for an owner's accounts",
	Long: `Generate a JSON receipt listing every account held under the
given owner name, with per-account balances and the aggregate total.

The receipt is written as pretty-printed JSON, creating parent
directories as needed and overwriting any prior receipt at the same
location.

Example:
  bankctl receipt --name Alice
  bankctl receipt --name Alice --out /tmp/alice.json`,
	Run: runReceipt,
}

func init() {
	receiptCmd.Flags().StringVar(&receiptName, "name", "", "Owner name (required)")
	receiptCmd.Flags().StringVar(&receiptOut, "out", "", "Output path (default is the configured receipt path)")

	receiptCmd.MarkFlagRequired("name")
}

func runReceipt(cmd *cobra.Command, args []string) {
	exitOnError(writeReceipt(receiptName, receiptOut, os.Stdout), "receipt command failed")
}

func writeReceipt(name, outPath string, out io.Writer) error {
	resolver, st, err := loadEnvironment()
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer st.Close()

	ctx := context.Background()
	registry := bank.NewRegistry(st)
	if err := registry.Load(ctx); err != nil {
		return fmt.Errorf("failed to load account data: %w", err)
	}

	path := outPath
	if path == "" {
		path = resolver.GetReceiptPath()
	}

	if err := receipt.Generate(path, name, registry.Accounts()); err != nil {
		return fmt.Errorf("failed to generate receipt: %w", err)
	}

	slog.Info("receipt generated", "name", name, "path", path)
	fmt.Fprintf(out, "Receipt saved at %s\n", path)
	return nil
}
