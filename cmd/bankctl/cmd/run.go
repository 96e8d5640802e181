package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/shunichi-ikebuchi/banking-cli/pkg/bank"
	"github.com/shunichi-ikebuchi/banking-cli/pkg/pathutil"
	"github.com/shunichi-ikebuchi/banking-cli/pkg/receipt"
)

// runCmd represents the run command.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the interactive banking session",
	Long: `Start the interactive menu-driven banking session.

The menu offers:
1. Open A New Account
2. Make A Deposit
3. Make A Withdrawal
4. Get Balance
5. Apply For Mortgage
6. Exit

On exit you can optionally generate a JSON receipt of the session, and
the account snapshot is saved through the configured backend.

Example:
  bankctl run
  bankctl run --config bank.yaml`,
	Run: runSession,
}

func runSession(cmd *cobra.Command, args []string) {
	exitOnError(runInteractive(os.Stdin, os.Stdout), "session failed")
}

// runInteractive drives one full interactive session: load, menu loop,
// save. Errors are returned rather than fatal so deferred cleanup of
// the store always runs.
func runInteractive(in io.Reader, out io.Writer) error {
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

	session := &session{
		registry: registry,
		resolver: resolver,
		in:       bufio.NewScanner(in),
		out:      out,
	}
	session.loop(ctx)

	if err := registry.Save(ctx); err != nil {
		return fmt.Errorf("failed to save account data: %w", err)
	}
	slog.Info("session saved", "accounts", len(registry.Accounts()))
	fmt.Fprintln(out, "Goodbye!")
	return nil
}

// session is the interactive shell around the registry. It only reads
// prompts and prints messages; all rules live in the registry.
type session struct {
	registry *bank.Registry
	resolver *pathutil.PathResolver
	in       *bufio.Scanner
	out      io.Writer
}

// loop runs the menu until the user exits or the input ends. End of
// input counts as an exit so a piped session still reaches the save
// path instead of re-prompting forever.
func (s *session) loop(ctx context.Context) {
	for {
		fmt.Fprint(s.out, "\nWelcome to CLI Banking App\n"+
			"1. Open A New Account\n"+
			"2. Make A Deposit\n"+
			"3. Make A Withdrawal\n"+
			"4. Get Balance\n"+
			"5. Apply For Mortgage\n"+
			"6. Exit\n")

		choice, ok := s.prompt("Choose an option [1 - 6]: ")
		if !ok {
			fmt.Fprintln(s.out, "\nExiting the program...")
			return
		}

		switch choice {
		case "1":
			s.openAccount(ctx)
		case "2":
			s.deposit(ctx)
		case "3":
			s.withdraw(ctx)
		case "4":
			s.balance()
		case "5":
			s.mortgage()
		case "6":
			s.maybeReceipt()
			fmt.Fprintln(s.out, "Exiting the program...")
			return
		default:
			fmt.Fprintln(s.out, "Invalid option. Please choose again.")
		}
	}
}

func (s *session) openAccount(ctx context.Context) {
	name, ok := s.prompt("Enter your name: ")
	if !ok {
		return
	}
	acct, err := s.registry.CreateAccount(ctx, name, decimal.Zero)
	if err != nil {
		fmt.Fprintln(s.out, err)
		return
	}
	fmt.Fprintf(s.out, "Account created successfully for %s. Account ID: %d\n", acct.Name(), acct.ID())
}

func (s *session) deposit(ctx context.Context) {
	id, ok := s.promptID()
	if !ok {
		return
	}
	amount, ok := s.prompt("Enter deposit amount: ")
	if !ok {
		return
	}
	balance, err := s.registry.Deposit(ctx, id, amount)
	if err != nil {
		fmt.Fprintln(s.out, err)
		return
	}
	fmt.Fprintf(s.out, "Deposited %s. New balance: %s\n", amount, balance.StringFixed(2))
}

func (s *session) withdraw(ctx context.Context) {
	id, ok := s.promptID()
	if !ok {
		return
	}
	amount, ok := s.prompt("Enter withdrawal amount: ")
	if !ok {
		return
	}
	balance, err := s.registry.Withdraw(ctx, id, amount)
	if err != nil {
		fmt.Fprintln(s.out, err)
		return
	}
	fmt.Fprintf(s.out, "Withdrew %s. New balance: %s\n", amount, balance.StringFixed(2))
}

func (s *session) balance() {
	id, ok := s.promptID()
	if !ok {
		return
	}
	acct, err := s.registry.Account(id)
	if err != nil {
		fmt.Fprintln(s.out, err)
		return
	}
	fmt.Fprintf(s.out, "Account balance: %s\n", acct.Balance().StringFixed(2))
}

func (s *session) mortgage() {
	name, ok := s.prompt("Enter your name: ")
	if !ok {
		return
	}
	fmt.Fprintln(s.out, s.registry.ApplyForMortgage(name))
}

func (s *session) maybeReceipt() {
	answer, ok := s.prompt("Would you like a receipt? (yes/no): ")
	if !ok {
		return
	}
	answer = strings.ToLower(answer)
	if answer != "yes" && answer != "y" {
		return
	}
	name, ok := s.prompt("Enter your name: ")
	if !ok {
		return
	}
	path := s.resolver.GetReceiptPath()
	if err := receipt.Generate(path, name, s.registry.Accounts()); err != nil {
		fmt.Fprintln(s.out, err)
		return
	}
	fmt.Fprintf(s.out, "Receipt saved at %s\n", path)
}

// prompt prints the label and reads one line. ok is false once the
// input is exhausted; callers treat that as the end of the session.
func (s *session) prompt(label string) (string, bool) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

func (s *session) promptID() (int64, bool) {
	raw, ok := s.prompt("Enter account ID: ")
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		fmt.Fprintf(s.out, "Invalid account ID: %q\n", raw)
		return 0, false
	}
	return id, true
}
