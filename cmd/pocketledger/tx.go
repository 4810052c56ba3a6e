package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fmansouri/pocketledger/internal/cli"
	"github.com/fmansouri/pocketledger/internal/ledger"
	"github.com/fmansouri/pocketledger/internal/model"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func txCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Record and inspect transactions",
	}
	cmd.AddCommand(txAddCmd())
	cmd.AddCommand(txListCmd())
	cmd.AddCommand(txDeleteCmd())
	return cmd
}

func txAddCmd() *cobra.Command {
	var (
		txType   string
		amount   float64
		title    string
		category string
		date     string
		note     string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an income or expense",
		Long: `Record a transaction in the local ledger.

The date defaults to today; pass --date "" to record an undated entry,
which appears only in unfiltered views.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tt := model.TransactionType(txType)
			if !tt.IsValid() {
				return fmt.Errorf("invalid type %q (want income or expense)", txType)
			}
			if amount < 0 {
				return fmt.Errorf("amount must not be negative")
			}
			if date != "" && date != "today" {
				if _, ok := model.ParseDate(date); !ok {
					return fmt.Errorf("invalid date %q (want YYYY-MM-DD)", date)
				}
			}
			if date == "today" {
				date = time.Now().Format("2006-01-02")
			}

			store, cleanup, err := openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			t := model.Transaction{
				ID:       uuid.NewString(),
				Type:     tt,
				Amount:   amount,
				Title:    title,
				Category: category,
				Date:     date,
				Note:     note,
			}
			store.AddTransaction(t)

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recorded %s of %s (%s)", txType, formatAmount(amount), t.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&txType, "type", "expense", "income or expense")
	cmd.Flags().Float64Var(&amount, "amount", 0, "amount in display currency")
	cmd.Flags().StringVar(&title, "title", "", "short label")
	cmd.Flags().StringVar(&category, "category", "", "free-text category tag")
	cmd.Flags().StringVar(&date, "date", "today", "date (YYYY-MM-DD), or empty for undated")
	cmd.Flags().StringVar(&note, "note", "", "free text note")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func txListCmd() *cobra.Command {
	var rangeName string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rng, err := ledger.ParseRange(rangeName)
			if err != nil {
				return err
			}

			store, cleanup, err := openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			items := store.History(rng)
			if len(items) == 0 {
				fmt.Println(cli.InfoStyle.Render("No transactions yet. Use 'pocketledger tx add' to record one."))
				return nil
			}

			fmt.Println(cli.FormatTitle("Transactions"))
			fmt.Println()

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				cli.TableHeaderStyle.Render("Date"),
				cli.TableHeaderStyle.Render("Type"),
				cli.TableHeaderStyle.Render("Amount"),
				cli.TableHeaderStyle.Render("Label"),
				cli.TableHeaderStyle.Render("Category"),
				cli.TableHeaderStyle.Render("ID"))

			for _, t := range items {
				label := t.Label()
				if label == "" {
					label = cli.SubtleStyle.Render("(no description)")
				}
				amount := cli.IncomeStyle.Render("+" + formatAmount(t.Amount))
				if t.Type == model.TypeExpense {
					amount = cli.ExpenseStyle.Render("-" + formatAmount(t.Amount))
				}
				date := t.Date
				if date == "" {
					date = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					date, t.Type, amount, label, t.Category, cli.SubtleStyle.Render(shortID(t.ID)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&rangeName, "range", "all", "all, day, week or month")
	return cmd
}

func txDeleteCmd() *cobra.Command {
	var assumeYes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cleanup, err := openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			id := resolveTxID(store, args[0])
			if !confirm("Delete this transaction?", assumeYes) {
				fmt.Println(cli.FormatInfo("Cancelled"))
				return nil
			}

			store.DeleteTransaction(id)
			fmt.Println(cli.FormatSuccess("Transaction deleted"))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

// resolveTxID lets users pass the short ID prefix shown by list.
func resolveTxID(store *ledger.Store, arg string) string {
	for _, t := range store.Transactions() {
		if t.ID == arg || strings.HasPrefix(t.ID, arg) {
			return t.ID
		}
	}
	return arg
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
