package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/fmansouri/pocketledger/internal/cli"
	"github.com/fmansouri/pocketledger/internal/ledger"
	"github.com/spf13/cobra"
)

func statsCmd() *cobra.Command {
	var rangeName string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show income, expenses, balance and category breakdown",
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

			sum := store.Stats(rng)
			fmt.Println(cli.FormatTitle(fmt.Sprintf("Stats (%s)", rng)))
			fmt.Println()
			fmt.Printf("  Income:   %s\n", cli.IncomeStyle.Render("+"+formatAmount(sum.TotalIncome)))
			fmt.Printf("  Expenses: %s\n", cli.ExpenseStyle.Render("-"+formatAmount(sum.TotalExpense)))

			balStyle := cli.IncomeStyle
			if sum.Balance < 0 {
				balStyle = cli.ExpenseStyle
			}
			fmt.Printf("  Balance:  %s\n", balStyle.Render(formatAmount(sum.Balance)))

			owed := store.TotalOwed()
			if owed > 0 {
				fmt.Printf("  Owed:     %s\n", cli.WarningStyle.Render(formatAmount(owed)))
			}

			totals := store.CategoryTotals(rng)
			if len(totals) == 0 {
				return nil
			}

			fmt.Println()
			fmt.Println(cli.SubtleStyle.Render("By category:"))

			names := make([]string, 0, len(totals))
			for name := range totals {
				names = append(names, name)
			}
			sort.Strings(names)

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			for _, name := range names {
				ct := totals[name]
				fmt.Fprintf(w, "  %s\t%s\t%s\n",
					name,
					cli.IncomeStyle.Render("+"+formatAmount(ct.Income)),
					cli.ExpenseStyle.Render("-"+formatAmount(ct.Expense)))
			}
			if err := w.Flush(); err != nil {
				return fmt.Errorf("failed to flush table: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&rangeName, "range", "all", "all, day, week or month")
	return cmd
}
