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

func debtCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "debt",
		Short: "Track money owed between you and other people",
	}
	cmd.AddCommand(debtAddCmd())
	cmd.AddCommand(debtListCmd())
	cmd.AddCommand(debtPaidCmd())
	cmd.AddCommand(debtDeleteCmd())
	return cmd
}

func debtAddCmd() *cobra.Command {
	var (
		person string
		amount float64
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a debt",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(person) == "" {
				return fmt.Errorf("person is required")
			}
			if amount <= 0 {
				return fmt.Errorf("amount must be positive")
			}

			store, cleanup, err := openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			d := model.Debt{
				ID:     uuid.NewString(),
				Person: person,
				Amount: amount,
				Date:   time.Now().Format("2006-01-02"),
				IsPaid: false,
			}
			store.AddDebt(d)

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recorded debt: %s owes %s (%s)", person, formatAmount(amount), shortID(d.ID))))
			return nil
		},
	}

	cmd.Flags().StringVar(&person, "person", "", "counterparty name")
	cmd.Flags().Float64Var(&amount, "amount", 0, "amount owed")
	_ = cmd.MarkFlagRequired("person")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func debtListCmd() *cobra.Command {
	var onlyUnpaid bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List debts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, cleanup, err := openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			debts := store.Debts(onlyUnpaid)
			if len(debts) == 0 {
				fmt.Println(cli.InfoStyle.Render("No debts recorded."))
				return nil
			}

			fmt.Println(cli.FormatTitle("Debts"))
			fmt.Println()

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cli.TableHeaderStyle.Render("Person"),
				cli.TableHeaderStyle.Render("Amount"),
				cli.TableHeaderStyle.Render("Date"),
				cli.TableHeaderStyle.Render("Status"),
				cli.TableHeaderStyle.Render("ID"))

			for _, d := range debts {
				status := cli.WarningStyle.Render("unpaid")
				if d.IsPaid {
					status = cli.SuccessStyle.Render("paid")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					d.Person, formatAmount(d.Amount), d.Date, status, cli.SubtleStyle.Render(shortID(d.ID)))
			}

			if err := w.Flush(); err != nil {
				return fmt.Errorf("failed to flush table: %w", err)
			}
			fmt.Println()
			fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("Total outstanding: %s", formatAmount(store.TotalOwed()))))
			return nil
		},
	}

	cmd.Flags().BoolVar(&onlyUnpaid, "unpaid", false, "show only unpaid debts")
	return cmd
}

func debtPaidCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "paid <id>",
		Short: "Toggle a debt's paid status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cleanup, err := openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			store.ToggleDebtPaid(resolveDebtID(store, args[0]))
			fmt.Println(cli.FormatSuccess("Debt updated"))
			return nil
		},
	}
}

func debtDeleteCmd() *cobra.Command {
	var assumeYes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a debt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cleanup, err := openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			id := resolveDebtID(store, args[0])
			if !confirm("Delete this debt?", assumeYes) {
				fmt.Println(cli.FormatInfo("Cancelled"))
				return nil
			}

			store.DeleteDebt(id)
			fmt.Println(cli.FormatSuccess("Debt deleted"))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func resolveDebtID(store *ledger.Store, arg string) string {
	for _, d := range store.Debts(false) {
		if d.ID == arg || strings.HasPrefix(d.ID, arg) {
			return d.ID
		}
	}
	return arg
}
