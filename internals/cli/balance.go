package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	database "njangitech_backend/internals/databases"
	balanceService "njangitech_backend/internals/features/balance/service"
)

func init() {
	rootCmd.AddCommand(balanceCmd)
}

var balanceCmd = &cobra.Command{
	Use:   "balance TONTINE_ID",
	Short: "Print the cash in hand of a tontine",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid tontine id %q: %w", args[0], err)
		}
		cfg, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer database.Close(db)

		b, err := balanceService.New(db).Breakdown(cmd.Context(), id)
		if err != nil {
			return err
		}
		printBreakdown(cmd, cfg.Rules.Currency, b)
		return nil
	},
}

func printBreakdown(cmd *cobra.Command, currency string, b balanceService.Breakdown) {
	out := cmd.OutOrStdout()
	rows := []struct {
		label string
		value string
	}{
		{"contributions", b.Contributions.StringFixed(2)},
		{"penalties collected", b.PenaltiesCollected.StringFixed(2)},
		{"credit repayments", b.CreditRepayments.StringFixed(2)},
		{"credits granted", b.CreditsGranted.StringFixed(2)},
		{"tours distributed", b.ToursDistributed.StringFixed(2)},
		{"project allocations", b.ProjectAllocations.StringFixed(2)},
		{"balance", b.Balance.StringFixed(2)},
	}
	for _, r := range rows {
		fmt.Fprintf(out, "%-20s %14s %s\n", r.label, r.value, currency)
	}
}
