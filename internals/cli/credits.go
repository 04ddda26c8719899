package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	database "njangitech_backend/internals/databases"
	balanceService "njangitech_backend/internals/features/balance/service"
	creditService "njangitech_backend/internals/features/credits/service"
)

func init() {
	rootCmd.AddCommand(creditsCmd)
	creditsCmd.AddCommand(refreshOverdueCmd)
}

var creditsCmd = &cobra.Command{
	Use:   "credits",
	Short: "Credit maintenance",
}

var refreshOverdueCmd = &cobra.Command{
	Use:   "refresh-overdue",
	Short: "Mark late credits overdue or defaulted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer database.Close(db)

		svc := creditService.New(db, balanceService.New(db), cfg.Rules)
		res, err := svc.RefreshOverdueStatuses(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%d credit(s) updated\n", res.Updated)
		for _, c := range res.Credits {
			fmt.Fprintf(out, "  %s  %s  due %s\n", c.CreditID, c.CreditStatus, c.CreditDueDate.Format("2006-01-02"))
		}
		return nil
	},
}
