package cli

import (
	"github.com/spf13/cobra"

	"github.com/mmynk/fairsplit/internal/editor"
	"github.com/mmynk/fairsplit/internal/models"
)

func newCoverCmd() *cobra.Command {
	var (
		coveredID string
		payerID   string
		splitAll  bool
		clearRule bool
	)

	cmd := &cobra.Command{
		Use:   "cover <bill.json>",
		Short: "Set who pays for someone",
		Long: `Add, replace or clear a coverage rule and print the updated bill.
--payer moves the person's share to one payer, --split-all spreads it over
everyone else, --clear removes the rule.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editBill(cmd, args[0], func(bill *models.BillState) error {
				switch {
				case clearRule:
					editor.ClearCoverage(bill, coveredID)
					return nil
				case splitAll:
					return editor.SetCoverage(bill, coveredID, models.SplitAmongOthers())
				default:
					return editor.SetCoverage(bill, coveredID, models.PaidBy(payerID))
				}
			})
		},
	}

	cmd.Flags().StringVar(&coveredID, "covered", "", "id of the person being covered")
	cmd.Flags().StringVar(&payerID, "payer", "", "id of the person paying")
	cmd.Flags().BoolVar(&splitAll, "split-all", false, "split the share among everyone else")
	cmd.Flags().BoolVar(&clearRule, "clear", false, "remove the coverage rule")
	_ = cmd.MarkFlagRequired("covered")
	cmd.MarkFlagsMutuallyExclusive("payer", "split-all", "clear")
	cmd.MarkFlagsOneRequired("payer", "split-all", "clear")
	return cmd
}
