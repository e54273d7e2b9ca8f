package cli

import (
	"fmt"
	"io"
	"strings"

	"connectrpc.com/connect"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/mmynk/fairsplit/internal/models"
	"github.com/mmynk/fairsplit/pkg/api"
)

func newSettleCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "settle <bill.json>",
		Short: "Show what everyone pays",
		Long: `Settle a bill and print each person's own share, what they actually pay
after coverage, and why. Use "-" to read the bill from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bill, err := readBill(cmd, args[0])
			if err != nil {
				return err
			}

			resp, err := opts.splitClient(cmd).ComputeFinalSplits(cmd.Context(), connect.NewRequest(&api.ComputeFinalSplitsRequest{Bill: bill}))
			if err != nil {
				return fmt.Errorf("failed to settle bill: %w", err)
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), resp.Msg)
			}
			renderSettlement(cmd.OutOrStdout(), bill, resp.Msg)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the settlement as JSON")
	return cmd
}

func money(currency string, v float64) string {
	if currency == "" {
		currency = models.DefaultCurrency
	}
	return fmt.Sprintf("%s%.2f", currency, v)
}

// renderSettlement prints a table with one row per person, names in their
// bill color, followed by the bill totals.
func renderSettlement(w io.Writer, bill *api.Bill, resp *api.ComputeFinalSplitsResponse) {
	r := lipgloss.NewRenderer(w)

	colors := make(map[string]string, len(bill.People))
	for _, p := range bill.People {
		colors[p.ID] = p.Color
	}

	rows := make([][]string, 0, len(resp.Splits))
	for _, s := range resp.Splits {
		rows = append(rows, []string{
			s.Name,
			money(bill.Currency, s.RawTotal),
			money(bill.Currency, s.FinalTotal),
			strings.Join(s.Notes, "; "),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.NewStyle().Faint(true)).
		Headers("Person", "Own share", "Pays", "Notes").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := r.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return style.Bold(true)
			case col == 0 && row >= 0 && row < len(resp.Splits):
				if c := colors[resp.Splits[row].PersonID]; c != "" {
					return style.Foreground(lipgloss.Color(c))
				}
			}
			return style
		})

	fmt.Fprintln(w, t.Render())
	fmt.Fprintf(w, "Subtotal %s  Tax %s  Tip %s  Total %s\n",
		money(bill.Currency, resp.Totals.Subtotal),
		money(bill.Currency, resp.Totals.Tax),
		money(bill.Currency, resp.Totals.Tip),
		money(bill.Currency, resp.Totals.GrandTotal),
	)
}

func newShareCmd(opts *rootOptions) *cobra.Command {
	var personID string

	cmd := &cobra.Command{
		Use:   "share <bill.json>",
		Short: "Itemize one person's share before coverage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bill, err := readBill(cmd, args[0])
			if err != nil {
				return err
			}

			resp, err := opts.splitClient(cmd).ComputePersonTotals(cmd.Context(), connect.NewRequest(&api.ComputePersonTotalsRequest{
				PersonID: personID,
				Bill:     bill,
			}))
			if err != nil {
				return fmt.Errorf("failed to compute share: %w", err)
			}

			out := cmd.OutOrStdout()
			for _, it := range resp.Msg.Items {
				line := fmt.Sprintf("%-20s %10s", it.Name, money(bill.Currency, it.Cost))
				if it.Uneven || it.TotalShares > 1 {
					line += fmt.Sprintf("  (%d of %d shares)", it.Shares, it.TotalShares)
				}
				fmt.Fprintln(out, line)
			}
			fmt.Fprintf(out, "%-20s %10s\n", "Subtotal", money(bill.Currency, resp.Msg.Subtotal))
			fmt.Fprintf(out, "%-20s %10s\n", "Tax", money(bill.Currency, resp.Msg.Tax))
			fmt.Fprintf(out, "%-20s %10s\n", "Tip", money(bill.Currency, resp.Msg.Tip))
			fmt.Fprintf(out, "%-20s %10s\n", "Total", money(bill.Currency, resp.Msg.Total))
			return nil
		},
	}

	cmd.Flags().StringVarP(&personID, "person", "p", "", "person id")
	_ = cmd.MarkFlagRequired("person")
	return cmd
}
