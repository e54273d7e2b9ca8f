package cli

import (
	"bytes"
	"fmt"

	"connectrpc.com/connect"
	"github.com/spf13/cobra"

	"github.com/mmynk/fairsplit/internal/receipt"
	"github.com/mmynk/fairsplit/pkg/api"
)

func newSeedCmd(opts *rootOptions) *cobra.Command {
	var people []string

	cmd := &cobra.Command{
		Use:   "seed <receipt.json>",
		Short: "Start a bill from a parsed receipt",
		Long: `Build a draft bill from receipt parser output
({"items":[{"name":..,"price":..}],"tax":..,"tip":..,"currency":..}).
Items start unassigned. The draft is printed as JSON, ready for "settle".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			parsed, err := receipt.Decode(bytes.NewReader(data))
			if err != nil {
				return fmt.Errorf("failed to parse receipt %s: %w", args[0], err)
			}

			resp, err := opts.splitClient(cmd).SeedFromReceipt(cmd.Context(), connect.NewRequest(&api.SeedFromReceiptRequest{
				Receipt: receiptToAPI(parsed),
				People:  people,
			}))
			if err != nil {
				return fmt.Errorf("failed to seed bill: %w", err)
			}
			return writeJSON(cmd.OutOrStdout(), resp.Msg.Bill)
		},
	}

	cmd.Flags().StringArrayVarP(&people, "person", "p", nil, "add a person by name (repeatable)")
	return cmd
}

func receiptToAPI(r *receipt.ParseResult) *api.Receipt {
	out := &api.Receipt{
		Items:    make([]api.ReceiptItem, 0, len(r.Items)),
		Tax:      r.Tax,
		Tip:      r.Tip,
		Currency: r.Currency,
	}
	for _, it := range r.Items {
		out.Items = append(out.Items, api.ReceiptItem{Name: it.Name, Price: it.Price})
	}
	return out
}
