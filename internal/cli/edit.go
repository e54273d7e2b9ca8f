package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmynk/fairsplit/internal/editor"
	"github.com/mmynk/fairsplit/internal/models"
	"github.com/mmynk/fairsplit/internal/service"
)

// editBill reads the bill at path, applies fn and prints the result.
func editBill(cmd *cobra.Command, path string, fn func(bill *models.BillState) error) error {
	in, err := readBill(cmd, path)
	if err != nil {
		return err
	}
	bill := service.BillFromAPI(in)
	if err := fn(&bill); err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), service.BillToAPI(bill))
}

func newNewCmd() *cobra.Command {
	var people []string

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Print an empty bill",
		Long: `Print an empty bill with a 15% tip and a single person "Me".
Each --person adds someone else to the table.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bill := editor.NewBill()
			for _, name := range people {
				if _, err := editor.AddPerson(&bill, name); err != nil {
					return err
				}
			}
			return writeJSON(cmd.OutOrStdout(), service.BillToAPI(bill))
		},
	}

	cmd.Flags().StringArrayVarP(&people, "person", "p", nil, "add a person by name (repeatable)")
	return cmd
}

func newItemCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Add, change or remove items",
	}
	cmd.AddCommand(newItemAddCmd(), newItemEditCmd(), newItemRmCmd())
	return cmd
}

func newItemAddCmd() *cobra.Command {
	var (
		name  string
		price float64
	)

	cmd := &cobra.Command{
		Use:   "add <bill.json>",
		Short: "Add an item nobody is assigned to yet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editBill(cmd, args[0], func(bill *models.BillState) error {
				_, err := editor.AddItem(bill, name, price)
				return err
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "item name")
	cmd.Flags().Float64Var(&price, "price", 0, "item price")
	_ = cmd.MarkFlagRequired("price")
	return cmd
}

func newItemEditCmd() *cobra.Command {
	var (
		itemID string
		name   string
		price  float64
	)

	cmd := &cobra.Command{
		Use:   "edit <bill.json>",
		Short: "Rename or reprice an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editBill(cmd, args[0], func(bill *models.BillState) error {
				idx := bill.FindItem(itemID)
				if idx < 0 {
					return fmt.Errorf("%w: %s", editor.ErrItemNotFound, itemID)
				}
				item := bill.Items[idx]
				if cmd.Flags().Changed("name") {
					item.Name = name
				}
				if cmd.Flags().Changed("price") {
					item.Price = price
				}
				return editor.UpdateItem(bill, item)
			})
		},
	}

	cmd.Flags().StringVar(&itemID, "id", "", "item id")
	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().Float64Var(&price, "price", 0, "new price")
	_ = cmd.MarkFlagRequired("id")
	cmd.MarkFlagsOneRequired("name", "price")
	return cmd
}

func newItemRmCmd() *cobra.Command {
	var itemID string

	cmd := &cobra.Command{
		Use:   "rm <bill.json>",
		Short: "Remove an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editBill(cmd, args[0], func(bill *models.BillState) error {
				return editor.DeleteItem(bill, itemID)
			})
		},
	}

	cmd.Flags().StringVar(&itemID, "id", "", "item id")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newAssignCmd() *cobra.Command {
	var itemID, personID string

	cmd := &cobra.Command{
		Use:   "assign <bill.json>",
		Short: "Toggle whether a person shares an item",
		Long: `Assign the person to the item with one share, or unassign them if
they already share it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editBill(cmd, args[0], func(bill *models.BillState) error {
				return editor.ToggleAssignment(bill, itemID, personID)
			})
		},
	}

	cmd.Flags().StringVar(&itemID, "item", "", "item id")
	cmd.Flags().StringVar(&personID, "person", "", "person id")
	_ = cmd.MarkFlagRequired("item")
	_ = cmd.MarkFlagRequired("person")
	return cmd
}

func newWeightCmd() *cobra.Command {
	var (
		itemID   string
		personID string
		delta    int
	)

	cmd := &cobra.Command{
		Use:   "weight <bill.json>",
		Short: "Change how many shares of an item a person takes",
		Long: `Add --delta shares (negative to remove) for an assigned person.
A person never drops below one share.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editBill(cmd, args[0], func(bill *models.BillState) error {
				_, err := editor.AdjustShare(bill, itemID, personID, delta)
				return err
			})
		},
	}

	cmd.Flags().StringVar(&itemID, "item", "", "item id")
	cmd.Flags().StringVar(&personID, "person", "", "person id")
	cmd.Flags().IntVar(&delta, "delta", 1, "shares to add")
	_ = cmd.MarkFlagRequired("item")
	_ = cmd.MarkFlagRequired("person")
	return cmd
}

func newPersonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "person",
		Short: "Add or remove people",
	}
	cmd.AddCommand(newPersonAddCmd(), newPersonRmCmd())
	return cmd
}

func newPersonAddCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "add <bill.json>",
		Short: "Add a person to the table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editBill(cmd, args[0], func(bill *models.BillState) error {
				_, err := editor.AddPerson(bill, name)
				return err
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newPersonRmCmd() *cobra.Command {
	var personID string

	cmd := &cobra.Command{
		Use:   "rm <bill.json>",
		Short: "Remove a person with their assignments and coverage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editBill(cmd, args[0], func(bill *models.BillState) error {
				return editor.RemovePerson(bill, personID)
			})
		},
	}

	cmd.Flags().StringVar(&personID, "id", "", "person id")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newTipCmd() *cobra.Command {
	var percent, amount float64

	cmd := &cobra.Command{
		Use:   "tip <bill.json>",
		Short: "Set the tip as a percentage or a fixed amount",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editBill(cmd, args[0], func(bill *models.BillState) error {
				if cmd.Flags().Changed("percent") {
					return editor.SetTipPercent(bill, percent)
				}
				return editor.SetTipAmount(bill, amount)
			})
		},
	}

	cmd.Flags().Float64Var(&percent, "percent", 0, "tip as a percentage of the subtotal")
	cmd.Flags().Float64Var(&amount, "amount", 0, "fixed tip amount")
	cmd.MarkFlagsMutuallyExclusive("percent", "amount")
	cmd.MarkFlagsOneRequired("percent", "amount")
	return cmd
}
