package cli

import (
	"fmt"
	"os"
	"strings"

	"mealcart/domain"

	"github.com/spf13/cobra"
)

// report prints an advisory failure and lets the command succeed
func report(err error) error {
	if domain.IsUnresolvedCatalogReferenceError(err) || domain.IsInvalidSelectionError(err) {
		fmt.Fprintln(os.Stderr, err)
		return nil
	}
	return err
}

func lineCommand(use, short string, op func(cmd *cobra.Command, id string) domain.Totals) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, ok := shop.Line(args[0]); !ok {
				fmt.Fprintf(os.Stderr, "%s is not in the cart\n", cat.Label(args[0]))
				return nil
			}
			printTotals(op(cmd, args[0]))
			return nil
		},
	}
}

func init() {
	// add
	var qty int
	addCmd := &cobra.Command{
		Use:   "add <id>",
		Short: "Add a catalog item to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := shop.AddByID(cmd.Context(), args[0], qty)
			if err != nil {
				return report(err)
			}
			printTotals(t)
			return nil
		},
	}
	addCmd.Flags().IntVar(&qty, "qty", 1, "quantity")
	rootCmd.AddCommand(addCmd)

	// premade
	premadeCmd := &cobra.Command{
		Use:   "premade <recipe>",
		Short: "Order a recipe as a pre-made meal",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := shop.AddPremade(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return report(err)
			}
			printTotals(t)
			return nil
		},
	}
	rootCmd.AddCommand(premadeCmd)

	rootCmd.AddCommand(
		lineCommand("inc", "Add one unit to a cart line", func(cmd *cobra.Command, id string) domain.Totals {
			return shop.Increment(cmd.Context(), id)
		}),
		lineCommand("dec", "Remove one unit from a cart line", func(cmd *cobra.Command, id string) domain.Totals {
			return shop.Decrement(cmd.Context(), id)
		}),
		lineCommand("remove", "Remove a cart line", func(cmd *cobra.Command, id string) domain.Totals {
			return shop.Remove(cmd.Context(), id)
		}),
	)

	// note
	noteCmd := &cobra.Command{
		Use:   "note <id> <text>",
		Short: "Attach a note to a cart line; no text clears it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, ok := shop.Line(args[0]); !ok {
				fmt.Fprintf(os.Stderr, "%s is not in the cart\n", cat.Label(args[0]))
				return nil
			}
			printTotals(shop.SetNote(cmd.Context(), args[0], strings.Join(args[1:], " ")))
			return nil
		},
	}
	rootCmd.AddCommand(noteCmd)

	// clear
	var force bool
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				fmt.Print("Clear the cart? (y/N): ")
				var resp string
				if _, err := fmt.Scanln(&resp); err != nil || (resp != "y" && resp != "Y") {
					fmt.Println("aborted")
					return nil
				}
			}
			shop.Clear(cmd.Context())
			fmt.Println("cleared")
			return nil
		},
	}
	clearCmd.Flags().BoolVar(&force, "force", false, "skip confirmation")
	rootCmd.AddCommand(clearCmd)

	// cart
	var cPromo, cOutput string
	cartCmd := &cobra.Command{
		Use:   "cart",
		Short: "Show the cart and its totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cPromo != "" {
				res := shop.ApplyPromo(cPromo)
				fmt.Fprintln(os.Stderr, res.Message)
			}
			t := shop.Totals()
			if cOutput == "json" {
				return printJSON(t)
			}
			printTotals(t)
			return nil
		},
	}
	cartCmd.Flags().StringVar(&cPromo, "promo", "", "promo code to apply first")
	cartCmd.Flags().StringVar(&cOutput, "output", "", "output format")
	rootCmd.AddCommand(cartCmd)

	// promo
	promoCmd := &cobra.Command{
		Use:   "promo <code>",
		Short: "Apply a promo code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res := shop.ApplyPromo(args[0])
			switch res.Outcome {
			case domain.PromoRejected:
				fmt.Fprintf(os.Stderr, "❌ %s\n", res.Message)
			case domain.PromoSideEffectOnly:
				fmt.Printf("🍴 %s\n", res.Message)
			default:
				fmt.Printf("✅ %s\n", res.Message)
			}
			printTotals(shop.Totals())
			return nil
		},
	}
	rootCmd.AddCommand(promoCmd)

	// checkout
	var address, instructions, kPromo string
	checkoutCmd := &cobra.Command{
		Use:   "checkout",
		Short: "Place the order",
		RunE: func(cmd *cobra.Command, args []string) error {
			if kPromo != "" {
				res := shop.ApplyPromo(kPromo)
				fmt.Fprintln(os.Stderr, res.Message)
			}
			order, err := shop.Checkout(cmd.Context(), address, instructions)
			if err != nil {
				return err
			}
			mode, loc := shop.Fulfillment()
			fmt.Println("Order placed!")
			fmt.Printf("Order: %s\n", order.OrderID)
			if mode == domain.FulfillmentPickup {
				l, _ := cat.Location(loc)
				fmt.Printf("Pickup at: %s\n", l.Name)
			} else {
				fmt.Printf("Delivering to: %s\n", order.Address)
			}
			if order.Instructions != "" {
				fmt.Printf("Instructions: %s\n", order.Instructions)
			}
			if order.FreeUtensils {
				fmt.Println("Free utensils included")
			}
			fmt.Printf("Total: %s\n", money(order.Total))
			fmt.Printf("Estimated delivery: %s mins\n", order.EstimatedDelivery)
			return nil
		},
	}
	checkoutCmd.Flags().StringVar(&address, "address", "", "delivery address")
	checkoutCmd.Flags().StringVar(&instructions, "instructions", "", "delivery instructions")
	checkoutCmd.Flags().StringVar(&kPromo, "promo", "", "promo code to apply first")
	rootCmd.AddCommand(checkoutCmd)
}
