package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"mealcart/domain"

	"github.com/shopspring/decimal"
)

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}

func printItem(it domain.Item) {
	b := it.Base()
	extra := ""
	switch v := it.(type) {
	case domain.MenuItem:
		extra = fmt.Sprintf("%d cal | %s min", v.Calories, v.PrepTime)
	case domain.RestaurantItem:
		extra = fmt.Sprintf("%s min", v.PrepTime)
	}
	fmt.Printf("%s | %s %s | %s | %s | %s\n", b.ID, b.Image, b.Name, money(b.Price), it.Label(), extra)
}

func printTotals(t domain.Totals) {
	if len(t.Lines) == 0 {
		fmt.Println("Cart is empty")
		return
	}
	for _, l := range t.Lines {
		fmt.Printf("%s | %s %s | %d x %s = %s\n", l.ID, l.Image, l.Name, l.Qty, money(l.Price), money(l.LineTotal()))
		if l.Note != "" {
			fmt.Printf("    note: %s\n", l.Note)
		}
	}
	fmt.Printf("Items: %d\n", t.ItemCount)
	fmt.Printf("Subtotal: %s\n", money(t.Subtotal))
	if !t.Discount.IsZero() {
		label := "Discount"
		if !t.DiscountRate.IsZero() {
			label = fmt.Sprintf("Discount (%s%%)", t.DiscountRate.Shift(2).String())
		} else if t.BundleUnits > 0 {
			label = fmt.Sprintf("Bundle discount (%d bags)", t.BundleUnits)
		}
		fmt.Printf("%s: -%s\n", label, money(t.Discount))
	}
	if !t.DeliveryFee.IsZero() {
		fmt.Printf("Delivery fee: %s\n", money(t.DeliveryFee))
	}
	fmt.Printf("Total: %s\n", money(t.Total))
	if !t.Macros.IsZero() {
		m := t.Macros
		fmt.Printf("Estimated macros (meals in cart): %d cal | %dg protein | %dg carbs | %dg fat\n",
			m.Calories, m.Protein, m.Carbs, m.Fat)
	}
}

// sectionKey normalizes a section name or alias for matching
func sectionKey(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
