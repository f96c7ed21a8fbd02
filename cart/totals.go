package cart

import (
	"mealcart/domain"
	"mealcart/pricing"

	"github.com/shopspring/decimal"
)

// Totals recomputes the aggregate view of the cart. Nothing here is cached:
// bundle discounts in particular always follow the current bag count.
func (c *Cart) Totals() domain.Totals {
	p := c.cat.Profile()
	lines := c.Lines()

	t := domain.Totals{
		Lines:        lines,
		Subtotal:     decimal.Zero,
		DiscountRate: decimal.Zero,
		Discount:     decimal.Zero,
		DeliveryFee:  decimal.Zero,
	}
	for _, l := range lines {
		t.ItemCount += l.Qty
		t.Subtotal = t.Subtotal.Add(l.LineTotal())
		if l.Bag != nil {
			t.BundleUnits += l.Qty
		}
	}

	switch p.Discount {
	case domain.DiscountBundle:
		t.Discount = pricing.ResolveBundle(t.BundleUnits, p.BundleTiers)
	default:
		t.DiscountRate = c.rate
		t.Discount = pricing.PromoDiscount(c.rate, t.Subtotal)
	}

	if len(lines) > 0 && c.deliveryAvailable() {
		t.DeliveryFee = p.DeliveryFee
	}

	t.Total = t.Subtotal.Sub(t.Discount).Add(t.DeliveryFee)
	if t.Total.IsNegative() {
		t.Total = decimal.Zero
	}
	t.Macros = c.macros(lines)
	return t
}

// deliveryAvailable is true in delivery mode at a location that delivers
func (c *Cart) deliveryAvailable() bool {
	if c.fulfillment != domain.FulfillmentDelivery {
		return false
	}
	loc, ok := c.cat.Location(c.location)
	return ok && loc.CanDeliver
}

// macros sums per-serving recipe macros over lines that resolve to a recipe,
// counting one serving per unit ordered. This is an estimate. Lines without
// a recipe contribute nothing.
func (c *Cart) macros(lines []domain.CartLine) domain.MacroTotals {
	var sum domain.Macros
	for _, l := range lines {
		r, ok := c.cat.ResolveRecipe(l.ID, l.Name)
		if !ok {
			continue
		}
		sum = sum.Plus(r.PerServing.Times(float64(l.Qty)))
	}
	return sum.Round()
}
