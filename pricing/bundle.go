package pricing

import (
	"sort"

	"mealcart/domain"

	"github.com/shopspring/decimal"
)

// ResolveBundle returns the bundle discount for n bag units.
//
// The decomposition is greedy: thresholds are tried in strictly descending
// order, each one consuming as many whole multiples of itself as still fit
// before the next smaller threshold is tried. This is not a search for the
// best partition. With tiers {3:1.50, 5:4.00, 7:6.50, 10:10.00} and n=12 the
// result is 10.00 (one 10-unit tier, 2 units left over), never four 3-packs.
//
// The result is not clamped against the subtotal; callers clamp the total.
func ResolveBundle(n int, tiers []domain.BundleTier) decimal.Decimal {
	total := decimal.Zero
	if n <= 0 || len(tiers) == 0 {
		return total
	}

	ordered := make([]domain.BundleTier, 0, len(tiers))
	for _, t := range tiers {
		if t.Threshold > 0 {
			ordered = append(ordered, t)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Threshold > ordered[j].Threshold
	})

	remaining := n
	for _, t := range ordered {
		if remaining < t.Threshold {
			continue
		}
		packs := remaining / t.Threshold
		total = total.Add(t.Discount.Mul(decimal.NewFromInt(int64(packs))))
		remaining %= t.Threshold
	}
	return total
}
