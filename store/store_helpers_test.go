package store

import (
	"testing"

	"mealcart/domain"

	"github.com/shopspring/decimal"
)

func sampleSnapshot() domain.Snapshot {
	snap := domain.EmptySnapshot()
	snap.Lines["1"] = domain.CartLine{ID: "1", Name: "Chicken Alfredo", Price: decimal.RequireFromString("9.99"), Image: "🍝", Qty: 2}
	snap.Lines["bag-1"] = domain.CartLine{
		ID:    "bag-1",
		Name:  "Custom Bag: Sirloin Steak, White Rice, Broccoli",
		Price: decimal.RequireFromString("17.99"),
		Qty:   1,
		Note:  "no onions",
		Bag: &domain.BagConfiguration{
			Preset:     domain.PresetCustom,
			Components: domain.Components{Protein: "steak", Carb: "white_rice", Vegetable: "broccoli", Sauce: "bbq"},
			Portion:    domain.PortionStandard,
			Spice:      2,
			Extras:     []string{"avocado"},
		},
	}
	return snap
}

func assertSameSnapshot(t *testing.T, want, got domain.Snapshot) {
	t.Helper()
	if len(got.Lines) != len(want.Lines) {
		t.Fatalf("expected %d lines, got %d", len(want.Lines), len(got.Lines))
	}
	for id, w := range want.Lines {
		g, ok := got.Lines[id]
		if !ok {
			t.Fatalf("line %s missing", id)
		}
		if g.Name != w.Name || g.Qty != w.Qty || g.Note != w.Note || g.Image != w.Image || !g.Price.Equal(w.Price) {
			t.Fatalf("line %s mismatch: want %+v got %+v", id, w, g)
		}
		if (w.Bag == nil) != (g.Bag == nil) {
			t.Fatalf("line %s bag presence mismatch", id)
		}
		if w.Bag != nil && (g.Bag.Components != w.Bag.Components || g.Bag.Spice != w.Bag.Spice || len(g.Bag.Extras) != len(w.Bag.Extras)) {
			t.Fatalf("line %s bag mismatch: want %+v got %+v", id, *w.Bag, *g.Bag)
		}
	}
}
