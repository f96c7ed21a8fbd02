package cart

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"mealcart/catalog"
	"mealcart/domain"
	"mealcart/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func newCart(t *testing.T, profile string, st domain.CartStore) *Cart {
	t.Helper()
	cat, err := catalog.Load(profile)
	require.NoError(t, err)
	return New(context.Background(), cat, st, quietLogger())
}

func mustAdd(t *testing.T, c *Cart, id string, qty int) domain.Totals {
	t.Helper()
	tot, err := c.AddByID(context.Background(), id, qty)
	require.NoError(t, err)
	return tot
}

// failingStore fails every call
type failingStore struct{ err error }

func (f failingStore) Load(context.Context, string) (domain.Snapshot, error) {
	return domain.Snapshot{}, f.err
}

func (f failingStore) Save(context.Context, string, domain.Snapshot) error {
	return f.err
}

func TestAddMergesByID(t *testing.T) {
	c := newCart(t, "sundevil", store.NewInMemoryStore())

	mustAdd(t, c, "1", 1)
	tot := mustAdd(t, c, "1", 1)

	require.Len(t, tot.Lines, 1)
	assert.Equal(t, 2, tot.Lines[0].Qty)
	assert.True(t, tot.Subtotal.Equal(d("19.98")))
	assert.Equal(t, 2, tot.ItemCount)
}

func TestAddRefreshesListingAndDefaultsQty(t *testing.T) {
	c := newCart(t, "sundevil", nil)
	ctx := context.Background()

	old := domain.MenuItem{Listing: domain.Listing{ID: "x", Name: "Old", Price: d("5.00"), Image: "a"}}
	c.AddLine(ctx, old, 0)
	renamed := domain.MenuItem{Listing: domain.Listing{ID: "x", Name: "New", Price: d("6.00"), Image: "b"}}
	tot := c.AddLine(ctx, renamed, -3)

	require.Len(t, tot.Lines, 1)
	line := tot.Lines[0]
	assert.Equal(t, 2, line.Qty)
	assert.Equal(t, "New", line.Name)
	assert.Equal(t, "b", line.Image)
	assert.True(t, line.Price.Equal(d("6.00")))
	assert.True(t, tot.Subtotal.Equal(d("12.00")))
}

func TestSubtotalAndTotalFormula(t *testing.T) {
	c := newCart(t, "sundevil", nil)

	mustAdd(t, c, "1", 2)
	mustAdd(t, c, "101", 3)
	tot := mustAdd(t, c, "204", 1)

	// 2*9.99 + 3*1.99 + 14.49
	assert.True(t, tot.Subtotal.Equal(d("40.44")), tot.Subtotal.String())
	assert.True(t, tot.Discount.IsZero())
	assert.True(t, tot.DeliveryFee.IsZero())
	assert.True(t, tot.Total.Equal(tot.Subtotal))
	assert.Equal(t, []string{"1", "101", "204"}, lineIDs(tot.Lines))
}

func TestIncrementDecrementRemove(t *testing.T) {
	c := newCart(t, "sundevil", nil)
	ctx := context.Background()
	mustAdd(t, c, "7", 1)

	tot := c.Increment(ctx, "7")
	assert.Equal(t, 2, tot.Lines[0].Qty)

	c.Decrement(ctx, "7")
	tot = c.Decrement(ctx, "7")
	assert.Empty(t, tot.Lines)
	_, ok := c.Line("7")
	assert.False(t, ok)

	mustAdd(t, c, "8", 4)
	tot = c.Remove(ctx, "8")
	assert.Empty(t, tot.Lines)

	// unknown ids are no-ops
	mustAdd(t, c, "9", 1)
	for _, op := range []func(context.Context, string) domain.Totals{c.Increment, c.Decrement, c.Remove} {
		tot = op(ctx, "nope")
		require.Len(t, tot.Lines, 1)
		assert.Equal(t, 1, tot.Lines[0].Qty)
	}

	tot = c.Clear(ctx)
	assert.Empty(t, tot.Lines)
	assert.True(t, tot.Total.IsZero())
}

func TestAddUnknownReferences(t *testing.T) {
	c := newCart(t, "sundevil", nil)
	ctx := context.Background()

	_, err := c.AddByID(ctx, "999", 1)
	assert.True(t, domain.IsUnresolvedCatalogReferenceError(err))

	_, err = c.AddPremade(ctx, "Pad Thai")
	assert.True(t, domain.IsUnresolvedCatalogReferenceError(err))

	_, _, err = c.AddBag(ctx, domain.BagConfiguration{})
	assert.True(t, domain.IsUnresolvedCatalogReferenceError(err), "sundevil has no bag builder")

	assert.Empty(t, c.Lines())
}

func TestMacros(t *testing.T) {
	c := newCart(t, "sundevil", nil)
	ctx := context.Background()

	tot := mustAdd(t, c, "1", 2)
	assert.Equal(t, int64(1400), tot.Macros.Calories)
	assert.Equal(t, int64(76), tot.Macros.Protein)

	tot = mustAdd(t, c, "101", 5)
	assert.Equal(t, int64(1400), tot.Macros.Calories, "groceries add no macros")

	tot, err := c.AddPremade(ctx, "Healthier Cookies")
	require.NoError(t, err)
	assert.Equal(t, int64(1550), tot.Macros.Calories)

	// a recipe-less menu item contributes nothing
	tot = mustAdd(t, c, "2", 1)
	assert.Equal(t, int64(1550), tot.Macros.Calories)
}

func TestMacrosRoundOnlyAtRead(t *testing.T) {
	p := catalog.SunDevilProfile()
	p.Recipes[3].PerServing = domain.Macros{Calories: 100.4, Protein: 0.3}
	cat, err := catalog.New(p)
	require.NoError(t, err)
	c := New(context.Background(), cat, nil, quietLogger())

	tot, err := c.AddPremade(context.Background(), p.Recipes[3].Name)
	require.NoError(t, err)
	id := tot.Lines[0].ID
	c.Increment(context.Background(), id)
	// 3 * 0.3 = 0.9 rounds to 1; pre-rounding each unit would give 0
	tot = c.Increment(context.Background(), id)
	assert.Equal(t, int64(301), tot.Macros.Calories)
	assert.Equal(t, int64(1), tot.Macros.Protein)
}

func TestApplyPromo(t *testing.T) {
	c := newCart(t, "sundevil", nil)
	mustAdd(t, c, "1", 2)
	mustAdd(t, c, "101", 3)

	res := c.ApplyPromo("asu10")
	assert.Equal(t, domain.PromoApplied, res.Outcome)
	tot := c.Totals()
	assert.True(t, tot.DiscountRate.Equal(d("0.10")))
	// 0.10 * 25.95 = 2.595
	assert.True(t, tot.Discount.Equal(d("2.60")), tot.Discount.String())
	assert.True(t, tot.Total.Equal(d("23.35")), tot.Total.String())
	assert.Equal(t, "ASU10", c.PromoCode())

	res = c.ApplyPromo("FIRST20")
	assert.True(t, res.Rate.Equal(d("0.20")), "replaces, does not stack")

	res = c.ApplyPromo("forks")
	assert.Equal(t, domain.PromoSideEffectOnly, res.Outcome)
	assert.True(t, c.Totals().DiscountRate.Equal(d("0.20")))
	assert.True(t, c.FreeUtensils())

	res = c.ApplyPromo("nope")
	assert.Equal(t, domain.PromoRejected, res.Outcome)
	assert.True(t, domain.IsUnknownPromoCodeError(res.Err))
	assert.True(t, c.Totals().Discount.IsZero())
	assert.Empty(t, c.PromoCode())
}

func TestBundleDiscountFollowsBagCount(t *testing.T) {
	c := newCart(t, "mealprep", nil)
	ctx := context.Background()

	custom := domain.BagConfiguration{
		Preset:     domain.PresetCustom,
		Components: domain.Components{Protein: "steak", Carb: "white_rice", Vegetable: "broccoli", Sauce: "bbq"},
	}
	line, _, err := c.AddBag(ctx, custom)
	require.NoError(t, err)
	assert.True(t, line.Price.Equal(d("17.99")))
	assert.Equal(t, BagImage, line.Image)
	require.NotNil(t, line.Bag)

	var tot domain.Totals
	for i := 0; i < 3; i++ {
		_, tot, err = c.AddBag(ctx, domain.BagConfiguration{Goal: domain.GoalLean, Cuisine: domain.CuisineAsian})
		require.NoError(t, err)
	}
	require.Len(t, tot.Lines, 4, "every confirmed bag is its own line")
	assert.Equal(t, 4, tot.BundleUnits)
	assert.True(t, tot.Subtotal.Equal(d("56.96")), tot.Subtotal.String())
	assert.True(t, tot.Discount.Equal(d("1.50")))
	assert.True(t, tot.DeliveryFee.Equal(d("3.99")))
	assert.True(t, tot.Total.Equal(d("59.45")), tot.Total.String())

	// a premade meal is not a bag
	tot = mustAdd(t, c, "mp-1", 1)
	assert.Equal(t, 4, tot.BundleUnits)

	// bumping one bag to qty 2 crosses the 5 threshold
	tot = c.Increment(ctx, line.ID)
	assert.Equal(t, 5, tot.BundleUnits)
	assert.True(t, tot.Discount.Equal(d("4.00")))

	tot = c.Remove(ctx, line.ID)
	assert.Equal(t, 3, tot.BundleUnits)
	assert.True(t, tot.Discount.Equal(d("1.50")))
}

func TestTotalClampsAtZero(t *testing.T) {
	p := catalog.MealPrepProfile()
	p.BundleTiers = []domain.BundleTier{{Threshold: 1, Discount: d("100.00")}}
	cat, err := catalog.New(p)
	require.NoError(t, err)
	c := New(context.Background(), cat, nil, quietLogger())

	_, tot, err := c.AddBag(context.Background(), domain.BagConfiguration{})
	require.NoError(t, err)
	assert.True(t, tot.Discount.Equal(d("100.00")))
	assert.True(t, tot.Total.IsZero())
}

func TestDeliveryFee(t *testing.T) {
	c := newCart(t, "mealprep", nil)

	assert.True(t, c.Totals().DeliveryFee.IsZero(), "no fee on an empty cart")
	mustAdd(t, c, "mp-3", 1)
	assert.True(t, c.Totals().DeliveryFee.Equal(d("3.99")))

	require.NoError(t, c.SetFulfillment(domain.FulfillmentPickup, ""))
	assert.True(t, c.Totals().DeliveryFee.IsZero())

	require.NoError(t, c.SetFulfillment(domain.FulfillmentDelivery, "poly"))
	assert.True(t, c.Totals().DeliveryFee.IsZero(), "poly cannot deliver")
	mode, loc := c.Fulfillment()
	assert.Equal(t, domain.FulfillmentDelivery, mode)
	assert.Equal(t, "poly", loc)

	err := c.SetFulfillment(domain.FulfillmentDelivery, "mars")
	assert.True(t, domain.IsUnresolvedCatalogReferenceError(err))
	_, loc = c.Fulfillment()
	assert.Equal(t, "poly", loc)

	err = c.SetFulfillment("drone", "")
	assert.True(t, domain.IsInvalidSelectionError(err))
}

func TestSetNote(t *testing.T) {
	c := newCart(t, "sundevil", nil)
	ctx := context.Background()
	mustAdd(t, c, "5", 1)

	tot := c.SetNote(ctx, "5", "  extra salsa ")
	assert.Equal(t, "extra salsa", tot.Lines[0].Note)

	tot = mustAdd(t, c, "5", 1)
	assert.Equal(t, "extra salsa", tot.Lines[0].Note, "merge keeps the note")

	tot = c.SetNote(ctx, "5", "")
	assert.Empty(t, tot.Lines[0].Note)

	tot = c.SetNote(ctx, "missing", "x")
	assert.Len(t, tot.Lines, 1)
}

func TestCheckout(t *testing.T) {
	st := store.NewInMemoryStore()
	cat, err := catalog.Load("sundevil")
	require.NoError(t, err)
	placed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := New(context.Background(), cat, st, quietLogger(), WithClock(func() time.Time { return placed }))
	ctx := context.Background()

	mustAdd(t, c, "1", 2)
	c.ApplyPromo("FORKS")
	before := c.Totals()

	_, err = c.Checkout(ctx, "   ", "")
	require.Error(t, err)
	assert.True(t, domain.IsMissingAddressError(err))
	assert.Equal(t, before, c.Totals(), "failed checkout leaves the cart alone")

	order, err := c.Checkout(ctx, " Manzanita Hall 412 ", "leave at desk")
	require.NoError(t, err)
	assert.Regexp(t, `^ORD-[0-9A-F]{8}$`, order.OrderID)
	assert.True(t, order.Total.Equal(before.Total))
	assert.Equal(t, "Manzanita Hall 412", order.Address)
	assert.Equal(t, "leave at desk", order.Instructions)
	assert.Equal(t, "25-35", order.EstimatedDelivery.String())
	assert.True(t, order.FreeUtensils)
	assert.Equal(t, placed, order.PlacedAt)
	assert.Len(t, order.Lines, 1)

	assert.Empty(t, c.Lines())
	assert.False(t, c.FreeUtensils())
	snap, err := st.Load(ctx, domain.CartStorageKey)
	require.NoError(t, err)
	assert.Empty(t, snap.Lines)

	_, err = c.Checkout(ctx, "Manzanita Hall 412", "")
	assert.True(t, domain.IsInvalidSelectionError(err), "empty cart")
}

func TestPersistenceRoundTrip(t *testing.T) {
	st := store.NewInMemoryStore()
	c := newCart(t, "sundevil", st)
	ctx := context.Background()

	mustAdd(t, c, "203", 1)
	mustAdd(t, c, "1", 2)
	c.SetNote(ctx, "1", "no parmesan")

	again := newCart(t, "sundevil", st)
	lines := again.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"1", "203"}, lineIDs(lines), "rehydrated lines are ordered by id")
	assert.Equal(t, "no parmesan", lines[0].Note)
	assert.True(t, again.Totals().Subtotal.Equal(c.Totals().Subtotal))
}

func TestRehydrateDropsInvalidLines(t *testing.T) {
	st := store.NewInMemoryStore()
	snap := domain.EmptySnapshot()
	snap.Lines["1"] = domain.CartLine{ID: "1", Name: "Chicken Alfredo", Price: d("9.99"), Qty: 1}
	snap.Lines["zero"] = domain.CartLine{ID: "zero", Name: "Zero", Price: d("1.00"), Qty: 0}
	snap.Lines["neg"] = domain.CartLine{ID: "neg", Name: "Neg", Price: d("-1.00"), Qty: 1}
	snap.Lines["noid"] = domain.CartLine{Name: "No ID", Price: d("1.00"), Qty: 1}
	require.NoError(t, st.Save(context.Background(), domain.CartStorageKey, snap))

	c := newCart(t, "sundevil", st)
	assert.Equal(t, []string{"1", "noid"}, lineIDs(c.Lines()))
}

func TestStoreFailuresAreAbsorbed(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	cat, err := catalog.Load("sundevil")
	require.NoError(t, err)

	c := New(context.Background(), cat, failingStore{err: errors.New("disk full")}, logger)
	assert.Empty(t, c.Lines())
	assert.Contains(t, buf.String(), "cart snapshot unreadable")

	tot, err := c.AddByID(context.Background(), "1", 1)
	require.NoError(t, err)
	assert.Len(t, tot.Lines, 1, "in-memory state kept after a failed save")
	assert.Contains(t, buf.String(), "cart snapshot not saved")
	assert.Contains(t, buf.String(), "disk full")
}

func TestStorageKeyOption(t *testing.T) {
	st := store.NewInMemoryStore()
	cat, err := catalog.Load("sundevil")
	require.NoError(t, err)
	c := New(context.Background(), cat, st, quietLogger(), WithStorageKey("other"))
	_, err = c.AddByID(context.Background(), "1", 1)
	require.NoError(t, err)

	def, _ := st.Load(context.Background(), domain.CartStorageKey)
	other, _ := st.Load(context.Background(), "other")
	assert.Empty(t, def.Lines)
	assert.Len(t, other.Lines, 1)
}

func TestImport(t *testing.T) {
	c := newCart(t, "sundevil", nil)
	ctx := context.Background()
	mustAdd(t, c, "1", 1)

	tot, err := c.Import(ctx, []domain.CartLine{
		{ID: "1", Name: "Chicken Alfredo", Price: d("9.99"), Qty: 2},
		{ID: "custom-1", Name: "Birthday Cake", Price: d("20.00"), Qty: 0},
		{ID: "", Name: "Nameless", Price: d("1.00"), Qty: 1},
		{ID: "bad", Name: "Refund", Price: d("-5.00"), Qty: 1},
	})
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 2)
	assert.True(t, domain.IsInvalidSelectionError(err))

	require.Len(t, tot.Lines, 2)
	assert.Equal(t, 3, tot.Lines[0].Qty)
	assert.Equal(t, 1, tot.Lines[1].Qty)
	assert.True(t, tot.Subtotal.Equal(d("49.97")))

	t.Run("catalog items keep their listed price", func(t *testing.T) {
		c := newCart(t, "sundevil", nil)
		mustAdd(t, c, "1", 1)

		tot, err := c.Import(ctx, []domain.CartLine{
			{ID: "1", Name: "Cheap Alfredo", Price: d("0.01"), Qty: 1},
			{ID: "104", Name: "Milk", Price: d("-1.00"), Qty: 1},
			{ID: domain.PremadePrefix + "Burrito Bowl", Name: "Burrito Bowl", Price: d("0.50"), Qty: 2, Note: "no beans"},
		})
		require.NoError(t, err)

		l, ok := c.Line("1")
		require.True(t, ok)
		assert.Equal(t, 2, l.Qty)
		assert.Equal(t, "Chicken Alfredo", l.Name)
		assert.True(t, l.Price.Equal(d("9.99")), "got %s", l.Price)

		milk, _ := c.Line("104")
		assert.True(t, milk.Price.Equal(d("2.99")))

		bowl, _ := c.Line(domain.PremadePrefix + "Burrito Bowl")
		assert.True(t, bowl.Price.Equal(d("9.99")))
		assert.Equal(t, "no beans", bowl.Note)

		// 2×9.99 + 2.99 + 2×9.99
		assert.True(t, tot.Subtotal.Equal(d("42.95")), "got %s", tot.Subtotal)
	})
}

func TestSnapshotIsACopy(t *testing.T) {
	c := newCart(t, "mealprep", nil)
	line, _, err := c.AddBag(context.Background(), domain.BagConfiguration{
		Preset:     domain.PresetCustom,
		Components: domain.Components{Protein: "chicken", Carb: "white_rice", Vegetable: "broccoli", Sauce: "teriyaki"},
		Extras:     []string{"avocado"},
	})
	require.NoError(t, err)

	snap := c.Snapshot()
	snap.Lines[line.ID].Bag.Components.Protein = "steak"
	snap.Lines[line.ID].Bag.Extras[0] = "side_salad"

	got, _ := c.Line(line.ID)
	assert.Equal(t, "chicken", got.Bag.Components.Protein)
	assert.Equal(t, []string{"avocado"}, got.Bag.Extras)
}

func lineIDs(lines []domain.CartLine) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, l.ID)
	}
	return out
}
