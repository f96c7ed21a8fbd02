// Package cart owns the order being built: its lines, the discount in force,
// fulfillment, and the persisted snapshot.
//
// A Cart is not safe for concurrent use. Every mutation completes before the
// next one starts, and the snapshot is written back after each one.
package cart

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"mealcart/catalog"
	"mealcart/domain"
	"mealcart/pricing"
	"mealcart/util"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
)

// BagImage is the image shown on bag lines
const BagImage = "🥡"

// Cart is the cart aggregate for one catalog profile
type Cart struct {
	cat    *catalog.Catalog
	store  domain.CartStore
	key    string
	logger *slog.Logger
	promos *pricing.PromoTable
	now    func() time.Time

	lines map[string]domain.CartLine
	order []string

	promoCode    string
	rate         decimal.Decimal
	freeUtensils bool
	fulfillment  domain.Fulfillment
	location     string
}

// Option configures a Cart
type Option func(*Cart)

// WithStorageKey overrides the snapshot key
func WithStorageKey(key string) Option {
	return func(c *Cart) { c.key = key }
}

// WithClock sets the clock used to stamp orders
func WithClock(now func() time.Time) Option {
	return func(c *Cart) { c.now = now }
}

// New builds a cart over cat and rehydrates it from store. A missing or
// unreadable snapshot gives an empty cart. store may be nil for a cart
// that is never persisted.
func New(ctx context.Context, cat *catalog.Catalog, store domain.CartStore, logger *slog.Logger, opts ...Option) *Cart {
	if logger == nil {
		logger = slog.Default()
	}
	p := cat.Profile()
	c := &Cart{
		cat:         cat,
		store:       store,
		key:         domain.CartStorageKey,
		logger:      logger,
		promos:      pricing.NewPromoTable(p.Promos),
		now:         time.Now,
		lines:       make(map[string]domain.CartLine),
		rate:        decimal.Zero,
		fulfillment: domain.FulfillmentDelivery,
		location:    p.DefaultLocation,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.rehydrate(ctx)
	return c
}

func (c *Cart) rehydrate(ctx context.Context) {
	if c.store == nil {
		return
	}
	snap, err := c.store.Load(ctx, c.key)
	if err != nil {
		c.logger.Warn("cart snapshot unreadable, starting empty", "key", c.key, "error", err)
		return
	}

	ids := make([]string, 0, len(snap.Lines))
	for id := range snap.Lines {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		l := snap.Lines[id]
		if l.ID == "" {
			l.ID = id
		}
		if l.Qty < 1 || l.Price.IsNegative() {
			c.logger.Warn("dropping invalid snapshot line", "id", id, "qty", l.Qty, "price", l.Price)
			continue
		}
		c.put(l)
	}
	c.logger.Debug("cart rehydrated", "key", c.key, "lines", len(c.order))
}

// persist writes the snapshot. Failures are logged and never undo the
// in-memory change.
func (c *Cart) persist(ctx context.Context) {
	if c.store == nil {
		return
	}
	if err := c.store.Save(ctx, c.key, c.Snapshot()); err != nil {
		c.logger.Warn("cart snapshot not saved", "key", c.key, "error", err)
	}
}

func (c *Cart) put(l domain.CartLine) {
	if _, ok := c.lines[l.ID]; !ok {
		c.order = append(c.order, l.ID)
	}
	c.lines[l.ID] = l
}

func (c *Cart) drop(id string) {
	delete(c.lines, id)
	for i, o := range c.order {
		if o == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Snapshot returns the persistable state of the cart
func (c *Cart) Snapshot() domain.Snapshot {
	return domain.Snapshot{Lines: c.lines}.Clone()
}

// Lines lists the cart lines in the order they were first added
func (c *Cart) Lines() []domain.CartLine {
	out := make([]domain.CartLine, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.lines[id])
	}
	return out
}

// Line looks up a line by id
func (c *Cart) Line(id string) (domain.CartLine, bool) {
	l, ok := c.lines[id]
	return l, ok
}

// AddLine adds qty units of item, merging into an existing line with the
// same id. A qty below 1 adds one unit. Merging refreshes the line's
// name, price and image from item.
func (c *Cart) AddLine(ctx context.Context, item domain.Item, qty int) domain.Totals {
	line := c.merge(item, qty)
	c.logger.Debug("line added", "id", line.ID, "qty", line.Qty)
	c.persist(ctx)
	return c.Totals()
}

// merge folds qty units of item into the cart at the item's listed price
func (c *Cart) merge(item domain.Item, qty int) domain.CartLine {
	if qty < 1 {
		qty = 1
	}
	base := item.Base()
	price := pricing.PriceItem(item)
	if price.IsNegative() {
		price = decimal.Zero
	}

	line, ok := c.lines[base.ID]
	if ok {
		line.Qty += qty
	} else {
		line = domain.CartLine{ID: base.ID, Qty: qty}
	}
	line.Name = base.Name
	line.Price = price
	line.Image = base.Image
	c.put(line)
	return line
}

// resolve finds the catalog item behind a line id, pre-made meals included
func (c *Cart) resolve(id string) (domain.Item, bool) {
	if item, ok := c.cat.Item(id); ok {
		return item, true
	}
	if name, ok := strings.CutPrefix(id, domain.PremadePrefix); ok {
		return c.cat.PremadeItem(name)
	}
	return nil, false
}

// AddByID looks id up in the catalog and adds it
func (c *Cart) AddByID(ctx context.Context, id string, qty int) (domain.Totals, error) {
	item, ok := c.cat.Item(id)
	if !ok {
		return c.Totals(), domain.NewUnresolvedCatalogReferenceError("item", id)
	}
	return c.AddLine(ctx, item, qty), nil
}

// AddPremade adds one pre-made serving of the named recipe
func (c *Cart) AddPremade(ctx context.Context, recipeName string) (domain.Totals, error) {
	item, ok := c.cat.PremadeItem(recipeName)
	if !ok {
		return c.Totals(), domain.NewUnresolvedCatalogReferenceError("recipe", recipeName)
	}
	return c.AddLine(ctx, item, 1), nil
}

// AddBag prices a confirmed bag configuration and appends it as a new line.
// Every confirmed bag gets its own line, even when identical to another.
func (c *Cart) AddBag(ctx context.Context, cfg domain.BagConfiguration) (domain.CartLine, domain.Totals, error) {
	rules, ok := c.cat.Bag()
	if !ok {
		return domain.CartLine{}, c.Totals(), domain.NewUnresolvedCatalogReferenceError("bag builder", c.cat.Profile().Name)
	}
	built := pricing.BuildBag(*rules, cfg)
	line := domain.CartLine{
		ID:    util.GenerateLineID("bag"),
		Name:  pricing.BagName(*rules, built),
		Price: pricing.PriceBag(*rules, built),
		Image: BagImage,
		Qty:   1,
		Bag:   &built,
	}
	c.put(line)

	c.logger.Debug("bag added", "id", line.ID, "price", line.Price)
	c.persist(ctx)
	return line, c.Totals(), nil
}

// Increment adds one unit to a line. Unknown ids are ignored.
func (c *Cart) Increment(ctx context.Context, id string) domain.Totals {
	line, ok := c.lines[id]
	if !ok {
		c.logger.Debug("increment of unknown line", "id", id)
		return c.Totals()
	}
	line.Qty++
	c.put(line)
	c.persist(ctx)
	return c.Totals()
}

// Decrement removes one unit from a line, and the line itself when it
// would reach zero. Unknown ids are ignored.
func (c *Cart) Decrement(ctx context.Context, id string) domain.Totals {
	line, ok := c.lines[id]
	if !ok {
		c.logger.Debug("decrement of unknown line", "id", id)
		return c.Totals()
	}
	line.Qty--
	if line.Qty <= 0 {
		c.drop(id)
	} else {
		c.put(line)
	}
	c.persist(ctx)
	return c.Totals()
}

// Remove deletes a line. Unknown ids are ignored.
func (c *Cart) Remove(ctx context.Context, id string) domain.Totals {
	if _, ok := c.lines[id]; !ok {
		c.logger.Debug("remove of unknown line", "id", id)
		return c.Totals()
	}
	c.drop(id)
	c.persist(ctx)
	return c.Totals()
}

// Clear empties the cart
func (c *Cart) Clear(ctx context.Context) domain.Totals {
	c.lines = make(map[string]domain.CartLine)
	c.order = nil
	c.persist(ctx)
	return c.Totals()
}

// SetNote attaches a free-text note to a line. A blank note clears it.
func (c *Cart) SetNote(ctx context.Context, id, note string) domain.Totals {
	line, ok := c.lines[id]
	if !ok {
		c.logger.Debug("note on unknown line", "id", id)
		return c.Totals()
	}
	line.Note = strings.TrimSpace(note)
	c.put(line)
	c.persist(ctx)
	return c.Totals()
}

// Import merges lines into the cart with AddLine semantics. Lines naming a
// catalog item take the catalog's name and price; the imported price is kept
// only for bags and lines the catalog does not know. Invalid lines are
// skipped and reported together; valid ones are still imported.
func (c *Cart) Import(ctx context.Context, lines []domain.CartLine) (domain.Totals, error) {
	var errs error
	imported := 0
	for i, l := range lines {
		if strings.TrimSpace(l.ID) == "" {
			errs = multierr.Append(errs, fmt.Errorf("line %d: %w", i, domain.NewInvalidSelectionError("id", "cannot be empty", l.ID)))
			continue
		}
		if item, ok := c.resolve(l.ID); ok && l.Bag == nil {
			line := c.merge(item, l.Qty)
			if l.Note != "" {
				line.Note = l.Note
				c.put(line)
			}
			imported++
			continue
		}
		if l.Price.IsNegative() {
			errs = multierr.Append(errs, fmt.Errorf("line %d: %w", i, domain.NewInvalidSelectionError("price", "must be non-negative", l.Price)))
			continue
		}
		qty := l.Qty
		if qty < 1 {
			qty = 1
		}
		existing, ok := c.lines[l.ID]
		if ok {
			existing.Qty += qty
			existing.Name, existing.Price, existing.Image = l.Name, l.Price, l.Image
			if l.Note != "" {
				existing.Note = l.Note
			}
			if l.Bag != nil {
				existing.Bag = l.Bag
			}
			l = existing
		} else {
			l.Qty = qty
		}
		c.put(l)
		imported++
	}
	if imported > 0 {
		c.persist(ctx)
	}
	return c.Totals(), errs
}

// ApplyPromo evaluates a promo code. The new code replaces whatever was in
// force before; codes never stack.
func (c *Cart) ApplyPromo(code string) domain.PromoResult {
	res := c.promos.Apply(code, c.rate)
	switch res.Outcome {
	case domain.PromoApplied:
		c.rate = res.Rate
		c.promoCode = res.Code
	case domain.PromoSideEffectOnly:
		c.freeUtensils = true
	default:
		c.rate = decimal.Zero
		c.promoCode = ""
		c.logger.Debug("promo rejected", "code", res.Code)
	}
	return res
}

// PromoCode is the percentage code currently in force, if any
func (c *Cart) PromoCode() string {
	return c.promoCode
}

// FreeUtensils reports whether a side-effect code granted utensils
func (c *Cart) FreeUtensils() bool {
	return c.freeUtensils
}

// SetFulfillment chooses delivery or pickup and the location. An empty
// locationID keeps the current one.
func (c *Cart) SetFulfillment(mode domain.Fulfillment, locationID string) error {
	if mode != domain.FulfillmentDelivery && mode != domain.FulfillmentPickup {
		return domain.NewInvalidSelectionError("fulfillment", "must be delivery or pickup", mode)
	}
	if locationID != "" {
		if _, ok := c.cat.Location(locationID); !ok {
			return domain.NewUnresolvedCatalogReferenceError("location", locationID)
		}
		c.location = locationID
	}
	c.fulfillment = mode
	return nil
}

// Fulfillment returns the current mode and location id
func (c *Cart) Fulfillment() (domain.Fulfillment, string) {
	return c.fulfillment, c.location
}

// Checkout places the order. A blank address fails with MissingAddressError
// and leaves the cart untouched; otherwise the cart is cleared and the
// order summary returned.
func (c *Cart) Checkout(ctx context.Context, address, instructions string) (domain.OrderSummary, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return domain.OrderSummary{}, domain.NewMissingAddressError()
	}
	if len(c.lines) == 0 {
		return domain.OrderSummary{}, domain.NewInvalidSelectionError("cart", "is empty", 0)
	}

	t := c.Totals()
	order := domain.OrderSummary{
		OrderID:           util.GenerateOrderID(),
		Lines:             t.Lines,
		Subtotal:          t.Subtotal,
		Discount:          t.Discount,
		DeliveryFee:       t.DeliveryFee,
		Total:             t.Total,
		Address:           address,
		Instructions:      strings.TrimSpace(instructions),
		Fulfillment:       c.fulfillment,
		EstimatedDelivery: c.cat.Profile().DeliveryWindow,
		FreeUtensils:      c.freeUtensils,
		PlacedAt:          c.now(),
	}

	c.Clear(ctx)
	c.rate = decimal.Zero
	c.promoCode = ""
	c.freeUtensils = false

	c.logger.Info("order placed", "order_id", order.OrderID, "total", order.Total, "lines", len(order.Lines))
	return order, nil
}
