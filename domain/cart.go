package domain

import (
	"context"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// CartStorageKey is the fixed key the cart snapshot is persisted under
const CartStorageKey = "sundevil_cart_v1"

// PremadePrefix marks synthesized line ids for recipes ordered pre-made
const PremadePrefix = "premade-"

// CartLine is one priced line of the cart
type CartLine struct {
	ID    string            `json:"id"`
	Name  string            `json:"name"`
	Price decimal.Decimal   `json:"price"`
	Image string            `json:"image,omitempty"`
	Qty   int               `json:"qty"`
	Note  string            `json:"note,omitempty"`
	Bag   *BagConfiguration `json:"bag,omitempty"`
}

// LineTotal is unit price times quantity
func (l CartLine) LineTotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Qty)))
}

// Snapshot is the persisted cart state
type Snapshot struct {
	Lines map[string]CartLine `json:"lines"`
}

// EmptySnapshot returns a snapshot with no lines
func EmptySnapshot() Snapshot {
	return Snapshot{Lines: make(map[string]CartLine)}
}

// Clone copies the line map and any bag configurations so the copy shares
// no mutable state with s
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{Lines: make(map[string]CartLine, len(s.Lines))}
	for id, l := range s.Lines {
		if l.Bag != nil {
			bag := *l.Bag
			bag.Extras = append([]string(nil), l.Bag.Extras...)
			bag.Dislikes = append([]string(nil), l.Bag.Dislikes...)
			l.Bag = &bag
		}
		out.Lines[id] = l
	}
	return out
}

// MacroTotals are aggregate macros rounded to whole units
type MacroTotals struct {
	Calories int64 `json:"cal"`
	Protein  int64 `json:"protein"`
	Carbs    int64 `json:"carbs"`
	Fat      int64 `json:"fat"`
}

// Round rounds each field of m to the nearest whole unit
func (m Macros) Round() MacroTotals {
	return MacroTotals{
		Calories: int64(math.Round(m.Calories)),
		Protein:  int64(math.Round(m.Protein)),
		Carbs:    int64(math.Round(m.Carbs)),
		Fat:      int64(math.Round(m.Fat)),
	}
}

// IsZero reports whether all fields are zero
func (m MacroTotals) IsZero() bool {
	return m.Calories == 0 && m.Protein == 0 && m.Carbs == 0 && m.Fat == 0
}

// Totals is the aggregate view returned after every cart mutation
type Totals struct {
	Lines        []CartLine      `json:"lines"`
	ItemCount    int             `json:"itemCount"`
	BundleUnits  int             `json:"bundleUnits"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	DiscountRate decimal.Decimal `json:"discountRate"`
	Discount     decimal.Decimal `json:"discount"`
	DeliveryFee  decimal.Decimal `json:"deliveryFee"`
	Total        decimal.Decimal `json:"total"`
	Macros       MacroTotals     `json:"macros"`
}

// OrderSummary is returned by a successful checkout
type OrderSummary struct {
	OrderID           string          `json:"orderId"`
	Lines             []CartLine      `json:"lines"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	Discount          decimal.Decimal `json:"discount"`
	DeliveryFee       decimal.Decimal `json:"deliveryFee"`
	Total             decimal.Decimal `json:"total"`
	Address           string          `json:"address"`
	Instructions      string          `json:"instructions,omitempty"`
	Fulfillment       Fulfillment     `json:"fulfillment"`
	EstimatedDelivery PrepRange       `json:"estimatedDelivery"`
	FreeUtensils      bool            `json:"freeUtensils,omitempty"`
	PlacedAt          time.Time       `json:"placedAt"`
}

// CartStore persists cart snapshots by key.
// A missing snapshot loads as an empty one with a nil error.
type CartStore interface {
	Load(ctx context.Context, key string) (Snapshot, error)
	Save(ctx context.Context, key string, snap Snapshot) error
}
