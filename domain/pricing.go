package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DiscountMode picks which discount scheme a profile uses. Never both.
type DiscountMode string

const (
	DiscountPromo  DiscountMode = "promo"
	DiscountBundle DiscountMode = "bundle"
)

// BundleTier unlocks Discount for every Threshold bag units
type BundleTier struct {
	Threshold int             `json:"threshold" validate:"gt=0"`
	Discount  decimal.Decimal `json:"discount"`
}

// PromoKind is the effect a known promo code has
type PromoKind string

const (
	PromoPercent    PromoKind = "percent"
	PromoSideEffect PromoKind = "side_effect"
	PromoReject     PromoKind = "reject"
)

// PromoRule is one row of a profile's promo table
type PromoRule struct {
	Code    string          `json:"code" validate:"required"`
	Kind    PromoKind       `json:"kind" validate:"oneof=percent side_effect reject"`
	Rate    decimal.Decimal `json:"rate"`
	Message string          `json:"message"`
}

// PromoOutcome is the message kind returned to the caller
type PromoOutcome string

const (
	PromoApplied        PromoOutcome = "applied"
	PromoSideEffectOnly PromoOutcome = "side_effect_only"
	PromoRejected       PromoOutcome = "rejected"
)

// PromoResult reports the discount rate in force after applying a code
type PromoResult struct {
	Code    string          `json:"code"`
	Outcome PromoOutcome    `json:"outcome"`
	Rate    decimal.Decimal `json:"rate"`
	Message string          `json:"message"`
	// Err is an UnknownPromoCodeError when Outcome is PromoRejected.
	Err error `json:"-"`
}

// NormalizePromoCode trims and upper-cases a code for table lookup
func NormalizePromoCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Fulfillment is how the order reaches the customer
type Fulfillment string

const (
	FulfillmentDelivery Fulfillment = "delivery"
	FulfillmentPickup   Fulfillment = "pickup"
)

// ParseFulfillment maps user input to a Fulfillment
func ParseFulfillment(s string) (Fulfillment, error) {
	switch f := Fulfillment(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FulfillmentDelivery, nil
	case FulfillmentDelivery, FulfillmentPickup:
		return f, nil
	}
	return "", NewInvalidSelectionError("fulfillment", "must be delivery or pickup", s)
}
