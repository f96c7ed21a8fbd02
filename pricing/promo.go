package pricing

import (
	"fmt"

	"mealcart/domain"

	"github.com/shopspring/decimal"
)

// PromoTable looks promo codes up case-insensitively
type PromoTable struct {
	rules map[string]domain.PromoRule
}

// NewPromoTable indexes rules by normalized code. Later duplicates win.
func NewPromoTable(rules []domain.PromoRule) *PromoTable {
	t := &PromoTable{rules: make(map[string]domain.PromoRule, len(rules))}
	for _, r := range rules {
		t.rules[domain.NormalizePromoCode(r.Code)] = r
	}
	return t
}

// Lookup finds the rule for code
func (t *PromoTable) Lookup(code string) (domain.PromoRule, bool) {
	r, ok := t.rules[domain.NormalizePromoCode(code)]
	return r, ok
}

// Apply evaluates code against the table given the rate currently in force.
// Percent codes replace the rate, side-effect codes keep it, and anything
// else resets it to zero. Codes never stack.
func (t *PromoTable) Apply(code string, current decimal.Decimal) domain.PromoResult {
	norm := domain.NormalizePromoCode(code)
	rule, ok := t.rules[norm]
	if !ok || rule.Kind == domain.PromoReject {
		msg := "Invalid promo code"
		if ok && rule.Message != "" {
			msg = rule.Message
		}
		return domain.PromoResult{
			Code:    norm,
			Outcome: domain.PromoRejected,
			Rate:    decimal.Zero,
			Message: msg,
			Err:     domain.NewUnknownPromoCodeError(norm),
		}
	}

	switch rule.Kind {
	case domain.PromoSideEffect:
		return domain.PromoResult{
			Code:    norm,
			Outcome: domain.PromoSideEffectOnly,
			Rate:    current,
			Message: rule.Message,
		}
	default:
		msg := rule.Message
		if msg == "" {
			msg = fmt.Sprintf("%s%% discount applied", rule.Rate.Shift(2).String())
		}
		return domain.PromoResult{
			Code:    norm,
			Outcome: domain.PromoApplied,
			Rate:    rule.Rate,
			Message: msg,
		}
	}
}

// PromoDiscount is rate times subtotal rounded to the cent
func PromoDiscount(rate, subtotal decimal.Decimal) decimal.Decimal {
	return rate.Mul(subtotal).Round(2)
}
