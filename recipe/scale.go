// Package recipe scales recipe ingredient quantities to a serving count.
package recipe

import (
	"regexp"
	"strings"

	"mealcart/domain"

	"github.com/shopspring/decimal"
)

// magnitude matches the first decimal number in a quantity string
var magnitude = regexp.MustCompile(`[0-9]*\.?[0-9]+`)

// Factor is servings / base servings. Non-positive servings mean the base count.
func Factor(r domain.Recipe, servings int) decimal.Decimal {
	if r.BaseServings <= 0 {
		return decimal.NewFromInt(1)
	}
	if servings <= 0 {
		servings = r.BaseServings
	}
	return decimal.NewFromInt(int64(servings)).Div(decimal.NewFromInt(int64(r.BaseServings)))
}

// Scale returns the recipe's ingredients in order with each quantity scaled
// to servings. Strings without a number are returned unchanged.
func Scale(r domain.Recipe, servings int) []domain.Ingredient {
	if servings <= 0 {
		servings = r.BaseServings
	}
	out := make([]domain.Ingredient, len(r.Ingredients))
	for i, ing := range r.Ingredients {
		out[i] = domain.Ingredient{
			Name:     ing.Name,
			Quantity: ScaleQuantity(ing.Quantity, servings, r.BaseServings),
		}
	}
	return out
}

// ScaleQuantity multiplies the first number in qty by servings/base, rounds
// it to two places and substitutes it in place. "1/2 cup" only scales the
// numerator, as the first number found is the one scaled.
func ScaleQuantity(qty string, servings, base int) string {
	if base <= 0 || servings <= 0 {
		return qty
	}
	loc := magnitude.FindStringIndex(qty)
	if loc == nil {
		return qty
	}
	num := qty[loc[0]:loc[1]]
	if strings.HasPrefix(num, ".") {
		num = "0" + num
	}
	v, err := decimal.NewFromString(num)
	if err != nil {
		return qty
	}
	// multiply before dividing so 1/3 factors stay exact to two places
	scaled := v.Mul(decimal.NewFromInt(int64(servings))).
		Div(decimal.NewFromInt(int64(base))).
		Round(2)
	return qty[:loc[0]] + scaled.String() + qty[loc[1]:]
}
