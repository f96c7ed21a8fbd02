// Package catalog holds the static brand profiles and read-only lookups over them.
package catalog

import (
	"fmt"
	"sort"
	"strings"

	"mealcart/domain"

	"github.com/shopspring/decimal"
)

// Profile is everything that differs between brand deployments: menu tables,
// pricing constants and the discount scheme.
type Profile struct {
	Name     string               `validate:"required"`
	Brand    string               `validate:"required"`
	Sections []domain.SectionInfo `validate:"min=1,dive"`
	Items    map[domain.Section][]domain.Item
	Recipes  []domain.Recipe `validate:"dive"`

	// PremadePrice is charged for a recipe ordered through its pre-made line.
	PremadePrice decimal.Decimal
	PremadeImage string

	Discount    domain.DiscountMode `validate:"oneof=promo bundle"`
	Promos      []domain.PromoRule  `validate:"dive"`
	BundleTiers []domain.BundleTier `validate:"dive"`

	// Bag is nil for profiles without the bag builder.
	Bag *domain.BagRules

	DeliveryFee     decimal.Decimal
	Locations       []domain.Location `validate:"min=1,dive"`
	DefaultLocation string            `validate:"required"`
	DeliveryWindow  domain.PrepRange
}

var profiles = map[string]func() Profile{
	"sundevil": SunDevilProfile,
	"mealprep": MealPrepProfile,
}

// Names lists the built-in profile names
func Names() []string {
	out := make([]string, 0, len(profiles))
	for name := range profiles {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Lookup returns a fresh copy of the named built-in profile
func Lookup(name string) (Profile, error) {
	build, ok := profiles[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Profile{}, fmt.Errorf("profile %q (known: %s): %w",
			name, strings.Join(Names(), ", "),
			domain.NewUnresolvedCatalogReferenceError("profile", name))
	}
	return build(), nil
}

func usd(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func menu(id, name, price string, cal int, prep domain.PrepRange, image, category string, hasRecipe bool) domain.Item {
	return domain.MenuItem{
		Listing:   domain.Listing{ID: id, Name: name, Price: usd(price), Image: image},
		Calories:  cal,
		PrepTime:  prep,
		Category:  category,
		HasRecipe: hasRecipe,
	}
}

func grocery(id, name, price, image, category string) domain.Item {
	return domain.GroceryItem{
		Listing:  domain.Listing{ID: id, Name: name, Price: usd(price), Image: image},
		Category: category,
	}
}

func restaurant(id, name, price string, prep domain.PrepRange, image, place string) domain.Item {
	return domain.RestaurantItem{
		Listing:    domain.Listing{ID: id, Name: name, Price: usd(price), Image: image},
		PrepTime:   prep,
		Restaurant: place,
	}
}

func mins(lo, hi int) domain.PrepRange {
	return domain.PrepRange{Min: lo, Max: hi}
}
