// Package pricing prices single order units: catalog items, meal-prep bags,
// bag-count bundle discounts and promo codes.
package pricing

import (
	"strings"

	"mealcart/domain"

	"github.com/shopspring/decimal"
)

// PriceItem returns the listed unit price of a catalog item
func PriceItem(item domain.Item) decimal.Decimal {
	return item.Base().Price
}

// PriceBag returns the unit price of a bag. Surcharges are additive and
// independent; the standard preset always costs exactly the base price.
func PriceBag(rules domain.BagRules, cfg domain.BagConfiguration) decimal.Decimal {
	price := rules.BasePrice
	if cfg.Preset != domain.PresetCustom {
		return price
	}

	price = price.Add(rules.CustomUpcharge)
	if isPremium(rules, cfg.Components.Protein) {
		if cfg.Components.Protein == rules.SteakKey {
			price = price.Add(rules.SteakUpcharge)
		} else {
			price = price.Add(rules.SeafoodUpcharge)
		}
	}
	if cfg.Portion == domain.PortionLarge {
		price = price.Add(rules.LargeUpcharge)
	}
	for _, key := range cfg.Extras {
		// unknown extras contribute nothing
		if opt, ok := findOption(rules.Options.Extras, key); ok {
			price = price.Add(opt.Price)
		}
	}
	return price
}

// BuildBag completes a configuration for checkout: standard presets get the
// chef's recommended components at the standard portion with no extras,
// custom presets keep the user's picks.
func BuildBag(rules domain.BagRules, cfg domain.BagConfiguration) domain.BagConfiguration {
	if cfg.Preset == "" {
		cfg.Preset = domain.PresetStandard
	}
	if cfg.Portion == "" {
		cfg.Portion = domain.PortionStandard
	}
	if cfg.Spice < 0 {
		cfg.Spice = 0
	}
	if cfg.Spice > domain.MaxSpice {
		cfg.Spice = domain.MaxSpice
	}
	if cfg.Preset == domain.PresetStandard {
		// fixed price: the chef's bag has no portion or extras upgrades
		cfg.Components = Recommend(rules, cfg.Goal, cfg.Cuisine, cfg.Dislikes)
		cfg.Portion = domain.PortionStandard
		cfg.Extras = nil
		return cfg
	}
	if len(cfg.Extras) > 0 {
		cfg.Extras = append([]string(nil), cfg.Extras...)
	}
	return cfg
}

// BagName is the display label of a bag line
func BagName(rules domain.BagRules, cfg domain.BagConfiguration) string {
	parts := []string{
		optionLabel(rules.Options.Proteins, cfg.Components.Protein),
		optionLabel(rules.Options.Carbs, cfg.Components.Carb),
		optionLabel(rules.Options.Vegetables, cfg.Components.Vegetable),
	}
	prefix := "Custom Bag"
	if cfg.Preset != domain.PresetCustom {
		prefix = "Chef's Choice Bag"
	}
	name := prefix + ": " + strings.Join(parts, ", ")
	if cfg.Portion == domain.PortionLarge {
		name += " (Large)"
	}
	return name
}

func isPremium(rules domain.BagRules, protein string) bool {
	for _, p := range rules.PremiumProteins {
		if p == protein {
			return true
		}
	}
	return false
}

func findOption(opts []domain.Option, key string) (domain.Option, bool) {
	for _, o := range opts {
		if o.Key == key {
			return o, true
		}
	}
	return domain.Option{}, false
}

// optionLabel falls back to the raw key for options missing from the table
func optionLabel(opts []domain.Option, key string) string {
	if o, ok := findOption(opts, key); ok {
		return o.Label
	}
	return key
}
