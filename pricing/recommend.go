package pricing

import (
	"strings"

	"mealcart/domain"
)

// Recommend picks the chef's components for a goal and cuisine, then
// substitutes around the customer's dislikes. It is a pure table lookup.
func Recommend(rules domain.BagRules, goal domain.Goal, cuisine domain.Cuisine, dislikes []string) domain.Components {
	comp, ok := rules.Recommendations[domain.RecommendationKey{Goal: goal, Cuisine: cuisine}]
	if !ok {
		comp = rules.DefaultRecommendation
	}

	disliked := make(map[string]bool, len(dislikes))
	for _, d := range dislikes {
		disliked[strings.ToLower(strings.TrimSpace(d))] = true
	}

	comp.Vegetable = pickVegetable(rules, comp.Vegetable, disliked)
	if disliked[domain.DislikeDairy] {
		if sauce, ok := findOption(rules.Options.Sauces, comp.Sauce); ok && sauce.Dairy {
			comp.Sauce = rules.NonDairySauce
		}
	}
	return comp
}

func pickVegetable(rules domain.BagRules, preferred string, disliked map[string]bool) string {
	if !disliked[preferred] {
		return preferred
	}
	for _, v := range rules.VegetableFallbacks {
		if !disliked[v] {
			return v
		}
	}
	return rules.CatchAllVegetable
}
