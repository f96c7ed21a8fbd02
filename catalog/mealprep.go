package catalog

import (
	"mealcart/domain"
)

// MealPrepProfile is the weekly meal-prep brand: bags composed in the builder,
// discounted by bag count through stackable bundle tiers.
func MealPrepProfile() Profile {
	recipes := sunDevilRecipes()
	return Profile{
		Name:  "mealprep",
		Brand: "SunDevil Meal Prep",
		Sections: []domain.SectionInfo{
			{Name: domain.SectionPremade, Icon: "🍱"},
		},
		Items: map[domain.Section][]domain.Item{
			domain.SectionPremade: {
				menu("mp-1", "Chicken Alfredo", "10.49", 700, mins(12, 16), "🍝", "Dinner", true),
				menu("mp-2", "Burrito Bowl", "9.49", 610, mins(12, 15), "🌯", "Mexican", true),
				menu("mp-3", "Overnight Oats", "4.49", 380, mins(5, 8), "🥣", "Breakfast", false),
			},
		},
		Recipes:      []domain.Recipe{recipes[0], recipes[1]},
		PremadePrice: usd("10.49"),
		PremadeImage: "🍽️",
		Discount:     domain.DiscountBundle,
		BundleTiers: []domain.BundleTier{
			{Threshold: 3, Discount: usd("1.50")},
			{Threshold: 5, Discount: usd("4.00")},
			{Threshold: 7, Discount: usd("6.50")},
			{Threshold: 10, Discount: usd("10.00")},
		},
		Bag:         mealPrepBagRules(),
		DeliveryFee: usd("3.99"),
		Locations: []domain.Location{
			{ID: "tempe", Name: "ASU Tempe Campus", CanDeliver: true},
			{ID: "downtown", Name: "ASU Downtown Phoenix", CanDeliver: true},
			{ID: "poly", Name: "ASU Polytechnic (pickup only)", CanDeliver: false},
		},
		DefaultLocation: "tempe",
		DeliveryWindow:  mins(40, 55),
	}
}

func mealPrepBagRules() *domain.BagRules {
	return &domain.BagRules{
		BasePrice:       usd("12.99"),
		CustomUpcharge:  usd("1.50"),
		SteakUpcharge:   usd("3.50"),
		SeafoodUpcharge: usd("2.50"),
		LargeUpcharge:   usd("2.75"),
		SteakKey:        "steak",
		PremiumProteins: []string{"steak", "salmon", "shrimp"},
		Options: domain.ComponentOptions{
			Proteins: []domain.Option{
				{Key: "chicken", Label: "Grilled Chicken"},
				{Key: "turkey", Label: "Ground Turkey"},
				{Key: "tofu", Label: "Crispy Tofu"},
				{Key: "steak", Label: "Sirloin Steak"},
				{Key: "salmon", Label: "Atlantic Salmon"},
				{Key: "shrimp", Label: "Garlic Shrimp"},
			},
			Carbs: []domain.Option{
				{Key: "white_rice", Label: "White Rice"},
				{Key: "brown_rice", Label: "Brown Rice"},
				{Key: "quinoa", Label: "Quinoa"},
				{Key: "sweet_potato", Label: "Sweet Potato"},
				{Key: "pasta", Label: "Whole Wheat Pasta"},
			},
			Vegetables: []domain.Option{
				{Key: "broccoli", Label: "Broccoli"},
				{Key: "green_beans", Label: "Green Beans"},
				{Key: "asparagus", Label: "Asparagus"},
				{Key: "spinach", Label: "Sautéed Spinach"},
				{Key: "peppers", Label: "Fajita Peppers"},
				{Key: "zucchini", Label: "Roasted Zucchini"},
				{Key: "mixed_veg", Label: "Seasonal Mixed Vegetables"},
			},
			Sauces: []domain.Option{
				{Key: "teriyaki", Label: "Teriyaki"},
				{Key: "bbq", Label: "Smoky BBQ"},
				{Key: "salsa_verde", Label: "Salsa Verde"},
				{Key: "chimichurri", Label: "Chimichurri"},
				{Key: "chipotle_crema", Label: "Chipotle Crema", Dairy: true},
				{Key: "tzatziki", Label: "Tzatziki", Dairy: true},
			},
			Extras: []domain.Option{
				{Key: "avocado", Label: "Avocado", Price: usd("1.50")},
				{Key: "extra_protein", Label: "Extra Protein", Price: usd("3.00")},
				{Key: "side_salad", Label: "Side Salad", Price: usd("2.25")},
				{Key: "protein_cookie", Label: "Protein Cookie", Price: usd("1.75")},
			},
		},
		Recommendations: recommendations(
			recommend(domain.GoalLean, domain.CuisineAmerican, "chicken", "sweet_potato", "broccoli", "bbq"),
			recommend(domain.GoalLean, domain.CuisineMexican, "chicken", "brown_rice", "peppers", "salsa_verde"),
			recommend(domain.GoalLean, domain.CuisineAsian, "tofu", "brown_rice", "broccoli", "teriyaki"),
			recommend(domain.GoalLean, domain.CuisineMediterranean, "turkey", "quinoa", "spinach", "tzatziki"),
			recommend(domain.GoalBalanced, domain.CuisineAmerican, "turkey", "sweet_potato", "green_beans", "bbq"),
			recommend(domain.GoalBalanced, domain.CuisineMexican, "chicken", "white_rice", "peppers", "chipotle_crema"),
			recommend(domain.GoalBalanced, domain.CuisineAsian, "salmon", "white_rice", "asparagus", "teriyaki"),
			recommend(domain.GoalBalanced, domain.CuisineMediterranean, "chicken", "quinoa", "zucchini", "tzatziki"),
			recommend(domain.GoalBulk, domain.CuisineAmerican, "steak", "white_rice", "broccoli", "bbq"),
			recommend(domain.GoalBulk, domain.CuisineMexican, "steak", "white_rice", "peppers", "chipotle_crema"),
			recommend(domain.GoalBulk, domain.CuisineAsian, "chicken", "white_rice", "green_beans", "teriyaki"),
			recommend(domain.GoalBulk, domain.CuisineMediterranean, "salmon", "pasta", "spinach", "chimichurri"),
		),
		DefaultRecommendation: domain.Components{Protein: "chicken", Carb: "white_rice", Vegetable: "broccoli", Sauce: "teriyaki"},
		VegetableFallbacks:    []string{"broccoli", "green_beans", "spinach"},
		CatchAllVegetable:     "mixed_veg",
		NonDairySauce:         "chimichurri",
	}
}

type recommendation struct {
	key        domain.RecommendationKey
	components domain.Components
}

func recommend(goal domain.Goal, cuisine domain.Cuisine, protein, carb, veg, sauce string) recommendation {
	return recommendation{
		key:        domain.RecommendationKey{Goal: goal, Cuisine: cuisine},
		components: domain.Components{Protein: protein, Carb: carb, Vegetable: veg, Sauce: sauce},
	}
}

func recommendations(rows ...recommendation) map[domain.RecommendationKey]domain.Components {
	out := make(map[domain.RecommendationKey]domain.Components, len(rows))
	for _, r := range rows {
		out[r.key] = r.components
	}
	return out
}
