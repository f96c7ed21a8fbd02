package catalog

import (
	"mealcart/domain"

	"github.com/shopspring/decimal"
)

// SunDevilProfile is the campus delivery brand: house meals, groceries and
// partner restaurants, discounted through percentage promo codes.
func SunDevilProfile() Profile {
	return Profile{
		Name:  "sundevil",
		Brand: "SunDevil Eats",
		Sections: []domain.SectionInfo{
			{Name: domain.SectionPremade, Icon: "🍱"},
			{Name: domain.SectionGroceries, Icon: "🛒"},
			{Name: domain.SectionOutside, Icon: "🍕"},
		},
		Items: map[domain.Section][]domain.Item{
			domain.SectionPremade: {
				menu("1", "Chicken Alfredo", "9.99", 700, mins(12, 16), "🍝", "Dinner", true),
				menu("2", "Grilled Chicken Bowl", "8.49", 520, mins(12, 15), "🍗", "High Protein", false),
				menu("5", "Burrito Bowl", "8.99", 610, mins(12, 15), "🌯", "Mexican", true),
				menu("7", "Chicken Caesar Salad", "8.29", 460, mins(8, 10), "🥗", "Salads", true),
				menu("8", "Mac & Cheese", "6.49", 640, mins(8, 10), "🧈", "Comfort", false),
				menu("9", "Healthier Cookies", "4.99", 150, mins(15, 18), "🍪", "Dessert", true),
			},
			domain.SectionGroceries: {
				grocery("101", "Bananas (6 ct)", "1.99", "🍌", "Produce"),
				grocery("102", "Strawberries (1 lb)", "3.99", "🍓", "Produce"),
				grocery("103", "Whole Wheat Bread", "2.49", "🍞", "Bakery"),
				grocery("104", "Milk (1/2 gal)", "2.99", "🥛", "Dairy"),
				grocery("105", "Eggs (12 ct)", "3.49", "🥚", "Dairy"),
			},
			domain.SectionOutside: {
				restaurant("201", "Panda Express Plate", "11.49", mins(18, 28), "🥡", "Panda Express"),
				restaurant("202", "Chick-fil-A Sandwich Meal", "10.49", mins(12, 20), "🍔", "Chick-fil-A"),
				restaurant("203", "Double-Double Combo", "9.99", mins(10, 18), "🍔", "In-N-Out"),
				restaurant("204", "10pc Classic Wings + Fries", "14.49", mins(18, 25), "🍗", "Wingstop"),
			},
		},
		Recipes:      sunDevilRecipes(),
		PremadePrice: usd("9.99"),
		PremadeImage: "🍽️",
		Discount:     domain.DiscountPromo,
		Promos: []domain.PromoRule{
			{Code: "ASU10", Kind: domain.PromoPercent, Rate: usd("0.10"), Message: "10% student discount applied!"},
			{Code: "FIRST20", Kind: domain.PromoPercent, Rate: usd("0.20"), Message: "20% first order discount applied!"},
			{Code: "FORKS", Kind: domain.PromoSideEffect, Message: "Free utensils added to your order!"},
		},
		DeliveryFee: decimal.Zero,
		Locations: []domain.Location{
			{ID: "tempe", Name: "ASU Tempe Campus", CanDeliver: true},
		},
		DefaultLocation: "tempe",
		DeliveryWindow:  mins(25, 35),
	}
}

func sunDevilRecipes() []domain.Recipe {
	return []domain.Recipe{
		{
			Name:         "Chicken Alfredo",
			BaseServings: 2,
			PerServing:   domain.Macros{Calories: 700, Protein: 38, Carbs: 60, Fat: 28},
			Ingredients: []domain.Ingredient{
				{Name: "Chicken Breast", Quantity: "450 g"},
				{Name: "Fettuccine Pasta", Quantity: "180 g"},
				{Name: "Alfredo Sauce", Quantity: "1 cup"},
				{Name: "Parmesan", Quantity: "30 g"},
				{Name: "Garlic", Quantity: "2 cloves"},
				{Name: "Olive Oil / Butter", Quantity: "1 tbsp"},
			},
			Steps: []string{
				"Boil pasta until al dente.",
				"Sear chicken 4–6 min per side; slice.",
				"Warm Alfredo sauce and toss with pasta.",
				"Top with chicken and Parmesan.",
			},
		},
		{
			Name:         "Burrito Bowl",
			BaseServings: 2,
			PerServing:   domain.Macros{Calories: 650, Protein: 35, Carbs: 75, Fat: 18},
			Ingredients: []domain.Ingredient{
				{Name: "Rice", Quantity: "1 cup (dry)"},
				{Name: "Black Beans", Quantity: "1 can (15 oz)"},
				{Name: "Grilled Chicken", Quantity: "300 g"},
				{Name: "Salsa", Quantity: "1/2 cup"},
				{Name: "Shredded Cheese", Quantity: "1/2 cup"},
				{Name: "Lettuce", Quantity: "2 cups"},
			},
			Steps: []string{
				"Cook rice and warm beans.",
				"Layer rice, beans, chicken, lettuce.",
				"Top with salsa and cheese.",
			},
		},
		{
			Name:         "Healthier Cookies",
			BaseServings: 8,
			PerServing:   domain.Macros{Calories: 150, Protein: 3, Carbs: 24, Fat: 5},
			Ingredients: []domain.Ingredient{
				{Name: "Oats", Quantity: "1 cup"},
				{Name: "Banana", Quantity: "2 medium"},
				{Name: "Honey", Quantity: "2 tbsp"},
				{Name: "Dark Chocolate Chips", Quantity: "1/4 cup"},
				{Name: "Cinnamon", Quantity: "1/2 tsp"},
			},
			Steps: []string{
				"Preheat oven to 350°F.",
				"Mash bananas and mix all ingredients.",
				"Bake 12 minutes and cool 5 minutes.",
			},
		},
		{
			Name:         "Chicken Caesar Salad",
			BaseServings: 2,
			PerServing:   domain.Macros{Calories: 480, Protein: 34, Carbs: 18, Fat: 28},
			Ingredients: []domain.Ingredient{
				{Name: "Romaine Lettuce", Quantity: "3 cups"},
				{Name: "Grilled Chicken", Quantity: "300 g"},
				{Name: "Croutons", Quantity: "1 cup"},
				{Name: "Parmesan", Quantity: "1/4 cup"},
				{Name: "Caesar Dressing", Quantity: "1/3 cup"},
			},
			Steps: []string{
				"Chop lettuce and toss with dressing.",
				"Add chicken, croutons, and Parmesan.",
			},
		},
	}
}
