package recipe

import (
	"testing"

	"mealcart/catalog"
	"mealcart/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScaleQuantity(t *testing.T) {
	tests := []struct {
		name     string
		qty      string
		servings int
		base     int
		want     string
	}{
		{"grams", "450 g", 3, 2, "675 g"},
		{"same servings", "450 g", 2, 2, "450 g"},
		{"unit text kept", "1 can (15 oz)", 4, 2, "2 can (15 oz)"},
		{"decimal", "0.5 tsp", 3, 2, "0.75 tsp"},
		{"leading dot", ".25 cup", 2, 1, "0.5 cup"},
		{"rounds to cents", "1 cup", 1, 3, "0.33 cup"},
		{"round half up", "1 cup", 5, 8, "0.63 cup"},
		{"fraction scales numerator only", "1/2 cup", 3, 2, "1.5/2 cup"},
		{"no number fails open", "to taste", 4, 2, "to taste"},
		{"empty", "", 4, 2, ""},
		{"non-positive servings", "450 g", 0, 2, "450 g"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScaleQuantity(tt.qty, tt.servings, tt.base))
		})
	}
}

func TestScaleRecipe(t *testing.T) {
	c, err := catalog.Load("sundevil")
	require.NoError(t, err)
	r, ok := c.Recipe("Chicken Alfredo")
	require.True(t, ok)

	scaled := Scale(r, 3)
	require.Len(t, scaled, len(r.Ingredients))
	assert.Equal(t, domain.Ingredient{Name: "Chicken Breast", Quantity: "675 g"}, scaled[0])
	assert.Equal(t, "1.5 cup", scaled[2].Quantity)

	// repeated calls give the same output and leave the recipe alone
	assert.Equal(t, scaled, Scale(r, 3))
	assert.Equal(t, "450 g", r.Ingredients[0].Quantity)
}

func TestScaleFallsBackToBaseServings(t *testing.T) {
	r := domain.Recipe{
		Name:         "Test",
		BaseServings: 2,
		Ingredients:  []domain.Ingredient{{Name: "Salt", Quantity: "to taste"}, {Name: "Rice", Quantity: "1 cup"}},
	}
	for _, s := range []int{0, -4} {
		assert.Equal(t, r.Ingredients, Scale(r, s))
	}
	assert.True(t, Factor(r, -1).Equal(Factor(r, 2)))
	assert.Equal(t, "1.5", Factor(r, 3).String())
}
