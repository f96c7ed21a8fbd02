package domain

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Preset selects between the chef's fixed-price bag and a custom build
type Preset string

const (
	PresetStandard Preset = "standard"
	PresetCustom   Preset = "custom"
)

// Portion is the bag portion size
type Portion string

const (
	PortionStandard Portion = "standard"
	PortionLarge    Portion = "large"
)

// SpiceLevel ranges from 0 (mild) to MaxSpice
type SpiceLevel int

const MaxSpice SpiceLevel = 3

// Goal is the nutrition goal feeding the chef's recommendation
type Goal string

const (
	GoalLean     Goal = "lean"
	GoalBalanced Goal = "balanced"
	GoalBulk     Goal = "bulk"
)

// Cuisine is the cuisine style feeding the chef's recommendation
type Cuisine string

const (
	CuisineAmerican      Cuisine = "american"
	CuisineMexican       Cuisine = "mexican"
	CuisineAsian         Cuisine = "asian"
	CuisineMediterranean Cuisine = "mediterranean"
)

// DislikeDairy is the dislike key that rules out dairy sauces
const DislikeDairy = "dairy"

// Components are the four slots of a bag, each a key into the option catalog
type Components struct {
	Protein   string `json:"protein"`
	Carb      string `json:"carb"`
	Vegetable string `json:"veg"`
	Sauce     string `json:"sauce"`
}

// BagConfiguration is one meal-prep bag as composed in the builder
type BagConfiguration struct {
	Preset     Preset     `json:"preset"`
	Components Components `json:"components"`
	Portion    Portion    `json:"portion"`
	Spice      SpiceLevel `json:"spice"`
	Extras     []string   `json:"extras,omitempty"`
	Goal       Goal       `json:"goal,omitempty"`
	Cuisine    Cuisine    `json:"cuisine,omitempty"`
	Dislikes   []string   `json:"dislikes,omitempty"`
}

// Option is one choice in a component or extras table.
// Price only matters for extras; proteins are surcharged through BagRules.
type Option struct {
	Key   string          `json:"key" validate:"required"`
	Label string          `json:"label" validate:"required"`
	Price decimal.Decimal `json:"price"`
	Dairy bool            `json:"dairy,omitempty"`
}

// ComponentOptions is the fixed option catalog of the bag builder
type ComponentOptions struct {
	Proteins   []Option `validate:"min=1,dive"`
	Carbs      []Option `validate:"min=1,dive"`
	Vegetables []Option `validate:"min=1,dive"`
	Sauces     []Option `validate:"min=1,dive"`
	Extras     []Option `validate:"dive"`
}

// RecommendationKey indexes the chef's table
type RecommendationKey struct {
	Goal    Goal
	Cuisine Cuisine
}

// BagRules holds the pricing constants and recommendation tables of a bag profile
type BagRules struct {
	BasePrice       decimal.Decimal
	CustomUpcharge  decimal.Decimal
	SteakUpcharge   decimal.Decimal
	SeafoodUpcharge decimal.Decimal
	LargeUpcharge   decimal.Decimal

	SteakKey        string   `validate:"required"`
	PremiumProteins []string `validate:"min=1"`

	Options ComponentOptions

	Recommendations       map[RecommendationKey]Components
	DefaultRecommendation Components
	// VegetableFallbacks is tried in order when the recommended vegetable is disliked.
	VegetableFallbacks []string
	CatchAllVegetable  string `validate:"required"`
	NonDairySauce      string `validate:"required"`
}

// ParsePreset maps user input to a Preset
func ParsePreset(s string) (Preset, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "standard", "chef", "chefs-choice":
		return PresetStandard, nil
	case "custom":
		return PresetCustom, nil
	}
	return "", NewInvalidSelectionError("preset", "must be standard or custom", s)
}

// ParsePortion maps user input to a Portion
func ParsePortion(s string) (Portion, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "standard", "regular":
		return PortionStandard, nil
	case "large":
		return PortionLarge, nil
	}
	return "", NewInvalidSelectionError("portion", "must be standard or large", s)
}

// ParseSpice maps user input to a SpiceLevel in 0..MaxSpice
func ParseSpice(s string) (SpiceLevel, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || SpiceLevel(n) > MaxSpice {
		return 0, NewInvalidSelectionError("spice", "must be between 0 and 3", s)
	}
	return SpiceLevel(n), nil
}

// ParseGoal maps user input to a Goal
func ParseGoal(s string) (Goal, error) {
	switch g := Goal(strings.ToLower(strings.TrimSpace(s))); g {
	case "":
		return GoalBalanced, nil
	case GoalLean, GoalBalanced, GoalBulk:
		return g, nil
	}
	return "", NewInvalidSelectionError("goal", "must be lean, balanced or bulk", s)
}

// ParseCuisine maps user input to a Cuisine
func ParseCuisine(s string) (Cuisine, error) {
	switch c := Cuisine(strings.ToLower(strings.TrimSpace(s))); c {
	case "":
		return CuisineAmerican, nil
	case CuisineAmerican, CuisineMexican, CuisineAsian, CuisineMediterranean:
		return c, nil
	}
	return "", NewInvalidSelectionError("cuisine", "must be american, mexican, asian or mediterranean", s)
}
