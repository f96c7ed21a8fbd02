// Package domain defines core business types and interfaces.
package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Section names a menu tab
type Section string

const (
	SectionPremade   Section = "Pre-Made Meals"
	SectionGroceries Section = "Groceries"
	SectionOutside   Section = "Outside Food"
)

// SectionInfo is a section as listed to the user
type SectionInfo struct {
	Name Section `json:"name" validate:"required"`
	Icon string  `json:"icon"`
}

// ItemKind tags the concrete catalog variant behind an Item
type ItemKind string

const (
	KindMenu       ItemKind = "menu"
	KindGrocery    ItemKind = "grocery"
	KindRestaurant ItemKind = "restaurant"
)

// Listing holds the fields every priced catalog entry has
type Listing struct {
	ID    string          `json:"id" validate:"required"`
	Name  string          `json:"name" validate:"required"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image,omitempty"`
}

// Item is implemented by every catalog variant
type Item interface {
	Base() Listing
	Kind() ItemKind
	// Label is the secondary display line: category or restaurant.
	Label() string
}

// PrepRange is an estimated preparation or delivery window in minutes
type PrepRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// IsZero reports whether no range was set
func (r PrepRange) IsZero() bool {
	return r.Min == 0 && r.Max == 0
}

func (r PrepRange) String() string {
	if r.IsZero() {
		return ""
	}
	return fmt.Sprintf("%d-%d", r.Min, r.Max)
}

// MenuItem is a house-made meal
type MenuItem struct {
	Listing
	Calories  int       `json:"cal,omitempty"`
	PrepTime  PrepRange `json:"time"`
	Category  string    `json:"category,omitempty"`
	HasRecipe bool      `json:"hasRecipe,omitempty"`
}

func (m MenuItem) Base() Listing { return m.Listing }
func (m MenuItem) Kind() ItemKind { return KindMenu }
func (m MenuItem) Label() string { return m.Category }

// GroceryItem is a packaged grocery product
type GroceryItem struct {
	Listing
	Category string `json:"category,omitempty"`
}

func (g GroceryItem) Base() Listing { return g.Listing }
func (g GroceryItem) Kind() ItemKind { return KindGrocery }
func (g GroceryItem) Label() string { return g.Category }

// RestaurantItem is ordered from a partner restaurant
type RestaurantItem struct {
	Listing
	PrepTime   PrepRange `json:"time"`
	Restaurant string    `json:"restaurant,omitempty"`
}

func (r RestaurantItem) Base() Listing { return r.Listing }
func (r RestaurantItem) Kind() ItemKind { return KindRestaurant }
func (r RestaurantItem) Label() string { return r.Restaurant }

// compile-time assertions
var (
	_ Item = MenuItem{}
	_ Item = GroceryItem{}
	_ Item = RestaurantItem{}
)

// ItemFilter allows filtering and sorting results from a section listing
type ItemFilter struct {
	Category string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	SortBy   string // "name", "price"
	Order    string // "asc" or "desc"
}

// Macros is a per-serving or aggregate nutrition tuple, kept unrounded
type Macros struct {
	Calories float64 `json:"cal"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// Times scales every field by n
func (m Macros) Times(n float64) Macros {
	return Macros{
		Calories: m.Calories * n,
		Protein:  m.Protein * n,
		Carbs:    m.Carbs * n,
		Fat:      m.Fat * n,
	}
}

// Plus adds two tuples field by field
func (m Macros) Plus(o Macros) Macros {
	return Macros{
		Calories: m.Calories + o.Calories,
		Protein:  m.Protein + o.Protein,
		Carbs:    m.Carbs + o.Carbs,
		Fat:      m.Fat + o.Fat,
	}
}

// Ingredient is one recipe line; Quantity keeps its unit text
type Ingredient struct {
	Name     string `json:"name" validate:"required"`
	Quantity string `json:"qty"`
}

// Recipe backs a menu item with macros, ingredients and steps
type Recipe struct {
	Name         string       `json:"name" validate:"required"`
	BaseServings int          `json:"baseServings" validate:"gt=0"`
	PerServing   Macros       `json:"macrosPerServing"`
	Ingredients  []Ingredient `json:"ingredients" validate:"dive"`
	Steps        []string     `json:"steps"`
}

// Location is a pickup/delivery point and whether it can be delivered to
type Location struct {
	ID         string `json:"id" validate:"required"`
	Name       string `json:"name" validate:"required"`
	CanDeliver bool   `json:"canDeliver"`
}
