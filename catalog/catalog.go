package catalog

import (
	"fmt"
	"sort"
	"strings"

	"mealcart/domain"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
)

var validate = validator.New()

// Catalog is a validated, read-only view over one Profile
type Catalog struct {
	profile   Profile
	items     map[string]domain.Item
	recipes   map[string]domain.Recipe
	locations map[string]domain.Location
}

// New validates p and indexes it for lookup
func New(p Profile) (*Catalog, error) {
	if err := Validate(p); err != nil {
		return nil, fmt.Errorf("profile %s: %w", p.Name, err)
	}
	c := &Catalog{
		profile:   p,
		items:     make(map[string]domain.Item),
		recipes:   make(map[string]domain.Recipe, len(p.Recipes)),
		locations: make(map[string]domain.Location, len(p.Locations)),
	}
	for _, list := range p.Items {
		for _, it := range list {
			c.items[it.Base().ID] = it
		}
	}
	for _, r := range p.Recipes {
		c.recipes[r.Name] = r
	}
	for _, l := range p.Locations {
		c.locations[l.ID] = l
	}
	return c, nil
}

// Load looks up a built-in profile by name and builds its Catalog
func Load(name string) (*Catalog, error) {
	p, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return New(p)
}

// Validate checks struct constraints (bag rules included) and the cross-table
// rules of a profile. All problems are reported together.
func Validate(p Profile) error {
	var errs error
	if err := validate.Struct(p); err != nil {
		errs = multierr.Append(errs, err)
	}

	seen := make(map[string]domain.Section)
	recipes := make(map[string]bool, len(p.Recipes))
	for _, r := range p.Recipes {
		recipes[r.Name] = true
	}
	for section, list := range p.Items {
		for _, it := range list {
			base := it.Base()
			if err := validate.Struct(base); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("item in %s: %w", section, err))
				continue
			}
			if prev, dup := seen[base.ID]; dup {
				errs = multierr.Append(errs, fmt.Errorf("item %s: duplicate id (also in %s)", base.ID, prev))
			}
			seen[base.ID] = section
			if base.Price.IsNegative() {
				errs = multierr.Append(errs, fmt.Errorf("item %s: negative price %s", base.ID, base.Price))
			}
			if m, ok := it.(domain.MenuItem); ok && m.HasRecipe && !recipes[base.Name] {
				errs = multierr.Append(errs, fmt.Errorf("item %s: recipe %q not found", base.ID, base.Name))
			}
		}
	}

	for _, t := range p.BundleTiers {
		if t.Discount.IsNegative() {
			errs = multierr.Append(errs, fmt.Errorf("bundle tier %d: negative discount", t.Threshold))
		}
	}
	for _, r := range p.Promos {
		if r.Kind == domain.PromoPercent && (r.Rate.IsNegative() || r.Rate.GreaterThan(decimal.NewFromInt(1))) {
			errs = multierr.Append(errs, fmt.Errorf("promo %s: rate %s outside [0,1]", r.Code, r.Rate))
		}
	}
	if p.Discount == domain.DiscountBundle && len(p.BundleTiers) == 0 {
		errs = multierr.Append(errs, fmt.Errorf("bundle discount mode without tiers"))
	}
	if p.PremadePrice.IsNegative() || p.DeliveryFee.IsNegative() {
		errs = multierr.Append(errs, fmt.Errorf("negative premade price or delivery fee"))
	}

	found := false
	for _, l := range p.Locations {
		if l.ID == p.DefaultLocation {
			found = true
		}
	}
	if !found {
		errs = multierr.Append(errs, fmt.Errorf("default location %q not listed", p.DefaultLocation))
	}

	if p.Bag != nil {
		errs = multierr.Append(errs, validateBag(p.Bag))
	}
	return errs
}

func validateBag(b *domain.BagRules) error {
	var errs error
	for _, d := range []decimal.Decimal{b.BasePrice, b.CustomUpcharge, b.SteakUpcharge, b.SeafoodUpcharge, b.LargeUpcharge} {
		if d.IsNegative() {
			errs = multierr.Append(errs, fmt.Errorf("bag rules: negative price constant %s", d))
		}
	}
	for _, x := range b.Options.Extras {
		if x.Price.IsNegative() {
			errs = multierr.Append(errs, fmt.Errorf("extra %s: negative price", x.Key))
		}
	}
	if !hasOption(b.Options.Vegetables, b.CatchAllVegetable) {
		errs = multierr.Append(errs, fmt.Errorf("catch-all vegetable %q not an option", b.CatchAllVegetable))
	}
	if !hasOption(b.Options.Sauces, b.NonDairySauce) {
		errs = multierr.Append(errs, fmt.Errorf("non-dairy sauce %q not an option", b.NonDairySauce))
	}
	return errs
}

func hasOption(opts []domain.Option, key string) bool {
	for _, o := range opts {
		if o.Key == key {
			return true
		}
	}
	return false
}

// Profile returns the profile the catalog was built from
func (c *Catalog) Profile() Profile {
	return c.profile
}

// Sections lists the menu tabs in display order
func (c *Catalog) Sections() []domain.SectionInfo {
	out := make([]domain.SectionInfo, len(c.profile.Sections))
	copy(out, c.profile.Sections)
	return out
}

// Items lists a section, filtered and sorted. An unknown section lists nothing.
func (c *Catalog) Items(section domain.Section, filter domain.ItemFilter) []domain.Item {
	list := c.profile.Items[section]
	out := make([]domain.Item, 0, len(list))
	for _, it := range list {
		price := it.Base().Price
		if filter.Category != "" && !strings.EqualFold(it.Label(), filter.Category) {
			continue
		}
		if filter.MinPrice != nil && price.LessThan(*filter.MinPrice) {
			continue
		}
		if filter.MaxPrice != nil && price.GreaterThan(*filter.MaxPrice) {
			continue
		}
		out = append(out, it)
	}

	desc := filter.Order == "desc"
	switch filter.SortBy {
	case "name":
		sort.SliceStable(out, func(i, j int) bool {
			if desc {
				return out[i].Base().Name > out[j].Base().Name
			}
			return out[i].Base().Name < out[j].Base().Name
		})
	case "price":
		sort.SliceStable(out, func(i, j int) bool {
			if desc {
				return out[i].Base().Price.GreaterThan(out[j].Base().Price)
			}
			return out[i].Base().Price.LessThan(out[j].Base().Price)
		})
	}
	return out
}

// Item looks up an item by id across all sections
func (c *Catalog) Item(id string) (domain.Item, bool) {
	it, ok := c.items[id]
	return it, ok
}

// Recipe looks up a recipe by its exact name
func (c *Catalog) Recipe(name string) (domain.Recipe, bool) {
	r, ok := c.recipes[name]
	return r, ok
}

// RecipeNames lists recipe names alphabetically
func (c *Catalog) RecipeNames() []string {
	out := make([]string, 0, len(c.recipes))
	for name := range c.recipes {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// ResolveRecipe finds the recipe behind a cart line: by the line's name first,
// then by a premade-<Recipe> id.
func (c *Catalog) ResolveRecipe(lineID, lineName string) (domain.Recipe, bool) {
	if r, ok := c.recipes[lineName]; ok {
		return r, true
	}
	if name, ok := strings.CutPrefix(lineID, domain.PremadePrefix); ok {
		if r, ok := c.recipes[name]; ok {
			return r, true
		}
	}
	return domain.Recipe{}, false
}

// PremadeItem synthesizes the orderable line for a recipe ordered pre-made
func (c *Catalog) PremadeItem(recipeName string) (domain.Item, bool) {
	if _, ok := c.recipes[recipeName]; !ok {
		return nil, false
	}
	return domain.MenuItem{
		Listing: domain.Listing{
			ID:    domain.PremadePrefix + recipeName,
			Name:  recipeName,
			Price: c.profile.PremadePrice,
			Image: c.profile.PremadeImage,
		},
		HasRecipe: true,
	}, true
}

// Location looks up a pickup/delivery point by id
func (c *Catalog) Location(id string) (domain.Location, bool) {
	l, ok := c.locations[id]
	return l, ok
}

// Bag returns the bag builder rules, if the profile has a builder
func (c *Catalog) Bag() (*domain.BagRules, bool) {
	return c.profile.Bag, c.profile.Bag != nil
}

// Label resolves an id to its display name, falling back to the raw id
func (c *Catalog) Label(id string) string {
	if it, ok := c.items[id]; ok {
		return it.Base().Name
	}
	return id
}
