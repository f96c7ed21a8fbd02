package cli

import (
	"fmt"
	"os"

	"mealcart/domain"
	"mealcart/pricing"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

type bagFlags struct {
	preset, protein, carb, veg, sauce string
	portion, spice, goal, cuisine     string
	extras, dislikes                  []string
}

// config parses the flags into a bag configuration, reporting every bad value
func (f *bagFlags) config() (domain.BagConfiguration, error) {
	var errs error
	preset, err := domain.ParsePreset(f.preset)
	errs = multierr.Append(errs, err)
	portion, err := domain.ParsePortion(f.portion)
	errs = multierr.Append(errs, err)
	spice, err := domain.ParseSpice(f.spice)
	errs = multierr.Append(errs, err)
	goal, err := domain.ParseGoal(f.goal)
	errs = multierr.Append(errs, err)
	cuisine, err := domain.ParseCuisine(f.cuisine)
	errs = multierr.Append(errs, err)
	if errs != nil {
		return domain.BagConfiguration{}, errs
	}

	cfg := domain.BagConfiguration{
		Preset:   preset,
		Portion:  portion,
		Spice:    spice,
		Extras:   f.extras,
		Goal:     goal,
		Cuisine:  cuisine,
		Dislikes: f.dislikes,
	}
	if preset != domain.PresetCustom {
		return cfg, nil
	}

	rules, _ := cat.Bag()
	picks := []struct {
		field string
		key   string
		opts  []domain.Option
		dst   *string
	}{
		{"protein", f.protein, rules.Options.Proteins, &cfg.Components.Protein},
		{"carb", f.carb, rules.Options.Carbs, &cfg.Components.Carb},
		{"veg", f.veg, rules.Options.Vegetables, &cfg.Components.Vegetable},
		{"sauce", f.sauce, rules.Options.Sauces, &cfg.Components.Sauce},
	}
	for _, p := range picks {
		if !hasKey(p.opts, p.key) {
			errs = multierr.Append(errs, domain.NewInvalidSelectionError(p.field, "unknown option", p.key))
			continue
		}
		*p.dst = p.key
	}
	for _, x := range f.extras {
		if !hasKey(rules.Options.Extras, x) {
			errs = multierr.Append(errs, domain.NewInvalidSelectionError("extra", "unknown option", x))
		}
	}
	return cfg, errs
}

func hasKey(opts []domain.Option, key string) bool {
	for _, o := range opts {
		if o.Key == key {
			return true
		}
	}
	return false
}

func init() {
	var bf bagFlags
	bagCmd := &cobra.Command{
		Use:   "bag",
		Short: "Build a meal-prep bag",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := rootCmd.PersistentPreRunE(cmd, args); err != nil {
				return err
			}
			if _, ok := cat.Bag(); !ok {
				return domain.NewUnresolvedCatalogReferenceError("bag builder", cat.Profile().Name)
			}
			return nil
		},
	}
	bagCmd.PersistentFlags().StringVar(&bf.preset, "preset", "standard", "standard|custom")
	bagCmd.PersistentFlags().StringVar(&bf.protein, "protein", "chicken", "protein (custom)")
	bagCmd.PersistentFlags().StringVar(&bf.carb, "carb", "white_rice", "carb (custom)")
	bagCmd.PersistentFlags().StringVar(&bf.veg, "veg", "broccoli", "vegetable (custom)")
	bagCmd.PersistentFlags().StringVar(&bf.sauce, "sauce", "teriyaki", "sauce (custom)")
	bagCmd.PersistentFlags().StringVar(&bf.portion, "portion", "standard", "standard|large")
	bagCmd.PersistentFlags().StringVar(&bf.spice, "spice", "0", "spice level 0-3")
	bagCmd.PersistentFlags().StringSliceVar(&bf.extras, "extra", nil, "extras (repeatable)")
	bagCmd.PersistentFlags().StringVar(&bf.goal, "goal", "balanced", "lean|balanced|bulk (standard)")
	bagCmd.PersistentFlags().StringVar(&bf.cuisine, "cuisine", "american", "american|mexican|asian|mediterranean (standard)")
	bagCmd.PersistentFlags().StringSliceVar(&bf.dislikes, "dislike", nil, "disliked components, e.g. dairy (standard)")

	priceCmd := &cobra.Command{
		Use:   "price",
		Short: "Price a bag without adding it",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := bf.config()
			if err != nil {
				return report(err)
			}
			rules, _ := cat.Bag()
			built := pricing.BuildBag(*rules, cfg)
			fmt.Println(pricing.BagName(*rules, built))
			fmt.Printf("Price: %s\n", money(pricing.PriceBag(*rules, built)))
			return nil
		},
	}

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a bag to the cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := bf.config()
			if err != nil {
				return report(err)
			}
			line, t, err := shop.AddBag(cmd.Context(), cfg)
			if err != nil {
				return report(err)
			}
			fmt.Fprintf(os.Stderr, "added %s\n", line.ID)
			printTotals(t)
			return nil
		},
	}

	optionsCmd := &cobra.Command{
		Use:   "options",
		Short: "List bag components and extras",
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, _ := cat.Bag()
			groups := []struct {
				name string
				opts []domain.Option
			}{
				{"Proteins", rules.Options.Proteins},
				{"Carbs", rules.Options.Carbs},
				{"Vegetables", rules.Options.Vegetables},
				{"Sauces", rules.Options.Sauces},
				{"Extras", rules.Options.Extras},
			}
			for _, g := range groups {
				fmt.Printf("%s:\n", g.name)
				for _, o := range g.opts {
					suffix := ""
					if !o.Price.IsZero() {
						suffix = " +" + money(o.Price)
					}
					if o.Dairy {
						suffix += " (dairy)"
					}
					fmt.Printf("  %s: %s%s\n", o.Key, o.Label, suffix)
				}
			}
			return nil
		},
	}

	bagCmd.AddCommand(priceCmd, addCmd, optionsCmd)
	rootCmd.AddCommand(bagCmd)
}
