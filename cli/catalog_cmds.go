package cli

import (
	"fmt"
	"os"
	"strings"

	"mealcart/domain"
	"mealcart/recipe"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// resolveSection accepts a section name, case-insensitive, or a prefix of it
// such as "premade" or "outside"
func resolveSection(arg string) (domain.Section, error) {
	key := sectionKey(arg)
	for _, s := range cat.Sections() {
		if k := sectionKey(string(s.Name)); key != "" && strings.HasPrefix(k, key) {
			return s.Name, nil
		}
	}
	return "", domain.NewUnresolvedCatalogReferenceError("section", arg)
}

func init() {
	// sections
	sectionsCmd := &cobra.Command{
		Use:   "sections",
		Short: "List menu sections",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("%s\n", cat.Profile().Brand)
			for _, s := range cat.Sections() {
				fmt.Printf("%s %s\n", s.Icon, s.Name)
			}
			return nil
		},
	}
	rootCmd.AddCommand(sectionsCmd)

	// items
	var iCategory, iSort, iOrder, iOutput string
	var iMin, iMax float64
	itemsCmd := &cobra.Command{
		Use:   "items [section]",
		Short: "List items, optionally in one section",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := domain.ItemFilter{Category: iCategory, SortBy: iSort, Order: iOrder}
			if cmd.Flags().Changed("min-price") {
				v := decimal.NewFromFloat(iMin)
				filter.MinPrice = &v
			}
			if cmd.Flags().Changed("max-price") {
				v := decimal.NewFromFloat(iMax)
				filter.MaxPrice = &v
			}

			sections := make([]domain.Section, 0)
			if len(args) == 1 {
				s, err := resolveSection(args[0])
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					return nil
				}
				sections = append(sections, s)
			} else {
				for _, s := range cat.Sections() {
					sections = append(sections, s.Name)
				}
			}

			if iOutput == "json" {
				out := make(map[domain.Section][]domain.Item, len(sections))
				for _, s := range sections {
					out[s] = cat.Items(s, filter)
				}
				return printJSON(out)
			}
			for _, s := range sections {
				items := cat.Items(s, filter)
				if len(sections) > 1 {
					if len(items) == 0 {
						continue
					}
					fmt.Printf("== %s ==\n", s)
				}
				for _, it := range items {
					printItem(it)
				}
			}
			return nil
		},
	}
	itemsCmd.Flags().StringVar(&iCategory, "category", "", "category or restaurant")
	itemsCmd.Flags().Float64Var(&iMin, "min-price", 0, "min price")
	itemsCmd.Flags().Float64Var(&iMax, "max-price", 0, "max price")
	itemsCmd.Flags().StringVar(&iSort, "sort-by", "", "sort field: name|price")
	itemsCmd.Flags().StringVar(&iOrder, "order", "asc", "sort order")
	itemsCmd.Flags().StringVar(&iOutput, "output", "", "output format")
	rootCmd.AddCommand(itemsCmd)

	// recipe
	var servings int
	var rOutput string
	recipeCmd := &cobra.Command{
		Use:   "recipe <name>",
		Short: "Show a recipe scaled to a serving count",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				for _, name := range cat.RecipeNames() {
					fmt.Println(name)
				}
				return nil
			}
			name := strings.Join(args, " ")
			r, ok := cat.Recipe(name)
			if !ok {
				fmt.Fprintln(os.Stderr, domain.NewUnresolvedCatalogReferenceError("recipe", name))
				return nil
			}
			n := servings
			if n <= 0 {
				n = r.BaseServings
			}
			scaled := recipe.Scale(r, n)

			if rOutput == "json" {
				return printJSON(struct {
					Name        string              `json:"name"`
					Servings    int                 `json:"servings"`
					PerServing  domain.MacroTotals  `json:"perServing"`
					Ingredients []domain.Ingredient `json:"ingredients"`
					Steps       []string            `json:"steps"`
				}{r.Name, n, r.PerServing.Round(), scaled, r.Steps})
			}

			m := r.PerServing.Round()
			fmt.Printf("%s (serves %d, base %d)\n", r.Name, n, r.BaseServings)
			fmt.Printf("Per serving: %d cal | %dg protein | %dg carbs | %dg fat\n", m.Calories, m.Protein, m.Carbs, m.Fat)
			fmt.Println("Ingredients:")
			for _, ing := range scaled {
				fmt.Printf("  - %s: %s\n", ing.Name, ing.Quantity)
			}
			fmt.Println("Steps:")
			for i, s := range r.Steps {
				fmt.Printf("  %d. %s\n", i+1, s)
			}
			return nil
		},
	}
	recipeCmd.Flags().IntVar(&servings, "servings", 0, "servings (default: recipe base)")
	recipeCmd.Flags().StringVar(&rOutput, "output", "", "output format")
	rootCmd.AddCommand(recipeCmd)
}
