package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/factory-planner-go/internal/adapters/catalog"
	"github.com/andrescamacho/factory-planner-go/internal/domain/recipe"
)

// NewCatalogCommand creates the catalog command with subcommands
func NewCatalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the recipe catalog",
		Long: `Inspect the recipe catalog used for planning.

The embedded catalog is used unless --catalog or catalog.path points at a YAML file.

Examples:
  factory-planner catalog list
  factory-planner catalog list "science"
  factory-planner catalog show "electronic circuit"
  factory-planner catalog factories`,
	}

	// Add subcommands
	cmd.AddCommand(newCatalogListCommand())
	cmd.AddCommand(newCatalogShowCommand())
	cmd.AddCommand(newCatalogFactoriesCommand())

	return cmd
}

// newCatalogListCommand creates the catalog list subcommand
func newCatalogListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [prefix]",
		Short: "List catalog items, optionally filtered by name prefix",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := loadCatalog()
			if err != nil {
				return err
			}

			names := loaded.Catalog.Names()
			if len(args) == 1 {
				names = loaded.Catalog.Search(args[0])
			}

			displayCatalogList(os.Stdout, loaded.Catalog, names)
			return nil
		},
	}

	return cmd
}

// newCatalogShowCommand creates the catalog show subcommand
func newCatalogShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <item>",
		Short: "Show the recipe of one item (name or unique prefix)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := loadCatalog()
			if err != nil {
				return err
			}

			name, err := loaded.Catalog.Resolve(args[0])
			if err != nil {
				return err
			}
			r, err := loaded.Catalog.Lookup(name)
			if err != nil {
				return err
			}

			displayRecipe(os.Stdout, loaded, r)
			return nil
		},
	}

	return cmd
}

// newCatalogFactoriesCommand creates the catalog factories subcommand
func newCatalogFactoriesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "factories",
		Short: "List factory profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := loadCatalog()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "CATEGORY\tRECIPES\tSPEED\tPRODUCTIVITY")
			fmt.Fprintln(w, "--------\t-------\t-----\t------------")
			for _, key := range loaded.Profiles.Keys() {
				profile, _ := loaded.Profiles.Lookup(key)
				kind := "intermediate"
				if key.Final {
					kind = "final"
				}
				fmt.Fprintf(w, "%s\t%s\t%.4g\t%.4g\n", key.Category, kind, profile.Speed, profile.Productivity)
			}
			return w.Flush()
		},
	}

	return cmd
}

func loadCatalog() (*catalog.Loaded, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	loaded, err := catalog.LoadFile(cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return loaded, nil
}

func displayCatalogList(out io.Writer, c *recipe.Catalog, names []string) {
	if len(names) == 0 {
		fmt.Fprintln(out, "No items found")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ITEM\tFACTORY\tTIME\tINPUTS")
	fmt.Fprintln(w, "----\t-------\t----\t------")
	for _, name := range names {
		r, err := c.Lookup(name)
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%g\t%s\n", r.Name, r.FactoryCategory, r.Normal.Time, formatIngredients(r.Normal.Inputs))
	}
	w.Flush()

	fmt.Fprintf(out, "\nTotal: %d items\n", len(names))
}

func displayRecipe(out io.Writer, loaded *catalog.Loaded, r *recipe.Recipe) {
	fmt.Fprintf(out, "Item:      %s\n", r.Name)
	fmt.Fprintf(out, "Factory:   %s\n", r.ProfileKey())
	fmt.Fprintf(out, "Output:    %d per craft\n", r.OutputQuantity)

	if profile, ok := loaded.Profiles.Lookup(r.ProfileKey()); ok {
		fmt.Fprintf(out, "Profile:   speed %.4g, productivity %.4g\n", profile.Speed, profile.Productivity)
	} else {
		fmt.Fprintf(out, "Profile:   (missing)\n")
	}

	fmt.Fprintln(out, "\nNormal:")
	fmt.Fprintf(out, "  Time:    %gs\n", r.Normal.Time)
	fmt.Fprintf(out, "  Inputs:  %s\n", formatIngredients(r.Normal.Inputs))

	fmt.Fprintln(out, "\nExpensive:")
	fmt.Fprintf(out, "  Time:    %gs\n", r.Expensive.Time)
	fmt.Fprintf(out, "  Inputs:  %s\n", formatIngredients(r.Expensive.Inputs))

	consumers := loaded.Catalog.Consumers(r.Name, recipe.ModeNormal)
	if len(consumers) > 0 {
		fmt.Fprintf(out, "\nUsed by:   %s\n", strings.Join(consumers, ", "))
	}
}

func formatIngredients(inputs []recipe.Ingredient) string {
	if len(inputs) == 0 {
		return "(raw)"
	}
	parts := make([]string, 0, len(inputs))
	for _, in := range inputs {
		parts = append(parts, fmt.Sprintf("%g %s", in.Amount, in.Item))
	}
	return strings.Join(parts, ", ")
}
