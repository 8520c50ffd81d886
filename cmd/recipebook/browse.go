package cmd

import (
	"fmt"
	"strings"

	"github.com/kerbaras/recipebook/pkg/sources"
	"github.com/spf13/cobra"
)

var (
	pageFlag  int
	sizeFlag  int
	orderFlag string
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List recipe categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setupEnv(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer e.Close()

		categories, err := e.ctrl.Categories(cmd.Context())
		if err != nil {
			return fmt.Errorf("list categories: %w", err)
		}
		if len(categories) == 0 {
			fmt.Println("No categories.")
			return nil
		}

		t := newTable("Name", "ID")
		for _, c := range categories {
			t.Row(c.Name, c.ID)
		}
		fmt.Println(t)
		return nil
	},
}

var categoryCmd = &cobra.Command{
	Use:   "category [id]",
	Short: "List the recipes of a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		order, err := orderValue(orderFlag)
		if err != nil {
			return err
		}

		e, err := setupEnv(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer e.Close()

		page, err := e.ctrl.CategoryRecipes(cmd.Context(), sources.CategoryQuery{
			ID:      args[0],
			Page:    pageFlag,
			Size:    sizeFlag,
			OrderBy: order,
		})
		if err != nil {
			return fmt.Errorf("list category: %w", err)
		}

		title := page.Category.Name
		if title == "" {
			title = args[0]
		}
		printPage(title, page)
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search for recipes",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		order, err := orderValue(orderFlag)
		if err != nil {
			return err
		}

		e, err := setupEnv(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer e.Close()

		query := strings.Join(args, " ")
		page, err := e.ctrl.Search(cmd.Context(), sources.SearchQuery{
			Text:    query,
			Page:    pageFlag,
			Size:    sizeFlag,
			OrderBy: order,
		})
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
		printPage(fmt.Sprintf("Results for %q", query), page)
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a recipe",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setupEnv(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer e.Close()

		recipe, err := e.ctrl.Details(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("fetch recipe: %w", err)
		}
		printRecipe(recipe)
		return nil
	},
}

// orderValue accepts either a dial label ("most liked") or a raw backend
// value ("-likes").
func orderValue(flag string) (string, error) {
	if flag == "" {
		return "", nil
	}
	for _, option := range sources.OrderBy {
		if strings.EqualFold(option.Label, flag) || option.Value == flag {
			return option.Value, nil
		}
	}
	return "", fmt.Errorf("unknown order %q", flag)
}

func init() {
	for _, c := range []*cobra.Command{categoryCmd, searchCmd} {
		c.Flags().IntVar(&pageFlag, "page", 1, "page to fetch")
		c.Flags().IntVar(&sizeFlag, "size", 12, "recipes per page")
		c.Flags().StringVar(&orderFlag, "order", "", `sort order: "most liked", "least liked", "newest", "oldest"`)
	}

	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(categoryCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(showCmd)
}
