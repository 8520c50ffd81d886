package cmd

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/kerbaras/recipebook/pkg/app/styles"
	"github.com/kerbaras/recipebook/pkg/data"
	"github.com/kerbaras/recipebook/pkg/sources"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true).Align(lipgloss.Center)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)
}

func recipeTable(recipes []data.Recipe) *table.Table {
	t := newTable("#", "Title", "Likes", "ID")
	for i, r := range recipes {
		t.Row(strconv.Itoa(i+1), truncateString(r.Title, 50), strconv.Itoa(r.Likes), r.ID)
	}
	return t
}

func printPage(title string, page *sources.Page) {
	if len(page.Recipes) == 0 {
		fmt.Println("No recipes found.")
		return
	}
	fmt.Println(styles.TitleStyle.Render(title))
	fmt.Println(recipeTable(page.Recipes))
	fmt.Println(styles.MutedStyle.Render(fmt.Sprintf("page %d of %d", page.Page, max(page.TotalPages, 1))))
}

func printRecipe(r *data.Recipe) {
	heart := "♡"
	if r.Liked {
		heart = "♥"
	}
	fmt.Println(styles.TitleStyle.Render(r.Title))
	fmt.Println(styles.LikeStyle.Render(fmt.Sprintf("%s %d", heart, r.Likes)) + "  " + styles.MutedStyle.Render(r.ID))
	if r.Description != "" {
		fmt.Println()
		fmt.Println(r.Description)
	}
	if len(r.Ingredients) > 0 {
		fmt.Println()
		fmt.Println(styles.SubtitleStyle.Render("Ingredients"))
		for _, ing := range r.Ingredients {
			fmt.Println("  • " + ing)
		}
	}
	if len(r.Steps) > 0 {
		fmt.Println()
		fmt.Println(styles.SubtitleStyle.Render("Steps"))
		for i, step := range r.Steps {
			fmt.Printf("  %d. %s\n", i+1, step.Title)
			if step.Description != "" {
				fmt.Printf("     %s\n", step.Description)
			}
		}
	}
}

func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
