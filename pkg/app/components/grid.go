package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/recipebook/pkg/app/styles"
	"github.com/kerbaras/recipebook/pkg/data"
)

const (
	bigScreenWidth = 140
	midScreenWidth = 100
)

// QuerySize is how many recipes to request per page for a terminal width.
func QuerySize(width int) int {
	switch {
	case width >= bigScreenWidth:
		return 12
	case width >= midScreenWidth:
		return 8
	default:
		return 6
	}
}

// Columns is how many cards fit on a grid row.
func Columns(width int) int {
	switch {
	case width >= bigScreenWidth:
		return 4
	case width >= midScreenWidth:
		return 3
	default:
		return 2
	}
}

// BreakArrays splits items into rows of n. The last row may be shorter.
func BreakArrays[T any](items []T, n int) [][]T {
	if n < 1 {
		n = 1
	}
	rows := make([][]T, 0, (len(items)+n-1)/n)
	for start := 0; start < len(items); start += n {
		end := min(start+n, len(items))
		rows = append(rows, items[start:end])
	}
	return rows
}

// RecipeGrid lays out recipe cards in rows and tracks a selected card.
type RecipeGrid struct {
	Items    []data.Recipe
	Selected int
	Width    int
}

func NewRecipeGrid() *RecipeGrid {
	return &RecipeGrid{Width: 80}
}

func (g *RecipeGrid) SetItems(items []data.Recipe) {
	g.Items = items
	if g.Selected >= len(items) {
		g.Selected = max(len(items)-1, 0)
	}
}

func (g *RecipeGrid) columns() int {
	return Columns(g.Width)
}

func (g *RecipeGrid) Left() {
	if g.Selected > 0 {
		g.Selected--
	}
}

func (g *RecipeGrid) Right() {
	if g.Selected < len(g.Items)-1 {
		g.Selected++
	}
}

func (g *RecipeGrid) Up() {
	if g.Selected-g.columns() >= 0 {
		g.Selected -= g.columns()
	}
}

func (g *RecipeGrid) Down() {
	if g.Selected+g.columns() < len(g.Items) {
		g.Selected += g.columns()
	}
}

// AtEnd reports whether the selection is on the last row.
func (g *RecipeGrid) AtEnd() bool {
	return len(g.Items) == 0 || g.Selected/g.columns() == (len(g.Items)-1)/g.columns()
}

func (g *RecipeGrid) Current() *data.Recipe {
	if len(g.Items) == 0 || g.Selected >= len(g.Items) {
		return nil
	}
	return &g.Items[g.Selected]
}

func (g *RecipeGrid) View() string {
	if len(g.Items) == 0 {
		return styles.MutedStyle.Render("No recipes here yet")
	}

	cols := g.columns()
	cardWidth := max(g.Width/cols-4, 16)

	var rows []string
	for r, row := range BreakArrays(g.Items, cols) {
		cards := make([]string, len(row))
		for c, recipe := range row {
			style := styles.CardStyle
			if r*cols+c == g.Selected {
				style = styles.ActiveCardStyle
			}
			cards[c] = style.Width(cardWidth).Render(recipeCard(recipe, cardWidth-2))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return strings.Join(rows, "\n")
}

func recipeCard(recipe data.Recipe, width int) string {
	title := styles.TextStyle.Bold(true).Render(truncate(recipe.Title, width))
	likes := styles.LikeStyle.Render(fmt.Sprintf("♥ %d", recipe.Likes))
	if recipe.Author == "" {
		return lipgloss.JoinVertical(lipgloss.Left, title, likes)
	}
	author := styles.MutedStyle.Render(truncate(recipe.Author, width))
	return lipgloss.JoinVertical(lipgloss.Left, title, author, likes)
}

func truncate(s string, width int) string {
	r := []rune(s)
	if width < 4 || len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}
