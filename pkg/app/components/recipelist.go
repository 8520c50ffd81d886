package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/recipebook/pkg/app/styles"
	"github.com/kerbaras/recipebook/pkg/data"
)

// RecipeList is a vertical, wrap-around selectable list of saved recipes.
type RecipeList struct {
	Items         []*data.SavedRecipe
	SelectedIndex int
	Width         int
	Height        int
}

func NewRecipeList() *RecipeList {
	return &RecipeList{
		Items:  []*data.SavedRecipe{},
		Width:  80,
		Height: 20,
	}
}

func (m *RecipeList) SetItems(items []*data.SavedRecipe) {
	m.Items = items
	if m.SelectedIndex >= len(items) && len(items) > 0 {
		m.SelectedIndex = len(items) - 1
	}
	if len(items) == 0 {
		m.SelectedIndex = 0
	}
}

func (m *RecipeList) Next() {
	if len(m.Items) == 0 {
		return
	}
	m.SelectedIndex++
	if m.SelectedIndex >= len(m.Items) {
		m.SelectedIndex = 0
	}
}

func (m *RecipeList) Prev() {
	if len(m.Items) == 0 {
		return
	}
	m.SelectedIndex--
	if m.SelectedIndex < 0 {
		m.SelectedIndex = len(m.Items) - 1
	}
}

func (m *RecipeList) Selected() *data.SavedRecipe {
	if len(m.Items) == 0 || m.SelectedIndex >= len(m.Items) {
		return nil
	}
	return m.Items[m.SelectedIndex]
}

func (m *RecipeList) View() string {
	if len(m.Items) == 0 {
		emptyMsg := styles.MutedStyle.Render("No saved recipes")
		return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, emptyMsg)
	}

	var b strings.Builder
	for i, item := range m.Items {
		cardStyle := styles.CardStyle
		if i == m.SelectedIndex {
			cardStyle = styles.ActiveCardStyle
		}

		title := styles.TextStyle.Bold(true).Render(item.Recipe.Title)
		meta := styles.MutedStyle.Render(fmt.Sprintf("%s • saved %s", item.Recipe.Category, item.SavedAt.Format("2006-01-02")))
		likes := styles.LikeStyle.Render(fmt.Sprintf("♥ %d", item.Recipe.Likes))

		card := cardStyle.Width(m.Width - 4).Render(lipgloss.JoinVertical(lipgloss.Left, title, meta, likes))
		b.WriteString(card)
		b.WriteString("\n")
	}
	return b.String()
}
