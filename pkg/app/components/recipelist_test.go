package components

import (
	"strings"
	"testing"
	"time"

	"github.com/kerbaras/recipebook/pkg/data"
)

func savedItems(titles ...string) []*data.SavedRecipe {
	out := make([]*data.SavedRecipe, len(titles))
	for i, title := range titles {
		out[i] = &data.SavedRecipe{
			Recipe:  data.Recipe{ID: title, Title: title, Category: "soups"},
			SavedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		}
	}
	return out
}

func TestNewRecipeList(t *testing.T) {
	list := NewRecipeList()
	if list.SelectedIndex != 0 {
		t.Errorf("Expected SelectedIndex 0, got %d", list.SelectedIndex)
	}
	if len(list.Items) != 0 {
		t.Errorf("Expected 0 items, got %d", len(list.Items))
	}
	if list.Selected() != nil {
		t.Error("Empty list should have no selection")
	}
}

func TestRecipeListSetItemsResetsSelection(t *testing.T) {
	list := NewRecipeList()
	list.SetItems(savedItems("a", "b", "c"))
	list.SelectedIndex = 2

	list.SetItems(savedItems("a"))
	if list.SelectedIndex != 0 {
		t.Errorf("Expected SelectedIndex 0, got %d", list.SelectedIndex)
	}

	list.SetItems(nil)
	if list.SelectedIndex != 0 {
		t.Errorf("Expected SelectedIndex 0 for empty list, got %d", list.SelectedIndex)
	}
}

func TestRecipeListWrapAround(t *testing.T) {
	list := NewRecipeList()
	list.SetItems(savedItems("a", "b", "c"))

	list.Prev()
	if list.SelectedIndex != 2 {
		t.Errorf("Prev() from first should wrap to 2, got %d", list.SelectedIndex)
	}
	list.Next()
	if list.SelectedIndex != 0 {
		t.Errorf("Next() from last should wrap to 0, got %d", list.SelectedIndex)
	}
	list.Next()
	if got := list.Selected(); got == nil || got.Recipe.ID != "b" {
		t.Errorf("Selected() = %v, want b", got)
	}
}

func TestRecipeListView(t *testing.T) {
	list := NewRecipeList()
	if !strings.Contains(list.View(), "No saved recipes") {
		t.Error("Empty list should say so")
	}

	list.SetItems(savedItems("Pho"))
	view := list.View()
	if !strings.Contains(view, "Pho") || !strings.Contains(view, "2024-03-01") {
		t.Errorf("View should show title and save date, got %q", view)
	}
}
