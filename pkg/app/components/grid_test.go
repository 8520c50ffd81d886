package components

import (
	"reflect"
	"strings"
	"testing"

	"github.com/kerbaras/recipebook/pkg/data"
)

func TestQuerySize(t *testing.T) {
	tests := []struct {
		width int
		want  int
	}{
		{60, 6},
		{99, 6},
		{100, 8},
		{139, 8},
		{140, 12},
		{220, 12},
	}

	for _, tt := range tests {
		if got := QuerySize(tt.width); got != tt.want {
			t.Errorf("QuerySize(%d) = %d, want %d", tt.width, got, tt.want)
		}
	}
}

func TestBreakArrays(t *testing.T) {
	got := BreakArrays([]int{1, 2, 3, 4, 5}, 2)
	want := [][]int{{1, 2}, {3, 4}, {5}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BreakArrays() = %v, want %v", got, want)
	}

	if rows := BreakArrays([]int{}, 3); len(rows) != 0 {
		t.Errorf("Expected no rows for empty input, got %v", rows)
	}

	if rows := BreakArrays([]int{1, 2}, 0); len(rows) != 2 {
		t.Errorf("Expected n<1 to act as 1, got %v", rows)
	}
}

func gridItems(n int) []data.Recipe {
	items := make([]data.Recipe, n)
	for i := range items {
		items[i] = data.Recipe{ID: string(rune('a' + i)), Title: "Recipe " + string(rune('A'+i))}
	}
	return items
}

func TestRecipeGridNavigation(t *testing.T) {
	grid := NewRecipeGrid()
	grid.Width = 80 // two columns
	grid.SetItems(gridItems(5))

	grid.Right()
	if grid.Selected != 1 {
		t.Errorf("Right() selected %d, want 1", grid.Selected)
	}
	grid.Down()
	if grid.Selected != 3 {
		t.Errorf("Down() selected %d, want 3", grid.Selected)
	}
	grid.Down()
	if grid.Selected != 3 {
		t.Errorf("Down() past the end should not move, got %d", grid.Selected)
	}
	if grid.AtEnd() {
		t.Error("Index 3 is not on the last row")
	}
	grid.Left()
	grid.Down()
	if grid.Selected != 4 || !grid.AtEnd() {
		t.Errorf("Expected to reach the last row, selected %d", grid.Selected)
	}
	grid.Up()
	if grid.Selected != 2 {
		t.Errorf("Up() selected %d, want 2", grid.Selected)
	}

	if got := grid.Current(); got == nil || got.ID != "c" {
		t.Errorf("Current() = %v, want recipe c", got)
	}
}

func TestRecipeGridSetItemsClampsSelection(t *testing.T) {
	grid := NewRecipeGrid()
	grid.SetItems(gridItems(4))
	grid.Selected = 3
	grid.SetItems(gridItems(2))
	if grid.Selected != 1 {
		t.Errorf("Selected = %d, want 1", grid.Selected)
	}
	grid.SetItems(nil)
	if grid.Selected != 0 || grid.Current() != nil {
		t.Error("Empty grid should have no selection")
	}
}

func TestRecipeGridView(t *testing.T) {
	grid := NewRecipeGrid()
	if !strings.Contains(grid.View(), "No recipes") {
		t.Error("Empty grid should say so")
	}

	grid.SetItems([]data.Recipe{{ID: "1", Title: "Pancakes", Likes: 7}})
	view := grid.View()
	if !strings.Contains(view, "Pancakes") || !strings.Contains(view, "♥ 7") {
		t.Errorf("View should contain the card, got %q", view)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate() = %q", got)
	}
	if got := truncate("a very long title", 10); got != "a very ..." {
		t.Errorf("truncate() = %q", got)
	}
}
