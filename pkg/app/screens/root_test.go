package screens

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/recipebook/pkg/router"
)

func TestScreenFor(t *testing.T) {
	tests := []struct {
		path string
		want screenKey
	}{
		{"/", homeView},
		{"/category?id=a", categoryView},
		{"/category/detail/r1?id=a", categoryView},
		{"/recipe/r1", detailsView},
		{"/search?q=pie", searchView},
		{"/create", createView},
		{"/activate/tok", activateView},
		{"/signup", signInView},
		{"/saved", savedView},
		{"/nowhere", notFoundView},
	}

	for _, tt := range tests {
		if got := screenFor(router.Parse(tt.path)); got != tt.want {
			t.Errorf("screenFor(%q) = %s, want %s", tt.path, got, tt.want)
		}
	}
}

// pump feeds msgs to the root, following any navigation they cause.
func pump(r *RootScreen, cmd tea.Cmd) {
	for _, msg := range run(cmd) {
		switch msg.(type) {
		case NavigateMsg, BackMsg:
			_, next := r.Update(msg)
			pump(r, next)
		default:
			r.Update(msg)
		}
	}
}

func TestRootNavigation(t *testing.T) {
	ctrl := newMockController()
	stores := NewStores()
	r := NewRootScreen(ctrl, stores, router.Parse("/"))
	r.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	pump(r, r.Init())

	if r.current != homeView {
		t.Fatalf("Expected home, got %s", r.current)
	}

	_, cmd := r.Update(NavigateMsg{To: router.Parse("/category?id=pasta")})
	pump(r, cmd)
	if r.current != categoryView {
		t.Fatalf("Expected category, got %s", r.current)
	}
	if n := len(stores.Category.State().Items); n != 2 {
		t.Errorf("Expected the category to load, got %d items", n)
	}
	if q := ctrl.queries(); q[0].Size != 8 {
		t.Errorf("Expected the mounted screen to know the window size, got size %d", q[0].Size)
	}

	_, cmd = r.Update(NavigateMsg{To: router.Parse("/category/detail/pasta-1?id=pasta")})
	pump(r, cmd)
	if r.current != categoryView {
		t.Errorf("Expected details to open over the category, got %s", r.current)
	}
	if n := len(ctrl.queries()); n != 1 {
		t.Errorf("Expected the category not to refetch, got %d queries", n)
	}
	if stores.Detail.State().Recipe == nil {
		t.Error("Expected the detail overlay to load")
	}

	_, cmd = r.Update(BackMsg{})
	pump(r, cmd)
	if got := r.Location().String(); got != "/category?id=pasta" {
		t.Errorf("Expected to be back on the category, got %s", got)
	}
	if stores.Detail.State().Recipe != nil {
		t.Error("Expected closing the overlay to clean the detail state")
	}

	_, cmd = r.Update(BackMsg{})
	pump(r, cmd)
	if r.current != homeView {
		t.Errorf("Expected home, got %s", r.current)
	}
	if n := len(stores.Category.State().Items); n != 0 {
		t.Errorf("Expected leaving the category to reset it, got %d items", n)
	}

	_, cmd = r.Update(BackMsg{})
	if cmd != nil {
		t.Error("Expected back at the root to do nothing")
	}
}

func TestRootRedirectReplacesHistory(t *testing.T) {
	r := NewRootScreen(newMockController(), NewStores(), router.Parse("/"))
	pump(r, r.Init())

	_, cmd := r.Update(NavigateMsg{To: router.Parse("/category")})
	pump(r, cmd)

	if r.current != homeView {
		t.Errorf("Expected a category without id to land home, got %s", r.current)
	}
	if r.history.Len() != 2 {
		t.Errorf("Expected the redirect to replace the entry, got %d entries", r.history.Len())
	}
}

func TestRootRecipeRoute(t *testing.T) {
	stores := NewStores()
	r := NewRootScreen(newMockController(), stores, router.Parse("/recipe/r9"))
	pump(r, r.Init())

	if r.current != detailsView {
		t.Fatalf("Expected details, got %s", r.current)
	}
	if recipe := stores.Detail.State().Recipe; recipe == nil || recipe.ID != "r9" {
		t.Errorf("Expected r9 to load, got %+v", recipe)
	}
}

func quits(cmd tea.Cmd) bool {
	_, ok := find[tea.QuitMsg](run(cmd))
	return ok
}

func TestRootQuit(t *testing.T) {
	r := NewRootScreen(newMockController(), NewStores(), router.Parse("/"))
	pump(r, r.Init())

	if _, cmd := r.Update(key("q")); !quits(cmd) {
		t.Error("Expected q to quit")
	}

	_, cmd := r.Update(NavigateMsg{To: router.Parse("/signup")})
	pump(r, cmd)
	if _, cmd := r.Update(key("q")); cmd != nil && quits(cmd) {
		t.Error("Expected q to type while a form is focused")
	}
	if _, cmd := r.Update(key("ctrl+c")); !quits(cmd) {
		t.Error("Expected ctrl+c to always quit")
	}
}

func TestRootTabs(t *testing.T) {
	r := NewRootScreen(newMockController(), NewStores(), router.Parse("/"))
	pump(r, r.Init())

	_, cmd := r.Update(key("tab"))
	pump(r, cmd)
	if r.current != searchView {
		t.Errorf("Expected tab to move to search, got %s", r.current)
	}
}
