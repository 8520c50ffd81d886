package screens

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/recipebook/pkg/data"
	"github.com/kerbaras/recipebook/pkg/services"
	"github.com/kerbaras/recipebook/pkg/sources"
)

type mockController struct {
	mu sync.Mutex

	categoriesFunc      func(ctx context.Context) ([]data.Category, error)
	categoryRecipesFunc func(ctx context.Context, q sources.CategoryQuery) (*sources.Page, error)
	searchFunc          func(ctx context.Context, q sources.SearchQuery) (*sources.Page, error)
	detailsFunc         func(ctx context.Context, id string) (*data.Recipe, error)
	likeFunc            func(ctx context.Context, id string) (*sources.Like, error)
	activateFunc        func(ctx context.Context, token string) (*sources.Auth, error)
	signInFunc          func(ctx context.Context, email, password string) error
	publishFunc         func(ctx context.Context, draft *data.Draft) (*data.Recipe, error)
	exportFunc          func(ctx context.Context, title string) (string, error)

	signedIn bool
	saved    map[string]*data.SavedRecipe
	drafts   []*data.Draft
	progress chan services.ExportProgress

	categoryQueries []sources.CategoryQuery
	categoriesCalls int
}

func newMockController() *mockController {
	return &mockController{saved: make(map[string]*data.SavedRecipe)}
}

func (m *mockController) Categories(ctx context.Context) ([]data.Category, error) {
	m.mu.Lock()
	m.categoriesCalls++
	m.mu.Unlock()
	if m.categoriesFunc != nil {
		return m.categoriesFunc(ctx)
	}
	return []data.Category{{ID: "desserts", Name: "Desserts"}}, nil
}

func (m *mockController) CategoryRecipes(ctx context.Context, q sources.CategoryQuery) (*sources.Page, error) {
	m.mu.Lock()
	m.categoryQueries = append(m.categoryQueries, q)
	m.mu.Unlock()
	if m.categoryRecipesFunc != nil {
		return m.categoryRecipesFunc(ctx, q)
	}
	return &sources.Page{
		Recipes:    []data.Recipe{{ID: q.ID + "-1", Title: "First"}, {ID: q.ID + "-2", Title: "Second"}},
		Category:   data.Category{ID: q.ID, Name: q.ID},
		Page:       q.Page,
		TotalPages: 3,
	}, nil
}

func (m *mockController) queries() []sources.CategoryQuery {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sources.CategoryQuery(nil), m.categoryQueries...)
}

func (m *mockController) Search(ctx context.Context, q sources.SearchQuery) (*sources.Page, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, q)
	}
	return &sources.Page{Recipes: []data.Recipe{{ID: "found", Title: q.Text}}, Page: 1, TotalPages: 1}, nil
}

func (m *mockController) Details(ctx context.Context, id string) (*data.Recipe, error) {
	if m.detailsFunc != nil {
		return m.detailsFunc(ctx, id)
	}
	return &data.Recipe{ID: id, Title: "Recipe " + id, Likes: 3}, nil
}

func (m *mockController) Like(ctx context.Context, id string) (*sources.Like, error) {
	if m.likeFunc != nil {
		return m.likeFunc(ctx, id)
	}
	return &sources.Like{Likes: 4}, nil
}

func (m *mockController) Activate(ctx context.Context, token string) (*sources.Auth, error) {
	if m.activateFunc != nil {
		return m.activateFunc(ctx, token)
	}
	return &sources.Auth{Token: "jwt", Message: "Account activated"}, nil
}

func (m *mockController) SignIn(ctx context.Context, email, password string) error {
	if m.signInFunc != nil {
		return m.signInFunc(ctx, email, password)
	}
	return nil
}

func (m *mockController) SignedIn(ctx context.Context) bool {
	return m.signedIn
}

func (m *mockController) SaveRecipe(recipe *data.Recipe) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved[recipe.ID] = &data.SavedRecipe{Recipe: *recipe}
	return nil
}

func (m *mockController) IsSaved(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.saved[id]
	return ok
}

func (m *mockController) SavedRecipes() ([]*data.SavedRecipe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*data.SavedRecipe, 0, len(m.saved))
	for _, s := range m.saved {
		out = append(out, s)
	}
	return out, nil
}

func (m *mockController) RemoveSaved(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.saved, id)
	return nil
}

func (m *mockController) SaveDraft(draft *data.Draft) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if draft.ID == "" {
		draft.ID = "draft-1"
	}
	copied := *draft
	m.drafts = append(m.drafts, &copied)
	return nil
}

func (m *mockController) Drafts() ([]*data.Draft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*data.Draft(nil), m.drafts...), nil
}

func (m *mockController) Publish(ctx context.Context, draft *data.Draft) (*data.Recipe, error) {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, draft)
	}
	return &data.Recipe{ID: "new-recipe", Title: draft.Title}, nil
}

func (m *mockController) ExportSaved(ctx context.Context, title string) (string, error) {
	if m.exportFunc != nil {
		return m.exportFunc(ctx, title)
	}
	return "/tmp/cookbook.epub", nil
}

func (m *mockController) ExportProgress() <-chan services.ExportProgress {
	if m.progress == nil {
		return nil
	}
	return m.progress
}

// run executes cmd and every command batched inside it, returning the
// messages produced.
func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, run(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func find[T any](msgs []tea.Msg) (T, bool) {
	for _, msg := range msgs {
		if m, ok := msg.(T); ok {
			return m, true
		}
	}
	var zero T
	return zero, false
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+p":
		return tea.KeyMsg{Type: tea.KeyCtrlP}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}
