package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/kerbaras/recipebook/pkg/data"
	"github.com/kerbaras/recipebook/pkg/sources"
)

type mockSource struct {
	categoriesFunc      func(ctx context.Context) ([]data.Category, error)
	categoryRecipesFunc func(ctx context.Context, q sources.CategoryQuery) (*sources.Page, error)
	searchFunc          func(ctx context.Context, q sources.SearchQuery) (*sources.Page, error)
	detailsFunc         func(ctx context.Context, id string) (*data.Recipe, error)
	authDetailsFunc     func(ctx context.Context, id, userID string) (*data.Recipe, error)
	likeFunc            func(ctx context.Context, id string) (*sources.Like, error)
	createFunc          func(ctx context.Context, draft data.Draft) (*data.Recipe, error)
	activateFunc        func(ctx context.Context, token string) (*sources.Auth, error)
	signInFunc          func(ctx context.Context, email, password string) (*sources.Auth, error)
}

func (m *mockSource) Categories(ctx context.Context) ([]data.Category, error) {
	if m.categoriesFunc != nil {
		return m.categoriesFunc(ctx)
	}
	return nil, nil
}

func (m *mockSource) CategoryRecipes(ctx context.Context, q sources.CategoryQuery) (*sources.Page, error) {
	if m.categoryRecipesFunc != nil {
		return m.categoryRecipesFunc(ctx, q)
	}
	return &sources.Page{Page: 1, TotalPages: 1}, nil
}

func (m *mockSource) Search(ctx context.Context, q sources.SearchQuery) (*sources.Page, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, q)
	}
	return &sources.Page{Page: 1, TotalPages: 1}, nil
}

func (m *mockSource) FetchRecipeDetails(ctx context.Context, id string) (*data.Recipe, error) {
	if m.detailsFunc != nil {
		return m.detailsFunc(ctx, id)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockSource) AuthRecipeDetails(ctx context.Context, id, userID string) (*data.Recipe, error) {
	if m.authDetailsFunc != nil {
		return m.authDetailsFunc(ctx, id, userID)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockSource) IncrementLike(ctx context.Context, id string) (*sources.Like, error) {
	if m.likeFunc != nil {
		return m.likeFunc(ctx, id)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockSource) CreateRecipe(ctx context.Context, draft data.Draft) (*data.Recipe, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, draft)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockSource) Activate(ctx context.Context, token string) (*sources.Auth, error) {
	if m.activateFunc != nil {
		return m.activateFunc(ctx, token)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockSource) SignIn(ctx context.Context, email, password string) (*sources.Auth, error) {
	if m.signInFunc != nil {
		return m.signInFunc(ctx, email, password)
	}
	return nil, fmt.Errorf("not implemented")
}

type mockSessions struct {
	mu      sync.Mutex
	userID  string
	cleared bool
}

func (m *mockSessions) UserID(context.Context) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.userID
}

func (m *mockSessions) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.userID = ""
	m.cleared = true
	return nil
}
