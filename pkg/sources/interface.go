package sources

import (
	"context"

	"github.com/kerbaras/recipebook/pkg/data"
)

// Source is the remote recipe backend as seen by screens and commands.
type Source interface {
	Categories(ctx context.Context) ([]data.Category, error)
	CategoryRecipes(ctx context.Context, q CategoryQuery) (*Page, error)
	Search(ctx context.Context, q SearchQuery) (*Page, error)

	FetchRecipeDetails(ctx context.Context, id string) (*data.Recipe, error)
	AuthRecipeDetails(ctx context.Context, id, userID string) (*data.Recipe, error)
	IncrementLike(ctx context.Context, id string) (*Like, error)
	CreateRecipe(ctx context.Context, draft data.Draft) (*data.Recipe, error)

	Activate(ctx context.Context, token string) (*Auth, error)
	SignIn(ctx context.Context, email, password string) (*Auth, error)
}

// Page is one page of a category listing or search.
type Page struct {
	Recipes    []data.Recipe `json:"recipes"`
	Category   data.Category `json:"category"`
	Page       int           `json:"page"`
	TotalPages int           `json:"totalPages"`
}

type Like struct {
	Likes int `json:"likes"`
}

// Auth is returned by activation and sign-in.
type Auth struct {
	Token   string `json:"token"`
	Message string `json:"message,omitempty"`
}

type CategoryQuery struct {
	ID      string
	Page    int
	Size    int
	OrderBy string
}

type SearchQuery struct {
	Text    string
	Page    int
	Size    int
	OrderBy string
}

// OrderOption is one entry of the sort dial.
type OrderOption struct {
	Label string
	Value string
}

// OrderBy is the sort dial's lookup table. Index ResetSortIndex clears the
// order instead of selecting one.
var OrderBy = []OrderOption{
	{Label: "Most liked", Value: "-likes"},
	{Label: "Least liked", Value: "likes"},
	{Label: "Newest", Value: "-createdAt"},
	{Label: "Oldest", Value: "createdAt"},
}

const (
	CloseDialIndex = -1
	ResetSortIndex = 4
)
