package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/kerbaras/recipebook/pkg/api"
	"github.com/kerbaras/recipebook/pkg/data"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Sessions persists the token handed out by activation and sign-in.
type Sessions interface {
	Save(token string) error
	UserID(ctx context.Context) string
}

// RecipeAPI talks to the recipe backend through an api.Client.
type RecipeAPI struct {
	client   *api.Client
	sessions Sessions
	logger   zerolog.Logger
}

func NewRecipeAPI(client *api.Client, sessions Sessions) *RecipeAPI {
	return &RecipeAPI{
		client:   client,
		sessions: sessions,
		logger:   log.With().Str("component", "recipe-api").Logger(),
	}
}

func (r *RecipeAPI) Categories(ctx context.Context) ([]data.Category, error) {
	var categories []data.Category
	err := r.client.Do(ctx, api.Request{
		Name:      "category.list",
		Path:      "/category",
		Cacheable: true,
	}, &categories)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (r *RecipeAPI) CategoryRecipes(ctx context.Context, q CategoryQuery) (*Page, error) {
	if q.ID == "" {
		return nil, fmt.Errorf("category id is required")
	}
	var page Page
	err := r.client.Do(ctx, api.Request{
		Name:      "category.recipes",
		Path:      "/category/" + url.PathEscape(q.ID),
		Query:     pageQuery(q.Page, q.Size, q.OrderBy),
		Cacheable: true,
	}, &page)
	if err != nil {
		return nil, fmt.Errorf("category %s recipes: %w", q.ID, err)
	}
	return &page, nil
}

func (r *RecipeAPI) Search(ctx context.Context, q SearchQuery) (*Page, error) {
	query := pageQuery(q.Page, q.Size, q.OrderBy)
	query.Set("q", q.Text)

	var page Page
	err := r.client.Do(ctx, api.Request{
		Name:  "recipe.search",
		Path:  "/recipe/search",
		Query: query,
	}, &page)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", q.Text, err)
	}
	return &page, nil
}

func pageQuery(page, size int, orderBy string) url.Values {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if size > 0 {
		query.Set("size", strconv.Itoa(size))
	}
	if orderBy != "" {
		query.Set("orderBy", orderBy)
	}
	return query
}

func recipePath(id string) string {
	return "/recipe/" + url.PathEscape(id)
}

func (r *RecipeAPI) FetchRecipeDetails(ctx context.Context, id string) (*data.Recipe, error) {
	var recipe data.Recipe
	err := r.client.Do(ctx, api.Request{
		Name:      "recipe.details",
		Path:      recipePath(id),
		Cacheable: true,
	}, &recipe)
	if err != nil {
		return nil, fmt.Errorf("recipe %s: %w", id, err)
	}
	return &recipe, nil
}

// AuthRecipeDetails is FetchRecipeDetails with the user's liked flag filled in.
func (r *RecipeAPI) AuthRecipeDetails(ctx context.Context, id, userID string) (*data.Recipe, error) {
	var recipe data.Recipe
	err := r.client.Do(ctx, api.Request{
		Name:      "recipe.details",
		Path:      recipePath(id),
		Query:     url.Values{"userId": {userID}},
		Cacheable: true,
		UserID:    userID,
	}, &recipe)
	if err != nil {
		return nil, fmt.Errorf("recipe %s for user %s: %w", id, userID, err)
	}
	return &recipe, nil
}

func (r *RecipeAPI) IncrementLike(ctx context.Context, id string) (*Like, error) {
	var like Like
	err := r.client.Do(ctx, api.Request{
		Name:   "recipe.like",
		Method: http.MethodPut,
		Path:   "/recipe/likes/" + url.PathEscape(id),
		Auth:   true,
	}, &like)
	if err != nil {
		return nil, fmt.Errorf("like recipe %s: %w", id, err)
	}

	r.client.Invalidate(ctx, recipePath(id), nil, "")
	if userID := r.sessions.UserID(ctx); userID != "" {
		r.client.Invalidate(ctx, recipePath(id), url.Values{"userId": {userID}}, userID)
	}
	return &like, nil
}

func (r *RecipeAPI) CreateRecipe(ctx context.Context, draft data.Draft) (*data.Recipe, error) {
	var recipe data.Recipe
	err := r.client.Do(ctx, api.Request{
		Name:   "recipe.create",
		Method: http.MethodPost,
		Path:   "/recipe",
		Body:   draft,
		Auth:   true,
	}, &recipe)
	if err != nil {
		return nil, fmt.Errorf("create recipe: %w", err)
	}
	r.logger.Info().Str("recipe_id", recipe.ID).Msg("Recipe published")
	return &recipe, nil
}

func (r *RecipeAPI) Activate(ctx context.Context, token string) (*Auth, error) {
	var auth Auth
	err := r.client.Do(ctx, api.Request{
		Name:   "auth.activate",
		Method: http.MethodPost,
		Path:   "/auth/activate/" + url.PathEscape(token),
	}, &auth)
	if err != nil {
		return nil, fmt.Errorf("activate account: %w", err)
	}
	// Some backends activate without signing the user in.
	if auth.Token != "" {
		if err := r.store(auth); err != nil {
			return nil, err
		}
	}
	return &auth, nil
}

func (r *RecipeAPI) SignIn(ctx context.Context, email, password string) (*Auth, error) {
	var auth Auth
	err := r.client.Do(ctx, api.Request{
		Name:   "auth.signin",
		Method: http.MethodPost,
		Path:   "/auth/signin",
		Body: map[string]string{
			"email":    email,
			"password": password,
		},
	}, &auth)
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}
	if err := r.store(auth); err != nil {
		return nil, err
	}
	return &auth, nil
}

func (r *RecipeAPI) store(auth Auth) error {
	if auth.Token == "" {
		return fmt.Errorf("backend returned no token")
	}
	return r.sessions.Save(auth.Token)
}
