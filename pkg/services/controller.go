package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/kerbaras/recipebook/pkg/data"
	"github.com/kerbaras/recipebook/pkg/sources"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Repository is the local storage the controller needs.
type Repository interface {
	SaveRecipe(recipe *data.Recipe) error
	GetRecipe(id string) (*data.SavedRecipe, error)
	ListRecipes() ([]*data.SavedRecipe, error)
	DeleteRecipe(id string) error

	SaveDraft(draft *data.Draft) error
	GetDraft(id string) (*data.Draft, error)
	ListDrafts() ([]*data.Draft, error)
	DeleteDraft(id string) error
}

// Sessions is the signed-in state.
type Sessions interface {
	UserID(ctx context.Context) string
	Clear() error
}

// RecipeController combines the remote backend with the local library. It
// is what screens and commands talk to.
type RecipeController struct {
	source   sources.Source
	repo     Repository
	sessions Sessions
	exporter *Exporter
	logger   zerolog.Logger
}

func NewRecipeController(source sources.Source, repo Repository, sessions Sessions, exporter *Exporter) *RecipeController {
	return &RecipeController{
		source:   source,
		repo:     repo,
		sessions: sessions,
		exporter: exporter,
		logger:   log.With().Str("component", "controller").Logger(),
	}
}

func (c *RecipeController) Categories(ctx context.Context) ([]data.Category, error) {
	return c.source.Categories(ctx)
}

func (c *RecipeController) CategoryRecipes(ctx context.Context, q sources.CategoryQuery) (*sources.Page, error) {
	return c.source.CategoryRecipes(ctx, q)
}

func (c *RecipeController) Search(ctx context.Context, q sources.SearchQuery) (*sources.Page, error) {
	if q.Text == "" {
		return nil, fmt.Errorf("empty query")
	}
	return c.source.Search(ctx, q)
}

// Details fetches a recipe, with the liked flag when someone is signed in.
func (c *RecipeController) Details(ctx context.Context, id string) (*data.Recipe, error) {
	if id == "" {
		return nil, fmt.Errorf("recipe id is required")
	}
	if userID := c.sessions.UserID(ctx); userID != "" {
		return c.source.AuthRecipeDetails(ctx, id, userID)
	}
	return c.source.FetchRecipeDetails(ctx, id)
}

func (c *RecipeController) Like(ctx context.Context, id string) (*sources.Like, error) {
	like, err := c.source.IncrementLike(ctx, id)
	if err != nil {
		return nil, err
	}

	// Keep a saved copy's count in step with the backend.
	saved, err := c.repo.GetRecipe(id)
	if err == nil && saved != nil {
		saved.Recipe.Likes = like.Likes
		saved.Recipe.Liked = true
		if err := c.repo.SaveRecipe(&saved.Recipe); err != nil {
			c.logger.Warn().Err(err).Str("recipe_id", id).Msg("Failed to update saved recipe")
		}
	}
	return like, nil
}

func (c *RecipeController) Activate(ctx context.Context, token string) (*sources.Auth, error) {
	return c.source.Activate(ctx, token)
}

func (c *RecipeController) SignIn(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return fmt.Errorf("email and password are required")
	}
	_, err := c.source.SignIn(ctx, email, password)
	return err
}

func (c *RecipeController) SignOut() error {
	return c.sessions.Clear()
}

func (c *RecipeController) SignedIn(ctx context.Context) bool {
	return c.sessions.UserID(ctx) != ""
}

func (c *RecipeController) SaveRecipe(recipe *data.Recipe) error {
	if recipe == nil {
		return fmt.Errorf("recipe cannot be nil")
	}
	if err := c.repo.SaveRecipe(recipe); err != nil {
		return fmt.Errorf("failed to save recipe: %w", err)
	}
	c.logger.Info().Str("recipe_id", recipe.ID).Msg("Recipe saved")
	return nil
}

func (c *RecipeController) IsSaved(id string) bool {
	saved, err := c.repo.GetRecipe(id)
	return err == nil && saved != nil
}

func (c *RecipeController) SavedRecipes() ([]*data.SavedRecipe, error) {
	return c.repo.ListRecipes()
}

func (c *RecipeController) RemoveSaved(id string) error {
	return c.repo.DeleteRecipe(id)
}

func (c *RecipeController) SaveDraft(draft *data.Draft) error {
	if draft == nil {
		return fmt.Errorf("draft cannot be nil")
	}
	return c.repo.SaveDraft(draft)
}

func (c *RecipeController) Drafts() ([]*data.Draft, error) {
	return c.repo.ListDrafts()
}

func (c *RecipeController) DeleteDraft(id string) error {
	return c.repo.DeleteDraft(id)
}

// ErrIncompleteDraft is returned when publishing a draft that lacks a title,
// a category or steps.
var ErrIncompleteDraft = errors.New("draft is incomplete")

// Publish sends a draft to the backend and drops the local copy on success.
func (c *RecipeController) Publish(ctx context.Context, draft *data.Draft) (*data.Recipe, error) {
	if draft == nil {
		return nil, fmt.Errorf("draft cannot be nil")
	}
	if draft.Title == "" || draft.Category == "" || len(draft.Steps) == 0 {
		return nil, ErrIncompleteDraft
	}

	recipe, err := c.source.CreateRecipe(ctx, *draft)
	if err != nil {
		return nil, err
	}

	if draft.ID != "" {
		if err := c.repo.DeleteDraft(draft.ID); err != nil {
			c.logger.Warn().Err(err).Str("draft_id", draft.ID).Msg("Failed to delete published draft")
		}
	}
	return recipe, nil
}

// ExportSaved writes every saved recipe into one cookbook.
func (c *RecipeController) ExportSaved(ctx context.Context, title string) (string, error) {
	if c.exporter == nil {
		return "", fmt.Errorf("export is not configured")
	}
	saved, err := c.repo.ListRecipes()
	if err != nil {
		return "", fmt.Errorf("failed to list saved recipes: %w", err)
	}

	recipes := make([]data.Recipe, len(saved))
	for i, s := range saved {
		recipes[i] = s.Recipe
	}
	return c.exporter.Export(ctx, title, recipes)
}

// ExportProgress is nil when export is not configured.
func (c *RecipeController) ExportProgress() <-chan ExportProgress {
	if c.exporter == nil {
		return nil
	}
	return c.exporter.Progress()
}

func (c *RecipeController) Close() {
	if c.exporter != nil {
		c.exporter.Close()
	}
}
