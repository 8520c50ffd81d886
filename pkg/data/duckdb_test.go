package data

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *Repository {
	t.Helper()

	repo, err := NewDuckDBRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	return repo
}

func TestSaveAndGetRecipe(t *testing.T) {
	repo := setupTestDB(t)

	recipe := &Recipe{
		ID:          "recipe-1",
		Title:       "Pad Thai",
		Description: "Rice noodles",
		Category:    "thai",
		Ingredients: []string{"noodles", "tamarind"},
		Steps:       []Step{{Title: "Soak", Description: "Soak the noodles"}},
	}

	if err := repo.SaveRecipe(recipe); err != nil {
		t.Fatalf("Failed to save recipe: %v", err)
	}

	saved, err := repo.GetRecipe("recipe-1")
	if err != nil {
		t.Fatalf("Failed to get recipe: %v", err)
	}

	if saved == nil {
		t.Fatal("Expected recipe to be found")
	}

	if saved.Recipe.Title != recipe.Title {
		t.Errorf("Expected Title %s, got %s", recipe.Title, saved.Recipe.Title)
	}

	if len(saved.Recipe.Steps) != 1 || saved.Recipe.Steps[0].Title != "Soak" {
		t.Errorf("Expected steps to round-trip, got %+v", saved.Recipe.Steps)
	}

	if saved.SavedAt.IsZero() {
		t.Error("Expected SavedAt to be set")
	}
}

func TestSaveRecipeRequiresID(t *testing.T) {
	repo := setupTestDB(t)

	if err := repo.SaveRecipe(&Recipe{Title: "No id"}); err == nil {
		t.Error("Expected error when saving a recipe without id")
	}

	if err := repo.SaveRecipe(nil); err == nil {
		t.Error("Expected error when saving a nil recipe")
	}
}

func TestSaveRecipeUpsert(t *testing.T) {
	repo := setupTestDB(t)

	recipe := &Recipe{ID: "recipe-1", Title: "Original", Likes: 1}
	require.NoError(t, repo.SaveRecipe(recipe))

	recipe.Title = "Updated"
	recipe.Likes = 2
	require.NoError(t, repo.SaveRecipe(recipe))

	list, err := repo.ListRecipes()
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, "Updated", list[0].Recipe.Title)
	assert.Equal(t, 2, list[0].Recipe.Likes)
}

func TestListAndDeleteRecipes(t *testing.T) {
	repo := setupTestDB(t)

	recipes, err := repo.ListRecipes()
	if err != nil {
		t.Fatalf("Failed to list recipes: %v", err)
	}

	if len(recipes) != 0 {
		t.Errorf("Expected 0 recipes, got %d", len(recipes))
	}

	for _, id := range []string{"a", "b", "c"} {
		if err := repo.SaveRecipe(&Recipe{ID: id, Title: "Recipe " + id}); err != nil {
			t.Fatalf("Failed to save recipe %s: %v", id, err)
		}
	}

	recipes, err = repo.ListRecipes()
	if err != nil {
		t.Fatalf("Failed to list recipes: %v", err)
	}

	if len(recipes) != 3 {
		t.Errorf("Expected 3 recipes, got %d", len(recipes))
	}

	if err := repo.DeleteRecipe("b"); err != nil {
		t.Fatalf("Failed to delete recipe: %v", err)
	}

	gone, err := repo.GetRecipe("b")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if gone != nil {
		t.Error("Expected recipe to be deleted")
	}
}

func TestGetNonExistentRecipe(t *testing.T) {
	repo := setupTestDB(t)

	saved, err := repo.GetRecipe("non-existent")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if saved != nil {
		t.Error("Expected nil for non-existent ID")
	}
}

func TestSaveDraftAssignsID(t *testing.T) {
	repo := setupTestDB(t)

	draft := &Draft{
		Title: "Ramen",
		Steps: []Step{{Title: "Broth"}, {Title: "Noodles"}},
	}

	require.NoError(t, repo.SaveDraft(draft))
	assert.NotEmpty(t, draft.ID)
	assert.False(t, draft.UpdatedAt.IsZero())

	loaded, err := repo.GetDraft(draft.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "Ramen", loaded.Title)
	assert.Equal(t, draft.ID, loaded.ID)
	assert.Len(t, loaded.Steps, 2)
	assert.Equal(t, "Noodles", loaded.Steps[1].Title)
}

func TestListAndDeleteDrafts(t *testing.T) {
	repo := setupTestDB(t)

	first := &Draft{Title: "First"}
	second := &Draft{Title: "Second"}
	require.NoError(t, repo.SaveDraft(first))
	require.NoError(t, repo.SaveDraft(second))

	drafts, err := repo.ListDrafts()
	require.NoError(t, err)
	assert.Len(t, drafts, 2)

	require.NoError(t, repo.DeleteDraft(first.ID))

	missing, err := repo.GetDraft(first.ID)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSessionValues(t *testing.T) {
	repo := setupTestDB(t)

	value, err := repo.GetValue("token")
	if err != nil {
		t.Fatalf("Expected no error for missing key, got: %v", err)
	}
	if value != "" {
		t.Errorf("Expected empty value, got '%s'", value)
	}

	require.NoError(t, repo.SetValue("token", "abc"))
	require.NoError(t, repo.SetValue("token", "def"))

	value, err = repo.GetValue("token")
	require.NoError(t, err)
	assert.Equal(t, "def", value)

	require.NoError(t, repo.DeleteValue("token"))
	value, err = repo.GetValue("token")
	require.NoError(t, err)
	assert.Empty(t, value)
}
