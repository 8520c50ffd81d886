package data

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/marcboeker/go-duckdb/v2"
)

const schema = `
CREATE TABLE IF NOT EXISTS saved_recipes (
	id       VARCHAR PRIMARY KEY,
	title    VARCHAR NOT NULL,
	category VARCHAR,
	payload  VARCHAR NOT NULL,
	saved_at TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS drafts (
	id         VARCHAR PRIMARY KEY,
	title      VARCHAR,
	payload    VARCHAR NOT NULL,
	updated_at TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS session (
	key   VARCHAR PRIMARY KEY,
	value VARCHAR NOT NULL
);`

func InitDuckDB(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return db, nil
}

type Repository struct {
	db *sql.DB
}

func NewDuckDBRepository(path string) (*Repository, error) {
	db, err := InitDuckDB(path)
	if err != nil {
		return nil, err
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

// SaveRecipe stores a recipe in the local library, replacing any earlier copy.
func (r *Repository) SaveRecipe(recipe *Recipe) error {
	if recipe == nil || recipe.ID == "" {
		return fmt.Errorf("recipe must have an id")
	}

	payload, err := json.Marshal(recipe)
	if err != nil {
		return fmt.Errorf("encode recipe: %w", err)
	}

	_, err = r.db.Exec(
		`INSERT OR REPLACE INTO saved_recipes (id, title, category, payload, saved_at) VALUES (?, ?, ?, ?, ?)`,
		recipe.ID, recipe.Title, recipe.Category, string(payload), time.Now().UTC(),
	)
	return err
}

// GetRecipe returns nil, nil when the recipe is not saved.
func (r *Repository) GetRecipe(id string) (*SavedRecipe, error) {
	row := r.db.QueryRow(`SELECT payload, saved_at FROM saved_recipes WHERE id = ?`, id)
	saved, err := scanSaved(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return saved, err
}

func (r *Repository) ListRecipes() ([]*SavedRecipe, error) {
	rows, err := r.db.Query(`SELECT payload, saved_at FROM saved_recipes ORDER BY saved_at DESC, title`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*SavedRecipe
	for rows.Next() {
		saved, err := scanSaved(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, saved)
	}
	return out, rows.Err()
}

func (r *Repository) DeleteRecipe(id string) error {
	_, err := r.db.Exec(`DELETE FROM saved_recipes WHERE id = ?`, id)
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSaved(s scanner) (*SavedRecipe, error) {
	var (
		payload string
		savedAt time.Time
	)
	if err := s.Scan(&payload, &savedAt); err != nil {
		return nil, err
	}

	var recipe Recipe
	if err := json.Unmarshal([]byte(payload), &recipe); err != nil {
		return nil, fmt.Errorf("decode saved recipe: %w", err)
	}
	return &SavedRecipe{Recipe: recipe, SavedAt: savedAt}, nil
}

// SaveDraft upserts a draft. Drafts without an ID get a new UUID.
func (r *Repository) SaveDraft(draft *Draft) error {
	if draft == nil {
		return fmt.Errorf("draft cannot be nil")
	}
	if draft.ID == "" {
		draft.ID = uuid.NewString()
	}
	draft.UpdatedAt = time.Now().UTC()

	payload, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}

	_, err = r.db.Exec(
		`INSERT OR REPLACE INTO drafts (id, title, payload, updated_at) VALUES (?, ?, ?, ?)`,
		draft.ID, draft.Title, string(payload), draft.UpdatedAt,
	)
	return err
}

// GetDraft returns nil, nil when no draft has the given id.
func (r *Repository) GetDraft(id string) (*Draft, error) {
	row := r.db.QueryRow(`SELECT id, payload, updated_at FROM drafts WHERE id = ?`, id)
	draft, err := scanDraft(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return draft, err
}

func (r *Repository) ListDrafts() ([]*Draft, error) {
	rows, err := r.db.Query(`SELECT id, payload, updated_at FROM drafts ORDER BY updated_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Draft
	for rows.Next() {
		draft, err := scanDraft(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, draft)
	}
	return out, rows.Err()
}

func (r *Repository) DeleteDraft(id string) error {
	_, err := r.db.Exec(`DELETE FROM drafts WHERE id = ?`, id)
	return err
}

func scanDraft(s scanner) (*Draft, error) {
	var (
		id        string
		payload   string
		updatedAt time.Time
	)
	if err := s.Scan(&id, &payload, &updatedAt); err != nil {
		return nil, err
	}

	var draft Draft
	if err := json.Unmarshal([]byte(payload), &draft); err != nil {
		return nil, fmt.Errorf("decode draft: %w", err)
	}
	draft.ID = id
	draft.UpdatedAt = updatedAt
	return &draft, nil
}

// GetValue reads a session value. Missing keys return "", nil.
func (r *Repository) GetValue(key string) (string, error) {
	var value string
	err := r.db.QueryRow(`SELECT value FROM session WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return value, err
}

func (r *Repository) SetValue(key, value string) error {
	_, err := r.db.Exec(`INSERT OR REPLACE INTO session (key, value) VALUES (?, ?)`, key, value)
	return err
}

func (r *Repository) DeleteValue(key string) error {
	_, err := r.db.Exec(`DELETE FROM session WHERE key = ?`, key)
	return err
}
