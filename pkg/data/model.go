package data

import "time"

type Recipe struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Category    string    `json:"category,omitempty"`
	Author      string    `json:"author,omitempty"`
	Likes       int       `json:"likes"`
	Liked       bool      `json:"liked,omitempty"` // only set by the userId variant of the detail endpoint
	Ingredients []string  `json:"ingredients,omitempty"`
	Steps       []Step    `json:"steps,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}

type Category struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

type Step struct {
	Title       string `json:"stepTitle"`
	Description string `json:"stepDescriptions"`
	ImageURL    string `json:"stepImage,omitempty"`
}

// Draft is a recipe being written locally. It gets a client-side ID so it
// can be autosaved before the API assigns one.
type Draft struct {
	ID          string    `json:"-"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Ingredients []string  `json:"ingredients"`
	Steps       []Step    `json:"steps"`
	UpdatedAt   time.Time `json:"-"`
}

type SavedRecipe struct {
	Recipe  Recipe
	SavedAt time.Time
}
