package screens

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/recipebook/pkg/api"
	"github.com/kerbaras/recipebook/pkg/app/components"
	"github.com/kerbaras/recipebook/pkg/app/styles"
	"github.com/kerbaras/recipebook/pkg/data"
	"github.com/kerbaras/recipebook/pkg/router"
	"github.com/kerbaras/recipebook/pkg/sources"
	"github.com/kerbaras/recipebook/pkg/state"
)

// DetailsScreen shows one recipe. It is routed on its own at /recipe/{id}
// and opened over the category grid at /category/detail/{id}.
type DetailsScreen struct {
	ctrl    Controller
	store   *state.Store[state.Detail, state.DetailAction]
	spinner components.PageSpinner
	snack   components.ErrorSnack

	recipeID string
	saved    bool
	notice   string

	load request
	like request

	width  int
	height int
}

func NewDetailsScreen(ctrl Controller, store *state.Store[state.Detail, state.DetailAction]) *DetailsScreen {
	return &DetailsScreen{
		ctrl:    ctrl,
		store:   store,
		spinner: components.NewPageSpinner("Loading recipe.."),
		snack:   components.NewErrorSnack(),
	}
}

type detailsLoadedMsg struct {
	ticket state.Ticket
	recipe *data.Recipe
	err    error
}

type likedMsg struct {
	ticket state.Ticket
	like   *sources.Like
	err    error
}

type recipeSavedMsg struct {
	err error
}

func (s *DetailsScreen) Init() tea.Cmd {
	return s.spinner.Tick()
}

func (s *DetailsScreen) SetLocation(loc router.Location) tea.Cmd {
	_, id := router.Match(loc)
	return s.Open(id)
}

// Open loads id unless it is already shown.
func (s *DetailsScreen) Open(id string) tea.Cmd {
	if id == "" {
		return redirect("/")
	}
	if id == s.recipeID {
		return nil
	}
	s.recipeID = id
	s.saved = s.ctrl.IsSaved(id)
	s.notice = ""
	return s.fetch()
}

func (s *DetailsScreen) fetch() tea.Cmd {
	ticket := s.store.Begin(state.DetailBegin{})
	s.like.stop()
	ctx := s.load.start()
	id := s.recipeID
	return tea.Batch(s.spinner.Tick(), func() tea.Msg {
		recipe, err := s.ctrl.Details(ctx, id)
		return detailsLoadedMsg{ticket: ticket, recipe: recipe, err: err}
	})
}

func (s *DetailsScreen) likeRecipe() tea.Cmd {
	st := s.store.State()
	if st.Recipe == nil || st.Loading || st.Liking {
		return nil
	}
	if !s.ctrl.SignedIn(context.Background()) {
		s.store.Dispatch(state.DetailFail{Message: "Sign in to like recipes"})
		return nil
	}

	ticket := s.store.Begin(state.LikeBegin{})
	ctx := s.like.start()
	id := st.Recipe.ID
	return func() tea.Msg {
		like, err := s.ctrl.Like(ctx, id)
		return likedMsg{ticket: ticket, like: like, err: err}
	}
}

func (s *DetailsScreen) saveRecipe() tea.Cmd {
	recipe := s.store.State().Recipe
	if recipe == nil {
		return nil
	}
	r := *recipe
	return func() tea.Msg {
		return recipeSavedMsg{err: s.ctrl.SaveRecipe(&r)}
	}
}

// Unmount drops the recipe and invalidates anything still in flight.
func (s *DetailsScreen) Unmount() {
	s.load.stop()
	s.like.stop()
	s.store.Reset(state.DetailClean{})
	s.recipeID = ""
}

func (s *DetailsScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height

	case tea.KeyMsg:
		key := msg.String()
		if s.snack.Dismisses(key) && s.store.State().Error != "" {
			s.store.Dispatch(state.DetailClearError{})
			return s, nil
		}
		switch key {
		case "l":
			return s, s.likeRecipe()
		case "s":
			return s, s.saveRecipe()
		case "r":
			return s, s.fetch()
		case "esc", "backspace":
			return s, back
		}

	case detailsLoadedMsg:
		if msg.err != nil {
			s.store.Resolve(msg.ticket, state.DetailFail{Message: api.Message(msg.err)})
		} else {
			s.store.Resolve(msg.ticket, state.DetailSuccess{Recipe: *msg.recipe})
		}

	case likedMsg:
		if msg.err != nil {
			s.store.Resolve(msg.ticket, state.DetailFail{Message: api.Message(msg.err)})
		} else {
			s.store.Resolve(msg.ticket, state.LikeSuccess{Likes: msg.like.Likes})
		}

	case recipeSavedMsg:
		if msg.err != nil {
			s.store.Dispatch(state.DetailFail{Message: msg.err.Error()})
		} else {
			s.saved = true
			s.notice = "Saved to your library"
		}

	default:
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd
	}

	return s, nil
}

func (s *DetailsScreen) View() string {
	st := s.store.State()

	var b strings.Builder
	if st.Loading {
		b.WriteString(s.spinner.View(true))
		b.WriteString("\n")
	}

	if st.Recipe != nil {
		b.WriteString(s.renderRecipe(st))
	}

	if snack := s.snack.View(st.Error); snack != "" {
		b.WriteString("\n")
		b.WriteString(snack)
	}
	if s.notice != "" {
		b.WriteString("\n")
		b.WriteString(styles.StatusDone.Render(s.notice))
	}

	b.WriteString(styles.HelpStyle.Render("l: like • s: save • r: refresh • esc: back"))
	return b.String()
}

func (s *DetailsScreen) renderRecipe(st state.Detail) string {
	recipe := st.Recipe

	header := styles.TitleStyle.Render(recipe.Title)

	heart := "♡"
	if recipe.Liked {
		heart = "♥"
	}
	likes := styles.LikeStyle.Render(fmt.Sprintf("%s %d", heart, recipe.Likes))
	if st.Liking {
		likes += " " + styles.StatusBusy.Render("liking..")
	}

	meta := []string{likes}
	if recipe.Author != "" {
		meta = append(meta, styles.MutedStyle.Render("by "+recipe.Author))
	}
	if s.saved {
		meta = append(meta, styles.StatusDone.Render("saved"))
	}

	sections := []string{header, strings.Join(meta, "  ")}
	if recipe.Description != "" {
		sections = append(sections, "", styles.TextStyle.Width(max(s.width-4, 20)).Render(recipe.Description))
	}

	if len(recipe.Ingredients) > 0 {
		var ing strings.Builder
		ing.WriteString(styles.SubtitleStyle.Render("Ingredients"))
		for _, item := range recipe.Ingredients {
			ing.WriteString("\n  • " + item)
		}
		sections = append(sections, "", ing.String())
	}

	if len(recipe.Steps) > 0 {
		var steps strings.Builder
		steps.WriteString(styles.SubtitleStyle.Render("Steps"))
		for i, step := range recipe.Steps {
			steps.WriteString(fmt.Sprintf("\n  %d. %s", i+1, styles.TextStyle.Bold(true).Render(step.Title)))
			if step.Description != "" {
				steps.WriteString("\n     " + step.Description)
			}
		}
		sections = append(sections, "", steps.String())
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}
