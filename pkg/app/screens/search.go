package screens

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/recipebook/pkg/api"
	"github.com/kerbaras/recipebook/pkg/app/components"
	"github.com/kerbaras/recipebook/pkg/app/styles"
	"github.com/kerbaras/recipebook/pkg/router"
	"github.com/kerbaras/recipebook/pkg/sources"
	"github.com/kerbaras/recipebook/pkg/state"
)

// SearchScreen is a paged search over all recipes, with the query kept in
// the location (?q=).
type SearchScreen struct {
	ctrl    Controller
	store   *state.Store[state.Paged, state.PagedAction]
	input   textinput.Model
	grid    *components.RecipeGrid
	spinner components.PageSpinner
	snack   components.ErrorSnack

	query string
	req   request

	width  int
	height int
}

func NewSearchScreen(ctrl Controller, stores Stores) *SearchScreen {
	ti := textinput.New()
	ti.Placeholder = "Search recipes..."
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 50

	return &SearchScreen{
		ctrl:    ctrl,
		store:   stores.Search,
		input:   ti,
		grid:    components.NewRecipeGrid(),
		spinner: components.NewPageSpinner("Searching.."),
		snack:   components.NewErrorSnack(),
	}
}

type searchPageMsg struct {
	ticket state.Ticket
	page   *sources.Page
	more   bool
	err    error
}

func (s *SearchScreen) Init() tea.Cmd {
	return textinput.Blink
}

func (s *SearchScreen) SetLocation(loc router.Location) tea.Cmd {
	q := loc.Param("q")
	if q == "" {
		s.input.Focus()
		return textinput.Blink
	}
	if q == s.query {
		return nil
	}
	s.query = q
	s.input.SetValue(q)
	s.input.Blur()
	return s.fetch()
}

func (s *SearchScreen) Typing() bool {
	return s.input.Focused()
}

func (s *SearchScreen) searchQuery(page int) sources.SearchQuery {
	return sources.SearchQuery{
		Text:    s.query,
		Page:    page,
		Size:    components.QuerySize(s.width),
		OrderBy: s.store.State().OrderBy,
	}
}

func (s *SearchScreen) fetch() tea.Cmd {
	ticket := s.store.Begin(state.Begin{})
	s.grid.Selected = 0
	return tea.Batch(s.spinner.Tick(), s.request(ticket, s.searchQuery(1), false))
}

func (s *SearchScreen) loadMore() tea.Cmd {
	st := s.store.State()
	if s.query == "" || st.Busy() || !st.HasMore() {
		return nil
	}
	ticket := s.store.Begin(state.LoadMoreBegin{})
	return tea.Batch(s.spinner.Tick(), s.request(ticket, s.searchQuery(st.Page+1), true))
}

func (s *SearchScreen) request(ticket state.Ticket, q sources.SearchQuery, more bool) tea.Cmd {
	ctx := s.req.start()
	return func() tea.Msg {
		page, err := s.ctrl.Search(ctx, q)
		return searchPageMsg{ticket: ticket, page: page, more: more, err: err}
	}
}

func (s *SearchScreen) Unmount() {
	s.req.stop()
	s.store.Reset(state.Clean{})
	s.query = ""
}

func (s *SearchScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.grid.Width = msg.Width
		return s, nil

	case searchPageMsg:
		if msg.err != nil {
			s.store.Resolve(msg.ticket, state.Fail{Message: api.Message(msg.err)})
		} else if msg.more {
			s.store.Resolve(msg.ticket, state.LoadMoreSuccess{Items: msg.page.Recipes, Page: msg.page.Page})
		} else {
			s.store.Resolve(msg.ticket, state.StoreResults{
				Items:      msg.page.Recipes,
				Page:       msg.page.Page,
				TotalPages: msg.page.TotalPages,
			})
		}
		s.grid.SetItems(s.store.State().Items)
		return s, nil

	case tea.KeyMsg:
		key := msg.String()
		if s.input.Focused() {
			switch key {
			case "enter":
				q := strings.TrimSpace(s.input.Value())
				if q == "" {
					return s, nil
				}
				return s, redirect("/search?q=" + url.QueryEscape(q))
			case "esc":
				s.input.Blur()
				return s, nil
			}
			s.input, cmd = s.input.Update(msg)
			return s, cmd
		}

		if s.snack.Dismisses(key) && s.store.State().Error != "" {
			s.store.Dispatch(state.ClearError{})
			return s, nil
		}

		switch key {
		case "/", "i":
			s.input.Focus()
			return s, textinput.Blink
		case "left", "h":
			s.grid.Left()
		case "right", "l":
			s.grid.Right()
		case "up", "k":
			s.grid.Up()
		case "down", "j":
			if s.grid.AtEnd() {
				return s, s.loadMore()
			}
			s.grid.Down()
		case "m":
			return s, s.loadMore()
		case "enter":
			if recipe := s.grid.Current(); recipe != nil {
				return s, navigate("/recipe/" + url.PathEscape(recipe.ID))
			}
		case "esc", "backspace":
			return s, back
		}
		return s, nil
	}

	s.spinner, cmd = s.spinner.Update(msg)
	if s.input.Focused() {
		var inputCmd tea.Cmd
		s.input, inputCmd = s.input.Update(msg)
		cmd = tea.Batch(cmd, inputCmd)
	}
	return s, cmd
}

func (s *SearchScreen) View() string {
	st := s.store.State()

	inputStyle := styles.InputStyle
	if s.input.Focused() {
		inputStyle = styles.FocusedInputStyle
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Search"))
	b.WriteString("\n")
	b.WriteString(inputStyle.Render(s.input.View()))
	b.WriteString("\n\n")

	switch {
	case st.Loading:
		b.WriteString(s.spinner.View(true))
	case s.query == "":
		b.WriteString(styles.MutedStyle.Render("Type a query and press enter"))
	case len(st.Items) == 0 && st.Error == "":
		b.WriteString(styles.MutedStyle.Render("No results found"))
	default:
		b.WriteString(styles.SubtitleStyle.Render(fmt.Sprintf("Results for %q", s.query)))
		b.WriteString("\n")
		b.WriteString(s.grid.View())
	}
	b.WriteString("\n")

	if st.LoadMoreLoading {
		b.WriteString(s.spinner.View(true))
		b.WriteString("\n")
	} else if !st.Loading && st.HasMore() {
		b.WriteString(styles.MutedStyle.Render(fmt.Sprintf("page %d of %d • m: load more", st.Page, st.TotalPages)))
		b.WriteString("\n")
	}

	if snack := s.snack.View(st.Error); snack != "" {
		b.WriteString(snack)
		b.WriteString("\n")
	}

	b.WriteString(styles.HelpStyle.Render("enter: search/open • /: edit query • m: load more • esc: back"))
	return b.String()
}
