package screens

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/recipebook/pkg/api"
	"github.com/kerbaras/recipebook/pkg/app/components"
	"github.com/kerbaras/recipebook/pkg/app/styles"
	"github.com/kerbaras/recipebook/pkg/router"
	"github.com/kerbaras/recipebook/pkg/sources"
	"github.com/kerbaras/recipebook/pkg/state"
)

// CategoryScreen lists a category's recipes, driven by the id query
// parameter. Recipe details open on top of it at /category/detail/{id}.
type CategoryScreen struct {
	ctrl    Controller
	store   *state.Store[state.Paged, state.PagedAction]
	grid    *components.RecipeGrid
	spinner components.PageSpinner
	snack   components.ErrorSnack
	details *DetailsScreen

	mounted    bool
	categoryID string
	loadable   bool
	showDial   bool
	detailOpen bool

	req request

	width  int
	height int
}

func NewCategoryScreen(ctrl Controller, stores Stores) *CategoryScreen {
	return &CategoryScreen{
		ctrl:    ctrl,
		store:   stores.Category,
		grid:    components.NewRecipeGrid(),
		spinner: components.NewPageSpinner(""),
		snack:   components.NewErrorSnack(),
		details: NewDetailsScreen(ctrl, stores.Detail),
	}
}

type categoryPageMsg struct {
	ticket state.Ticket
	page   *sources.Page
	more   bool
	err    error
}

func (s *CategoryScreen) Init() tea.Cmd {
	return s.spinner.Tick()
}

func (s *CategoryScreen) SetLocation(loc router.Location) tea.Cmd {
	s.loadable = loc.Path == "/category"

	var cmds []tea.Cmd
	route, recipeID := router.Match(loc)
	if route == router.RouteDetail {
		s.detailOpen = true
		cmds = append(cmds, s.details.Open(recipeID))
	} else if s.detailOpen {
		s.detailOpen = false
		s.details.Unmount()
	}

	id := loc.Param("id")
	if !s.mounted || id != s.categoryID {
		if id == "" {
			return redirect("/")
		}
		s.mounted = true
		s.categoryID = id
		cmds = append(cmds, s.fetch())
	}
	return tea.Batch(cmds...)
}

// Loadable reports whether load more is offered on the current route.
func (s *CategoryScreen) Loadable() bool {
	return s.loadable
}

func (s *CategoryScreen) query(page int) sources.CategoryQuery {
	return sources.CategoryQuery{
		ID:      s.categoryID,
		Page:    page,
		Size:    components.QuerySize(s.width),
		OrderBy: s.store.State().OrderBy,
	}
}

func (s *CategoryScreen) fetch() tea.Cmd {
	ticket := s.store.Begin(state.Begin{})
	s.grid.Selected = 0
	return tea.Batch(s.spinner.Tick(), s.request(ticket, s.query(1), false))
}

func (s *CategoryScreen) loadMore() tea.Cmd {
	st := s.store.State()
	if !s.loadable || st.Busy() || !st.HasMore() {
		return nil
	}
	ticket := s.store.Begin(state.LoadMoreBegin{})
	return tea.Batch(s.spinner.Tick(), s.request(ticket, s.query(st.Page+1), true))
}

func (s *CategoryScreen) request(ticket state.Ticket, q sources.CategoryQuery, more bool) tea.Cmd {
	ctx := s.req.start()
	return func() tea.Msg {
		page, err := s.ctrl.CategoryRecipes(ctx, q)
		return categoryPageMsg{ticket: ticket, page: page, more: more, err: err}
	}
}

// sort applies an entry of the sort dial. -1 closes the dial and
// ResetSortIndex clears the order.
func (s *CategoryScreen) sort(index int) tea.Cmd {
	switch {
	case index == sources.CloseDialIndex:
		s.showDial = false
		return nil
	case index == sources.ResetSortIndex:
		s.showDial = false
		s.store.Dispatch(state.ClearError{})
		s.store.Dispatch(state.ResetSort{})
		return s.fetch()
	case index >= 0 && index < len(sources.OrderBy):
		s.showDial = false
		s.store.Dispatch(state.Sort{OrderBy: sources.OrderBy[index].Value})
		return s.fetch()
	default:
		return nil
	}
}

func (s *CategoryScreen) openCard() tea.Cmd {
	recipe := s.grid.Current()
	if recipe == nil {
		return nil
	}
	return navigate(fmt.Sprintf("/category/detail/%s?id=%s", url.PathEscape(recipe.ID), url.QueryEscape(s.categoryID)))
}

func (s *CategoryScreen) Unmount() {
	s.req.stop()
	s.store.Reset(state.Clean{})
	if s.detailOpen {
		s.details.Unmount()
		s.detailOpen = false
	}
	s.mounted = false
	s.categoryID = ""
}

func (s *CategoryScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.grid.Width = msg.Width
		s.details.Update(msg)
		return s, nil

	case categoryPageMsg:
		s.resolve(msg)
		return s, nil

	case detailsLoadedMsg, likedMsg, recipeSavedMsg:
		_, cmd := s.details.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		if s.detailOpen {
			_, cmd := s.details.Update(msg)
			return s, cmd
		}
		return s, s.handleKey(msg.String())
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	cmds = append(cmds, cmd)
	if s.detailOpen {
		_, cmd = s.details.Update(msg)
		cmds = append(cmds, cmd)
	}
	return s, tea.Batch(cmds...)
}

func (s *CategoryScreen) resolve(msg categoryPageMsg) {
	if msg.err != nil {
		s.store.Resolve(msg.ticket, state.Fail{Message: api.Message(msg.err)})
	} else if msg.more {
		s.store.Resolve(msg.ticket, state.LoadMoreSuccess{Items: msg.page.Recipes, Page: msg.page.Page})
	} else {
		s.store.Resolve(msg.ticket, state.StoreResults{
			Items:      msg.page.Recipes,
			Page:       msg.page.Page,
			TotalPages: msg.page.TotalPages,
			Meta:       msg.page.Category,
		})
	}
	s.grid.SetItems(s.store.State().Items)
}

func (s *CategoryScreen) handleKey(key string) tea.Cmd {
	if s.showDial {
		switch key {
		case "esc":
			return s.sort(sources.CloseDialIndex)
		case "r", "0":
			return s.sort(sources.ResetSortIndex)
		default:
			if n, err := strconv.Atoi(key); err == nil {
				return s.sort(n - 1)
			}
		}
		return nil
	}

	if s.snack.Dismisses(key) && s.store.State().Error != "" {
		s.store.Dispatch(state.ClearError{})
		return nil
	}

	switch key {
	case "left", "h":
		s.grid.Left()
	case "right", "l":
		s.grid.Right()
	case "up", "k":
		s.grid.Up()
	case "down", "j":
		if s.grid.AtEnd() {
			return s.loadMore()
		}
		s.grid.Down()
	case "m":
		return s.loadMore()
	case "o":
		s.showDial = true
	case "enter":
		return s.openCard()
	case "esc", "backspace":
		return back
	}
	return nil
}

func (s *CategoryScreen) View() string {
	if s.detailOpen {
		return s.details.View()
	}

	st := s.store.State()

	title := st.Meta.Name
	if title == "" {
		title = s.categoryID
	}
	header := styles.TitleStyle.Render(title)
	if st.OrderBy != "" {
		header += " " + styles.MutedStyle.Render("sorted by "+orderLabel(st.OrderBy))
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")

	if st.Loading {
		b.WriteString(s.spinner.View(true))
	} else {
		b.WriteString(s.grid.View())
	}
	b.WriteString("\n")

	if st.LoadMoreLoading {
		b.WriteString(s.spinner.View(true) + " " + styles.MutedStyle.Render("loading more.."))
		b.WriteString("\n")
	} else if s.loadable && !st.Loading && st.HasMore() {
		b.WriteString(styles.MutedStyle.Render(fmt.Sprintf("page %d of %d • m: load more", st.Page, st.TotalPages)))
		b.WriteString("\n")
	}

	if s.showDial {
		b.WriteString(s.renderDial())
		b.WriteString("\n")
	}

	if snack := s.snack.View(st.Error); snack != "" {
		b.WriteString(snack)
		b.WriteString("\n")
	}

	b.WriteString(styles.HelpStyle.Render("←↓↑→: move • enter: open • m: load more • o: sort • esc: back"))
	return b.String()
}

func (s *CategoryScreen) renderDial() string {
	lines := make([]string, 0, len(sources.OrderBy)+2)
	for i, option := range sources.OrderBy {
		lines = append(lines, fmt.Sprintf("%d  %s", i+1, option.Label))
	}
	lines = append(lines, "r  Reset", "esc  Close")
	return styles.DialStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func orderLabel(value string) string {
	for _, option := range sources.OrderBy {
		if option.Value == value {
			return strings.ToLower(option.Label)
		}
	}
	return value
}
