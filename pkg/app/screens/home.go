package screens

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/recipebook/pkg/api"
	"github.com/kerbaras/recipebook/pkg/app/components"
	"github.com/kerbaras/recipebook/pkg/app/styles"
	"github.com/kerbaras/recipebook/pkg/data"
	"github.com/kerbaras/recipebook/pkg/router"
)

// HomeScreen lists the categories.
type HomeScreen struct {
	ctrl       Controller
	spinner    components.PageSpinner
	snack      components.ErrorSnack
	categories []data.Category
	selected   int
	loading    bool
	err        string
	req        request
	width      int
	height     int
}

func NewHomeScreen(ctrl Controller) *HomeScreen {
	return &HomeScreen{
		ctrl:    ctrl,
		spinner: components.NewPageSpinner("Loading categories.."),
		snack:   components.NewErrorSnack(),
	}
}

type categoriesLoadedMsg struct {
	categories []data.Category
	err        error
}

func (s *HomeScreen) Init() tea.Cmd {
	return s.spinner.Tick()
}

func (s *HomeScreen) SetLocation(router.Location) tea.Cmd {
	if s.categories != nil || s.loading {
		return nil
	}
	return s.load()
}

func (s *HomeScreen) load() tea.Cmd {
	s.loading = true
	s.err = ""
	ctx := s.req.start()
	return tea.Batch(s.spinner.Tick(), func() tea.Msg {
		categories, err := s.ctrl.Categories(ctx)
		return categoriesLoadedMsg{categories: categories, err: err}
	})
}

func (s *HomeScreen) Unmount() {
	s.req.stop()
}

func (s *HomeScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height

	case categoriesLoadedMsg:
		if errors.Is(msg.err, context.Canceled) {
			return s, nil
		}
		s.loading = false
		if msg.err != nil {
			s.err = api.Message(msg.err)
			return s, nil
		}
		s.categories = msg.categories
		if s.categories == nil {
			s.categories = []data.Category{}
		}
		s.selected = 0

	case tea.KeyMsg:
		key := msg.String()
		if s.snack.Dismisses(key) && s.err != "" {
			s.err = ""
			return s, nil
		}
		switch key {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.categories)-1 {
				s.selected++
			}
		case "r":
			return s, s.load()
		case "/":
			return s, navigate("/search")
		case "c":
			return s, navigate("/create")
		case "v":
			return s, navigate("/saved")
		case "u":
			return s, navigate("/signup")
		case "enter":
			if len(s.categories) > 0 {
				return s, navigate("/category?id=" + url.QueryEscape(s.categories[s.selected].ID))
			}
		}

	default:
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *HomeScreen) View() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Categories"))
	b.WriteString("\n")

	switch {
	case s.loading:
		b.WriteString(s.spinner.View(true))
	case len(s.categories) == 0 && s.err == "":
		b.WriteString(styles.MutedStyle.Render("No categories"))
	default:
		for i, category := range s.categories {
			if i == s.selected {
				b.WriteString(styles.ActiveTabStyle.Render("› " + category.Name))
			} else {
				b.WriteString(styles.TextStyle.Render(fmt.Sprintf("  %s", category.Name)))
			}
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")

	if snack := s.snack.View(s.err); snack != "" {
		b.WriteString(snack)
		b.WriteString("\n")
	}

	b.WriteString(styles.HelpStyle.Render("↑/k ↓/j: navigate • enter: open • /: search • c: create • v: saved • u: sign in • r: refresh"))
	return b.String()
}
