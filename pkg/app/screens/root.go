package screens

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/recipebook/pkg/app/styles"
	"github.com/kerbaras/recipebook/pkg/router"
)

type screenKey string

const (
	homeView     screenKey = "home"
	categoryView screenKey = "category"
	detailsView  screenKey = "details"
	searchView   screenKey = "search"
	createView   screenKey = "create"
	activateView screenKey = "activate"
	signInView   screenKey = "signin"
	savedView    screenKey = "saved"
	notFoundView screenKey = "not-found"
)

// screenFor picks the screen that renders loc. Category details stay on
// the category screen so the grid survives underneath.
func screenFor(loc router.Location) screenKey {
	route, _ := router.Match(loc)
	switch route {
	case router.RouteHome:
		return homeView
	case router.RouteCategory:
		return categoryView
	case router.RouteDetail:
		if strings.HasPrefix(loc.Path, "/category/") {
			return categoryView
		}
		return detailsView
	case router.RouteSearch:
		return searchView
	case router.RouteCreate:
		return createView
	case router.RouteActivate:
		return activateView
	case router.RouteSignup:
		return signInView
	case router.RouteSaved:
		return savedView
	default:
		return notFoundView
	}
}

type tab struct {
	label string
	path  string
	view  screenKey
}

var tabs = []tab{
	{"Home", "/", homeView},
	{"Search", "/search", searchView},
	{"Saved", "/saved", savedView},
	{"Create", "/create", createView},
	{"Sign in", "/signup", signInView},
}

// RootScreen owns the navigation history and mounts one screen at a time.
type RootScreen struct {
	history *router.History
	screens map[screenKey]Screen
	current screenKey

	size *tea.WindowSizeMsg
}

func NewRootScreen(ctrl Controller, stores Stores, start router.Location) *RootScreen {
	return &RootScreen{
		history: router.NewHistory(start),
		screens: map[screenKey]Screen{
			homeView:     NewHomeScreen(ctrl),
			categoryView: NewCategoryScreen(ctrl, stores),
			detailsView:  NewDetailsScreen(ctrl, stores.Detail),
			searchView:   NewSearchScreen(ctrl, stores),
			createView:   NewCreateScreen(ctrl),
			activateView: NewActivateScreen(ctrl, stores.Activation),
			signInView:   NewSignInScreen(ctrl),
			savedView:    NewSavedScreen(ctrl),
			notFoundView: &notFoundScreen{},
		},
	}
}

// Location is where the app currently is.
func (r *RootScreen) Location() router.Location {
	return r.history.Current()
}

func (r *RootScreen) Init() tea.Cmd {
	return r.mount(r.history.Current())
}

func (r *RootScreen) mount(loc router.Location) tea.Cmd {
	key := screenFor(loc)
	r.current = key
	screen := r.screens[key]

	cmds := []tea.Cmd{screen.Init()}
	if r.size != nil {
		_, cmd := screen.Update(*r.size)
		cmds = append(cmds, cmd)
	}
	cmds = append(cmds, screen.SetLocation(loc))
	return tea.Batch(cmds...)
}

// show makes loc visible, remounting only when the screen changes.
func (r *RootScreen) show(loc router.Location) tea.Cmd {
	key := screenFor(loc)
	if key == r.current && r.current != "" {
		return r.screens[key].SetLocation(loc)
	}
	if r.current != "" {
		r.screens[r.current].Unmount()
	}
	return r.mount(loc)
}

func (r *RootScreen) navigate(msg NavigateMsg) tea.Cmd {
	if msg.Replace {
		r.history.Replace(msg.To)
	} else {
		r.history.Push(msg.To)
	}
	return r.show(msg.To)
}

func (r *RootScreen) typing() bool {
	t, ok := r.screens[r.current].(typing)
	return ok && t.Typing()
}

func (r *RootScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.size = &msg

	case NavigateMsg:
		return r, r.navigate(msg)

	case BackMsg:
		if !r.history.Back() {
			return r, nil
		}
		return r, r.show(r.history.Current())

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return r, tea.Quit
		case "q":
			if !r.typing() {
				return r, tea.Quit
			}
		case "tab", "shift+tab":
			if !r.typing() {
				return r, r.cycleTab(msg.String() == "tab")
			}
		}
	}

	if r.current == "" {
		return r, nil
	}
	_, cmd := r.screens[r.current].Update(msg)
	return r, cmd
}

func (r *RootScreen) cycleTab(forward bool) tea.Cmd {
	at := -1
	for i, t := range tabs {
		if t.view == r.current {
			at = i
			break
		}
	}
	next := 0
	switch {
	case at < 0 && !forward:
		next = len(tabs) - 1
	case at >= 0 && forward:
		next = (at + 1) % len(tabs)
	case at >= 0:
		next = (at - 1 + len(tabs)) % len(tabs)
	}
	return r.navigate(NavigateMsg{To: router.Parse(tabs[next].path)})
}

func (r *RootScreen) View() string {
	content := ""
	if screen, ok := r.screens[r.current]; ok {
		content = screen.View()
	}
	return r.renderTabs() + "\n\n" + content
}

func (r *RootScreen) renderTabs() string {
	rendered := make([]string, len(tabs))
	for i, t := range tabs {
		if t.view == r.current {
			rendered[i] = styles.ActiveTabStyle.Render(t.label)
		} else {
			rendered[i] = styles.InactiveTabStyle.Render(t.label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

type notFoundScreen struct {
	path string
}

func (s *notFoundScreen) Init() tea.Cmd { return nil }

func (s *notFoundScreen) SetLocation(loc router.Location) tea.Cmd {
	s.path = loc.Path
	return nil
}

func (s *notFoundScreen) Unmount() {}

func (s *notFoundScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "backspace":
			return s, back
		case "enter":
			return s, redirect("/")
		}
	}
	return s, nil
}

func (s *notFoundScreen) View() string {
	return styles.TitleStyle.Render("Page not found") + "\n" +
		styles.MutedStyle.Render(s.path) + "\n\n" +
		styles.HelpStyle.Render("enter: home • esc: back")
}
