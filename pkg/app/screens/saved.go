package screens

import (
	"context"
	"errors"
	"net/url"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/recipebook/pkg/api"
	"github.com/kerbaras/recipebook/pkg/app/components"
	"github.com/kerbaras/recipebook/pkg/app/styles"
	"github.com/kerbaras/recipebook/pkg/data"
	"github.com/kerbaras/recipebook/pkg/router"
	"github.com/kerbaras/recipebook/pkg/services"
)

const cookbookTitle = "My Cookbook"

// SavedScreen is the offline library of saved recipes, exportable as an
// EPUB cookbook.
type SavedScreen struct {
	ctrl    Controller
	list    *components.RecipeList
	tracker *components.ExportTracker
	snack   components.ErrorSnack

	exporting bool
	err       string
	export    request
	exportCtx context.Context

	width  int
	height int
}

func NewSavedScreen(ctrl Controller) *SavedScreen {
	return &SavedScreen{
		ctrl:    ctrl,
		list:    components.NewRecipeList(),
		tracker: components.NewExportTracker(80),
		snack:   components.NewErrorSnack(),
	}
}

type savedLoadedMsg struct {
	recipes []*data.SavedRecipe
	err     error
}

type exportDoneMsg struct {
	path string
	err  error
}

func (s *SavedScreen) Init() tea.Cmd {
	return nil
}

func (s *SavedScreen) SetLocation(router.Location) tea.Cmd {
	return s.load
}

func (s *SavedScreen) load() tea.Msg {
	recipes, err := s.ctrl.SavedRecipes()
	return savedLoadedMsg{recipes: recipes, err: err}
}

func (s *SavedScreen) Unmount() {
	s.export.stop()
	s.exporting = false
	s.tracker.Clear()
	s.err = ""
}

func (s *SavedScreen) startExport() tea.Cmd {
	if s.exporting || len(s.list.Items) == 0 {
		return nil
	}
	s.exporting = true
	s.err = ""
	s.tracker.Clear()
	s.drainProgress()

	ctx := s.export.start()
	s.exportCtx = ctx
	run := func() tea.Msg {
		path, err := s.ctrl.ExportSaved(ctx, cookbookTitle)
		return exportDoneMsg{path: path, err: err}
	}
	return tea.Batch(run, s.listenForProgress(ctx))
}

// drainProgress discards events left over from an abandoned export.
func (s *SavedScreen) drainProgress() {
	ch := s.ctrl.ExportProgress()
	if ch == nil {
		return
	}
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		default:
			return
		}
	}
}

// listenForProgress waits for the next progress event until ctx is done.
// Events already buffered when ctx ends are still delivered.
func (s *SavedScreen) listenForProgress(ctx context.Context) tea.Cmd {
	ch := s.ctrl.ExportProgress()
	if ch == nil || ctx == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case progress, ok := <-ch:
			if !ok {
				return nil
			}
			return progress
		case <-ctx.Done():
			select {
			case progress, ok := <-ch:
				if ok {
					return progress
				}
			default:
			}
			return nil
		}
	}
}

func (s *SavedScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.list.Width = msg.Width
		s.tracker.SetWidth(msg.Width - 4)

	case savedLoadedMsg:
		if msg.err != nil {
			s.err = api.Message(msg.err)
			return s, nil
		}
		s.list.SetItems(msg.recipes)

	case services.ExportProgress:
		s.tracker.Update(msg)
		if s.tracker.Active() {
			return s, s.listenForProgress(s.exportCtx)
		}

	case exportDoneMsg:
		s.exporting = false
		s.export.stop()
		if msg.err != nil && !errors.Is(msg.err, context.Canceled) {
			s.err = api.Message(msg.err)
		}

	case tea.KeyMsg:
		key := msg.String()
		if s.snack.Dismisses(key) && s.err != "" {
			s.err = ""
			return s, nil
		}
		switch key {
		case "up", "k":
			s.list.Prev()
		case "down", "j":
			s.list.Next()
		case "enter":
			if saved := s.list.Selected(); saved != nil {
				return s, navigate("/recipe/" + url.PathEscape(saved.Recipe.ID))
			}
		case "d":
			if saved := s.list.Selected(); saved != nil {
				if err := s.ctrl.RemoveSaved(saved.Recipe.ID); err != nil {
					s.err = api.Message(err)
					return s, nil
				}
				return s, s.load
			}
		case "e":
			return s, s.startExport()
		case "esc", "backspace":
			if s.exporting {
				s.export.stop()
				return s, nil
			}
			return s, back
		}
	}
	return s, nil
}

func (s *SavedScreen) View() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Saved recipes"))
	b.WriteString("\n")

	if len(s.list.Items) == 0 {
		b.WriteString(styles.MutedStyle.Render("Nothing saved yet. Press s on a recipe to keep it here."))
		b.WriteString("\n")
	} else {
		b.WriteString(s.list.View())
		b.WriteString("\n")
	}

	if tracker := s.tracker.View(); tracker != "" {
		b.WriteString("\n")
		b.WriteString(tracker)
	}

	if snack := s.snack.View(s.err); snack != "" {
		b.WriteString(snack)
		b.WriteString("\n")
	}

	b.WriteString(styles.HelpStyle.Render("↑/k ↓/j: navigate • enter: open • d: remove • e: export cookbook • esc: back"))
	return b.String()
}
