package components

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/recipebook/pkg/app/styles"
)

// PageSpinner is shown in place of a screen's content while it loads.
type PageSpinner struct {
	spinner spinner.Model
	Text    string
}

func NewPageSpinner(text string) PageSpinner {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SpinnerStyle
	return PageSpinner{spinner: s, Text: text}
}

// Tick starts the animation.
func (p PageSpinner) Tick() tea.Cmd {
	return p.spinner.Tick
}

func (p PageSpinner) Update(msg tea.Msg) (PageSpinner, tea.Cmd) {
	var cmd tea.Cmd
	p.spinner, cmd = p.spinner.Update(msg)
	return p, cmd
}

// View renders nothing unless loading is set.
func (p PageSpinner) View(loading bool) string {
	if !loading {
		return ""
	}
	if p.Text == "" {
		return p.spinner.View()
	}
	return p.spinner.View() + " " + styles.MutedStyle.Render(p.Text)
}
