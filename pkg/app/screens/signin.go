package screens

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/recipebook/pkg/api"
	"github.com/kerbaras/recipebook/pkg/app/components"
	"github.com/kerbaras/recipebook/pkg/app/styles"
	"github.com/kerbaras/recipebook/pkg/router"
)

const (
	emailField = iota
	passwordField
)

// SignInScreen is the email/password form at /signup.
type SignInScreen struct {
	ctrl    Controller
	inputs  []textinput.Model
	focus   int
	spinner components.PageSpinner
	busy    bool
	err     string
	req     request
}

func NewSignInScreen(ctrl Controller) *SignInScreen {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 120
	email.Width = 40

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 120
	password.Width = 40

	s := &SignInScreen{
		ctrl:    ctrl,
		inputs:  []textinput.Model{email, password},
		spinner: components.NewPageSpinner("Signing in.."),
	}
	s.inputs[emailField].Focus()
	return s
}

type signedInMsg struct {
	err error
}

func (s *SignInScreen) Init() tea.Cmd {
	return textinput.Blink
}

func (s *SignInScreen) SetLocation(router.Location) tea.Cmd {
	return textinput.Blink
}

func (s *SignInScreen) Typing() bool {
	return true
}

func (s *SignInScreen) Unmount() {
	s.req.stop()
	s.busy = false
	s.err = ""
	for i := range s.inputs {
		s.inputs[i].Reset()
	}
}

func (s *SignInScreen) setFocus(i int) {
	s.inputs[s.focus].Blur()
	s.focus = (i + len(s.inputs)) % len(s.inputs)
	s.inputs[s.focus].Focus()
}

func (s *SignInScreen) submit() tea.Cmd {
	email := strings.TrimSpace(s.inputs[emailField].Value())
	password := s.inputs[passwordField].Value()
	if email == "" || password == "" {
		s.err = "Email and password are required"
		return nil
	}

	s.busy = true
	s.err = ""
	ctx := s.req.start()
	return tea.Batch(s.spinner.Tick(), func() tea.Msg {
		return signedInMsg{err: s.ctrl.SignIn(ctx, email, password)}
	})
}

func (s *SignInScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case signedInMsg:
		if errors.Is(msg.err, context.Canceled) {
			return s, nil
		}
		s.busy = false
		if msg.err != nil {
			s.err = api.Message(msg.err)
			return s, nil
		}
		s.inputs[passwordField].Reset()
		return s, redirect("/")

	case tea.KeyMsg:
		if s.busy {
			return s, nil
		}
		switch msg.String() {
		case "esc":
			if s.err != "" {
				s.err = ""
				return s, nil
			}
			return s, back
		case "tab", "down":
			s.setFocus(s.focus + 1)
			return s, textinput.Blink
		case "shift+tab", "up":
			s.setFocus(s.focus - 1)
			return s, textinput.Blink
		case "enter":
			if s.focus == emailField {
				s.setFocus(passwordField)
				return s, textinput.Blink
			}
			return s, s.submit()
		}
		var cmd tea.Cmd
		s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
		return s, cmd
	}

	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return s, cmd
}

func (s *SignInScreen) View() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Sign in"))
	b.WriteString("\n\n")
	for i, input := range s.inputs {
		style := styles.InputStyle
		if i == s.focus {
			style = styles.FocusedInputStyle
		}
		b.WriteString(style.Render(input.View()))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if s.busy {
		b.WriteString(s.spinner.View(true))
		b.WriteString("\n")
	}
	if s.err != "" {
		b.WriteString(styles.SnackStyle.Render(s.err))
		b.WriteString("\n")
	}
	b.WriteString(styles.HelpStyle.Render("tab: next field • enter: sign in • esc: back"))
	return b.String()
}
