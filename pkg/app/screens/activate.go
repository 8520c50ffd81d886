package screens

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/recipebook/pkg/api"
	"github.com/kerbaras/recipebook/pkg/app/components"
	"github.com/kerbaras/recipebook/pkg/app/styles"
	"github.com/kerbaras/recipebook/pkg/router"
	"github.com/kerbaras/recipebook/pkg/sources"
	"github.com/kerbaras/recipebook/pkg/state"
)

// ActivateScreen confirms an account from the link sent by email. It fires
// once per mount.
type ActivateScreen struct {
	ctrl    Controller
	store   *state.Store[state.Activation, state.ActivationAction]
	spinner components.PageSpinner
	snack   components.ErrorSnack

	token string
	req   request
}

func NewActivateScreen(ctrl Controller, store *state.Store[state.Activation, state.ActivationAction]) *ActivateScreen {
	return &ActivateScreen{
		ctrl:    ctrl,
		store:   store,
		spinner: components.NewPageSpinner("Activating your account.."),
		snack:   components.NewErrorSnack(),
	}
}

type activatedMsg struct {
	ticket state.Ticket
	auth   *sources.Auth
	err    error
}

func (s *ActivateScreen) Init() tea.Cmd {
	return s.spinner.Tick()
}

func (s *ActivateScreen) SetLocation(loc router.Location) tea.Cmd {
	_, token := router.Match(loc)
	if token == "" {
		return redirect("/signup")
	}
	if token == s.token {
		return nil
	}
	s.token = token

	ticket := s.store.Begin(state.ActivationBegin{})
	ctx := s.req.start()
	return tea.Batch(s.spinner.Tick(), func() tea.Msg {
		auth, err := s.ctrl.Activate(ctx, token)
		return activatedMsg{ticket: ticket, auth: auth, err: err}
	})
}

func (s *ActivateScreen) Unmount() {
	s.req.stop()
	s.store.Reset(state.ActivationClean{})
	s.token = ""
}

func (s *ActivateScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case activatedMsg:
		if msg.err != nil {
			s.store.Resolve(msg.ticket, state.ActivationFail{Message: api.Message(msg.err)})
			return s, nil
		}
		message := ""
		if msg.auth != nil {
			message = msg.auth.Message
		}
		if !s.store.Resolve(msg.ticket, state.ActivationSuccess{Message: message}) {
			return s, nil
		}
		return s, redirect("/")

	case tea.KeyMsg:
		if s.snack.Dismisses(msg.String()) && s.store.State().Error != "" {
			return s, redirect("/signup")
		}
		return s, nil
	}

	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return s, cmd
}

func (s *ActivateScreen) View() string {
	st := s.store.State()

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Account activation"))
	b.WriteString("\n\n")
	switch {
	case st.Loading:
		b.WriteString(s.spinner.View(true))
	case st.Done:
		b.WriteString(styles.StatusDone.Render("Account activated"))
		if st.Message != "" {
			b.WriteString("\n")
			b.WriteString(styles.MutedStyle.Render(st.Message))
		}
	case st.Error != "":
		b.WriteString(s.snack.View(st.Error))
	}
	return b.String()
}
