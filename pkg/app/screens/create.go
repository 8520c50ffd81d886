package screens

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/recipebook/pkg/api"
	"github.com/kerbaras/recipebook/pkg/app/components"
	"github.com/kerbaras/recipebook/pkg/app/styles"
	"github.com/kerbaras/recipebook/pkg/data"
	"github.com/kerbaras/recipebook/pkg/router"
	"github.com/kerbaras/recipebook/pkg/services"
)

const (
	titleField = iota
	descriptionField
	categoryField
	imageField
	ingredientsField
	stepTitleField
	stepDescriptionField
	fieldCount
)

// CreateScreen edits a draft recipe. Drafts are kept locally and autosaved
// when leaving the screen; /create?draft={id} reopens one.
type CreateScreen struct {
	ctrl    Controller
	inputs  []textinput.Model
	focus   int
	steps   *components.Steps
	spinner components.PageSpinner

	draftID    string
	publishing bool
	notice     string
	err        string
	req        request
}

func NewCreateScreen(ctrl Controller) *CreateScreen {
	placeholders := []string{
		"Title",
		"Description",
		"Category id",
		"Cover image URL",
		"Ingredients, comma separated",
		"Step title",
		"Step description",
	}
	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 500
		ti.Width = 60
		inputs[i] = ti
	}

	s := &CreateScreen{
		ctrl:    ctrl,
		inputs:  inputs,
		steps:   components.NewSteps(nil),
		spinner: components.NewPageSpinner("Publishing.."),
	}
	s.inputs[titleField].Focus()
	return s
}

type draftSavedMsg struct {
	id  string
	err error
}

type publishedMsg struct {
	recipe *data.Recipe
	err    error
}

func (s *CreateScreen) Init() tea.Cmd {
	return textinput.Blink
}

func (s *CreateScreen) Typing() bool {
	return true
}

func (s *CreateScreen) SetLocation(loc router.Location) tea.Cmd {
	id := loc.Param("draft")
	if id == "" || id == s.draftID {
		return textinput.Blink
	}

	drafts, err := s.ctrl.Drafts()
	if err != nil {
		s.err = api.Message(err)
		return nil
	}
	for _, d := range drafts {
		if d.ID == id {
			s.load(d)
			return textinput.Blink
		}
	}
	s.err = "Draft not found"
	return nil
}

func (s *CreateScreen) load(d *data.Draft) {
	s.draftID = d.ID
	s.inputs[titleField].SetValue(d.Title)
	s.inputs[descriptionField].SetValue(d.Description)
	s.inputs[categoryField].SetValue(d.Category)
	s.inputs[imageField].SetValue(d.ImageURL)
	s.inputs[ingredientsField].SetValue(strings.Join(d.Ingredients, ", "))
	s.steps = components.NewSteps(d.Steps)
	s.loadStep()
}

// Draft collects the form. Empty steps are left out.
func (s *CreateScreen) Draft() *data.Draft {
	s.storeStep()

	var ingredients []string
	for _, ing := range strings.Split(s.inputs[ingredientsField].Value(), ",") {
		if ing = strings.TrimSpace(ing); ing != "" {
			ingredients = append(ingredients, ing)
		}
	}

	var steps []data.Step
	for _, step := range s.steps.Steps() {
		if step.Title != "" || step.Description != "" {
			steps = append(steps, step)
		}
	}

	return &data.Draft{
		ID:          s.draftID,
		Title:       strings.TrimSpace(s.inputs[titleField].Value()),
		Description: strings.TrimSpace(s.inputs[descriptionField].Value()),
		Category:    strings.TrimSpace(s.inputs[categoryField].Value()),
		ImageURL:    strings.TrimSpace(s.inputs[imageField].Value()),
		Ingredients: ingredients,
		Steps:       steps,
	}
}

func (s *CreateScreen) empty() bool {
	d := s.Draft()
	return d.Title == "" && d.Description == "" && d.Category == "" && len(d.Ingredients) == 0 && len(d.Steps) == 0
}

// storeStep writes the step inputs into the active step.
func (s *CreateScreen) storeStep() {
	current := s.steps.Current()
	current.Title = strings.TrimSpace(s.inputs[stepTitleField].Value())
	current.Description = strings.TrimSpace(s.inputs[stepDescriptionField].Value())
	s.steps.SetCurrent(current)
}

// loadStep fills the step inputs from the active step.
func (s *CreateScreen) loadStep() {
	current := s.steps.Current()
	s.inputs[stepTitleField].SetValue(current.Title)
	s.inputs[stepDescriptionField].SetValue(current.Description)
}

func (s *CreateScreen) withStep(fn func()) {
	s.storeStep()
	fn()
	s.loadStep()
}

func (s *CreateScreen) setFocus(i int) {
	s.inputs[s.focus].Blur()
	s.focus = (i + fieldCount) % fieldCount
	s.inputs[s.focus].Focus()
}

func (s *CreateScreen) save() tea.Cmd {
	draft := s.Draft()
	return func() tea.Msg {
		err := s.ctrl.SaveDraft(draft)
		return draftSavedMsg{id: draft.ID, err: err}
	}
}

func (s *CreateScreen) publish() tea.Cmd {
	draft := s.Draft()
	s.publishing = true
	s.err = ""
	s.notice = ""
	ctx := s.req.start()
	return tea.Batch(s.spinner.Tick(), func() tea.Msg {
		recipe, err := s.ctrl.Publish(ctx, draft)
		return publishedMsg{recipe: recipe, err: err}
	})
}

func (s *CreateScreen) reset() {
	s.draftID = ""
	for i := range s.inputs {
		s.inputs[i].Reset()
	}
	s.steps = components.NewSteps(nil)
	s.setFocus(titleField)
}

// Unmount autosaves anything typed so far.
func (s *CreateScreen) Unmount() {
	s.req.stop()
	s.publishing = false
	s.err = ""
	s.notice = ""
	if !s.empty() {
		_ = s.ctrl.SaveDraft(s.Draft())
	}
	s.reset()
}

func (s *CreateScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case draftSavedMsg:
		if msg.err != nil {
			s.err = api.Message(msg.err)
			return s, nil
		}
		s.draftID = msg.id
		s.notice = "Draft saved"
		return s, nil

	case publishedMsg:
		if errors.Is(msg.err, context.Canceled) {
			return s, nil
		}
		s.publishing = false
		if errors.Is(msg.err, services.ErrIncompleteDraft) {
			s.err = "A recipe needs a title, a category and at least one step"
			return s, nil
		}
		if msg.err != nil {
			s.err = api.Message(msg.err)
			return s, nil
		}
		s.reset()
		return s, redirect("/recipe/" + url.PathEscape(msg.recipe.ID))

	case tea.KeyMsg:
		if s.publishing {
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
		case "ctrl+s":
			return s, s.save()
		case "ctrl+p":
			return s, s.publish()
		case "ctrl+n":
			s.withStep(s.steps.Add)
			s.setFocus(stepTitleField)
			return s, nil
		case "ctrl+d":
			s.withStep(s.steps.Remove)
			return s, nil
		case "pgdown":
			s.withStep(s.steps.Next)
			return s, nil
		case "pgup":
			s.withStep(s.steps.Prev)
			return s, nil
		case "ctrl+down":
			s.withStep(s.steps.MoveDown)
			return s, nil
		case "ctrl+up":
			s.withStep(s.steps.MoveUp)
			return s, nil
		}
		s.notice = ""
		var cmd tea.Cmd
		s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
		return s, cmd
	}

	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return s, cmd
}

func (s *CreateScreen) View() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("New recipe"))
	b.WriteString("\n")

	for i := titleField; i < stepTitleField; i++ {
		b.WriteString(s.inputView(i))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.SubtitleStyle.Render("Steps"))
	b.WriteString("\n")
	s.storeStep()
	b.WriteString(s.steps.View())
	b.WriteString(s.inputView(stepTitleField))
	b.WriteString("\n")
	b.WriteString(s.inputView(stepDescriptionField))
	b.WriteString("\n\n")

	if s.publishing {
		b.WriteString(s.spinner.View(true))
		b.WriteString("\n")
	}
	if s.notice != "" {
		b.WriteString(styles.StatusDone.Render(s.notice))
		b.WriteString("\n")
	}
	if s.err != "" {
		b.WriteString(styles.SnackStyle.Render("✗ " + s.err))
		b.WriteString("\n")
	}

	b.WriteString(styles.HelpStyle.Render("tab: next field • ctrl+n: add step • ctrl+d: remove step • pgup/pgdown: switch step • ctrl+↑/↓: move step • ctrl+s: save draft • ctrl+p: publish • esc: back"))
	return b.String()
}

func (s *CreateScreen) inputView(i int) string {
	if i == s.focus {
		return styles.FocusedInputStyle.Render(s.inputs[i].View())
	}
	return styles.InputStyle.Render(s.inputs[i].View())
}
