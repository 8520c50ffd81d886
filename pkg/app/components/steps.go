package components

import (
	"fmt"
	"strings"

	"github.com/kerbaras/recipebook/pkg/app/styles"
	"github.com/kerbaras/recipebook/pkg/data"
)

// Steps is an ordered list of recipe steps with one active step. It always
// holds at least one step.
type Steps struct {
	steps  []data.Step
	Active int
}

func NewSteps(steps []data.Step) *Steps {
	s := &Steps{steps: append([]data.Step(nil), steps...)}
	if len(s.steps) == 0 {
		s.steps = []data.Step{{}}
	}
	return s
}

// Steps returns a copy of the current steps.
func (s *Steps) Steps() []data.Step {
	return append([]data.Step(nil), s.steps...)
}

func (s *Steps) Len() int {
	return len(s.steps)
}

func (s *Steps) Current() data.Step {
	return s.steps[s.Active]
}

// SetCurrent replaces the active step.
func (s *Steps) SetCurrent(step data.Step) {
	s.steps[s.Active] = step
}

// Add inserts an empty step after the active one and activates it.
func (s *Steps) Add() {
	at := s.Active + 1
	s.steps = append(s.steps, data.Step{})
	copy(s.steps[at+1:], s.steps[at:])
	s.steps[at] = data.Step{}
	s.Active = at
}

// Remove drops the active step. The last remaining step is cleared instead.
func (s *Steps) Remove() {
	if len(s.steps) == 1 {
		s.steps[0] = data.Step{}
		return
	}
	s.steps = append(s.steps[:s.Active], s.steps[s.Active+1:]...)
	if s.Active >= len(s.steps) {
		s.Active = len(s.steps) - 1
	}
}

func (s *Steps) CanMoveUp() bool {
	return s.Active != 0
}

func (s *Steps) CanMoveDown() bool {
	return len(s.steps)-s.Active > 1
}

func (s *Steps) MoveUp() {
	if !s.CanMoveUp() {
		return
	}
	s.steps[s.Active-1], s.steps[s.Active] = s.steps[s.Active], s.steps[s.Active-1]
	s.Active--
}

func (s *Steps) MoveDown() {
	if !s.CanMoveDown() {
		return
	}
	s.steps[s.Active+1], s.steps[s.Active] = s.steps[s.Active], s.steps[s.Active+1]
	s.Active++
}

func (s *Steps) Next() {
	if s.Active < len(s.steps)-1 {
		s.Active++
	}
}

func (s *Steps) Prev() {
	if s.Active > 0 {
		s.Active--
	}
}

func (s *Steps) View() string {
	var b strings.Builder
	for i, step := range s.steps {
		title := step.Title
		if title == "" {
			title = "Title of the step"
		}
		label := fmt.Sprintf("%d. %s", i+1, title)

		if i != s.Active {
			b.WriteString(styles.MutedStyle.Render(label))
			b.WriteString("\n")
			continue
		}

		b.WriteString(styles.TitleStyle.UnsetMarginBottom().Render(label))
		b.WriteString("\n")
		desc := step.Description
		if desc == "" {
			desc = "Enter description of the step"
		}
		b.WriteString("   " + styles.TextStyle.Render(desc))
		b.WriteString("\n")
		if step.ImageURL != "" {
			b.WriteString("   " + styles.MutedStyle.Render("image: "+step.ImageURL))
			b.WriteString("\n")
		}

		var moves []string
		if s.CanMoveUp() {
			moves = append(moves, "↑ move up")
		}
		if s.CanMoveDown() {
			moves = append(moves, "↓ move down")
		}
		if len(moves) > 0 {
			b.WriteString("   " + styles.MutedStyle.Render(strings.Join(moves, " • ")))
			b.WriteString("\n")
		}
	}
	return b.String()
}
