package app

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/recipebook/pkg/app/screens"
	"github.com/kerbaras/recipebook/pkg/logging"
	"github.com/kerbaras/recipebook/pkg/router"
	"github.com/rs/zerolog"
)

type App struct {
	ctrl   screens.Controller
	start  router.Location
	logger zerolog.Logger
}

// NewApp prepares the TUI. start is the first location shown, e.g. "/" or
// "/activate/<token>" when opened from an activation link.
func NewApp(ctrl screens.Controller, start string) *App {
	if start == "" {
		start = "/"
	}
	return &App{
		ctrl:   ctrl,
		start:  router.Parse(start),
		logger: logging.NewLogger("app"),
	}
}

func (a *App) Run(ctx context.Context) error {
	a.logger.Info().Str("location", a.start.String()).Msg("Starting TUI")

	model := screens.NewRootScreen(a.ctrl, screens.NewStores(), a.start)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	if err != nil {
		a.logger.Error().Err(err).Msg("TUI exited with error")
	}
	return err
}
