package screens

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/recipebook/pkg/data"
	"github.com/kerbaras/recipebook/pkg/router"
	"github.com/kerbaras/recipebook/pkg/services"
	"github.com/kerbaras/recipebook/pkg/sources"
	"github.com/kerbaras/recipebook/pkg/state"
)

// Controller is everything the screens ask of the backend and the local
// library. *services.RecipeController implements it.
type Controller interface {
	Categories(ctx context.Context) ([]data.Category, error)
	CategoryRecipes(ctx context.Context, q sources.CategoryQuery) (*sources.Page, error)
	Search(ctx context.Context, q sources.SearchQuery) (*sources.Page, error)
	Details(ctx context.Context, id string) (*data.Recipe, error)
	Like(ctx context.Context, id string) (*sources.Like, error)

	Activate(ctx context.Context, token string) (*sources.Auth, error)
	SignIn(ctx context.Context, email, password string) error
	SignedIn(ctx context.Context) bool

	SaveRecipe(recipe *data.Recipe) error
	IsSaved(id string) bool
	SavedRecipes() ([]*data.SavedRecipe, error)
	RemoveSaved(id string) error

	SaveDraft(draft *data.Draft) error
	Drafts() ([]*data.Draft, error)
	Publish(ctx context.Context, draft *data.Draft) (*data.Recipe, error)

	ExportSaved(ctx context.Context, title string) (string, error)
	ExportProgress() <-chan services.ExportProgress
}

// Screen is a routed container. SetLocation is called once on mount and
// again whenever the location changes without leaving the screen.
type Screen interface {
	tea.Model
	SetLocation(loc router.Location) tea.Cmd
	Unmount()
}

// typing screens own the keyboard, so global shortcuts are disabled.
type typing interface {
	Typing() bool
}

// Stores holds the app's shared state. It is created once and handed to
// every screen that needs it.
type Stores struct {
	Category   *state.Store[state.Paged, state.PagedAction]
	Search     *state.Store[state.Paged, state.PagedAction]
	Detail     *state.Store[state.Detail, state.DetailAction]
	Activation *state.Store[state.Activation, state.ActivationAction]
}

func NewStores() Stores {
	return Stores{
		Category:   state.NewPagedStore(),
		Search:     state.NewPagedStore(),
		Detail:     state.NewDetailStore(),
		Activation: state.NewActivationStore(),
	}
}

// NavigateMsg asks the root to change location. Replace overwrites the
// current history entry instead of pushing.
type NavigateMsg struct {
	To      router.Location
	Replace bool
}

// BackMsg pops one history entry.
type BackMsg struct{}

func navigate(to string) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{To: router.Parse(to)}
	}
}

func redirect(to string) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{To: router.Parse(to), Replace: true}
	}
}

func back() tea.Msg {
	return BackMsg{}
}

// request tracks the cancel func of a screen's in-flight call.
type request struct {
	cancel context.CancelFunc
}

// start cancels the previous call and returns a context for the next one.
func (r *request) start() context.Context {
	r.stop()
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	return ctx
}

func (r *request) stop() {
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}
