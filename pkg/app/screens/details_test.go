package screens

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/kerbaras/recipebook/pkg/data"
	"github.com/kerbaras/recipebook/pkg/router"
	"github.com/kerbaras/recipebook/pkg/sources"
	"github.com/kerbaras/recipebook/pkg/state"
)

func openDetails(t *testing.T, ctrl *mockController, id string) *DetailsScreen {
	t.Helper()
	s := NewDetailsScreen(ctrl, state.NewDetailStore())
	deliver(s, s.SetLocation(router.Parse("/recipe/"+id)))
	if s.store.State().Recipe == nil {
		t.Fatalf("Expected recipe %s to load", id)
	}
	return s
}

func TestDetailsLoads(t *testing.T) {
	s := openDetails(t, newMockController(), "r1")

	st := s.store.State()
	if st.Loading || st.Recipe.ID != "r1" {
		t.Errorf("Unexpected state %+v", st)
	}
	if cmd := s.Open("r1"); cmd != nil {
		t.Error("Expected reopening the same recipe to be a no-op")
	}
}

func TestDetailsUnescapesRecipeID(t *testing.T) {
	ctrl := newMockController()
	var requested string
	ctrl.detailsFunc = func(ctx context.Context, id string) (*data.Recipe, error) {
		requested = id
		return &data.Recipe{ID: id, Title: "Pie"}, nil
	}
	s := NewDetailsScreen(ctrl, state.NewDetailStore())
	deliver(s, s.SetLocation(router.Parse("/category/detail/"+url.PathEscape("apple pie")+"?id=desserts")))

	if requested != "apple pie" {
		t.Errorf("Expected the controller to get %q, got %q", "apple pie", requested)
	}
}

func TestDetailsRedirectsWithoutID(t *testing.T) {
	s := NewDetailsScreen(newMockController(), state.NewDetailStore())

	nav, ok := find[NavigateMsg](run(s.Open("")))
	if !ok || !nav.Replace || nav.To.Path != "/" {
		t.Errorf("Expected a redirect home, got %+v", nav)
	}
}

func TestDetailsLikeRequiresSignIn(t *testing.T) {
	ctrl := newMockController()
	s := openDetails(t, ctrl, "r1")

	_, cmd := s.Update(key("l"))
	if cmd != nil {
		t.Error("Expected no request while signed out")
	}
	if got := s.store.State().Error; got != "Sign in to like recipes" {
		t.Errorf("Unexpected error %q", got)
	}
}

func TestDetailsLike(t *testing.T) {
	ctrl := newMockController()
	ctrl.signedIn = true
	s := openDetails(t, ctrl, "r1")

	_, cmd := s.Update(key("l"))
	if !s.store.State().Liking {
		t.Error("Expected liking to be in progress")
	}
	deliver(s, cmd)

	st := s.store.State()
	if st.Liking || st.Recipe.Likes != 4 || !st.Recipe.Liked {
		t.Errorf("Expected the like to be applied, got %+v", st.Recipe)
	}
}

func TestDetailsLikeThenRefresh(t *testing.T) {
	ctrl := newMockController()
	ctrl.signedIn = true
	s := openDetails(t, ctrl, "r1")

	_, like := s.Update(key("l"))
	if like == nil {
		t.Fatal("Expected a like request")
	}
	_, refresh := s.Update(key("r"))
	deliver(s, refresh)
	deliver(s, like)

	if s.store.State().Liking {
		t.Fatal("Expected the refresh to end the superseded like")
	}
	_, again := s.Update(key("l"))
	if again == nil {
		t.Fatal("Expected liking to work again after a refresh")
	}
	deliver(s, again)

	st := s.store.State()
	if st.Liking || !st.Recipe.Liked {
		t.Errorf("Expected the second like to be applied, got %+v", st)
	}
}

func TestDetailsLikeFailureSurfaced(t *testing.T) {
	ctrl := newMockController()
	ctrl.signedIn = true
	ctrl.likeFunc = func(ctx context.Context, id string) (*sources.Like, error) {
		return nil, errors.New("network unavailable")
	}
	s := openDetails(t, ctrl, "r1")

	_, cmd := s.Update(key("l"))
	deliver(s, cmd)

	st := s.store.State()
	if st.Error != "network unavailable" {
		t.Errorf("Expected the failure to surface, got %q", st.Error)
	}
	if st.Liking {
		t.Error("Expected liking to stop")
	}
	if st.Recipe == nil || st.Recipe.Likes != 3 {
		t.Errorf("Expected the recipe to be kept untouched, got %+v", st.Recipe)
	}
}

func TestDetailsSave(t *testing.T) {
	ctrl := newMockController()
	s := openDetails(t, ctrl, "r1")

	_, cmd := s.Update(key("s"))
	deliver(s, cmd)

	if !ctrl.IsSaved("r1") {
		t.Error("Expected the recipe to be saved")
	}
	if !s.saved {
		t.Error("Expected the screen to show the recipe as saved")
	}
}

func TestDetailsUnmountDropsInFlight(t *testing.T) {
	s := NewDetailsScreen(newMockController(), state.NewDetailStore())
	pending := run(s.SetLocation(router.Parse("/recipe/r1")))

	s.Unmount()
	for _, msg := range pending {
		s.Update(msg)
	}
	if st := s.store.State(); st.Recipe != nil || st.Loading {
		t.Errorf("Expected a clean state, got %+v", st)
	}
}
