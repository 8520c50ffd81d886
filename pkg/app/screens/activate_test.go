package screens

import (
	"context"
	"errors"
	"testing"

	"github.com/kerbaras/recipebook/pkg/router"
	"github.com/kerbaras/recipebook/pkg/sources"
	"github.com/kerbaras/recipebook/pkg/state"
)

func TestActivateSuccessRedirectsHome(t *testing.T) {
	var got string
	ctrl := newMockController()
	ctrl.activateFunc = func(ctx context.Context, token string) (*sources.Auth, error) {
		got = token
		return &sources.Auth{Token: "jwt", Message: "welcome"}, nil
	}
	s := NewActivateScreen(ctrl, state.NewActivationStore())

	cmd := s.SetLocation(router.Parse("/activate/abc123"))
	if !s.store.State().Loading {
		t.Error("Expected activation to be in progress")
	}

	var nav NavigateMsg
	for _, msg := range run(cmd) {
		_, next := s.Update(msg)
		if n, ok := find[NavigateMsg](run(next)); ok {
			nav = n
		}
	}

	if got != "abc123" {
		t.Errorf("Expected token abc123, got %q", got)
	}
	if st := s.store.State(); !st.Done || st.Message != "welcome" {
		t.Errorf("Unexpected state %+v", st)
	}
	if !nav.Replace || nav.To.Path != "/" {
		t.Errorf("Expected a redirect home, got %+v", nav)
	}
}

func TestActivateOncePerMount(t *testing.T) {
	calls := 0
	ctrl := newMockController()
	ctrl.activateFunc = func(ctx context.Context, token string) (*sources.Auth, error) {
		calls++
		return &sources.Auth{}, nil
	}
	s := NewActivateScreen(ctrl, state.NewActivationStore())

	deliver(s, s.SetLocation(router.Parse("/activate/abc")))
	deliver(s, s.SetLocation(router.Parse("/activate/abc")))
	if calls != 1 {
		t.Errorf("Expected one activation, got %d", calls)
	}

	s.Unmount()
	deliver(s, s.SetLocation(router.Parse("/activate/abc")))
	if calls != 2 {
		t.Errorf("Expected a fresh mount to activate again, got %d", calls)
	}
}

func TestActivateFailureDismissGoesToSignup(t *testing.T) {
	ctrl := newMockController()
	ctrl.activateFunc = func(ctx context.Context, token string) (*sources.Auth, error) {
		return nil, errors.New("token expired")
	}
	s := NewActivateScreen(ctrl, state.NewActivationStore())
	deliver(s, s.SetLocation(router.Parse("/activate/old")))

	if got := s.store.State().Error; got != "token expired" {
		t.Fatalf("Expected the failure to surface, got %q", got)
	}

	_, cmd := s.Update(key("x"))
	nav, ok := find[NavigateMsg](run(cmd))
	if !ok || !nav.Replace || nav.To.Path != "/signup" {
		t.Errorf("Expected a redirect to /signup, got %+v", nav)
	}
}
