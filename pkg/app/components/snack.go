package components

import (
	"github.com/kerbaras/recipebook/pkg/app/styles"
)

// ErrorSnack renders a dismissible error line. The owning screen decides
// what dismissing does.
type ErrorSnack struct {
	DismissKey string
}

func NewErrorSnack() ErrorSnack {
	return ErrorSnack{DismissKey: "x"}
}

// Dismisses reports whether key closes the snack.
func (s ErrorSnack) Dismisses(key string) bool {
	return key == s.DismissKey
}

func (s ErrorSnack) View(message string) string {
	if message == "" {
		return ""
	}
	return styles.SnackStyle.Render("✗ "+message) + " " + styles.MutedStyle.Render("("+s.DismissKey+" to dismiss)")
}
