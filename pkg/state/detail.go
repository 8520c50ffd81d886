package state

import (
	"fmt"

	"github.com/kerbaras/recipebook/pkg/data"
)

// Detail is the state of a single opened recipe.
type Detail struct {
	Loading bool
	Liking  bool
	Error   string
	Recipe  *data.Recipe
}

type DetailAction interface {
	detailAction()
}

type (
	DetailBegin struct{}

	DetailSuccess struct {
		Recipe data.Recipe
	}

	DetailFail struct {
		Message string
	}

	LikeBegin struct{}

	// LikeSuccess carries the like count reported by the backend.
	LikeSuccess struct {
		Likes int
	}

	DetailClean struct{}

	DetailClearError struct{}
)

func (DetailBegin) detailAction()      {}
func (DetailSuccess) detailAction()    {}
func (DetailFail) detailAction()       {}
func (LikeBegin) detailAction()        {}
func (LikeSuccess) detailAction()      {}
func (DetailClean) detailAction()      {}
func (DetailClearError) detailAction() {}

func ReduceDetail(s Detail, action DetailAction) Detail {
	switch a := action.(type) {
	case DetailBegin:
		// A reload supersedes an in-flight like; its completion is dropped.
		s.Loading = true
		s.Liking = false
		s.Error = ""
	case DetailSuccess:
		recipe := a.Recipe
		s.Recipe = &recipe
		s.Loading = false
		s.Liking = false
		s.Error = ""
	case DetailFail:
		s.Error = a.Message
		s.Loading = false
		s.Liking = false
	case LikeBegin:
		if s.Recipe == nil || s.Loading {
			return s
		}
		s.Liking = true
		s.Error = ""
	case LikeSuccess:
		if s.Recipe != nil {
			recipe := *s.Recipe
			recipe.Likes = a.Likes
			recipe.Liked = true
			s.Recipe = &recipe
		}
		s.Liking = false
	case DetailClean:
		return Detail{}
	case DetailClearError:
		s.Error = ""
		s.Loading = false
		s.Liking = false
	default:
		panic(fmt.Sprintf("state: unknown detail action %T", action))
	}
	return s
}
