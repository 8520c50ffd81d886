// Package state holds the pure reducers for the screens' resources and the
// Store that owns them.
package state

import (
	"fmt"

	"github.com/kerbaras/recipebook/pkg/data"
)

// Paged is the state of a paged recipe listing (a category or a search).
type Paged struct {
	Loading         bool
	LoadMoreLoading bool
	Error           string
	Items           []data.Recipe
	Page            int
	TotalPages      int
	Meta            data.Category
	OrderBy         string
}

// NewPaged returns the initial listing state.
func NewPaged() Paged {
	return Paged{
		Items:      []data.Recipe{},
		Page:       1,
		TotalPages: 1,
	}
}

// HasMore reports whether another page can be requested.
func (p Paged) HasMore() bool {
	return p.Page < p.TotalPages
}

// Busy reports whether any request is in flight.
func (p Paged) Busy() bool {
	return p.Loading || p.LoadMoreLoading
}

// PagedAction is implemented only by the action types in this file.
type PagedAction interface {
	pagedAction()
}

type (
	Begin struct{}

	Fail struct {
		Message string
	}

	Clean struct{}

	StoreResults struct {
		Items      []data.Recipe
		Page       int
		TotalPages int
		Meta       data.Category
	}

	LoadMoreBegin struct{}

	LoadMoreSuccess struct {
		Items []data.Recipe
		Page  int
	}

	ClearError struct{}

	Sort struct {
		OrderBy string
	}

	ResetSort struct{}
)

func (Begin) pagedAction()           {}
func (Fail) pagedAction()            {}
func (Clean) pagedAction()           {}
func (StoreResults) pagedAction()    {}
func (LoadMoreBegin) pagedAction()   {}
func (LoadMoreSuccess) pagedAction() {}
func (ClearError) pagedAction()      {}
func (Sort) pagedAction()            {}
func (ResetSort) pagedAction()       {}

// ReducePaged returns the state that results from applying action to s.
// s is never modified.
func ReducePaged(s Paged, action PagedAction) Paged {
	switch a := action.(type) {
	case Begin:
		s.Loading = true
		s.LoadMoreLoading = false
		s.Error = ""
	case Fail:
		s.Error = a.Message
		s.Loading = false
		s.LoadMoreLoading = false
	case StoreResults:
		s.Loading = false
		s.LoadMoreLoading = false
		s.Error = ""
		s.Items = cloneRecipes(a.Items)
		s.TotalPages = max(a.TotalPages, 1)
		s.Page = clamp(a.Page, 1, s.TotalPages)
		s.Meta = a.Meta
	case LoadMoreBegin:
		if s.Loading {
			return s
		}
		s.LoadMoreLoading = true
		s.Error = ""
	case LoadMoreSuccess:
		items := make([]data.Recipe, 0, len(s.Items)+len(a.Items))
		items = append(items, s.Items...)
		s.Items = append(items, a.Items...)
		s.Page = clamp(a.Page, 1, s.TotalPages)
		s.LoadMoreLoading = false
	case Clean:
		return NewPaged()
	case ClearError:
		s.Error = ""
		s.Loading = false
		s.LoadMoreLoading = false
	case Sort:
		s.OrderBy = a.OrderBy
	case ResetSort:
		s.OrderBy = ""
	default:
		panic(fmt.Sprintf("state: unknown paged action %T", action))
	}
	return s
}

func cloneRecipes(items []data.Recipe) []data.Recipe {
	out := make([]data.Recipe, len(items))
	copy(out, items)
	return out
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
