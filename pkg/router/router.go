// Package router models in-app navigation as URL-like locations with a
// back stack.
package router

import (
	"net/url"
	"strings"
)

// Location is a path plus query string, e.g. /category?id=desserts.
type Location struct {
	Path  string
	Query url.Values
}

// Parse accepts "/path?query". A missing leading slash is added.
func Parse(raw string) Location {
	path, rawQuery, _ := strings.Cut(raw, "?")
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		query = url.Values{}
	}
	return Location{Path: clean(path), Query: query}
}

func clean(path string) string {
	path = "/" + strings.Trim(path, "/")
	return path
}

func (l Location) String() string {
	if len(l.Query) == 0 {
		return clean(l.Path)
	}
	return clean(l.Path) + "?" + l.Query.Encode()
}

// Param returns the first value of a query parameter.
func (l Location) Param(key string) string {
	return l.Query.Get(key)
}

// Segments splits the path, e.g. /category/detail/42 -> [category detail 42].
// Each segment is path-unescaped; a malformed escape is kept as written.
func (l Location) Segments() []string {
	trimmed := strings.Trim(l.Path, "/")
	if trimmed == "" {
		return nil
	}
	seg := strings.Split(trimmed, "/")
	for i, s := range seg {
		if unescaped, err := url.PathUnescape(s); err == nil {
			seg[i] = unescaped
		}
	}
	return seg
}

// Route names the screen a location belongs to.
type Route string

const (
	RouteHome     Route = "home"
	RouteCategory Route = "category"
	RouteDetail   Route = "detail"
	RouteSearch   Route = "search"
	RouteCreate   Route = "create"
	RouteActivate Route = "activate"
	RouteSignup   Route = "signup"
	RouteSaved    Route = "saved"
	RouteNotFound Route = "not-found"
)

// Match resolves a location to its route and path parameter (the recipe id
// for detail routes, the token for activation).
func Match(l Location) (Route, string) {
	seg := l.Segments()
	switch {
	case len(seg) == 0:
		return RouteHome, ""
	case len(seg) == 1 && seg[0] == "category":
		return RouteCategory, ""
	case len(seg) == 3 && seg[0] == "category" && seg[1] == "detail":
		return RouteDetail, seg[2]
	case len(seg) == 2 && seg[0] == "recipe":
		return RouteDetail, seg[1]
	case len(seg) == 1 && seg[0] == "search":
		return RouteSearch, ""
	case len(seg) == 1 && seg[0] == "create":
		return RouteCreate, ""
	case len(seg) == 2 && seg[0] == "activate":
		return RouteActivate, seg[1]
	case len(seg) == 1 && seg[0] == "signup":
		return RouteSignup, ""
	case len(seg) == 1 && seg[0] == "saved":
		return RouteSaved, ""
	default:
		return RouteNotFound, ""
	}
}

// History is the navigation stack. The zero value is not usable.
type History struct {
	entries []Location
}

func NewHistory(start Location) *History {
	return &History{entries: []Location{start}}
}

func (h *History) Current() Location {
	return h.entries[len(h.entries)-1]
}

func (h *History) Push(l Location) {
	h.entries = append(h.entries, l)
}

// Replace swaps the current entry, so Back skips it.
func (h *History) Replace(l Location) {
	h.entries[len(h.entries)-1] = l
}

// Back pops one entry. It reports false at the root.
func (h *History) Back() bool {
	if len(h.entries) <= 1 {
		return false
	}
	h.entries = h.entries[:len(h.entries)-1]
	return true
}

func (h *History) Len() int {
	return len(h.entries)
}
