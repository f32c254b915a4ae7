package router

import (
	"context"
	"io"
)

// Page is a loaded page module. The router knows nothing about page
// internals beyond its name and how to render it.
type Page interface {
	// Name identifies the page (e.g. "dashboard").
	Name() string

	// Render writes the page to w.
	Render(w io.Writer) error
}

// Loader lazily loads a page module. It is only invoked once navigation
// has passed the route's guard.
type Loader func(ctx context.Context) (Page, error)

// Outlet is the rendering target pages are mounted into. It stands in for
// the DOM element the shell renders page content to.
type Outlet interface {
	Render(page Page) error
}

// Location is a snapshot of the router's current position.
type Location struct {
	// Path is the path component (e.g. "/my-files").
	Path string

	// Query is the raw query string without the leading "?".
	Query string

	// Hash is the fragment without the leading "#".
	Hash string

	// FullURL is the path with query and fragment reattached.
	FullURL string
}

// Route pairs a path pattern with its guard and page loader.
type Route struct {
	// Pattern is an exact path, or CatchAll for the wildcard entry.
	Pattern string

	// Name identifies the route for logs and metrics.
	Name string

	// Guard decides whether navigation may proceed. A nil guard allows
	// unconditionally.
	Guard Guard

	// Load produces the page once the guard allows navigation.
	Load Loader
}

// staticPage is a pre-rendered page used by placeholder routes and tests.
type staticPage struct {
	name string
	html string
}

func (p staticPage) Name() string { return p.name }

func (p staticPage) Render(w io.Writer) error {
	_, err := io.WriteString(w, p.html)
	return err
}

// StaticPage returns a Loader producing a fixed pre-rendered page.
func StaticPage(name, html string) Loader {
	return func(context.Context) (Page, error) {
		return staticPage{name: name, html: html}, nil
	}
}
