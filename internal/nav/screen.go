package nav

import (
	"github.com/justyntemme/boky-t/internal/content"
	"github.com/justyntemme/boky-t/internal/search"
	"github.com/justyntemme/boky-t/pkg/models"
)

// Header describes the bar above a screen
type Header struct {
	Title     string
	Subtitle  string
	CanGoBack bool
	HasPrev   bool
	HasNext   bool
}

// Item is one selectable entry of a list screen. Hit is set for search
// results, Target otherwise.
type Item struct {
	Label    string
	Subtitle string
	Target   Route
	Hit      *search.Hit
	Class    models.Class // books list only
}

// Screen is everything the presentation layer needs to draw a view
type Screen struct {
	Route  Route
	Header Header
	Items  []Item

	// Content is set for content and about views. Empty reports a title
	// that has no fragments; Content then carries an empty body.
	Content *content.Renderable
	Empty   bool

	// Toggle is the other mode of a special book, if any
	Toggle *Route

	// Scope is the book searched by a scoped search from this screen
	Scope      models.ID
	ScopeLabel string

	// Results is set when Items are search hits for Query
	Results bool
	Query   string
}
