// Package nav is the navigation engine of the reader: it resolves what to
// show for a navigation intent, keeps the back-history and produces the
// screens the presentation layer draws.
package nav

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/justyntemme/boky-t/internal/content"
	"github.com/justyntemme/boky-t/internal/corpus"
	"github.com/justyntemme/boky-t/internal/search"
	"github.com/justyntemme/boky-t/pkg/models"
)

// DefaultRootTitle is the header of the books list
const DefaultRootTitle = "Boky Fivavahana"

// ErrNotReading is returned by Next and Prev outside a content view
var ErrNotReading = errors.New("no title is open")

// ZoomStore persists the zoom percentage
type ZoomStore interface {
	Zoom() int
	SetZoom(percent int) error
}

// Options configure an Engine
type Options struct {
	RootTitle string
	About     string
	Store     ZoomStore
	Log       *zap.Logger
}

// Engine owns the navigation state: the back-history stack, the current
// route, the zoom level and the open search query. All methods must be
// called from a single goroutine.
type Engine struct {
	idx      *corpus.Index
	resolver *Resolver
	search   *search.Engine
	store    ZoomStore
	log      *zap.Logger

	stack   []Route
	current Route
	screen  *Screen
	zoom    int
	query   string
}

// NewEngine creates an engine positioned at the books list
func NewEngine(idx *corpus.Index, opts Options) (*Engine, error) {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	if opts.RootTitle == "" {
		opts.RootTitle = DefaultRootTitle
	}
	se, err := search.NewEngine(idx, log)
	if err != nil {
		return nil, fmt.Errorf("unable to prepare search: %w", err)
	}
	e := &Engine{
		idx:      idx,
		resolver: NewResolver(idx, content.NewAssembler(idx, log), opts.RootTitle, opts.About, log.Named("view")),
		search:   se,
		store:    opts.Store,
		log:      log.Named("nav"),
		current:  Root(),
		zoom:     content.DefaultZoom,
	}
	if e.store != nil {
		e.zoom = content.ClampZoom(e.store.Zoom())
	}
	if _, err := e.Home(); err != nil {
		return nil, err
	}
	return e, nil
}

// Screen returns the last rendered screen
func (e *Engine) Screen() *Screen {
	return e.screen
}

// Current returns the route that a refresh would replay
func (e *Engine) Current() Route {
	return e.current
}

// History returns a copy of the back-history, oldest first
func (e *Engine) History() []Route {
	return append([]Route(nil), e.stack...)
}

// Zoom returns the current zoom percentage
func (e *Engine) Zoom() int {
	return e.zoom
}

// CanGoBack reports whether Back would change the view
func (e *Engine) CanGoBack() bool {
	return len(e.stack) > 0
}

// AtRoot reports whether the books list is shown with nothing to go back to.
// A platform back button should confirm exit here and call Back otherwise.
func (e *Engine) AtRoot() bool {
	return len(e.stack) == 0 && e.current.Kind == ViewBooks
}

// Home shows the books list and clears the history
func (e *Engine) Home() (*Screen, error) {
	s, err := e.render(Root())
	if err != nil {
		return nil, err
	}
	e.stack = e.stack[:0]
	e.query = ""
	e.show(Root(), s)
	return s, nil
}

// Open drills down into target, recording the current view in history
func (e *Engine) Open(target Route) (*Screen, error) {
	if target.Kind == ViewBooks {
		return e.Home()
	}
	to, err := e.resolver.Resolve(target)
	if err != nil {
		return nil, e.fail("resolve", target, err)
	}
	// the view on screen never goes into its own history
	if to == e.current {
		return e.replace(to)
	}
	s, err := e.render(to)
	if err != nil {
		return nil, err
	}
	e.stack = append(e.stack, e.current)
	e.query = ""
	e.show(to, s)
	return s, nil
}

// Select opens the target of a list item
func (e *Engine) Select(item Item) (*Screen, error) {
	if item.Hit != nil {
		return e.OpenHit(*item.Hit)
	}
	return e.Open(item.Target)
}

// SelectBook enters a book from the books list
func (e *Engine) SelectBook(id models.ID) (*Screen, error) {
	return e.Open(BookRoute(id))
}

// SelectChapterGroup opens the chapter-list entry with the given name
func (e *Engine) SelectChapterGroup(bookID models.ID, name string) (*Screen, error) {
	return e.Open(GroupRoute(bookID, name))
}

// SelectTitle opens a title's content
func (e *Engine) SelectTitle(id models.ID) (*Screen, error) {
	b, _, _, err := e.idx.Path(id)
	if err != nil {
		return nil, e.fail("open title", ContentRoute("", id), err)
	}
	return e.Open(ContentRoute(b.ID, id))
}

// About shows the about text
func (e *Engine) About() (*Screen, error) {
	return e.Open(Route{Kind: ViewAbout})
}

// Back replays the previous view. With an empty history it does nothing
// and returns the current screen.
func (e *Engine) Back() (*Screen, error) {
	if len(e.stack) == 0 {
		return e.screen, nil
	}
	prev := e.stack[len(e.stack)-1]
	s, err := e.render(prev)
	if err != nil {
		return nil, err
	}
	e.stack = e.stack[:len(e.stack)-1]
	e.query = ""
	e.show(prev, s)
	return s, nil
}

// Refresh replays the current view without touching the history
func (e *Engine) Refresh() (*Screen, error) {
	s, err := e.render(e.current)
	if err != nil {
		return nil, err
	}
	e.query = ""
	e.show(e.current, s)
	return s, nil
}

// NavigateToBook jumps to a book by name from the menu. The history is
// reset to the books list.
func (e *Engine) NavigateToBook(name string) (*Screen, error) {
	b, err := e.idx.BookByName(name)
	if err != nil {
		return nil, e.fail("menu", Root(), err)
	}
	to, err := e.resolver.Resolve(BookRoute(b.ID))
	if err != nil {
		return nil, e.fail("resolve", BookRoute(b.ID), err)
	}
	s, err := e.render(to)
	if err != nil {
		return nil, err
	}
	e.stack = append(e.stack[:0], Root())
	e.query = ""
	e.show(to, s)
	return s, nil
}

// Toggle switches a special book between chapter mode and page order. The
// switch replaces the current view. Books without a toggle are left as is.
func (e *Engine) Toggle(bookID models.ID) (*Screen, error) {
	to, ok, err := e.resolver.Toggle(bookID, e.current.Kind)
	if err != nil {
		return nil, e.fail("toggle", PagesRoute(bookID), err)
	}
	if !ok {
		e.log.Debug("Book has no alternate view", zap.Stringer("book", bookID))
		return e.screen, nil
	}
	return e.replace(to)
}

// Next opens the following title of the book's reading sequence
func (e *Engine) Next() (*Screen, error) {
	return e.step(1)
}

// Prev opens the preceding title of the book's reading sequence
func (e *Engine) Prev() (*Screen, error) {
	return e.step(-1)
}

func (e *Engine) step(delta int) (*Screen, error) {
	if e.current.Kind != ViewContent {
		return nil, ErrNotReading
	}
	seq, err := e.resolver.Sequence(e.current.Book)
	if err != nil {
		return nil, e.fail("sequence", e.current, err)
	}
	i := Position(seq, e.current.Title)
	j := i + delta
	if i < 0 || j < 0 || j >= len(seq) {
		return e.screen, nil
	}
	return e.replace(ContentRoute(e.current.Book, seq[j].ID))
}

// SetZoom clamps, stores and applies a zoom percentage. An open title is
// re-assembled from its stored HTML.
func (e *Engine) SetZoom(percent int) (*Screen, error) {
	percent = content.ClampZoom(percent)
	if percent == e.zoom {
		return e.screen, nil
	}
	e.zoom = percent
	if e.store != nil {
		if err := e.store.SetZoom(percent); err != nil {
			e.log.Warn("Unable to store zoom", zap.Int("zoom", percent), zap.Error(err))
		}
	}
	if e.screen != nil && e.screen.Content != nil {
		s, err := e.render(e.current)
		if err != nil {
			return nil, err
		}
		e.show(e.current, s)
	}
	return e.screen, nil
}

// ZoomIn raises the zoom by one step
func (e *Engine) ZoomIn() (*Screen, error) {
	return e.SetZoom(e.zoom + content.ZoomStep)
}

// ZoomOut lowers the zoom by one step
func (e *Engine) ZoomOut() (*Screen, error) {
	return e.SetZoom(e.zoom - content.ZoomStep)
}

// Search shows the hits for text. A scoped search is limited to the book
// of the current view when it has one. An empty query restores the view
// that was shown before searching.
func (e *Engine) Search(text string, scoped bool) (*Screen, error) {
	var scope models.ID
	if scoped && e.screen != nil {
		scope = e.screen.Scope
	}
	hits, err := e.search.Search(text, scope)
	if errors.Is(err, search.ErrEmptyQuery) {
		return e.ClearSearch()
	}
	if err != nil {
		return nil, err
	}

	base := e.screen
	s := &Screen{
		Route:      e.current,
		Header:     base.Header,
		Scope:      base.Scope,
		ScopeLabel: base.ScopeLabel,
		Results:    true,
		Query:      e.search.Normalize(text),
	}
	s.Header.HasPrev, s.Header.HasNext = false, false
	for i := range hits {
		s.Items = append(s.Items, Item{
			Label:    hits[i].Label,
			Subtitle: hits[i].Subtitle,
			Hit:      &hits[i],
		})
	}
	e.query = s.Query
	e.screen = s
	return s, nil
}

// ClearSearch drops the results and shows the current view again
func (e *Engine) ClearSearch() (*Screen, error) {
	return e.Refresh()
}

// Query returns the active search query
func (e *Engine) Query() string {
	return e.query
}

// OpenHit opens a search result and rebuilds the history a reader would
// have after drilling down to it: books, the book's entry view and, for a
// title, the list its chapter is shown in.
func (e *Engine) OpenHit(h search.Hit) (*Screen, error) {
	entry, err := e.resolver.Resolve(BookRoute(h.BookID))
	if err != nil {
		return nil, e.fail("hit", BookRoute(h.BookID), err)
	}

	chain := []Route{Root()}
	var to Route
	switch h.Kind {
	case search.KindBook:
		to = entry
	case search.KindChapter:
		chain = append(chain, entry)
		if to, err = e.resolver.ChapterRoute(h.ID); err != nil {
			return nil, e.fail("hit", TitlesRoute(h.BookID, h.ID), err)
		}
	case search.KindTitle:
		list, err := e.resolver.ChapterRoute(h.ChapterID)
		if err != nil {
			return nil, e.fail("hit", TitlesRoute(h.BookID, h.ChapterID), err)
		}
		chain = append(chain, entry, list)
		to = ContentRoute(h.BookID, h.ID)
	default:
		return nil, fmt.Errorf("unknown hit kind %d", h.Kind)
	}

	s, err := e.render(to)
	if err != nil {
		return nil, err
	}
	e.stack = e.stack[:0]
	for _, r := range chain {
		if n := len(e.stack); (n > 0 && e.stack[n-1] == r) || r == to {
			continue
		}
		e.stack = append(e.stack, r)
	}
	e.query = ""
	e.show(to, s)
	return s, nil
}

// replace renders to in place of the current view
func (e *Engine) replace(to Route) (*Screen, error) {
	s, err := e.render(to)
	if err != nil {
		return nil, err
	}
	e.query = ""
	e.show(to, s)
	return s, nil
}

func (e *Engine) render(to Route) (*Screen, error) {
	s, err := e.resolver.Render(to, e.zoom)
	if err != nil {
		return nil, e.fail("render", to, err)
	}
	return s, nil
}

// show makes to the current view; the history must already be updated
func (e *Engine) show(to Route, s *Screen) {
	e.current = to
	s.Header.CanGoBack = len(e.stack) > 0
	e.screen = s
	e.log.Debug("Show", zap.Stringer("view", to), zap.Int("depth", len(e.stack)))
}

func (e *Engine) fail(op string, to Route, err error) error {
	if errors.Is(err, corpus.ErrNotFound) {
		e.log.Error("Corpus lookup failed", zap.String("op", op), zap.Stringer("view", to), zap.Error(err))
	}
	return fmt.Errorf("%s %s: %w", op, to, err)
}
