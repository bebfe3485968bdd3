// Package search finds books, chapters and titles whose display text
// contains a query, optionally restricted to a single book.
package search

import (
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/justyntemme/boky-t/internal/corpus"
	"github.com/justyntemme/boky-t/pkg/models"
)

// ErrEmptyQuery tells the caller to show the current view instead of results
var ErrEmptyQuery = errors.New("empty query")

// Kind is the entity type of a hit
type Kind int

const (
	KindBook Kind = iota
	KindChapter
	KindTitle
)

func (k Kind) String() string {
	switch k {
	case KindBook:
		return "book"
	case KindChapter:
		return "chapter"
	case KindTitle:
		return "title"
	default:
		return "unknown"
	}
}

// Hit is a single search result. BookID is set for every kind, ChapterID
// for chapter and title hits.
type Hit struct {
	Kind      Kind
	ID        models.ID
	BookID    models.ID
	ChapterID models.ID
	Label     string
	Subtitle  string
}

type entry struct {
	id, bookID, chapterID models.ID
	folded                string
	number                string // special-book titles with content only
	label, subtitle       string
}

// Engine holds case-folded copies of every searchable string
type Engine struct {
	log      *zap.Logger
	fold     cases.Caser
	books    []entry
	chapters []entry
	titles   []entry
}

// NewEngine prepares the search tables. Every reference is resolved here;
// a missing parent is an integrity error.
func NewEngine(idx *corpus.Index, log *zap.Logger) (*Engine, error) {
	if log == nil {
		log = zap.NewNop()
	}
	e := &Engine{
		log:  log.Named("search"),
		fold: cases.Lower(language.Und),
	}

	for _, b := range idx.Books() {
		e.books = append(e.books, entry{
			id:     b.ID,
			bookID: b.ID,
			folded: e.fold.String(b.Name),
			label:  b.Name,
		})
	}

	for _, ch := range idx.AllChapters() {
		b, err := idx.Book(ch.BookID)
		if err != nil {
			return nil, err
		}
		e.chapters = append(e.chapters, entry{
			id:        ch.ID,
			bookID:    ch.BookID,
			chapterID: ch.ID,
			folded:    e.fold.String(ch.Title),
			label:     ch.Title,
			subtitle:  b.Name,
		})
	}

	for _, t := range idx.AllTitles() {
		b, ch, _, err := idx.Path(t.ID)
		if err != nil {
			return nil, err
		}
		class, err := idx.Class(b.ID)
		if err != nil {
			return nil, err
		}
		en := entry{
			id:        t.ID,
			bookID:    b.ID,
			chapterID: ch.ID,
			folded:    e.fold.String(t.Text),
			label:     t.Text,
			subtitle:  b.Name + " → " + ch.Title,
		}
		hasContent := idx.HasContent(t.ID)
		if hasContent && t.Number.Valid {
			en.label = t.Number.String() + " - " + t.Text
		}
		if class.Special() && hasContent && t.Number.Valid {
			en.number = e.fold.String(t.Number.String())
		}
		e.titles = append(e.titles, en)
	}
	return e, nil
}

// Normalize lower-cases and trims a raw query
func (e *Engine) Normalize(raw string) string {
	return e.fold.String(strings.TrimSpace(raw))
}

// Search returns all hits for query: books first, then chapters, then
// titles, each group in load order. An empty scope searches everything.
func (e *Engine) Search(raw string, scope models.ID) ([]Hit, error) {
	q := e.Normalize(raw)
	if q == "" {
		return nil, ErrEmptyQuery
	}

	inScope := func(en entry) bool {
		return scope == "" || en.bookID == scope
	}

	var hits []Hit
	for _, en := range e.books {
		if inScope(en) && strings.Contains(en.folded, q) {
			hits = append(hits, en.hit(KindBook))
		}
	}
	for _, en := range e.chapters {
		if inScope(en) && strings.Contains(en.folded, q) {
			hits = append(hits, en.hit(KindChapter))
		}
	}
	for _, en := range e.titles {
		if !inScope(en) {
			continue
		}
		if strings.Contains(en.folded, q) || (en.number != "" && strings.Contains(en.number, q)) {
			hits = append(hits, en.hit(KindTitle))
		}
	}

	e.log.Debug("Search", zap.String("query", q), zap.Stringer("scope", scope), zap.Int("hits", len(hits)))
	return hits, nil
}

func (en entry) hit(k Kind) Hit {
	h := Hit{
		Kind:     k,
		ID:       en.id,
		BookID:   en.bookID,
		Label:    en.label,
		Subtitle: en.subtitle,
	}
	if k != KindBook {
		h.ChapterID = en.chapterID
	}
	return h
}
