// Package corpus builds the read-only lookup structures over the four
// entity collections of the prayer book: books, chapters, titles and
// content fragments.
package corpus

import (
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/justyntemme/boky-t/pkg/models"
)

// run is the half-open range of a title's fragments
type run struct {
	start, end int
}

// Index answers lookups over an immutable corpus
type Index struct {
	log *zap.Logger

	books     []models.Book
	chapters  []models.Chapter
	titles    []models.Title
	fragments []models.Fragment

	bookByID    map[models.ID]int
	bookByName  map[string]int
	chapterByID map[models.ID]int
	titleByID   map[models.ID]int

	chaptersOf map[models.ID][]int
	titlesOf   map[models.ID][]int
	runs       map[models.ID]run

	class map[models.ID]models.Class
}

// NewIndex validates the corpus and builds the index. A corpus with any
// integrity violation is rejected; the returned error lists all of them.
func NewIndex(c models.Corpus, cls Classification, log *zap.Logger) (*Index, error) {
	if log == nil {
		log = zap.NewNop()
	}
	idx := &Index{
		log:         log.Named("corpus"),
		books:       c.Books,
		chapters:    c.Chapters,
		titles:      c.Titles,
		fragments:   c.Fragments,
		bookByID:    make(map[models.ID]int, len(c.Books)),
		bookByName:  make(map[string]int, len(c.Books)),
		chapterByID: make(map[models.ID]int, len(c.Chapters)),
		titleByID:   make(map[models.ID]int, len(c.Titles)),
		chaptersOf:  make(map[models.ID][]int, len(c.Books)),
		titlesOf:    make(map[models.ID][]int, len(c.Chapters)),
		runs:        make(map[models.ID]run, len(c.Titles)),
		class:       make(map[models.ID]models.Class, len(c.Books)),
	}

	var errs error
	for i, b := range c.Books {
		if _, dup := idx.bookByID[b.ID]; dup {
			errs = multierr.Append(errs, integrity("duplicate book id %q", b.ID))
			continue
		}
		idx.bookByID[b.ID] = i
		if prev, dup := idx.bookByName[b.Name]; dup {
			idx.log.Warn("Duplicate book name, direct navigation uses the first one",
				zap.String("name", b.Name), zap.Stringer("first", c.Books[prev].ID), zap.Stringer("ignored", b.ID))
		} else {
			idx.bookByName[b.Name] = i
		}
		idx.class[b.ID] = cls.Classify(b.Name)
	}

	for i, ch := range c.Chapters {
		if _, dup := idx.chapterByID[ch.ID]; dup {
			errs = multierr.Append(errs, integrity("duplicate chapter id %q", ch.ID))
			continue
		}
		idx.chapterByID[ch.ID] = i
		if _, ok := idx.bookByID[ch.BookID]; !ok {
			errs = multierr.Append(errs, integrity("chapter %q references missing book %q", ch.ID, ch.BookID))
			continue
		}
		idx.chaptersOf[ch.BookID] = append(idx.chaptersOf[ch.BookID], i)
	}

	for i, t := range c.Titles {
		if _, dup := idx.titleByID[t.ID]; dup {
			errs = multierr.Append(errs, integrity("duplicate title id %q", t.ID))
			continue
		}
		idx.titleByID[t.ID] = i
		if _, ok := idx.chapterByID[t.ChapterID]; !ok {
			errs = multierr.Append(errs, integrity("title %q references missing chapter %q", t.ID, t.ChapterID))
			continue
		}
		idx.titlesOf[t.ChapterID] = append(idx.titlesOf[t.ChapterID], i)
	}

	for i := 0; i < len(c.Fragments); {
		id := c.Fragments[i].TitleID
		j := i + 1
		for j < len(c.Fragments) && c.Fragments[j].TitleID == id {
			j++
		}
		switch prev, seen := idx.runs[id]; {
		case seen:
			errs = multierr.Append(errs, integrity("content for title %q is split: fragments %d-%d and %d-%d",
				id, prev.start, prev.end-1, i, j-1))
		default:
			if _, ok := idx.titleByID[id]; !ok {
				errs = multierr.Append(errs, integrity("content at %d references missing title %q", i, id))
			}
			idx.runs[id] = run{start: i, end: j}
		}
		i = j
	}

	if errs != nil {
		return nil, errs
	}

	idx.log.Debug("Corpus indexed",
		zap.Int("books", len(c.Books)),
		zap.Int("chapters", len(c.Chapters)),
		zap.Int("titles", len(c.Titles)),
		zap.Int("fragments", len(c.Fragments)))
	return idx, nil
}

// Books returns all books in load order
func (idx *Index) Books() []models.Book {
	return idx.books
}

// AllChapters returns every chapter in load order
func (idx *Index) AllChapters() []models.Chapter {
	return idx.chapters
}

// AllTitles returns every title in load order
func (idx *Index) AllTitles() []models.Title {
	return idx.titles
}

// Book looks a book up by id
func (idx *Index) Book(id models.ID) (models.Book, error) {
	i, ok := idx.bookByID[id]
	if !ok {
		return models.Book{}, notFound("book", id)
	}
	return idx.books[i], nil
}

// BookByName looks a book up by its display name
func (idx *Index) BookByName(name string) (models.Book, error) {
	i, ok := idx.bookByName[name]
	if !ok {
		return models.Book{}, &LookupError{Kind: "book", Key: name}
	}
	return idx.books[i], nil
}

// Chapter looks a chapter up by id
func (idx *Index) Chapter(id models.ID) (models.Chapter, error) {
	i, ok := idx.chapterByID[id]
	if !ok {
		return models.Chapter{}, notFound("chapter", id)
	}
	return idx.chapters[i], nil
}

// Title looks a title up by id
func (idx *Index) Title(id models.ID) (models.Title, error) {
	i, ok := idx.titleByID[id]
	if !ok {
		return models.Title{}, notFound("title", id)
	}
	return idx.titles[i], nil
}

// Class returns the navigation class of a book
func (idx *Index) Class(bookID models.ID) (models.Class, error) {
	c, ok := idx.class[bookID]
	if !ok {
		return 0, notFound("book", bookID)
	}
	return c, nil
}

// ChaptersOf returns the chapters of a book in load order
func (idx *Index) ChaptersOf(bookID models.ID) ([]models.Chapter, error) {
	if _, ok := idx.bookByID[bookID]; !ok {
		return nil, notFound("book", bookID)
	}
	positions := idx.chaptersOf[bookID]
	out := make([]models.Chapter, 0, len(positions))
	for _, i := range positions {
		out = append(out, idx.chapters[i])
	}
	return out, nil
}

// TitlesOf returns the titles of a chapter in load order
func (idx *Index) TitlesOf(chapterID models.ID) ([]models.Title, error) {
	if _, ok := idx.chapterByID[chapterID]; !ok {
		return nil, notFound("chapter", chapterID)
	}
	positions := idx.titlesOf[chapterID]
	out := make([]models.Title, 0, len(positions))
	for _, i := range positions {
		out = append(out, idx.titles[i])
	}
	return out, nil
}

// Fragments returns the contiguous fragment run of a title
func (idx *Index) Fragments(titleID models.ID) ([]models.Fragment, error) {
	r, ok := idx.runs[titleID]
	if !ok {
		return nil, notFound("content", titleID)
	}
	return idx.fragments[r.start:r.end:r.end], nil
}

// HasContent reports whether a title owns at least one fragment
func (idx *Index) HasContent(titleID models.ID) bool {
	_, ok := idx.runs[titleID]
	return ok
}

// Path resolves the owning chapter and book of a title
func (idx *Index) Path(titleID models.ID) (models.Book, models.Chapter, models.Title, error) {
	t, err := idx.Title(titleID)
	if err != nil {
		return models.Book{}, models.Chapter{}, models.Title{}, err
	}
	ch, err := idx.Chapter(t.ChapterID)
	if err != nil {
		return models.Book{}, models.Chapter{}, t, err
	}
	b, err := idx.Book(ch.BookID)
	if err != nil {
		return models.Book{}, ch, t, err
	}
	return b, ch, t, nil
}
