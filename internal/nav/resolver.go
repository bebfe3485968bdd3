package nav

import (
	"errors"
	"strconv"

	"go.uber.org/zap"

	"github.com/justyntemme/boky-t/internal/content"
	"github.com/justyntemme/boky-t/internal/corpus"
	"github.com/justyntemme/boky-t/pkg/models"
)

// Resolver turns navigation intents into concrete routes and renders
// routes into screens. It holds no navigation state.
type Resolver struct {
	idx       *corpus.Index
	asm       *content.Assembler
	log       *zap.Logger
	rootTitle string
	about     string

	sequences map[models.ID][]models.Title
}

// NewResolver creates a resolver over idx
func NewResolver(idx *corpus.Index, asm *content.Assembler, rootTitle, about string, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{
		idx:       idx,
		asm:       asm,
		log:       log,
		rootTitle: rootTitle,
		about:     about,
		sequences: make(map[models.ID][]models.Title),
	}
}

// Sequence returns the cached linear reading order of a book
func (r *Resolver) Sequence(bookID models.ID) ([]models.Title, error) {
	if seq, ok := r.sequences[bookID]; ok {
		return seq, nil
	}
	seq, err := Sequence(r.idx, bookID)
	if err != nil {
		return nil, err
	}
	r.sequences[bookID] = seq
	return seq, nil
}

// Resolve maps an intent onto the route that is actually shown. Book
// entries and chapter groups are rewritten; every other route resolves to
// itself.
func (r *Resolver) Resolve(to Route) (Route, error) {
	switch to.Kind {
	case ViewBook:
		return r.bookEntry(to.Book)
	case ViewGroup:
		return r.group(to.Book, to.Group)
	default:
		return to, nil
	}
}

// bookEntry applies the entry rules: single-chapter books open their
// first chapter, numbered books open in page order, all others show the
// chapter list.
func (r *Resolver) bookEntry(bookID models.ID) (Route, error) {
	class, err := r.idx.Class(bookID)
	if err != nil {
		return Route{}, err
	}
	switch {
	case class.SingleChapter():
		return r.chapterMode(bookID)
	case class.Numbered():
		return PagesRoute(bookID), nil
	default:
		return ChaptersRoute(bookID), nil
	}
}

// chapterMode is the "by chapter" view of a book
func (r *Resolver) chapterMode(bookID models.ID) (Route, error) {
	class, err := r.idx.Class(bookID)
	if err != nil {
		return Route{}, err
	}
	if class.SingleChapter() {
		chapters, err := r.idx.ChaptersOf(bookID)
		if err != nil {
			return Route{}, err
		}
		if len(chapters) > 0 {
			return TitlesRoute(bookID, chapters[0].ID), nil
		}
	}
	return ChaptersRoute(bookID), nil
}

// group resolves a chapter-name entry: a single title opens directly,
// several chapters show the merged list, a lone chapter its own list.
func (r *Resolver) group(bookID models.ID, name string) (Route, error) {
	chapters, titles, err := r.groupTitles(bookID, name)
	if err != nil {
		return Route{}, err
	}
	switch {
	case len(titles) == 1:
		return ContentRoute(bookID, titles[0].ID), nil
	case len(chapters) > 1:
		return GroupRoute(bookID, name), nil
	default:
		return TitlesRoute(bookID, chapters[0].ID), nil
	}
}

// ChapterRoute is the list a chapter is shown in when reached from search:
// its group when the name is shared, its own titles otherwise.
func (r *Resolver) ChapterRoute(chapterID models.ID) (Route, error) {
	ch, err := r.idx.Chapter(chapterID)
	if err != nil {
		return Route{}, err
	}
	chapters, err := r.idx.ChaptersOf(ch.BookID)
	if err != nil {
		return Route{}, err
	}
	shared := 0
	for _, c := range chapters {
		if c.Title == ch.Title {
			shared++
		}
	}
	if shared > 1 {
		return GroupRoute(ch.BookID, ch.Title), nil
	}
	return TitlesRoute(ch.BookID, ch.ID), nil
}

// Toggle returns the other mode of a special book: page order from any
// chapter-based view, chapter mode from page order. ok is false for
// books without a toggle.
func (r *Resolver) Toggle(bookID models.ID, from ViewKind) (to Route, ok bool, err error) {
	class, err := r.idx.Class(bookID)
	if err != nil {
		return Route{}, false, err
	}
	if !class.Special() {
		return Route{}, false, nil
	}
	if from == ViewPages {
		to, err = r.chapterMode(bookID)
		return to, err == nil, err
	}
	return PagesRoute(bookID), true, nil
}

func (r *Resolver) groupTitles(bookID models.ID, name string) ([]models.Chapter, []models.Title, error) {
	all, err := r.idx.ChaptersOf(bookID)
	if err != nil {
		return nil, nil, err
	}
	var (
		chapters []models.Chapter
		titles   []models.Title
	)
	for _, ch := range all {
		if ch.Title != name {
			continue
		}
		chapters = append(chapters, ch)
		ts, err := r.idx.TitlesOf(ch.ID)
		if err != nil {
			return nil, nil, err
		}
		titles = append(titles, ts...)
	}
	if len(chapters) == 0 {
		return nil, nil, &corpus.LookupError{Kind: "chapter group", Key: name}
	}
	return chapters, titles, nil
}

// Render builds the screen of an already resolved route
func (r *Resolver) Render(to Route, zoom int) (*Screen, error) {
	switch to.Kind {
	case ViewBooks:
		return r.renderBooks(), nil
	case ViewChapters:
		return r.renderChapters(to)
	case ViewPages:
		return r.renderPages(to)
	case ViewTitles:
		return r.renderTitles(to)
	case ViewGroup:
		return r.renderGroup(to)
	case ViewContent:
		return r.renderContent(to, zoom)
	case ViewAbout:
		return &Screen{
			Route:   to,
			Header:  Header{Title: "About"},
			Content: &content.Renderable{Body: r.about, Zoom: zoom},
		}, nil
	default:
		return nil, errors.New("route must be resolved before rendering: " + to.String())
	}
}

func (r *Resolver) renderBooks() *Screen {
	s := &Screen{Route: Root(), Header: Header{Title: r.rootTitle}}
	for _, b := range r.idx.Books() {
		class, _ := r.idx.Class(b.ID)
		s.Items = append(s.Items, Item{Label: b.Name, Target: BookRoute(b.ID), Class: class})
	}
	return s
}

// bookScreen starts a screen scoped to a book
func (r *Resolver) bookScreen(to Route) (*Screen, models.Book, models.Class, error) {
	book, err := r.idx.Book(to.Book)
	if err != nil {
		return nil, models.Book{}, 0, err
	}
	class, err := r.idx.Class(book.ID)
	if err != nil {
		return nil, models.Book{}, 0, err
	}
	s := &Screen{
		Route:      to,
		Header:     Header{Title: book.Name},
		Scope:      book.ID,
		ScopeLabel: book.Name,
	}
	if toggle, ok, err := r.Toggle(book.ID, to.Kind); err != nil {
		return nil, models.Book{}, 0, err
	} else if ok {
		s.Toggle = &toggle
	}
	return s, book, class, nil
}

func (r *Resolver) renderChapters(to Route) (*Screen, error) {
	s, book, _, err := r.bookScreen(to)
	if err != nil {
		return nil, err
	}
	chapters, err := r.idx.ChaptersOf(book.ID)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(chapters))
	for _, ch := range chapters {
		if seen[ch.Title] {
			continue
		}
		seen[ch.Title] = true
		s.Items = append(s.Items, Item{Label: ch.Title, Target: GroupRoute(book.ID, ch.Title)})
	}
	return s, nil
}

func (r *Resolver) renderPages(to Route) (*Screen, error) {
	s, book, class, err := r.bookScreen(to)
	if err != nil {
		return nil, err
	}
	seq, err := r.Sequence(book.ID)
	if err != nil {
		return nil, err
	}
	for i, t := range seq {
		number := t.Number.String()
		if class.SingleChapter() {
			number = strconv.Itoa(i + 1)
		}
		label := t.Text
		if number != "" {
			label = number + " - " + t.Text
		}
		s.Items = append(s.Items, Item{Label: label, Target: ContentRoute(book.ID, t.ID)})
	}
	return s, nil
}

func (r *Resolver) renderTitles(to Route) (*Screen, error) {
	ch, err := r.idx.Chapter(to.Chapter)
	if err != nil {
		return nil, err
	}
	to.Book = ch.BookID
	s, book, class, err := r.bookScreen(to)
	if err != nil {
		return nil, err
	}
	s.Header = Header{Title: ch.Title, Subtitle: book.Name}
	titles, err := r.idx.TitlesOf(ch.ID)
	if err != nil {
		return nil, err
	}
	r.titleItems(s, book.ID, class, titles)
	return s, nil
}

func (r *Resolver) renderGroup(to Route) (*Screen, error) {
	s, book, class, err := r.bookScreen(to)
	if err != nil {
		return nil, err
	}
	_, titles, err := r.groupTitles(book.ID, to.Group)
	if err != nil {
		return nil, err
	}
	sortByNumber(titles)
	s.Header = Header{Title: to.Group, Subtitle: book.Name}
	r.titleItems(s, book.ID, class, titles)
	return s, nil
}

func (r *Resolver) titleItems(s *Screen, bookID models.ID, class models.Class, titles []models.Title) {
	for _, t := range titles {
		label := t.Text
		if class.Special() && t.Number.Valid {
			label = t.Number.String() + " - " + t.Text
		}
		s.Items = append(s.Items, Item{Label: label, Target: ContentRoute(bookID, t.ID)})
	}
}

func (r *Resolver) renderContent(to Route, zoom int) (*Screen, error) {
	book, ch, title, err := r.idx.Path(to.Title)
	if err != nil {
		return nil, err
	}
	to.Book = book.ID
	class, err := r.idx.Class(book.ID)
	if err != nil {
		return nil, err
	}

	s := &Screen{Route: to}
	s.Header.Title = title.Text
	s.Header.Subtitle = book.Name + " → " + ch.Title
	if class.Special() && title.Number.Valid && r.idx.HasContent(title.ID) {
		s.Header.Title = title.Number.String() + " - " + title.Text
	}

	body, err := r.asm.Assemble(title.ID, zoom)
	switch {
	case errors.Is(err, corpus.ErrNotFound):
		r.log.Warn("Title has no content", zap.Stringer("title", title.ID))
		body = content.Renderable{TitleID: title.ID, Zoom: zoom}
		s.Empty = true
	case err != nil:
		return nil, err
	}
	s.Content = &body

	seq, err := r.Sequence(book.ID)
	if err != nil {
		return nil, err
	}
	s.Header.HasPrev, s.Header.HasNext = Neighbors(seq, Position(seq, title.ID))
	return s, nil
}
