package nav

import (
	"fmt"

	"github.com/justyntemme/boky-t/pkg/models"
)

// ViewKind names a screen of the browser
type ViewKind int

const (
	ViewBooks    ViewKind = iota // root: every book
	ViewBook                     // entry into a book, resolved before rendering
	ViewChapters                 // chapter list of a book, duplicate names merged
	ViewPages                    // every title of a book in page order
	ViewTitles                   // titles of one chapter
	ViewGroup                    // titles of all chapters sharing a name
	ViewContent                  // assembled text of one title
	ViewAbout
)

// String returns the name of the view
func (k ViewKind) String() string {
	switch k {
	case ViewBooks:
		return "Books"
	case ViewBook:
		return "Book"
	case ViewChapters:
		return "Chapters"
	case ViewPages:
		return "Pages"
	case ViewTitles:
		return "Titles"
	case ViewGroup:
		return "Group"
	case ViewContent:
		return "Content"
	case ViewAbout:
		return "About"
	default:
		return "Unknown"
	}
}

// Route is a view together with the parameters it was entered with. The
// back-history is a stack of routes replayed by the engine.
type Route struct {
	Kind    ViewKind
	Book    models.ID
	Chapter models.ID
	Title   models.ID
	Group   string
}

// Root is the books list
func Root() Route {
	return Route{Kind: ViewBooks}
}

// BookRoute enters a book
func BookRoute(id models.ID) Route {
	return Route{Kind: ViewBook, Book: id}
}

// ChaptersRoute shows the chapter list of a book
func ChaptersRoute(id models.ID) Route {
	return Route{Kind: ViewChapters, Book: id}
}

// PagesRoute shows a book in page order
func PagesRoute(id models.ID) Route {
	return Route{Kind: ViewPages, Book: id}
}

// TitlesRoute shows the titles of a chapter
func TitlesRoute(book, chapter models.ID) Route {
	return Route{Kind: ViewTitles, Book: book, Chapter: chapter}
}

// GroupRoute shows or resolves a chapter-name group
func GroupRoute(book models.ID, name string) Route {
	return Route{Kind: ViewGroup, Book: book, Group: name}
}

// ContentRoute opens a title
func ContentRoute(book, title models.ID) Route {
	return Route{Kind: ViewContent, Book: book, Title: title}
}

func (r Route) String() string {
	switch r.Kind {
	case ViewBooks, ViewAbout:
		return r.Kind.String()
	case ViewBook, ViewChapters, ViewPages:
		return fmt.Sprintf("%s(%s)", r.Kind, r.Book)
	case ViewTitles:
		return fmt.Sprintf("%s(%s)", r.Kind, r.Chapter)
	case ViewGroup:
		return fmt.Sprintf("%s(%s,%q)", r.Kind, r.Book, r.Group)
	case ViewContent:
		return fmt.Sprintf("%s(%s)", r.Kind, r.Title)
	default:
		return r.Kind.String()
	}
}
