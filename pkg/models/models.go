package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// ID identifies a corpus record. The corpus files mix numeric and string
// ids, so both JSON forms decode into the same textual key.
type ID string

// UnmarshalJSON accepts a JSON string or number
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// String returns the id text
func (id ID) String() string {
	return string(id)
}

// Number is an optional page or sequence number attached to a title
type Number struct {
	Value int
	Text  string
	Valid bool
}

// NewNumber returns a valid number
func NewNumber(n int) Number {
	return Number{Value: n, Text: strconv.Itoa(n), Valid: true}
}

// Key returns the sort key; a missing number sorts as 0
func (n Number) Key() int {
	if !n.Valid {
		return 0
	}
	return n.Value
}

// String returns the number as it appeared in the corpus
func (n Number) String() string {
	if !n.Valid {
		return ""
	}
	return n.Text
}

// UnmarshalJSON accepts a number, a numeric string or null
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*n = Number{}
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	var text string
	if data[0] == '"' {
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		text = strings.TrimSpace(text)
	} else {
		text = string(data)
	}
	if text == "" {
		return nil
	}
	n.Text = text
	n.Valid = true
	if v, err := strconv.Atoi(text); err == nil {
		n.Value = v
	} else if f, err := strconv.ParseFloat(text, 64); err == nil {
		n.Value = int(f)
	}
	return nil
}

// Book is a top level entry of the corpus
type Book struct {
	ID   ID     `json:"id"`
	Name string `json:"cat_name"`
}

// Chapter groups titles inside a book. Several chapters of one book may
// share the same Title.
type Chapter struct {
	ID     ID     `json:"id"`
	BookID ID     `json:"book_id"`
	Title  string `json:"chp_title"`
}

// Title is a single reading entry (hymn, psalm, prayer)
type Title struct {
	ID        ID     `json:"id"`
	ChapterID ID     `json:"chapter_id"`
	Text      string `json:"text"`
	Number    Number `json:"number"`
}

// Fragment is one piece of a title's rich text. A title's fragments form a
// contiguous run in the fragment collection.
type Fragment struct {
	TitleID    ID     `json:"id_title"`
	HTML       string `json:"ct_lyrics"`
	PageNumber Number `json:"ct_page_number"`
	Subtext    string `json:"ct_subtext,omitempty"`
}

// Class describes how a book is navigated
type Class uint8

const (
	// ClassNumbered books carry meaningful page numbers and open in page order
	ClassNumbered Class = 1 << iota
	// ClassSingleChapter books skip the chapter list
	ClassSingleChapter
)

// Numbered reports whether the book is page ordered
func (c Class) Numbered() bool {
	return c&ClassNumbered != 0
}

// SingleChapter reports whether the chapter list is skipped
func (c Class) SingleChapter() bool {
	return c&ClassSingleChapter != 0
}

// Special reports whether the book is numbered or single-chapter
func (c Class) Special() bool {
	return c.Numbered() || c.SingleChapter()
}

// String returns a short label for logs
func (c Class) String() string {
	var parts []string
	if c.Numbered() {
		parts = append(parts, "numbered")
	}
	if c.SingleChapter() {
		parts = append(parts, "single-chapter")
	}
	if len(parts) == 0 {
		return "plain"
	}
	return strings.Join(parts, "+")
}

// Corpus holds the four collections in load order
type Corpus struct {
	Books     []Book
	Chapters  []Chapter
	Titles    []Title
	Fragments []Fragment
}
