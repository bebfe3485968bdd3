package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justyntemme/boky-t/internal/corpus"
	"github.com/justyntemme/boky-t/pkg/models"
)

func newEngine(t *testing.T) *Engine {
	t.Helper()
	c := models.Corpus{
		Books: []models.Book{
			{ID: "1", Name: "Fihirana"},
			{ID: "2", Name: "H.A.A"},
			{ID: "3", Name: "Vavaka Maraina"},
		},
		Chapters: []models.Chapter{
			{ID: "10", BookID: "1", Title: "Fiderana"},
			{ID: "20", BookID: "2", Title: "C1"},
			{ID: "30", BookID: "3", Title: "Vavaka isan'andro"},
		},
		Titles: []models.Title{
			{ID: "100", ChapterID: "10", Text: "Andriamanitra Ray", Number: models.NewNumber(42)},
			{ID: "101", ChapterID: "10", Text: "Tsy misy votoatiny", Number: models.NewNumber(142)},
			{ID: "200", ChapterID: "20", Text: "Hira fiderana", Number: models.NewNumber(7)},
			{ID: "300", ChapterID: "30", Text: "Vavaka 42", Number: models.NewNumber(42)},
			{ID: "301", ChapterID: "30", Text: "Ray malala", Number: models.NewNumber(42)},
		},
		Fragments: []models.Fragment{
			{TitleID: "100", HTML: "<p>x</p>"},
			{TitleID: "200", HTML: "<p>y</p>"},
			{TitleID: "300", HTML: "<p>z</p>"},
			{TitleID: "301", HTML: "<p>w</p>"},
		},
	}
	idx, err := corpus.NewIndex(c, corpus.DefaultClassification(), nil)
	require.NoError(t, err)
	e, err := NewEngine(idx, nil)
	require.NoError(t, err)
	return e
}

func ids(hits []Hit) []models.ID {
	out := make([]models.ID, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.ID)
	}
	return out
}

func TestSearchEmptyQuery(t *testing.T) {
	e := newEngine(t)
	_, err := e.Search("   ", "")
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestSearchOrderingByCategory(t *testing.T) {
	e := newEngine(t)
	hits, err := e.Search("  FIDERANA ", "")
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, KindChapter, hits[0].Kind)
	assert.Equal(t, models.ID("10"), hits[0].ID)
	assert.Equal(t, "Fihirana", hits[0].Subtitle)
	assert.Equal(t, KindTitle, hits[1].Kind)
	assert.Equal(t, models.ID("200"), hits[1].ID)
	assert.Equal(t, "7 - Hira fiderana", hits[1].Label)
	assert.Equal(t, "H.A.A → C1", hits[1].Subtitle)

	hits, err = e.Search("vavaka", "")
	require.NoError(t, err)
	kinds := []Kind{}
	for _, h := range hits {
		kinds = append(kinds, h.Kind)
	}
	assert.Equal(t, []Kind{KindBook, KindChapter, KindTitle}, kinds)
}

func TestSearchNumberInSpecialBook(t *testing.T) {
	e := newEngine(t)

	hits, err := e.Search("42", "")
	require.NoError(t, err)
	// 100 matches by number (special book, has content); 101 has no content;
	// 300 matches by text; 301 is in a plain book so its number is ignored
	assert.Equal(t, []models.ID{"100", "300"}, ids(hits))

	hits, err = e.Search("42", "2")
	require.NoError(t, err)
	assert.Empty(t, hits)

	hits, err = e.Search("42", "1")
	require.NoError(t, err)
	assert.Equal(t, []models.ID{"100"}, ids(hits))
}

func TestSearchScoping(t *testing.T) {
	e := newEngine(t)
	for _, scope := range []models.ID{"1", "2", "3"} {
		for _, q := range []string{"a", "ray", "fi", "4"} {
			hits, err := e.Search(q, scope)
			require.NoError(t, err)
			for _, h := range hits {
				assert.Equal(t, scope, h.BookID, "query %q scope %s", q, scope)
			}
		}
	}
}

func TestSearchHitIdentity(t *testing.T) {
	e := newEngine(t)
	hits, err := e.Search("andriamanitra", "")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	h := hits[0]
	assert.Equal(t, KindTitle, h.Kind)
	assert.Equal(t, models.ID("1"), h.BookID)
	assert.Equal(t, models.ID("10"), h.ChapterID)
	assert.Equal(t, "42 - Andriamanitra Ray", h.Label)

	hits, err = e.Search("h.a.a", "")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, KindBook, hits[0].Kind)
	assert.Empty(t, hits[0].ChapterID)
}

func TestSearchIsRepeatable(t *testing.T) {
	e := newEngine(t)
	first, err := e.Search("ray", "")
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		again, err := e.Search("ray", "")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
