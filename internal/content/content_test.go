package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justyntemme/boky-t/internal/corpus"
	"github.com/justyntemme/boky-t/pkg/models"
)

const verse = `<p style="font-size: 12pt; color: red">Andriamanitra</p><span style="FONT-SIZE:10.5 pt">fo</span><em style="font-size: 1.2em">x</em>`

func testIndex(t *testing.T) *corpus.Index {
	t.Helper()
	c := models.Corpus{
		Books: []models.Book{
			{ID: "1", Name: "Fihirana"},
			{ID: "2", Name: "Vavaka"},
		},
		Chapters: []models.Chapter{
			{ID: "10", BookID: "1", Title: "Fiderana"},
			{ID: "20", BookID: "2", Title: "Maraina"},
		},
		Titles: []models.Title{
			{ID: "100", ChapterID: "10", Text: "Hira 1", Number: models.NewNumber(1)},
			{ID: "101", ChapterID: "10", Text: "Hira 2", Number: models.NewNumber(2)},
			{ID: "200", ChapterID: "20", Text: "Vavaka"},
			{ID: "201", ChapterID: "20", Text: "Tsy misy"},
		},
		Fragments: []models.Fragment{
			{TitleID: "100", HTML: verse, Subtext: "Feon-kira 12"},
			{TitleID: "100", HTML: "<p>Amen</p>", PageNumber: models.NewNumber(12)},
			{TitleID: "101", HTML: "<p>Hira faharoa</p>"},
			{TitleID: "200", HTML: `<p style="font-size:14pt">Ray</p>`, Subtext: "ignored outside special books"},
		},
	}
	idx, err := corpus.NewIndex(c, corpus.DefaultClassification(), nil)
	require.NoError(t, err)
	return idx
}

func TestApplyZoom(t *testing.T) {
	assert.Equal(t, verse, ApplyZoom(verse, 100))

	got := ApplyZoom(verse, 150)
	assert.Contains(t, got, `font-size:18pt; color: red`)
	assert.Contains(t, got, `font-size:15.75pt`)
	assert.Contains(t, got, `font-size: 1.2em`, "non point units are untouched")

	got = ApplyZoom(`<p style="font-size:10pt">a</p>`, 80)
	assert.Equal(t, `<p style="font-size:8pt">a</p>`, got)
}

func TestClampZoom(t *testing.T) {
	assert.Equal(t, MinZoom, ClampZoom(10))
	assert.Equal(t, MaxZoom, ClampZoom(400))
	assert.Equal(t, 110, ClampZoom(110))
}

func TestAssembleConcatenatesRun(t *testing.T) {
	a := NewAssembler(testIndex(t), nil)

	r, err := a.Assemble("100", 100)
	require.NoError(t, err)
	assert.Equal(t, verse+"<p>Amen</p>", r.Body, "zoom 100 reproduces stored html")
	assert.Equal(t, "Feon-kira 12", r.Subtext)
	assert.True(t, strings.HasPrefix(r.HTML(), `<div class="subtext">Feon-kira 12</div>`))

	r, err = a.Assemble("101", 100)
	require.NoError(t, err)
	assert.Equal(t, "<p>Hira faharoa</p>", r.Body)
	assert.Equal(t, r.Body, r.HTML())
}

func TestAssembleZoomDoesNotCompound(t *testing.T) {
	a := NewAssembler(testIndex(t), nil)

	first, err := a.Assemble("200", 150)
	require.NoError(t, err)
	assert.Equal(t, `<p style="font-size:21pt">Ray</p>`, first.Body)

	again, err := a.Assemble("200", 150)
	require.NoError(t, err)
	assert.Equal(t, first.Body, again.Body)

	back, err := a.Assemble("200", 100)
	require.NoError(t, err)
	assert.Equal(t, `<p style="font-size:14pt">Ray</p>`, back.Body)
	assert.Empty(t, back.Subtext, "subtext is only shown for special books")
}

func TestAssembleStructureInvariantUnderZoom(t *testing.T) {
	a := NewAssembler(testIndex(t), nil)
	for _, z := range []int{MinZoom, 90, 100, 120, MaxZoom} {
		r, err := a.Assemble("100", z)
		require.NoError(t, err)
		assert.Equal(t, Paragraphs(verse+"<p>Amen</p>"), Paragraphs(r.Body), "zoom %d", z)
	}
}

func TestAssemblePageNumber(t *testing.T) {
	a := NewAssembler(testIndex(t), nil)

	r, err := a.Assemble("100", 100)
	require.NoError(t, err)
	assert.Equal(t, "12", r.Page.String())

	r, err = a.Assemble("101", 100)
	require.NoError(t, err)
	assert.False(t, r.Page.Valid)
}

func TestAssembleNotFound(t *testing.T) {
	a := NewAssembler(testIndex(t), nil)
	_, err := a.Assemble("201", 100)
	assert.ErrorIs(t, err, corpus.ErrNotFound)
	_, err = a.Assemble("missing", 100)
	assert.ErrorIs(t, err, corpus.ErrNotFound)
}

func TestParagraphs(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"paragraphs", `<p>Ray <b>masina</b></p><p>Amen</p>`, []string{"Ray masina", "Amen"}},
		{"line breaks", "<p>andalana 1<br>andalana 2</p>", []string{"andalana 1", "andalana 2"}},
		{"blank line", "<p>a<br><br>b</p>", []string{"a", "", "b"}},
		{"styles skipped", "<style>p{}</style><div>  x \n y </div>", []string{"x y"}},
		{"plain", "tsotra", []string{"tsotra"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Paragraphs(tt.in))
		})
	}
}
