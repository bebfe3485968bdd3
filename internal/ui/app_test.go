package ui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justyntemme/boky-t/internal/config"
	"github.com/justyntemme/boky-t/internal/corpus"
	"github.com/justyntemme/boky-t/internal/nav"
	"github.com/justyntemme/boky-t/internal/ui/views"
	"github.com/justyntemme/boky-t/pkg/models"
)

func prayers() models.Corpus {
	return models.Corpus{
		Books: []models.Book{
			{ID: "1", Name: "Vavaka"},
			{ID: "2", Name: "Salamo"},
		},
		Chapters: []models.Chapter{
			{ID: "10", BookID: "1", Title: "Maraina"},
			{ID: "11", BookID: "1", Title: "Hariva"},
			{ID: "20", BookID: "2", Title: "Salamo"},
		},
		Titles: []models.Title{
			{ID: "100", ChapterID: "10", Text: "Vavaka maraina"},
			{ID: "110", ChapterID: "11", Text: "Vavaka hariva"},
			{ID: "200", ChapterID: "20", Text: "Sambatra", Number: models.NewNumber(1)},
		},
		Fragments: []models.Fragment{
			{TitleID: "100", HTML: "<p>Ry Raiko</p>"},
			{TitleID: "110", HTML: "<p>Misaotra</p>"},
			{TitleID: "200", HTML: "<p>Sambatra ny olona</p>"},
		},
	}
}

func newTestApp(t *testing.T) (*App, *nav.Engine, *config.Config) {
	t.Helper()

	cfg, err := config.Load(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)

	idx, err := corpus.NewIndex(prayers(), cfg.Classification(), nil)
	require.NoError(t, err)
	engine, err := nav.NewEngine(idx, nav.Options{Store: cfg, About: "<p>about</p>"})
	require.NoError(t, err)

	a := NewApp(cfg, engine, idx.Books(), nil)
	a.Init()
	a.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return a, engine, cfg
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

// drain feeds every message produced by cmd back into the app and reports
// whether the program was asked to quit
func drain(a *App, cmd tea.Cmd) bool {
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0 && steps < 100; steps++ {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil:
		case tea.QuitMsg:
			return true
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			_, next := a.Update(msg)
			queue = append(queue, next)
		}
	}
	return false
}

func press(a *App, keys ...string) bool {
	for _, k := range keys {
		_, cmd := a.Update(keyMsg(k))
		if drain(a, cmd) {
			return true
		}
	}
	return false
}

func TestAppDrillDownAndBack(t *testing.T) {
	a, engine, cfg := newTestApp(t)
	assert.Equal(t, views.ViewBrowser, a.currentView)
	assert.Equal(t, nav.ViewBooks, engine.Current().Kind)

	// Vavaka -> chapters -> Maraina -> titles -> content
	press(a, "enter")
	assert.Equal(t, nav.ViewChapters, engine.Current().Kind)
	press(a, "enter")
	assert.Equal(t, nav.ViewTitles, engine.Current().Kind)
	press(a, "enter")
	assert.Equal(t, nav.ViewContent, engine.Current().Kind)
	assert.Equal(t, views.ViewReader, a.currentView)
	assert.Contains(t, a.View(), "Ry Raiko")

	require.Len(t, cfg.Reader.RecentlyRead, 1)
	assert.Equal(t, "100", cfg.Reader.RecentlyRead[0].TitleID)

	// next follows the book sequence into the other chapter
	press(a, "n")
	assert.Equal(t, models.ID("110"), engine.Current().Title)
	assert.Contains(t, a.View(), "Misaotra")
	assert.Len(t, cfg.Reader.RecentlyRead, 2)

	// prev/next replace the view, back returns to the titles list
	press(a, "esc")
	assert.Equal(t, nav.ViewTitles, engine.Current().Kind)
	assert.Equal(t, views.ViewBrowser, a.currentView)

	press(a, "H")
	assert.True(t, engine.AtRoot())
}

func TestAppExitConfirmation(t *testing.T) {
	a, engine, _ := newTestApp(t)

	assert.False(t, press(a, "esc"))
	assert.True(t, a.confirmExit)
	assert.Contains(t, a.View(), "Hivoaka?")

	// any other key stays
	assert.False(t, press(a, "n"))
	assert.False(t, a.confirmExit)
	assert.False(t, press(a, "esc"))
	assert.False(t, press(a, "j"))
	assert.False(t, a.confirmExit)
	assert.True(t, engine.AtRoot())

	// back twice leaves
	assert.False(t, press(a, "q"))
	assert.True(t, press(a, "q"))
}

func TestAppBackFromContentNeverAsks(t *testing.T) {
	a, engine, _ := newTestApp(t)

	press(a, "j", "enter") // Salamo skips its lone chapter
	assert.Equal(t, nav.ViewTitles, engine.Current().Kind)
	press(a, "enter")
	assert.Equal(t, nav.ViewContent, engine.Current().Kind)

	press(a, "esc", "esc")
	assert.True(t, engine.AtRoot())
	assert.False(t, a.confirmExit)
}

func TestAppZoomIsStored(t *testing.T) {
	a, engine, cfg := newTestApp(t)

	press(a, "enter", "enter", "enter")
	require.Equal(t, nav.ViewContent, engine.Current().Kind)

	press(a, "+", "+")
	assert.Equal(t, 120, engine.Zoom())
	assert.Equal(t, 120, cfg.Reader.Zoom)
	assert.FileExists(t, cfg.Path())
	assert.Contains(t, a.View(), "120%")

	press(a, "0")
	assert.Equal(t, 100, engine.Zoom())
}

func TestAppSearchAndClear(t *testing.T) {
	a, engine, _ := newTestApp(t)

	drain(a, func() tea.Msg { return views.SearchMsg{Query: "VAVAKA"} })
	s := engine.Screen()
	require.True(t, s.Results)
	assert.Equal(t, "vavaka", s.Query)
	assert.NotEmpty(t, s.Items)

	// back drops the results before it arms the exit dialog
	press(a, "esc")
	assert.False(t, engine.Screen().Results)
	assert.False(t, a.confirmExit)
	assert.True(t, engine.AtRoot())
}

func TestAppMenu(t *testing.T) {
	a, engine, _ := newTestApp(t)

	press(a, "m")
	assert.Equal(t, views.ViewMenu, a.currentView)
	assert.Contains(t, a.View(), "Salamo")

	// second book, opened directly
	press(a, "j", "enter")
	assert.Equal(t, views.ViewBrowser, a.currentView)
	assert.Equal(t, nav.ViewTitles, engine.Current().Kind)
	assert.Equal(t, []nav.Route{nav.Root()}, engine.History())

	press(a, "m", "esc")
	assert.Equal(t, views.ViewBrowser, a.currentView)
}

func TestAppNavigationErrorIsShown(t *testing.T) {
	a, engine, _ := newTestApp(t)

	drain(a, func() tea.Msg { return views.OpenBookMsg{Name: "Tsy misy"} })
	require.Error(t, a.err)
	assert.True(t, engine.AtRoot())
	assert.Contains(t, a.View(), "Error:")
}

func TestAppAboutTwiceNeedsOneBack(t *testing.T) {
	a, engine, _ := newTestApp(t)

	press(a, "a", "a")
	assert.Equal(t, nav.ViewAbout, engine.Current().Kind)
	assert.Equal(t, []nav.Route{nav.Root()}, engine.History())

	press(a, "esc")
	assert.True(t, engine.AtRoot())
	assert.False(t, a.confirmExit)
}
