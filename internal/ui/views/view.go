package views

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/justyntemme/boky-t/internal/nav"
	"github.com/justyntemme/boky-t/pkg/models"
)

// ViewType represents different screens in the application
type ViewType int

const (
	ViewBrowser ViewType = iota
	ViewReader
	ViewMenu
)

// String returns the name of the view
func (v ViewType) String() string {
	switch v {
	case ViewBrowser:
		return "Browser"
	case ViewReader:
		return "Reader"
	case ViewMenu:
		return "Menu"
	default:
		return "Unknown"
	}
}

// View is the interface that all views must implement
type View interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (View, tea.Cmd)
	View() string
	SetSize(width, height int)
}

// InputCapturer is implemented by views that can hold keyboard focus in a
// text field. While InputActive is true the app leaves every key to the view.
type InputCapturer interface {
	InputActive() bool
}

// Message types for inter-view communication. Navigation messages are
// applied to the engine by the app, which then hands the new screen to the
// matching view.

// SelectMsg opens a list item
type SelectMsg struct {
	Item nav.Item
}

// BackMsg replays the previous view
type BackMsg struct{}

// HomeMsg shows the books list
type HomeMsg struct{}

// SearchMsg runs a query; Scoped limits it to the current book
type SearchMsg struct {
	Query  string
	Scoped bool
}

// ClearSearchMsg drops search results
type ClearSearchMsg struct{}

// ToggleMsg switches a special book between chapter and page order
type ToggleMsg struct {
	Book models.ID
}

// StepMsg moves through the reading sequence, Delta is +1 or -1
type StepMsg struct {
	Delta int
}

// ZoomMsg changes the zoom by Delta steps; Reset returns to 100%
type ZoomMsg struct {
	Delta int
	Reset bool
}

// OpenBookMsg jumps to a book from the menu
type OpenBookMsg struct {
	Name string
}

// OpenTitleMsg opens a title directly, e.g. from the recently read list
type OpenTitleMsg struct {
	Title models.ID
}

// AboutMsg shows the about text
type AboutMsg struct{}

// ErrorMsg is sent when an error occurs
type ErrorMsg struct {
	Err error
}

// ThemeChangedMsg is sent after the theme was cycled
type ThemeChangedMsg struct {
	Name string
}

// Helper functions to create messages

// Send wraps msg into a command
func Send(msg tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return msg
	}
}

// NotifyThemeChanged creates a theme change message command
func NotifyThemeChanged(name string) tea.Cmd {
	return Send(ThemeChangedMsg{Name: name})
}
