package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/justyntemme/boky-t/internal/config"
	"github.com/justyntemme/boky-t/internal/nav"
	"github.com/justyntemme/boky-t/internal/ui/styles"
)

// LibraryView displays every list screen: books, chapters, titles, page
// order and search results
type LibraryView struct {
	config *config.Config

	screen *nav.Screen
	cursor int
	offset int // For scrolling

	// cursor per route, restored when a list is shown again
	cursors map[nav.Route]int

	// Search
	searchMode  bool
	scoped      bool
	searchInput textinput.Model

	// Dimensions
	width  int
	height int
}

// NewLibraryView creates a new list view
func NewLibraryView(cfg *config.Config) *LibraryView {
	searchInput := textinput.New()
	searchInput.Placeholder = "Hitady..."
	searchInput.CharLimit = 100
	searchInput.Width = 40

	return &LibraryView{
		config:      cfg,
		cursors:     make(map[nav.Route]int),
		searchInput: searchInput,
		width:       80,
		height:      24,
	}
}

// SetScreen shows s. Returning to a list restores its cursor; search
// results always start at the top.
func (v *LibraryView) SetScreen(s *nav.Screen) {
	if v.screen != nil && !v.screen.Results {
		v.cursors[v.screen.Route] = v.cursor
	}
	v.screen = s
	v.cursor = 0
	v.offset = 0
	if !s.Results {
		v.cursor = min(v.cursors[s.Route], max(0, len(s.Items)-1))
		if !v.searchMode {
			v.searchInput.SetValue("")
		}
	}
	v.updateOffset()
}

// InputActive implements InputCapturer
func (v *LibraryView) InputActive() bool {
	return v.searchMode
}

// Init implements View
func (v *LibraryView) Init() tea.Cmd {
	return nil
}

// Update implements View
func (v *LibraryView) Update(msg tea.Msg) (View, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || v.screen == nil {
		return v, nil
	}

	// Handle search mode
	if v.searchMode {
		switch keyMsg.String() {
		case "esc":
			v.searchMode = false
			v.searchInput.Blur()
			v.searchInput.SetValue("")
			return v, Send(ClearSearchMsg{})
		case "enter":
			// keep results, give the keys back to the list
			v.searchMode = false
			v.searchInput.Blur()
			return v, nil
		case "up", "down":
			v.moveCursor(map[string]int{"up": -1, "down": 1}[keyMsg.String()])
			return v, nil
		default:
			before := v.searchInput.Value()
			var cmd tea.Cmd
			v.searchInput, cmd = v.searchInput.Update(keyMsg)
			if v.searchInput.Value() == before {
				return v, cmd
			}
			return v, tea.Batch(cmd, Send(SearchMsg{Query: v.searchInput.Value(), Scoped: v.scoped}))
		}
	}

	// Normal mode key handling
	switch keyMsg.String() {
	case "j", "down":
		v.moveCursor(1)
	case "k", "up":
		v.moveCursor(-1)
	case "g", "home":
		v.cursor = 0
		v.offset = 0
	case "G", "end":
		v.cursor = max(0, len(v.screen.Items)-1)
		v.updateOffset()
	case "ctrl+d", "pgdown":
		v.moveCursor(v.visibleLines() / 2)
	case "ctrl+u", "pgup":
		v.moveCursor(-v.visibleLines() / 2)
	case "/":
		return v, v.startSearch(true)
	case "F":
		return v, v.startSearch(false)
	case "h", "left":
		return v, Send(BackMsg{})
	case "enter", "right", "l":
		if v.cursor < len(v.screen.Items) {
			return v, Send(SelectMsg{Item: v.screen.Items[v.cursor]})
		}
	case "t":
		if v.screen.Toggle != nil {
			return v, Send(ToggleMsg{Book: v.screen.Route.Book})
		}
	case "T":
		// Cycle through themes
		newTheme := styles.NextTheme()
		if v.config != nil {
			if err := v.config.SetTheme(newTheme); err != nil {
				return v, Send(ErrorMsg{Err: err})
			}
		}
		return v, NotifyThemeChanged(newTheme)
	}
	return v, nil
}

func (v *LibraryView) startSearch(scoped bool) tea.Cmd {
	v.searchMode = true
	v.scoped = scoped
	v.searchInput.Placeholder = "Hitady..."
	if scoped && v.screen.ScopeLabel != "" {
		v.searchInput.Placeholder = "Hitady @" + v.screen.ScopeLabel + "..."
	}
	v.searchInput.SetValue("")
	v.searchInput.Focus()
	return textinput.Blink
}

// View implements View
func (v *LibraryView) View() string {
	if v.screen == nil {
		return styles.MutedText.Render("Loading...")
	}
	var b strings.Builder

	b.WriteString(v.renderHeader() + "\n")

	// Search bar (if active)
	if v.searchMode {
		b.WriteString(styles.InputFieldFocused.Render(v.searchInput.View()) + "\n")
	}

	// Empty state
	if len(v.screen.Items) == 0 {
		text := "Tsy misy"
		if v.screen.Results {
			text = fmt.Sprintf("Tsy nahitana %q", v.screen.Query)
		}
		b.WriteString(lipgloss.Place(
			v.width,
			v.height-4,
			lipgloss.Center,
			lipgloss.Center,
			styles.MutedText.Render(text),
		))
		return b.String()
	}

	for i := v.offset; i < min(v.offset+v.visibleLines(), len(v.screen.Items)); i++ {
		b.WriteString(v.renderItem(v.screen.Items[i], i == v.cursor) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(v.renderFooter())
	return b.String()
}

// SetSize implements View
func (v *LibraryView) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.searchInput.Width = min(40, width-10)
	v.updateOffset()
}

// renderHeader renders the header bar
func (v *LibraryView) renderHeader() string {
	h := v.screen.Header
	left := styles.TitleBar.Render(styles.TruncateText(h.Title, max(10, v.width/2)))
	if h.Subtitle != "" {
		left += styles.Subtitle.Render(h.Subtitle)
	}
	if v.screen.Results {
		scope := "rehetra"
		if v.scoped && v.screen.ScopeLabel != "" {
			scope = v.screen.ScopeLabel
		}
		left += styles.SecondaryText.Render(fmt.Sprintf(" [%s: %s]", scope, v.screen.Query))
	}

	right := styles.Help.Render(fmt.Sprintf(" %d/%d ", min(v.cursor+1, len(v.screen.Items)), len(v.screen.Items)))

	gap := max(0, v.width-lipgloss.Width(left)-lipgloss.Width(right))
	return left + strings.Repeat(" ", gap) + right
}

// renderItem renders a single list line
func (v *LibraryView) renderItem(it nav.Item, selected bool) string {
	badge := ""
	switch {
	case it.Class.Numbered():
		badge = styles.BadgeNumbered.Render("#") + " "
	case it.Class.SingleChapter():
		badge = styles.BadgeSingle.Render("1") + " "
	}

	maxWidth := v.width - 6 - lipgloss.Width(badge)
	line := styles.TruncateText(it.Label, maxWidth)

	var out string
	if selected {
		out = styles.ListItemSelected.Width(v.width).Render("▸ " + badge + line)
	} else {
		out = styles.ListItem.Render("  " + badge + line)
	}
	if it.Subtitle != "" {
		out += "\n" + styles.ListItemSubtitle.Render(styles.TruncateText(it.Subtitle, maxWidth))
	}
	return out
}

// renderFooter renders the footer help
func (v *LibraryView) renderFooter() string {
	help := []string{
		styles.HelpKey.Render("j/k") + styles.Help.Render(" nav"),
		styles.HelpKey.Render("enter") + styles.Help.Render(" open"),
	}
	if v.screen.ScopeLabel != "" {
		help = append(help,
			styles.HelpKey.Render("/")+styles.Help.Render(" hitady @"+styles.TruncateText(v.screen.ScopeLabel, 12)),
			styles.HelpKey.Render("F")+styles.Help.Render(" hitady rehetra"))
	} else {
		help = append(help, styles.HelpKey.Render("/")+styles.Help.Render(" hitady"))
	}
	if v.screen.Toggle != nil {
		mode := "pejy"
		if v.screen.Toggle.Kind != nav.ViewPages {
			mode = "toko"
		}
		help = append(help, styles.HelpKey.Render("t")+styles.Help.Render(" "+mode))
	}
	help = append(help,
		styles.HelpKey.Render("m")+styles.Help.Render(" menu"),
		styles.HelpKey.Render("esc")+styles.Help.Render(" back"),
	)

	// Add theme indicator
	themeIndicator := styles.MutedText.Render(" [Theme: "+styles.CurrentTheme().Name+"] ") +
		styles.HelpKey.Render("T") + styles.Help.Render(" change")

	helpText := strings.Join(help, "  ")
	gap := max(0, v.width-lipgloss.Width(helpText)-lipgloss.Width(themeIndicator))
	return helpText + strings.Repeat(" ", gap) + themeIndicator
}

// moveCursor moves the cursor by delta
func (v *LibraryView) moveCursor(delta int) {
	v.cursor = max(0, min(v.cursor+delta, len(v.screen.Items)-1))
	v.updateOffset()
}

// updateOffset ensures the cursor is visible
func (v *LibraryView) updateOffset() {
	visibleLines := v.visibleLines()
	if v.cursor < v.offset {
		v.offset = v.cursor
	}
	if v.cursor >= v.offset+visibleLines {
		v.offset = v.cursor - visibleLines + 1
	}
}

// visibleLines returns the number of visible list entries
func (v *LibraryView) visibleLines() int {
	// Account for header, footer, and margins
	lines := v.height - 5
	if v.searchMode {
		lines -= 3
	}
	if v.screen != nil && v.screen.Results {
		// results take two lines each
		lines /= 2
	}
	return max(1, lines)
}
