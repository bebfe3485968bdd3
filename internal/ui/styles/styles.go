package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

var (
	// Colors
	Primary    = lipgloss.Color("#7C3AED") // Purple
	Secondary  = lipgloss.Color("#06B6D4") // Cyan
	Success    = lipgloss.Color("#10B981") // Green
	Warning    = lipgloss.Color("#F59E0B") // Amber
	Error      = lipgloss.Color("#EF4444") // Red
	Muted      = lipgloss.Color("#6B7280") // Gray
	Background = lipgloss.Color("#1F2937") // Dark gray
	Foreground = lipgloss.Color("#F9FAFB") // Light gray
	Border     = lipgloss.Color("#374151") // Gray border

	// Title bar
	TitleBar lipgloss.Style

	// Subtitle next to the title bar
	Subtitle lipgloss.Style

	// Footer bar at bottom
	FooterBar lipgloss.Style

	// Help text
	Help    lipgloss.Style
	HelpKey lipgloss.Style

	MutedText     lipgloss.Style
	SecondaryText lipgloss.Style

	// Error message
	ErrorStyle   lipgloss.Style
	SuccessStyle lipgloss.Style

	// Input field
	InputField        lipgloss.Style
	InputFieldFocused lipgloss.Style

	// List styles
	ListItem         lipgloss.Style
	ListItemSelected lipgloss.Style
	ListItemSubtitle lipgloss.Style

	// Reader styles
	ReaderContent lipgloss.Style
	ReaderHeader  lipgloss.Style
	ReaderSubtext lipgloss.Style
	ReaderZoom    lipgloss.Style

	// Dialog/Modal styles
	Dialog      lipgloss.Style
	DialogTitle lipgloss.Style

	// Badges for numbered and single-chapter books
	BadgeNumbered lipgloss.Style
	BadgeSingle   lipgloss.Style
)

// TruncateText shortens s to at most width cells, ending with an ellipsis
func TruncateText(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	return truncate.StringWithTail(s, uint(width), "…")
}
