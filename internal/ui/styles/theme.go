package styles

import "github.com/charmbracelet/lipgloss"

// Theme represents a color scheme for the application
type Theme struct {
	Name        string
	Description string

	// Core colors
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Background lipgloss.Color
	Foreground lipgloss.Color

	// Semantic colors
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Muted   lipgloss.Color

	// UI element colors
	Border        lipgloss.Color
	Selection     lipgloss.Color
	SelectionText lipgloss.Color
	BadgeText     lipgloss.Color
}

// Built-in themes
var (
	// DefaultTheme is the dark default
	DefaultTheme = Theme{
		Name:          "default",
		Description:   "Dark theme (default)",
		Primary:       lipgloss.Color("#7C3AED"),
		Secondary:     lipgloss.Color("#06B6D4"),
		Background:    lipgloss.Color("#1F2937"),
		Foreground:    lipgloss.Color("#F9FAFB"),
		Success:       lipgloss.Color("#10B981"),
		Warning:       lipgloss.Color("#F59E0B"),
		Error:         lipgloss.Color("#EF4444"),
		Muted:         lipgloss.Color("#6B7280"),
		Border:        lipgloss.Color("#374151"),
		Selection:     lipgloss.Color("#7C3AED"),
		SelectionText: lipgloss.Color("#F9FAFB"),
		BadgeText:     lipgloss.Color("#1F2937"),
	}

	// LightTheme is a light color scheme
	LightTheme = Theme{
		Name:          "light",
		Description:   "Light theme",
		Primary:       lipgloss.Color("#7C3AED"),
		Secondary:     lipgloss.Color("#0891B2"),
		Background:    lipgloss.Color("#FFFFFF"),
		Foreground:    lipgloss.Color("#1F2937"),
		Success:       lipgloss.Color("#059669"),
		Warning:       lipgloss.Color("#D97706"),
		Error:         lipgloss.Color("#DC2626"),
		Muted:         lipgloss.Color("#9CA3AF"),
		Border:        lipgloss.Color("#E5E7EB"),
		Selection:     lipgloss.Color("#7C3AED"),
		SelectionText: lipgloss.Color("#FFFFFF"),
		BadgeText:     lipgloss.Color("#FFFFFF"),
	}

	// SepiaTheme mimics a printed hymnal
	SepiaTheme = Theme{
		Name:          "sepia",
		Description:   "Warm paper tones",
		Primary:       lipgloss.Color("#8B4513"),
		Secondary:     lipgloss.Color("#A0522D"),
		Background:    lipgloss.Color("#F4ECD8"),
		Foreground:    lipgloss.Color("#3B2F2F"),
		Success:       lipgloss.Color("#556B2F"),
		Warning:       lipgloss.Color("#B8860B"),
		Error:         lipgloss.Color("#8B0000"),
		Muted:         lipgloss.Color("#8C7B6B"),
		Border:        lipgloss.Color("#D2B48C"),
		Selection:     lipgloss.Color("#8B4513"),
		SelectionText: lipgloss.Color("#F4ECD8"),
		BadgeText:     lipgloss.Color("#F4ECD8"),
	}

	// AdventTheme uses the violet and gold of the penitential seasons
	AdventTheme = Theme{
		Name:          "advent",
		Description:   "Violet and gold",
		Primary:       lipgloss.Color("#5B2A86"),
		Secondary:     lipgloss.Color("#C9A227"),
		Background:    lipgloss.Color("#1A1025"),
		Foreground:    lipgloss.Color("#EDE6F2"),
		Success:       lipgloss.Color("#C9A227"),
		Warning:       lipgloss.Color("#D4763B"),
		Error:         lipgloss.Color("#C0392B"),
		Muted:         lipgloss.Color("#7D6B8C"),
		Border:        lipgloss.Color("#3A2850"),
		Selection:     lipgloss.Color("#C9A227"),
		SelectionText: lipgloss.Color("#1A1025"),
		BadgeText:     lipgloss.Color("#1A1025"),
	}

	// OrdinaryTheme is liturgical green
	OrdinaryTheme = Theme{
		Name:          "ordinary",
		Description:   "Ordinary time green",
		Primary:       lipgloss.Color("#2E7D4F"),
		Secondary:     lipgloss.Color("#A5D6A7"),
		Background:    lipgloss.Color("#0F1F17"),
		Foreground:    lipgloss.Color("#E8F5E9"),
		Success:       lipgloss.Color("#81C784"),
		Warning:       lipgloss.Color("#E0C068"),
		Error:         lipgloss.Color("#E57373"),
		Muted:         lipgloss.Color("#5F7F6B"),
		Border:        lipgloss.Color("#23402F"),
		Selection:     lipgloss.Color("#2E7D4F"),
		SelectionText: lipgloss.Color("#E8F5E9"),
		BadgeText:     lipgloss.Color("#0F1F17"),
	}

	// BuiltinThemes is a list of all available built-in themes
	BuiltinThemes = []Theme{
		DefaultTheme,
		LightTheme,
		SepiaTheme,
		AdventTheme,
		OrdinaryTheme,
	}

	// currentTheme holds the active theme
	currentTheme = DefaultTheme
)

// GetTheme returns a theme by name, or the default theme if not found
func GetTheme(name string) Theme {
	for _, t := range BuiltinThemes {
		if t.Name == name {
			return t
		}
	}
	return DefaultTheme
}

// GetThemeNames returns a list of all available theme names
func GetThemeNames() []string {
	names := make([]string, len(BuiltinThemes))
	for i, t := range BuiltinThemes {
		names[i] = t.Name
	}
	return names
}

// CurrentTheme returns the currently active theme
func CurrentTheme() Theme {
	return currentTheme
}

// SetCurrentTheme sets the active theme by name
func SetCurrentTheme(name string) {
	currentTheme = GetTheme(name)
	ApplyTheme(currentTheme)
}

// NextTheme cycles to the next theme and returns its name
func NextTheme() string {
	for i, t := range BuiltinThemes {
		if t.Name == currentTheme.Name {
			next := BuiltinThemes[(i+1)%len(BuiltinThemes)]
			SetCurrentTheme(next.Name)
			return next.Name
		}
	}
	return currentTheme.Name
}

// ApplyTheme updates all global styles to use the given theme's colors
func ApplyTheme(theme Theme) {
	Primary = theme.Primary
	Secondary = theme.Secondary
	Success = theme.Success
	Warning = theme.Warning
	Error = theme.Error
	Muted = theme.Muted
	Background = theme.Background
	Foreground = theme.Foreground
	Border = theme.Border

	bar := lipgloss.NewStyle().
		Foreground(theme.Foreground).
		Background(theme.Primary).
		Padding(0, 1).
		Bold(true)
	TitleBar = bar
	ReaderHeader = bar

	Subtitle = lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Padding(0, 1)

	FooterBar = lipgloss.NewStyle().
		Foreground(theme.Muted).
		Padding(0, 1)

	Help = lipgloss.NewStyle().Foreground(theme.Muted)
	HelpKey = lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	MutedText = lipgloss.NewStyle().Foreground(theme.Muted)
	SecondaryText = lipgloss.NewStyle().Foreground(theme.Secondary)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(theme.Error).
		Bold(true).
		Padding(0, 1)

	SuccessStyle = lipgloss.NewStyle().
		Foreground(theme.Success).
		Bold(true).
		Padding(0, 1)

	InputField = lipgloss.NewStyle().
		Foreground(theme.Foreground).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)
	InputFieldFocused = InputField.BorderForeground(theme.Primary)

	ListItem = lipgloss.NewStyle().
		Foreground(theme.Foreground).
		Padding(0, 2)

	ListItemSelected = lipgloss.NewStyle().
		Foreground(theme.SelectionText).
		Background(theme.Selection).
		Padding(0, 2).
		Bold(true)

	ListItemSubtitle = lipgloss.NewStyle().
		Foreground(theme.Muted).
		Italic(true).
		PaddingLeft(6)

	ReaderContent = lipgloss.NewStyle().
		Foreground(theme.Foreground).
		Padding(0, 2)

	ReaderSubtext = lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Italic(true).
		Padding(0, 2)

	ReaderZoom = lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Align(lipgloss.Right)

	Dialog = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Padding(1, 2)

	DialogTitle = lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		MarginBottom(1)

	BadgeNumbered = lipgloss.NewStyle().
		Foreground(theme.BadgeText).
		Background(theme.Success).
		Padding(0, 1).
		Bold(true)

	BadgeSingle = lipgloss.NewStyle().
		Foreground(theme.BadgeText).
		Background(theme.Warning).
		Padding(0, 1).
		Bold(true)
}

// init applies the default theme on package load
func init() {
	ApplyTheme(DefaultTheme)
}
