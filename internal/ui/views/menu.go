package views

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/justyntemme/boky-t/internal/config"
	"github.com/justyntemme/boky-t/internal/ui/styles"
	"github.com/justyntemme/boky-t/pkg/models"
)

type menuEntry struct {
	label   string
	section string
	msg     tea.Msg
}

// MenuView is the side menu: direct book access, recently read titles and
// the about page
type MenuView struct {
	config *config.Config
	books  []models.Book

	entries []menuEntry
	cursor  int

	// Dimensions
	width  int
	height int
}

// NewMenuView creates a new menu view
func NewMenuView(cfg *config.Config, books []models.Book) *MenuView {
	return &MenuView{
		config: cfg,
		books:  books,
		width:  80,
		height: 24,
	}
}

// Init implements View. The entries are rebuilt every time the menu opens
// so the recently read list is current.
func (v *MenuView) Init() tea.Cmd {
	v.entries = v.entries[:0]
	for _, b := range v.books {
		v.entries = append(v.entries, menuEntry{label: b.Name, section: "Boky", msg: OpenBookMsg{Name: b.Name}})
	}
	if v.config != nil {
		for _, r := range v.config.Reader.RecentlyRead {
			v.entries = append(v.entries, menuEntry{
				label:   r.Label,
				section: "Vao novakiana",
				msg:     OpenTitleMsg{Title: models.ID(r.TitleID)},
			})
		}
	}
	v.entries = append(v.entries,
		menuEntry{label: "Boky rehetra", section: "", msg: HomeMsg{}},
		menuEntry{label: "About", section: "", msg: AboutMsg{}},
	)
	v.cursor = min(v.cursor, len(v.entries)-1)
	return nil
}

// Update implements View
func (v *MenuView) Update(msg tea.Msg) (View, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}
	switch keyMsg.String() {
	case "j", "down":
		if v.cursor < len(v.entries)-1 {
			v.cursor++
		}
	case "k", "up":
		if v.cursor > 0 {
			v.cursor--
		}
	case "g", "home":
		v.cursor = 0
	case "G", "end":
		v.cursor = max(0, len(v.entries)-1)
	case "enter":
		if v.cursor < len(v.entries) {
			return v, Send(v.entries[v.cursor].msg)
		}
	}
	return v, nil
}

// View implements View
func (v *MenuView) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleBar.Render(" Menu ") + "\n\n")

	section := "-"
	for i, e := range v.entries {
		if e.section != section {
			if e.section != "" {
				b.WriteString(styles.SecondaryText.Render(e.section) + "\n")
			} else {
				b.WriteString("\n")
			}
			section = e.section
		}
		line := styles.TruncateText(e.label, v.width-6)
		if i == v.cursor {
			b.WriteString(styles.ListItemSelected.Render("▸ "+line) + "\n")
		} else {
			b.WriteString(styles.ListItem.Render("  "+line) + "\n")
		}
	}

	// Footer
	b.WriteString("\n")
	help := []string{
		styles.HelpKey.Render("j/k") + styles.Help.Render(" nav"),
		styles.HelpKey.Render("enter") + styles.Help.Render(" open"),
		styles.HelpKey.Render("esc") + styles.Help.Render(" close"),
	}
	b.WriteString(strings.Join(help, "  "))
	return b.String()
}

// SetSize implements View
func (v *MenuView) SetSize(width, height int) {
	v.width = width
	v.height = height
}
