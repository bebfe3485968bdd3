package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/justyntemme/boky-t/internal/content"
	"github.com/justyntemme/boky-t/internal/nav"
	"github.com/justyntemme/boky-t/internal/ui/styles"
)

const minWrapWidth = 20

// ReaderView displays an assembled title or the about text
type ReaderView struct {
	screen *nav.Screen

	// flattened text of the current screen
	subtext    []string
	paragraphs []string

	vp viewport.Model

	// Dimensions
	width  int
	height int
}

// NewReaderView creates a new reader view
func NewReaderView() *ReaderView {
	return &ReaderView{
		vp:     viewport.New(80, 19),
		width:  80,
		height: 24,
	}
}

// SetScreen shows a content screen. A different title starts at the top,
// a zoom change of the same title keeps the relative position.
func (v *ReaderView) SetScreen(s *nav.Screen) {
	same := v.screen != nil && v.screen.Route == s.Route
	progress := v.vp.ScrollPercent()

	v.screen = s
	v.subtext, v.paragraphs = nil, nil
	if s.Content != nil {
		if s.Content.Subtext != "" {
			v.subtext = content.Paragraphs(s.Content.Subtext)
		}
		v.paragraphs = content.Paragraphs(s.Content.Body)
	}
	v.wrapContent()

	if same {
		v.vp.SetYOffset(int(progress * float64(max(0, v.vp.TotalLineCount()-v.vp.Height))))
	} else {
		v.vp.GotoTop()
	}
}

// Init implements View
func (v *ReaderView) Init() tea.Cmd {
	return nil
}

// Update implements View
func (v *ReaderView) Update(msg tea.Msg) (View, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || v.screen == nil {
		return v, nil
	}

	h := v.screen.Header
	switch keyMsg.String() {
	case "n", "l", "right":
		if h.HasNext {
			return v, Send(StepMsg{Delta: 1})
		}
		return v, nil
	case "p", "h", "left":
		if h.HasPrev {
			return v, Send(StepMsg{Delta: -1})
		}
		return v, nil
	case "+", "=":
		return v, Send(ZoomMsg{Delta: 1})
	case "-", "_":
		return v, Send(ZoomMsg{Delta: -1})
	case "0":
		return v, Send(ZoomMsg{Reset: true})
	case " ":
		v.vp.PageDown()
		return v, nil
	case "g", "home":
		v.vp.GotoTop()
		return v, nil
	case "G", "end":
		v.vp.GotoBottom()
		return v, nil
	}

	// j/k, arrows, ctrl+d/u and the rest
	var cmd tea.Cmd
	v.vp, cmd = v.vp.Update(keyMsg)
	return v, cmd
}

// View implements View
func (v *ReaderView) View() string {
	if v.screen == nil {
		return styles.ErrorStyle.Render("Tsy misy lohateny voafidy")
	}

	var b strings.Builder
	b.WriteString(v.renderHeader() + "\n")

	if v.screen.Empty {
		b.WriteString(lipgloss.Place(
			v.width,
			v.height-3,
			lipgloss.Center,
			lipgloss.Center,
			styles.MutedText.Render("Tsy misy votoatiny ity lohateny ity"),
		))
		b.WriteString("\n" + v.renderFooter())
		return b.String()
	}

	b.WriteString(v.vp.View() + "\n")
	b.WriteString(v.renderFooter())
	return b.String()
}

// SetSize implements View
func (v *ReaderView) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.vp.Width = width
	v.vp.Height = max(1, height-3) // header, footer, margin
	if v.screen != nil {
		v.wrapContent()
	}
}

// wrapWidth maps the zoom level onto the text column: a larger zoom gives
// narrower lines, which reads as bigger text
func (v *ReaderView) wrapWidth() int {
	zoom := content.DefaultZoom
	if v.screen != nil && v.screen.Content != nil && v.screen.Content.Zoom > 0 {
		zoom = v.screen.Content.Zoom
	}
	base := v.width - 4 // Account for padding
	return max(minWrapWidth, min(base, base*content.DefaultZoom/zoom))
}

// wrapContent wraps the paragraphs to the current width and loads them
// into the viewport
func (v *ReaderView) wrapContent() {
	width := v.wrapWidth()
	var b strings.Builder

	if len(v.subtext) > 0 {
		for _, p := range v.subtext {
			b.WriteString(styles.ReaderSubtext.Render(wordwrap.String(p, width)) + "\n")
		}
		b.WriteString(styles.MutedText.Render(strings.Repeat("─", width)) + "\n")
	}

	for _, p := range v.paragraphs {
		if p == "" {
			b.WriteString("\n")
			continue
		}
		b.WriteString(styles.ReaderContent.Render(wordwrap.String(p, width)) + "\n")
	}
	v.vp.SetContent(b.String())
}

// renderHeader renders the reader header with proper truncation
func (v *ReaderView) renderHeader() string {
	h := v.screen.Header

	title := styles.ReaderHeader.Render(styles.TruncateText(h.Title, max(10, v.width/2)))
	left := title
	if h.Subtitle != "" {
		left += styles.Subtitle.Render(styles.TruncateText(h.Subtitle, max(10, v.width/3)))
	}

	arrows := []rune("  ")
	if h.HasPrev {
		arrows[0] = '◂'
	}
	if h.HasNext {
		arrows[1] = '▸'
	}

	page := ""
	if v.screen.Content != nil && v.screen.Content.Page.Valid {
		page = "p. " + v.screen.Content.Page.String() + " "
	}
	right := styles.MutedText.Render(page+string(arrows)+" ") +
		styles.ReaderZoom.Render(fmt.Sprintf("%d%% ", v.zoom())) +
		styles.MutedText.Render(fmt.Sprintf("%3.0f%%", v.vp.ScrollPercent()*100))

	gap := max(0, v.width-lipgloss.Width(left)-lipgloss.Width(right))
	return left + strings.Repeat(" ", gap) + right
}

func (v *ReaderView) zoom() int {
	if v.screen.Content == nil {
		return content.DefaultZoom
	}
	return v.screen.Content.Zoom
}

// renderFooter renders the reader footer with consistent styling
func (v *ReaderView) renderFooter() string {
	help := []string{
		styles.HelpKey.Render("j/k") + styles.Help.Render(" scroll"),
	}
	if v.screen.Route.Kind == nav.ViewContent {
		help = append(help,
			styles.HelpKey.Render("p/n")+styles.Help.Render(" teo aloha/manaraka"),
			styles.HelpKey.Render("+/-/0")+styles.Help.Render(fmt.Sprintf(" %d%%", v.zoom())),
		)
	}
	help = append(help, styles.HelpKey.Render("esc")+styles.Help.Render(" back"))
	return styles.FooterBar.Width(v.width).Render(strings.Join(help, "  "))
}
