package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/justyntemme/boky-t/internal/config"
	"github.com/justyntemme/boky-t/internal/content"
	"github.com/justyntemme/boky-t/internal/nav"
	"github.com/justyntemme/boky-t/internal/ui/styles"
	"github.com/justyntemme/boky-t/internal/ui/views"
	"github.com/justyntemme/boky-t/pkg/models"
)

// App is the main application model. It owns the navigation engine; views
// only send intents, which App applies in its Update loop.
type App struct {
	config *config.Config
	engine *nav.Engine
	log    *zap.Logger
	keys   KeyMap

	// Current view state
	currentView views.ViewType
	prevView    views.ViewType

	// Window dimensions
	width  int
	height int

	// View models
	libraryView *views.LibraryView
	readerView  *views.ReaderView
	menuView    *views.MenuView

	// last title added to the recently read list
	lastRead models.ID

	// Error/status message
	err         error
	statusMsg   string
	showHelp    bool
	confirmExit bool
}

// NewApp creates a new application instance
func NewApp(cfg *config.Config, engine *nav.Engine, books []models.Book, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	styles.SetCurrentTheme(cfg.Reader.Theme)

	return &App{
		config:      cfg,
		engine:      engine,
		log:         log.Named("ui"),
		keys:        DefaultKeyMap(),
		currentView: views.ViewBrowser,
		width:       80,
		height:      24,
		libraryView: views.NewLibraryView(cfg),
		readerView:  views.NewReaderView(),
		menuView:    views.NewMenuView(cfg, books),
	}
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	_, cmd := a.show(a.engine.Screen())
	return tea.Batch(cmd, tea.SetWindowTitle("boky-t"))
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Propagate to all views
		a.libraryView.SetSize(msg.Width, msg.Height-1)
		a.readerView.SetSize(msg.Width, msg.Height-1)
		a.menuView.SetSize(msg.Width, msg.Height-1)
		return a, nil

	case tea.KeyMsg:
		if key.Matches(msg, a.keys.Quit) {
			return a, tea.Quit
		}
		if a.confirmExit {
			a.confirmExit = false
			if key.Matches(msg, a.keys.Confirm) {
				return a, tea.Quit
			}
			return a, nil
		}
		a.statusMsg = ""

		// a focused text field gets every key
		if in, ok := a.getCurrentView().(views.InputCapturer); ok && in.InputActive() {
			return a.delegate(msg)
		}

		switch {
		case key.Matches(msg, a.keys.Help):
			a.showHelp = !a.showHelp
			return a, nil
		case a.showHelp && key.Matches(msg, a.keys.Back):
			a.showHelp = false
			return a, nil
		case key.Matches(msg, a.keys.Back):
			return a.back()
		case key.Matches(msg, a.keys.Home):
			return a.apply(a.engine.Home)
		case key.Matches(msg, a.keys.Menu):
			return a.switchView(views.ViewMenu)
		case key.Matches(msg, a.keys.About):
			return a.apply(a.engine.About)
		}

	case views.BackMsg:
		return a.back()

	case views.HomeMsg:
		return a.apply(a.engine.Home)

	case views.SelectMsg:
		return a.apply(func() (*nav.Screen, error) { return a.engine.Select(msg.Item) })

	case views.SearchMsg:
		return a.apply(func() (*nav.Screen, error) { return a.engine.Search(msg.Query, msg.Scoped) })

	case views.ClearSearchMsg:
		return a.apply(a.engine.ClearSearch)

	case views.ToggleMsg:
		return a.apply(func() (*nav.Screen, error) { return a.engine.Toggle(msg.Book) })

	case views.StepMsg:
		if msg.Delta > 0 {
			return a.apply(a.engine.Next)
		}
		return a.apply(a.engine.Prev)

	case views.ZoomMsg:
		switch {
		case msg.Reset:
			return a.apply(func() (*nav.Screen, error) { return a.engine.SetZoom(content.DefaultZoom) })
		case msg.Delta > 0:
			return a.apply(a.engine.ZoomIn)
		default:
			return a.apply(a.engine.ZoomOut)
		}

	case views.OpenBookMsg:
		return a.apply(func() (*nav.Screen, error) { return a.engine.NavigateToBook(msg.Name) })

	case views.OpenTitleMsg:
		return a.apply(func() (*nav.Screen, error) { return a.engine.SelectTitle(msg.Title) })

	case views.AboutMsg:
		return a.apply(a.engine.About)

	case views.ThemeChangedMsg:
		a.statusMsg = "Theme: " + msg.Name
		return a, nil

	case views.ErrorMsg:
		a.err = msg.Err
		return a, nil
	}

	return a.delegate(msg)
}

// delegate hands msg to the current view
func (a *App) delegate(msg tea.Msg) (*App, tea.Cmd) {
	var cmd tea.Cmd
	switch a.currentView {
	case views.ViewBrowser:
		_, cmd = a.libraryView.Update(msg)
	case views.ViewReader:
		_, cmd = a.readerView.Update(msg)
	case views.ViewMenu:
		_, cmd = a.menuView.Update(msg)
	}
	return a, cmd
}

// back closes the menu, drops search results or replays the previous
// view. At the root it asks before exiting.
func (a *App) back() (*App, tea.Cmd) {
	if a.currentView == views.ViewMenu {
		return a.switchView(a.prevView)
	}
	if s := a.engine.Screen(); s != nil && s.Results {
		return a.apply(a.engine.ClearSearch)
	}
	if a.engine.AtRoot() {
		a.confirmExit = true
		return a, nil
	}
	return a.apply(a.engine.Back)
}

// apply runs a navigation operation and shows its screen. Failed
// operations leave the engine where it was.
func (a *App) apply(op func() (*nav.Screen, error)) (*App, tea.Cmd) {
	s, err := op()
	if err != nil {
		a.log.Warn("Navigation failed", zap.Error(err))
		a.err = err
		return a, nil
	}
	return a.show(s)
}

// show routes a screen to the list or the reader
func (a *App) show(s *nav.Screen) (*App, tea.Cmd) {
	a.err = nil
	if s.Content == nil {
		a.libraryView.SetScreen(s)
		return a.switchView(views.ViewBrowser)
	}

	a.readerView.SetScreen(s)
	if s.Route.Kind == nav.ViewContent && !s.Empty && s.Route.Title != a.lastRead {
		a.lastRead = s.Route.Title
		if err := a.config.AddRecentlyRead(s.Route.Title, s.Header.Title); err != nil {
			a.log.Warn("Unable to store recently read title", zap.Error(err))
		}
	}
	return a.switchView(views.ViewReader)
}

// View implements tea.Model
func (a *App) View() string {
	// Add help overlay if shown
	if a.showHelp {
		return a.renderHelp()
	}
	if a.confirmExit {
		return a.renderExitConfirmation()
	}

	content := a.getCurrentView().View()

	// Add error bar if there's an error
	if a.err != nil {
		content = lipgloss.JoinVertical(lipgloss.Left, content, styles.ErrorStyle.Render("Error: "+a.err.Error()))
	} else if a.statusMsg != "" {
		content = lipgloss.JoinVertical(lipgloss.Left, content, styles.SuccessStyle.Render(a.statusMsg))
	}
	return content
}

// switchView changes the current view and initializes it
func (a *App) switchView(view views.ViewType) (*App, tea.Cmd) {
	if view != a.currentView {
		a.prevView = a.currentView
	}
	a.currentView = view
	return a, a.getCurrentView().Init()
}

// getCurrentView returns the current view model
func (a *App) getCurrentView() views.View {
	switch a.currentView {
	case views.ViewReader:
		return a.readerView
	case views.ViewMenu:
		return a.menuView
	default:
		return a.libraryView
	}
}

// renderExitConfirmation asks before leaving from the books list
func (a *App) renderExitConfirmation() string {
	dialog := styles.Dialog.Width(44).Render(
		styles.DialogTitle.Render("Hivoaka?") + "\n\n" +
			styles.Help.Render("Press ") +
			styles.HelpKey.Render(a.keys.Confirm.Help().Key) +
			styles.Help.Render(" or back again to exit, any other key to stay"),
	)
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, dialog)
}

// renderHelp renders the help overlay
func (a *App) renderHelp() string {
	help := styles.Dialog.Width(60).Render(
		styles.DialogTitle.Render("Keyboard Shortcuts") + "\n\n" +
			styles.HelpKey.Render("Lists") + "\n" +
			"  j/k     Move down/up\n" +
			"  g/G     Top/bottom\n" +
			"  Enter/l Open\n" +
			"  h       Back\n" +
			"  t       Chapters / page order\n" +
			"  /       Search in this book\n" +
			"  F       Search everywhere\n\n" +
			styles.HelpKey.Render("Reader") + "\n" +
			"  n/l     Next title\n" +
			"  p/h     Previous title\n" +
			"  +/-     Zoom in/out\n" +
			"  0       Reset zoom\n\n" +
			styles.HelpKey.Render("General") + "\n" +
			"  Esc/q   Back\n" +
			"  H       Books\n" +
			"  m       Menu\n" +
			"  a       About\n" +
			"  T       Cycle theme\n" +
			"  ?       Toggle help\n" +
			"  Ctrl+c  Quit\n",
	)

	// Center the help dialog
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, help)
}
