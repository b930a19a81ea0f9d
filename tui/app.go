package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gyokusei/nga-cli/app"
	"github.com/gyokusei/nga-cli/domain"
	"github.com/gyokusei/nga-cli/tui/browse"
	"github.com/gyokusei/nga-cli/tui/common"
)

// Deps holds all dependencies the TUI needs. Plain struct, not a DI container.
type Deps struct {
	Forum          app.ForumService
	Identity       *domain.UserIdentity // Verified user, nil when anonymous.
	Favorites      []browse.Favorite
	ShowSignatures bool
}

// App is the root Bubble Tea model. It owns the browse session and the
// global quit handling.
type App struct {
	deps   Deps
	browse browse.Model
	keys   common.KeyMap
}

// NewApp creates the root model with all dependencies wired.
func NewApp(deps Deps) App {
	return App{
		deps:   deps,
		browse: browse.New(deps.Forum, deps.Favorites, deps.ShowSignatures),
		keys:   common.DefaultKeyMap(),
	}
}

// Init delegates to the browse session.
func (a App) Init() tea.Cmd {
	return a.browse.Init()
}

// Update handles global keys and routes everything else to the browse model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(msg, a.keys.ForceQuit) {
			return a, tea.Quit
		}
		// The plain quit key only applies at the menu; deeper views use it
		// for nothing, and esc walks back one level at a time.
		if key.Matches(msg, a.keys.Quit) && a.browse.AtMenu() {
			return a, tea.Quit
		}
	}

	updated, cmd := a.browse.Update(msg)
	a.browse = updated
	return a, cmd
}

// View renders the welcome line and the browse session.
func (a App) View() string {
	banner := common.HintStyle.Render("  browsing anonymously")
	if a.deps.Identity != nil {
		banner = common.HintStyle.Render(
			fmt.Sprintf("  logged in as %s (uid %d)", a.deps.Identity.Username, a.deps.Identity.UID))
	}
	return a.browse.View() + "\n" + banner
}
