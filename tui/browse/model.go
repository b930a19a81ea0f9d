package browse

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gyokusei/nga-cli/app"
	"github.com/gyokusei/nga-cli/domain"
	"github.com/gyokusei/nga-cli/tui/common"
)

// Favorite is one entry of the start menu.
type Favorite struct {
	Name string
	FID  int
}

// --- Messages ---

// TopicsLoadedMsg is sent when a topic listing page arrives.
type TopicsLoadedMsg struct {
	FID    int
	Page   int
	Topics []domain.Topic
}

// TopicsErrorMsg is sent when a topic listing fetch fails.
type TopicsErrorMsg struct {
	FID  int
	Page int
	Err  error
}

// DetailLoadedMsg is sent when a topic detail page arrives.
type DetailLoadedMsg struct {
	TID    int64
	Page   int
	Detail domain.TopicDetail
}

// DetailErrorMsg is sent when a topic detail fetch fails.
type DetailErrorMsg struct {
	TID  int64
	Page int
	Err  error
}

type view int

const (
	menuView view = iota
	topicsView
	detailView
)

// Model drives the browse session: favorites menu, topic listing and topic
// detail. One request is in flight at a time.
type Model struct {
	forum app.ForumService

	view    view
	keys    common.KeyMap
	spinner spinner.Model
	width   int
	height  int

	favorites  []Favorite
	menuCursor int

	// Topic listing state.
	fid       int
	boardName string
	listPage  int
	topics    []domain.Topic
	cursor    int

	// Topic detail state. totalPages is computed from the first fetched
	// page and held fixed; later pages repeat unreliable totals.
	tid         int64
	detailPage  int
	totalPages  int
	detail      domain.TopicDetail
	scroll      int
	showSigs    bool

	loading bool
	err     error
	note    string // Transient one-line notice, e.g. "already at first page".
}

// New creates a browse model over the favorites menu.
func New(forum app.ForumService, favorites []Favorite, showSignatures bool) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#F5A97F"))

	return Model{
		forum:     forum,
		view:      menuView,
		keys:      common.DefaultKeyMap(),
		spinner:   s,
		favorites: favorites,
		showSigs:  showSignatures,
	}
}

// Init starts the spinner.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// AtMenu reports whether the session is at the start menu, where the plain
// quit key is allowed to end the program.
func (m Model) AtMenu() bool { return m.view == menuView }

// Update handles messages for the browse session.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case TopicsLoadedMsg:
		return m.onTopicsLoaded(msg)

	case TopicsErrorMsg:
		if msg.FID != m.fid {
			return m, nil
		}
		m.loading = false
		m.err = msg.Err
		return m, nil

	case DetailLoadedMsg:
		return m.onDetailLoaded(msg)

	case DetailErrorMsg:
		if msg.TID != m.tid {
			return m, nil
		}
		m.loading = false
		m.err = msg.Err
		return m, nil

	case tea.KeyMsg:
		return m.onKey(msg)
	}

	return m, nil
}

func (m Model) onKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	m.note = ""

	switch m.view {
	case menuView:
		return m.menuKey(msg)
	case topicsView:
		return m.topicsKey(msg)
	case detailView:
		return m.detailKey(msg)
	}
	return m, nil
}

func (m Model) menuKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.menuCursor > 0 {
			m.menuCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.menuCursor < len(m.favorites)-1 {
			m.menuCursor++
		}
	case key.Matches(msg, m.keys.Open):
		if len(m.favorites) == 0 {
			break
		}
		fav := m.favorites[m.menuCursor]
		m.fid = fav.FID
		m.boardName = fav.Name
		m.listPage = 1
		m.topics = nil
		m.cursor = 0
		m.err = nil
		m.loading = true
		m.view = topicsView
		return m, m.fetchTopics(m.fid, 1)
	}
	return m, nil
}

func (m Model) topicsKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.loading {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Back):
		m.view = menuView
		m.err = nil
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.topics)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		m.err = nil
		return m, m.fetchTopics(m.fid, m.listPage)
	case key.Matches(msg, m.keys.NextPage):
		m.loading = true
		m.err = nil
		return m, m.fetchTopics(m.fid, m.listPage+1)
	case key.Matches(msg, m.keys.PrevPage):
		if m.listPage <= 1 {
			m.note = "already at the first page"
			return m, nil
		}
		m.loading = true
		m.err = nil
		return m, m.fetchTopics(m.fid, m.listPage-1)
	case key.Matches(msg, m.keys.Open):
		if m.err != nil || len(m.topics) == 0 {
			break
		}
		topic := m.topics[m.cursor]
		m.tid = topic.ID
		m.detailPage = 1
		m.totalPages = 0
		m.detail = domain.TopicDetail{}
		m.scroll = 0
		m.err = nil
		m.loading = true
		m.view = detailView
		return m, m.fetchDetail(m.tid, 1)
	}
	return m, nil
}

func (m Model) detailKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.loading {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Back):
		m.view = topicsView
		m.err = nil
	case key.Matches(msg, m.keys.Up):
		if m.scroll > 0 {
			m.scroll--
		}
	case key.Matches(msg, m.keys.Down):
		if m.scroll < m.maxScroll() {
			m.scroll++
		}
	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		m.err = nil
		return m, m.fetchDetail(m.tid, m.detailPage)
	case key.Matches(msg, m.keys.Signatures):
		m.showSigs = !m.showSigs
	case key.Matches(msg, m.keys.NextPage):
		if m.totalPages > 0 && m.detailPage >= m.totalPages {
			m.note = fmt.Sprintf("already at the last page (%d)", m.totalPages)
			return m, nil
		}
		m.loading = true
		m.err = nil
		return m, m.fetchDetail(m.tid, m.detailPage+1)
	case key.Matches(msg, m.keys.PrevPage):
		if m.detailPage <= 1 {
			m.note = "already at the first page"
			return m, nil
		}
		m.loading = true
		m.err = nil
		return m, m.fetchDetail(m.tid, m.detailPage-1)
	}
	return m, nil
}

func (m Model) onTopicsLoaded(msg TopicsLoadedMsg) (Model, tea.Cmd) {
	if m.view != topicsView || msg.FID != m.fid {
		return m, nil
	}
	m.loading = false
	m.err = nil

	// Stepping past the end returns an empty page; stay where we were.
	if len(msg.Topics) == 0 && msg.Page > 1 {
		m.note = "no more topics"
		return m, nil
	}

	m.listPage = msg.Page
	m.topics = msg.Topics
	m.cursor = 0
	return m, nil
}

func (m Model) onDetailLoaded(msg DetailLoadedMsg) (Model, tea.Cmd) {
	if m.view != detailView || msg.TID != m.tid {
		return m, nil
	}
	m.loading = false
	m.err = nil
	m.detail = msg.Detail
	m.detailPage = msg.Page
	m.scroll = 0
	if m.totalPages == 0 {
		m.totalPages = msg.Detail.TotalPages()
	}
	return m, nil
}

// Topics exposes the current listing for tests.
func (m Model) Topics() []domain.Topic { return m.topics }

// Err returns the current error, if any.
func (m Model) Err() error { return m.err }

// Loading reports whether a fetch is in flight.
func (m Model) Loading() bool { return m.loading }
