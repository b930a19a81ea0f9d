package common

import "github.com/charmbracelet/lipgloss"

var (
	// AppTitleStyle styles the application title.
	AppTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F5A97F")).
			Padding(1, 0, 0, 1)

	// BoardStyle styles forum names in the start menu and list header.
	BoardStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#A6DA95"))

	// SubjectStyle styles topic subjects in the list.
	SubjectStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CAD3F5"))

	// HotSubjectStyle highlights subjects the board marks with a style hint.
	HotSubjectStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ED8796"))

	// AuthorStyle styles usernames.
	AuthorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7DC4E4"))

	// TimestampStyle styles post and last-activity times.
	TimestampStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6E738D"))

	// FloorStyle styles the floor badge on replies.
	FloorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F9E2AF"))

	// OPBadgeStyle marks the opening post.
	OPBadgeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#A6DA95"))

	// SelectedStyle highlights the row under the cursor.
	SelectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F5A97F"))

	// SignatureStyle dims user signatures under replies.
	SignatureStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#555555")).
			Italic(true)

	// PageStyle styles the current/total page indicator.
	PageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8BD5CA"))

	// StatusBarStyle styles the bottom status bar.
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6E738D")).
			Padding(1, 0, 0, 0)

	// ErrorStyle styles error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ED8796")).
			Bold(true)

	// HintStyle styles key help and secondary notes.
	HintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#555555"))
)
