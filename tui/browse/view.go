package browse

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/gyokusei/nga-cli/bbcode"
	"github.com/gyokusei/nga-cli/domain"
	"github.com/gyokusei/nga-cli/tui/common"
)

const timeLayout = "2006-01-02 15:04"

// View renders the active browse view.
func (m Model) View() string {
	var body string
	switch m.view {
	case menuView:
		body = m.renderMenu()
	case topicsView:
		body = m.renderTopics()
	case detailView:
		body = m.renderDetail()
	}

	if m.note != "" {
		body += "\n" + common.HintStyle.Render("  "+m.note)
	}
	body += "\n" + common.StatusBarStyle.Render("  "+m.helpLine())
	return common.ClampWidth(body, m.width)
}

func (m Model) renderMenu() string {
	var b strings.Builder
	b.WriteString(common.AppTitleStyle.Render("NGA") + "\n\n")

	if len(m.favorites) == 0 {
		b.WriteString("  No favorite boards yet.\n")
		b.WriteString(common.HintStyle.Render("  Add one with: nga-cli config") + "\n")
		return b.String()
	}

	for i, fav := range m.favorites {
		line := fmt.Sprintf("%s  %s", common.BoardStyle.Render(fav.Name),
			common.TimestampStyle.Render(fmt.Sprintf("(fid %d)", fav.FID)))
		if i == m.menuCursor {
			line = common.SelectedStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString("  " + line + "\n")
	}
	return b.String()
}

func (m Model) renderTopics() string {
	var b strings.Builder
	header := fmt.Sprintf("%s  %s",
		common.BoardStyle.Render(m.boardName),
		common.PageStyle.Render(fmt.Sprintf("page %d", m.listPage)))
	b.WriteString("\n  " + header + "\n\n")

	switch {
	case m.loading:
		b.WriteString(fmt.Sprintf("  %s Loading topics...\n", m.spinner.View()))
	case m.err != nil:
		b.WriteString(m.renderError())
	case len(m.topics) == 0:
		b.WriteString("  This board has no topics.\n")
	default:
		for i, topic := range m.topics {
			marker := "  "
			if i == m.cursor {
				marker = common.SelectedStyle.Render("> ")
			}
			b.WriteString("  " + marker + m.renderTopicRow(topic) + "\n")
		}
	}
	return b.String()
}

func (m Model) renderTopicRow(t domain.Topic) string {
	subject := subjectStyle(t.TitleFont).Render(t.Subject)
	author := common.AuthorStyle.Render(t.Author)
	when := common.TimestampStyle.Render(formatEpoch(t.SortKey()))
	replies := common.TimestampStyle.Render(fmt.Sprintf("%d replies", t.Replies))
	return fmt.Sprintf("%s\n      %s · %s · %s", subject, author, replies, when)
}

// subjectStyle maps the board's raw title style hint onto a terminal style.
// The hint is a comma-ish flag string; "b" marks bold and "color" marks a
// highlighted subject.
func subjectStyle(hint string) lipgloss.Style {
	st := common.SubjectStyle
	if strings.Contains(hint, "color") {
		st = common.HotSubjectStyle
	}
	if strings.Contains(hint, "b") {
		st = st.Bold(true)
	}
	return st
}

func (m Model) renderDetail() string {
	var b strings.Builder
	pageInfo := fmt.Sprintf("page %d/%d", m.detailPage, m.totalPagesOrPending())
	header := fmt.Sprintf("%s  %s",
		common.BoardStyle.Render(m.detail.Topic.Subject),
		common.PageStyle.Render(pageInfo))
	b.WriteString("\n  " + header + "\n\n")

	switch {
	case m.loading:
		b.WriteString(fmt.Sprintf("  %s Loading replies...\n", m.spinner.View()))
	case m.err != nil:
		b.WriteString(m.renderError())
	default:
		lines := m.detailBodyLines()
		visible := m.visibleLineBudget()
		lo := m.scroll
		if lo > len(lines) {
			lo = len(lines)
		}
		hi := lo + visible
		if hi > len(lines) {
			hi = len(lines)
		}
		for _, ln := range lines[lo:hi] {
			b.WriteString(ln + "\n")
		}
	}
	return b.String()
}

// detailBodyLines renders every floor of the current page into display lines.
func (m Model) detailBodyLines() []string {
	var lines []string
	for _, reply := range m.detail.Replies {
		user := m.detail.UserLookup(reply.AuthorID)

		badge := common.FloorStyle.Render(fmt.Sprintf("#%d", reply.Floor))
		if reply.Floor == 0 {
			badge = common.OPBadgeStyle.Render("OP")
		}
		head := fmt.Sprintf("  %s %s  %s", badge,
			common.AuthorStyle.Render(user.Username),
			common.TimestampStyle.Render(replyTime(reply)))
		lines = append(lines, head)

		content := common.RenderStyled(bbcode.Render(reply.Content))
		for _, ln := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
			lines = append(lines, "    "+ln)
		}

		if m.showSigs && user.Signature != "" {
			sig := bbcode.Render(user.Signature).Plain()
			for _, ln := range strings.Split(strings.TrimRight(sig, "\n"), "\n") {
				lines = append(lines, "    "+common.SignatureStyle.Render("~ "+ln))
			}
		}
		lines = append(lines, "")
	}
	return lines
}

func replyTime(r domain.Reply) string {
	if r.PostDate != 0 {
		return formatEpoch(r.PostDate)
	}
	return r.PostDateRaw
}

func formatEpoch(sec int64) string {
	if sec == 0 {
		return ""
	}
	return time.Unix(sec, 0).Format(timeLayout)
}

func (m Model) renderError() string {
	var b strings.Builder
	b.WriteString(common.ErrorStyle.Render(fmt.Sprintf("  %v", m.err)) + "\n")
	b.WriteString(common.HintStyle.Render("  Inspect the failing exchange with: nga-cli debug last-error") + "\n")
	b.WriteString("  Press r to retry or esc to go back.\n")
	return b.String()
}

func (m Model) totalPagesOrPending() int {
	if m.totalPages > 0 {
		return m.totalPages
	}
	return 1
}

// visibleLineBudget is the number of body lines the detail view can show,
// leaving room for the header and status bar.
func (m Model) visibleLineBudget() int {
	reserved := 7
	budget := m.height - reserved
	if budget < 5 {
		budget = 5
	}
	return budget
}

func (m Model) maxScroll() int {
	n := len(m.detailBodyLines()) - m.visibleLineBudget()
	if n < 0 {
		return 0
	}
	return n
}

func (m Model) helpLine() string {
	switch m.view {
	case menuView:
		return "↑/↓ move · enter open · q quit"
	case topicsView:
		return "↑/↓ move · enter open · n/p page · r refresh · esc back"
	default:
		return "↑/↓ scroll · n/p page · s signatures · r refresh · esc back"
	}
}
