package browse

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gyokusei/nga-cli/domain"
)

// stubForum serves canned pages and records calls.
type stubForum struct {
	topics     map[int][]domain.Topic // keyed by page
	detail     map[int]domain.TopicDetail
	err        error
	topicCalls []int // pages requested
	detailCall []int
}

func (s *stubForum) ForumInfo(ctx context.Context, fid int) (domain.Forum, error) {
	return domain.Forum{ID: fid, Name: "board"}, s.err
}

func (s *stubForum) TopicPage(ctx context.Context, fid, page int) ([]domain.Topic, error) {
	s.topicCalls = append(s.topicCalls, page)
	if s.err != nil {
		return nil, s.err
	}
	return s.topics[page], nil
}

func (s *stubForum) TopicDetail(ctx context.Context, tid int64, page int) (domain.TopicDetail, error) {
	s.detailCall = append(s.detailCall, page)
	if s.err != nil {
		return domain.TopicDetail{}, s.err
	}
	return s.detail[page], nil
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func runCmd(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		t.Fatalf("expected a command")
	}
	m, _ = m.Update(cmd())
	return m
}

func openedOnFavorites(t *testing.T, forum *stubForum) Model {
	t.Helper()
	m := New(forum, []Favorite{{Name: "board", FID: 7}}, true)
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return runCmd(t, m, cmd)
}

func TestOpenFavoriteLoadsTopics(t *testing.T) {
	forum := &stubForum{topics: map[int][]domain.Topic{
		1: {{ID: 10, Subject: "first"}, {ID: 11, Subject: "second"}},
	}}
	m := openedOnFavorites(t, forum)

	if m.Loading() {
		t.Fatalf("load should have completed")
	}
	if len(m.Topics()) != 2 {
		t.Fatalf("expected 2 topics, got %d", len(m.Topics()))
	}
	view := m.View()
	if !strings.Contains(view, "first") || !strings.Contains(view, "page 1") {
		t.Fatalf("listing view incomplete:\n%s", view)
	}
}

func TestPrevPageAtFirstPageStays(t *testing.T) {
	forum := &stubForum{topics: map[int][]domain.Topic{1: {{ID: 10, Subject: "a"}}}}
	m := openedOnFavorites(t, forum)

	m, cmd := m.Update(keyRune('p'))
	if cmd != nil {
		t.Fatalf("stepping before page 1 must not fetch")
	}
	if !strings.Contains(m.View(), "first page") {
		t.Fatalf("expected a first-page notice:\n%s", m.View())
	}
	if len(forum.topicCalls) != 1 {
		t.Fatalf("unexpected extra fetches: %v", forum.topicCalls)
	}
}

func TestNextPagePastEndKeepsListing(t *testing.T) {
	forum := &stubForum{topics: map[int][]domain.Topic{
		1: {{ID: 10, Subject: "only"}},
		2: {},
	}}
	m := openedOnFavorites(t, forum)

	m, cmd := m.Update(keyRune('n'))
	m = runCmd(t, m, cmd)

	if len(m.Topics()) != 1 || m.listPage != 1 {
		t.Fatalf("empty page must not replace the listing: page=%d topics=%d",
			m.listPage, len(m.Topics()))
	}
	if !strings.Contains(m.View(), "no more topics") {
		t.Fatalf("expected an end-of-listing notice:\n%s", m.View())
	}
}

func TestDetailTotalPagesFixedAfterFirstLoad(t *testing.T) {
	forum := &stubForum{
		topics: map[int][]domain.Topic{1: {{ID: 10, Subject: "t"}}},
		detail: map[int]domain.TopicDetail{
			1: {Topic: domain.Topic{ID: 10, Subject: "t"}, TotalItems: 45, ItemsPerPage: 20},
			// Later pages repeat a bogus total; it must be ignored.
			2: {Topic: domain.Topic{ID: 10, Subject: "t"}, TotalItems: 999, ItemsPerPage: 20},
		},
	}
	m := openedOnFavorites(t, forum)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = runCmd(t, m, cmd)
	if m.totalPages != 3 {
		t.Fatalf("total pages from first load: want 3, got %d", m.totalPages)
	}

	m, cmd = m.Update(keyRune('n'))
	m = runCmd(t, m, cmd)
	if m.totalPages != 3 {
		t.Fatalf("total pages must stay fixed, got %d", m.totalPages)
	}
}

func TestDetailNextPastLastPageStays(t *testing.T) {
	forum := &stubForum{
		topics: map[int][]domain.Topic{1: {{ID: 10, Subject: "t"}}},
		detail: map[int]domain.TopicDetail{
			1: {Topic: domain.Topic{ID: 10, Subject: "t"}, TotalItems: 5, ItemsPerPage: 20},
		},
	}
	m := openedOnFavorites(t, forum)
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = runCmd(t, m, cmd)

	m, cmd = m.Update(keyRune('n'))
	if cmd != nil {
		t.Fatalf("stepping past the last page must not fetch")
	}
	if !strings.Contains(m.View(), "last page") {
		t.Fatalf("expected a last-page notice:\n%s", m.View())
	}
	if len(forum.detailCall) != 1 {
		t.Fatalf("unexpected extra detail fetches: %v", forum.detailCall)
	}
}

func TestFetchErrorShowsDiagnosticsPointer(t *testing.T) {
	forum := &stubForum{err: errors.New("HTTP 502")}
	m := New(forum, []Favorite{{Name: "board", FID: 7}}, true)
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = runCmd(t, m, cmd)

	if m.Err() == nil {
		t.Fatalf("expected a surfaced error")
	}
	view := m.View()
	if !strings.Contains(view, "HTTP 502") || !strings.Contains(view, "debug last-error") {
		t.Fatalf("error view should point at diagnostics:\n%s", view)
	}

	// esc returns to the menu after a failure.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !m.AtMenu() {
		t.Fatalf("esc should return to the menu")
	}
}

func TestStaleTopicsMessageIgnored(t *testing.T) {
	forum := &stubForum{topics: map[int][]domain.Topic{1: {{ID: 10, Subject: "keep"}}}}
	m := openedOnFavorites(t, forum)

	m, _ = m.Update(TopicsLoadedMsg{FID: 999, Page: 1, Topics: []domain.Topic{{ID: 1, Subject: "stale"}}})
	if m.Topics()[0].Subject != "keep" {
		t.Fatalf("listing replaced by a stale message: %#v", m.Topics())
	}
	m, _ = m.Update(TopicsErrorMsg{FID: 999, Err: errors.New("stale")})
	if m.Err() != nil {
		t.Fatalf("stale error must be ignored")
	}
}

func TestSignatureToggle(t *testing.T) {
	forum := &stubForum{
		topics: map[int][]domain.Topic{1: {{ID: 10, Subject: "t"}}},
		detail: map[int]domain.TopicDetail{
			1: {
				Topic:   domain.Topic{ID: 10, Subject: "t"},
				Replies: []domain.Reply{{Floor: 0, AuthorID: "9", Content: "hello"}},
				Users:   map[string]domain.User{"9": {Username: "poster", Signature: "my sig"}},
			},
		},
	}
	m := openedOnFavorites(t, forum)
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = runCmd(t, m, cmd)

	if !strings.Contains(m.View(), "my sig") {
		t.Fatalf("signatures on by default:\n%s", m.View())
	}
	m, _ = m.Update(keyRune('s'))
	if strings.Contains(m.View(), "my sig") {
		t.Fatalf("signature should be hidden after toggle:\n%s", m.View())
	}
}

func TestDetailRendersFloorsAndMarkup(t *testing.T) {
	forum := &stubForum{
		topics: map[int][]domain.Topic{1: {{ID: 10, Subject: "t"}}},
		detail: map[int]domain.TopicDetail{
			1: {
				Topic: domain.Topic{ID: 10, Subject: "t"},
				Replies: []domain.Reply{
					{Floor: 0, AuthorID: "9", Content: "[b]opening[/b] post"},
					{Floor: 1, AuthorID: "8", Content: "a reply"},
				},
				Users: map[string]domain.User{"9": {Username: "op-user"}},
			},
		},
	}
	m := openedOnFavorites(t, forum)
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = runCmd(t, m, cmd)

	view := m.View()
	for _, want := range []string{"OP", "#1", "op-user", "opening", "(unknown)"} {
		if !strings.Contains(view, want) {
			t.Fatalf("detail view missing %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, "[b]") {
		t.Fatalf("markup tags should not reach the screen:\n%s", view)
	}
}
