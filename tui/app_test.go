package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gyokusei/nga-cli/domain"
	"github.com/gyokusei/nga-cli/tui/browse"
)

type fakeForum struct{}

func (fakeForum) ForumInfo(ctx context.Context, fid int) (domain.Forum, error) {
	return domain.Forum{ID: fid, Name: "board"}, nil
}

func (fakeForum) TopicPage(ctx context.Context, fid, page int) ([]domain.Topic, error) {
	return []domain.Topic{{ID: 1, Subject: "hello"}}, nil
}

func (fakeForum) TopicDetail(ctx context.Context, tid int64, page int) (domain.TopicDetail, error) {
	return domain.TopicDetail{}, nil
}

func TestApp_QuitOnlyAtMenu(t *testing.T) {
	a := NewApp(Deps{
		Forum:     fakeForum{},
		Favorites: []browse.Favorite{{Name: "board", FID: 7}},
	})

	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatalf("q at the menu should quit")
	}

	// Enter a board, then q must not quit.
	model, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	a = model.(App)
	if cmd == nil {
		t.Fatalf("opening a board should fetch")
	}
	model, _ = a.Update(cmd())
	a = model.(App)

	_, cmd = a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd != nil {
		t.Fatalf("q inside a board must not quit")
	}
}

func TestApp_BannerShowsIdentity(t *testing.T) {
	a := NewApp(Deps{
		Forum:    fakeForum{},
		Identity: &domain.UserIdentity{UID: 42, Username: "reader"},
	})
	view := a.View()
	if !strings.Contains(view, "reader") || !strings.Contains(view, "42") {
		t.Fatalf("expected identity banner:\n%s", view)
	}
}
