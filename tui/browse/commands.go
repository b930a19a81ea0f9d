package browse

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) fetchTopics(fid, page int) tea.Cmd {
	forum := m.forum
	return func() tea.Msg {
		topics, err := forum.TopicPage(context.Background(), fid, page)
		if err != nil {
			return TopicsErrorMsg{FID: fid, Page: page, Err: err}
		}
		return TopicsLoadedMsg{FID: fid, Page: page, Topics: topics}
	}
}

func (m Model) fetchDetail(tid int64, page int) tea.Cmd {
	forum := m.forum
	return func() tea.Msg {
		detail, err := forum.TopicDetail(context.Background(), tid, page)
		if err != nil {
			return DetailErrorMsg{TID: tid, Page: page, Err: err}
		}
		return DetailLoadedMsg{TID: tid, Page: page, Detail: detail}
	}
}
