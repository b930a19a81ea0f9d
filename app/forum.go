package app

import (
	"context"

	"github.com/gyokusei/nga-cli/domain"
)

// ForumService fetches forum listings and topic content.
type ForumService interface {
	// ForumInfo returns board metadata for a forum ID, mainly its name.
	ForumInfo(ctx context.Context, fid int) (domain.Forum, error)

	// TopicPage returns one page of a forum's topic listing, most recently
	// active first.
	TopicPage(ctx context.Context, fid, page int) ([]domain.Topic, error)

	// TopicDetail returns one page of a topic: replies ordered by floor,
	// the user table and pagination metadata.
	TopicDetail(ctx context.Context, tid int64, page int) (domain.TopicDetail, error)
}
