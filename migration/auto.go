package migration

import (
	"context"

	"github.com/immigrant-voices/backend/internal/entity"
	"github.com/immigrant-voices/backend/pkg/xcontext"
)

// When this migrator is called, no need to call other migrators.
func AutoMigrate(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&entity.User{},
		&entity.RefreshToken{},
		&entity.Story{},
		&entity.Like{},
		&entity.Bookmark{},
		&entity.Comment{},
		&entity.Repost{},
		&entity.Follow{},
		&entity.Notification{},
		&entity.Poll{},
		&entity.PollOption{},
		&entity.PollVote{},
		&entity.Tag{},
		&entity.StoryTag{},
		&entity.Community{},
		&entity.CommunityMember{},
		&entity.CommunityStats{},
		&entity.Job{},
		&entity.JobApplication{},
		&entity.Conversation{},
		&entity.Message{},
		&entity.Migration{},
	)
}
