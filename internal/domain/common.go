package domain

import (
	"context"

	"github.com/google/uuid"
	"github.com/immigrant-voices/backend/internal/common"
	"github.com/immigrant-voices/backend/internal/entity"
	"github.com/immigrant-voices/backend/internal/model"
	"github.com/immigrant-voices/backend/internal/repository"
	"github.com/immigrant-voices/backend/pkg/errorx"
	"github.com/immigrant-voices/backend/pkg/xcontext"
)

// fanoutNotification inserts a notification row after the owning transaction
// has committed. Self-targeted events are suppressed. Failures are logged and
// counted, never returned to the caller.
func fanoutNotification(
	ctx context.Context,
	notificationRepo repository.NotificationRepository,
	notification *entity.Notification,
) {
	if notification.UserID == notification.ActorID {
		return
	}

	notification.ID = uuid.NewString()
	if err := notificationRepo.Create(ctx, notification); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot fan out %s notification: %v", notification.Kind, err)
		common.PromCounters[common.NotificationFanoutFailure].
			WithLabelValues(string(notification.Kind)).Inc()
	}
}

// convertStories batch-loads authors, tags, and counters for a page of
// stories. Liked and bookmarked flags are resolved against forUserID when it
// is not empty.
func convertStories(
	ctx context.Context,
	userRepo repository.UserRepository,
	likeRepo repository.LikeRepository,
	bookmarkRepo repository.BookmarkRepository,
	commentRepo repository.CommentRepository,
	tagRepo repository.TagRepository,
	stories []entity.Story,
	forUserID string,
) ([]model.Story, error) {
	if len(stories) == 0 {
		return []model.Story{}, nil
	}

	storyIDs := []string{}
	authorIDs := []string{}
	for i := range stories {
		storyIDs = append(storyIDs, stories[i].ID)
		authorIDs = append(authorIDs, stories[i].AuthorID)
	}

	authors, err := userRepo.GetByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	authorMap := map[string]*entity.User{}
	for i := range authors {
		authorMap[authors[i].ID] = &authors[i]
	}

	likeCounts, err := likeRepo.CountByStoryIDs(ctx, storyIDs)
	if err != nil {
		return nil, err
	}

	commentCounts, err := commentRepo.CountByStoryIDs(ctx, storyIDs)
	if err != nil {
		return nil, err
	}

	result := []model.Story{}
	for i := range stories {
		story := &stories[i]
		tags, err := tagRepo.GetNamesByStoryID(ctx, story.ID)
		if err != nil {
			return nil, err
		}

		liked := false
		bookmarked := false
		if forUserID != "" {
			if _, err := likeRepo.Get(ctx, forUserID, story.ID); err == nil {
				liked = true
			}

			if _, err := bookmarkRepo.Get(ctx, forUserID, story.ID); err == nil {
				bookmarked = true
			}
		}

		result = append(result, model.ConvertStory(
			story, model.ConvertUser(authorMap[story.AuthorID], false), tags,
			int(likeCounts[story.ID]), int(commentCounts[story.ID]),
			liked, bookmarked,
		))
	}

	return result, nil
}

var errInvalidPagination = errorx.New(errorx.BadRequest, "Invalid pagination parameters")

// pagination clamps the client paging parameters against server configs. A
// zero limit falls back to the default page size.
func pagination(ctx context.Context, offset, limit int) (int, int, error) {
	cfg := xcontext.Configs(ctx).ApiServer
	if limit == 0 {
		limit = cfg.DefaultLimit
	}

	if limit < 0 || offset < 0 {
		return 0, 0, errInvalidPagination
	}

	if cfg.MaxLimit > 0 && limit > cfg.MaxLimit {
		return 0, 0, errInvalidPagination
	}

	return offset, limit, nil
}
