package repository

import (
	"context"

	"github.com/immigrant-voices/backend/internal/entity"
	"github.com/immigrant-voices/backend/pkg/xcontext"
)

type RepostRepository interface {
	Create(ctx context.Context, repost *entity.Repost) error
	Get(ctx context.Context, userID, storyID string) (*entity.Repost, error)
	GetByRepostStoryID(ctx context.Context, repostStoryID string) (*entity.Repost, error)
	Delete(ctx context.Context, userID, storyID string) error
	DeleteByStoryID(ctx context.Context, storyID string) error
}

type repostRepository struct{}

func NewRepostRepository() *repostRepository {
	return &repostRepository{}
}

func (r *repostRepository) Create(ctx context.Context, repost *entity.Repost) error {
	return xcontext.DB(ctx).Create(repost).Error
}

func (r *repostRepository) Get(ctx context.Context, userID, storyID string) (*entity.Repost, error) {
	var result entity.Repost
	err := xcontext.DB(ctx).
		Take(&result, "user_id=? AND story_id=?", userID, storyID).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *repostRepository) GetByRepostStoryID(
	ctx context.Context, repostStoryID string,
) (*entity.Repost, error) {
	var result entity.Repost
	err := xcontext.DB(ctx).Take(&result, "repost_story_id=?", repostStoryID).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *repostRepository) Delete(ctx context.Context, userID, storyID string) error {
	return xcontext.DB(ctx).
		Delete(&entity.Repost{}, "user_id=? AND story_id=?", userID, storyID).Error
}

func (r *repostRepository) DeleteByStoryID(ctx context.Context, storyID string) error {
	return xcontext.DB(ctx).Delete(&entity.Repost{}, "story_id=?", storyID).Error
}
