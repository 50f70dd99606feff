package repository

import (
	"context"

	"github.com/immigrant-voices/backend/internal/entity"
	"github.com/immigrant-voices/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type LikeRepository interface {
	// Create inserts the like and reports whether a new row was actually
	// created; a duplicate pair is not an error.
	Create(ctx context.Context, like *entity.Like) (bool, error)
	Delete(ctx context.Context, userID, storyID string) error
	DeleteByStoryID(ctx context.Context, storyID string) error
	Get(ctx context.Context, userID, storyID string) (*entity.Like, error)
	Count(ctx context.Context, storyID string) (int64, error)
	CountByStoryIDs(ctx context.Context, storyIDs []string) (map[string]int64, error)
}

type likeRepository struct{}

func NewLikeRepository() *likeRepository {
	return &likeRepository{}
}

func (r *likeRepository) Create(ctx context.Context, like *entity.Like) (bool, error) {
	tx := xcontext.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(like)
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected > 0, nil
}

func (r *likeRepository) Delete(ctx context.Context, userID, storyID string) error {
	return xcontext.DB(ctx).
		Delete(&entity.Like{}, "user_id=? AND story_id=?", userID, storyID).Error
}

func (r *likeRepository) DeleteByStoryID(ctx context.Context, storyID string) error {
	return xcontext.DB(ctx).Delete(&entity.Like{}, "story_id=?", storyID).Error
}

func (r *likeRepository) Get(ctx context.Context, userID, storyID string) (*entity.Like, error) {
	var result entity.Like
	err := xcontext.DB(ctx).
		Take(&result, "user_id=? AND story_id=?", userID, storyID).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *likeRepository) Count(ctx context.Context, storyID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.Like{}).
		Where("story_id=?", storyID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *likeRepository) CountByStoryIDs(
	ctx context.Context, storyIDs []string,
) (map[string]int64, error) {
	var rows []struct {
		StoryID string
		Count   int64
	}

	err := xcontext.DB(ctx).Model(&entity.Like{}).
		Select("story_id, COUNT(*) as count").
		Where("story_id IN (?)", storyIDs).
		Group("story_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := map[string]int64{}
	for _, row := range rows {
		result[row.StoryID] = row.Count
	}

	return result, nil
}
