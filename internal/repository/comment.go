package repository

import (
	"context"

	"github.com/immigrant-voices/backend/internal/entity"
	"github.com/immigrant-voices/backend/pkg/xcontext"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	GetByID(ctx context.Context, id string) (*entity.Comment, error)
	GetListByStoryID(ctx context.Context, storyID string, offset, limit int) ([]entity.Comment, error)
	DeleteByID(ctx context.Context, id string) error
	DeleteByStoryID(ctx context.Context, storyID string) error
	Count(ctx context.Context, storyID string) (int64, error)
	CountByStoryIDs(ctx context.Context, storyIDs []string) (map[string]int64, error)
}

type commentRepository struct{}

func NewCommentRepository() *commentRepository {
	return &commentRepository{}
}

func (r *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	return xcontext.DB(ctx).Create(comment).Error
}

func (r *commentRepository) GetByID(ctx context.Context, id string) (*entity.Comment, error) {
	var result entity.Comment
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *commentRepository) GetListByStoryID(
	ctx context.Context, storyID string, offset, limit int,
) ([]entity.Comment, error) {
	var result []entity.Comment
	err := xcontext.DB(ctx).
		Where("story_id=?", storyID).
		Order("created_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *commentRepository) DeleteByID(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Delete(&entity.Comment{}, "id=?", id).Error
}

func (r *commentRepository) DeleteByStoryID(ctx context.Context, storyID string) error {
	return xcontext.DB(ctx).Delete(&entity.Comment{}, "story_id=?", storyID).Error
}

func (r *commentRepository) Count(ctx context.Context, storyID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.Comment{}).
		Where("story_id=?", storyID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *commentRepository) CountByStoryIDs(
	ctx context.Context, storyIDs []string,
) (map[string]int64, error) {
	var rows []struct {
		StoryID string
		Count   int64
	}

	err := xcontext.DB(ctx).Model(&entity.Comment{}).
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
