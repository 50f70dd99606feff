package repository

import (
	"context"
	"time"

	"github.com/immigrant-voices/backend/internal/entity"
	"github.com/immigrant-voices/backend/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TagRepository interface {
	Upsert(ctx context.Context, name string) error
	DecreaseUsage(ctx context.Context, name string) error
	GetTrending(ctx context.Context, limit int) ([]entity.Tag, error)
	GetNamesByStoryID(ctx context.Context, storyID string) ([]string, error)
	CreateStoryTag(ctx context.Context, storyTag *entity.StoryTag) error
	DeleteStoryTags(ctx context.Context, storyID string) ([]string, error)
	UpdateTrendingScore(ctx context.Context, name string, score int) error
	CountRecentUsage(ctx context.Context, since time.Time) (map[string]int, error)
}

type tagRepository struct{}

func NewTagRepository() *tagRepository {
	return &tagRepository{}
}

func (r *tagRepository) Upsert(ctx context.Context, name string) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "name"}},
			DoUpdates: clause.Assignments(map[string]any{
				"usage_count": gorm.Expr("usage_count+1"),
			}),
		}).
		Create(&entity.Tag{Name: name, UsageCount: 1}).Error
}

func (r *tagRepository) DecreaseUsage(ctx context.Context, name string) error {
	return xcontext.DB(ctx).Model(&entity.Tag{}).
		Where("name=? AND usage_count > 0", name).
		Update("usage_count", gorm.Expr("usage_count-1")).Error
}

// GetTrending returns tags ordered by trending score; a non-positive limit
// returns all of them.
func (r *tagRepository) GetTrending(ctx context.Context, limit int) ([]entity.Tag, error) {
	tx := xcontext.DB(ctx).
		Where("usage_count > 0").
		Order("trending_score DESC, usage_count DESC")
	if limit > 0 {
		tx = tx.Limit(limit)
	}

	var result []entity.Tag
	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *tagRepository) GetNamesByStoryID(ctx context.Context, storyID string) ([]string, error) {
	var names []string
	err := xcontext.DB(ctx).Model(&entity.StoryTag{}).
		Select("tag_name").
		Where("story_id=?", storyID).
		Scan(&names).Error
	if err != nil {
		return nil, err
	}

	return names, nil
}

func (r *tagRepository) CreateStoryTag(ctx context.Context, storyTag *entity.StoryTag) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(storyTag).Error
}

// DeleteStoryTags removes all tag links of a story and returns the names of
// the removed tags so the caller can decrease their usage counters.
func (r *tagRepository) DeleteStoryTags(ctx context.Context, storyID string) ([]string, error) {
	names, err := r.GetNamesByStoryID(ctx, storyID)
	if err != nil {
		return nil, err
	}

	err = xcontext.DB(ctx).Delete(&entity.StoryTag{}, "story_id=?", storyID).Error
	if err != nil {
		return nil, err
	}

	return names, nil
}

func (r *tagRepository) UpdateTrendingScore(ctx context.Context, name string, score int) error {
	return xcontext.DB(ctx).Model(&entity.Tag{}).
		Where("name=?", name).
		Update("trending_score", score).Error
}

// CountRecentUsage counts, per tag, how many stories published since the
// given time carry it.
func (r *tagRepository) CountRecentUsage(
	ctx context.Context, since time.Time,
) (map[string]int, error) {
	var rows []struct {
		TagName string
		Count   int
	}

	err := xcontext.DB(ctx).Model(&entity.StoryTag{}).
		Select("story_tags.tag_name, COUNT(*) as count").
		Joins("join stories on stories.id=story_tags.story_id").
		Where("stories.published_at >= ?", since).
		Group("story_tags.tag_name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := map[string]int{}
	for _, row := range rows {
		result[row.TagName] = row.Count
	}

	return result, nil
}
