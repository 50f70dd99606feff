package repository

import (
	"context"
	"errors"

	"github.com/immigrant-voices/backend/internal/entity"
	"github.com/immigrant-voices/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type GetListStoryFilter struct {
	Category   string
	TagName    string
	AuthorID   string
	FollowedBy string
	LikedBy    string
	BookmarkedBy string
	Offset     int
	Limit      int
}

type StoryRepository interface {
	Create(ctx context.Context, story *entity.Story) error
	GetByID(ctx context.Context, id string) (*entity.Story, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Story, error)
	GetList(ctx context.Context, filter GetListStoryFilter) ([]entity.Story, error)
	UpdateByID(ctx context.Context, id string, data entity.Story) error
	DeleteByID(ctx context.Context, id string) error
	IncreaseReposts(ctx context.Context, id string, delta int) error
	CountByCommunityMembers(ctx context.Context, communityID string) (int64, error)
}

type storyRepository struct{}

func NewStoryRepository() *storyRepository {
	return &storyRepository{}
}

func (r *storyRepository) Create(ctx context.Context, story *entity.Story) error {
	return xcontext.DB(ctx).Create(story).Error
}

func (r *storyRepository) GetByID(ctx context.Context, id string) (*entity.Story, error) {
	var result entity.Story
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *storyRepository) GetBySlug(ctx context.Context, slug string) (*entity.Story, error) {
	var result entity.Story
	if err := xcontext.DB(ctx).Take(&result, "slug=?", slug).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *storyRepository) GetList(
	ctx context.Context, filter GetListStoryFilter,
) ([]entity.Story, error) {
	tx := xcontext.DB(ctx).Model(&entity.Story{}).
		Order("stories.published_at DESC").
		Offset(filter.Offset).Limit(filter.Limit)

	if filter.Category != "" {
		tx = tx.Where("stories.category=?", filter.Category)
	}

	if filter.AuthorID != "" {
		tx = tx.Where("stories.author_id=?", filter.AuthorID)
	}

	if filter.TagName != "" {
		tx = tx.Joins("join story_tags on story_tags.story_id=stories.id").
			Where("story_tags.tag_name=?", filter.TagName)
	}

	if filter.FollowedBy != "" {
		tx = tx.Joins("join follows on follows.following_id=stories.author_id").
			Where("follows.follower_id=?", filter.FollowedBy)
	}

	if filter.LikedBy != "" {
		tx = tx.Joins("join likes on likes.story_id=stories.id").
			Where("likes.user_id=?", filter.LikedBy)
	}

	if filter.BookmarkedBy != "" {
		tx = tx.Joins("join bookmarks on bookmarks.story_id=stories.id").
			Where("bookmarks.user_id=?", filter.BookmarkedBy)
	}

	var result []entity.Story
	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *storyRepository) UpdateByID(ctx context.Context, id string, data entity.Story) error {
	return xcontext.DB(ctx).
		Model(&entity.Story{}).
		Where("id=?", id).
		Omit("created_at", "author_id", "is_repost", "original_story_id", "reposts_count").
		Updates(data).Error
}

func (r *storyRepository) DeleteByID(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Delete(&entity.Story{}, "id=?", id).Error
}

func (r *storyRepository) IncreaseReposts(ctx context.Context, id string, delta int) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Story{}).
		Where("id=?", id).
		Update("reposts_count", gorm.Expr("reposts_count+?", delta))

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if tx.RowsAffected > 1 {
		return errors.New("the number of affected rows is invalid")
	}

	return nil
}

func (r *storyRepository) CountByCommunityMembers(
	ctx context.Context, communityID string,
) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.Story{}).
		Joins("join community_members on community_members.user_id=stories.author_id").
		Where("community_members.community_id=?", communityID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
