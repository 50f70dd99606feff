package repository

import (
	"context"

	"github.com/immigrant-voices/backend/internal/entity"
	"github.com/immigrant-voices/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type BookmarkRepository interface {
	Create(ctx context.Context, bookmark *entity.Bookmark) (bool, error)
	Delete(ctx context.Context, userID, storyID string) error
	DeleteByStoryID(ctx context.Context, storyID string) error
	Get(ctx context.Context, userID, storyID string) (*entity.Bookmark, error)
}

type bookmarkRepository struct{}

func NewBookmarkRepository() *bookmarkRepository {
	return &bookmarkRepository{}
}

func (r *bookmarkRepository) Create(ctx context.Context, bookmark *entity.Bookmark) (bool, error) {
	tx := xcontext.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(bookmark)
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected > 0, nil
}

func (r *bookmarkRepository) Delete(ctx context.Context, userID, storyID string) error {
	return xcontext.DB(ctx).
		Delete(&entity.Bookmark{}, "user_id=? AND story_id=?", userID, storyID).Error
}

func (r *bookmarkRepository) DeleteByStoryID(ctx context.Context, storyID string) error {
	return xcontext.DB(ctx).Delete(&entity.Bookmark{}, "story_id=?", storyID).Error
}

func (r *bookmarkRepository) Get(ctx context.Context, userID, storyID string) (*entity.Bookmark, error) {
	var result entity.Bookmark
	err := xcontext.DB(ctx).
		Take(&result, "user_id=? AND story_id=?", userID, storyID).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}
