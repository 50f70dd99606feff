package repository

import (
	"context"
	"errors"

	"github.com/immigrant-voices/backend/internal/entity"
	"github.com/immigrant-voices/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type FollowRepository interface {
	Create(ctx context.Context, follow *entity.Follow) error
	Get(ctx context.Context, followerID, followingID string) (*entity.Follow, error)
	Delete(ctx context.Context, followerID, followingID string) error
	GetFollowerUsers(ctx context.Context, userID string, offset, limit int) ([]entity.User, error)
	GetFollowingUsers(ctx context.Context, userID string, offset, limit int) ([]entity.User, error)
}

type followRepository struct{}

func NewFollowRepository() *followRepository {
	return &followRepository{}
}

func (r *followRepository) Create(ctx context.Context, follow *entity.Follow) error {
	return xcontext.DB(ctx).Create(follow).Error
}

func (r *followRepository) Get(
	ctx context.Context, followerID, followingID string,
) (*entity.Follow, error) {
	var result entity.Follow
	err := xcontext.DB(ctx).
		Take(&result, "follower_id=? AND following_id=?", followerID, followingID).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *followRepository) Delete(ctx context.Context, followerID, followingID string) error {
	tx := xcontext.DB(ctx).
		Delete(&entity.Follow{}, "follower_id=? AND following_id=?", followerID, followingID)
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

func (r *followRepository) GetFollowerUsers(
	ctx context.Context, userID string, offset, limit int,
) ([]entity.User, error) {
	var result []entity.User
	err := xcontext.DB(ctx).Model(&entity.User{}).
		Joins("join follows on follows.follower_id=users.id").
		Where("follows.following_id=?", userID).
		Order("follows.created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *followRepository) GetFollowingUsers(
	ctx context.Context, userID string, offset, limit int,
) ([]entity.User, error) {
	var result []entity.User
	err := xcontext.DB(ctx).Model(&entity.User{}).
		Joins("join follows on follows.following_id=users.id").
		Where("follows.follower_id=?", userID).
		Order("follows.created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
