package repository

import (
	"context"
	"errors"

	"github.com/immigrant-voices/backend/internal/entity"
	"github.com/immigrant-voices/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.User, error)
	GetByName(ctx context.Context, name string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	UpdateByID(ctx context.Context, id string, data entity.User) error
	Count(ctx context.Context) (int64, error)
	IncreaseFollowers(ctx context.Context, userID string, delta int) error
	IncreaseFollowing(ctx context.Context, userID string, delta int) error
	GetSuggested(ctx context.Context, userID string, limit int) ([]entity.User, error)
}

type userRepository struct{}

func NewUserRepository() *userRepository {
	return &userRepository{}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return xcontext.DB(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var result entity.User
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *userRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.User, error) {
	var result []entity.User
	if err := xcontext.DB(ctx).Find(&result, "id IN (?)", ids).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *userRepository) GetByName(ctx context.Context, name string) (*entity.User, error) {
	var result entity.User
	if err := xcontext.DB(ctx).Take(&result, "name=?", name).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var result entity.User
	if err := xcontext.DB(ctx).Take(&result, "email=?", email).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *userRepository) UpdateByID(ctx context.Context, id string, data entity.User) error {
	return xcontext.DB(ctx).
		Model(&entity.User{}).
		Where("id=?", id).
		Omit("created_at", "followers_count", "following_count").
		Updates(data).Error
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := xcontext.DB(ctx).Model(&entity.User{}).Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *userRepository) IncreaseFollowers(ctx context.Context, userID string, delta int) error {
	tx := xcontext.DB(ctx).
		Model(&entity.User{}).
		Where("id=?", userID).
		Update("followers_count", gorm.Expr("followers_count+?", delta))

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

func (r *userRepository) IncreaseFollowing(ctx context.Context, userID string, delta int) error {
	tx := xcontext.DB(ctx).
		Model(&entity.User{}).
		Where("id=?", userID).
		Update("following_count", gorm.Expr("following_count+?", delta))

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

func (r *userRepository) GetSuggested(
	ctx context.Context, userID string, limit int,
) ([]entity.User, error) {
	var result []entity.User
	err := xcontext.DB(ctx).
		Where("id != ?", userID).
		Where("id NOT IN (?)",
			xcontext.DB(ctx).Model(&entity.Follow{}).
				Select("following_id").Where("follower_id=?", userID)).
		Order("followers_count DESC").
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
