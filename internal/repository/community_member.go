package repository

import (
	"context"

	"github.com/immigrant-voices/backend/internal/entity"
	"github.com/immigrant-voices/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type CommunityMemberRepository interface {
	Create(ctx context.Context, member *entity.CommunityMember) error
	Get(ctx context.Context, userID, communityID string) (*entity.CommunityMember, error)
	Delete(ctx context.Context, userID, communityID string) error
	Count(ctx context.Context, communityID string) (int64, error)
}

type communityMemberRepository struct{}

func NewCommunityMemberRepository() *communityMemberRepository {
	return &communityMemberRepository{}
}

func (r *communityMemberRepository) Create(ctx context.Context, member *entity.CommunityMember) error {
	return xcontext.DB(ctx).Create(member).Error
}

func (r *communityMemberRepository) Get(
	ctx context.Context, userID, communityID string,
) (*entity.CommunityMember, error) {
	var result entity.CommunityMember
	err := xcontext.DB(ctx).
		Take(&result, "user_id=? AND community_id=?", userID, communityID).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *communityMemberRepository) Delete(ctx context.Context, userID, communityID string) error {
	tx := xcontext.DB(ctx).
		Delete(&entity.CommunityMember{}, "user_id=? AND community_id=?", userID, communityID)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *communityMemberRepository) Count(ctx context.Context, communityID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.CommunityMember{}).
		Where("community_id=?", communityID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
