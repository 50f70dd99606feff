package repository

import (
	"context"
	"errors"
	"time"

	"github.com/immigrant-voices/backend/internal/entity"
	"github.com/immigrant-voices/backend/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GetListCommunityFilter struct {
	Q          string
	ByTrending bool
	Offset     int
	Limit      int
}

type CommunityRepository interface {
	Create(ctx context.Context, community *entity.Community) error
	GetByID(ctx context.Context, id string) (*entity.Community, error)
	GetByHandle(ctx context.Context, handle string) (*entity.Community, error)
	GetList(ctx context.Context, filter GetListCommunityFilter) ([]entity.Community, error)
	GetAll(ctx context.Context) ([]entity.Community, error)
	UpdateByID(ctx context.Context, id string, data entity.Community) error
	IncreaseMembers(ctx context.Context, id string, delta int) error
	UpdateTrendingScore(ctx context.Context, id string, score int) error
	SetStats(ctx context.Context, stats *entity.CommunityStats) error
	GetStats(ctx context.Context, communityID string, begin, end time.Time) ([]entity.CommunityStats, error)
}

type communityRepository struct{}

func NewCommunityRepository() *communityRepository {
	return &communityRepository{}
}

func (r *communityRepository) Create(ctx context.Context, community *entity.Community) error {
	return xcontext.DB(ctx).Create(community).Error
}

func (r *communityRepository) GetByID(ctx context.Context, id string) (*entity.Community, error) {
	var result entity.Community
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *communityRepository) GetByHandle(ctx context.Context, handle string) (*entity.Community, error) {
	var result entity.Community
	if err := xcontext.DB(ctx).Take(&result, "handle=?", handle).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *communityRepository) GetList(
	ctx context.Context, filter GetListCommunityFilter,
) ([]entity.Community, error) {
	tx := xcontext.DB(ctx)
	if filter.Q != "" {
		tx = tx.Where("handle LIKE ? OR display_name LIKE ?", "%"+filter.Q+"%", "%"+filter.Q+"%")
	}

	if filter.ByTrending {
		tx = tx.Order("trending_score DESC, member_count DESC")
	} else {
		tx = tx.Order("created_at DESC")
	}

	var result []entity.Community
	err := tx.Offset(filter.Offset).Limit(filter.Limit).Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *communityRepository) GetAll(ctx context.Context) ([]entity.Community, error) {
	var result []entity.Community
	if err := xcontext.DB(ctx).Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *communityRepository) UpdateByID(
	ctx context.Context, id string, data entity.Community,
) error {
	return xcontext.DB(ctx).Model(&entity.Community{}).
		Where("id=?", id).
		Omit("created_at", "created_by", "handle", "member_count", "trending_score").
		Updates(data).Error
}

func (r *communityRepository) IncreaseMembers(ctx context.Context, id string, delta int) error {
	tx := xcontext.DB(ctx).Model(&entity.Community{}).
		Where("id=?", id).
		Update("member_count", gorm.Expr("member_count+?", delta))
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

func (r *communityRepository) UpdateTrendingScore(ctx context.Context, id string, score int) error {
	return xcontext.DB(ctx).Model(&entity.Community{}).
		Where("id=?", id).
		Update("trending_score", score).Error
}

func (r *communityRepository) SetStats(ctx context.Context, stats *entity.CommunityStats) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "community_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"member_count", "story_count",
			}),
		}).
		Create(stats).Error
}

func (r *communityRepository) GetStats(
	ctx context.Context, communityID string, begin, end time.Time,
) ([]entity.CommunityStats, error) {
	var result []entity.CommunityStats
	err := xcontext.DB(ctx).
		Where("community_id=? AND date >= ? AND date <= ?", communityID, begin, end).
		Order("date ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
