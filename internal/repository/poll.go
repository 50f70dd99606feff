package repository

import (
	"context"
	"errors"

	"github.com/immigrant-voices/backend/internal/entity"
	"github.com/immigrant-voices/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type PollRepository interface {
	Create(ctx context.Context, poll *entity.Poll) error
	CreateOptions(ctx context.Context, options []*entity.PollOption) error
	GetByID(ctx context.Context, id string) (*entity.Poll, error)
	GetByStoryID(ctx context.Context, storyID string) (*entity.Poll, error)
	GetOptions(ctx context.Context, pollID string) ([]entity.PollOption, error)
	GetOptionByID(ctx context.Context, id string) (*entity.PollOption, error)
	GetVote(ctx context.Context, pollID, userID string) (*entity.PollVote, error)
	CreateVote(ctx context.Context, vote *entity.PollVote) error
	IncreaseVoteCount(ctx context.Context, optionID string) error
	DeleteByStoryID(ctx context.Context, storyID string) error
}

type pollRepository struct{}

func NewPollRepository() *pollRepository {
	return &pollRepository{}
}

func (r *pollRepository) Create(ctx context.Context, poll *entity.Poll) error {
	return xcontext.DB(ctx).Create(poll).Error
}

func (r *pollRepository) CreateOptions(ctx context.Context, options []*entity.PollOption) error {
	return xcontext.DB(ctx).Create(options).Error
}

func (r *pollRepository) GetByID(ctx context.Context, id string) (*entity.Poll, error) {
	var result entity.Poll
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *pollRepository) GetByStoryID(ctx context.Context, storyID string) (*entity.Poll, error) {
	var result entity.Poll
	if err := xcontext.DB(ctx).Take(&result, "story_id=?", storyID).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *pollRepository) GetOptions(ctx context.Context, pollID string) ([]entity.PollOption, error) {
	var result []entity.PollOption
	err := xcontext.DB(ctx).
		Where("poll_id=?", pollID).
		Order("display_order ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *pollRepository) GetOptionByID(ctx context.Context, id string) (*entity.PollOption, error) {
	var result entity.PollOption
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *pollRepository) GetVote(ctx context.Context, pollID, userID string) (*entity.PollVote, error) {
	var result entity.PollVote
	err := xcontext.DB(ctx).
		Take(&result, "poll_id=? AND user_id=?", pollID, userID).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *pollRepository) CreateVote(ctx context.Context, vote *entity.PollVote) error {
	return xcontext.DB(ctx).Create(vote).Error
}

func (r *pollRepository) DeleteByStoryID(ctx context.Context, storyID string) error {
	poll, err := r.GetByStoryID(ctx, storyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}

		return err
	}

	err = xcontext.DB(ctx).Delete(&entity.PollVote{}, "poll_id=?", poll.ID).Error
	if err != nil {
		return err
	}

	err = xcontext.DB(ctx).Delete(&entity.PollOption{}, "poll_id=?", poll.ID).Error
	if err != nil {
		return err
	}

	return xcontext.DB(ctx).Delete(&entity.Poll{}, "id=?", poll.ID).Error
}

func (r *pollRepository) IncreaseVoteCount(ctx context.Context, optionID string) error {
	tx := xcontext.DB(ctx).Model(&entity.PollOption{}).
		Where("id=?", optionID).
		Update("votes_count", gorm.Expr("votes_count+1"))
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
