package repository

import (
	"context"

	"github.com/immigrant-voices/backend/internal/entity"
	"github.com/immigrant-voices/backend/pkg/xcontext"
)

type GetListJobFilter struct {
	Q        string
	Location string
	Category string
	OpenOnly bool
	Offset   int
	Limit    int
}

type JobRepository interface {
	Create(ctx context.Context, job *entity.Job) error
	GetByID(ctx context.Context, id string) (*entity.Job, error)
	GetList(ctx context.Context, filter GetListJobFilter) ([]entity.Job, error)
	UpdateByID(ctx context.Context, id string, data entity.Job) error
	SetOpen(ctx context.Context, id string, isOpen bool) error
	DeleteByID(ctx context.Context, id string) error
}

type jobRepository struct{}

func NewJobRepository() *jobRepository {
	return &jobRepository{}
}

func (r *jobRepository) Create(ctx context.Context, job *entity.Job) error {
	return xcontext.DB(ctx).Create(job).Error
}

func (r *jobRepository) GetByID(ctx context.Context, id string) (*entity.Job, error) {
	var result entity.Job
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *jobRepository) GetList(
	ctx context.Context, filter GetListJobFilter,
) ([]entity.Job, error) {
	tx := xcontext.DB(ctx)
	if filter.Q != "" {
		tx = tx.Where(
			"title LIKE ? OR company LIKE ?",
			"%"+filter.Q+"%", "%"+filter.Q+"%",
		)
	}

	if filter.Location != "" {
		tx = tx.Where("location=?", filter.Location)
	}

	if filter.Category != "" {
		tx = tx.Where("category=?", filter.Category)
	}

	if filter.OpenOnly {
		tx = tx.Where("is_open=true")
	}

	var result []entity.Job
	err := tx.Order("created_at DESC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *jobRepository) UpdateByID(ctx context.Context, id string, data entity.Job) error {
	return xcontext.DB(ctx).Model(&entity.Job{}).
		Where("id=?", id).
		Omit("created_at", "posted_by").
		Updates(data).Error
}

func (r *jobRepository) SetOpen(ctx context.Context, id string, isOpen bool) error {
	return xcontext.DB(ctx).Model(&entity.Job{}).
		Where("id=?", id).
		Update("is_open", isOpen).Error
}

func (r *jobRepository) DeleteByID(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Delete(&entity.Job{}, "id=?", id).Error
}
