package repository

import (
	"context"
	"errors"

	"github.com/immigrant-voices/backend/internal/entity"
	"github.com/immigrant-voices/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type JobApplicationRepository interface {
	Create(ctx context.Context, application *entity.JobApplication) error
	GetByID(ctx context.Context, id string) (*entity.JobApplication, error)
	Get(ctx context.Context, jobID, applicantID string) (*entity.JobApplication, error)
	GetListByJobID(ctx context.Context, jobID string, offset, limit int) ([]entity.JobApplication, error)
	GetListByApplicantID(ctx context.Context, applicantID string, offset, limit int) ([]entity.JobApplication, error)
	UpdateStatus(ctx context.Context, id string, status entity.ApplicationStatus) error
}

type jobApplicationRepository struct{}

func NewJobApplicationRepository() *jobApplicationRepository {
	return &jobApplicationRepository{}
}

func (r *jobApplicationRepository) Create(
	ctx context.Context, application *entity.JobApplication,
) error {
	return xcontext.DB(ctx).Create(application).Error
}

func (r *jobApplicationRepository) GetByID(
	ctx context.Context, id string,
) (*entity.JobApplication, error) {
	var result entity.JobApplication
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *jobApplicationRepository) Get(
	ctx context.Context, jobID, applicantID string,
) (*entity.JobApplication, error) {
	var result entity.JobApplication
	err := xcontext.DB(ctx).
		Take(&result, "job_id=? AND applicant_id=?", jobID, applicantID).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *jobApplicationRepository) GetListByJobID(
	ctx context.Context, jobID string, offset, limit int,
) ([]entity.JobApplication, error) {
	var result []entity.JobApplication
	err := xcontext.DB(ctx).
		Where("job_id=?", jobID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *jobApplicationRepository) GetListByApplicantID(
	ctx context.Context, applicantID string, offset, limit int,
) ([]entity.JobApplication, error) {
	var result []entity.JobApplication
	err := xcontext.DB(ctx).
		Where("applicant_id=?", applicantID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *jobApplicationRepository) UpdateStatus(
	ctx context.Context, id string, status entity.ApplicationStatus,
) error {
	tx := xcontext.DB(ctx).Model(&entity.JobApplication{}).
		Where("id=?", id).
		Update("status", status)
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
