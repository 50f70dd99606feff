package domain

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/immigrant-voices/backend/internal/entity"
	"github.com/immigrant-voices/backend/internal/model"
	"github.com/immigrant-voices/backend/internal/repository"
	"github.com/immigrant-voices/backend/pkg/enum"
	"github.com/immigrant-voices/backend/pkg/errorx"
	"github.com/immigrant-voices/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type JobDomain interface {
	Create(context.Context, *model.CreateJobRequest) (*model.CreateJobResponse, error)
	Get(context.Context, *model.GetJobRequest) (*model.GetJobResponse, error)
	GetList(context.Context, *model.GetJobsRequest) (*model.GetJobsResponse, error)
	Update(context.Context, *model.UpdateJobRequest) (*model.UpdateJobResponse, error)
	Delete(context.Context, *model.DeleteJobRequest) (*model.DeleteJobResponse, error)
	Apply(context.Context, *model.ApplyJobRequest) (*model.ApplyJobResponse, error)
	GetApplications(context.Context, *model.GetJobApplicationsRequest) (*model.GetJobApplicationsResponse, error)
	GetMyApplications(context.Context, *model.GetMyApplicationsRequest) (*model.GetMyApplicationsResponse, error)
	ReviewApplication(context.Context, *model.ReviewApplicationRequest) (*model.ReviewApplicationResponse, error)
}

type jobDomain struct {
	jobRepo          repository.JobRepository
	applicationRepo  repository.JobApplicationRepository
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
}

func NewJobDomain(
	jobRepo repository.JobRepository,
	applicationRepo repository.JobApplicationRepository,
	userRepo repository.UserRepository,
	notificationRepo repository.NotificationRepository,
) JobDomain {
	return &jobDomain{
		jobRepo:          jobRepo,
		applicationRepo:  applicationRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
	}
}

func (d *jobDomain) Create(
	ctx context.Context, req *model.CreateJobRequest,
) (*model.CreateJobResponse, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Company) == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty title or company")
	}

	job := &entity.Job{
		Base:        entity.Base{ID: uuid.NewString()},
		PostedBy:    xcontext.RequestUserID(ctx),
		Title:       req.Title,
		Description: req.Description,
		Company:     req.Company,
		Location:    req.Location,
		Category:    req.Category,
		Salary:      req.Salary,
		IsOpen:      true,
	}

	if err := d.jobRepo.Create(ctx, job); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create job: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateJobResponse{ID: job.ID}, nil
}

func (d *jobDomain) Get(
	ctx context.Context, req *model.GetJobRequest,
) (*model.GetJobResponse, error) {
	job, err := d.getJob(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	poster, err := d.userRepo.GetByID(ctx, job.PostedBy)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get job poster: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.GetJobResponse(model.ConvertJob(job, model.ConvertUser(poster, false)))
	return &resp, nil
}

func (d *jobDomain) GetList(
	ctx context.Context, req *model.GetJobsRequest,
) (*model.GetJobsResponse, error) {
	offset, limit, err := pagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	jobs, err := d.jobRepo.GetList(ctx, repository.GetListJobFilter{
		Location: req.Location,
		Category: req.Category,
		OpenOnly: true,
		Offset:   offset,
		Limit:    limit,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get jobs: %v", err)
		return nil, errorx.Unknown
	}

	posterIDs := []string{}
	for i := range jobs {
		posterIDs = append(posterIDs, jobs[i].PostedBy)
	}

	posters := map[string]*entity.User{}
	if len(posterIDs) > 0 {
		users, err := d.userRepo.GetByIDs(ctx, posterIDs)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get job posters: %v", err)
			return nil, errorx.Unknown
		}

		for i := range users {
			posters[users[i].ID] = &users[i]
		}
	}

	clientJobs := []model.Job{}
	for i := range jobs {
		clientJobs = append(clientJobs, model.ConvertJob(
			&jobs[i], model.ConvertUser(posters[jobs[i].PostedBy], false)))
	}

	return &model.GetJobsResponse{Jobs: clientJobs}, nil
}

func (d *jobDomain) Update(
	ctx context.Context, req *model.UpdateJobRequest,
) (*model.UpdateJobResponse, error) {
	job, err := d.getJob(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if job.PostedBy != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Only the poster can update this job")
	}

	err = d.jobRepo.UpdateByID(ctx, job.ID, entity.Job{
		Title:       req.Title,
		Description: req.Description,
		Company:     req.Company,
		Location:    req.Location,
		Category:    req.Category,
		Salary:      req.Salary,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update job: %v", err)
		return nil, errorx.Unknown
	}

	if req.IsOpen != nil {
		if err := d.jobRepo.SetOpen(ctx, job.ID, *req.IsOpen); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot set job open state: %v", err)
			return nil, errorx.Unknown
		}
	}

	return &model.UpdateJobResponse{}, nil
}

func (d *jobDomain) Delete(
	ctx context.Context, req *model.DeleteJobRequest,
) (*model.DeleteJobResponse, error) {
	job, err := d.getJob(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if job.PostedBy != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Only the poster can delete this job")
	}

	if err := d.jobRepo.DeleteByID(ctx, job.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete job: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteJobResponse{}, nil
}

func (d *jobDomain) Apply(
	ctx context.Context, req *model.ApplyJobRequest,
) (*model.ApplyJobResponse, error) {
	job, err := d.getJob(ctx, req.JobID)
	if err != nil {
		return nil, err
	}

	if !job.IsOpen {
		return nil, errorx.New(errorx.BadRequest, "This job is closed")
	}

	userID := xcontext.RequestUserID(ctx)
	if job.PostedBy == userID {
		return nil, errorx.New(errorx.BadRequest, "Not allow applying to your own job")
	}

	if _, err := d.applicationRepo.Get(ctx, job.ID, userID); err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "You already applied to this job")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot check existing application: %v", err)
		return nil, errorx.Unknown
	}

	application := &entity.JobApplication{
		Base:        entity.Base{ID: uuid.NewString()},
		JobID:       job.ID,
		ApplicantID: userID,
		CoverLetter: req.CoverLetter,
		Status:      entity.ApplicationPending,
	}

	if err := d.applicationRepo.Create(ctx, application); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create application: %v", err)
		return nil, errorx.Unknown
	}

	fanoutNotification(ctx, d.notificationRepo, &entity.Notification{
		UserID:  job.PostedBy,
		ActorID: userID,
		Kind:    entity.NotificationApplication,
	})

	return &model.ApplyJobResponse{ID: application.ID}, nil
}

func (d *jobDomain) GetApplications(
	ctx context.Context, req *model.GetJobApplicationsRequest,
) (*model.GetJobApplicationsResponse, error) {
	offset, limit, err := pagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	job, err := d.getJob(ctx, req.JobID)
	if err != nil {
		return nil, err
	}

	if job.PostedBy != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Only the poster can view applications")
	}

	applications, err := d.applicationRepo.GetListByJobID(ctx, job.ID, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get applications: %v", err)
		return nil, errorx.Unknown
	}

	clientApplications, err := d.convertApplications(ctx, applications)
	if err != nil {
		return nil, err
	}

	return &model.GetJobApplicationsResponse{Applications: clientApplications}, nil
}

func (d *jobDomain) GetMyApplications(
	ctx context.Context, req *model.GetMyApplicationsRequest,
) (*model.GetMyApplicationsResponse, error) {
	offset, limit, err := pagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	applications, err := d.applicationRepo.GetListByApplicantID(
		ctx, xcontext.RequestUserID(ctx), offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get my applications: %v", err)
		return nil, errorx.Unknown
	}

	clientApplications, err := d.convertApplications(ctx, applications)
	if err != nil {
		return nil, err
	}

	return &model.GetMyApplicationsResponse{Applications: clientApplications}, nil
}

func (d *jobDomain) ReviewApplication(
	ctx context.Context, req *model.ReviewApplicationRequest,
) (*model.ReviewApplicationResponse, error) {
	status, err := enum.ToEnum[entity.ApplicationStatus](req.Status)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid application status")
	}

	if status == entity.ApplicationPending {
		return nil, errorx.New(errorx.BadRequest, "Cannot review an application back to pending")
	}

	application, err := d.applicationRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found application")
		}

		xcontext.Logger(ctx).Errorf("Cannot get application: %v", err)
		return nil, errorx.Unknown
	}

	job, err := d.getJob(ctx, application.JobID)
	if err != nil {
		return nil, err
	}

	if job.PostedBy != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Only the poster can review applications")
	}

	if application.Status != entity.ApplicationPending {
		return nil, errorx.New(errorx.BadRequest, "This application was already reviewed")
	}

	if err := d.applicationRepo.UpdateStatus(ctx, application.ID, status); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update application status: %v", err)
		return nil, errorx.Unknown
	}

	fanoutNotification(ctx, d.notificationRepo, &entity.Notification{
		UserID:  application.ApplicantID,
		ActorID: job.PostedBy,
		Kind:    entity.NotificationApplication,
	})

	return &model.ReviewApplicationResponse{}, nil
}

func (d *jobDomain) getJob(ctx context.Context, id string) (*entity.Job, error) {
	job, err := d.jobRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found job")
		}

		xcontext.Logger(ctx).Errorf("Cannot get job: %v", err)
		return nil, errorx.Unknown
	}

	return job, nil
}

func (d *jobDomain) convertApplications(
	ctx context.Context, applications []entity.JobApplication,
) ([]model.JobApplication, error) {
	applicantIDs := []string{}
	for i := range applications {
		applicantIDs = append(applicantIDs, applications[i].ApplicantID)
	}

	applicants := map[string]*entity.User{}
	if len(applicantIDs) > 0 {
		users, err := d.userRepo.GetByIDs(ctx, applicantIDs)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get applicants: %v", err)
			return nil, errorx.Unknown
		}

		for i := range users {
			applicants[users[i].ID] = &users[i]
		}
	}

	result := []model.JobApplication{}
	for i := range applications {
		result = append(result, model.ConvertJobApplication(
			&applications[i], model.ConvertUser(applicants[applications[i].ApplicantID], false)))
	}

	return result, nil
}
