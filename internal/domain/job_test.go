package domain

import (
	"testing"

	"github.com/immigrant-voices/backend/internal/model"
	"github.com/immigrant-voices/backend/internal/repository"
	"github.com/immigrant-voices/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newJobDomain() JobDomain {
	return NewJobDomain(
		repository.NewJobRepository(),
		repository.NewJobApplicationRepository(),
		repository.NewUserRepository(),
		repository.NewNotificationRepository(),
	)
}

func Test_jobDomain_ApplicationLifecycle(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	jobDomain := newJobDomain()
	notificationRepo := repository.NewNotificationRepository()

	// User2 applies to user1's job; the poster is notified.
	ctxUser2 := testutil.MockContextWithUserID(ctx, testutil.User2.ID)
	application, err := jobDomain.Apply(ctxUser2, &model.ApplyJobRequest{
		JobID: testutil.Job1.ID, CoverLetter: "I ran a kitchen back home."})
	require.NoError(t, err)

	notifications, err := notificationRepo.GetList(ctx, testutil.User1.ID, false, 0, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 1)

	// Cannot apply twice, nor to your own job.
	_, err = jobDomain.Apply(ctxUser2, &model.ApplyJobRequest{JobID: testutil.Job1.ID})
	require.Equal(t, "You already applied to this job", err.Error())

	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	_, err = jobDomain.Apply(ctxUser1, &model.ApplyJobRequest{JobID: testutil.Job1.ID})
	require.Equal(t, "Not allow applying to your own job", err.Error())

	// Only the poster sees the applications.
	_, err = jobDomain.GetApplications(ctxUser2, &model.GetJobApplicationsRequest{JobID: testutil.Job1.ID})
	require.Equal(t, "Only the poster can view applications", err.Error())

	applications, err := jobDomain.GetApplications(ctxUser1, &model.GetJobApplicationsRequest{JobID: testutil.Job1.ID})
	require.NoError(t, err)
	require.Len(t, applications.Applications, 1)
	require.Equal(t, "pending", applications.Applications[0].Status)

	// Review it; the applicant is notified and a second review is rejected.
	_, err = jobDomain.ReviewApplication(ctxUser1, &model.ReviewApplicationRequest{
		ID: application.ID, Status: "accepted"})
	require.NoError(t, err)

	notifications, err = notificationRepo.GetList(ctx, testutil.User2.ID, false, 0, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 1)

	_, err = jobDomain.ReviewApplication(ctxUser1, &model.ReviewApplicationRequest{
		ID: application.ID, Status: "rejected"})
	require.Equal(t, "This application was already reviewed", err.Error())

	mine, err := jobDomain.GetMyApplications(ctxUser2, &model.GetMyApplicationsRequest{})
	require.NoError(t, err)
	require.Len(t, mine.Applications, 1)
	require.Equal(t, "accepted", mine.Applications[0].Status)
}

func Test_jobDomain_ReviewValidation(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	jobDomain := newJobDomain()
	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.User1.ID)

	_, err := jobDomain.ReviewApplication(ctxUser1, &model.ReviewApplicationRequest{
		ID: "whatever", Status: "maybe"})
	require.Equal(t, "Invalid application status", err.Error())

	_, err = jobDomain.ReviewApplication(ctxUser1, &model.ReviewApplicationRequest{
		ID: "whatever", Status: "pending"})
	require.Equal(t, "Cannot review an application back to pending", err.Error())

	_, err = jobDomain.ReviewApplication(ctxUser1, &model.ReviewApplicationRequest{
		ID: "no-such-application", Status: "accepted"})
	require.Equal(t, "Not found application", err.Error())
}

func Test_jobDomain_CloseAndList(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	jobDomain := newJobDomain()
	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	ctxUser2 := testutil.MockContextWithUserID(ctx, testutil.User2.ID)

	// Only the poster can update.
	closed := false
	_, err := jobDomain.Update(ctxUser2, &model.UpdateJobRequest{ID: testutil.Job1.ID, IsOpen: &closed})
	require.Equal(t, "Only the poster can update this job", err.Error())

	// Close the job.
	_, err = jobDomain.Update(ctxUser1, &model.UpdateJobRequest{
		ID:      testutil.Job1.ID,
		Title:   testutil.Job1.Title,
		Company: testutil.Job1.Company,
		IsOpen:  &closed,
	})
	require.NoError(t, err)

	// A closed job rejects applications and drops out of the public list.
	_, err = jobDomain.Apply(ctxUser2, &model.ApplyJobRequest{JobID: testutil.Job1.ID})
	require.Equal(t, "This job is closed", err.Error())

	list, err := jobDomain.GetList(ctx, &model.GetJobsRequest{})
	require.NoError(t, err)
	require.Empty(t, list.Jobs)

	// The job page itself still resolves.
	job, err := jobDomain.Get(ctx, &model.GetJobRequest{ID: testutil.Job1.ID})
	require.NoError(t, err)
	require.False(t, job.IsOpen)

	// Delete it.
	_, err = jobDomain.Delete(ctxUser2, &model.DeleteJobRequest{ID: testutil.Job1.ID})
	require.Equal(t, "Only the poster can delete this job", err.Error())

	_, err = jobDomain.Delete(ctxUser1, &model.DeleteJobRequest{ID: testutil.Job1.ID})
	require.NoError(t, err)

	_, err = jobDomain.Get(ctx, &model.GetJobRequest{ID: testutil.Job1.ID})
	require.Equal(t, "Not found job", err.Error())
}
