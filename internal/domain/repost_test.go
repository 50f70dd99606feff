package domain

import (
	"testing"

	"github.com/immigrant-voices/backend/internal/entity"
	"github.com/immigrant-voices/backend/internal/model"
	"github.com/immigrant-voices/backend/internal/repository"
	"github.com/immigrant-voices/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newRepostDomain() RepostDomain {
	return NewRepostDomain(
		repository.NewRepostRepository(),
		repository.NewStoryRepository(),
		repository.NewNotificationRepository(),
	)
}

func Test_repostDomain_RoundTrip(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	repostDomain := newRepostDomain()
	storyRepo := repository.NewStoryRepository()
	notificationRepo := repository.NewNotificationRepository()

	// User2 reposts user1's story with a comment.
	ctxUser2 := testutil.MockContextWithUserID(ctx, testutil.User2.ID)
	resp, err := repostDomain.Create(ctxUser2, &model.CreateRepostRequest{
		StoryID: testutil.Story1.ID, Comment: "Everyone should read this."})
	require.NoError(t, err)

	clone, err := storyRepo.GetByID(ctx, resp.RepostStoryID)
	require.NoError(t, err)
	require.True(t, clone.IsRepost)
	require.Equal(t, testutil.Story1.ID, clone.OriginalStoryID.String)
	require.Equal(t, testutil.User2.ID, clone.AuthorID)
	require.Equal(t, testutil.Story1.Content, clone.Content)

	original, err := storyRepo.GetByID(ctx, testutil.Story1.ID)
	require.NoError(t, err)
	require.Equal(t, 1, original.RepostsCount)

	// The original author is notified.
	notifications, err := notificationRepo.GetList(ctx, testutil.User1.ID, false, 0, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	require.Equal(t, entity.NotificationRepost, notifications[0].Kind)

	// Cannot repost the same story twice.
	_, err = repostDomain.Create(ctxUser2, &model.CreateRepostRequest{StoryID: testutil.Story1.ID})
	require.Equal(t, "You already reposted this story", err.Error())

	// Undo restores the counter and removes the clone.
	_, err = repostDomain.Delete(ctxUser2, &model.DeleteRepostRequest{StoryID: testutil.Story1.ID})
	require.NoError(t, err)

	original, err = storyRepo.GetByID(ctx, testutil.Story1.ID)
	require.NoError(t, err)
	require.Equal(t, 0, original.RepostsCount)

	_, err = storyRepo.GetByID(ctx, resp.RepostStoryID)
	require.Error(t, err)

	// Undoing again has nothing to remove.
	_, err = repostDomain.Delete(ctxUser2, &model.DeleteRepostRequest{StoryID: testutil.Story1.ID})
	require.Equal(t, "You have not reposted this story", err.Error())
}

func Test_repostDomain_ChainCollapsesToRoot(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	repostDomain := newRepostDomain()
	storyRepo := repository.NewStoryRepository()

	ctxUser2 := testutil.MockContextWithUserID(ctx, testutil.User2.ID)
	first, err := repostDomain.Create(ctxUser2, &model.CreateRepostRequest{StoryID: testutil.Story1.ID})
	require.NoError(t, err)

	// User3 reposts user2's repost; the clone points at the root original.
	ctxUser3 := testutil.MockContextWithUserID(ctx, testutil.User3.ID)
	second, err := repostDomain.Create(ctxUser3, &model.CreateRepostRequest{StoryID: first.RepostStoryID})
	require.NoError(t, err)

	clone, err := storyRepo.GetByID(ctx, second.RepostStoryID)
	require.NoError(t, err)
	require.Equal(t, testutil.Story1.ID, clone.OriginalStoryID.String)

	original, err := storyRepo.GetByID(ctx, testutil.Story1.ID)
	require.NoError(t, err)
	require.Equal(t, 2, original.RepostsCount)
}

func Test_repostDomain_SelfRepost(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	repostDomain := newRepostDomain()
	storyRepo := repository.NewStoryRepository()
	notificationRepo := repository.NewNotificationRepository()

	// Reposting your own story works like any other repost, except nobody
	// is notified about it.
	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	resp, err := repostDomain.Create(ctxUser1, &model.CreateRepostRequest{StoryID: testutil.Story1.ID})
	require.NoError(t, err)

	clone, err := storyRepo.GetByID(ctx, resp.RepostStoryID)
	require.NoError(t, err)
	require.True(t, clone.IsRepost)
	require.Equal(t, testutil.User1.ID, clone.AuthorID)

	original, err := storyRepo.GetByID(ctx, testutil.Story1.ID)
	require.NoError(t, err)
	require.Equal(t, 1, original.RepostsCount)

	notifications, err := notificationRepo.GetList(ctx, testutil.User1.ID, false, 0, 10)
	require.NoError(t, err)
	require.Empty(t, notifications)
}
