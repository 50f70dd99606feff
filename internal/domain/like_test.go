package domain

import (
	"testing"

	"github.com/immigrant-voices/backend/internal/entity"
	"github.com/immigrant-voices/backend/internal/model"
	"github.com/immigrant-voices/backend/internal/repository"
	"github.com/immigrant-voices/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newLikeDomain() LikeDomain {
	return NewLikeDomain(
		repository.NewLikeRepository(),
		repository.NewStoryRepository(),
		repository.NewUserRepository(),
		repository.NewBookmarkRepository(),
		repository.NewCommentRepository(),
		repository.NewTagRepository(),
		repository.NewNotificationRepository(),
	)
}

func Test_likeDomain_LikeIsIdempotent(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	likeDomain := newLikeDomain()
	notificationRepo := repository.NewNotificationRepository()

	// User2 likes user1's story.
	ctxUser2 := testutil.MockContextWithUserID(ctx, testutil.User2.ID)
	_, err := likeDomain.Like(ctxUser2, &model.LikeStoryRequest{StoryID: testutil.Story1.ID})
	require.NoError(t, err)

	// Liking again succeeds but changes nothing.
	_, err = likeDomain.Like(ctxUser2, &model.LikeStoryRequest{StoryID: testutil.Story1.ID})
	require.NoError(t, err)

	liked, err := likeDomain.CheckLiked(ctxUser2, &model.CheckLikedRequest{StoryID: testutil.Story1.ID})
	require.NoError(t, err)
	require.True(t, liked.Liked)

	// Exactly one notification reached the author.
	notifications, err := notificationRepo.GetList(ctx, testutil.User1.ID, false, 0, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	require.Equal(t, entity.NotificationLike, notifications[0].Kind)
	require.Equal(t, testutil.User2.ID, notifications[0].ActorID)
	require.Equal(t, testutil.Story1.ID, notifications[0].StoryID.String)

	// The liked feed contains the story.
	stories, err := likeDomain.GetLikedStories(ctxUser2, &model.GetLikedStoriesRequest{})
	require.NoError(t, err)
	require.Len(t, stories.Stories, 1)
	require.Equal(t, testutil.Story1.ID, stories.Stories[0].ID)
	require.Equal(t, 1, stories.Stories[0].LikesCount)
	require.True(t, stories.Stories[0].Liked)

	// Unlike clears the state.
	_, err = likeDomain.Unlike(ctxUser2, &model.UnlikeStoryRequest{StoryID: testutil.Story1.ID})
	require.NoError(t, err)

	liked, err = likeDomain.CheckLiked(ctxUser2, &model.CheckLikedRequest{StoryID: testutil.Story1.ID})
	require.NoError(t, err)
	require.False(t, liked.Liked)
}

func Test_likeDomain_SelfLikeDoesNotNotify(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	likeDomain := newLikeDomain()
	notificationRepo := repository.NewNotificationRepository()

	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	_, err := likeDomain.Like(ctxUser1, &model.LikeStoryRequest{StoryID: testutil.Story1.ID})
	require.NoError(t, err)

	notifications, err := notificationRepo.GetList(ctx, testutil.User1.ID, false, 0, 10)
	require.NoError(t, err)
	require.Empty(t, notifications)
}

func Test_likeDomain_LikeUnknownStory(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	likeDomain := newLikeDomain()

	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	_, err := likeDomain.Like(ctxUser1, &model.LikeStoryRequest{StoryID: "no-such-story"})
	require.Equal(t, "Not found story", err.Error())
}
