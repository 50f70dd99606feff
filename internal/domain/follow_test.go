package domain

import (
	"testing"

	"github.com/immigrant-voices/backend/internal/entity"
	"github.com/immigrant-voices/backend/internal/model"
	"github.com/immigrant-voices/backend/internal/repository"
	"github.com/immigrant-voices/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newFollowDomain() FollowDomain {
	return NewFollowDomain(
		repository.NewFollowRepository(),
		repository.NewUserRepository(),
		repository.NewNotificationRepository(),
	)
}

func Test_followDomain_FollowAndCounters(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	followDomain := newFollowDomain()
	userRepo := repository.NewUserRepository()
	notificationRepo := repository.NewNotificationRepository()

	ctxUser2 := testutil.MockContextWithUserID(ctx, testutil.User2.ID)
	_, err := followDomain.Follow(ctxUser2, &model.FollowUserRequest{UserID: testutil.User1.ID})
	require.NoError(t, err)

	// Both counters moved.
	user1, err := userRepo.GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, 1, user1.FollowersCount)

	user2, err := userRepo.GetByID(ctx, testutil.User2.ID)
	require.NoError(t, err)
	require.Equal(t, 1, user2.FollowingCount)

	// The followed user is notified.
	notifications, err := notificationRepo.GetList(ctx, testutil.User1.ID, false, 0, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	require.Equal(t, entity.NotificationFollow, notifications[0].Kind)

	// Following twice is rejected.
	_, err = followDomain.Follow(ctxUser2, &model.FollowUserRequest{UserID: testutil.User1.ID})
	require.Equal(t, "You already followed this user", err.Error())

	// One-way for now.
	check, err := followDomain.CheckFollowing(ctxUser2, &model.CheckFollowingRequest{UserID: testutil.User1.ID})
	require.NoError(t, err)
	require.True(t, check.Following)
	require.False(t, check.Mutual)

	// The reverse follow makes it mutual.
	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	_, err = followDomain.Follow(ctxUser1, &model.FollowUserRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)

	check, err = followDomain.CheckFollowing(ctxUser2, &model.CheckFollowingRequest{UserID: testutil.User1.ID})
	require.NoError(t, err)
	require.True(t, check.Mutual)

	followers, err := followDomain.GetFollowers(ctx, &model.GetFollowersRequest{UserID: testutil.User1.ID})
	require.NoError(t, err)
	require.Len(t, followers.Users, 1)
	require.Equal(t, testutil.User2.ID, followers.Users[0].ID)

	// Unfollow restores the counters.
	_, err = followDomain.Unfollow(ctxUser2, &model.UnfollowUserRequest{UserID: testutil.User1.ID})
	require.NoError(t, err)

	user1, err = userRepo.GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, 0, user1.FollowersCount)

	user2, err = userRepo.GetByID(ctx, testutil.User2.ID)
	require.NoError(t, err)
	require.Equal(t, 0, user2.FollowingCount)
}

func Test_followDomain_Validation(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	followDomain := newFollowDomain()
	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.User1.ID)

	_, err := followDomain.Follow(ctxUser1, &model.FollowUserRequest{UserID: testutil.User1.ID})
	require.Equal(t, "Not allow following yourself", err.Error())

	_, err = followDomain.Follow(ctxUser1, &model.FollowUserRequest{UserID: "no-such-user"})
	require.Equal(t, "Not found user", err.Error())

	// Unfollowing someone you do not follow is a no-op and leaves counters alone.
	_, err = followDomain.Unfollow(ctxUser1, &model.UnfollowUserRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)

	userRepo := repository.NewUserRepository()
	user2, err := userRepo.GetByID(ctx, testutil.User2.ID)
	require.NoError(t, err)
	require.Equal(t, 0, user2.FollowersCount)
}

func Test_followDomain_FollowingFeed(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	followDomain := newFollowDomain()
	storyDomain := newStoryDomain()

	// User3 follows user1 only, so the following feed shows story1 alone.
	ctxUser3 := testutil.MockContextWithUserID(ctx, testutil.User3.ID)
	_, err := followDomain.Follow(ctxUser3, &model.FollowUserRequest{UserID: testutil.User1.ID})
	require.NoError(t, err)

	feed, err := storyDomain.GetList(ctxUser3, &model.GetStoriesRequest{Following: true})
	require.NoError(t, err)
	require.Len(t, feed.Stories, 1)
	require.Equal(t, testutil.Story1.ID, feed.Stories[0].ID)
}
