package domain

import (
	"testing"

	"github.com/immigrant-voices/backend/internal/entity"
	"github.com/immigrant-voices/backend/internal/model"
	"github.com/immigrant-voices/backend/internal/repository"
	"github.com/immigrant-voices/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newCommunityDomain() CommunityDomain {
	return NewCommunityDomain(
		repository.NewCommunityRepository(),
		repository.NewCommunityMemberRepository(),
		repository.NewNotificationRepository(),
		&testutil.MockRedisClient{},
	)
}

func Test_communityDomain_CreateAndJoin(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	communityDomain := newCommunityDomain()
	notificationRepo := repository.NewNotificationRepository()

	// User2 creates a community and becomes its first member.
	ctxUser2 := testutil.MockContextWithUserID(ctx, testutil.User2.ID)
	resp, err := communityDomain.Create(ctxUser2, &model.CreateCommunityRequest{
		DisplayName: "Farsi Speakers Berlin",
		Handle:      "farsi-berlin",
	})
	require.NoError(t, err)

	community, err := communityDomain.Get(ctxUser2, &model.GetCommunityRequest{Handle: resp.Handle})
	require.NoError(t, err)
	require.Equal(t, 1, community.MemberCount)
	require.True(t, community.Joined)

	// The handle is now taken.
	_, err = communityDomain.Create(ctxUser2, &model.CreateCommunityRequest{
		DisplayName: "Duplicate", Handle: "farsi-berlin"})
	require.Equal(t, "This handle is already taken", err.Error())

	// User3 joins; the creator is notified and the counter moves.
	ctxUser3 := testutil.MockContextWithUserID(ctx, testutil.User3.ID)
	_, err = communityDomain.Join(ctxUser3, &model.JoinCommunityRequest{Handle: resp.Handle})
	require.NoError(t, err)

	community, err = communityDomain.Get(ctxUser3, &model.GetCommunityRequest{Handle: resp.Handle})
	require.NoError(t, err)
	require.Equal(t, 2, community.MemberCount)
	require.True(t, community.Joined)

	notifications, err := notificationRepo.GetList(ctx, testutil.User2.ID, false, 0, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	require.Equal(t, entity.NotificationCommunityJoin, notifications[0].Kind)

	// Joining twice is rejected.
	_, err = communityDomain.Join(ctxUser3, &model.JoinCommunityRequest{Handle: resp.Handle})
	require.Equal(t, "You already joined this community", err.Error())

	// Leave restores the counter.
	_, err = communityDomain.Leave(ctxUser3, &model.LeaveCommunityRequest{Handle: resp.Handle})
	require.NoError(t, err)

	community, err = communityDomain.Get(ctxUser3, &model.GetCommunityRequest{Handle: resp.Handle})
	require.NoError(t, err)
	require.Equal(t, 1, community.MemberCount)
	require.False(t, community.Joined)

	// Leaving twice has nothing to remove.
	_, err = communityDomain.Leave(ctxUser3, &model.LeaveCommunityRequest{Handle: resp.Handle})
	require.Equal(t, "You are not a member of this community", err.Error())

	// The creator is locked in.
	_, err = communityDomain.Leave(ctxUser2, &model.LeaveCommunityRequest{Handle: resp.Handle})
	require.Equal(t, "The creator cannot leave their own community", err.Error())
}

func Test_communityDomain_Validation(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	communityDomain := newCommunityDomain()
	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.User1.ID)

	_, err := communityDomain.Create(ctxUser1, &model.CreateCommunityRequest{Handle: "x"})
	require.Equal(t, "Not allow an empty display name", err.Error())

	// Handles are lowercase, at least three characters, and cannot start
	// with punctuation.
	for _, handle := range []string{"x", "UPPER", "-nope", "has space"} {
		_, err = communityDomain.Create(ctxUser1, &model.CreateCommunityRequest{
			DisplayName: "Name", Handle: handle})
		require.Equal(t, "Invalid community handle", err.Error())
	}

	_, err = communityDomain.Get(ctx, &model.GetCommunityRequest{Handle: "no-such-community"})
	require.Equal(t, "Not found community", err.Error())
}

func Test_communityDomain_Search(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	communityDomain := newCommunityDomain()

	list, err := communityDomain.GetList(ctx, &model.GetCommunitiesRequest{Q: "toronto"})
	require.NoError(t, err)
	require.Len(t, list.Communities, 1)
	require.Equal(t, testutil.Community1.Handle, list.Communities[0].Handle)

	list, err = communityDomain.GetList(ctx, &model.GetCommunitiesRequest{Q: "nowhere"})
	require.NoError(t, err)
	require.Empty(t, list.Communities)
}
