package domain

import (
	"testing"

	"github.com/immigrant-voices/backend/internal/model"
	"github.com/immigrant-voices/backend/internal/repository"
	"github.com/immigrant-voices/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_notificationDomain_FullScenario(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	notificationDomain := NewNotificationDomain(
		repository.NewNotificationRepository(), repository.NewUserRepository())
	likeDomain := newLikeDomain()
	followDomain := newFollowDomain()

	// Produce two notifications for user1.
	ctxUser2 := testutil.MockContextWithUserID(ctx, testutil.User2.ID)
	_, err := likeDomain.Like(ctxUser2, &model.LikeStoryRequest{StoryID: testutil.Story1.ID})
	require.NoError(t, err)
	_, err = followDomain.Follow(ctxUser2, &model.FollowUserRequest{UserID: testutil.User1.ID})
	require.NoError(t, err)

	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	count, err := notificationDomain.GetUnreadCount(ctxUser1, &model.GetUnreadCountRequest{})
	require.NoError(t, err)
	require.EqualValues(t, 2, count.Count)

	list, err := notificationDomain.GetList(ctxUser1, &model.GetNotificationsRequest{})
	require.NoError(t, err)
	require.Len(t, list.Notifications, 2)
	require.Equal(t, testutil.User2.Name, list.Notifications[0].Actor.Name)

	// Mark one as read; repeating it is accepted.
	_, err = notificationDomain.Read(ctxUser1, &model.ReadNotificationRequest{ID: list.Notifications[0].ID})
	require.NoError(t, err)
	_, err = notificationDomain.Read(ctxUser1, &model.ReadNotificationRequest{ID: list.Notifications[0].ID})
	require.NoError(t, err)

	unread, err := notificationDomain.GetList(ctxUser1, &model.GetNotificationsRequest{UnreadOnly: true})
	require.NoError(t, err)
	require.Len(t, unread.Notifications, 1)

	// Mark the rest as read.
	_, err = notificationDomain.ReadAll(ctxUser1, &model.ReadAllNotificationsRequest{})
	require.NoError(t, err)

	count, err = notificationDomain.GetUnreadCount(ctxUser1, &model.GetUnreadCountRequest{})
	require.NoError(t, err)
	require.EqualValues(t, 0, count.Count)

	// Another user cannot touch user1's notifications.
	_, err = notificationDomain.Read(ctxUser2, &model.ReadNotificationRequest{ID: list.Notifications[0].ID})
	require.Equal(t, "Not found notification", err.Error())
	_, err = notificationDomain.Delete(ctxUser2, &model.DeleteNotificationRequest{ID: list.Notifications[0].ID})
	require.Equal(t, "Not found notification", err.Error())

	// The owner can delete.
	_, err = notificationDomain.Delete(ctxUser1, &model.DeleteNotificationRequest{ID: list.Notifications[0].ID})
	require.NoError(t, err)

	list, err = notificationDomain.GetList(ctxUser1, &model.GetNotificationsRequest{})
	require.NoError(t, err)
	require.Len(t, list.Notifications, 1)
}
