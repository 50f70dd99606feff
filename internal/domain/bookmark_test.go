package domain

import (
	"testing"

	"github.com/immigrant-voices/backend/internal/model"
	"github.com/immigrant-voices/backend/internal/repository"
	"github.com/immigrant-voices/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_bookmarkDomain_FullScenario(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	bookmarkDomain := NewBookmarkDomain(
		repository.NewBookmarkRepository(),
		repository.NewStoryRepository(),
		repository.NewUserRepository(),
		repository.NewLikeRepository(),
		repository.NewCommentRepository(),
		repository.NewTagRepository(),
	)
	notificationRepo := repository.NewNotificationRepository()

	ctxUser2 := testutil.MockContextWithUserID(ctx, testutil.User2.ID)

	// Bookmark twice; the second call is a no-op.
	_, err := bookmarkDomain.Bookmark(ctxUser2, &model.BookmarkStoryRequest{StoryID: testutil.Story1.ID})
	require.NoError(t, err)
	_, err = bookmarkDomain.Bookmark(ctxUser2, &model.BookmarkStoryRequest{StoryID: testutil.Story1.ID})
	require.NoError(t, err)

	bookmarks, err := bookmarkDomain.GetBookmarks(ctxUser2, &model.GetBookmarksRequest{})
	require.NoError(t, err)
	require.Len(t, bookmarks.Stories, 1)
	require.Equal(t, testutil.Story1.ID, bookmarks.Stories[0].ID)
	require.True(t, bookmarks.Stories[0].Bookmarked)

	// Bookmarks are private, the author is never notified.
	notifications, err := notificationRepo.GetList(ctx, testutil.User1.ID, false, 0, 10)
	require.NoError(t, err)
	require.Empty(t, notifications)

	// Remove the bookmark.
	_, err = bookmarkDomain.Unbookmark(ctxUser2, &model.UnbookmarkStoryRequest{StoryID: testutil.Story1.ID})
	require.NoError(t, err)

	bookmarks, err = bookmarkDomain.GetBookmarks(ctxUser2, &model.GetBookmarksRequest{})
	require.NoError(t, err)
	require.Empty(t, bookmarks.Stories)

	// Unknown story.
	_, err = bookmarkDomain.Bookmark(ctxUser2, &model.BookmarkStoryRequest{StoryID: "no-such-story"})
	require.Equal(t, "Not found story", err.Error())
}
