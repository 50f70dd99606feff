package domain

import (
	"testing"

	"github.com/immigrant-voices/backend/internal/entity"
	"github.com/immigrant-voices/backend/internal/model"
	"github.com/immigrant-voices/backend/internal/repository"
	"github.com/immigrant-voices/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newCommentDomain() CommentDomain {
	return NewCommentDomain(
		repository.NewCommentRepository(),
		repository.NewStoryRepository(),
		repository.NewUserRepository(),
		repository.NewNotificationRepository(),
	)
}

func Test_commentDomain_CreateAndReply(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	commentDomain := newCommentDomain()
	notificationRepo := repository.NewNotificationRepository()

	// User2 comments on user1's story; the author is notified.
	ctxUser2 := testutil.MockContextWithUserID(ctx, testutil.User2.ID)
	comment, err := commentDomain.Create(ctxUser2, &model.CreateCommentRequest{
		StoryID: testutil.Story1.ID, Content: "This hit home."})
	require.NoError(t, err)

	notifications, err := notificationRepo.GetList(ctx, testutil.User1.ID, false, 0, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	require.Equal(t, entity.NotificationComment, notifications[0].Kind)
	require.Equal(t, comment.ID, notifications[0].CommentID.String)

	// A reply still notifies the story author only, never the parent
	// commenter.
	ctxUser3 := testutil.MockContextWithUserID(ctx, testutil.User3.ID)
	_, err = commentDomain.Create(ctxUser3, &model.CreateCommentRequest{
		StoryID: testutil.Story1.ID, Content: "Same here.", ParentID: comment.ID})
	require.NoError(t, err)

	notifications, err = notificationRepo.GetList(ctx, testutil.User1.ID, false, 0, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 2)

	notifications, err = notificationRepo.GetList(ctx, testutil.User2.ID, false, 0, 10)
	require.NoError(t, err)
	require.Empty(t, notifications)

	// The author replying on their own story notifies nobody.
	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	_, err = commentDomain.Create(ctxUser1, &model.CreateCommentRequest{
		StoryID: testutil.Story1.ID, Content: "Thank you.", ParentID: comment.ID})
	require.NoError(t, err)

	notifications, err = notificationRepo.GetList(ctx, testutil.User1.ID, false, 0, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 2)

	comments, err := commentDomain.GetList(ctx, &model.GetCommentsRequest{StoryID: testutil.Story1.ID})
	require.NoError(t, err)
	require.Len(t, comments.Comments, 3)
}

func Test_commentDomain_Validation(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	commentDomain := newCommentDomain()
	ctxUser2 := testutil.MockContextWithUserID(ctx, testutil.User2.ID)

	_, err := commentDomain.Create(ctxUser2, &model.CreateCommentRequest{
		StoryID: testutil.Story1.ID, Content: "   "})
	require.Equal(t, "Not allow an empty comment", err.Error())

	_, err = commentDomain.Create(ctxUser2, &model.CreateCommentRequest{
		StoryID: "no-such-story", Content: "hello"})
	require.Equal(t, "Not found story", err.Error())

	_, err = commentDomain.Create(ctxUser2, &model.CreateCommentRequest{
		StoryID: testutil.Story1.ID, Content: "hello", ParentID: "no-such-comment"})
	require.Equal(t, "Not found parent comment", err.Error())

	// A reply must stay on the same story as its parent.
	parent, err := commentDomain.Create(ctxUser2, &model.CreateCommentRequest{
		StoryID: testutil.Story2.ID, Content: "on another story"})
	require.NoError(t, err)

	_, err = commentDomain.Create(ctxUser2, &model.CreateCommentRequest{
		StoryID: testutil.Story1.ID, Content: "cross reply", ParentID: parent.ID})
	require.Equal(t, "Parent comment belongs to another story", err.Error())
}

func Test_commentDomain_Delete(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	commentDomain := newCommentDomain()

	bystander := &entity.User{
		Base:  entity.Base{ID: "bystander"},
		Name:  "bystander",
		Email: "bystander@example.com",
		Role:  entity.RoleUser,
	}
	require.NoError(t, repository.NewUserRepository().Create(ctx, bystander))

	ctxUser2 := testutil.MockContextWithUserID(ctx, testutil.User2.ID)
	comment, err := commentDomain.Create(ctxUser2, &model.CreateCommentRequest{
		StoryID: testutil.Story1.ID, Content: "delete me"})
	require.NoError(t, err)

	// A bystander cannot delete it.
	ctxBystander := testutil.MockContextWithUserID(ctx, bystander.ID)
	_, err = commentDomain.Delete(ctxBystander, &model.DeleteCommentRequest{ID: comment.ID})
	require.Equal(t, "You cannot delete this comment", err.Error())

	// The story author can moderate comments on their own story.
	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	_, err = commentDomain.Delete(ctxUser1, &model.DeleteCommentRequest{ID: comment.ID})
	require.NoError(t, err)

	// An admin can moderate any comment.
	second, err := commentDomain.Create(ctxUser2, &model.CreateCommentRequest{
		StoryID: testutil.Story1.ID, Content: "delete me too"})
	require.NoError(t, err)

	ctxAdmin := testutil.MockContextWithUserID(ctx, testutil.User3.ID)
	_, err = commentDomain.Delete(ctxAdmin, &model.DeleteCommentRequest{ID: second.ID})
	require.NoError(t, err)

	comments, err := commentDomain.GetList(ctx, &model.GetCommentsRequest{StoryID: testutil.Story1.ID})
	require.NoError(t, err)
	require.Empty(t, comments.Comments)
}
