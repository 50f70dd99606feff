package domain

import (
	"testing"

	"github.com/immigrant-voices/backend/internal/model"
	"github.com/immigrant-voices/backend/internal/repository"
	"github.com/immigrant-voices/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newMessageDomain() MessageDomain {
	return NewMessageDomain(
		repository.NewConversationRepository(),
		repository.NewMessageRepository(),
		repository.NewUserRepository(),
		repository.NewNotificationRepository(),
	)
}

func Test_messageDomain_SendReusesConversation(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	messageDomain := newMessageDomain()
	notificationRepo := repository.NewNotificationRepository()

	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	ctxUser2 := testutil.MockContextWithUserID(ctx, testutil.User2.ID)

	first, err := messageDomain.Send(ctxUser1, &model.SendMessageRequest{
		RecipientID: testutil.User2.ID, Content: "Hey, are you still in Berlin?"})
	require.NoError(t, err)
	require.NotZero(t, first.ID)

	// The reply lands in the same conversation regardless of direction.
	reply, err := messageDomain.Send(ctxUser2, &model.SendMessageRequest{
		RecipientID: testutil.User1.ID, Content: "Yes! Moved last month."})
	require.NoError(t, err)
	require.Equal(t, first.ConversationID, reply.ConversationID)

	// The recipient of each message is notified.
	notifications, err := notificationRepo.GetList(ctx, testutil.User2.ID, false, 0, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	require.Equal(t, testutil.User1.ID, notifications[0].ActorID)

	conversations, err := messageDomain.GetConversations(ctxUser1, &model.GetConversationsRequest{})
	require.NoError(t, err)
	require.Len(t, conversations.Conversations, 1)
	require.Equal(t, testutil.User2.Name, conversations.Conversations[0].Participant.Name)

	// The same conversation shows the other participant to user2.
	conversations, err = messageDomain.GetConversations(ctxUser2, &model.GetConversationsRequest{})
	require.NoError(t, err)
	require.Len(t, conversations.Conversations, 1)
	require.Equal(t, testutil.User1.Name, conversations.Conversations[0].Participant.Name)
}

func Test_messageDomain_SendValidation(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	messageDomain := newMessageDomain()
	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.User1.ID)

	_, err := messageDomain.Send(ctxUser1, &model.SendMessageRequest{
		RecipientID: testutil.User2.ID, Content: "   "})
	require.Equal(t, "Not allow an empty message", err.Error())

	_, err = messageDomain.Send(ctxUser1, &model.SendMessageRequest{
		RecipientID: testutil.User1.ID, Content: "note to self"})
	require.Equal(t, "Not allow messaging yourself", err.Error())

	_, err = messageDomain.Send(ctxUser1, &model.SendMessageRequest{
		RecipientID: "no-such-user", Content: "hello?"})
	require.Equal(t, "Not found user", err.Error())
}

func Test_messageDomain_GetMessagesAndDelete(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	messageDomain := newMessageDomain()
	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	ctxUser2 := testutil.MockContextWithUserID(ctx, testutil.User2.ID)
	ctxUser3 := testutil.MockContextWithUserID(ctx, testutil.User3.ID)

	first, err := messageDomain.Send(ctxUser1, &model.SendMessageRequest{
		RecipientID: testutil.User2.ID, Content: "first"})
	require.NoError(t, err)

	second, err := messageDomain.Send(ctxUser2, &model.SendMessageRequest{
		RecipientID: testutil.User1.ID, Content: "second"})
	require.NoError(t, err)

	messages, err := messageDomain.GetMessages(ctxUser1, &model.GetMessagesRequest{
		ConversationID: first.ConversationID})
	require.NoError(t, err)
	require.Len(t, messages.Messages, 2)

	// Cursor pagination: only messages older than the given id.
	messages, err = messageDomain.GetMessages(ctxUser1, &model.GetMessagesRequest{
		ConversationID: first.ConversationID, Before: second.ID})
	require.NoError(t, err)
	require.Len(t, messages.Messages, 1)
	require.Equal(t, "first", messages.Messages[0].Content)

	// Outsiders cannot read the conversation.
	_, err = messageDomain.GetMessages(ctxUser3, &model.GetMessagesRequest{
		ConversationID: first.ConversationID})
	require.Equal(t, "You are not in this conversation", err.Error())

	_, err = messageDomain.GetMessages(ctxUser1, &model.GetMessagesRequest{
		ConversationID: "no-such-conversation"})
	require.Equal(t, "Not found conversation", err.Error())

	// Only the sender can delete their message.
	_, err = messageDomain.Delete(ctxUser2, &model.DeleteMessageRequest{ID: first.ID})
	require.Equal(t, "Not found message", err.Error())

	_, err = messageDomain.Delete(ctxUser1, &model.DeleteMessageRequest{ID: first.ID})
	require.NoError(t, err)

	messages, err = messageDomain.GetMessages(ctxUser1, &model.GetMessagesRequest{
		ConversationID: first.ConversationID})
	require.NoError(t, err)
	require.Len(t, messages.Messages, 1)
}
