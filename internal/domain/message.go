package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/immigrant-voices/backend/internal/entity"
	"github.com/immigrant-voices/backend/internal/model"
	"github.com/immigrant-voices/backend/internal/repository"
	"github.com/immigrant-voices/backend/pkg/errorx"
	"github.com/immigrant-voices/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type MessageDomain interface {
	Send(context.Context, *model.SendMessageRequest) (*model.SendMessageResponse, error)
	GetConversations(context.Context, *model.GetConversationsRequest) (*model.GetConversationsResponse, error)
	GetMessages(context.Context, *model.GetMessagesRequest) (*model.GetMessagesResponse, error)
	Delete(context.Context, *model.DeleteMessageRequest) (*model.DeleteMessageResponse, error)
}

type messageDomain struct {
	conversationRepo repository.ConversationRepository
	messageRepo      repository.MessageRepository
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
}

func NewMessageDomain(
	conversationRepo repository.ConversationRepository,
	messageRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	notificationRepo repository.NotificationRepository,
) MessageDomain {
	return &messageDomain{
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
	}
}

func (d *messageDomain) Send(
	ctx context.Context, req *model.SendMessageRequest,
) (*model.SendMessageResponse, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty message")
	}

	senderID := xcontext.RequestUserID(ctx)
	if senderID == req.RecipientID {
		return nil, errorx.New(errorx.BadRequest, "Not allow messaging yourself")
	}

	if _, err := d.userRepo.GetByID(ctx, req.RecipientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get recipient: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	conversation, err := d.getOrCreateConversation(ctx, senderID, req.RecipientID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	message := &entity.Message{
		ID:             xcontext.SnowFlake(ctx).Generate().Int64(),
		ConversationID: conversation.ID,
		SenderID:       senderID,
		Content:        req.Content,
	}

	if err := d.messageRepo.Create(ctx, message); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create message: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.conversationRepo.Touch(ctx, conversation.ID, now); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot touch conversation: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	fanoutNotification(ctx, d.notificationRepo, &entity.Notification{
		UserID:  req.RecipientID,
		ActorID: senderID,
		Kind:    entity.NotificationMessage,
	})

	return &model.SendMessageResponse{
		ID:             message.ID,
		ConversationID: conversation.ID,
	}, nil
}

func (d *messageDomain) GetConversations(
	ctx context.Context, req *model.GetConversationsRequest,
) (*model.GetConversationsResponse, error) {
	offset, limit, err := pagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	userID := xcontext.RequestUserID(ctx)
	conversations, err := d.conversationRepo.GetListByUserID(ctx, userID, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get conversations: %v", err)
		return nil, errorx.Unknown
	}

	participantIDs := []string{}
	for i := range conversations {
		participantIDs = append(participantIDs, otherParticipant(&conversations[i], userID))
	}

	participants := map[string]*entity.User{}
	if len(participantIDs) > 0 {
		users, err := d.userRepo.GetByIDs(ctx, participantIDs)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get participants: %v", err)
			return nil, errorx.Unknown
		}

		for i := range users {
			participants[users[i].ID] = &users[i]
		}
	}

	clientConversations := []model.Conversation{}
	for i := range conversations {
		participantID := otherParticipant(&conversations[i], userID)
		clientConversations = append(clientConversations, model.ConvertConversation(
			&conversations[i], model.ConvertUser(participants[participantID], false)))
	}

	return &model.GetConversationsResponse{Conversations: clientConversations}, nil
}

func (d *messageDomain) GetMessages(
	ctx context.Context, req *model.GetMessagesRequest,
) (*model.GetMessagesResponse, error) {
	_, limit, err := pagination(ctx, 0, req.Limit)
	if err != nil {
		return nil, err
	}

	conversation, err := d.conversationRepo.GetByID(ctx, req.ConversationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found conversation")
		}

		xcontext.Logger(ctx).Errorf("Cannot get conversation: %v", err)
		return nil, errorx.Unknown
	}

	userID := xcontext.RequestUserID(ctx)
	if conversation.User1ID != userID && conversation.User2ID != userID {
		return nil, errorx.New(errorx.PermissionDenied, "You are not in this conversation")
	}

	messages, err := d.messageRepo.GetList(ctx, conversation.ID, req.Before, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get messages: %v", err)
		return nil, errorx.Unknown
	}

	clientMessages := []model.Message{}
	for i := range messages {
		clientMessages = append(clientMessages, model.ConvertMessage(&messages[i]))
	}

	return &model.GetMessagesResponse{Messages: clientMessages}, nil
}

func (d *messageDomain) Delete(
	ctx context.Context, req *model.DeleteMessageRequest,
) (*model.DeleteMessageResponse, error) {
	err := d.messageRepo.Delete(ctx, req.ID, xcontext.RequestUserID(ctx))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found message")
		}

		xcontext.Logger(ctx).Errorf("Cannot delete message: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteMessageResponse{}, nil
}

func (d *messageDomain) getOrCreateConversation(
	ctx context.Context, senderID, recipientID string,
) (*entity.Conversation, error) {
	user1ID, user2ID := senderID, recipientID
	if user1ID > user2ID {
		user1ID, user2ID = user2ID, user1ID
	}

	conversation, err := d.conversationRepo.GetByUserPair(ctx, user1ID, user2ID)
	if err == nil {
		return conversation, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get conversation: %v", err)
		return nil, errorx.Unknown
	}

	conversation = &entity.Conversation{
		Base:          entity.Base{ID: uuid.NewString()},
		User1ID:       user1ID,
		User2ID:       user2ID,
		LastMessageAt: time.Now(),
	}

	if err := d.conversationRepo.Create(ctx, conversation); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create conversation: %v", err)
		return nil, errorx.Unknown
	}

	return conversation, nil
}

func otherParticipant(conversation *entity.Conversation, userID string) string {
	if conversation.User1ID == userID {
		return conversation.User2ID
	}

	return conversation.User1ID
}
