package domain

import (
	"context"
	"errors"

	"github.com/immigrant-voices/backend/internal/entity"
	"github.com/immigrant-voices/backend/internal/model"
	"github.com/immigrant-voices/backend/internal/repository"
	"github.com/immigrant-voices/backend/pkg/errorx"
	"github.com/immigrant-voices/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type NotificationDomain interface {
	GetList(context.Context, *model.GetNotificationsRequest) (*model.GetNotificationsResponse, error)
	GetUnreadCount(context.Context, *model.GetUnreadCountRequest) (*model.GetUnreadCountResponse, error)
	Read(context.Context, *model.ReadNotificationRequest) (*model.ReadNotificationResponse, error)
	ReadAll(context.Context, *model.ReadAllNotificationsRequest) (*model.ReadAllNotificationsResponse, error)
	Delete(context.Context, *model.DeleteNotificationRequest) (*model.DeleteNotificationResponse, error)
}

type notificationDomain struct {
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
}

func NewNotificationDomain(
	notificationRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
) NotificationDomain {
	return &notificationDomain{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
	}
}

func (d *notificationDomain) GetList(
	ctx context.Context, req *model.GetNotificationsRequest,
) (*model.GetNotificationsResponse, error) {
	offset, limit, err := pagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	notifications, err := d.notificationRepo.GetList(
		ctx, xcontext.RequestUserID(ctx), req.UnreadOnly, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get notifications: %v", err)
		return nil, errorx.Unknown
	}

	actorIDs := []string{}
	for i := range notifications {
		actorIDs = append(actorIDs, notifications[i].ActorID)
	}

	actors := map[string]*entity.User{}
	if len(actorIDs) > 0 {
		users, err := d.userRepo.GetByIDs(ctx, actorIDs)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get notification actors: %v", err)
			return nil, errorx.Unknown
		}

		for i := range users {
			actors[users[i].ID] = &users[i]
		}
	}

	clientNotifications := []model.Notification{}
	for i := range notifications {
		clientNotifications = append(clientNotifications, model.ConvertNotification(
			&notifications[i], model.ConvertUser(actors[notifications[i].ActorID], false)))
	}

	return &model.GetNotificationsResponse{Notifications: clientNotifications}, nil
}

func (d *notificationDomain) GetUnreadCount(
	ctx context.Context, req *model.GetUnreadCountRequest,
) (*model.GetUnreadCountResponse, error) {
	count, err := d.notificationRepo.CountUnread(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count unread notifications: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetUnreadCountResponse{Count: count}, nil
}

func (d *notificationDomain) Read(
	ctx context.Context, req *model.ReadNotificationRequest,
) (*model.ReadNotificationResponse, error) {
	err := d.notificationRepo.MarkRead(ctx, req.ID, xcontext.RequestUserID(ctx))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found notification")
		}

		xcontext.Logger(ctx).Errorf("Cannot mark notification as read: %v", err)
		return nil, errorx.Unknown
	}

	return &model.ReadNotificationResponse{}, nil
}

func (d *notificationDomain) ReadAll(
	ctx context.Context, req *model.ReadAllNotificationsRequest,
) (*model.ReadAllNotificationsResponse, error) {
	err := d.notificationRepo.MarkAllRead(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot mark all notifications as read: %v", err)
		return nil, errorx.Unknown
	}

	return &model.ReadAllNotificationsResponse{}, nil
}

func (d *notificationDomain) Delete(
	ctx context.Context, req *model.DeleteNotificationRequest,
) (*model.DeleteNotificationResponse, error) {
	err := d.notificationRepo.Delete(ctx, req.ID, xcontext.RequestUserID(ctx))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found notification")
		}

		xcontext.Logger(ctx).Errorf("Cannot delete notification: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteNotificationResponse{}, nil
}
