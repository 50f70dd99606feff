package repository

import (
	"context"

	"github.com/immigrant-voices/backend/internal/entity"
	"github.com/immigrant-voices/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	GetList(ctx context.Context, userID string, unreadOnly bool, offset, limit int) ([]entity.Notification, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, id, userID string) error
	MarkAllRead(ctx context.Context, userID string) error
	Delete(ctx context.Context, id, userID string) error
}

type notificationRepository struct{}

func NewNotificationRepository() *notificationRepository {
	return &notificationRepository{}
}

func (r *notificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	return xcontext.DB(ctx).Create(notification).Error
}

func (r *notificationRepository) GetList(
	ctx context.Context, userID string, unreadOnly bool, offset, limit int,
) ([]entity.Notification, error) {
	tx := xcontext.DB(ctx).Where("user_id=?", userID)
	if unreadOnly {
		tx = tx.Where("is_read=false")
	}

	var result []entity.Notification
	err := tx.Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.Notification{}).
		Where("user_id=? AND is_read=false", userID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id, userID string) error {
	var notification entity.Notification
	err := xcontext.DB(ctx).Select("id").
		Take(&notification, "id=? AND user_id=?", id, userID).Error
	if err != nil {
		return err
	}

	// MySQL reports changed rows rather than matched rows, so marking an
	// already-read notification updates zero rows. That is not an error.
	return xcontext.DB(ctx).Model(&entity.Notification{}).
		Where("id=? AND user_id=?", id, userID).
		Update("is_read", true).Error
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID string) error {
	return xcontext.DB(ctx).Model(&entity.Notification{}).
		Where("user_id=? AND is_read=false", userID).
		Update("is_read", true).Error
}

func (r *notificationRepository) Delete(ctx context.Context, id, userID string) error {
	tx := xcontext.DB(ctx).
		Delete(&entity.Notification{}, "id=? AND user_id=?", id, userID)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
