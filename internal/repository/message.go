package repository

import (
	"context"

	"github.com/immigrant-voices/backend/internal/entity"
	"github.com/immigrant-voices/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	GetByID(ctx context.Context, id int64) (*entity.Message, error)
	// GetList pages backwards in time; before is an exclusive snowflake
	// cursor, zero means latest.
	GetList(ctx context.Context, conversationID string, before int64, limit int) ([]entity.Message, error)
	GetLastByConversationIDs(ctx context.Context, conversationIDs []string) (map[string]entity.Message, error)
	Delete(ctx context.Context, id int64, senderID string) error
}

type messageRepository struct{}

func NewMessageRepository() *messageRepository {
	return &messageRepository{}
}

func (r *messageRepository) Create(ctx context.Context, message *entity.Message) error {
	return xcontext.DB(ctx).Create(message).Error
}

func (r *messageRepository) GetByID(ctx context.Context, id int64) (*entity.Message, error) {
	var result entity.Message
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *messageRepository) GetList(
	ctx context.Context, conversationID string, before int64, limit int,
) ([]entity.Message, error) {
	tx := xcontext.DB(ctx).Where("conversation_id=?", conversationID)
	if before > 0 {
		tx = tx.Where("id < ?", before)
	}

	var result []entity.Message
	err := tx.Order("id DESC").Limit(limit).Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *messageRepository) GetLastByConversationIDs(
	ctx context.Context, conversationIDs []string,
) (map[string]entity.Message, error) {
	var rows []entity.Message
	err := xcontext.DB(ctx).
		Where("conversation_id IN (?)", conversationIDs).
		Where(`id IN (
			SELECT MAX(id) FROM messages
			WHERE conversation_id IN (?)
			GROUP BY conversation_id
		)`, conversationIDs).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	result := map[string]entity.Message{}
	for _, row := range rows {
		result[row.ConversationID] = row
	}

	return result, nil
}

func (r *messageRepository) Delete(ctx context.Context, id int64, senderID string) error {
	tx := xcontext.DB(ctx).
		Delete(&entity.Message{}, "id=? AND sender_id=?", id, senderID)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
