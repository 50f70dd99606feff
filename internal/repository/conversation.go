package repository

import (
	"context"
	"time"

	"github.com/immigrant-voices/backend/internal/entity"
	"github.com/immigrant-voices/backend/pkg/xcontext"
)

type ConversationRepository interface {
	Create(ctx context.Context, conversation *entity.Conversation) error
	GetByID(ctx context.Context, id string) (*entity.Conversation, error)
	GetByUserPair(ctx context.Context, user1ID, user2ID string) (*entity.Conversation, error)
	GetListByUserID(ctx context.Context, userID string, offset, limit int) ([]entity.Conversation, error)
	Touch(ctx context.Context, id string, at time.Time) error
}

type conversationRepository struct{}

func NewConversationRepository() *conversationRepository {
	return &conversationRepository{}
}

func (r *conversationRepository) Create(ctx context.Context, conversation *entity.Conversation) error {
	return xcontext.DB(ctx).Create(conversation).Error
}

func (r *conversationRepository) GetByID(ctx context.Context, id string) (*entity.Conversation, error) {
	var result entity.Conversation
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

// GetByUserPair expects the pair in canonical order (user1ID < user2ID).
func (r *conversationRepository) GetByUserPair(
	ctx context.Context, user1ID, user2ID string,
) (*entity.Conversation, error) {
	var result entity.Conversation
	err := xcontext.DB(ctx).
		Take(&result, "user1_id=? AND user2_id=?", user1ID, user2ID).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *conversationRepository) GetListByUserID(
	ctx context.Context, userID string, offset, limit int,
) ([]entity.Conversation, error) {
	var result []entity.Conversation
	err := xcontext.DB(ctx).
		Where("user1_id=? OR user2_id=?", userID, userID).
		Order("last_message_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *conversationRepository) Touch(ctx context.Context, id string, at time.Time) error {
	return xcontext.DB(ctx).Model(&entity.Conversation{}).
		Where("id=?", id).
		Update("last_message_at", at).Error
}
