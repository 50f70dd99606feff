package entity

import "time"

// Conversation is an unordered user pair; User1ID is always the smaller id so
// the unique index catches both orderings.
type Conversation struct {
	Base
	User1ID string `gorm:"uniqueIndex:idx_conversation_pair"`
	User1   User   `gorm:"foreignKey:User1ID"`

	User2ID string `gorm:"uniqueIndex:idx_conversation_pair"`
	User2   User   `gorm:"foreignKey:User2ID"`

	LastMessageAt time.Time `gorm:"index"`
}

type Message struct {
	ID        int64 `gorm:"primaryKey"`
	CreatedAt time.Time

	ConversationID string       `gorm:"index"`
	Conversation   Conversation `gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE"`

	SenderID string
	Sender   User `gorm:"foreignKey:SenderID"`

	Content string `gorm:"type:text"`
}

func (t *Message) TableName() string {
	return "messages"
}
