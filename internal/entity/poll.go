package entity

import (
	"database/sql"
	"time"
)

type Poll struct {
	Base
	StoryID string `gorm:"unique"`
	Story   Story  `gorm:"foreignKey:StoryID;constraint:OnDelete:CASCADE"`

	Question  string
	ExpiresAt sql.NullTime
}

type PollOption struct {
	Base
	PollID string `gorm:"index"`
	Poll   Poll   `gorm:"foreignKey:PollID;constraint:OnDelete:CASCADE"`

	Content      string
	DisplayOrder int

	VotesCount int
}

// PollVote keys on (poll, user) directly, so one vote per poll per user is a
// database guarantee rather than a check-then-act window.
type PollVote struct {
	CreatedAt time.Time

	PollID string `gorm:"primaryKey"`
	Poll   Poll   `gorm:"foreignKey:PollID;constraint:OnDelete:CASCADE"`

	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	OptionID string     `gorm:"index"`
	Option   PollOption `gorm:"foreignKey:OptionID"`
}
