package entity

import "database/sql"

type Comment struct {
	Base
	StoryID string `gorm:"index"`
	Story   Story  `gorm:"foreignKey:StoryID;constraint:OnDelete:CASCADE"`

	UserID string `gorm:"index"`
	User   User   `gorm:"foreignKey:UserID"`

	Content string `gorm:"type:text"`

	// Replies reference their parent comment. No depth limit is enforced.
	ParentID sql.NullString `gorm:"index"`
}
