package entity

import "time"

// Repost tracks that a user reposted a story. It is distinct from the cloned
// Story row it references; one repost per (user, story) pair.
type Repost struct {
	CreatedAt time.Time

	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	StoryID string `gorm:"primaryKey"`
	Story   Story  `gorm:"foreignKey:StoryID;constraint:OnDelete:CASCADE"`

	RepostStoryID string `gorm:"unique"`
	RepostStory   Story  `gorm:"foreignKey:RepostStoryID;constraint:OnDelete:CASCADE"`

	Comment string
}
