package entity

import "time"

type Like struct {
	CreatedAt time.Time

	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	StoryID string `gorm:"primaryKey"`
	Story   Story  `gorm:"foreignKey:StoryID;constraint:OnDelete:CASCADE"`
}
