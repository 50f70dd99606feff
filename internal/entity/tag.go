package entity

import "time"

type Tag struct {
	Name      string `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	UsageCount    int
	TrendingScore int
}

type StoryTag struct {
	StoryID string `gorm:"primaryKey"`
	Story   Story  `gorm:"foreignKey:StoryID;constraint:OnDelete:CASCADE"`

	TagName string `gorm:"primaryKey"`
	Tag     Tag    `gorm:"foreignKey:TagName"`
}
