package entity

import "time"

type Community struct {
	Base
	CreatedBy     string
	CreatedByUser User `gorm:"foreignKey:CreatedBy"`

	Handle       string `gorm:"unique"`
	DisplayName  string
	Introduction string `gorm:"type:longtext"`

	MemberCount   int
	TrendingScore int
}

type CommunityMember struct {
	CreatedAt time.Time

	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	CommunityID string    `gorm:"primaryKey"`
	Community   Community `gorm:"foreignKey:CommunityID;constraint:OnDelete:CASCADE"`
}

type CommunityStats struct {
	CommunityID string    `gorm:"primaryKey"`
	Community   Community `gorm:"foreignKey:CommunityID;constraint:OnDelete:CASCADE"`

	Date time.Time `gorm:"primaryKey"`

	MemberCount int
	StoryCount  int
}
