package entity

import "time"

type Follow struct {
	CreatedAt time.Time

	FollowerID string `gorm:"primaryKey"`
	Follower   User   `gorm:"foreignKey:FollowerID"`

	FollowingID string `gorm:"primaryKey"`
	Following   User   `gorm:"foreignKey:FollowingID"`
}
