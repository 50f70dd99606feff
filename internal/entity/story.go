package entity

import (
	"database/sql"
	"time"
)

type Story struct {
	Base
	AuthorID string `gorm:"index"`
	Author   User   `gorm:"foreignKey:AuthorID"`

	Title    string
	Slug     string `gorm:"unique"`
	Content  string `gorm:"type:longtext"`
	Excerpt  string
	Category string `gorm:"index"`

	// A repost is a full content copy owned by the reposting user. The
	// original id always points at the root original, never at another
	// repost.
	IsRepost        bool
	OriginalStoryID sql.NullString `gorm:"index"`
	RepostComment   string

	RepostsCount int

	PublishedAt time.Time
}
