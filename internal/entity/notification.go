package entity

import (
	"database/sql"
	"time"

	"github.com/immigrant-voices/backend/pkg/enum"
)

type NotificationKind string

var (
	NotificationLike          = enum.New(NotificationKind("like"))
	NotificationComment       = enum.New(NotificationKind("comment"))
	NotificationRepost        = enum.New(NotificationKind("repost"))
	NotificationFollow        = enum.New(NotificationKind("follow"))
	NotificationCommunityJoin = enum.New(NotificationKind("community_join"))
	NotificationMessage       = enum.New(NotificationKind("message"))
	NotificationApplication   = enum.New(NotificationKind("application"))
)

// Notification is append-only; is_read is its only mutable field.
type Notification struct {
	ID        string `gorm:"primarykey"`
	CreatedAt time.Time

	UserID string `gorm:"index"`
	User   User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	ActorID string
	Actor   User `gorm:"foreignKey:ActorID"`

	Kind NotificationKind

	StoryID   sql.NullString
	CommentID sql.NullString

	IsRead bool `gorm:"default:false;index"`
}
