package entity

type GlobalRole string

const (
	RoleSuperAdmin GlobalRole = "SUPER_ADMIN"
	RoleAdmin      GlobalRole = "ADMIN"
	RoleUser       GlobalRole = "USER"
)

var GlobalAdminRoles = []GlobalRole{RoleSuperAdmin, RoleAdmin}

type User struct {
	Base
	Name         string `gorm:"unique"`
	Email        string `gorm:"unique"`
	PasswordHash string
	Bio          string
	AvatarURL    string
	CountryFrom  string
	CountryNow   string
	Role         GlobalRole `gorm:"default:USER"`

	// Maintained only by follow/unfollow transitions, never recomputed on
	// the read path.
	FollowersCount int
	FollowingCount int
}
