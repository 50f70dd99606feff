package migration

import (
	"context"

	"github.com/immigrant-voices/backend/pkg/xcontext"
)

// RecountFollows rebuilds the denormalized follow counters from the follows
// table. Normal operation maintains them inside the follow/unfollow
// transactions; this is the repair path after manual data surgery.
func RecountFollows(ctx context.Context) error {
	db := xcontext.DB(ctx)

	err := db.Exec(`
		UPDATE users SET followers_count = (
			SELECT COUNT(*) FROM follows WHERE follows.following_id = users.id
		)`).Error
	if err != nil {
		return err
	}

	return db.Exec(`
		UPDATE users SET following_count = (
			SELECT COUNT(*) FROM follows WHERE follows.follower_id = users.id
		)`).Error
}
