package common

import "fmt"

const RedisKeyTrendingTags = "trending:tags"

func RedisKeySuggestedUsers(userID string) string {
	return fmt.Sprintf("suggested:%s", userID)
}

func RedisKeyCommunityStats(communityID, date string) string {
	return fmt.Sprintf("communitystats:%s:%s", communityID, date)
}
