package cron

import (
	"context"
	"time"

	"github.com/immigrant-voices/backend/internal/common"
	"github.com/immigrant-voices/backend/internal/repository"
	"github.com/immigrant-voices/backend/pkg/dateutil"
	"github.com/immigrant-voices/backend/pkg/xcontext"
	"github.com/immigrant-voices/backend/pkg/xredis"
)

// TrendingTagsCronJob recomputes the trending score of every tag from its
// usage over the last seven days and drops the cached leaderboard.
type TrendingTagsCronJob struct {
	tagRepo     repository.TagRepository
	redisClient xredis.Client
}

func NewTrendingTagsCronJob(
	tagRepo repository.TagRepository,
	redisClient xredis.Client,
) *TrendingTagsCronJob {
	return &TrendingTagsCronJob{tagRepo: tagRepo, redisClient: redisClient}
}

func (job *TrendingTagsCronJob) Do(ctx context.Context) {
	since := dateutil.BeginningOfDay(time.Now()).AddDate(0, 0, -7)

	usage, err := job.tagRepo.CountRecentUsage(ctx, since)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count recent tag usage: %v", err)
		return
	}

	tags, err := job.tagRepo.GetTrending(ctx, 0)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get tags: %v", err)
		return
	}

	for i := range tags {
		score := usage[tags[i].Name]
		if score == tags[i].TrendingScore {
			continue
		}

		if err := job.tagRepo.UpdateTrendingScore(ctx, tags[i].Name, score); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot update trending score of %s: %v", tags[i].Name, err)
			continue
		}
	}

	if err := job.redisClient.Del(ctx, common.RedisKeyTrendingTags); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot invalidate trending tags cache: %v", err)
	}
}

func (job *TrendingTagsCronJob) RunNow() bool {
	return true
}

func (job *TrendingTagsCronJob) Next() time.Time {
	return dateutil.NextDay(time.Now())
}
