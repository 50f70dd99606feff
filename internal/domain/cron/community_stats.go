package cron

import (
	"context"
	"time"

	"github.com/immigrant-voices/backend/internal/entity"
	"github.com/immigrant-voices/backend/internal/repository"
	"github.com/immigrant-voices/backend/pkg/dateutil"
	"github.com/immigrant-voices/backend/pkg/xcontext"
)

// CommunityStatsCronJob snapshots daily member and story counts for every
// community and refreshes community trending scores.
type CommunityStatsCronJob struct {
	communityRepo repository.CommunityRepository
	memberRepo    repository.CommunityMemberRepository
	storyRepo     repository.StoryRepository
}

func NewCommunityStatsCronJob(
	communityRepo repository.CommunityRepository,
	memberRepo repository.CommunityMemberRepository,
	storyRepo repository.StoryRepository,
) *CommunityStatsCronJob {
	return &CommunityStatsCronJob{
		communityRepo: communityRepo,
		memberRepo:    memberRepo,
		storyRepo:     storyRepo,
	}
}

func (job *CommunityStatsCronJob) Do(ctx context.Context) {
	communities, err := job.communityRepo.GetAll(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get all communities to set stats: %v", err)
		return
	}

	today := dateutil.Date(time.Now())
	for _, community := range communities {
		memberCount, err := job.memberRepo.Count(ctx, community.ID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot count members of %s: %v", community.ID, err)
			continue
		}

		storyCount, err := job.storyRepo.CountByCommunityMembers(ctx, community.ID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot count stories of %s: %v", community.ID, err)
			continue
		}

		err = job.communityRepo.SetStats(ctx, &entity.CommunityStats{
			CommunityID: community.ID,
			Date:        today,
			MemberCount: int(memberCount),
			StoryCount:  int(storyCount),
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot set stats of community %s: %v", community.ID, err)
			continue
		}

		// Trending follows the day-over-day member growth, floored at the
		// raw story count for brand new communities.
		score := int(storyCount)
		yesterday := today.AddDate(0, 0, -1)
		previous, err := job.communityRepo.GetStats(ctx, community.ID, yesterday, yesterday)
		if err == nil && len(previous) > 0 {
			if growth := int(memberCount) - previous[0].MemberCount; growth > score {
				score = growth
			}
		}

		if err := job.communityRepo.UpdateTrendingScore(ctx, community.ID, score); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot update trending score of %s: %v", community.ID, err)
			continue
		}
	}
}

func (job *CommunityStatsCronJob) RunNow() bool {
	return true
}

func (job *CommunityStatsCronJob) Next() time.Time {
	return dateutil.NextDay(time.Now())
}
