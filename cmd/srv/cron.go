package main

import (
	"github.com/immigrant-voices/backend/internal/domain/cron"
	"github.com/urfave/cli/v2"
)

func (s *srv) startCron(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()
	s.loadRedis()
	s.loadRepos()

	cronJobManager := cron.NewCronJobManager()
	cronJobManager.Register(cron.NewTrendingTagsCronJob(s.tagRepo, s.redisClient))
	cronJobManager.Register(cron.NewCommunityStatsCronJob(
		s.communityRepo, s.communityMemberRepo, s.storyRepo))
	cronJobManager.Start(s.ctx)

	return nil
}
