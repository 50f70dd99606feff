package main

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/immigrant-voices/backend/config"
	"github.com/immigrant-voices/backend/internal/domain"
	"github.com/immigrant-voices/backend/internal/repository"
	"github.com/immigrant-voices/backend/pkg/logger"
	"github.com/immigrant-voices/backend/pkg/router"
	"github.com/immigrant-voices/backend/pkg/xcontext"
	"github.com/immigrant-voices/backend/pkg/xredis"
	"github.com/urfave/cli/v2"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	app *cli.App
	ctx context.Context

	userRepo            repository.UserRepository
	refreshTokenRepo    repository.RefreshTokenRepository
	storyRepo           repository.StoryRepository
	likeRepo            repository.LikeRepository
	bookmarkRepo        repository.BookmarkRepository
	commentRepo         repository.CommentRepository
	repostRepo          repository.RepostRepository
	followRepo          repository.FollowRepository
	notificationRepo    repository.NotificationRepository
	pollRepo            repository.PollRepository
	tagRepo             repository.TagRepository
	communityRepo       repository.CommunityRepository
	communityMemberRepo repository.CommunityMemberRepository
	jobRepo             repository.JobRepository
	jobApplicationRepo  repository.JobApplicationRepository
	conversationRepo    repository.ConversationRepository
	messageRepo         repository.MessageRepository

	authDomain         domain.AuthDomain
	userDomain         domain.UserDomain
	storyDomain        domain.StoryDomain
	likeDomain         domain.LikeDomain
	bookmarkDomain     domain.BookmarkDomain
	commentDomain      domain.CommentDomain
	repostDomain       domain.RepostDomain
	followDomain       domain.FollowDomain
	notificationDomain domain.NotificationDomain
	pollDomain         domain.PollDomain
	communityDomain    domain.CommunityDomain
	jobDomain          domain.JobDomain
	messageDomain      domain.MessageDomain

	router *router.Router
	server *http.Server

	db            *gorm.DB
	redisClient   xredis.Client
	logger        logger.Logger
	snowflakeNode *snowflake.Node

	configs *config.Configs
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return fallback
}

func getEnvDuration(key, fallback string) time.Duration {
	d, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		panic(err)
	}

	return d
}

func getEnvInt(key, fallback string) int {
	n, err := strconv.Atoi(getEnv(key, fallback))
	if err != nil {
		panic(err)
	}

	return n
}

func (s *srv) loadConfig() {
	s.configs = &config.Configs{
		Env: getEnv("ENV", "local"),
		Database: config.DatabaseConfigs{
			Host:     getEnv("MYSQL_HOST", "mysql"),
			Port:     getEnv("MYSQL_PORT", "3306"),
			User:     getEnv("MYSQL_USER", "iv"),
			Password: getEnv("MYSQL_PASSWORD", "iv"),
			Database: getEnv("MYSQL_DATABASE", "immigrant_voices"),
		},
		ApiServer: config.ServerConfigs{
			Host:         getEnv("API_HOST", ""),
			Port:         getEnv("API_PORT", "8080"),
			Cert:         getEnv("API_SERVER_CERT", ""),
			Key:          getEnv("API_SERVER_KEY", ""),
			DefaultLimit: getEnvInt("API_DEFAULT_LIMIT", "20"),
			MaxLimit:     getEnvInt("API_MAX_LIMIT", "50"),
		},
		Auth: config.AuthConfigs{
			TokenSecret: getEnv("TOKEN_SECRET", "token_secret"),
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: getEnvDuration("ACCESS_TOKEN_DURATION", "15m"),
			},
			RefreshToken: config.TokenConfigs{
				Name:       "refresh_token",
				Expiration: getEnvDuration("REFRESH_TOKEN_DURATION", "720h"),
			},
		},
		Session: config.SessionConfigs{
			Secret: getEnv("AUTH_SESSION_SECRET", "session_secret"),
			Name:   "auth_session",
		},
		Redis: config.RedisConfigs{
			Addr: getEnv("REDIS_ADDRESS", ""),
		},
		Cache: config.CacheConfigs{
			TrendingTagsTTL:   getEnvDuration("TRENDING_TAGS_CACHE_TTL", "10m"),
			SuggestedUsersTTL: getEnvDuration("SUGGESTED_USERS_CACHE_TTL", "1h"),
			CommunityStatsTTL: getEnvDuration("COMMUNITY_STATS_CACHE_TTL", "1h"),
		},
	}

	s.ctx = xcontext.WithConfigs(context.Background(), *s.configs)
}

func (s *srv) loadLogger() {
	level := logger.INFO
	if s.configs.Env == "local" {
		level = logger.DEBUG
	}

	s.logger = logger.NewLogger(level)
	s.ctx = xcontext.WithLogger(s.ctx, s.logger)
}

func (s *srv) loadDatabase() {
	var err error
	s.db, err = gorm.Open(mysql.New(mysql.Config{
		DSN:                       s.configs.Database.ConnectionString(),
		DefaultStringSize:         256,
		DisableDatetimePrecision:  true,
		DontSupportRenameIndex:    true,
		DontSupportRenameColumn:   true,
		SkipInitializeWithVersion: false,
	}), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithDB(s.ctx, s.db)
}

func (s *srv) loadRedis() {
	if s.configs.Redis.Addr == "" {
		s.logger.Warnf("No redis address configured, caching is disabled")
		s.redisClient = xredis.NewNoopClient()
		return
	}

	client, err := xredis.NewClient(s.ctx)
	if err != nil {
		s.logger.Warnf("Cannot connect to redis, caching is disabled: %v", err)
		s.redisClient = xredis.NewNoopClient()
		return
	}

	s.redisClient = client
}

func (s *srv) loadSnowFlake() {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}

	s.snowflakeNode = node
	s.ctx = xcontext.WithSnowFlake(s.ctx, s.snowflakeNode)
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.refreshTokenRepo = repository.NewRefreshTokenRepository()
	s.storyRepo = repository.NewStoryRepository()
	s.likeRepo = repository.NewLikeRepository()
	s.bookmarkRepo = repository.NewBookmarkRepository()
	s.commentRepo = repository.NewCommentRepository()
	s.repostRepo = repository.NewRepostRepository()
	s.followRepo = repository.NewFollowRepository()
	s.notificationRepo = repository.NewNotificationRepository()
	s.pollRepo = repository.NewPollRepository()
	s.tagRepo = repository.NewTagRepository()
	s.communityRepo = repository.NewCommunityRepository()
	s.communityMemberRepo = repository.NewCommunityMemberRepository()
	s.jobRepo = repository.NewJobRepository()
	s.jobApplicationRepo = repository.NewJobApplicationRepository()
	s.conversationRepo = repository.NewConversationRepository()
	s.messageRepo = repository.NewMessageRepository()
}

func (s *srv) loadDomains() {
	s.authDomain = domain.NewAuthDomain(s.userRepo, s.refreshTokenRepo)
	s.userDomain = domain.NewUserDomain(s.userRepo, s.redisClient)
	s.storyDomain = domain.NewStoryDomain(s.storyRepo, s.userRepo, s.likeRepo,
		s.bookmarkRepo, s.commentRepo, s.tagRepo, s.pollRepo, s.repostRepo, s.redisClient)
	s.likeDomain = domain.NewLikeDomain(s.likeRepo, s.storyRepo, s.userRepo,
		s.bookmarkRepo, s.commentRepo, s.tagRepo, s.notificationRepo)
	s.bookmarkDomain = domain.NewBookmarkDomain(s.bookmarkRepo, s.storyRepo,
		s.userRepo, s.likeRepo, s.commentRepo, s.tagRepo)
	s.commentDomain = domain.NewCommentDomain(s.commentRepo, s.storyRepo,
		s.userRepo, s.notificationRepo)
	s.repostDomain = domain.NewRepostDomain(s.repostRepo, s.storyRepo, s.notificationRepo)
	s.followDomain = domain.NewFollowDomain(s.followRepo, s.userRepo, s.notificationRepo)
	s.notificationDomain = domain.NewNotificationDomain(s.notificationRepo, s.userRepo)
	s.pollDomain = domain.NewPollDomain(s.pollRepo, s.storyRepo)
	s.communityDomain = domain.NewCommunityDomain(s.communityRepo,
		s.communityMemberRepo, s.notificationRepo, s.redisClient)
	s.jobDomain = domain.NewJobDomain(s.jobRepo, s.jobApplicationRepo,
		s.userRepo, s.notificationRepo)
	s.messageDomain = domain.NewMessageDomain(s.conversationRepo, s.messageRepo,
		s.userRepo, s.notificationRepo)
}
