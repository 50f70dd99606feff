package testutil

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gorilla/sessions"
	"github.com/immigrant-voices/backend/config"
	"github.com/immigrant-voices/backend/internal/model"
	"github.com/immigrant-voices/backend/migration"
	"github.com/immigrant-voices/backend/pkg/authenticator"
	"github.com/immigrant-voices/backend/pkg/logger"
	"github.com/immigrant-voices/backend/pkg/xcontext"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	cfg := config.Configs{
		ApiServer: config.ServerConfigs{
			MaxLimit:     50,
			DefaultLimit: 20,
		},
		Auth: config.AuthConfigs{
			TokenSecret: "secret",
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: time.Minute,
			},
			RefreshToken: config.TokenConfigs{
				Name:       "refresh_token",
				Expiration: time.Minute,
			},
		},
		Session: config.SessionConfigs{
			Secret: "session-secret",
			Name:   "auth_session",
		},
		Cache: config.CacheConfigs{
			TrendingTagsTTL:   time.Minute,
			SuggestedUsersTTL: time.Minute,
			CommunityStatsTTL: time.Minute,
		},
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
	ctx = xcontext.WithTokenEngine(ctx, authenticator.NewTokenEngine[model.AccessToken](
		cfg.Auth.TokenSecret, cfg.Auth.AccessToken.Expiration))
	ctx = xcontext.WithSessionStore(ctx, sessions.NewCookieStore([]byte(cfg.Session.Secret)))
	ctx = xcontext.WithSnowFlake(ctx, node)
	ctx = xcontext.WithDB(ctx, db)

	if err := migration.AutoMigrate(ctx); err != nil {
		panic(err)
	}

	return ctx
}

func MockContextWithUserID(ctx context.Context, userID string) context.Context {
	return xcontext.WithRequestUserID(ctx, userID)
}
