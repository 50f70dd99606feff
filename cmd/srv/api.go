package main

import (
	"context"
	"log"
	"net/http"

	"github.com/immigrant-voices/backend/internal/middleware"
	"github.com/immigrant-voices/backend/pkg/prometheus"
	"github.com/immigrant-voices/backend/pkg/router"
	"github.com/immigrant-voices/backend/pkg/xcontext"

	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()
	s.loadRedis()
	s.loadSnowFlake()
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	s.server = &http.Server{
		Addr:    s.configs.ApiServer.Address(),
		Handler: s.router.Handler(),
	}

	log.Printf("Starting server on %s\n", s.configs.ApiServer.Address())
	if err := s.server.ListenAndServe(); err != nil {
		panic(err)
	}
	log.Printf("server stop")
	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.db, *s.configs, s.logger)
	s.router.Before(func(ctx context.Context) (context.Context, error) {
		return xcontext.WithSnowFlake(ctx, s.snowflakeNode), nil
	})
	s.router.Before(middleware.WithStartTime())
	s.router.AddCloser(middleware.Logger())
	s.router.AddCloser(middleware.Prometheus())

	// Auth API. Successful logins also persist the access token into the
	// session cookie so browser clients need not carry the header.
	authRouter := s.router.Branch()
	authRouter.After(middleware.HandleSaveSession())
	{
		router.POST(authRouter, "/auth/register", s.authDomain.Register)
		router.POST(authRouter, "/auth/login", s.authDomain.Login)
		router.POST(authRouter, "/auth/refresh", s.authDomain.Refresh)
	}

	// Public read APIs. Authentication is optional here so that per-user
	// flags (liked, bookmarked, joined) can still be filled in.
	publicRouter := s.router.Branch()
	publicRouter.Before(middleware.AuthenticateOptional())
	{
		// Story API
		router.GET(publicRouter, "/stories", s.storyDomain.GetList)
		router.GET(publicRouter, "/stories/{id}", s.storyDomain.Get)
		router.GET(publicRouter, "/stories/{storyId}/comments", s.commentDomain.GetList)
		router.GET(publicRouter, "/polls/story/{storyId}", s.pollDomain.Get)
		router.GET(publicRouter, "/tags/trending", s.storyDomain.GetTrendingTags)

		// User API
		router.GET(publicRouter, "/users", s.userDomain.GetUser)
		router.GET(publicRouter, "/follows/{userId}/followers", s.followDomain.GetFollowers)
		router.GET(publicRouter, "/follows/{userId}/following", s.followDomain.GetFollowing)

		// Community API
		router.GET(publicRouter, "/communities", s.communityDomain.GetList)
		router.GET(publicRouter, "/communities/{handle}", s.communityDomain.Get)

		// Job API
		router.GET(publicRouter, "/jobs", s.jobDomain.GetList)
		router.GET(publicRouter, "/jobs/{id}", s.jobDomain.Get)
	}

	// These following APIs need authentication with Access Token.
	authedRouter := s.router.Branch()
	authedRouter.Before(middleware.Authenticate())
	{
		// User API
		router.GET(authedRouter, "/users/me", s.userDomain.GetMe)
		router.PATCH(authedRouter, "/users/me", s.userDomain.UpdateMe)
		router.GET(authedRouter, "/users/suggested", s.userDomain.GetSuggestedUsers)
		router.GET(authedRouter, "/users/me/likes", s.likeDomain.GetLikedStories)
		router.GET(authedRouter, "/users/me/bookmarks", s.bookmarkDomain.GetBookmarks)
		router.GET(authedRouter, "/users/me/applications", s.jobDomain.GetMyApplications)

		// Story API
		router.POST(authedRouter, "/stories", s.storyDomain.Create)
		router.PATCH(authedRouter, "/stories/{id}", s.storyDomain.Update)
		router.DELETE(authedRouter, "/stories/{id}", s.storyDomain.Delete)

		// Like API
		router.POST(authedRouter, "/stories/{id}/like", s.likeDomain.Like)
		router.DELETE(authedRouter, "/stories/{id}/like", s.likeDomain.Unlike)
		router.GET(authedRouter, "/stories/{id}/like", s.likeDomain.CheckLiked)

		// Bookmark API
		router.POST(authedRouter, "/stories/{id}/bookmark", s.bookmarkDomain.Bookmark)
		router.DELETE(authedRouter, "/stories/{id}/bookmark", s.bookmarkDomain.Unbookmark)

		// Comment API
		router.POST(authedRouter, "/comments", s.commentDomain.Create)
		router.DELETE(authedRouter, "/comments/{id}", s.commentDomain.Delete)

		// Repost API
		router.POST(authedRouter, "/reposts", s.repostDomain.Create)
		router.DELETE(authedRouter, "/reposts/{storyId}", s.repostDomain.Delete)

		// Follow API
		router.POST(authedRouter, "/follows/{userId}/follow", s.followDomain.Follow)
		router.DELETE(authedRouter, "/follows/{userId}/follow", s.followDomain.Unfollow)
		router.GET(authedRouter, "/follows/{userId}/follow", s.followDomain.CheckFollowing)

		// Notification API
		router.GET(authedRouter, "/notifications", s.notificationDomain.GetList)
		router.GET(authedRouter, "/notifications/unread-count", s.notificationDomain.GetUnreadCount)
		router.PATCH(authedRouter, "/notifications/{id}/read", s.notificationDomain.Read)
		router.POST(authedRouter, "/notifications/read-all", s.notificationDomain.ReadAll)
		router.DELETE(authedRouter, "/notifications/{id}", s.notificationDomain.Delete)

		// Poll API
		router.POST(authedRouter, "/polls/vote", s.pollDomain.Vote)

		// Community API
		router.POST(authedRouter, "/communities", s.communityDomain.Create)
		router.POST(authedRouter, "/communities/{handle}/join", s.communityDomain.Join)
		router.DELETE(authedRouter, "/communities/{handle}/join", s.communityDomain.Leave)
		router.GET(authedRouter, "/communities/{handle}/stats", s.communityDomain.GetStats)

		// Job API
		router.POST(authedRouter, "/jobs", s.jobDomain.Create)
		router.PATCH(authedRouter, "/jobs/{id}", s.jobDomain.Update)
		router.DELETE(authedRouter, "/jobs/{id}", s.jobDomain.Delete)
		router.POST(authedRouter, "/jobs/{id}/apply", s.jobDomain.Apply)
		router.GET(authedRouter, "/jobs/{id}/applications", s.jobDomain.GetApplications)
		router.PATCH(authedRouter, "/applications/{id}", s.jobDomain.ReviewApplication)

		// Message API
		router.POST(authedRouter, "/messages", s.messageDomain.Send)
		router.DELETE(authedRouter, "/messages/{id}", s.messageDomain.Delete)
		router.GET(authedRouter, "/conversations", s.messageDomain.GetConversations)
		router.GET(authedRouter, "/conversations/{id}/messages", s.messageDomain.GetMessages)
	}

	s.router.Mount("/metrics", prometheus.NewHandler())
}
