package domain

import (
	"context"
	"database/sql"
	"errors"

	"github.com/immigrant-voices/backend/internal/entity"
	"github.com/immigrant-voices/backend/internal/model"
	"github.com/immigrant-voices/backend/internal/repository"
	"github.com/immigrant-voices/backend/pkg/errorx"
	"github.com/immigrant-voices/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type LikeDomain interface {
	Like(context.Context, *model.LikeStoryRequest) (*model.LikeStoryResponse, error)
	Unlike(context.Context, *model.UnlikeStoryRequest) (*model.UnlikeStoryResponse, error)
	CheckLiked(context.Context, *model.CheckLikedRequest) (*model.CheckLikedResponse, error)
	GetLikedStories(context.Context, *model.GetLikedStoriesRequest) (*model.GetLikedStoriesResponse, error)
}

type likeDomain struct {
	likeRepo         repository.LikeRepository
	storyRepo        repository.StoryRepository
	userRepo         repository.UserRepository
	bookmarkRepo     repository.BookmarkRepository
	commentRepo      repository.CommentRepository
	tagRepo          repository.TagRepository
	notificationRepo repository.NotificationRepository
}

func NewLikeDomain(
	likeRepo repository.LikeRepository,
	storyRepo repository.StoryRepository,
	userRepo repository.UserRepository,
	bookmarkRepo repository.BookmarkRepository,
	commentRepo repository.CommentRepository,
	tagRepo repository.TagRepository,
	notificationRepo repository.NotificationRepository,
) LikeDomain {
	return &likeDomain{
		likeRepo:         likeRepo,
		storyRepo:        storyRepo,
		userRepo:         userRepo,
		bookmarkRepo:     bookmarkRepo,
		commentRepo:      commentRepo,
		tagRepo:          tagRepo,
		notificationRepo: notificationRepo,
	}
}

func (d *likeDomain) Like(
	ctx context.Context, req *model.LikeStoryRequest,
) (*model.LikeStoryResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	story, err := d.storyRepo.GetByID(ctx, req.StoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found story")
		}

		xcontext.Logger(ctx).Errorf("Cannot get story: %v", err)
		return nil, errorx.Unknown
	}

	created, err := d.likeRepo.Create(ctx, &entity.Like{UserID: userID, StoryID: story.ID})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create like: %v", err)
		return nil, errorx.Unknown
	}

	// Liking twice is a no-op; only a fresh like notifies the author.
	if created {
		fanoutNotification(ctx, d.notificationRepo, &entity.Notification{
			UserID:  story.AuthorID,
			ActorID: userID,
			Kind:    entity.NotificationLike,
			StoryID: sql.NullString{Valid: true, String: story.ID},
		})
	}

	return &model.LikeStoryResponse{}, nil
}

func (d *likeDomain) Unlike(
	ctx context.Context, req *model.UnlikeStoryRequest,
) (*model.UnlikeStoryResponse, error) {
	err := d.likeRepo.Delete(ctx, xcontext.RequestUserID(ctx), req.StoryID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete like: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UnlikeStoryResponse{}, nil
}

func (d *likeDomain) CheckLiked(
	ctx context.Context, req *model.CheckLikedRequest,
) (*model.CheckLikedResponse, error) {
	_, err := d.likeRepo.Get(ctx, xcontext.RequestUserID(ctx), req.StoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.CheckLikedResponse{Liked: false}, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get like: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CheckLikedResponse{Liked: true}, nil
}

func (d *likeDomain) GetLikedStories(
	ctx context.Context, req *model.GetLikedStoriesRequest,
) (*model.GetLikedStoriesResponse, error) {
	offset, limit, err := pagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	userID := xcontext.RequestUserID(ctx)
	stories, err := d.storyRepo.GetList(ctx, repository.GetListStoryFilter{
		LikedBy: userID,
		Offset:  offset,
		Limit:   limit,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get liked stories: %v", err)
		return nil, errorx.Unknown
	}

	clientStories, err := convertStories(ctx, d.userRepo, d.likeRepo, d.bookmarkRepo,
		d.commentRepo, d.tagRepo, stories, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot convert stories: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetLikedStoriesResponse{Stories: clientStories}, nil
}
