package domain

import (
	"context"
	"errors"

	"github.com/immigrant-voices/backend/internal/entity"
	"github.com/immigrant-voices/backend/internal/model"
	"github.com/immigrant-voices/backend/internal/repository"
	"github.com/immigrant-voices/backend/pkg/errorx"
	"github.com/immigrant-voices/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type BookmarkDomain interface {
	Bookmark(context.Context, *model.BookmarkStoryRequest) (*model.BookmarkStoryResponse, error)
	Unbookmark(context.Context, *model.UnbookmarkStoryRequest) (*model.UnbookmarkStoryResponse, error)
	GetBookmarks(context.Context, *model.GetBookmarksRequest) (*model.GetBookmarksResponse, error)
}

type bookmarkDomain struct {
	bookmarkRepo repository.BookmarkRepository
	storyRepo    repository.StoryRepository
	userRepo     repository.UserRepository
	likeRepo     repository.LikeRepository
	commentRepo  repository.CommentRepository
	tagRepo      repository.TagRepository
}

func NewBookmarkDomain(
	bookmarkRepo repository.BookmarkRepository,
	storyRepo repository.StoryRepository,
	userRepo repository.UserRepository,
	likeRepo repository.LikeRepository,
	commentRepo repository.CommentRepository,
	tagRepo repository.TagRepository,
) BookmarkDomain {
	return &bookmarkDomain{
		bookmarkRepo: bookmarkRepo,
		storyRepo:    storyRepo,
		userRepo:     userRepo,
		likeRepo:     likeRepo,
		commentRepo:  commentRepo,
		tagRepo:      tagRepo,
	}
}

func (d *bookmarkDomain) Bookmark(
	ctx context.Context, req *model.BookmarkStoryRequest,
) (*model.BookmarkStoryResponse, error) {
	story, err := d.storyRepo.GetByID(ctx, req.StoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found story")
		}

		xcontext.Logger(ctx).Errorf("Cannot get story: %v", err)
		return nil, errorx.Unknown
	}

	// Bookmarks are private; no notification regardless of novelty.
	_, err = d.bookmarkRepo.Create(ctx, &entity.Bookmark{
		UserID:  xcontext.RequestUserID(ctx),
		StoryID: story.ID,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create bookmark: %v", err)
		return nil, errorx.Unknown
	}

	return &model.BookmarkStoryResponse{}, nil
}

func (d *bookmarkDomain) Unbookmark(
	ctx context.Context, req *model.UnbookmarkStoryRequest,
) (*model.UnbookmarkStoryResponse, error) {
	err := d.bookmarkRepo.Delete(ctx, xcontext.RequestUserID(ctx), req.StoryID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete bookmark: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UnbookmarkStoryResponse{}, nil
}

func (d *bookmarkDomain) GetBookmarks(
	ctx context.Context, req *model.GetBookmarksRequest,
) (*model.GetBookmarksResponse, error) {
	offset, limit, err := pagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	userID := xcontext.RequestUserID(ctx)
	stories, err := d.storyRepo.GetList(ctx, repository.GetListStoryFilter{
		BookmarkedBy: userID,
		Offset:       offset,
		Limit:        limit,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get bookmarked stories: %v", err)
		return nil, errorx.Unknown
	}

	clientStories, err := convertStories(ctx, d.userRepo, d.likeRepo, d.bookmarkRepo,
		d.commentRepo, d.tagRepo, stories, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot convert stories: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetBookmarksResponse{Stories: clientStories}, nil
}
