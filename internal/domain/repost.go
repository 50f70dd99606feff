package domain

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/immigrant-voices/backend/internal/entity"
	"github.com/immigrant-voices/backend/internal/model"
	"github.com/immigrant-voices/backend/internal/repository"
	"github.com/immigrant-voices/backend/pkg/crypto"
	"github.com/immigrant-voices/backend/pkg/errorx"
	"github.com/immigrant-voices/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type RepostDomain interface {
	Create(context.Context, *model.CreateRepostRequest) (*model.CreateRepostResponse, error)
	Delete(context.Context, *model.DeleteRepostRequest) (*model.DeleteRepostResponse, error)
}

type repostDomain struct {
	repostRepo       repository.RepostRepository
	storyRepo        repository.StoryRepository
	notificationRepo repository.NotificationRepository
}

func NewRepostDomain(
	repostRepo repository.RepostRepository,
	storyRepo repository.StoryRepository,
	notificationRepo repository.NotificationRepository,
) RepostDomain {
	return &repostDomain{
		repostRepo:       repostRepo,
		storyRepo:        storyRepo,
		notificationRepo: notificationRepo,
	}
}

func (d *repostDomain) Create(
	ctx context.Context, req *model.CreateRepostRequest,
) (*model.CreateRepostResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	original, err := d.resolveStory(ctx, req.StoryID)
	if err != nil {
		return nil, err
	}

	// Reposting a repost targets the root original, so the whole chain
	// collapses to one level.
	if original.IsRepost {
		original, err = d.resolveStory(ctx, original.OriginalStoryID.String)
		if err != nil {
			return nil, err
		}
	}

	if _, err := d.repostRepo.Get(ctx, userID, original.ID); err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "You already reposted this story")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot check existing repost: %v", err)
		return nil, errorx.Unknown
	}

	suffix := crypto.GenerateRandomAlphabet(8)
	clone := &entity.Story{
		Base:            entity.Base{ID: uuid.NewString()},
		AuthorID:        userID,
		Title:           original.Title,
		Slug:            original.Slug + "-repost-" + strings.ToLower(suffix),
		Content:         original.Content,
		Excerpt:         original.Excerpt,
		Category:        original.Category,
		IsRepost:        true,
		OriginalStoryID: sql.NullString{Valid: true, String: original.ID},
		RepostComment:   req.Comment,
		PublishedAt:     time.Now(),
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.storyRepo.Create(ctx, clone); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create repost story: %v", err)
		return nil, errorx.Unknown
	}

	err = d.repostRepo.Create(ctx, &entity.Repost{
		UserID:        userID,
		StoryID:       original.ID,
		RepostStoryID: clone.ID,
		Comment:       req.Comment,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create repost record: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.storyRepo.IncreaseReposts(ctx, original.ID, 1); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase reposts counter: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	fanoutNotification(ctx, d.notificationRepo, &entity.Notification{
		UserID:  original.AuthorID,
		ActorID: userID,
		Kind:    entity.NotificationRepost,
		StoryID: sql.NullString{Valid: true, String: original.ID},
	})

	return &model.CreateRepostResponse{RepostStoryID: clone.ID}, nil
}

func (d *repostDomain) Delete(
	ctx context.Context, req *model.DeleteRepostRequest,
) (*model.DeleteRepostResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	original, err := d.resolveStory(ctx, req.StoryID)
	if err != nil {
		return nil, err
	}

	if original.IsRepost {
		original, err = d.resolveStory(ctx, original.OriginalStoryID.String)
		if err != nil {
			return nil, err
		}
	}

	repost, err := d.repostRepo.Get(ctx, userID, original.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "You have not reposted this story")
		}

		xcontext.Logger(ctx).Errorf("Cannot get repost record: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.storyRepo.DeleteByID(ctx, repost.RepostStoryID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete repost story: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.repostRepo.Delete(ctx, userID, original.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete repost record: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.storyRepo.IncreaseReposts(ctx, original.ID, -1); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot decrease reposts counter: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.DeleteRepostResponse{}, nil
}

func (d *repostDomain) resolveStory(ctx context.Context, idOrSlug string) (*entity.Story, error) {
	story, err := d.storyRepo.GetByID(ctx, idOrSlug)
	if err == nil {
		return story, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get story: %v", err)
		return nil, errorx.Unknown
	}

	story, err = d.storyRepo.GetBySlug(ctx, idOrSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found story")
		}

		xcontext.Logger(ctx).Errorf("Cannot get story by slug: %v", err)
		return nil, errorx.Unknown
	}

	return story, nil
}
