package domain

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/immigrant-voices/backend/internal/common"
	"github.com/immigrant-voices/backend/internal/entity"
	"github.com/immigrant-voices/backend/internal/model"
	"github.com/immigrant-voices/backend/internal/repository"
	"github.com/immigrant-voices/backend/pkg/errorx"
	"github.com/immigrant-voices/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type CommentDomain interface {
	Create(context.Context, *model.CreateCommentRequest) (*model.CreateCommentResponse, error)
	GetList(context.Context, *model.GetCommentsRequest) (*model.GetCommentsResponse, error)
	Delete(context.Context, *model.DeleteCommentRequest) (*model.DeleteCommentResponse, error)
}

type commentDomain struct {
	commentRepo      repository.CommentRepository
	storyRepo        repository.StoryRepository
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
	roleVerifier     *common.GlobalRoleVerifier
}

func NewCommentDomain(
	commentRepo repository.CommentRepository,
	storyRepo repository.StoryRepository,
	userRepo repository.UserRepository,
	notificationRepo repository.NotificationRepository,
) CommentDomain {
	return &commentDomain{
		commentRepo:      commentRepo,
		storyRepo:        storyRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		roleVerifier:     common.NewGlobalRoleVerifier(userRepo),
	}
}

func (d *commentDomain) Create(
	ctx context.Context, req *model.CreateCommentRequest,
) (*model.CreateCommentResponse, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty comment")
	}

	story, err := d.storyRepo.GetByID(ctx, req.StoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found story")
		}

		xcontext.Logger(ctx).Errorf("Cannot get story: %v", err)
		return nil, errorx.Unknown
	}

	comment := &entity.Comment{
		Base:    entity.Base{ID: uuid.NewString()},
		StoryID: story.ID,
		UserID:  xcontext.RequestUserID(ctx),
		Content: req.Content,
	}

	if req.ParentID != "" {
		parent, err := d.commentRepo.GetByID(ctx, req.ParentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errorx.New(errorx.NotFound, "Not found parent comment")
			}

			xcontext.Logger(ctx).Errorf("Cannot get parent comment: %v", err)
			return nil, errorx.Unknown
		}

		if parent.StoryID != story.ID {
			return nil, errorx.New(errorx.BadRequest, "Parent comment belongs to another story")
		}

		comment.ParentID = sql.NullString{Valid: true, String: parent.ID}
	}

	if err := d.commentRepo.Create(ctx, comment); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create comment: %v", err)
		return nil, errorx.Unknown
	}

	// Replies notify the story author only, never the parent commenter.
	fanoutNotification(ctx, d.notificationRepo, &entity.Notification{
		UserID:    story.AuthorID,
		ActorID:   comment.UserID,
		Kind:      entity.NotificationComment,
		StoryID:   sql.NullString{Valid: true, String: story.ID},
		CommentID: sql.NullString{Valid: true, String: comment.ID},
	})

	return &model.CreateCommentResponse{ID: comment.ID}, nil
}

func (d *commentDomain) GetList(
	ctx context.Context, req *model.GetCommentsRequest,
) (*model.GetCommentsResponse, error) {
	offset, limit, err := pagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	comments, err := d.commentRepo.GetListByStoryID(ctx, req.StoryID, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get comments: %v", err)
		return nil, errorx.Unknown
	}

	authorIDs := []string{}
	for i := range comments {
		authorIDs = append(authorIDs, comments[i].UserID)
	}

	authors := map[string]*entity.User{}
	if len(authorIDs) > 0 {
		users, err := d.userRepo.GetByIDs(ctx, authorIDs)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get comment authors: %v", err)
			return nil, errorx.Unknown
		}

		for i := range users {
			authors[users[i].ID] = &users[i]
		}
	}

	clientComments := []model.Comment{}
	for i := range comments {
		clientComments = append(clientComments, model.ConvertComment(
			&comments[i], model.ConvertUser(authors[comments[i].UserID], false)))
	}

	return &model.GetCommentsResponse{Comments: clientComments}, nil
}

func (d *commentDomain) Delete(
	ctx context.Context, req *model.DeleteCommentRequest,
) (*model.DeleteCommentResponse, error) {
	comment, err := d.commentRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found comment")
		}

		xcontext.Logger(ctx).Errorf("Cannot get comment: %v", err)
		return nil, errorx.Unknown
	}

	userID := xcontext.RequestUserID(ctx)
	if comment.UserID != userID {
		// The story author moderates comments on their own story.
		story, err := d.storyRepo.GetByID(ctx, comment.StoryID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get story of comment: %v", err)
			return nil, errorx.Unknown
		}

		if story.AuthorID != userID {
			if err := d.roleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
				return nil, errorx.New(errorx.PermissionDenied, "You cannot delete this comment")
			}
		}
	}

	if err := d.commentRepo.DeleteByID(ctx, comment.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete comment: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteCommentResponse{}, nil
}
