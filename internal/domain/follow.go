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

type FollowDomain interface {
	Follow(context.Context, *model.FollowUserRequest) (*model.FollowUserResponse, error)
	Unfollow(context.Context, *model.UnfollowUserRequest) (*model.UnfollowUserResponse, error)
	CheckFollowing(context.Context, *model.CheckFollowingRequest) (*model.CheckFollowingResponse, error)
	GetFollowers(context.Context, *model.GetFollowersRequest) (*model.GetFollowersResponse, error)
	GetFollowing(context.Context, *model.GetFollowingRequest) (*model.GetFollowingResponse, error)
}

type followDomain struct {
	followRepo       repository.FollowRepository
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
}

func NewFollowDomain(
	followRepo repository.FollowRepository,
	userRepo repository.UserRepository,
	notificationRepo repository.NotificationRepository,
) FollowDomain {
	return &followDomain{
		followRepo:       followRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
	}
}

func (d *followDomain) Follow(
	ctx context.Context, req *model.FollowUserRequest,
) (*model.FollowUserResponse, error) {
	followerID := xcontext.RequestUserID(ctx)
	if followerID == req.UserID {
		return nil, errorx.New(errorx.BadRequest, "Not allow following yourself")
	}

	if _, err := d.userRepo.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	if _, err := d.followRepo.Get(ctx, followerID, req.UserID); err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "You already followed this user")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot check existing follow: %v", err)
		return nil, errorx.Unknown
	}

	// The follow row and both counters move in one transaction.
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	err := d.followRepo.Create(ctx, &entity.Follow{
		FollowerID:  followerID,
		FollowingID: req.UserID,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create follow: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.userRepo.IncreaseFollowers(ctx, req.UserID, 1); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase followers counter: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.userRepo.IncreaseFollowing(ctx, followerID, 1); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase following counter: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	fanoutNotification(ctx, d.notificationRepo, &entity.Notification{
		UserID:  req.UserID,
		ActorID: followerID,
		Kind:    entity.NotificationFollow,
	})

	return &model.FollowUserResponse{}, nil
}

func (d *followDomain) Unfollow(
	ctx context.Context, req *model.UnfollowUserRequest,
) (*model.UnfollowUserResponse, error) {
	followerID := xcontext.RequestUserID(ctx)

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	err := d.followRepo.Delete(ctx, followerID, req.UserID)
	if err != nil {
		// Unfollowing someone you do not follow is a no-op; the counters
		// only move when a row was actually deleted.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.UnfollowUserResponse{}, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot delete follow: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.userRepo.IncreaseFollowers(ctx, req.UserID, -1); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot decrease followers counter: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.userRepo.IncreaseFollowing(ctx, followerID, -1); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot decrease following counter: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.UnfollowUserResponse{}, nil
}

func (d *followDomain) CheckFollowing(
	ctx context.Context, req *model.CheckFollowingRequest,
) (*model.CheckFollowingResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	following := true
	if _, err := d.followRepo.Get(ctx, userID, req.UserID); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get follow: %v", err)
			return nil, errorx.Unknown
		}

		following = false
	}

	mutual := false
	if following {
		if _, err := d.followRepo.Get(ctx, req.UserID, userID); err == nil {
			mutual = true
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get reverse follow: %v", err)
			return nil, errorx.Unknown
		}
	}

	return &model.CheckFollowingResponse{Following: following, Mutual: mutual}, nil
}

func (d *followDomain) GetFollowers(
	ctx context.Context, req *model.GetFollowersRequest,
) (*model.GetFollowersResponse, error) {
	offset, limit, err := pagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	users, err := d.followRepo.GetFollowerUsers(ctx, req.UserID, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get followers: %v", err)
		return nil, errorx.Unknown
	}

	clientUsers := []model.User{}
	for i := range users {
		clientUsers = append(clientUsers, model.ConvertUser(&users[i], false))
	}

	return &model.GetFollowersResponse{Users: clientUsers}, nil
}

func (d *followDomain) GetFollowing(
	ctx context.Context, req *model.GetFollowingRequest,
) (*model.GetFollowingResponse, error) {
	offset, limit, err := pagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	users, err := d.followRepo.GetFollowingUsers(ctx, req.UserID, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get following users: %v", err)
		return nil, errorx.Unknown
	}

	clientUsers := []model.User{}
	for i := range users {
		clientUsers = append(clientUsers, model.ConvertUser(&users[i], false))
	}

	return &model.GetFollowingResponse{Users: clientUsers}, nil
}
