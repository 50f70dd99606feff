package domain

import (
	"context"
	"errors"
	"strings"

	"github.com/immigrant-voices/backend/internal/common"
	"github.com/immigrant-voices/backend/internal/entity"
	"github.com/immigrant-voices/backend/internal/model"
	"github.com/immigrant-voices/backend/internal/repository"
	"github.com/immigrant-voices/backend/pkg/errorx"
	"github.com/immigrant-voices/backend/pkg/xcontext"
	"github.com/immigrant-voices/backend/pkg/xredis"
	"gorm.io/gorm"
)

type UserDomain interface {
	GetMe(context.Context, *model.GetMeRequest) (*model.GetMeResponse, error)
	GetUser(context.Context, *model.GetUserRequest) (*model.GetUserResponse, error)
	UpdateMe(context.Context, *model.UpdateMeRequest) (*model.UpdateMeResponse, error)
	GetSuggestedUsers(context.Context, *model.GetSuggestedUsersRequest) (*model.GetSuggestedUsersResponse, error)
}

type userDomain struct {
	userRepo    repository.UserRepository
	redisClient xredis.Client
}

func NewUserDomain(userRepo repository.UserRepository, redisClient xredis.Client) UserDomain {
	return &userDomain{userRepo: userRepo, redisClient: redisClient}
}

func (d *userDomain) GetMe(
	ctx context.Context, req *model.GetMeRequest,
) (*model.GetMeResponse, error) {
	user, err := d.userRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.GetMeResponse(model.ConvertUser(user, true))
	return &resp, nil
}

func (d *userDomain) GetUser(
	ctx context.Context, req *model.GetUserRequest,
) (*model.GetUserResponse, error) {
	if req.ID == "" && req.Name == "" {
		return nil, errorx.New(errorx.BadRequest, "Expected an user id or username")
	}

	var err error
	var user *entity.User
	if req.ID != "" {
		user, err = d.userRepo.GetByID(ctx, req.ID)
	} else {
		user, err = d.userRepo.GetByName(ctx, req.Name)
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.GetUserResponse(model.ConvertUser(user, false))
	return &resp, nil
}

func (d *userDomain) UpdateMe(
	ctx context.Context, req *model.UpdateMeRequest,
) (*model.UpdateMeResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	if req.Name != "" {
		req.Name = strings.TrimSpace(req.Name)
		existing, err := d.userRepo.GetByName(ctx, req.Name)
		if err == nil && existing.ID != userID {
			return nil, errorx.New(errorx.AlreadyExists, "This username is already taken")
		}

		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot check username: %v", err)
			return nil, errorx.Unknown
		}
	}

	err := d.userRepo.UpdateByID(ctx, userID, entity.User{
		Name:        req.Name,
		Bio:         req.Bio,
		AvatarURL:   req.AvatarURL,
		CountryFrom: req.CountryFrom,
		CountryNow:  req.CountryNow,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateMeResponse{}, nil
}

func (d *userDomain) GetSuggestedUsers(
	ctx context.Context, req *model.GetSuggestedUsersRequest,
) (*model.GetSuggestedUsersResponse, error) {
	_, limit, err := pagination(ctx, 0, req.Limit)
	if err != nil {
		return nil, err
	}

	userID := xcontext.RequestUserID(ctx)

	var cached []model.User
	err = d.redisClient.GetObj(ctx, common.RedisKeySuggestedUsers(userID), &cached)
	if err == nil && len(cached) > 0 {
		if len(cached) > limit {
			cached = cached[:limit]
		}

		return &model.GetSuggestedUsersResponse{Users: cached}, nil
	}

	users, err := d.userRepo.GetSuggested(ctx, userID, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get suggested users: %v", err)
		return nil, errorx.Unknown
	}

	clientUsers := []model.User{}
	for i := range users {
		clientUsers = append(clientUsers, model.ConvertUser(&users[i], false))
	}

	err = d.redisClient.SetObj(ctx, common.RedisKeySuggestedUsers(userID),
		clientUsers, xcontext.Configs(ctx).Cache.SuggestedUsersTTL)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot cache suggested users: %v", err)
	}

	return &model.GetSuggestedUsersResponse{Users: clientUsers}, nil
}
