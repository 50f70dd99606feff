package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/immigrant-voices/backend/internal/entity"
	"github.com/immigrant-voices/backend/internal/model"
	"github.com/immigrant-voices/backend/internal/repository"
	"github.com/immigrant-voices/backend/pkg/authenticator"
	"github.com/immigrant-voices/backend/pkg/crypto"
	"github.com/immigrant-voices/backend/pkg/errorx"
	"github.com/immigrant-voices/backend/pkg/xcontext"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthDomain interface {
	Register(context.Context, *model.RegisterRequest) (*model.RegisterResponse, error)
	Login(context.Context, *model.LoginRequest) (*model.LoginResponse, error)
	Refresh(context.Context, *model.RefreshTokenRequest) (*model.RefreshTokenResponse, error)
}

type authDomain struct {
	userRepo         repository.UserRepository
	refreshTokenRepo repository.RefreshTokenRepository
}

func NewAuthDomain(
	userRepo repository.UserRepository,
	refreshTokenRepo repository.RefreshTokenRepository,
) AuthDomain {
	return &authDomain{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
	}
}

func (d *authDomain) Register(
	ctx context.Context, req *model.RegisterRequest,
) (*model.RegisterResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if req.Name == "" || req.Email == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty name or email")
	}

	if len(req.Password) < 8 {
		return nil, errorx.New(errorx.BadRequest, "Password must be at least 8 characters")
	}

	if _, err := d.userRepo.GetByName(ctx, req.Name); err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "This username is already taken")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot check username: %v", err)
		return nil, errorx.Unknown
	}

	if _, err := d.userRepo.GetByEmail(ctx, req.Email); err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "This email is already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot check email: %v", err)
		return nil, errorx.Unknown
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot hash password: %v", err)
		return nil, errorx.Unknown
	}

	user := &entity.User{
		Base:         entity.Base{ID: uuid.NewString()},
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         entity.RoleUser,
	}

	if err := d.userRepo.Create(ctx, user); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.RegisterResponse{User: model.ConvertUser(user, true)}, nil
}

func (d *authDomain) Login(
	ctx context.Context, req *model.LoginRequest,
) (*model.LoginResponse, error) {
	user, err := d.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.Unauthenticated, "Invalid email or password")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user by email: %v", err)
		return nil, errorx.Unknown
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password))
	if err != nil {
		return nil, errorx.New(errorx.Unauthenticated, "Invalid email or password")
	}

	accessToken, err := xcontext.TokenEngine(ctx).Generate(user.ID, model.AccessToken{
		ID:   user.ID,
		Name: user.Name,
		Role: string(user.Role),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return nil, errorx.Unknown
	}

	refreshToken, err := d.generateRefreshToken(ctx, user.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate refresh token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.LoginResponse{
		User:         model.ConvertUser(user, true),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (d *authDomain) Refresh(
	ctx context.Context, req *model.RefreshTokenRequest,
) (*model.RefreshTokenResponse, error) {
	refreshToken, err := d.refreshEngine(ctx).Verify(req.RefreshToken)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Failed to verify refresh token: %v", err)
		return nil, errorx.New(errorx.Unauthenticated, "Invalid refresh token")
	}

	hashedFamily := crypto.SHA256([]byte(refreshToken.Family))
	storageToken, err := d.refreshTokenRepo.Get(ctx, hashedFamily)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.Unauthenticated, "Invalid refresh token")
		}

		xcontext.Logger(ctx).Errorf("Cannot get refresh token family: %v", err)
		return nil, errorx.Unknown
	}

	if storageToken.Expiration.Before(time.Now()) {
		return nil, errorx.New(errorx.TokenExpired, "Your refresh token is expired")
	}

	// A counter mismatch means an old token of this family was replayed.
	// NOTE: DO NOT create transaction here. The delete and rotate query is
	// independent.
	if refreshToken.Counter != storageToken.Counter {
		err = d.refreshTokenRepo.Delete(ctx, hashedFamily)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot delete refresh token: %v", err)
			return nil, errorx.Unknown
		}

		return nil, errorx.New(errorx.StolenDetected,
			"Your refresh token will be revoked because it is detected as stolen")
	}

	err = d.refreshTokenRepo.Rotate(ctx, hashedFamily)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot rotate the refresh token: %v", err)
		return nil, errorx.Unknown
	}

	newRefreshToken, err := d.refreshEngine(ctx).Generate(storageToken.UserID, model.RefreshToken{
		Family:  refreshToken.Family,
		Counter: refreshToken.Counter + 1,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate refresh token: %v", err)
		return nil, errorx.Unknown
	}

	user, err := d.userRepo.GetByID(ctx, storageToken.UserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	newAccessToken, err := xcontext.TokenEngine(ctx).Generate(user.ID, model.AccessToken{
		ID:   user.ID,
		Name: user.Name,
		Role: string(user.Role),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.RefreshTokenResponse{
		AccessToken:  newAccessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

func (d *authDomain) refreshEngine(ctx context.Context) authenticator.TokenEngine[model.RefreshToken] {
	return authenticator.NewTokenEngine[model.RefreshToken](
		xcontext.Configs(ctx).Auth.TokenSecret,
		xcontext.Configs(ctx).Auth.RefreshToken.Expiration,
	)
}

func (d *authDomain) generateRefreshToken(ctx context.Context, userID string) (string, error) {
	family, err := crypto.GenerateRandomString()
	if err != nil {
		return "", err
	}

	refreshToken, err := d.refreshEngine(ctx).Generate(userID, model.RefreshToken{
		Family:  family,
		Counter: 0,
	})
	if err != nil {
		return "", err
	}

	err = d.refreshTokenRepo.Create(ctx, &entity.RefreshToken{
		UserID:     userID,
		Family:     crypto.SHA256([]byte(family)),
		Counter:    0,
		Expiration: time.Now().Add(xcontext.Configs(ctx).Auth.RefreshToken.Expiration),
	})
	if err != nil {
		return "", err
	}

	return refreshToken, nil
}
