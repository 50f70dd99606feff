package domain

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/immigrant-voices/backend/internal/common"
	"github.com/immigrant-voices/backend/internal/entity"
	"github.com/immigrant-voices/backend/internal/model"
	"github.com/immigrant-voices/backend/internal/repository"
	"github.com/immigrant-voices/backend/pkg/dateutil"
	"github.com/immigrant-voices/backend/pkg/errorx"
	"github.com/immigrant-voices/backend/pkg/xcontext"
	"github.com/immigrant-voices/backend/pkg/xredis"
	"gorm.io/gorm"
)

var handleRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{2,31}$`)

type CommunityDomain interface {
	Create(context.Context, *model.CreateCommunityRequest) (*model.CreateCommunityResponse, error)
	Get(context.Context, *model.GetCommunityRequest) (*model.GetCommunityResponse, error)
	GetList(context.Context, *model.GetCommunitiesRequest) (*model.GetCommunitiesResponse, error)
	Join(context.Context, *model.JoinCommunityRequest) (*model.JoinCommunityResponse, error)
	Leave(context.Context, *model.LeaveCommunityRequest) (*model.LeaveCommunityResponse, error)
	GetStats(context.Context, *model.GetCommunityStatsRequest) (*model.GetCommunityStatsResponse, error)
}

type communityDomain struct {
	communityRepo    repository.CommunityRepository
	memberRepo       repository.CommunityMemberRepository
	notificationRepo repository.NotificationRepository
	redisClient      xredis.Client
}

func NewCommunityDomain(
	communityRepo repository.CommunityRepository,
	memberRepo repository.CommunityMemberRepository,
	notificationRepo repository.NotificationRepository,
	redisClient xredis.Client,
) CommunityDomain {
	return &communityDomain{
		communityRepo:    communityRepo,
		memberRepo:       memberRepo,
		notificationRepo: notificationRepo,
		redisClient:      redisClient,
	}
}

func (d *communityDomain) Create(
	ctx context.Context, req *model.CreateCommunityRequest,
) (*model.CreateCommunityResponse, error) {
	if strings.TrimSpace(req.DisplayName) == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty display name")
	}

	if !handleRegex.MatchString(req.Handle) {
		return nil, errorx.New(errorx.BadRequest, "Invalid community handle")
	}

	if _, err := d.communityRepo.GetByHandle(ctx, req.Handle); err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "This handle is already taken")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot check community handle: %v", err)
		return nil, errorx.Unknown
	}

	userID := xcontext.RequestUserID(ctx)
	community := &entity.Community{
		Base:         entity.Base{ID: uuid.NewString()},
		CreatedBy:    userID,
		Handle:       req.Handle,
		DisplayName:  req.DisplayName,
		Introduction: req.Introduction,
		MemberCount:  1,
	}

	// The creator joins their own community immediately.
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.communityRepo.Create(ctx, community); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create community: %v", err)
		return nil, errorx.Unknown
	}

	err := d.memberRepo.Create(ctx, &entity.CommunityMember{
		UserID:      userID,
		CommunityID: community.ID,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create community member: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.CreateCommunityResponse{ID: community.ID, Handle: community.Handle}, nil
}

func (d *communityDomain) Get(
	ctx context.Context, req *model.GetCommunityRequest,
) (*model.GetCommunityResponse, error) {
	community, err := d.getByHandle(ctx, req.Handle)
	if err != nil {
		return nil, err
	}

	joined := false
	if userID := xcontext.RequestUserID(ctx); userID != "" {
		if _, err := d.memberRepo.Get(ctx, userID, community.ID); err == nil {
			joined = true
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get community member: %v", err)
			return nil, errorx.Unknown
		}
	}

	resp := model.GetCommunityResponse(model.ConvertCommunity(community, joined))
	return &resp, nil
}

func (d *communityDomain) GetList(
	ctx context.Context, req *model.GetCommunitiesRequest,
) (*model.GetCommunitiesResponse, error) {
	offset, limit, err := pagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	communities, err := d.communityRepo.GetList(ctx, repository.GetListCommunityFilter{
		Q:          req.Q,
		ByTrending: req.ByTrending,
		Offset:     offset,
		Limit:      limit,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get communities: %v", err)
		return nil, errorx.Unknown
	}

	clientCommunities := []model.Community{}
	for i := range communities {
		clientCommunities = append(clientCommunities, model.ConvertCommunity(&communities[i], false))
	}

	return &model.GetCommunitiesResponse{Communities: clientCommunities}, nil
}

func (d *communityDomain) Join(
	ctx context.Context, req *model.JoinCommunityRequest,
) (*model.JoinCommunityResponse, error) {
	community, err := d.getByHandle(ctx, req.Handle)
	if err != nil {
		return nil, err
	}

	userID := xcontext.RequestUserID(ctx)
	if _, err := d.memberRepo.Get(ctx, userID, community.ID); err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "You already joined this community")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot check community member: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	err = d.memberRepo.Create(ctx, &entity.CommunityMember{
		UserID:      userID,
		CommunityID: community.ID,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create community member: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.communityRepo.IncreaseMembers(ctx, community.ID, 1); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase member counter: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	fanoutNotification(ctx, d.notificationRepo, &entity.Notification{
		UserID:  community.CreatedBy,
		ActorID: userID,
		Kind:    entity.NotificationCommunityJoin,
	})

	return &model.JoinCommunityResponse{}, nil
}

func (d *communityDomain) Leave(
	ctx context.Context, req *model.LeaveCommunityRequest,
) (*model.LeaveCommunityResponse, error) {
	community, err := d.getByHandle(ctx, req.Handle)
	if err != nil {
		return nil, err
	}

	userID := xcontext.RequestUserID(ctx)
	if community.CreatedBy == userID {
		return nil, errorx.New(errorx.BadRequest, "The creator cannot leave their own community")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	err = d.memberRepo.Delete(ctx, userID, community.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "You are not a member of this community")
		}

		xcontext.Logger(ctx).Errorf("Cannot delete community member: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.communityRepo.IncreaseMembers(ctx, community.ID, -1); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot decrease member counter: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.LeaveCommunityResponse{}, nil
}

func (d *communityDomain) GetStats(
	ctx context.Context, req *model.GetCommunityStatsRequest,
) (*model.GetCommunityStatsResponse, error) {
	community, err := d.getByHandle(ctx, req.Handle)
	if err != nil {
		return nil, err
	}

	end := dateutil.Date(time.Now())
	begin := end.AddDate(0, 0, -30)

	cacheKey := common.RedisKeyCommunityStats(community.ID, end.Format(model.DefaultDateLayout))
	var cached []model.CommunityStats
	if err := d.redisClient.GetObj(ctx, cacheKey, &cached); err == nil && len(cached) > 0 {
		return &model.GetCommunityStatsResponse{Stats: cached}, nil
	}

	stats, err := d.communityRepo.GetStats(ctx, community.ID, begin, end)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get community stats: %v", err)
		return nil, errorx.Unknown
	}

	clientStats := []model.CommunityStats{}
	for i := range stats {
		clientStats = append(clientStats, model.CommunityStats{
			CommunityID: stats[i].CommunityID,
			Date:        stats[i].Date.Format(model.DefaultDateLayout),
			MemberCount: stats[i].MemberCount,
			StoryCount:  stats[i].StoryCount,
		})
	}

	err = d.redisClient.SetObj(ctx, cacheKey, clientStats,
		xcontext.Configs(ctx).Cache.CommunityStatsTTL)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot cache community stats: %v", err)
	}

	return &model.GetCommunityStatsResponse{Stats: clientStats}, nil
}

func (d *communityDomain) getByHandle(ctx context.Context, handle string) (*entity.Community, error) {
	community, err := d.communityRepo.GetByHandle(ctx, handle)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found community")
		}

		xcontext.Logger(ctx).Errorf("Cannot get community: %v", err)
		return nil, errorx.Unknown
	}

	return community, nil
}
