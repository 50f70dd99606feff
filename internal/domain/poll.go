package domain

import (
	"context"
	"errors"
	"time"

	"github.com/immigrant-voices/backend/internal/entity"
	"github.com/immigrant-voices/backend/internal/model"
	"github.com/immigrant-voices/backend/internal/repository"
	"github.com/immigrant-voices/backend/pkg/errorx"
	"github.com/immigrant-voices/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type PollDomain interface {
	Vote(context.Context, *model.VotePollRequest) (*model.VotePollResponse, error)
	Get(context.Context, *model.GetPollRequest) (*model.GetPollResponse, error)
}

type pollDomain struct {
	pollRepo  repository.PollRepository
	storyRepo repository.StoryRepository
}

func NewPollDomain(
	pollRepo repository.PollRepository,
	storyRepo repository.StoryRepository,
) PollDomain {
	return &pollDomain{pollRepo: pollRepo, storyRepo: storyRepo}
}

func (d *pollDomain) Vote(
	ctx context.Context, req *model.VotePollRequest,
) (*model.VotePollResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	option, err := d.pollRepo.GetOptionByID(ctx, req.PollOptionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found poll option")
		}

		xcontext.Logger(ctx).Errorf("Cannot get poll option: %v", err)
		return nil, errorx.Unknown
	}

	poll, err := d.pollRepo.GetByID(ctx, option.PollID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get poll: %v", err)
		return nil, errorx.Unknown
	}

	if poll.ExpiresAt.Valid && poll.ExpiresAt.Time.Before(time.Now()) {
		return nil, errorx.New(errorx.PollExpired, "This poll is expired")
	}

	// The vote has a (poll, user) primary key, so voting a second time for
	// any option fails the insert regardless of interleaving.
	if _, err := d.pollRepo.GetVote(ctx, poll.ID, userID); err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "You already voted in this poll")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot check existing vote: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	err = d.pollRepo.CreateVote(ctx, &entity.PollVote{
		PollID:   poll.ID,
		UserID:   userID,
		OptionID: option.ID,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create vote: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.pollRepo.IncreaseVoteCount(ctx, option.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase votes counter: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.VotePollResponse{}, nil
}

func (d *pollDomain) Get(
	ctx context.Context, req *model.GetPollRequest,
) (*model.GetPollResponse, error) {
	poll, err := d.pollRepo.GetByStoryID(ctx, req.StoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found poll")
		}

		xcontext.Logger(ctx).Errorf("Cannot get poll: %v", err)
		return nil, errorx.Unknown
	}

	options, err := d.pollRepo.GetOptions(ctx, poll.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get poll options: %v", err)
		return nil, errorx.Unknown
	}

	votedOptionID := ""
	if userID := xcontext.RequestUserID(ctx); userID != "" {
		vote, err := d.pollRepo.GetVote(ctx, poll.ID, userID)
		if err == nil {
			votedOptionID = vote.OptionID
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get vote: %v", err)
			return nil, errorx.Unknown
		}
	}

	resp := model.GetPollResponse(model.ConvertPoll(poll, options, votedOptionID))
	return &resp, nil
}
