package domain

import (
	"testing"
	"time"

	"github.com/immigrant-voices/backend/internal/model"
	"github.com/immigrant-voices/backend/internal/repository"
	"github.com/immigrant-voices/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_pollDomain_VoteScenario(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	storyDomain := newStoryDomain()
	pollDomain := NewPollDomain(repository.NewPollRepository(), repository.NewStoryRepository())

	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	story, err := storyDomain.Create(ctxUser1, &model.CreateStoryRequest{
		Title:   "Where should I settle?",
		Content: "Torn between two cities.",
		Poll: &model.CreatePollPayload{
			Question: "Which city?",
			Options:  []string{"Berlin", "Hamburg"},
		},
	})
	require.NoError(t, err)

	poll, err := pollDomain.Get(ctx, &model.GetPollRequest{StoryID: story.ID})
	require.NoError(t, err)
	require.Len(t, poll.Options, 2)
	require.Equal(t, "Berlin", poll.Options[0].Content)
	require.Empty(t, poll.VotedOptionID)

	// User2 votes for the first option.
	ctxUser2 := testutil.MockContextWithUserID(ctx, testutil.User2.ID)
	_, err = pollDomain.Vote(ctxUser2, &model.VotePollRequest{PollOptionID: poll.Options[0].ID})
	require.NoError(t, err)

	// Voting again fails, even for another option.
	_, err = pollDomain.Vote(ctxUser2, &model.VotePollRequest{PollOptionID: poll.Options[1].ID})
	require.Equal(t, "You already voted in this poll", err.Error())

	poll, err = pollDomain.Get(ctxUser2, &model.GetPollRequest{StoryID: story.ID})
	require.NoError(t, err)
	require.Equal(t, 1, poll.Options[0].VotesCount)
	require.Equal(t, 0, poll.Options[1].VotesCount)
	require.Equal(t, 1, poll.TotalVotes)
	require.Equal(t, poll.Options[0].ID, poll.VotedOptionID)

	// Unknown option.
	_, err = pollDomain.Vote(ctxUser2, &model.VotePollRequest{PollOptionID: "no-such-option"})
	require.Equal(t, "Not found poll option", err.Error())

	// Stories without a poll have nothing to return.
	_, err = pollDomain.Get(ctx, &model.GetPollRequest{StoryID: testutil.Story1.ID})
	require.Equal(t, "Not found poll", err.Error())
}

func Test_pollDomain_ExpiredPoll(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	storyDomain := newStoryDomain()
	pollDomain := NewPollDomain(repository.NewPollRepository(), repository.NewStoryRepository())

	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	story, err := storyDomain.Create(ctxUser1, &model.CreateStoryRequest{
		Title:   "Too late to vote",
		Content: "This poll closed yesterday.",
		Poll: &model.CreatePollPayload{
			Question:  "Did you miss it?",
			Options:   []string{"Yes", "No"},
			ExpiresAt: time.Now().Add(-time.Hour).Format(model.DefaultTimeLayout),
		},
	})
	require.NoError(t, err)

	poll, err := pollDomain.Get(ctx, &model.GetPollRequest{StoryID: story.ID})
	require.NoError(t, err)

	ctxUser2 := testutil.MockContextWithUserID(ctx, testutil.User2.ID)
	_, err = pollDomain.Vote(ctxUser2, &model.VotePollRequest{PollOptionID: poll.Options[0].ID})
	require.Equal(t, "This poll is expired", err.Error())

	// An invalid expiration time is rejected at creation.
	_, err = storyDomain.Create(ctxUser1, &model.CreateStoryRequest{
		Title:   "Bad poll",
		Content: "should fail",
		Poll: &model.CreatePollPayload{
			Question:  "When?",
			Options:   []string{"Now", "Later"},
			ExpiresAt: "tomorrow",
		},
	})
	require.Equal(t, "Invalid poll expiration time", err.Error())
}
