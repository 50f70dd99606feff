package domain

import (
	"testing"

	"github.com/immigrant-voices/backend/internal/model"
	"github.com/immigrant-voices/backend/internal/repository"
	"github.com/immigrant-voices/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newStoryDomain() StoryDomain {
	return NewStoryDomain(
		repository.NewStoryRepository(),
		repository.NewUserRepository(),
		repository.NewLikeRepository(),
		repository.NewBookmarkRepository(),
		repository.NewCommentRepository(),
		repository.NewTagRepository(),
		repository.NewPollRepository(),
		repository.NewRepostRepository(),
		&testutil.MockRedisClient{},
	)
}

func Test_storyDomain_CreateAndSlug(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	ctx = testutil.MockContextWithUserID(ctx, testutil.User1.ID)

	storyDomain := newStoryDomain()

	// Create successfully with a slug derived from the title.
	resp, err := storyDomain.Create(ctx, &model.CreateStoryRequest{
		Title:   "Learning German at 40!",
		Content: "It took me three tries to pass B1.",
	})
	require.NoError(t, err)
	require.Equal(t, "learning-german-at-40", resp.Slug)

	// A second story with the same title gets a suffixed slug.
	resp2, err := storyDomain.Create(ctx, &model.CreateStoryRequest{
		Title:   "Learning German at 40!",
		Content: "Another take on the same topic.",
	})
	require.NoError(t, err)
	require.NotEqual(t, resp.Slug, resp2.Slug)
	require.Contains(t, resp2.Slug, "learning-german-at-40-")

	// The story is resolvable by both id and slug.
	byID, err := storyDomain.Get(ctx, &model.GetStoryRequest{ID: resp.ID})
	require.NoError(t, err)
	bySlug, err := storyDomain.Get(ctx, &model.GetStoryRequest{ID: resp.Slug})
	require.NoError(t, err)
	require.Equal(t, byID.ID, bySlug.ID)

	// Cannot create with an empty title or content.
	_, err = storyDomain.Create(ctx, &model.CreateStoryRequest{Content: "no title"})
	require.Equal(t, "Not allow an empty title", err.Error())
	_, err = storyDomain.Create(ctx, &model.CreateStoryRequest{Title: "no content"})
	require.Equal(t, "Not allow an empty content", err.Error())

	// A poll needs at least two options.
	_, err = storyDomain.Create(ctx, &model.CreateStoryRequest{
		Title:   "Poll story",
		Content: "vote below",
		Poll:    &model.CreatePollPayload{Question: "Where to?", Options: []string{"Berlin"}},
	})
	require.Equal(t, "A poll needs at least two options", err.Error())
}

func Test_storyDomain_Hashtags(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	ctx = testutil.MockContextWithUserID(ctx, testutil.User1.ID)

	storyDomain := newStoryDomain()

	// Hashtags are extracted case-insensitively and deduplicated; a tag must
	// start with a letter, so "#2024" is plain text.
	resp, err := storyDomain.Create(ctx, &model.CreateStoryRequest{
		Title:   "Paperwork",
		Content: "Waiting on my #Visa, yes the #visa, plus a #work_permit in #2024.",
	})
	require.NoError(t, err)

	story, err := storyDomain.Get(ctx, &model.GetStoryRequest{ID: resp.ID})
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"visa", "work_permit"}, story.Tags)

	// Tag filter finds the story.
	list, err := storyDomain.GetList(ctx, &model.GetStoriesRequest{Tag: "visa"})
	require.NoError(t, err)
	require.Len(t, list.Stories, 1)
	require.Equal(t, resp.ID, list.Stories[0].ID)

	// Trending tags include both with a usage count of one.
	tags, err := storyDomain.GetTrendingTags(ctx, &model.GetTrendingTagsRequest{})
	require.NoError(t, err)
	require.Len(t, tags.Tags, 2)
	for _, tag := range tags.Tags {
		require.Equal(t, 1, tag.UsageCount)
	}
}

func Test_storyDomain_UpdateRetags(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	ctx = testutil.MockContextWithUserID(ctx, testutil.User1.ID)

	storyDomain := newStoryDomain()

	resp, err := storyDomain.Create(ctx, &model.CreateStoryRequest{
		Title:   "Housing",
		Content: "Still searching for a flat #housing",
	})
	require.NoError(t, err)

	// Only the author can update.
	ctxUser2 := testutil.MockContextWithUserID(ctx, testutil.User2.ID)
	_, err = storyDomain.Update(ctxUser2, &model.UpdateStoryRequest{
		ID: resp.ID, Title: "Housing", Content: "hijack"})
	require.Equal(t, "Only the author can update this story", err.Error())

	// Updating the content replaces the hashtag links.
	_, err = storyDomain.Update(ctx, &model.UpdateStoryRequest{
		ID:      resp.ID,
		Title:   "Housing",
		Content: "Found one! #moving",
	})
	require.NoError(t, err)

	story, err := storyDomain.Get(ctx, &model.GetStoryRequest{ID: resp.ID})
	require.NoError(t, err)
	require.Equal(t, []string{"moving"}, story.Tags)
}

func Test_storyDomain_Delete(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	ctx = testutil.MockContextWithUserID(ctx, testutil.User1.ID)

	storyDomain := newStoryDomain()

	// Only the author can delete.
	ctxUser2 := testutil.MockContextWithUserID(ctx, testutil.User2.ID)
	_, err := storyDomain.Delete(ctxUser2, &model.DeleteStoryRequest{ID: testutil.Story1.ID})
	require.Equal(t, "Only the author can delete this story", err.Error())

	_, err = storyDomain.Delete(ctx, &model.DeleteStoryRequest{ID: testutil.Story1.ID})
	require.NoError(t, err)

	_, err = storyDomain.Get(ctx, &model.GetStoryRequest{ID: testutil.Story1.ID})
	require.Equal(t, "Not found story", err.Error())

	// An admin can take down any story.
	ctxAdmin := testutil.MockContextWithUserID(ctx, testutil.User3.ID)
	_, err = storyDomain.Delete(ctxAdmin, &model.DeleteStoryRequest{ID: testutil.Story2.ID})
	require.NoError(t, err)
}

func Test_storyDomain_FollowingFeedNeedsLogin(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	storyDomain := newStoryDomain()

	_, err := storyDomain.GetList(ctx, &model.GetStoriesRequest{Following: true})
	require.Equal(t, "You need to login to view the following feed", err.Error())
}
