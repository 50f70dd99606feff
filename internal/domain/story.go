package domain

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/immigrant-voices/backend/internal/common"
	"github.com/immigrant-voices/backend/internal/entity"
	"github.com/immigrant-voices/backend/internal/model"
	"github.com/immigrant-voices/backend/internal/repository"
	"github.com/immigrant-voices/backend/pkg/crypto"
	"github.com/immigrant-voices/backend/pkg/errorx"
	"github.com/immigrant-voices/backend/pkg/xcontext"
	"github.com/immigrant-voices/backend/pkg/xredis"
	"gorm.io/gorm"
)

var (
	hashtagRegex = regexp.MustCompile(`#[a-zA-Z][a-zA-Z0-9_]*`)
	slugRegex    = regexp.MustCompile(`[^a-z0-9]+`)
)

type StoryDomain interface {
	Create(context.Context, *model.CreateStoryRequest) (*model.CreateStoryResponse, error)
	Get(context.Context, *model.GetStoryRequest) (*model.GetStoryResponse, error)
	GetList(context.Context, *model.GetStoriesRequest) (*model.GetStoriesResponse, error)
	Update(context.Context, *model.UpdateStoryRequest) (*model.UpdateStoryResponse, error)
	Delete(context.Context, *model.DeleteStoryRequest) (*model.DeleteStoryResponse, error)
	GetTrendingTags(context.Context, *model.GetTrendingTagsRequest) (*model.GetTrendingTagsResponse, error)
}

type storyDomain struct {
	storyRepo    repository.StoryRepository
	userRepo     repository.UserRepository
	likeRepo     repository.LikeRepository
	bookmarkRepo repository.BookmarkRepository
	commentRepo  repository.CommentRepository
	tagRepo      repository.TagRepository
	pollRepo     repository.PollRepository
	repostRepo   repository.RepostRepository
	redisClient  xredis.Client
	roleVerifier *common.GlobalRoleVerifier
}

func NewStoryDomain(
	storyRepo repository.StoryRepository,
	userRepo repository.UserRepository,
	likeRepo repository.LikeRepository,
	bookmarkRepo repository.BookmarkRepository,
	commentRepo repository.CommentRepository,
	tagRepo repository.TagRepository,
	pollRepo repository.PollRepository,
	repostRepo repository.RepostRepository,
	redisClient xredis.Client,
) StoryDomain {
	return &storyDomain{
		storyRepo:    storyRepo,
		userRepo:     userRepo,
		likeRepo:     likeRepo,
		bookmarkRepo: bookmarkRepo,
		commentRepo:  commentRepo,
		tagRepo:      tagRepo,
		pollRepo:     pollRepo,
		repostRepo:   repostRepo,
		redisClient:  redisClient,
		roleVerifier: common.NewGlobalRoleVerifier(userRepo),
	}
}

func (d *storyDomain) Create(
	ctx context.Context, req *model.CreateStoryRequest,
) (*model.CreateStoryResponse, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty title")
	}

	if strings.TrimSpace(req.Content) == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty content")
	}

	if req.Poll != nil {
		if strings.TrimSpace(req.Poll.Question) == "" {
			return nil, errorx.New(errorx.BadRequest, "Not allow an empty poll question")
		}

		if len(req.Poll.Options) < 2 {
			return nil, errorx.New(errorx.BadRequest, "A poll needs at least two options")
		}
	}

	slug, err := d.generateSlug(ctx, req.Title)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate slug: %v", err)
		return nil, errorx.Unknown
	}

	story := &entity.Story{
		Base:        entity.Base{ID: uuid.NewString()},
		AuthorID:    xcontext.RequestUserID(ctx),
		Title:       req.Title,
		Slug:        slug,
		Content:     req.Content,
		Excerpt:     req.Excerpt,
		Category:    req.Category,
		PublishedAt: time.Now(),
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.storyRepo.Create(ctx, story); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create story: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.linkHashtags(ctx, story.ID, req.Content); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot link hashtags: %v", err)
		return nil, errorx.Unknown
	}

	if req.Poll != nil {
		if err := d.createPoll(ctx, story.ID, req.Poll); err != nil {
			return nil, err
		}
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.CreateStoryResponse{ID: story.ID, Slug: story.Slug}, nil
}

func (d *storyDomain) Get(
	ctx context.Context, req *model.GetStoryRequest,
) (*model.GetStoryResponse, error) {
	story, err := d.resolveStory(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	stories, err := convertStories(ctx, d.userRepo, d.likeRepo, d.bookmarkRepo,
		d.commentRepo, d.tagRepo, []entity.Story{*story}, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot convert story: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.GetStoryResponse(stories[0])
	return &resp, nil
}

func (d *storyDomain) GetList(
	ctx context.Context, req *model.GetStoriesRequest,
) (*model.GetStoriesResponse, error) {
	offset, limit, err := pagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	filter := repository.GetListStoryFilter{
		Category: req.Category,
		TagName:  req.Tag,
		AuthorID: req.AuthorID,
		Offset:   offset,
		Limit:    limit,
	}

	if req.Following {
		userID := xcontext.RequestUserID(ctx)
		if userID == "" {
			return nil, errorx.New(errorx.Unauthenticated, "You need to login to view the following feed")
		}

		filter.FollowedBy = userID
	}

	stories, err := d.storyRepo.GetList(ctx, filter)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get stories: %v", err)
		return nil, errorx.Unknown
	}

	clientStories, err := convertStories(ctx, d.userRepo, d.likeRepo, d.bookmarkRepo,
		d.commentRepo, d.tagRepo, stories, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot convert stories: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetStoriesResponse{Stories: clientStories}, nil
}

func (d *storyDomain) Update(
	ctx context.Context, req *model.UpdateStoryRequest,
) (*model.UpdateStoryResponse, error) {
	story, err := d.resolveStory(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if story.AuthorID != xcontext.RequestUserID(ctx) {
		if err := d.roleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
			return nil, errorx.New(errorx.PermissionDenied, "Only the author can update this story")
		}
	}

	if story.IsRepost {
		return nil, errorx.New(errorx.BadRequest, "Not allow updating a repost directly")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	err = d.storyRepo.UpdateByID(ctx, story.ID, entity.Story{
		Title:    req.Title,
		Content:  req.Content,
		Excerpt:  req.Excerpt,
		Category: req.Category,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update story: %v", err)
		return nil, errorx.Unknown
	}

	if req.Content != "" {
		oldTags, err := d.tagRepo.DeleteStoryTags(ctx, story.ID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot unlink old hashtags: %v", err)
			return nil, errorx.Unknown
		}

		for _, name := range oldTags {
			if err := d.tagRepo.DecreaseUsage(ctx, name); err != nil {
				xcontext.Logger(ctx).Errorf("Cannot decrease tag usage: %v", err)
				return nil, errorx.Unknown
			}
		}

		if err := d.linkHashtags(ctx, story.ID, req.Content); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot link hashtags: %v", err)
			return nil, errorx.Unknown
		}
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.UpdateStoryResponse{}, nil
}

func (d *storyDomain) Delete(
	ctx context.Context, req *model.DeleteStoryRequest,
) (*model.DeleteStoryResponse, error) {
	story, err := d.resolveStory(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if story.AuthorID != xcontext.RequestUserID(ctx) {
		if err := d.roleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
			return nil, errorx.New(errorx.PermissionDenied, "Only the author can delete this story")
		}
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	tags, err := d.tagRepo.DeleteStoryTags(ctx, story.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot unlink hashtags: %v", err)
		return nil, errorx.Unknown
	}

	for _, name := range tags {
		if err := d.tagRepo.DecreaseUsage(ctx, name); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot decrease tag usage: %v", err)
			return nil, errorx.Unknown
		}
	}

	if story.IsRepost {
		// Deleting the clone through the story endpoint is an undo of the
		// repost, so the original's counter and the tracking row go with it.
		repost, err := d.repostRepo.GetByRepostStoryID(ctx, story.ID)
		if err == nil {
			if err := d.repostRepo.Delete(ctx, repost.UserID, repost.StoryID); err != nil {
				xcontext.Logger(ctx).Errorf("Cannot delete repost record: %v", err)
				return nil, errorx.Unknown
			}

			if err := d.storyRepo.IncreaseReposts(ctx, repost.StoryID, -1); err != nil {
				xcontext.Logger(ctx).Errorf("Cannot decrease reposts counter: %v", err)
				return nil, errorx.Unknown
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get repost record: %v", err)
			return nil, errorx.Unknown
		}
	}

	if err := d.likeRepo.DeleteByStoryID(ctx, story.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete likes of story: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.bookmarkRepo.DeleteByStoryID(ctx, story.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete bookmarks of story: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.commentRepo.DeleteByStoryID(ctx, story.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete comments of story: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.pollRepo.DeleteByStoryID(ctx, story.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete poll of story: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.repostRepo.DeleteByStoryID(ctx, story.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete repost records of story: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.storyRepo.DeleteByID(ctx, story.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete story: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.DeleteStoryResponse{}, nil
}

func (d *storyDomain) GetTrendingTags(
	ctx context.Context, req *model.GetTrendingTagsRequest,
) (*model.GetTrendingTagsResponse, error) {
	_, limit, err := pagination(ctx, 0, req.Limit)
	if err != nil {
		return nil, err
	}

	var cached []model.Tag
	err = d.redisClient.GetObj(ctx, common.RedisKeyTrendingTags, &cached)
	if err == nil && len(cached) > 0 {
		if len(cached) > limit {
			cached = cached[:limit]
		}

		return &model.GetTrendingTagsResponse{Tags: cached}, nil
	}

	tags, err := d.tagRepo.GetTrending(ctx, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get trending tags: %v", err)
		return nil, errorx.Unknown
	}

	clientTags := []model.Tag{}
	for i := range tags {
		clientTags = append(clientTags, model.ConvertTag(&tags[i]))
	}

	err = d.redisClient.SetObj(ctx, common.RedisKeyTrendingTags,
		clientTags, xcontext.Configs(ctx).Cache.TrendingTagsTTL)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot cache trending tags: %v", err)
	}

	return &model.GetTrendingTagsResponse{Tags: clientTags}, nil
}

// resolveStory accepts either a story id or its slug.
func (d *storyDomain) resolveStory(ctx context.Context, idOrSlug string) (*entity.Story, error) {
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

// generateSlug derives a url-safe slug from the title and appends a random
// suffix when the plain slug is already taken.
func (d *storyDomain) generateSlug(ctx context.Context, title string) (string, error) {
	slug := strings.Trim(slugRegex.ReplaceAllString(strings.ToLower(title), "-"), "-")
	if slug == "" {
		slug = "story"
	}

	_, err := d.storyRepo.GetBySlug(ctx, slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return slug, nil
	}

	if err != nil {
		return "", err
	}

	suffix := crypto.GenerateRandomAlphabet(8)
	return slug + "-" + strings.ToLower(suffix), nil
}

// linkHashtags extracts inline hashtags from the content and links them to the
// story, creating tag rows as needed.
func (d *storyDomain) linkHashtags(ctx context.Context, storyID, content string) error {
	seen := map[string]bool{}
	for _, raw := range hashtagRegex.FindAllString(content, -1) {
		name := strings.ToLower(strings.TrimPrefix(raw, "#"))
		if seen[name] {
			continue
		}
		seen[name] = true

		if err := d.tagRepo.Upsert(ctx, name); err != nil {
			return err
		}

		err := d.tagRepo.CreateStoryTag(ctx, &entity.StoryTag{StoryID: storyID, TagName: name})
		if err != nil {
			return err
		}
	}

	return nil
}

func (d *storyDomain) createPoll(ctx context.Context, storyID string, req *model.CreatePollPayload) error {
	poll := &entity.Poll{
		Base:     entity.Base{ID: uuid.NewString()},
		StoryID:  storyID,
		Question: req.Question,
	}

	if req.ExpiresAt != "" {
		expiresAt, err := time.Parse(model.DefaultTimeLayout, req.ExpiresAt)
		if err != nil {
			return errorx.New(errorx.BadRequest, "Invalid poll expiration time")
		}

		poll.ExpiresAt = sql.NullTime{Valid: true, Time: expiresAt}
	}

	if err := d.pollRepo.Create(ctx, poll); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create poll: %v", err)
		return errorx.Unknown
	}

	options := []*entity.PollOption{}
	for i, content := range req.Options {
		options = append(options, &entity.PollOption{
			Base:         entity.Base{ID: uuid.NewString()},
			PollID:       poll.ID,
			Content:      content,
			DisplayOrder: i,
		})
	}

	if err := d.pollRepo.CreateOptions(ctx, options); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create poll options: %v", err)
		return errorx.Unknown
	}

	return nil
}
