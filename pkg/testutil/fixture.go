package testutil

import (
	"context"
	"time"

	"github.com/immigrant-voices/backend/internal/entity"
	"github.com/immigrant-voices/backend/internal/repository"
)

var (
	User1 = &entity.User{
		Base:        entity.Base{ID: "user1"},
		Name:        "maria",
		Email:       "maria@example.com",
		Bio:         "From Lima, now in Toronto",
		CountryFrom: "Peru",
		CountryNow:  "Canada",
		Role:        entity.RoleUser,
	}

	User2 = &entity.User{
		Base:        entity.Base{ID: "user2"},
		Name:        "amir",
		Email:       "amir@example.com",
		CountryFrom: "Iran",
		CountryNow:  "Germany",
		Role:        entity.RoleUser,
	}

	User3 = &entity.User{
		Base:  entity.Base{ID: "user3"},
		Name:  "admin",
		Email: "admin@example.com",
		Role:  entity.RoleAdmin,
	}

	Story1 = &entity.Story{
		Base:        entity.Base{ID: "story1"},
		AuthorID:    "user1",
		Title:       "First Week In A New Country",
		Slug:        "first-week-in-a-new-country",
		Content:     "Nobody tells you how loud the silence is.",
		Category:    "arrival",
		PublishedAt: time.Now().AddDate(0, 0, -1),
	}

	Story2 = &entity.Story{
		Base:        entity.Base{ID: "story2"},
		AuthorID:    "user2",
		Title:       "Finding Work Without A Network",
		Slug:        "finding-work-without-a-network",
		Content:     "My first hundred applications went nowhere.",
		Category:    "work",
		PublishedAt: time.Now().AddDate(0, 0, -2),
	}

	Community1 = &entity.Community{
		Base:        entity.Base{ID: "community1"},
		CreatedBy:   "user1",
		Handle:      "newcomers-toronto",
		DisplayName: "Newcomers in Toronto",
		MemberCount: 1,
	}

	Job1 = &entity.Job{
		Base:        entity.Base{ID: "job1"},
		PostedBy:    "user1",
		Title:       "Line Cook",
		Company:     "La Cocina",
		Location:    "Toronto",
		Category:    "hospitality",
		IsOpen:      true,
		Description: "No local experience required.",
	}
)

func CreateFixtureDb(ctx context.Context) {
	insertUsers(ctx)
	insertStories(ctx)
	insertCommunities(ctx)
	insertJobs(ctx)
}

func insertUsers(ctx context.Context) {
	userRepo := repository.NewUserRepository()

	for _, user := range []*entity.User{User1, User2, User3} {
		u := *user
		if err := userRepo.Create(ctx, &u); err != nil {
			panic(err)
		}
	}
}

func insertStories(ctx context.Context) {
	storyRepo := repository.NewStoryRepository()

	for _, story := range []*entity.Story{Story1, Story2} {
		st := *story
		if err := storyRepo.Create(ctx, &st); err != nil {
			panic(err)
		}
	}
}

func insertCommunities(ctx context.Context) {
	communityRepo := repository.NewCommunityRepository()
	memberRepo := repository.NewCommunityMemberRepository()

	c := *Community1
	if err := communityRepo.Create(ctx, &c); err != nil {
		panic(err)
	}

	err := memberRepo.Create(ctx, &entity.CommunityMember{
		UserID:      Community1.CreatedBy,
		CommunityID: Community1.ID,
	})
	if err != nil {
		panic(err)
	}
}

func insertJobs(ctx context.Context) {
	jobRepo := repository.NewJobRepository()

	j := *Job1
	if err := jobRepo.Create(ctx, &j); err != nil {
		panic(err)
	}
}
