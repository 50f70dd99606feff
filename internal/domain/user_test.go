package domain

import (
	"context"
	"testing"

	"github.com/immigrant-voices/backend/internal/model"
	"github.com/immigrant-voices/backend/internal/repository"
	"github.com/immigrant-voices/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_userDomain_GetMeAndGetUser(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	userDomain := NewUserDomain(repository.NewUserRepository(), &testutil.MockRedisClient{})
	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.User1.ID)

	me, err := userDomain.GetMe(ctxUser1, &model.GetMeRequest{})
	require.NoError(t, err)
	require.Equal(t, testutil.User1.Name, me.Name)
	require.Equal(t, string(testutil.User1.Role), me.Role)

	// Public profiles resolve by id or name and never expose the role.
	byID, err := userDomain.GetUser(ctx, &model.GetUserRequest{ID: testutil.User2.ID})
	require.NoError(t, err)
	require.Equal(t, testutil.User2.Name, byID.Name)
	require.Empty(t, byID.Role)

	byName, err := userDomain.GetUser(ctx, &model.GetUserRequest{Name: testutil.User2.Name})
	require.NoError(t, err)
	require.Equal(t, testutil.User2.ID, byName.ID)

	_, err = userDomain.GetUser(ctx, &model.GetUserRequest{})
	require.Equal(t, "Expected an user id or username", err.Error())

	_, err = userDomain.GetUser(ctx, &model.GetUserRequest{Name: "nobody"})
	require.Equal(t, "Not found user", err.Error())
}

func Test_userDomain_UpdateMe(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	userDomain := NewUserDomain(repository.NewUserRepository(), &testutil.MockRedisClient{})
	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.User1.ID)

	_, err := userDomain.UpdateMe(ctxUser1, &model.UpdateMeRequest{Name: testutil.User2.Name})
	require.Equal(t, "This username is already taken", err.Error())

	// Keeping your own name is fine.
	_, err = userDomain.UpdateMe(ctxUser1, &model.UpdateMeRequest{
		Name: testutil.User1.Name, Bio: "Cook, mother, storyteller", CountryNow: "Canada"})
	require.NoError(t, err)

	me, err := userDomain.GetMe(ctxUser1, &model.GetMeRequest{})
	require.NoError(t, err)
	require.Equal(t, "Cook, mother, storyteller", me.Bio)
}

func Test_userDomain_GetSuggestedUsers(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	userDomain := NewUserDomain(repository.NewUserRepository(), &testutil.MockRedisClient{})
	ctxUser1 := testutil.MockContextWithUserID(ctx, testutil.User1.ID)

	suggested, err := userDomain.GetSuggestedUsers(ctxUser1, &model.GetSuggestedUsersRequest{})
	require.NoError(t, err)
	for _, user := range suggested.Users {
		require.NotEqual(t, testutil.User1.ID, user.ID)
	}

	// A warm cache short-circuits the query.
	cachedDomain := NewUserDomain(repository.NewUserRepository(), &testutil.MockRedisClient{
		GetObjFunc: func(ctx context.Context, key string, value any) error {
			*(value.(*[]model.User)) = []model.User{{ID: "cached", Name: "cached"}}
			return nil
		},
	})

	suggested, err = cachedDomain.GetSuggestedUsers(ctxUser1, &model.GetSuggestedUsersRequest{})
	require.NoError(t, err)
	require.Len(t, suggested.Users, 1)
	require.Equal(t, "cached", suggested.Users[0].ID)
}
