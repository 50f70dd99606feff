package domain

import (
	"testing"

	"github.com/immigrant-voices/backend/internal/model"
	"github.com/immigrant-voices/backend/internal/repository"
	"github.com/immigrant-voices/backend/pkg/testutil"
	"github.com/immigrant-voices/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_authDomain_RegisterAndLogin(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	authDomain := NewAuthDomain(
		repository.NewUserRepository(), repository.NewRefreshTokenRepository())

	// Register successfully.
	resp, err := authDomain.Register(ctx, &model.RegisterRequest{
		Name: "lena", Email: "Lena@Example.com", Password: "password123"})
	require.NoError(t, err)
	require.Equal(t, "lena", resp.User.Name)

	// Cannot reuse the username.
	_, err = authDomain.Register(ctx, &model.RegisterRequest{
		Name: "lena", Email: "other@example.com", Password: "password123"})
	require.Equal(t, "This username is already taken", err.Error())

	// Emails are compared case-insensitively.
	_, err = authDomain.Register(ctx, &model.RegisterRequest{
		Name: "lena2", Email: "LENA@example.com", Password: "password123"})
	require.Equal(t, "This email is already registered", err.Error())

	// Too short password.
	_, err = authDomain.Register(ctx, &model.RegisterRequest{
		Name: "short", Email: "short@example.com", Password: "1234567"})
	require.Equal(t, "Password must be at least 8 characters", err.Error())

	// Wrong password.
	_, err = authDomain.Login(ctx, &model.LoginRequest{
		Email: "lena@example.com", Password: "wrong-password"})
	require.Equal(t, "Invalid email or password", err.Error())

	// Unknown email gets the same answer as a wrong password.
	_, err = authDomain.Login(ctx, &model.LoginRequest{
		Email: "nobody@example.com", Password: "password123"})
	require.Equal(t, "Invalid email or password", err.Error())

	// Login successfully.
	loginResp, err := authDomain.Login(ctx, &model.LoginRequest{
		Email: "lena@example.com", Password: "password123"})
	require.NoError(t, err)
	require.NotEmpty(t, loginResp.AccessToken)
	require.NotEmpty(t, loginResp.RefreshToken)

	// The access token carries the user identity.
	accessToken, err := xcontext.TokenEngine(ctx).Verify(loginResp.AccessToken)
	require.NoError(t, err)
	require.Equal(t, resp.User.ID, accessToken.ID)
	require.Equal(t, "lena", accessToken.Name)
}

func Test_authDomain_RefreshRotation(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	authDomain := NewAuthDomain(
		repository.NewUserRepository(), repository.NewRefreshTokenRepository())

	_, err := authDomain.Register(ctx, &model.RegisterRequest{
		Name: "lena", Email: "lena@example.com", Password: "password123"})
	require.NoError(t, err)

	loginResp, err := authDomain.Login(ctx, &model.LoginRequest{
		Email: "lena@example.com", Password: "password123"})
	require.NoError(t, err)

	// Refresh successfully and receive a rotated pair.
	refreshResp, err := authDomain.Refresh(ctx, &model.RefreshTokenRequest{
		RefreshToken: loginResp.RefreshToken})
	require.NoError(t, err)
	require.NotEmpty(t, refreshResp.AccessToken)
	require.NotEqual(t, loginResp.RefreshToken, refreshResp.RefreshToken)

	// Replaying the pre-rotation token reveals the family as stolen.
	_, err = authDomain.Refresh(ctx, &model.RefreshTokenRequest{
		RefreshToken: loginResp.RefreshToken})
	require.Equal(t,
		"Your refresh token will be revoked because it is detected as stolen",
		err.Error())

	// The whole family is revoked, including the rotated token.
	_, err = authDomain.Refresh(ctx, &model.RefreshTokenRequest{
		RefreshToken: refreshResp.RefreshToken})
	require.Equal(t, "Invalid refresh token", err.Error())

	// A garbage token never reaches the database.
	_, err = authDomain.Refresh(ctx, &model.RefreshTokenRequest{
		RefreshToken: "not-a-token"})
	require.Equal(t, "Invalid refresh token", err.Error())
}
