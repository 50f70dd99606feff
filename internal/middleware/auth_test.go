package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/immigrant-voices/backend/internal/model"
	"github.com/immigrant-voices/backend/pkg/testutil"
	"github.com/immigrant-voices/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_Authenticate_BearerHeader(t *testing.T) {
	ctx := testutil.MockContext()

	token, err := xcontext.TokenEngine(ctx).Generate("user-1", model.AccessToken{ID: "user-1"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	newCtx, err := Authenticate()(xcontext.WithHTTPRequest(ctx, req))
	require.NoError(t, err)
	require.Equal(t, "user-1", xcontext.RequestUserID(newCtx))
}

func Test_Authenticate_SessionCookieFallback(t *testing.T) {
	ctx := testutil.MockContext()

	token, err := xcontext.TokenEngine(ctx).Generate("user-1", model.AccessToken{ID: "user-1"})
	require.NoError(t, err)

	// Persist the token the way a successful login does.
	w := httptest.NewRecorder()
	loginReq := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	loginCtx := xcontext.WithHTTPRequest(ctx, loginReq)
	loginCtx = xcontext.WithHTTPWriter(loginCtx, w)
	loginCtx = xcontext.WithResponse(loginCtx, &model.LoginResponse{AccessToken: token})
	_, err = HandleSaveSession()(loginCtx)
	require.NoError(t, err)

	// A request without the Authorization header still authenticates
	// through the session cookie.
	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	for _, cookie := range w.Result().Cookies() {
		req.AddCookie(cookie)
	}

	newCtx, err := Authenticate()(xcontext.WithHTTPRequest(ctx, req))
	require.NoError(t, err)
	require.Equal(t, "user-1", xcontext.RequestUserID(newCtx))

	// Without either credential the request is rejected.
	bare := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	_, err = Authenticate()(xcontext.WithHTTPRequest(ctx, bare))
	require.Equal(t, "You need to authenticate before", err.Error())
}
