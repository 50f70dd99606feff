package middleware

import (
	"context"
	"strings"

	"github.com/immigrant-voices/backend/pkg/errorx"
	"github.com/immigrant-voices/backend/pkg/router"
	"github.com/immigrant-voices/backend/pkg/xcontext"
)

// Authenticate rejects requests without a valid bearer token.
func Authenticate() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		newCtx, err := verifyAccessToken(ctx)
		if err != nil {
			return nil, err
		}

		return newCtx, nil
	}
}

// AuthenticateOptional resolves the user id when a valid token is present but
// lets anonymous requests through.
func AuthenticateOptional() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		newCtx, err := verifyAccessToken(ctx)
		if err != nil {
			return nil, nil
		}

		return newCtx, nil
	}
}

func verifyAccessToken(ctx context.Context) (context.Context, error) {
	token := getAccessToken(ctx)
	if token == "" {
		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}

	accessToken, err := xcontext.TokenEngine(ctx).Verify(token)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Failed to verify access token: %v", err)
		return nil, errorx.New(errorx.Unauthenticated, "Invalid access token")
	}

	return xcontext.WithRequestUserID(ctx, accessToken.ID), nil
}

// getAccessToken reads the token from the Authorization header, or from the
// session cookie when the header is absent.
func getAccessToken(ctx context.Context) string {
	authorization := xcontext.HTTPRequest(ctx).Header.Get("Authorization")
	auth, token, found := strings.Cut(authorization, " ")
	if found {
		if auth == "Bearer" {
			return token
		}
		return ""
	}

	session, err := xcontext.SessionStore(ctx).
		Get(xcontext.HTTPRequest(ctx), xcontext.Configs(ctx).Session.Name)
	if err != nil {
		return ""
	}

	token, _ = session.Values["access_token"].(string)
	return token
}
