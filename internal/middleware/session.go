package middleware

import (
	"context"
	"errors"

	"github.com/immigrant-voices/backend/pkg/router"
	"github.com/immigrant-voices/backend/pkg/xcontext"
)

// SessionResponse is implemented by responses whose values must be persisted
// into the session cookie after a successful request.
type SessionResponse interface {
	SessionInfo() map[string]any
}

func HandleSaveSession() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		sessionResp, ok := xcontext.Response(ctx).(SessionResponse)
		if !ok {
			return nil, nil
		}

		sessionInfo := sessionResp.SessionInfo()
		if sessionInfo == nil {
			return nil, errors.New("no session info")
		}

		session, err := xcontext.SessionStore(ctx).
			Get(xcontext.HTTPRequest(ctx), xcontext.Configs(ctx).Session.Name)
		if err != nil {
			return nil, err
		}

		for k, v := range sessionInfo {
			session.Values[k] = v
		}

		err = session.Save(xcontext.HTTPRequest(ctx), xcontext.HTTPWriter(ctx))
		if err != nil {
			return nil, err
		}

		return nil, nil
	}
}
