package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/immigrant-voices/backend/pkg/errorx"
	"github.com/immigrant-voices/backend/pkg/xcontext"
)

type response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func writeResponse(ctx context.Context, w http.ResponseWriter, resp any, err error) {
	w.Header().Set("Content-Type", "application/json")

	if err != nil {
		errx := errorx.Unknown
		if !errors.As(err, &errx) {
			errx = errorx.Unknown
		}

		w.WriteHeader(errx.Code.HTTPStatus())
		writeJson(ctx, w, response{Success: false, Error: errx.Message})
		return
	}

	writeJson(ctx, w, response{Success: true, Data: resp})
}

func writeJson(ctx context.Context, w http.ResponseWriter, resp response) {
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot write the response: %v", err)
	}
}
