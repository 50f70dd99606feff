package router

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"time"

	"github.com/immigrant-voices/backend/pkg/errorx"
	"github.com/immigrant-voices/backend/pkg/xcontext"
)

func wrapHandler[Request, Response any](
	router *Router,
	method string,
	handler HandlerFunc[Request, Response],
) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ctx = xcontext.WithHTTPRequest(ctx, r)
		ctx = xcontext.WithHTTPWriter(ctx, w)
		ctx = xcontext.WithDB(ctx, router.db)
		ctx = xcontext.WithConfigs(ctx, router.cfg)
		ctx = xcontext.WithLogger(ctx, router.logger)
		ctx = xcontext.WithTokenEngine(ctx, router.tokenEngine)
		ctx = xcontext.WithSessionStore(ctx, router.sessionStore)
		ctx = xcontext.WithStartTime(ctx, time.Now())

		resp, err := func() (*Response, error) {
			for _, m := range router.befores {
				newCtx, err := m(ctx)
				if err != nil {
					return nil, err
				}

				if newCtx != nil {
					ctx = newCtx
				}
			}

			var req Request
			if err := bindRequest(r, method, &req); err != nil {
				return nil, errorx.New(errorx.BadRequest, "Cannot bind the request")
			}

			return handler(ctx, &req)
		}()

		if err != nil {
			ctx = xcontext.WithError(ctx, err)
		} else {
			ctx = xcontext.WithResponse(ctx, resp)
		}

		for _, m := range router.afters {
			if _, err := m(ctx); err != nil {
				xcontext.Logger(ctx).Errorf("After middleware failed: %v", err)
			}
		}

		writeResponse(ctx, w, resp, err)

		for _, c := range router.closers {
			c(ctx)
		}
	})
}

// bindRequest fills the request struct from the http request. Path parameters
// come from fields tagged with `path`; GET and DELETE requests bind the
// remaining fields from the query string by json tag; other methods decode a
// JSON body (an empty body is fine for path-only requests).
func bindRequest(r *http.Request, method string, req any) error {
	if method != http.MethodGet && method != http.MethodDelete {
		if err := json.NewDecoder(r.Body).Decode(req); err != nil &&
			!errors.Is(err, io.EOF) {
			return err
		}
	}

	v := reflect.ValueOf(req).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if name := field.Tag.Get("path"); name != "" {
			if err := setField(v.Field(i), r.PathValue(name)); err != nil {
				return err
			}

			continue
		}

		if method != http.MethodGet && method != http.MethodDelete {
			continue
		}

		name := field.Tag.Get("json")
		if name == "" || name == "-" {
			continue
		}

		queryVal := r.URL.Query().Get(name)
		if queryVal == "" {
			continue
		}

		if err := setField(v.Field(i), queryVal); err != nil {
			return err
		}
	}

	return nil
}

func setField(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return err
		}

		field.SetInt(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}

		field.SetBool(b)
	}

	return nil
}
