package router

import (
	"context"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/immigrant-voices/backend/config"
	"github.com/immigrant-voices/backend/internal/model"
	"github.com/immigrant-voices/backend/pkg/authenticator"
	"github.com/immigrant-voices/backend/pkg/logger"
	"gorm.io/gorm"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before the handler. It can replace the request context
// by returning a non-nil one; returning an error aborts the request.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc runs after the response has been written, with the final response
// or error available through xcontext.
type CloserFunc func(ctx context.Context)

type Router struct {
	mux *http.ServeMux

	db           *gorm.DB
	cfg          config.Configs
	logger       logger.Logger
	tokenEngine  authenticator.TokenEngine[model.AccessToken]
	sessionStore sessions.Store

	befores []MiddlewareFunc
	afters  []MiddlewareFunc
	closers []CloserFunc
}

func New(db *gorm.DB, cfg config.Configs, logger logger.Logger) *Router {
	return &Router{
		mux:          http.NewServeMux(),
		db:           db,
		cfg:          cfg,
		logger:       logger,
		tokenEngine:  authenticator.NewTokenEngine[model.AccessToken](cfg.Auth.TokenSecret, cfg.Auth.AccessToken.Expiration),
		sessionStore: sessions.NewCookieStore([]byte(cfg.Session.Secret)),
	}
}

// Branch returns a router sharing the same mux but with an independent
// middleware chain, so route groups can differ in authentication.
func (r *Router) Branch() *Router {
	clone := *r
	clone.befores = append([]MiddlewareFunc{}, r.befores...)
	clone.afters = append([]MiddlewareFunc{}, r.afters...)
	clone.closers = append([]CloserFunc{}, r.closers...)
	return &clone
}

func (r *Router) Before(m MiddlewareFunc) {
	r.befores = append(r.befores, m)
}

func (r *Router) After(m MiddlewareFunc) {
	r.afters = append(r.afters, m)
}

func (r *Router) AddCloser(c CloserFunc) {
	r.closers = append(r.closers, c)
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.Handle("GET "+pattern, wrapHandler(r, http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.Handle("POST "+pattern, wrapHandler(r, http.MethodPost, handler))
}

func PATCH[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.Handle("PATCH "+pattern, wrapHandler(r, http.MethodPatch, handler))
}

func DELETE[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.Handle("DELETE "+pattern, wrapHandler(r, http.MethodDelete, handler))
}

// Mount attaches a plain http.Handler, bypassing binding and the envelope.
func (r *Router) Mount(pattern string, h http.Handler) {
	r.mux.Handle(pattern, h)
}

func (r *Router) Handler() http.Handler {
	return r.mux
}
