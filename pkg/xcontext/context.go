package xcontext

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gorilla/sessions"
	"github.com/immigrant-voices/backend/config"
	"github.com/immigrant-voices/backend/internal/model"
	"github.com/immigrant-voices/backend/pkg/authenticator"
	"github.com/immigrant-voices/backend/pkg/logger"
	"gorm.io/gorm"
)

type (
	dbKey           struct{}
	txKey           struct{}
	loggerKey       struct{}
	configsKey      struct{}
	userIDKey       struct{}
	tokenEngineKey  struct{}
	sessionStoreKey struct{}
	httpRequestKey  struct{}
	httpWriterKey   struct{}
	snowflakeKey    struct{}
	startTimeKey    struct{}
	responseKey     struct{}
	errorKey        struct{}
)

func WithDB(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, dbKey{}, db)
}

// DB returns the current database handle. If a transaction was opened on this
// context and not yet finished, the transaction is returned instead.
func DB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*dbTransaction); ok && !tx.done {
		return tx.tx
	}

	if db, ok := ctx.Value(dbKey{}).(*gorm.DB); ok {
		return db
	}

	panic("no database in context")
}

type dbTransaction struct {
	tx   *gorm.DB
	done bool
}

// WithDBTransaction begins a transaction and returns a context whose DB()
// resolves to it. The caller must finish it with WithCommitDBTransaction or
// WithRollbackDBTransaction; afterwards DB() falls back to the root handle.
func WithDBTransaction(ctx context.Context) context.Context {
	return context.WithValue(ctx, txKey{}, &dbTransaction{tx: DB(ctx).Begin()})
}

func WithCommitDBTransaction(ctx context.Context) {
	if tx, ok := ctx.Value(txKey{}).(*dbTransaction); ok && !tx.done {
		tx.tx.Commit()
		tx.done = true
	}
}

// WithRollbackDBTransaction is a no-op if the transaction was committed, so it
// is safe to defer right after WithDBTransaction.
func WithRollbackDBTransaction(ctx context.Context) {
	if tx, ok := ctx.Value(txKey{}).(*dbTransaction); ok && !tx.done {
		tx.tx.Rollback()
		tx.done = true
	}
}

func WithLogger(ctx context.Context, l logger.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

func Logger(ctx context.Context) logger.Logger {
	if l, ok := ctx.Value(loggerKey{}).(logger.Logger); ok {
		return l
	}

	return logger.NewLogger(logger.INFO)
}

func WithConfigs(ctx context.Context, cfg config.Configs) context.Context {
	return context.WithValue(ctx, configsKey{}, cfg)
}

func Configs(ctx context.Context) config.Configs {
	if cfg, ok := ctx.Value(configsKey{}).(config.Configs); ok {
		return cfg
	}

	return config.Configs{}
}

func WithRequestUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// RequestUserID returns the authenticated user id, or an empty string for an
// anonymous request.
func RequestUserID(ctx context.Context) string {
	if id, ok := ctx.Value(userIDKey{}).(string); ok {
		return id
	}

	return ""
}

func WithTokenEngine(ctx context.Context, engine authenticator.TokenEngine[model.AccessToken]) context.Context {
	return context.WithValue(ctx, tokenEngineKey{}, engine)
}

func TokenEngine(ctx context.Context) authenticator.TokenEngine[model.AccessToken] {
	return ctx.Value(tokenEngineKey{}).(authenticator.TokenEngine[model.AccessToken])
}

func WithSessionStore(ctx context.Context, store sessions.Store) context.Context {
	return context.WithValue(ctx, sessionStoreKey{}, store)
}

func SessionStore(ctx context.Context) sessions.Store {
	return ctx.Value(sessionStoreKey{}).(sessions.Store)
}

func WithHTTPRequest(ctx context.Context, r *http.Request) context.Context {
	return context.WithValue(ctx, httpRequestKey{}, r)
}

func HTTPRequest(ctx context.Context) *http.Request {
	return ctx.Value(httpRequestKey{}).(*http.Request)
}

func WithHTTPWriter(ctx context.Context, w http.ResponseWriter) context.Context {
	return context.WithValue(ctx, httpWriterKey{}, w)
}

func HTTPWriter(ctx context.Context) http.ResponseWriter {
	return ctx.Value(httpWriterKey{}).(http.ResponseWriter)
}

func WithSnowFlake(ctx context.Context, node *snowflake.Node) context.Context {
	return context.WithValue(ctx, snowflakeKey{}, node)
}

func SnowFlake(ctx context.Context) *snowflake.Node {
	return ctx.Value(snowflakeKey{}).(*snowflake.Node)
}

func WithStartTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, startTimeKey{}, t)
}

func StartTime(ctx context.Context) time.Time {
	if t, ok := ctx.Value(startTimeKey{}).(time.Time); ok {
		return t
	}

	return time.Time{}
}

func WithResponse(ctx context.Context, resp any) context.Context {
	return context.WithValue(ctx, responseKey{}, resp)
}

func Response(ctx context.Context) any {
	return ctx.Value(responseKey{})
}

func WithError(ctx context.Context, err error) context.Context {
	return context.WithValue(ctx, errorKey{}, err)
}

func Error(ctx context.Context) error {
	if err, ok := ctx.Value(errorKey{}).(error); ok {
		return err
	}

	return nil
}
