package factory

import (
	"context"

	"github.com/sirupsen/logrus"
)

type contextKey string

const refreshIDKey contextKey = "refresh_id"

func NewModuleLogger(module string) logrus.FieldLogger {
	return logrus.WithField("module", module)
}

// WithRefreshID tags ctx so loggers derived from it carry the refresh id.
func WithRefreshID(ctx context.Context, refreshID string) context.Context {
	return context.WithValue(ctx, refreshIDKey, refreshID)
}

func RefreshIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(refreshIDKey).(string)
	return id
}

func LoggerWithContext(logger logrus.FieldLogger, ctx context.Context) logrus.FieldLogger {
	if id := RefreshIDFromContext(ctx); id != "" {
		return logger.WithField("refresh_id", id)
	}
	return logger
}
