package logging

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/sirupsen/logrus"
)

type logDataContextKey struct{}

// GetLogData returns the request-scoped LogData, or nil when the request
// did not pass through the logging middleware.
func GetLogData(ctx context.Context) *LogData {
	logData, _ := ctx.Value(logDataContextKey{}).(*LogData)
	return logData
}

func WithLogData(ctx context.Context, logData *LogData) context.Context {
	return context.WithValue(ctx, logDataContextKey{}, logData)
}

// NewHumaMiddleware attaches a fresh LogData to each request and emits a
// single completion line carrying the collected fields and timings.
func NewHumaMiddleware(logger *logrus.Logger) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		logData := NewLogData(logger)
		endTimer := logData.AddTiming("duration")

		ctx = huma.WithValue(ctx, logDataContextKey{}, logData)
		next(ctx)

		endTimer()
		logData.AddData("method", ctx.Operation().Method)
		logData.AddData("path", ctx.Operation().Path)
		logData.AddData("status", ctx.Status())
		logData.Log().Infof("Handler.%v.Complete", ctx.Operation().OperationID)
	}
}
