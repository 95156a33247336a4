package obs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type ctxKey string

// RequestIDKey carries the per-request correlation id through context.
const RequestIDKey ctxKey = "req_id"

// RequestID extracts the correlation id, if any, from ctx.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

// Time returns a deferred completion hook that logs the operation's
// duration and outcome:
//
//	defer obs.Time(ctx, "optimizer.Optimize")(&err)
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()
	reqID := RequestID(ctx)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			zap.L().Warn("operation failed",
				zap.String("req_id", reqID),
				zap.String("op", name),
				zap.Int64("dur_ms", dur.Milliseconds()),
				zap.Error(*errp),
			)
			return
		}
		zap.L().Debug("operation completed",
			zap.String("req_id", reqID),
			zap.String("op", name),
			zap.Int64("dur_ms", dur.Milliseconds()),
		)
	}
}
