package obs

import (
	"context"
	"time"
)

// Time starts a timer for the named operation and returns a closure that logs
// its duration. Pass the address of the named error result to log failures:
//
//	defer obs.Time(ctx, "search.Solve")(&err)
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()
	logger := Logger(ctx)
	reqID := RequestID(ctx)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			logger.Error("operation failed", "req_id", reqID, "op", name, "dur", dur.Round(time.Microsecond), "err", *errp)
			return
		}
		logger.Debug("operation finished", "req_id", reqID, "op", name, "dur", dur.Round(time.Microsecond))
	}
}
