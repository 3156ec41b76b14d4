package ports

import (
	"flight-itinerary-service/internal/domain"
	"time"
)

// SolveRecorder receives planning telemetry. Implementations must be safe
// for concurrent use.
type SolveRecorder interface {
	RecordSolve(it domain.Itinerary, elapsed time.Duration)
	RecordCacheHit()
	RecordCacheMiss()
}
