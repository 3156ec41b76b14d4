package ports

import (
	"context"
	"flight-itinerary-service/internal/domain"
)

// Contract for storing solved itineraries by a content key.
type ItineraryCache interface {
	// Return the cached itinerary for key. ok is false on a miss.
	Get(ctx context.Context, key string) (it domain.Itinerary, ok bool, err error)
	// Store an itinerary under key.
	Put(ctx context.Context, key string, it domain.Itinerary) error
}
