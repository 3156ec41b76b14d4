package services

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"flight-itinerary-service/internal/domain"
)

// keyVersion changes whenever the cached itinerary layout changes.
const keyVersion = "v1"

type keyCity struct {
	ID      int            `json:"id"`
	IsBase  bool           `json:"b,omitempty"`
	Layover *domain.Window `json:"w,omitempty"`
}

// ItineraryKey identifies a planning problem by content: the city windows and
// the deduplicated catalog in id order. Search options are left out because
// every strategy returns the same optimum and tie-break.
func ItineraryKey(graph *domain.CityGraph, catalog *domain.Catalog) string {
	cities := make([]keyCity, 0, graph.Len())
	for _, c := range graph.Cities() {
		cities = append(cities, keyCity{ID: c.ID, IsBase: c.IsBase, Layover: c.Layover})
	}

	data, _ := json.Marshal([]any{keyVersion, cities, catalog.Flights()})
	hash := sha256.Sum256(data)
	return "itinerary:" + hex.EncodeToString(hash[:])
}
