package domain

// Timetable is the raw planning input: the cities of one trip and every
// flight offered between them. Flight ids are ignored until a Catalog is built.
type Timetable struct {
	Cities  []City   `json:"cities"`
	Flights []Flight `json:"flights"`
}

// Build validates the timetable and returns the city graph and flight catalog
// the solver works on.
func (t Timetable) Build() (*CityGraph, *Catalog, error) {
	graph, err := NewCityGraph(t.Cities, BaseID)
	if err != nil {
		return nil, nil, err
	}
	catalog, err := NewCatalog(graph.Len(), t.Flights)
	if err != nil {
		return nil, nil, err
	}
	return graph, catalog, nil
}
