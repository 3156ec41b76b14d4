package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func win(lo, hi int) *Window { return &Window{Min: lo, Max: hi} }

func sampleCities() []City {
	return []City{
		{ID: 0, Code: "LIS", Name: "Lisbon", IsBase: true},
		{ID: 2, Code: "MAD", Name: "Madrid", Layover: win(1, 3)},
		{ID: 1, Code: "PAR", Name: "Paris", Layover: win(2, 2)},
	}
}

func TestNewCityGraph(t *testing.T) {
	g, err := NewCityGraph(sampleCities(), BaseID)
	require.NoError(t, err)

	assert.Equal(t, 3, g.Len())
	assert.Equal(t, 2, g.Waypoints())
	assert.Equal(t, "PAR", g.City(1).Code)
	assert.Equal(t, uint64(0b11), g.FullMask())
	assert.Equal(t, uint64(0b10), g.Bit(2))
	assert.Equal(t, uint64(0), g.Bit(BaseID))

	lo, hi, ok := g.LayoverWindow(2)
	require.True(t, ok)
	assert.Equal(t, 1, lo)
	assert.Equal(t, 3, hi)

	_, _, ok = g.LayoverWindow(BaseID)
	assert.False(t, ok)
}

func TestNewCityGraphBaseOnly(t *testing.T) {
	g, err := NewCityGraph([]City{{ID: 0, Code: "LIS", IsBase: true}}, BaseID)
	require.NoError(t, err)
	assert.Equal(t, 0, g.Waypoints())
	assert.Equal(t, uint64(0), g.FullMask())
}

func TestNewCityGraphRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func([]City) []City
	}{
		{"no cities", func([]City) []City { return nil }},
		{"duplicate code", func(c []City) []City { c[2].Code = "MAD"; return c }},
		{"missing code", func(c []City) []City { c[1].Code = "  "; return c }},
		{"duplicate id", func(c []City) []City { c[2].ID = 2; return c }},
		{"id gap", func(c []City) []City { c[2].ID = 3; return c }},
		{"missing window", func(c []City) []City { c[1].Layover = nil; return c }},
		{"inverted window", func(c []City) []City { c[1].Layover = win(4, 1); return c }},
		{"negative window", func(c []City) []City { c[1].Layover = win(-1, 1); return c }},
		{"two bases", func(c []City) []City { c[1].IsBase = true; return c }},
		{"no base", func(c []City) []City { c[0].IsBase = false; return c }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewCityGraph(tc.mutate(sampleCities()), BaseID)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestNewCityGraphRejectsNonZeroBase(t *testing.T) {
	_, err := NewCityGraph(sampleCities(), 1)
	require.Error(t, err)

	var ie *InvalidInputError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, "base", ie.Field)
}
