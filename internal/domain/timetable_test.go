package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimetableBuild(t *testing.T) {
	tt := Timetable{
		Cities: sampleCities(),
		Flights: []Flight{
			{Origin: 0, Destination: 1, Day: 0, Cost: 10},
			{Origin: 1, Destination: 2, Day: 2, Cost: 10},
			{Origin: 2, Destination: 0, Day: 4, Cost: 10},
		},
	}

	g, c, err := tt.Build()
	require.NoError(t, err)
	assert.Equal(t, 3, g.Len())
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, g.Len(), c.CityCount())
}

func TestTimetableBuildUnknownCity(t *testing.T) {
	tt := Timetable{
		Cities:  sampleCities(),
		Flights: []Flight{{Origin: 0, Destination: 9, Cost: 1}},
	}

	_, _, err := tt.Build()
	require.ErrorIs(t, err, ErrInvalidInput)
}
