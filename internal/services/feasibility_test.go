package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOracleCandidateDepartures(t *testing.T) {
	g, c := abcInstance().build(t)
	o := NewOracle(g, c)

	// Arrived in B on day 0: window [1,3] admits the day 2 departure, not day 4.
	assert.Equal(t, []int{1}, o.CandidateDepartures(1, 0))
	// Arrived in B on day 2: only the day 4 flight lies in [3,5].
	assert.Equal(t, []int{5}, o.CandidateDepartures(1, 2))
	// Arrived in C on day 4: nothing left, a dead branch rather than an error.
	assert.Empty(t, o.CandidateDepartures(2, 4))
	// The base has no window.
	assert.Equal(t, []int{0, 3}, o.CandidateDepartures(0, 99))
	assert.Equal(t, []int{0, 3}, o.CandidateDeparturesFromBase())
}

func TestOracleNextLegsSkipsVisitedAndEarlyReturn(t *testing.T) {
	g, c := abcInstance().build(t)
	o := NewOracle(g, c)

	// In B having visited only B: the return to A is not yet allowed.
	assert.Equal(t, []int{1}, o.NextLegs(g.Bit(1), 1, 0))
	// In B having visited both: only the return qualifies.
	assert.Equal(t, []int{5}, o.NextLegs(g.FullMask(), 1, 2))
	// In C on day 2 with both visited: C->A on day 4 is a stay of 2.
	assert.Equal(t, []int{2}, o.NextLegs(g.FullMask(), 2, 2))
	// First leg.
	assert.Equal(t, []int{0, 3}, o.NextLegs(0, g.Base(), 0))
}
