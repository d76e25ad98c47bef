package design

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCombinations(t *testing.T) {
	assert.Equal(t, []Line{{0, 1, 2}, {0, 1, 3}, {0, 2, 3}, {1, 2, 3}}, Combinations(4, 3))
	assert.Len(t, Combinations(7, 3), 35)
	assert.Len(t, Combinations(10, 5), 252)
	assert.Nil(t, Combinations(3, 4))
}

func TestLineTable(t *testing.T) {
	table := NewLineTable(7, 4)

	assert.Equal(t, 7, table.NumPoints())
	assert.Equal(t, 4, table.MaxLen())
	assert.Len(t, table.WithLen(3), 35)
	assert.Len(t, table.WithLen(4), 35)
	assert.Nil(t, table.WithLen(5))
	assert.Nil(t, table.WithLen(2))

	// C(6,2) lines of length 3 through any point.
	through := table.Through(3, 3)
	assert.Len(t, through, 15)
	for _, l := range through {
		assert.True(t, l.Contains(3))
	}
	assert.Equal(t, Line{0, 1, 3}, through[0], "lexicographic order")
	assert.Nil(t, table.Through(7, 3))
}

func TestLineTable_ClampsMaxLen(t *testing.T) {
	table := NewLineTable(4, 10)
	assert.Equal(t, 4, table.MaxLen())
	assert.Equal(t, []Line{{0, 1, 2, 3}}, table.WithLen(4))
}
