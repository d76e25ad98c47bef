package testutil

import "github.com/alexander-cohen/SG-Design-Classification/internal/design"

// FanoLines is the projective plane of order 2 on points 0..6.
var FanoLines = [][]int{
	{0, 1, 2}, {0, 3, 4}, {0, 5, 6},
	{1, 3, 5}, {1, 4, 6}, {2, 3, 6}, {2, 4, 5},
}

// AffinePlane3Lines is the affine plane of order 3 on points 0..8, the
// points laid out row by row in a 3x3 grid.
var AffinePlane3Lines = [][]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {1, 5, 6}, {2, 3, 7},
	{0, 5, 7}, {1, 3, 8}, {2, 4, 6},
}

// Fano returns a fresh Fano plane.
func Fano() *design.Design {
	return design.MustNew(7, FanoLines...)
}

// AffinePlane3 returns a fresh affine plane of order 3.
func AffinePlane3() *design.Design {
	return design.MustNew(9, AffinePlane3Lines...)
}

// Triangle returns the single-line design on three points, the only
// design for n=3.
func Triangle() *design.Design {
	return design.MustNew(3, []int{0, 1, 2})
}
