package testutil

import (
	"math/rand/v2"

	"github.com/alexander-cohen/SG-Design-Classification/internal/design"
)

// Perm returns a permutation of 0..n-1 determined by seed.
func Perm(seed uint64, n int) []int {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)).Perm(n)
}

// Relabeled returns d with its points renamed by Perm(seed, n) and its
// lines added in a seed-dependent order. The result is isomorphic to d.
func Relabeled(d *design.Design, seed uint64) *design.Design {
	r, err := d.Relabel(Perm(seed, d.NumPoints()))
	if err != nil {
		panic(err)
	}
	lines := r.LineLists()
	rng := rand.New(rand.NewPCG(seed+1, seed))
	rng.Shuffle(len(lines), func(i, j int) { lines[i], lines[j] = lines[j], lines[i] })
	return design.MustNew(d.NumPoints(), lines...)
}
