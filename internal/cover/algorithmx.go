package cover

import (
	"context"
	"iter"
	"math"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
)

// AlgorithmX is Knuth's Algorithm X with the rows and columns of the
// incidence matrix held as roaring bitmaps. The column with the fewest live
// rows is branched on first.
type AlgorithmX struct{}

// NewAlgorithmX returns the default exact-cover oracle.
func NewAlgorithmX() *AlgorithmX { return &AlgorithmX{} }

// Covers implements Oracle. Covers are produced in depth-first order as
// the caller ranges over the sequence.
func (*AlgorithmX) Covers(ctx context.Context, p Problem) iter.Seq2[Cover, error] {
	return func(yield func(Cover, error) bool) {
		if err := p.Validate(); err != nil {
			yield(nil, err)
			return
		}
		s := newSolver(ctx, p, yield)
		s.search()
	}
}

type solver struct {
	ctx    context.Context
	rows   []*roaring.Bitmap // items of each set
	cols   []*roaring.Bitmap // sets containing each item
	live   *roaring.Bitmap   // sets still compatible with the partial cover
	open   *roaring.Bitmap   // items not yet covered
	chosen []int
	yield  func(Cover, error) bool
}

func newSolver(ctx context.Context, p Problem, yield func(Cover, error) bool) *solver {
	s := &solver{
		ctx:   ctx,
		rows:  make([]*roaring.Bitmap, len(p.Sets)),
		cols:  make([]*roaring.Bitmap, p.Universe),
		live:  roaring.New(),
		open:  roaring.New(),
		yield: yield,
	}
	for item := range s.cols {
		s.cols[item] = roaring.New()
	}
	if p.Universe > 0 {
		s.open.AddRange(0, uint64(p.Universe))
	}
	for i, set := range p.Sets {
		row := roaring.New()
		for _, item := range set {
			row.Add(uint32(item))
			s.cols[item].Add(uint32(i))
		}
		s.rows[i] = row
		if !row.IsEmpty() {
			s.live.Add(uint32(i))
		}
	}
	return s
}

// search returns false once the consumer stops or an error was yielded.
func (s *solver) search() bool {
	if err := s.ctx.Err(); err != nil {
		s.yield(nil, err)
		return false
	}
	if s.open.IsEmpty() {
		c := make(Cover, len(s.chosen))
		copy(c, s.chosen)
		slices.Sort(c)
		return s.yield(c, nil)
	}

	col, best := uint32(0), uint64(math.MaxUint64)
	it := s.open.Iterator()
	for it.HasNext() {
		item := it.Next()
		n := s.cols[item].AndCardinality(s.live)
		if n < best {
			col, best = item, n
			if n == 0 {
				break
			}
		}
	}
	if best == 0 {
		return true
	}

	for _, r := range roaring.And(s.cols[col], s.live).ToArray() {
		row := s.rows[r]
		clash := roaring.New()
		items := row.Iterator()
		for items.HasNext() {
			clash.Or(s.cols[items.Next()])
		}
		clash.And(s.live)

		s.live.AndNot(clash)
		s.open.AndNot(row)
		s.chosen = append(s.chosen, int(r))

		ok := s.search()

		s.chosen = s.chosen[:len(s.chosen)-1]
		s.open.Or(row)
		s.live.Or(clash)
		if !ok {
			return false
		}
	}
	return true
}
