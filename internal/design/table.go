package design

// LineTable holds every possible line on n points with length in
// [3, maxLen], grouped by length and, per point, by length.
// Lines appear in lexicographic combination order, which fixes the order
// in which searches consider candidates.
type LineTable struct {
	n       int
	maxLen  int
	byLen   [][]Line   // byLen[k] = all k-subsets
	through [][][]Line // through[p][k] = k-subsets containing p
}

// NewLineTable builds the table. maxLen is clamped to [0, n]; lengths below
// three are never populated.
func NewLineTable(n, maxLen int) *LineTable {
	maxLen = min(max(maxLen, 0), n)
	t := &LineTable{
		n:       n,
		maxLen:  maxLen,
		byLen:   make([][]Line, maxLen+1),
		through: make([][][]Line, n),
	}
	for p := range t.through {
		t.through[p] = make([][]Line, maxLen+1)
	}
	for k := 3; k <= maxLen; k++ {
		t.byLen[k] = Combinations(n, k)
		for _, l := range t.byLen[k] {
			for _, p := range l {
				t.through[p][k] = append(t.through[p][k], l)
			}
		}
	}
	return t
}

// NumPoints returns n.
func (t *LineTable) NumPoints() int { return t.n }

// MaxLen returns the longest line length in the table.
func (t *LineTable) MaxLen() int { return t.maxLen }

// WithLen returns all lines of length k. The result must not be modified.
func (t *LineTable) WithLen(k int) []Line {
	if k < 3 || k > t.maxLen {
		return nil
	}
	return t.byLen[k]
}

// Through returns all lines of length k containing p. The result must not
// be modified.
func (t *LineTable) Through(p, k int) []Line {
	if p < 0 || p >= t.n || k < 3 || k > t.maxLen {
		return nil
	}
	return t.through[p][k]
}

// Combinations returns every k-subset of [0, n) in lexicographic order.
func Combinations(n, k int) []Line {
	if k < 0 || k > n {
		return nil
	}
	var out []Line
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		out = append(out, append(Line(nil), idx...))
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return out
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}
