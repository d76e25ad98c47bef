package canon

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// DefaultMaxNodes bounds the number of search tree nodes per graph.
const DefaultMaxNodes = 1 << 22

// ErrSearchLimit is returned when a graph needs more search tree nodes than
// the Refiner allows.
var ErrSearchLimit = errors.New("canon: search tree node limit exceeded")

// Refiner is an individualization-refinement canonical labeller.
//
// The search tree is walked depth first. Each node holds an ordered
// partition of the vertices that is equitable (colour refined). A child
// individualizes one vertex of the first smallest non-singleton cell. Leaves
// are discrete partitions, i.e. labellings, and the least certificate over
// all leaves is the canonical form. Two prunings keep the tree small:
//   - twin vertices (same colour, same neighbourhood) in the target cell
//     lead to isomorphic subtrees, so only one per twin class is expanded
//   - automorphisms found from equal leaf certificates are used to skip
//     children in the same orbit of the pointwise stabiliser of the prefix
//
// Refiner is stateless and safe for concurrent use.
type Refiner struct {
	maxNodes int
}

// RefinerOption configures a Refiner.
type RefinerOption func(*Refiner)

// WithMaxNodes sets the search tree node limit. Zero means DefaultMaxNodes.
func WithMaxNodes(n int) RefinerOption {
	return func(r *Refiner) {
		r.maxNodes = n
	}
}

// NewRefiner creates a Refiner.
func NewRefiner(opts ...RefinerOption) *Refiner {
	r := &Refiner{}
	for _, opt := range opts {
		opt(r)
	}
	if r.maxNodes <= 0 {
		r.maxNodes = DefaultMaxNodes
	}
	return r
}

// Canonicalize returns the canonical certificate of g.
func (r *Refiner) Canonicalize(ctx context.Context, g *Graph) (Fingerprint, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := g.Validate(); err != nil {
		return "", err
	}

	s := &searcher{
		ctx:      ctx,
		g:        g,
		n:        g.N,
		adj:      sortedAdjacency(g),
		twin:     twinClasses(g),
		maxNodes: r.maxNodes,
	}

	cell, k := initialPartition(g)
	k = s.refine(cell, k)
	if err := s.search(cell, k, nil); err != nil {
		return "", err
	}
	return Fingerprint(s.best), nil
}

type searcher struct {
	ctx      context.Context
	g        *Graph
	n        int
	adj      [][]int
	twin     []int
	maxNodes int
	nodes    int

	first, best       []byte
	firstLab, bestLab []int
	auts              [][]int
}

func sortedAdjacency(g *Graph) [][]int {
	adj := make([][]int, g.N)
	for v, nbrs := range g.Adj {
		adj[v] = slices.Clone(nbrs)
		slices.Sort(adj[v])
	}
	return adj
}

// twinClasses numbers vertices so that two vertices share a number iff they
// have the same colour and the same open neighbourhood.
func twinClasses(g *Graph) []int {
	ids := make(map[string]int)
	twin := make([]int, g.N)
	var b strings.Builder
	for v := 0; v < g.N; v++ {
		b.Reset()
		b.WriteString(strconv.Itoa(g.Colors[v]))
		nbrs := slices.Clone(g.Adj[v])
		slices.Sort(nbrs)
		for _, u := range nbrs {
			b.WriteByte(',')
			b.WriteString(strconv.Itoa(u))
		}
		key := b.String()
		id, ok := ids[key]
		if !ok {
			id = len(ids)
			ids[key] = id
		}
		twin[v] = id
	}
	return twin
}

// initialPartition orders cells by colour value.
func initialPartition(g *Graph) ([]int, int) {
	colors := slices.Clone(g.Colors)
	slices.Sort(colors)
	colors = slices.Compact(colors)

	cell := make([]int, g.N)
	for v, c := range g.Colors {
		cell[v], _ = slices.BinarySearch(colors, c)
	}
	return cell, len(colors)
}

// refine splits cells by the multiset of neighbour cells until the
// partition is equitable. New cell numbers are ranks of (old cell,
// neighbour cells) signatures, so refinement commutes with relabelling.
func (s *searcher) refine(cell []int, k int) int {
	n := s.n
	sig := make([][]int, n)
	order := make([]int, n)
	next := make([]int, n)
	for {
		for v := 0; v < n; v++ {
			sv := append(sig[v][:0], cell[v])
			for _, u := range s.adj[v] {
				sv = append(sv, cell[u])
			}
			slices.Sort(sv[1:])
			sig[v] = sv
			order[v] = v
		}
		slices.SortFunc(order, func(a, b int) int { return slices.Compare(sig[a], sig[b]) })

		nk := 0
		for i, v := range order {
			if i > 0 && slices.Compare(sig[order[i-1]], sig[v]) != 0 {
				nk++
			}
			next[v] = nk
		}
		if n > 0 {
			nk++
		}
		copy(cell, next)
		if nk == k {
			return k
		}
		k = nk
	}
}

// individualize gives v its own cell placed just before the rest of its
// old cell, then refines.
func (s *searcher) individualize(cell []int, k, v int) ([]int, int) {
	c := cell[v]
	child := make([]int, s.n)
	for w, cw := range cell {
		switch {
		case w == v:
			child[w] = c
		case cw >= c:
			child[w] = cw + 1
		default:
			child[w] = cw
		}
	}
	return child, s.refine(child, k+1)
}

// targetCell returns the members of the first smallest non-singleton cell.
func (s *searcher) targetCell(cell []int, k int) []int {
	size := make([]int, k)
	for _, c := range cell {
		size[c]++
	}
	target := -1
	for c, sz := range size {
		if sz > 1 && (target < 0 || sz < size[target]) {
			target = c
		}
	}
	var members []int
	for v, c := range cell {
		if c == target {
			members = append(members, v)
		}
	}
	return members
}

func (s *searcher) search(cell []int, k int, prefix []int) error {
	s.nodes++
	if s.nodes > s.maxNodes {
		return fmt.Errorf("%w (%d nodes, %d vertices)", ErrSearchLimit, s.maxNodes, s.n)
	}
	if s.nodes%1024 == 0 {
		if err := s.ctx.Err(); err != nil {
			return err
		}
	}

	if k == s.n {
		s.leaf(cell)
		return nil
	}

	var explored []int
	seenAuts := -1
	var orbit []int
	for _, v := range s.targetCell(cell, k) {
		if s.prunedByTwin(v, explored) {
			continue
		}
		if len(explored) > 0 {
			if seenAuts != len(s.auts) {
				orbit = s.stabiliserOrbits(prefix)
				seenAuts = len(s.auts)
			}
			if slices.ContainsFunc(explored, func(w int) bool { return orbit[w] == orbit[v] }) {
				continue
			}
		}
		explored = append(explored, v)

		child, ck := s.individualize(cell, k, v)
		if err := s.search(child, ck, append(prefix, v)); err != nil {
			return err
		}
	}
	return nil
}

func (s *searcher) prunedByTwin(v int, explored []int) bool {
	for _, w := range explored {
		if s.twin[w] == s.twin[v] {
			return true
		}
	}
	return false
}

// stabiliserOrbits returns orbit representatives under the group generated
// by the known automorphisms that fix every prefix vertex.
func (s *searcher) stabiliserOrbits(prefix []int) []int {
	parent := make([]int, s.n)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}

	for _, gamma := range s.auts {
		fixes := true
		for _, p := range prefix {
			if gamma[p] != p {
				fixes = false
				break
			}
		}
		if !fixes {
			continue
		}
		for v, w := range gamma {
			if a, b := find(v), find(w); a != b {
				parent[a] = b
			}
		}
	}

	orbit := make([]int, s.n)
	for v := range orbit {
		orbit[v] = find(v)
	}
	return orbit
}

// leaf records the certificate of a discrete partition and any
// automorphism it reveals against the first or best leaf.
func (s *searcher) leaf(cell []int) {
	lab := make([]int, s.n)
	for v, pos := range cell {
		lab[pos] = v
	}
	cert := s.certificate(cell, lab)

	if s.first == nil {
		s.first, s.firstLab = cert, lab
		s.best, s.bestLab = cert, lab
		return
	}

	if bytes.Equal(cert, s.first) {
		s.addAutomorphism(lab, s.firstLab)
	}
	switch c := bytes.Compare(cert, s.best); {
	case c < 0:
		s.best, s.bestLab = cert, lab
	case c == 0 && !bytes.Equal(s.best, s.first):
		s.addAutomorphism(lab, s.bestLab)
	}
}

func (s *searcher) addAutomorphism(lab, ref []int) {
	gamma := make([]int, s.n)
	identity := true
	for pos, v := range lab {
		gamma[v] = ref[pos]
		if v != ref[pos] {
			identity = false
		}
	}
	if !identity {
		s.auts = append(s.auts, gamma)
	}
}

// certificate encodes the graph relabelled by the discrete partition:
// vertex count, then per position its colour and sorted neighbour positions.
func (s *searcher) certificate(cell, lab []int) []byte {
	buf := binary.AppendUvarint(nil, uint64(s.n))
	nbrs := make([]int, 0, 16)
	for _, v := range lab {
		buf = binary.AppendUvarint(buf, uint64(s.g.Colors[v]))
		nbrs = nbrs[:0]
		for _, u := range s.adj[v] {
			nbrs = append(nbrs, cell[u])
		}
		slices.Sort(nbrs)
		buf = binary.AppendUvarint(buf, uint64(len(nbrs)))
		for _, p := range nbrs {
			buf = binary.AppendUvarint(buf, uint64(p))
		}
	}
	return buf
}
