package canon

import (
	"fmt"
	"slices"

	"github.com/alexander-cohen/SG-Design-Classification/internal/design"
)

// Colour classes used for incidence graphs.
const (
	ColorPoint = 0
	ColorLine  = 1
)

// Graph is an undirected vertex-coloured graph on vertices [0, N).
type Graph struct {
	N      int
	Colors []int
	Adj    [][]int
}

// NewGraph creates a graph with n vertices, all coloured 0, and no edges.
func NewGraph(n int) *Graph {
	return &Graph{
		N:      n,
		Colors: make([]int, n),
		Adj:    make([][]int, n),
	}
}

// AddEdge adds the undirected edge {u, v}.
func (g *Graph) AddEdge(u, v int) {
	g.Adj[u] = append(g.Adj[u], v)
	g.Adj[v] = append(g.Adj[v], u)
}

// Validate checks shape, ranges, self loops and repeated edges.
func (g *Graph) Validate() error {
	if g.N < 0 {
		return fmt.Errorf("canon: negative vertex count %d", g.N)
	}
	if len(g.Colors) != g.N {
		return fmt.Errorf("canon: %d colours for %d vertices", len(g.Colors), g.N)
	}
	if len(g.Adj) != g.N {
		return fmt.Errorf("canon: %d adjacency rows for %d vertices", len(g.Adj), g.N)
	}
	for v, c := range g.Colors {
		if c < 0 {
			return fmt.Errorf("canon: vertex %d has negative colour %d", v, c)
		}
	}
	for v, nbrs := range g.Adj {
		seen := make(map[int]bool, len(nbrs))
		for _, u := range nbrs {
			if u < 0 || u >= g.N {
				return fmt.Errorf("canon: vertex %d has neighbour %d out of range", v, u)
			}
			if u == v {
				return fmt.Errorf("canon: self loop at vertex %d", v)
			}
			if seen[u] {
				return fmt.Errorf("canon: repeated edge {%d,%d}", v, u)
			}
			seen[u] = true
		}
	}
	return nil
}

// IncidenceGraph builds the point/line incidence graph: vertices
// 0..numPoints-1 are points, numPoints+i is the i-th line.
func IncidenceGraph(numPoints int, lines []design.Line) *Graph {
	return incidence(numPoints, len(lines), func(i int) design.Line { return lines[i] })
}

// DesignGraph builds the incidence graph of d without copying its lines.
func DesignGraph(d *design.Design) *Graph {
	return incidence(d.NumPoints(), d.NumLines(), d.Line)
}

func incidence(numPoints, numLines int, line func(int) design.Line) *Graph {
	g := NewGraph(numPoints + numLines)
	for i := 0; i < numLines; i++ {
		lv := numPoints + i
		g.Colors[lv] = ColorLine
		for _, p := range line(i) {
			g.AddEdge(lv, p)
		}
	}
	for v := range g.Adj {
		slices.Sort(g.Adj[v])
	}
	return g
}
