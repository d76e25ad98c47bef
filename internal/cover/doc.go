// Package cover enumerates exact covers.
//
// A Problem is a universe of items 0..Universe-1 and a family of candidate
// sets. An exact cover is a subfamily whose members are pairwise disjoint
// and whose union is the universe. Oracle implementations produce every
// exact cover lazily; AlgorithmX is the default.
//
// Adapter sits between search code and an Oracle. It maps candidate objects
// keyed by arbitrary universe elements (points, pairs of points) to index
// sets and maps every cover back to the candidates it selects.
package cover
