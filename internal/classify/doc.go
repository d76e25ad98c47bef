// Package classify drives the engine over a range of point counts.
//
// Designs are split into two disjoint regimes by their shortest line:
//
//   - RegimeMin3: seeds saturate points 0 and 1 around the line {0,1,2};
//     each seed is saturated at point 2, and every such design is completed.
//   - RegimeMin4Plus: for each m in [4, n/2] seeds saturate the first m
//     points around the line {0,...,m-1}; each seed is completed with lines
//     of at least four points.
//
// The two result lists are concatenated without cross-regime dedup: every
// min3 design contains a line of three points and no min4+ design does.
package classify
