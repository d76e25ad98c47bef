// Package design implements partial designs: a fixed set of points and a
// list of lines (sets of at least three points) in which any two points lie
// on at most one line.
//
// The invariant is enforced by AddLine. Search code is expected to gate
// every AddLine with CanAdd; an AddLine that would put a second line through
// some pair is a defect in the caller and is reported as
// ErrInvariantViolation.
//
// A Design is not safe for concurrent use. Search branches that need an
// independent mutable state take a Clone.
package design
