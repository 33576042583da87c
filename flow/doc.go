// Package flow implements a registry of named progressions over a
// shared pile. A Flow keeps multiple independent orderings of the same
// identity space, which branches use to thread their delivered mail by
// correspondent without duplicating the mail log itself.
package flow
