// Package pile implements a type-validated, order-preserving,
// identity-addressable collection of elements. A Pile supports both
// dictionary-style lookup by identity and sequence-style positional
// access without maintaining a second data structure, which is what
// the routing layer needs for its registries and mail logs.
//
// Implementations follow the in-memory store discipline used across
// the codebase: RWMutex guarding, defensive copies on read.
package pile
