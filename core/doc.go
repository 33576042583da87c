// Package core provides the foundational domain types for mailmesh. It
// defines the identity scheme shared by every participant and message:
//
//   - Element (unique immutable ID + creation timestamp, the sole
//     addressing mechanism)
//   - Mail (immutable envelope carrying a categorized payload between
//     two sources)
//   - Package / Category (typed payload wrapper; the router never
//     inspects payload contents)
//
// The package intentionally keeps machinery (queues, routing, storage)
// out of scope so that higher level packages can depend on a small,
// stable set of domain contracts.
package core
