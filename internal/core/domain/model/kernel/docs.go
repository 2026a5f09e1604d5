// Package kernel provides core domain primitives for the order marketplace.
// It implements fundamental building blocks following Domain-Driven Design
// principles that are used throughout the domain model.
//
// The package includes:
//   - Fee: a value object for delivery fees held as exact cents, with a
//     configurable FeeBounds range policy
//   - PickupWindow: a value object for the pickup time range with ordering,
//     span, and placement-lead invariants
//
// These primitives enforce domain invariants and validation rules, ensuring
// that domain objects are always in a valid state. They are immutable and
// thread-safe, making them suitable for concurrent use.
package kernel
