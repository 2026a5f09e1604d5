// Package order provides domain entities and business logic for the meal
// order marketplace. It implements the Order aggregate root with lifecycle
// management and state transitions.
//
// The package includes:
//   - Order: the aggregate root managing identity, content fields, the pickup
//     window, owner/runner identities, and the lifecycle
//   - Status: a state machine that enforces valid order status transitions
//
// Key business rules:
//   - Orders carry a non-empty meal description and location (<=100 chars
//     each), optional details (<=500 chars), a validated pickup window, and
//     a delivery fee
//   - Status follows the workflow Open -> Claimed -> Completed, with
//     Claimed -> Open via unclaim and Open -> Expired via the sweep
//   - At most one runner holds the claim on an order; claiming anything but
//     an Open order always fails
//   - Unclaiming requires the pickup window to still be open and the caller
//     to be the current runner
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are
// enforced.
package order
