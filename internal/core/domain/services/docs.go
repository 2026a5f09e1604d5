// Package services contains domain services that implement business logic
// spanning beyond a single aggregate.
//
// ClaimPolicy decides whether a runner may claim an order, applying the
// configurable marketplace rules (self-claim ban, active-claim limit) that
// depend on the runner's identity and their other claims rather than on the
// order alone.
package services
