package services

import (
	"errors"

	"smuth/internal/core/domain/model/order"
)

var (
	// ErrSelfClaim is returned when a user attempts to claim their own order.
	ErrSelfClaim = errors.New("cannot claim your own order")

	// ErrTooManyActiveClaims is returned when a runner already holds the
	// maximum number of simultaneous active claims.
	ErrTooManyActiveClaims = errors.New("too many active claims")
)

// DefaultMaxActiveClaims is the standing limit on simultaneous active claims
// per runner.
const DefaultMaxActiveClaims = 2

// ClaimPolicy is a domain service that decides whether a runner is allowed to
// take a claim on an order. It covers the standing business rules that sit
// outside the order aggregate itself, because they depend on who the runner
// is and on the runner's other claims.
//
// Both rules are configuration, not constants: deployments have run with the
// self-claim ban lifted and with no claim limit, so the zero-configuration
// behavior is made explicit through NewDefaultClaimPolicy.
//
// Example usage:
//
//	policy := services.NewDefaultClaimPolicy()
//	if err := policy.Authorize(order, runnerID, activeClaims); err != nil {
//	    switch {
//	    case errors.Is(err, services.ErrSelfClaim):
//	        // tell the user they cannot run their own order
//	    case errors.Is(err, services.ErrTooManyActiveClaims):
//	        // tell the user to finish or release a claim first
//	    }
//	}
type ClaimPolicy struct {
	// AllowSelfClaim permits owners to claim their own orders when true.
	AllowSelfClaim bool

	// MaxActiveClaims caps simultaneous active (claimed, unexpired) claims
	// per runner. Zero disables the limit.
	MaxActiveClaims int
}

// NewDefaultClaimPolicy returns the standing policy: self-claims forbidden,
// at most two active claims per runner.
func NewDefaultClaimPolicy() ClaimPolicy {
	return ClaimPolicy{
		AllowSelfClaim:  false,
		MaxActiveClaims: DefaultMaxActiveClaims,
	}
}

// Authorize decides whether runnerID may claim the given order.
// activeClaims is the runner's current number of active claims, counted by
// the caller inside the same transaction that performs the claim.
//
// Returns nil when the claim may proceed, ErrSelfClaim or
// ErrTooManyActiveClaims when a policy rule forbids it, or a validation error
// when the order is not in a claimable state to begin with.
func (p ClaimPolicy) Authorize(o *order.Order, runnerID int64, activeClaims int) error {
	if err := o.Validate(); err != nil {
		return err
	}

	if err := o.Status().ValidateClaim(); err != nil {
		return err
	}

	if !p.AllowSelfClaim && o.IsOwnedBy(runnerID) {
		return ErrSelfClaim
	}

	if p.MaxActiveClaims > 0 && activeClaims >= p.MaxActiveClaims {
		return ErrTooManyActiveClaims
	}

	return nil
}
