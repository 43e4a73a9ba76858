// Package quota enforces the per-user monthly remote-extraction allowance.
// The check-and-increment must be atomic: two concurrent escalations racing
// past the last slot is the one correctness hazard in this system, and it is
// handled here, not in the router.
package quota

import (
	"context"
	"time"
)

// Decision is the outcome of one quota check.
type Decision struct {
	Allowed   bool      `json:"allowed"`
	Used      int       `json:"used"`
	Limit     int       `json:"limit"`
	ResetDate time.Time `json:"reset_date"`
}

// Service grants or denies remote extraction attempts.
type Service interface {
	// CheckAndIncrement atomically consumes one slot of the user's monthly
	// allowance. A denied decision is not an error.
	CheckAndIncrement(ctx context.Context, userID string) (Decision, error)

	// Refund returns one slot after a failed remote attempt, so users are
	// not charged quota for failures.
	Refund(ctx context.Context, userID string) error
}
