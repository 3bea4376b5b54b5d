// Package fine implements the pluggable late-fee calculation policies.
// A policy is a stateless strategy: it carries only its own named
// constants and computes a fee from the days late and the resource
// context. Adding a policy means implementing Policy and nothing else.
package fine

import (
	"time"

	"github.com/librarium/lending/internal/domain/catalog"
	"github.com/librarium/lending/internal/domain/shared/valueobject"
)

// Context provides the inputs for a fine calculation
type Context struct {
	DaysLate        int
	AccumulatedCost valueobject.Money
	Resource        catalog.Resource
	// AsOf anchors age-dependent rules to an explicit reference time
	// so repeated calculations are reproducible
	AsOf time.Time
}

// Result contains the computed fine and the rules that shaped it.
// AppliedRules is observability metadata; callers decide whether and
// how to surface it.
type Result struct {
	Amount       valueobject.Money
	AppliedRules []string
}

// Policy defines the late-fee calculation contract
type Policy interface {
	// Name returns the unique name of the policy
	Name() string
	// Description returns a human-readable description
	Description() string
	// ComputeFine calculates the late fee for the given context.
	// Implementations return zero when DaysLate <= 0 and round the
	// amount to two decimal places.
	ComputeFine(ctx Context) Result
}

// BasePolicy provides common implementation for policies
type BasePolicy struct {
	name        string
	description string
}

// NewBasePolicy creates a new BasePolicy
func NewBasePolicy(name, description string) BasePolicy {
	return BasePolicy{
		name:        name,
		description: description,
	}
}

// Name returns the policy name
func (p BasePolicy) Name() string {
	return p.name
}

// Description returns the policy description
func (p BasePolicy) Description() string {
	return p.description
}

func noFine() Result {
	return Result{Amount: valueobject.ZeroUSD()}
}
