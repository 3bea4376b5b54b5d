// Package lending models the loan capability: a base loan binding a
// resource, borrower and fine policy, plus a chain of optional service
// wrappers stacked around it.
package lending

import (
	"fmt"
	"time"

	"github.com/librarium/lending/internal/domain/catalog"
	"github.com/librarium/lending/internal/domain/lending/fine"
	"github.com/librarium/lending/internal/domain/shared"
	"github.com/librarium/lending/internal/domain/shared/valueobject"
)

// ErrNoFinePolicy is returned when a fine is computed on a loan with
// no policy bound
var ErrNoFinePolicy = shared.NewDomainError("NO_FINE_POLICY", "No fine policy bound to this loan")

// Loan is the capability shared by a base loan and every service
// wrapper stacked on top of it. Wrappers contribute deltas; the
// innermost node is always a *BaseLoan.
type Loan interface {
	// DurationDays returns the loan duration including wrapper extensions
	DurationDays() int
	// BaseCost returns the accumulated cost of the chain
	BaseCost() valueobject.Money
	// Description returns a human-readable summary, fragments appended
	// in wrap order
	Description() string
	// DueDate returns the return deadline for this chain
	DueDate() time.Time
}

// BaseLoan is the unadorned lending record. Constructing one is the
// borrowing event: the resource is flipped to on-loan immediately.
type BaseLoan struct {
	shared.BaseEntity
	resource  catalog.Resource
	borrower  string
	startedAt time.Time
	policy    fine.Policy
	cost      valueobject.Money
}

// NewBaseLoan creates a loan for the given resource and borrower and
// marks the resource unavailable. The policy may be nil; it must be
// bound before a fine is computed.
func NewBaseLoan(resource catalog.Resource, borrower string, policy fine.Policy) *BaseLoan {
	loan := &BaseLoan{
		BaseEntity: shared.NewBaseEntity(),
		resource:   resource,
		borrower:   borrower,
		startedAt:  time.Now(),
		policy:     policy,
		cost:       valueobject.ZeroUSD(),
	}
	resource.ChangeAvailability(false)
	return loan
}

// Resource returns the lent resource. The reference is non-owning; the
// inventory keeps its own.
func (l *BaseLoan) Resource() catalog.Resource {
	return l.resource
}

// Borrower returns the borrower name
func (l *BaseLoan) Borrower() string {
	return l.borrower
}

// StartedAt returns the loan start timestamp
func (l *BaseLoan) StartedAt() time.Time {
	return l.startedAt
}

// Policy returns the currently bound fine policy, or nil
func (l *BaseLoan) Policy() fine.Policy {
	return l.policy
}

// SetFinePolicy replaces the bound fine policy. It takes effect on the
// next fine computation; nothing is cached.
func (l *BaseLoan) SetFinePolicy(policy fine.Policy) {
	l.policy = policy
}

// BackdateStart moves the loan start back by the given number of days.
// It exists to simulate elapsed time without reaching into the field.
func (l *BaseLoan) BackdateStart(days int) {
	l.startedAt = l.startedAt.AddDate(0, 0, -days)
}

// DurationDays returns the base duration granted by the resource kind
func (l *BaseLoan) DurationDays() int {
	return l.resource.BaseLoanDurationDays()
}

// BaseCost returns the intrinsic cost of the loan, fixed at zero
func (l *BaseLoan) BaseCost() valueobject.Money {
	return l.cost
}

// Description returns the loan summary
func (l *BaseLoan) Description() string {
	return fmt.Sprintf("Loan of '%s' to %s", l.resource.Title(), l.borrower)
}

// DueDate returns the return deadline for the unadorned loan
func (l *BaseLoan) DueDate() time.Time {
	return l.startedAt.AddDate(0, 0, l.DurationDays())
}

// DaysLateAt returns the whole days past the due date as of the given
// time, or zero if the loan is not overdue
func (l *BaseLoan) DaysLateAt(asOf time.Time) int {
	late := int(asOf.Sub(l.DueDate()).Hours() / 24)
	if late < 0 {
		return 0
	}
	return late
}

// DaysLate returns DaysLateAt anchored to the current wall clock
func (l *BaseLoan) DaysLate() int {
	return l.DaysLateAt(time.Now())
}

// ComputeFineAt calculates the late fee as of the given time by
// delegating to the bound policy. Returns ErrNoFinePolicy when no
// policy is bound.
func (l *BaseLoan) ComputeFineAt(asOf time.Time) (fine.Result, error) {
	if l.policy == nil {
		return fine.Result{}, ErrNoFinePolicy
	}

	daysLate := l.DaysLateAt(asOf)
	if daysLate <= 0 {
		return fine.Result{Amount: valueobject.ZeroUSD()}, nil
	}

	return l.policy.ComputeFine(fine.Context{
		DaysLate:        daysLate,
		AccumulatedCost: l.BaseCost(),
		Resource:        l.resource,
		AsOf:            asOf,
	}), nil
}

// ComputeFine returns ComputeFineAt anchored to the current wall clock
func (l *BaseLoan) ComputeFine() (fine.Result, error) {
	return l.ComputeFineAt(time.Now())
}

// ReturnResource flips the resource back to available. Late-day
// bookkeeping is kept; a returned loan can still be billed for the
// fine already accrued.
func (l *BaseLoan) ReturnResource() {
	l.resource.ChangeAvailability(true)
}
