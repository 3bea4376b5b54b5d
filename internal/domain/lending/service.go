package lending

import (
	"fmt"
	"time"

	"github.com/librarium/lending/internal/domain/shared"
	"github.com/librarium/lending/internal/domain/shared/valueobject"
)

// ServiceKind identifies an add-on service wrapper. The enumeration is
// closed so the invoice engine can match on it exhaustively instead of
// probing the chain for wrapper-specific fields.
type ServiceKind string

const (
	ServiceNotification        ServiceKind = "notification"
	ServicePriorityReservation ServiceKind = "priority_reservation"
	ServiceLossInsurance       ServiceKind = "loss_insurance"
)

// String returns the string representation of the service kind
func (k ServiceKind) String() string {
	return string(k)
}

// IsValid returns true if the service kind is valid
func (k ServiceKind) IsValid() bool {
	switch k {
	case ServiceNotification, ServicePriorityReservation, ServiceLossInsurance:
		return true
	}
	return false
}

// Service is the tagged descriptor a wrapper contributes to its chain:
// a cost delta, an optional duration delta, a description fragment and
// a caller-facing billing label.
type Service struct {
	Kind      ServiceKind
	Label     string
	Fragment  string
	Fee       valueobject.Money
	ExtraDays int
}

// ServiceLoan is a loan augmented by exactly one add-on service. Any
// ServiceLoan may wrap any other Loan; stacking depth is unrestricted.
type ServiceLoan interface {
	Loan
	// Inner returns the wrapped predecessor
	Inner() Loan
	// Service returns the descriptor of the service this wrapper adds
	Service() Service
}

// wrappedLoan implements the delegation every concrete wrapper shares.
// Cost and duration deltas commute; the description fragment is
// appended in wrap order.
type wrappedLoan struct {
	inner   Loan
	service Service
}

func newWrappedLoan(inner Loan, service Service) wrappedLoan {
	return wrappedLoan{inner: inner, service: service}
}

// Inner returns the wrapped predecessor
func (w *wrappedLoan) Inner() Loan {
	return w.inner
}

// Service returns the service descriptor
func (w *wrappedLoan) Service() Service {
	return w.service
}

// DurationDays returns the inner duration plus this wrapper's extension
func (w *wrappedLoan) DurationDays() int {
	return w.inner.DurationDays() + w.service.ExtraDays
}

// BaseCost returns the inner cost plus this wrapper's fee
func (w *wrappedLoan) BaseCost() valueobject.Money {
	return w.inner.BaseCost().MustAdd(w.service.Fee)
}

// Description appends this wrapper's fragment to the inner description
func (w *wrappedLoan) Description() string {
	return w.inner.Description() + " " + w.service.Fragment
}

// DueDate returns the inner due date shifted by this wrapper's extension
func (w *wrappedLoan) DueDate() time.Time {
	return w.inner.DueDate().AddDate(0, 0, w.service.ExtraDays)
}

// Base walks a loan chain to its innermost node and returns the
// BaseLoan, or nil if the chain does not terminate in one.
func Base(loan Loan) *BaseLoan {
	for {
		switch l := loan.(type) {
		case *BaseLoan:
			return l
		case ServiceLoan:
			loan = l.Inner()
		default:
			return nil
		}
	}
}

// Services returns the service descriptors of a chain from outermost
// to innermost. A bare BaseLoan yields an empty slice.
func Services(loan Loan) []Service {
	var services []Service
	for {
		wrapper, ok := loan.(ServiceLoan)
		if !ok {
			return services
		}
		services = append(services, wrapper.Service())
		loan = wrapper.Inner()
	}
}

// Wrapper fees and extensions
var (
	notificationFee  = valueobject.NewUSDFromFloat(5.00)
	priorityFee      = valueobject.NewUSDFromFloat(10.00)
	lossInsuranceFee = valueobject.NewUSDFromFloat(15.00)
)

const (
	priorityExtraDays = 7
	priorityMin       = 1
	priorityMax       = 5
)

// ErrInvalidPriority is returned when a priority reservation is
// requested outside the 1-5 range
var ErrInvalidPriority = shared.NewDomainError("INVALID_PRIORITY", fmt.Sprintf("Priority must be between %d and %d", priorityMin, priorityMax))
