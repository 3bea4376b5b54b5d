package lending

import (
	"fmt"

	"github.com/librarium/lending/internal/domain/shared/valueobject"
)

// NotificationService adds SMS reminders for the loan's due date
type NotificationService struct {
	wrappedLoan
	phone string
}

// WithNotification wraps a loan with the SMS notification service
func WithNotification(inner Loan, phone string) *NotificationService {
	return &NotificationService{
		wrappedLoan: newWrappedLoan(inner, Service{
			Kind:     ServiceNotification,
			Label:    fmt.Sprintf("SMS notification service to %s", phone),
			Fragment: fmt.Sprintf("+ SMS notification to %s", phone),
			Fee:      notificationFee,
		}),
		phone: phone,
	}
}

// Phone returns the notification phone number
func (s *NotificationService) Phone() string {
	return s.phone
}

// DueReminder builds a reminder event for the chain's due date.
// Publishing it is the caller's choice; computing it has no side effects.
func (s *NotificationService) DueReminder() *DueReminderEvent {
	return NewDueReminderEvent(s.phone, s.DueDate(), Base(s))
}

// PriorityReservation extends the loan and grants a pick-up priority
type PriorityReservation struct {
	wrappedLoan
	priority int
}

// WithPriorityReservation wraps a loan with a priority reservation.
// The priority level must be between 1 and 5.
func WithPriorityReservation(inner Loan, priority int) (*PriorityReservation, error) {
	if priority < priorityMin || priority > priorityMax {
		return nil, ErrInvalidPriority
	}
	return &PriorityReservation{
		wrappedLoan: newWrappedLoan(inner, Service{
			Kind:      ServicePriorityReservation,
			Label:     fmt.Sprintf("Priority reservation (priority %d)", priority),
			Fragment:  fmt.Sprintf("+ Priority reservation (priority %d)", priority),
			Fee:       priorityFee,
			ExtraDays: priorityExtraDays,
		}),
		priority: priority,
	}, nil
}

// Priority returns the reservation priority level
func (s *PriorityReservation) Priority() int {
	return s.priority
}

// LossInsurance covers the borrower against losing the resource
type LossInsurance struct {
	wrappedLoan
	coverage valueobject.Money
}

// WithLossInsurance wraps a loan with loss insurance for the given
// coverage amount
func WithLossInsurance(inner Loan, coverage valueobject.Money) *LossInsurance {
	return &LossInsurance{
		wrappedLoan: newWrappedLoan(inner, Service{
			Kind:     ServiceLossInsurance,
			Label:    fmt.Sprintf("Loss insurance (coverage $%s)", coverage.StringFixed(2)),
			Fragment: fmt.Sprintf("+ Loss insurance (coverage $%s)", coverage.StringFixed(2)),
			Fee:      lossInsuranceFee,
		}),
		coverage: coverage,
	}
}

// Coverage returns the insured amount
func (s *LossInsurance) Coverage() valueobject.Money {
	return s.coverage
}
