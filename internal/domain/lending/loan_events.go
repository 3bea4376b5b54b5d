package lending

import (
	"time"

	"github.com/google/uuid"

	"github.com/librarium/lending/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeLoan = "Loan"

// Event type constants
const (
	EventTypeLoanOpened       = "LoanOpened"
	EventTypeResourceReturned = "ResourceReturned"
	EventTypeDueReminder      = "LoanDueReminder"
)

// LoanOpenedEvent is published when a resource is borrowed
type LoanOpenedEvent struct {
	shared.BaseDomainEvent
	LoanID    uuid.UUID `json:"loan_id"`
	ISBN      string    `json:"isbn"`
	Title     string    `json:"title"`
	Borrower  string    `json:"borrower"`
	StartedAt time.Time `json:"started_at"`
}

// NewLoanOpenedEvent creates a new LoanOpenedEvent
func NewLoanOpenedEvent(loan *BaseLoan) *LoanOpenedEvent {
	return &LoanOpenedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLoanOpened, AggregateTypeLoan, loan.GetID()),
		LoanID:          loan.GetID(),
		ISBN:            loan.Resource().ISBN(),
		Title:           loan.Resource().Title(),
		Borrower:        loan.Borrower(),
		StartedAt:       loan.StartedAt(),
	}
}

// ResourceReturnedEvent is published when a borrowed resource comes back
type ResourceReturnedEvent struct {
	shared.BaseDomainEvent
	LoanID   uuid.UUID `json:"loan_id"`
	ISBN     string    `json:"isbn"`
	Title    string    `json:"title"`
	Borrower string    `json:"borrower"`
}

// NewResourceReturnedEvent creates a new ResourceReturnedEvent
func NewResourceReturnedEvent(loan *BaseLoan) *ResourceReturnedEvent {
	return &ResourceReturnedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeResourceReturned, AggregateTypeLoan, loan.GetID()),
		LoanID:          loan.GetID(),
		ISBN:            loan.Resource().ISBN(),
		Title:           loan.Resource().Title(),
		Borrower:        loan.Borrower(),
	}
}

// DueReminderEvent carries an upcoming due-date reminder for a loan
// with the notification service attached
type DueReminderEvent struct {
	shared.BaseDomainEvent
	LoanID  uuid.UUID `json:"loan_id"`
	Phone   string    `json:"phone"`
	DueDate time.Time `json:"due_date"`
}

// NewDueReminderEvent creates a new DueReminderEvent
func NewDueReminderEvent(phone string, dueDate time.Time, base *BaseLoan) *DueReminderEvent {
	var loanID uuid.UUID
	if base != nil {
		loanID = base.GetID()
	}
	return &DueReminderEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDueReminder, AggregateTypeLoan, loanID),
		LoanID:          loanID,
		Phone:           phone,
		DueDate:         dueDate,
	}
}
