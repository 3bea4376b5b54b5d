// Package library is the application-layer facade over the catalog,
// lending and billing domains. It owns the inventory and the invoice
// engine and publishes domain events for everything it does.
package library

import (
	"context"

	"go.uber.org/zap"

	"github.com/librarium/lending/internal/domain/billing"
	"github.com/librarium/lending/internal/domain/catalog"
	"github.com/librarium/lending/internal/domain/lending"
	"github.com/librarium/lending/internal/domain/lending/fine"
	"github.com/librarium/lending/internal/domain/shared"
	"github.com/librarium/lending/internal/domain/shared/valueobject"
)

// ErrResourceUnavailable is returned when borrowing a resource that is
// already on loan
var ErrResourceUnavailable = shared.NewDomainError("RESOURCE_UNAVAILABLE", "Resource is currently on loan")

// LoanOption stacks one service wrapper onto a loan chain. Options are
// applied in argument order, so the last option becomes the outermost
// wrapper.
type LoanOption func(lending.Loan) (lending.Loan, error)

// WithNotification adds the SMS notification service
func WithNotification(phone string) LoanOption {
	return func(inner lending.Loan) (lending.Loan, error) {
		return lending.WithNotification(inner, phone), nil
	}
}

// WithPriorityReservation adds a priority reservation. Priority must be
// between 1 and 5.
func WithPriorityReservation(priority int) LoanOption {
	return func(inner lending.Loan) (lending.Loan, error) {
		return lending.WithPriorityReservation(inner, priority)
	}
}

// WithLossInsurance adds loss insurance for the given coverage amount
func WithLossInsurance(coverage valueobject.Money) LoanOption {
	return func(inner lending.Loan) (lending.Loan, error) {
		return lending.WithLossInsurance(inner, coverage), nil
	}
}

// Service coordinates the resource inventory, the loan lifecycle and
// invoice generation
type Service struct {
	inventory *catalog.Inventory
	engine    *billing.Engine
	bus       shared.EventBus
	logger    *zap.Logger
}

// NewService creates the library application service. The event bus may
// be nil when no subscribers exist.
func NewService(inventory *catalog.Inventory, engine *billing.Engine, bus shared.EventBus, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		inventory: inventory,
		engine:    engine,
		bus:       bus,
		logger:    logger,
	}
}

// Inventory returns the resource inventory
func (s *Service) Inventory() *catalog.Inventory {
	return s.inventory
}

// Engine returns the invoice engine
func (s *Service) Engine() *billing.Engine {
	return s.engine
}

// RegisterPrintedBook builds and registers a printed book
func (s *Service) RegisterPrintedBook(ctx context.Context, spec catalog.PrintedBookSpec) (catalog.Resource, error) {
	return s.register(ctx, catalog.PrintedBookBuilder{Spec: spec})
}

// RegisterPeriodical builds and registers a periodical
func (s *Service) RegisterPeriodical(ctx context.Context, spec catalog.PeriodicalSpec) (catalog.Resource, error) {
	return s.register(ctx, catalog.PeriodicalBuilder{Spec: spec})
}

// RegisterDigitalItem builds and registers a digital item
func (s *Service) RegisterDigitalItem(ctx context.Context, spec catalog.DigitalItemSpec) (catalog.Resource, error) {
	return s.register(ctx, catalog.DigitalItemBuilder{Spec: spec})
}

func (s *Service) register(ctx context.Context, b catalog.Builder) (catalog.Resource, error) {
	resource, err := catalog.RegisterAndBuild(ctx, s.bus, b)
	if err != nil {
		s.logger.Warn("resource registration rejected", zap.Error(err))
		return nil, err
	}

	s.inventory.Add(resource)
	s.logger.Info("resource registered",
		zap.String("isbn", resource.ISBN()),
		zap.String("title", resource.Title()),
		zap.String("kind", resource.Kind().String()))
	return resource, nil
}

// Borrow opens a loan for the resource with the given ISBN and stacks
// the requested service wrappers around it. The borrow is rolled back
// if any option fails.
func (s *Service) Borrow(ctx context.Context, isbn, borrower string, policy fine.Policy, opts ...LoanOption) (lending.Loan, error) {
	resource, err := s.inventory.FindByISBN(isbn)
	if err != nil {
		return nil, err
	}
	if !resource.Available() {
		return nil, ErrResourceUnavailable
	}

	base := lending.NewBaseLoan(resource, borrower, policy)
	var chain lending.Loan = base
	for _, opt := range opts {
		chain, err = opt(chain)
		if err != nil {
			base.ReturnResource()
			return nil, err
		}
	}

	if s.bus != nil {
		_ = s.bus.Publish(ctx, lending.NewLoanOpenedEvent(base))
	}
	s.logger.Info("loan opened",
		zap.String("isbn", isbn),
		zap.String("borrower", borrower),
		zap.Int("duration_days", chain.DurationDays()),
		zap.String("cost", chain.BaseCost().StringFixed(2)))
	return chain, nil
}

// Return flips the borrowed resource back to available. Fine
// bookkeeping on the loan is untouched.
func (s *Service) Return(ctx context.Context, chain lending.Loan) error {
	base := lending.Base(chain)
	if base == nil {
		return shared.ErrInvalidInput
	}

	base.ReturnResource()
	if s.bus != nil {
		_ = s.bus.Publish(ctx, lending.NewResourceReturnedEvent(base))
	}
	s.logger.Info("resource returned",
		zap.String("isbn", base.Resource().ISBN()),
		zap.String("borrower", base.Borrower()))
	return nil
}

// Bill issues an invoice for the loan chain, optionally including the
// fine accrued so far
func (s *Service) Bill(ctx context.Context, chain lending.Loan, includeFine bool) (*billing.Invoice, error) {
	base := lending.Base(chain)
	if base == nil {
		return nil, shared.ErrInvalidInput
	}

	invoice, err := s.engine.CreateInvoice(chain, base, includeFine)
	if err != nil {
		s.logger.Warn("invoice creation failed",
			zap.String("borrower", base.Borrower()),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("invoice issued",
		zap.String("number", invoice.Number()),
		zap.String("borrower", base.Borrower()),
		zap.String("total", invoice.Total().StringFixed(2)))
	return invoice, nil
}
