package library

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/librarium/lending/internal/domain/billing"
	"github.com/librarium/lending/internal/domain/catalog"
	"github.com/librarium/lending/internal/domain/lending"
	"github.com/librarium/lending/internal/domain/lending/fine"
	"github.com/librarium/lending/internal/domain/shared"
	"github.com/librarium/lending/internal/domain/shared/valueobject"
	"github.com/librarium/lending/internal/infrastructure/event"
)

type eventRecorder struct {
	events []shared.DomainEvent
}

func (r *eventRecorder) Handle(ctx context.Context, evt shared.DomainEvent) error {
	r.events = append(r.events, evt)
	return nil
}

func (r *eventRecorder) EventTypes() []string { return nil }

func (r *eventRecorder) typesSeen() []string {
	types := make([]string, 0, len(r.events))
	for _, evt := range r.events {
		types = append(types, evt.EventType())
	}
	return types
}

func newTestService(t *testing.T) (*Service, *eventRecorder) {
	t.Helper()
	bus := event.NewInMemoryEventBus(zap.NewNop())
	recorder := &eventRecorder{}
	bus.Subscribe(recorder)

	engine := billing.NewEngine(billing.NewLedger("INV"), decimal.Zero)
	svc := NewService(catalog.NewInventory(), engine, bus, zap.NewNop())
	return svc, recorder
}

func registerBook(t *testing.T, svc *Service, isbn string) catalog.Resource {
	t.Helper()
	resource, err := svc.RegisterPrintedBook(context.Background(), catalog.PrintedBookSpec{
		Title:      "Clean Architecture",
		Author:     "Robert C. Martin",
		ISBN:       isbn,
		AcquiredAt: time.Now().AddDate(-2, 0, 0),
		Pages:      432,
		Publisher:  "Prentice Hall",
	})
	require.NoError(t, err)
	return resource
}

func TestService_Register(t *testing.T) {
	t.Run("registered resource lands in the inventory", func(t *testing.T) {
		svc, recorder := newTestService(t)

		resource := registerBook(t, svc, "978-0134494166")

		found, err := svc.Inventory().FindByISBN("978-0134494166")
		require.NoError(t, err)
		assert.Same(t, resource, found)
		assert.Contains(t, recorder.typesSeen(), catalog.EventTypeResourceRegistered)
	})

	t.Run("invalid payload is rejected and nothing is stored", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.RegisterPrintedBook(context.Background(), catalog.PrintedBookSpec{
			Title: "No Author",
			ISBN:  "978-0000000000",
		})
		require.Error(t, err)

		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "MISSING_FIELD", derr.Code)
		assert.Zero(t, svc.Inventory().Count())
	})

	t.Run("registers periodicals and digital items", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.RegisterPeriodical(context.Background(), catalog.PeriodicalSpec{
			Title:            "Communications of the ACM",
			Author:           "ACM",
			ISBN:             "0001-0782",
			IssueNumber:      7,
			PublicationMonth: "July",
		})
		require.NoError(t, err)

		_, err = svc.RegisterDigitalItem(context.Background(), catalog.DigitalItemSpec{
			Title:     "Go Course",
			Author:    "Jane Doe",
			ISBN:      "978-1111111111",
			Format:    "mp4",
			SizeMB:    820.5,
			AccessURL: "https://library.example/go-course",
		})
		require.NoError(t, err)

		assert.Equal(t, 2, svc.Inventory().Count())
	})
}

func TestService_Borrow(t *testing.T) {
	t.Run("borrowing marks the resource unavailable and publishes", func(t *testing.T) {
		svc, recorder := newTestService(t)
		resource := registerBook(t, svc, "978-0134494166")

		chain, err := svc.Borrow(context.Background(), "978-0134494166", "Alice", fine.NewStudentPolicy())
		require.NoError(t, err)

		assert.False(t, resource.Available())
		assert.Equal(t, 14, chain.DurationDays())
		assert.Contains(t, recorder.typesSeen(), lending.EventTypeLoanOpened)
	})

	t.Run("options stack wrappers in order", func(t *testing.T) {
		svc, _ := newTestService(t)
		registerBook(t, svc, "978-0134494166")

		chain, err := svc.Borrow(context.Background(), "978-0134494166", "Alice", fine.NewStudentPolicy(),
			WithNotification("555-0142"),
			WithPriorityReservation(3),
			WithLossInsurance(valueobject.NewUSDFromFloat(250)))
		require.NoError(t, err)

		assert.Equal(t, 21, chain.DurationDays())
		assert.Equal(t, "30.00", chain.BaseCost().StringFixed(2))

		services := lending.Services(chain)
		require.Len(t, services, 3)
		assert.Equal(t, lending.ServiceLossInsurance, services[0].Kind)
		assert.Equal(t, lending.ServiceNotification, services[2].Kind)
	})

	t.Run("unknown ISBN fails with not found", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.Borrow(context.Background(), "no-such", "Alice", nil)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("borrowing an on-loan resource fails", func(t *testing.T) {
		svc, _ := newTestService(t)
		registerBook(t, svc, "978-0134494166")

		_, err := svc.Borrow(context.Background(), "978-0134494166", "Alice", nil)
		require.NoError(t, err)

		_, err = svc.Borrow(context.Background(), "978-0134494166", "Bob", nil)
		assert.ErrorIs(t, err, ErrResourceUnavailable)
	})

	t.Run("failing option rolls the borrow back", func(t *testing.T) {
		svc, _ := newTestService(t)
		resource := registerBook(t, svc, "978-0134494166")

		_, err := svc.Borrow(context.Background(), "978-0134494166", "Alice", nil,
			WithNotification("555-0142"),
			WithPriorityReservation(9))
		require.ErrorIs(t, err, lending.ErrInvalidPriority)

		assert.True(t, resource.Available())
	})
}

func TestService_Return(t *testing.T) {
	svc, recorder := newTestService(t)
	resource := registerBook(t, svc, "978-0134494166")

	chain, err := svc.Borrow(context.Background(), "978-0134494166", "Alice", fine.NewStudentPolicy(),
		WithNotification("555-0142"))
	require.NoError(t, err)
	require.False(t, resource.Available())

	require.NoError(t, svc.Return(context.Background(), chain))

	assert.True(t, resource.Available())
	assert.Contains(t, recorder.typesSeen(), lending.EventTypeResourceReturned)
}

func TestService_Bill(t *testing.T) {
	t.Run("issues and records an invoice for the chain", func(t *testing.T) {
		svc, _ := newTestService(t)
		registerBook(t, svc, "978-0134494166")

		chain, err := svc.Borrow(context.Background(), "978-0134494166", "Alice", fine.NewStudentPolicy(),
			WithNotification("555-0142"),
			WithLossInsurance(valueobject.NewUSDFromFloat(100)))
		require.NoError(t, err)

		invoice, err := svc.Bill(context.Background(), chain, false)
		require.NoError(t, err)

		assert.Equal(t, "INV-000001", invoice.Number())
		assert.Equal(t, "20.00", invoice.Total().StringFixed(2))
		assert.Equal(t, 1, svc.Engine().Ledger().Count())
	})

	t.Run("includes the accrued fine when requested", func(t *testing.T) {
		svc, _ := newTestService(t)
		registerBook(t, svc, "978-0134494166")

		chain, err := svc.Borrow(context.Background(), "978-0134494166", "Alice", fine.NewFacultyPolicy())
		require.NoError(t, err)
		lending.Base(chain).BackdateStart(24)

		invoice, err := svc.Bill(context.Background(), chain, true)
		require.NoError(t, err)

		assert.True(t, invoice.HasFine())
		assert.Equal(t, "7.00", invoice.Total().StringFixed(2))
	})

	t.Run("fine without a policy aborts the invoice", func(t *testing.T) {
		svc, _ := newTestService(t)
		registerBook(t, svc, "978-0134494166")

		chain, err := svc.Borrow(context.Background(), "978-0134494166", "Alice", nil)
		require.NoError(t, err)
		lending.Base(chain).BackdateStart(24)

		_, err = svc.Bill(context.Background(), chain, true)
		assert.ErrorIs(t, err, lending.ErrNoFinePolicy)
		assert.Zero(t, svc.Engine().Ledger().Count())
	})
}
