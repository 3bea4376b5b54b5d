// Command demo walks the full lending flow end to end: register
// resources, open a loan with stacked add-on services, accrue a fine
// and render the resulting invoice.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/librarium/lending/internal/application/library"
	"github.com/librarium/lending/internal/domain/billing"
	"github.com/librarium/lending/internal/domain/catalog"
	"github.com/librarium/lending/internal/domain/lending"
	"github.com/librarium/lending/internal/domain/lending/fine"
	"github.com/librarium/lending/internal/domain/shared/valueobject"
	"github.com/librarium/lending/internal/infrastructure/config"
	"github.com/librarium/lending/internal/infrastructure/event"
	"github.com/librarium/lending/internal/infrastructure/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "demo failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer func() { _ = logger.Sync(log) }()

	log.Info("starting",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env))

	bus := event.NewInMemoryEventBus(logger.Named(log, "eventbus"))
	bus.Subscribe(event.NewLoggingHandler(logger.Named(log, "events")))

	ledger := billing.NewLedger(cfg.Billing.InvoicePrefix)
	engine := billing.NewEngine(ledger, decimal.NewFromFloat(cfg.Billing.TaxRate))
	svc := library.NewService(catalog.NewInventory(), engine, bus, logger.Named(log, "library"))

	ctx := context.Background()

	if err := registerCatalog(ctx, svc); err != nil {
		return err
	}

	// A student borrows a book with every add-on service stacked on.
	chain, err := svc.Borrow(ctx, "978-0201633610", "Maria Gomez", fine.NewStudentPolicy(),
		library.WithNotification("555-0142"),
		library.WithPriorityReservation(2),
		library.WithLossInsurance(valueobject.NewUSDFromFloat(150)))
	if err != nil {
		return fmt.Errorf("borrowing: %w", err)
	}

	fmt.Println(chain.Description())
	fmt.Printf("Due %s after %d days, base cost $%s\n\n",
		chain.DueDate().Format("2006-01-02"), chain.DurationDays(), chain.BaseCost().StringFixed(2))

	// Simulate the loan running three weeks past the base due date.
	base := lending.Base(chain)
	base.BackdateStart(base.DurationDays() + 10)

	invoice, err := svc.Bill(ctx, chain, true)
	if err != nil {
		return fmt.Errorf("billing: %w", err)
	}
	fmt.Println(invoice.RenderText())

	// A second borrower with a faculty policy, returned inside the
	// grace period, bills without a fine.
	facultyChain, err := svc.Borrow(ctx, "0001-0782", "Dr. Chen", fine.NewFacultyPolicy())
	if err != nil {
		return fmt.Errorf("borrowing: %w", err)
	}
	if err := svc.Return(ctx, facultyChain); err != nil {
		return fmt.Errorf("returning: %w", err)
	}
	if _, err := svc.Bill(ctx, facultyChain, true); err != nil {
		return fmt.Errorf("billing: %w", err)
	}

	fmt.Printf("Ledger: %d invoices, $%s billed in total\n",
		ledger.Count(), ledger.TotalBilled().StringFixed(2))
	return nil
}

func registerCatalog(ctx context.Context, svc *library.Service) error {
	if _, err := svc.RegisterPrintedBook(ctx, catalog.PrintedBookSpec{
		Title:      "Design Patterns",
		Author:     "Gamma, Helm, Johnson, Vlissides",
		ISBN:       "978-0201633610",
		AcquiredAt: time.Now().AddDate(-6, 0, 0),
		Pages:      395,
		Publisher:  "Addison-Wesley",
	}); err != nil {
		return fmt.Errorf("registering book: %w", err)
	}

	if _, err := svc.RegisterPeriodical(ctx, catalog.PeriodicalSpec{
		Title:            "Communications of the ACM",
		Author:           "ACM",
		ISBN:             "0001-0782",
		IssueNumber:      7,
		PublicationMonth: "July",
	}); err != nil {
		return fmt.Errorf("registering periodical: %w", err)
	}

	if _, err := svc.RegisterDigitalItem(ctx, catalog.DigitalItemSpec{
		Title:     "Introduction to Algorithms (eBook)",
		Author:    "Cormen, Leiserson, Rivest, Stein",
		ISBN:      "978-0262046305",
		Format:    "epub",
		SizeMB:    48.2,
		AccessURL: "https://library.example/ebooks/intro-algorithms",
	}); err != nil {
		return fmt.Errorf("registering digital item: %w", err)
	}

	return nil
}
