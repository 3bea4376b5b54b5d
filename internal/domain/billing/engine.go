package billing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/librarium/lending/internal/domain/lending"
)

// Engine issues invoices against a ledger. The tax rate applies to
// every invoice it creates; the default configuration uses zero.
type Engine struct {
	ledger  *Ledger
	taxRate decimal.Decimal
}

// NewEngine creates an invoice engine writing to the given ledger
func NewEngine(ledger *Ledger, taxRate decimal.Decimal) *Engine {
	return &Engine{
		ledger:  ledger,
		taxRate: taxRate,
	}
}

// CreateInvoiceAt derives an invoice from the loan chain, optionally
// appending the fine accrued as of the given time, and records it in
// the ledger. A fine computation failure aborts the invoice; nothing
// is recorded.
func (e *Engine) CreateInvoiceAt(asOf time.Time, chain lending.Loan, base *lending.BaseLoan, includeFine bool) (*Invoice, error) {
	inv := NewInvoice(e.ledger.NextInvoiceNumber(), chain, base, e.taxRate)
	if includeFine {
		if _, err := inv.AppendFineAt(asOf); err != nil {
			return nil, err
		}
	}
	e.ledger.Record(inv)
	return inv, nil
}

// CreateInvoice returns CreateInvoiceAt anchored to the current wall
// clock
func (e *Engine) CreateInvoice(chain lending.Loan, base *lending.BaseLoan, includeFine bool) (*Invoice, error) {
	return e.CreateInvoiceAt(time.Now(), chain, base, includeFine)
}

// Ledger returns the ledger the engine records into
func (e *Engine) Ledger() *Ledger {
	return e.ledger
}

// TaxRate returns the configured tax rate
func (e *Engine) TaxRate() decimal.Decimal {
	return e.taxRate
}
