package billing

import (
	"fmt"

	"github.com/librarium/lending/internal/domain/shared/valueobject"
)

// DefaultInvoicePrefix is used when no prefix is configured
const DefaultInvoicePrefix = "INV"

// Ledger is the append-only record of issued invoices. Totals and
// counts are derived on demand, never stored redundantly.
type Ledger struct {
	prefix   string
	seq      int
	invoices []*Invoice
}

// NewLedger creates an empty ledger with the given invoice number
// prefix
func NewLedger(prefix string) *Ledger {
	if prefix == "" {
		prefix = DefaultInvoicePrefix
	}
	return &Ledger{
		prefix:   prefix,
		invoices: make([]*Invoice, 0),
	}
}

// NextInvoiceNumber generates the next zero-padded sequential invoice
// identifier
func (l *Ledger) NextInvoiceNumber() string {
	l.seq++
	return fmt.Sprintf("%s-%06d", l.prefix, l.seq)
}

// Record appends an invoice to the ledger
func (l *Ledger) Record(inv *Invoice) {
	l.invoices = append(l.invoices, inv)
}

// Count returns the number of recorded invoices
func (l *Ledger) Count() int {
	return len(l.invoices)
}

// TotalBilled sums the totals of all recorded invoices
func (l *Ledger) TotalBilled() valueobject.Money {
	total := valueobject.ZeroUSD()
	for _, inv := range l.invoices {
		total = total.MustAdd(inv.Total())
	}
	return total
}

// Invoices returns a snapshot copy of the recorded invoices in
// emission order
func (l *Ledger) Invoices() []*Invoice {
	snapshot := make([]*Invoice, len(l.invoices))
	copy(snapshot, l.invoices)
	return snapshot
}
