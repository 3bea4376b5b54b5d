// Package billing derives line-itemized invoices from composed loan
// chains and aggregates them into an append-only ledger.
package billing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/librarium/lending/internal/domain/lending"
	"github.com/librarium/lending/internal/domain/shared"
	"github.com/librarium/lending/internal/domain/shared/valueobject"
)

// ItemCategory classifies an invoice line item
type ItemCategory string

const (
	CategoryResource ItemCategory = "RESOURCE"
	CategoryService  ItemCategory = "SERVICE"
	CategoryFine     ItemCategory = "FINE"
)

// String returns the string representation of the item category
func (c ItemCategory) String() string {
	return string(c)
}

// InvoiceItem is a single line on an invoice
type InvoiceItem struct {
	Description string
	Quantity    int
	UnitPrice   valueobject.Money
	Category    ItemCategory
}

// Subtotal returns quantity times unit price
func (i InvoiceItem) Subtotal() valueobject.Money {
	return i.UnitPrice.MultiplyByInt(int64(i.Quantity))
}

// Invoice is an itemized bill derived from a loan chain. Items are
// generated once at construction; a fine item may be appended later.
// Regenerating an invoice after the chain changes is undefined; create
// a new one instead.
type Invoice struct {
	shared.BaseEntity
	number   string
	issuedAt time.Time
	chain    lending.Loan
	base     *lending.BaseLoan
	taxRate  decimal.Decimal
	items    []InvoiceItem
	fineIdx  int
}

// NewInvoice derives an invoice from the given loan chain. The chain
// and its base loan are passed separately: the chain carries the
// composed cost and services, the base carries borrower, policy and
// late-day bookkeeping.
func NewInvoice(number string, chain lending.Loan, base *lending.BaseLoan, taxRate decimal.Decimal) *Invoice {
	inv := &Invoice{
		BaseEntity: shared.NewBaseEntity(),
		number:     number,
		issuedAt:   time.Now(),
		chain:      chain,
		base:       base,
		taxRate:    taxRate,
		fineIdx:    -1,
	}
	inv.deriveItems()
	return inv
}

// deriveItems reads the composed chain back into line items: a
// RESOURCE item only when the base loan carries an intrinsic charge,
// then one SERVICE item per wrapper, outermost first.
func (inv *Invoice) deriveItems() {
	if inv.base.BaseCost().IsPositive() {
		inv.items = append(inv.items, InvoiceItem{
			Description: "Base loan of the resource",
			Quantity:    1,
			UnitPrice:   inv.base.BaseCost(),
			Category:    CategoryResource,
		})
	}

	for _, svc := range lending.Services(inv.chain) {
		inv.items = append(inv.items, InvoiceItem{
			Description: svc.Label,
			Quantity:    1,
			UnitPrice:   svc.Fee,
			Category:    CategoryService,
		})
	}
}

// AppendFineAt computes the accrued fine as of the given time and
// appends it as a FINE item, returning the amount. Nothing is appended
// when the loan is not overdue. Re-appending replaces the previous
// fine item, so the call is idempotent for a fixed reference time.
func (inv *Invoice) AppendFineAt(asOf time.Time) (valueobject.Money, error) {
	daysLate := inv.base.DaysLateAt(asOf)
	if daysLate <= 0 {
		return valueobject.ZeroUSD(), nil
	}

	result, err := inv.base.ComputeFineAt(asOf)
	if err != nil {
		return valueobject.Money{}, err
	}

	item := InvoiceItem{
		Description: fmt.Sprintf("Fine for %d days late (%s policy)", daysLate, inv.base.Policy().Name()),
		Quantity:    1,
		UnitPrice:   result.Amount,
		Category:    CategoryFine,
	}
	if inv.fineIdx >= 0 {
		inv.items[inv.fineIdx] = item
	} else {
		inv.items = append(inv.items, item)
		inv.fineIdx = len(inv.items) - 1
	}

	return result.Amount, nil
}

// AppendFine returns AppendFineAt anchored to the current wall clock
func (inv *Invoice) AppendFine() (valueobject.Money, error) {
	return inv.AppendFineAt(time.Now())
}

// Number returns the sequential invoice identifier
func (inv *Invoice) Number() string {
	return inv.number
}

// IssuedAt returns the emission timestamp
func (inv *Invoice) IssuedAt() time.Time {
	return inv.issuedAt
}

// Chain returns the loan chain the invoice was derived from
func (inv *Invoice) Chain() lending.Loan {
	return inv.chain
}

// Base returns the base loan of the chain
func (inv *Invoice) Base() *lending.BaseLoan {
	return inv.base
}

// Items returns a snapshot copy of the line items
func (inv *Invoice) Items() []InvoiceItem {
	snapshot := make([]InvoiceItem, len(inv.items))
	copy(snapshot, inv.items)
	return snapshot
}

// HasFine returns true once a fine item has been appended
func (inv *Invoice) HasFine() bool {
	return inv.fineIdx >= 0
}

// Subtotal sums the item subtotals
func (inv *Invoice) Subtotal() valueobject.Money {
	total := valueobject.ZeroUSD()
	for _, item := range inv.items {
		total = total.MustAdd(item.Subtotal())
	}
	return total
}

// Tax applies the invoice's tax rate to the subtotal. The rate is zero
// in the default configuration, modeling a tax-exempt educational
// service.
func (inv *Invoice) Tax() valueobject.Money {
	return inv.Subtotal().Multiply(inv.taxRate).Round(2)
}

// Total returns subtotal plus tax
func (inv *Invoice) Total() valueobject.Money {
	return inv.Subtotal().MustAdd(inv.Tax())
}

// TaxRate returns the tax rate the invoice was issued with
func (inv *Invoice) TaxRate() decimal.Decimal {
	return inv.taxRate
}
