package catalog

import (
	"fmt"
	"time"

	"github.com/librarium/lending/internal/domain/shared"
)

// ResourceKind identifies the variant of a catalog resource
type ResourceKind string

const (
	KindPrintedBook ResourceKind = "printed_book"
	KindPeriodical  ResourceKind = "periodical"
	KindDigitalItem ResourceKind = "digital_item"
)

// String returns the string representation of the resource kind
func (k ResourceKind) String() string {
	return string(k)
}

// IsValid returns true if the resource kind is valid
func (k ResourceKind) IsValid() bool {
	switch k {
	case KindPrintedBook, KindPeriodical, KindDigitalItem:
		return true
	}
	return false
}

// Base loan durations per resource kind, in days
const (
	printedBookLoanDays = 14
	periodicalLoanDays  = 7
	digitalItemLoanDays = 30
)

// Resource is a catalog item available for lending. Implementations are
// immutable after creation except for the availability flag, which is
// toggled through ChangeAvailability when a loan starts or ends.
type Resource interface {
	shared.Entity
	ISBN() string
	Title() string
	Author() string
	AcquiredAt() time.Time
	Available() bool
	ChangeAvailability(available bool)
	// AgeDays returns the resource age in whole days as of the given time
	AgeDays(asOf time.Time) int
	// BaseLoanDurationDays returns the loan duration this kind of
	// resource grants before any add-on services extend it
	BaseLoanDurationDays() int
	Kind() ResourceKind
	KindLabel() string
	fmt.Stringer
}

// baseResource carries the attributes shared by every resource variant
type baseResource struct {
	shared.BaseEntity
	isbn       string
	title      string
	author     string
	acquiredAt time.Time
	available  bool
}

func newBaseResource(isbn, title, author string, acquiredAt time.Time) baseResource {
	return baseResource{
		BaseEntity: shared.NewBaseEntity(),
		isbn:       isbn,
		title:      title,
		author:     author,
		acquiredAt: acquiredAt,
		available:  true,
	}
}

func (r *baseResource) ISBN() string          { return r.isbn }
func (r *baseResource) Title() string         { return r.title }
func (r *baseResource) Author() string        { return r.author }
func (r *baseResource) AcquiredAt() time.Time { return r.acquiredAt }
func (r *baseResource) Available() bool       { return r.available }

// ChangeAvailability toggles the availability flag. No check-and-set
// discipline here: the core is single-threaded by design.
func (r *baseResource) ChangeAvailability(available bool) {
	r.available = available
}

// AgeDays returns the whole days elapsed since acquisition
func (r *baseResource) AgeDays(asOf time.Time) int {
	days := int(asOf.Sub(r.acquiredAt).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

func (r *baseResource) describe(label string) string {
	return fmt.Sprintf("%s: %s by %s", label, r.title, r.author)
}

// PrintedBook is a physical book in the catalog
type PrintedBook struct {
	baseResource
	pages     int
	publisher string
}

func (b *PrintedBook) Pages() int                { return b.pages }
func (b *PrintedBook) Publisher() string         { return b.publisher }
func (b *PrintedBook) BaseLoanDurationDays() int { return printedBookLoanDays }
func (b *PrintedBook) Kind() ResourceKind        { return KindPrintedBook }
func (b *PrintedBook) KindLabel() string         { return "Printed Book" }
func (b *PrintedBook) String() string            { return b.describe(b.KindLabel()) }

// Periodical is a magazine or journal issue
type Periodical struct {
	baseResource
	issueNumber      int
	publicationMonth string
}

func (p *Periodical) IssueNumber() int          { return p.issueNumber }
func (p *Periodical) PublicationMonth() string  { return p.publicationMonth }
func (p *Periodical) BaseLoanDurationDays() int { return periodicalLoanDays }
func (p *Periodical) Kind() ResourceKind        { return KindPeriodical }
func (p *Periodical) KindLabel() string         { return "Periodical" }
func (p *Periodical) String() string            { return p.describe(p.KindLabel()) }

// DigitalItem is an electronically delivered resource
type DigitalItem struct {
	baseResource
	format    string
	sizeMB    float64
	accessURL string
}

func (d *DigitalItem) Format() string            { return d.format }
func (d *DigitalItem) SizeMB() float64           { return d.sizeMB }
func (d *DigitalItem) AccessURL() string         { return d.accessURL }
func (d *DigitalItem) BaseLoanDurationDays() int { return digitalItemLoanDays }
func (d *DigitalItem) Kind() ResourceKind        { return KindDigitalItem }
func (d *DigitalItem) KindLabel() string         { return "Digital Item" }
func (d *DigitalItem) String() string            { return d.describe(d.KindLabel()) }
