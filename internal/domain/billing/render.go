package billing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const renderWidth = 80

// RenderText formats the invoice as a multi-section text document:
// header, loan detail, itemized charges, totals and payment footer.
// The layout is presentation only, not a wire contract.
func (inv *Invoice) RenderText() string {
	var b strings.Builder

	writeBanner(&b, "PAYMENT INVOICE", "LIBRARIUM PUBLIC LIBRARY")

	b.WriteString("\n")
	fmt.Fprintf(&b, "Invoice Number:    %s\n", inv.number)
	fmt.Fprintf(&b, "Issued At:         %s\n", inv.issuedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Customer:          %s\n", inv.base.Borrower())
	b.WriteString("\n")
	b.WriteString(strings.Repeat("-", renderWidth) + "\n")

	resource := inv.base.Resource()
	b.WriteString("\n[LOAN DETAIL]\n")
	fmt.Fprintf(&b, "Resource:          %s\n", resource.Title())
	fmt.Fprintf(&b, "Author:            %s\n", resource.Author())
	fmt.Fprintf(&b, "ISBN:              %s\n", resource.ISBN())
	fmt.Fprintf(&b, "Type:              %s\n", resource.KindLabel())
	fmt.Fprintf(&b, "Loan Date:         %s\n", inv.base.StartedAt().Format("2006-01-02"))
	fmt.Fprintf(&b, "Due Date:          %s\n", inv.chain.DueDate().Format("2006-01-02"))
	fmt.Fprintf(&b, "Duration:          %d days\n", inv.chain.DurationDays())

	if daysLate := inv.base.DaysLate(); daysLate > 0 {
		fmt.Fprintf(&b, "Days Late:         %d days [OVERDUE]\n", daysLate)
	}

	b.WriteString("\n")
	b.WriteString(strings.Repeat("-", renderWidth) + "\n")

	b.WriteString("\n[CHARGES]\n\n")
	rule := "+----+------------------------------------------+-----+----------+-----------+"
	b.WriteString(rule + "\n")
	b.WriteString("| #  | Description                              | Qty | Unit     | Subtotal  |\n")
	b.WriteString(rule + "\n")
	for i, item := range inv.items {
		desc := item.Description
		if len(desc) > 40 {
			desc = desc[:40]
		}
		fmt.Fprintf(&b, "| %-2d | %-40s | %3d | $%7s | $%8s |\n",
			i+1, desc, item.Quantity, item.UnitPrice.StringFixed(2), item.Subtotal().StringFixed(2))
	}
	b.WriteString(rule + "\n")

	ratePercent := inv.taxRate.Mul(decimal.NewFromInt(100)).StringFixed(0)
	b.WriteString("\n")
	fmt.Fprintf(&b, "%60s SUBTOTAL: $%10s\n", "", inv.Subtotal().StringFixed(2))
	fmt.Fprintf(&b, "%60s TAX (%s%%): $%10s\n", "", ratePercent, inv.Tax().StringFixed(2))
	fmt.Fprintf(&b, "%60s %s\n", "", strings.Repeat("=", 24))
	fmt.Fprintf(&b, "%60s TOTAL DUE: $%10s\n", "", inv.Total().StringFixed(2))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("-", renderWidth) + "\n")

	b.WriteString("\n[ACCEPTED PAYMENT METHODS]\n")
	b.WriteString("  - Cash at the front desk\n")
	b.WriteString("  - Credit/debit card\n")
	b.WriteString("  - Bank transfer\n")
	b.WriteString("  - Online payment portal\n")

	b.WriteString("\n[ADDITIONAL INFORMATION]\n")
	if policy := inv.base.Policy(); policy != nil {
		fmt.Fprintf(&b, "  Fine policy: %s\n", policy.Description())
	}
	b.WriteString("  Educational lending services are tax exempt\n\n")

	writeBanner(&b, "THANK YOU FOR YOUR PAYMENT", "Librarium Public Library")

	return b.String()
}

func writeBanner(b *strings.Builder, lines ...string) {
	border := strings.Repeat("=", renderWidth)
	blank := "||" + strings.Repeat(" ", renderWidth-4) + "||"

	b.WriteString(border + "\n")
	b.WriteString(blank + "\n")
	for _, line := range lines {
		b.WriteString(centerBetween(line, renderWidth) + "\n")
	}
	b.WriteString(blank + "\n")
	b.WriteString(border + "\n")
}

func centerBetween(text string, width int) string {
	inner := width - 4
	if len(text) > inner {
		text = text[:inner]
	}
	left := (inner - len(text)) / 2
	right := inner - len(text) - left
	return "||" + strings.Repeat(" ", left) + text + strings.Repeat(" ", right) + "||"
}
