package receipt

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/restodine/admin-service/internal/model"
)

// printWidth is the character width of the target receipt printer.
const printWidth = 40

// invalidDateSentinel is returned for timestamps that cannot be parsed.
const invalidDateSentinel = "Invalid Date"

// FormatCurrency renders amount with a leading dollar sign and exactly two
// decimal places. Negative amounts carry a leading sign before the symbol
// (-$5.00). Non-finite amounts (NaN, ±Inf) render as "$0.00".
func FormatCurrency(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "$0.00"
	}
	if amount < 0 {
		return fmt.Sprintf("-$%.2f", -amount)
	}
	return fmt.Sprintf("$%.2f", amount)
}

// timestampLayouts are tried in order when parsing receipt timestamps.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// FormatDateTime parses an ISO-like timestamp and renders the local date and
// local time joined by a single space ("2006-01-02 15:04:05"). Unparseable
// input yields the sentinel "Invalid Date".
func FormatDateTime(timestamp string) string {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, timestamp); err == nil {
			local := t.Local()
			return local.Format("2006-01-02") + " " + local.Format("15:04:05")
		}
	}
	return invalidDateSentinel
}

// GeneratePrintContent composes the full printable receipt from data. It is a
// pure transform: identical input always produces a byte-identical document.
// Sections appear in the structural order of ReceiptData; optional sections
// (tip, cash/change, staff/table/customer, footer) are omitted when unset.
func GeneratePrintContent(data *model.ReceiptData) string {
	var b strings.Builder
	divider := strings.Repeat("-", printWidth)

	// Header / business info
	writeCentered(&b, data.Business.Name)
	writeCentered(&b, data.Business.Address)
	writeCentered(&b, data.Business.Phone)
	if data.Business.TaxID != "" {
		writeCentered(&b, "Tax ID: "+data.Business.TaxID)
	}
	b.WriteString(divider + "\n")

	// Order identity
	writeRow(&b, "Order #"+data.OrderNumber, "")
	writeRow(&b, FormatDateTime(data.Timestamp), "")
	b.WriteString(divider + "\n")

	// Line items
	for _, item := range data.Items {
		writeRow(&b, fmt.Sprintf("%d x %s", item.Quantity, item.Name), FormatCurrency(item.Total))
		if item.Quantity > 1 {
			writeRow(&b, "    @ "+FormatCurrency(item.UnitPrice), "")
		}
		for _, mod := range item.Modifiers {
			writeRow(&b, "    + "+mod, "")
		}
	}
	b.WriteString(divider + "\n")

	// Totals
	writeRow(&b, "Subtotal", FormatCurrency(data.Subtotal))
	writeRow(&b, fmt.Sprintf("Tax (%.1f%%)", data.TaxRate*100), FormatCurrency(data.TaxAmount))
	if data.TipAmount > 0 {
		writeRow(&b, "Tip", FormatCurrency(data.TipAmount))
	}
	writeRow(&b, "TOTAL", FormatCurrency(data.Total))
	b.WriteString(divider + "\n")

	// Payment
	writeRow(&b, "Paid by "+data.PaymentMethod, "")
	if data.CashReceived > 0 {
		writeRow(&b, "Cash", FormatCurrency(data.CashReceived))
		writeRow(&b, "Change", FormatCurrency(data.ChangeDue))
	}

	// Service details
	if data.StaffName != "" {
		writeRow(&b, "Served by: "+data.StaffName, "")
	}
	if data.TableNumber != "" {
		writeRow(&b, "Table: "+data.TableNumber, "")
	}
	if data.CustomerName != "" {
		writeRow(&b, "Customer: "+data.CustomerName, "")
	}

	// Footer
	if data.FooterMessage != "" {
		b.WriteString(divider + "\n")
		writeCentered(&b, data.FooterMessage)
	}

	return b.String()
}

// writeRow writes left and right on one line with the right text aligned to
// the print width. Overlong lines are not truncated; the printer wraps.
func writeRow(b *strings.Builder, left, right string) {
	if right == "" {
		b.WriteString(left + "\n")
		return
	}
	pad := printWidth - utf8.RuneCountInString(left) - utf8.RuneCountInString(right)
	if pad < 1 {
		pad = 1
	}
	b.WriteString(left + strings.Repeat(" ", pad) + right + "\n")
}

func writeCentered(b *strings.Builder, s string) {
	if s == "" {
		return
	}
	pad := (printWidth - utf8.RuneCountInString(s)) / 2
	if pad < 0 {
		pad = 0
	}
	b.WriteString(strings.Repeat(" ", pad) + s + "\n")
}
