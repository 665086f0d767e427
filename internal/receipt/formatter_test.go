package receipt

import (
	"math"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/restodine/admin-service/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   string
	}{
		{"zero", 0, "$0.00"},
		{"half dollar cents", 12.5, "$12.50"},
		{"whole negative", -3, "-$3.00"},
		{"negative with cents", -5.25, "-$5.25"},
		{"rounds to two places", 9.999, "$10.00"},
		{"large", 1234567.89, "$1234567.89"},
		{"nan", math.NaN(), "$0.00"},
		{"positive infinity", math.Inf(1), "$0.00"},
		{"negative infinity", math.Inf(-1), "$0.00"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatCurrency(tc.amount))
		})
	}
}

func TestFormatDateTime(t *testing.T) {
	got := FormatDateTime("2026-03-14T18:30:05Z")
	parts := strings.SplitN(got, " ", 2)
	require.Len(t, parts, 2, "date and time joined by a single space")
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, parts[0])
	assert.Regexp(t, `^\d{2}:\d{2}:\d{2}$`, parts[1])
}

func TestFormatDateTime_Invalid(t *testing.T) {
	for _, input := range []string{"", "not a date", "14/03/2026", "2026-13-45T99:99:99Z"} {
		assert.Equal(t, "Invalid Date", FormatDateTime(input), "input %q", input)
	}
}

func sampleReceipt() *model.ReceiptData {
	return &model.ReceiptData{
		OrderNumber: "1042",
		Business: model.BusinessInfo{
			Name:    "Blue Fern Bistro",
			Address: "12 Market Lane",
			Phone:   "555-0117",
			TaxID:   "GB-998877",
		},
		Items: []model.ReceiptItem{
			{Name: "Burger", Quantity: 2, UnitPrice: 8.50, Total: 17.00, Modifiers: []string{"extra cheese"}},
			{Name: "Fries", Quantity: 1, UnitPrice: 3.25, Total: 3.25},
		},
		Subtotal:      20.25,
		TaxRate:       0.08,
		TaxAmount:     1.62,
		TipAmount:     3.00,
		Total:         24.87,
		PaymentMethod: "cash",
		CashReceived:  30.00,
		ChangeDue:     5.13,
		StaffName:     "Dana",
		TableNumber:   "7",
		Timestamp:     "2026-03-14T18:30:05Z",
		FooterMessage: "Thank you for dining with us!",
	}
}

func TestGeneratePrintContent_Deterministic(t *testing.T) {
	a := GeneratePrintContent(sampleReceipt())
	b := GeneratePrintContent(sampleReceipt())
	assert.Equal(t, a, b, "identical input must yield byte-identical output")
}

func TestGeneratePrintContent_Sections(t *testing.T) {
	out := GeneratePrintContent(sampleReceipt())

	// Every section present.
	assert.Contains(t, out, "Blue Fern Bistro")
	assert.Contains(t, out, "Order #1042")
	assert.Contains(t, out, "2 x Burger")
	assert.Contains(t, out, "+ extra cheese")
	assert.Contains(t, out, "@ $8.50")
	assert.Contains(t, out, "Subtotal")
	assert.Contains(t, out, "$20.25")
	assert.Contains(t, out, "Tax (8.0%)")
	assert.Contains(t, out, "Tip")
	assert.Contains(t, out, "TOTAL")
	assert.Contains(t, out, "$24.87")
	assert.Contains(t, out, "Paid by cash")
	assert.Contains(t, out, "Change")
	assert.Contains(t, out, "$5.13")
	assert.Contains(t, out, "Served by: Dana")
	assert.Contains(t, out, "Table: 7")
	assert.Contains(t, out, "Thank you for dining with us!")

	// Fixed structural order: header, order identity, items, totals, payment,
	// cash/change, service details, footer.
	order := []string{
		"Blue Fern Bistro",
		"Order #1042",
		"2 x Burger",
		"Subtotal",
		"TOTAL",
		"Paid by cash",
		"Change",
		"Served by: Dana",
		"Table: 7",
		"Thank you",
	}
	last := -1
	for _, marker := range order {
		idx := strings.Index(out, marker)
		require.Greater(t, idx, last, "%q out of order", marker)
		last = idx
	}
}

func TestGeneratePrintContent_AlignsNonASCIINames(t *testing.T) {
	data := sampleReceipt()
	data.Business.Name = "Café Noir"
	data.Items = []model.ReceiptItem{
		{Name: "Café Latte", Quantity: 1, UnitPrice: 4.00, Total: 4.00},
	}

	out := GeneratePrintContent(data)

	var found bool
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "Café Latte") {
			found = true
			assert.Equal(t, printWidth, utf8.RuneCountInString(line),
				"amount column stays right-aligned for multibyte names")
		}
	}
	require.True(t, found)
}

func TestGeneratePrintContent_OptionalSectionsOmitted(t *testing.T) {
	data := sampleReceipt()
	data.TipAmount = 0
	data.CashReceived = 0
	data.ChangeDue = 0
	data.StaffName = ""
	data.TableNumber = ""
	data.FooterMessage = ""

	out := GeneratePrintContent(data)

	assert.NotContains(t, out, "Tip")
	assert.NotContains(t, out, "Change")
	assert.NotContains(t, out, "Served by")
	assert.NotContains(t, out, "Table:")
	assert.NotContains(t, out, "Thank you")
}
