package model

import "time"

// ReceiptData is the immutable snapshot taken at checkout. It is stored as a
// single JSONB payload and never modified afterwards.
type ReceiptData struct {
	OrderNumber   string        `json:"order_number"`
	Business      BusinessInfo  `json:"business"`
	Items         []ReceiptItem `json:"items"`
	Subtotal      float64       `json:"subtotal"`
	TaxRate       float64       `json:"tax_rate"`
	TaxAmount     float64       `json:"tax_amount"`
	TipAmount     float64       `json:"tip_amount,omitempty"`
	Total         float64       `json:"total"`
	PaymentMethod string        `json:"payment_method"`
	CashReceived  float64       `json:"cash_received,omitempty"`
	ChangeDue     float64       `json:"change_due,omitempty"`
	StaffName     string        `json:"staff_name,omitempty"`
	TableNumber   string        `json:"table_number,omitempty"`
	CustomerName  string        `json:"customer_name,omitempty"`
	Timestamp     string        `json:"timestamp"`
	FooterMessage string        `json:"footer_message,omitempty"`
}

type BusinessInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	TaxID   string `json:"tax_id,omitempty"`
}

type ReceiptItem struct {
	Name      string   `json:"name"`
	Quantity  int      `json:"quantity"`
	UnitPrice float64  `json:"unit_price"`
	Total     float64  `json:"total"`
	Modifiers []string `json:"modifiers,omitempty"`
}

// Receipt wraps the snapshot with identity. PrintedAt transitions from unset
// to set exactly once, on the first physical print.
type Receipt struct {
	ID         string      `db:"id" json:"id"`
	MerchantID string      `db:"merchant_id" json:"merchant_id"`
	Data       ReceiptData `db:"-" json:"data"`
	PrintedAt  *time.Time  `db:"printed_at" json:"printed_at"`
	CreatedAt  time.Time   `db:"created_at" json:"created_at"`
}
