package dto

import "time"

type ReceiptFilters struct {
	MerchantID string
	From       *time.Time
	To         *time.Time
	Page       int
	PageSize   int
}
