package dto

import "time"

type IngredientFilters struct {
	MerchantID  string
	SearchQuery string
	LowStock    bool
	Page        int
	PageSize    int
}

type AdjustmentFilters struct {
	MerchantID   string
	IngredientID string
	Type         string
	Since        *time.Time
	Page         int
	PageSize     int
}
