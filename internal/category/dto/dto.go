package dto

type CategoryFilters struct {
	MerchantID string
	IsActive   *bool
	Page       int
	PageSize   int
}
