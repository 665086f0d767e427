package dto

type MenuItemFilters struct {
	MerchantID  string
	CategoryID  string
	IsAvailable *bool
	SearchQuery string
	SortBy      string
	SortOrder   string
	Page        int
	PageSize    int
}
