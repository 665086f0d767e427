package dto

type CreateCategoryInput struct {
	MerchantID  string
	Name        string
	Description string
	Color       string
}

type UpdateCategoryInput struct {
	ID          string
	MerchantID  string
	Name        string
	Description string
	Color       string
	IsActive    bool
}
