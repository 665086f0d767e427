package dto

// AdjustStockInput describes one inventory change. QuantityChange is signed:
// positive restocks, negative consumes.
type AdjustStockInput struct {
	MerchantID     string
	IngredientID   string
	Type           string
	QuantityChange float64
	UnitCost       *float64
	StaffName      string
	Supplier       string
	Reference      string
	Notes          string
}

type CreateIngredientInput struct {
	MerchantID      string
	Name            string
	Unit            string
	Quantity        float64
	ReorderPoint    float64
	ReorderQuantity float64
	CostPerUnit     *float64
	Supplier        string
}
