package model

import "time"

// Ingredient is a stocked raw material consumed by menu item recipes.
type Ingredient struct {
	BaseModel
	MerchantID      string     `db:"merchant_id" json:"merchant_id"`
	Name            string     `db:"name" json:"name"`
	Unit            string     `db:"unit" json:"unit"`
	Quantity        float64    `db:"quantity" json:"quantity"`
	ReorderPoint    float64    `db:"reorder_point" json:"reorder_point"`
	ReorderQuantity float64    `db:"reorder_quantity" json:"reorder_quantity"`
	CostPerUnit     *float64   `db:"cost_per_unit" json:"cost_per_unit"`
	Supplier        *string    `db:"supplier" json:"supplier"`
	ExpiresAt       *time.Time `db:"expires_at" json:"expires_at"`
}

// Adjustment types. "sale" adjustments are produced by the order-events
// listener, the rest by staff.
const (
	AdjustmentRestock    = "restock"
	AdjustmentWaste      = "waste"
	AdjustmentCorrection = "correction"
	AdjustmentTransfer   = "transfer"
	AdjustmentSale       = "sale"
)

// StockAdjustment is an append-only record of one inventory change. Rows are
// never updated or deleted after insert.
type StockAdjustment struct {
	ID             string    `db:"id" json:"id"`
	MerchantID     string    `db:"merchant_id" json:"merchant_id"`
	IngredientID   string    `db:"ingredient_id" json:"ingredient_id"`
	Type           string    `db:"adjustment_type" json:"type"`
	QuantityChange float64   `db:"quantity_change" json:"quantity_change"`
	QuantityBefore float64   `db:"quantity_before" json:"quantity_before"`
	QuantityAfter  float64   `db:"quantity_after" json:"quantity_after"`
	UnitCost       *float64  `db:"unit_cost" json:"unit_cost"`
	TotalCost      *float64  `db:"total_cost" json:"total_cost"`
	StaffName      *string   `db:"staff_name" json:"staff_name"`
	Supplier       *string   `db:"supplier" json:"supplier"`
	Reference      *string   `db:"reference" json:"reference"`
	Notes          string    `db:"notes" json:"notes"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

const (
	AlertLowStock   = "low_stock"
	AlertOutOfStock = "out_of_stock"
	AlertExpiring   = "expiring"

	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// StockAlert is a derived, ephemeral signal. The monitor owns its lifecycle;
// everything else only reads the list or routes actions back.
type StockAlert struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	Severity     string    `json:"severity"`
	IngredientID string    `json:"ingredient_id,omitempty"`
	MenuItemID   string    `json:"menu_item_id,omitempty"`
	Message      string    `json:"message"`
	Acknowledged bool      `json:"acknowledged"`
	CreatedAt    time.Time `json:"created_at"`
}
