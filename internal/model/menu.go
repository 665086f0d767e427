package model

// MenuItem is a sellable product with price, stock, and an optional recipe.
// Invariants: Price > 0, StockCount >= 0. Enforced by the form validator and
// by CHECK constraints on the table.
type MenuItem struct {
	BaseModel
	MerchantID      string     `db:"merchant_id" json:"merchant_id"`
	CategoryID      *string    `db:"category_id" json:"category_id"` // Nullable
	Name            string     `db:"name" json:"name"`
	Description     *string    `db:"description" json:"description"`
	Price           float64    `db:"price" json:"price"`
	IsAvailable     bool       `db:"is_available" json:"is_available"`
	StockCount      int        `db:"stock_count" json:"stock_count"`
	LowStockAlert   int        `db:"low_stock_alert" json:"low_stock_alert"`
	Allergens       StringList `db:"allergens" json:"allergens"`
	ModifierIDs     StringList `db:"modifier_ids" json:"modifier_ids"`
	PrepTimeMinutes int        `db:"prep_time_minutes" json:"prep_time_minutes"`
	Calories        int        `db:"calories" json:"calories"`
	IsVegetarian    bool       `db:"is_vegetarian" json:"is_vegetarian"`
	IsVegan         bool       `db:"is_vegan" json:"is_vegan"`
	IsGlutenFree    bool       `db:"is_gluten_free" json:"is_gluten_free"`
	Category        *Category  `db:"-" json:"category,omitempty"` // Joined data
}

type Category struct {
	BaseModel
	MerchantID  string  `db:"merchant_id" json:"merchant_id"`
	Name        string  `db:"name" json:"name"`
	Description *string `db:"description" json:"description"`
	Color       string  `db:"color" json:"color"`
	IsActive    bool    `db:"is_active" json:"is_active"`
}

// MenuItemIngredient is one recipe line linking a menu item to an ingredient.
// The full set for one menu item is "the recipe" and is replaced wholesale on
// save, never merged. Invariant: QuantityRequired > 0.
type MenuItemIngredient struct {
	ID               string  `db:"id" json:"id"`
	MenuItemID       string  `db:"menu_item_id" json:"menu_item_id"`
	IngredientID     string  `db:"ingredient_id" json:"ingredient_id"`
	IngredientName   string  `db:"ingredient_name" json:"ingredient_name"`
	QuantityRequired float64 `db:"quantity_required" json:"quantity_required"`
	Unit             string  `db:"unit" json:"unit"`
	SortOrder        int     `db:"sort_order" json:"sort_order"`
}
