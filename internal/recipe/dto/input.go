package dto

// RecipeForm is a full replacement of one menu item's ingredient list.
type RecipeForm struct {
	MenuItemID string       `json:"menuItemId"`
	Lines      []RecipeLine `json:"lines"`
}

type RecipeLine struct {
	IngredientID     string  `json:"ingredientId"`
	QuantityRequired float64 `json:"quantityRequired"`
	Unit             string  `json:"unit"`
}
