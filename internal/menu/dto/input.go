package dto

import "github.com/restodine/admin-service/internal/model"

// MenuItemForm is the UI-facing mirror of a menu item: camelCase field names,
// no identity or timestamps. It exists only transiently during editing.
type MenuItemForm struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Price           float64  `json:"price"`
	Category        string   `json:"category"`
	IsAvailable     bool     `json:"isAvailable"`
	StockCount      int      `json:"stockCount"`
	LowStockAlert   int      `json:"lowStockAlert"`
	Allergens       []string `json:"allergens"`
	ModifierIDs     []string `json:"modifierIds"`
	PrepTimeMinutes int      `json:"prepTimeMinutes"`
	Calories        int      `json:"calories"`
	IsVegetarian    bool     `json:"isVegetarian"`
	IsVegan         bool     `json:"isVegan"`
	IsGlutenFree    bool     `json:"isGlutenFree"`
}

// FormToItem maps a form value onto the persistence shape. Pure field rename:
// no validation, no defaulting, every form field lands on exactly one record
// field. Identity and timestamps are left zero for the usecase to assign.
func FormToItem(form *MenuItemForm) model.MenuItem {
	var categoryID *string
	if form.Category != "" {
		cat := form.Category
		categoryID = &cat
	}
	var description *string
	if form.Description != "" {
		desc := form.Description
		description = &desc
	}

	return model.MenuItem{
		CategoryID:      categoryID,
		Name:            form.Name,
		Description:     description,
		Price:           form.Price,
		IsAvailable:     form.IsAvailable,
		StockCount:      form.StockCount,
		LowStockAlert:   form.LowStockAlert,
		Allergens:       model.StringList(form.Allergens),
		ModifierIDs:     model.StringList(form.ModifierIDs),
		PrepTimeMinutes: form.PrepTimeMinutes,
		Calories:        form.Calories,
		IsVegetarian:    form.IsVegetarian,
		IsVegan:         form.IsVegan,
		IsGlutenFree:    form.IsGlutenFree,
	}
}

// ItemToForm is the inverse rename, used to seed the edit form from a stored
// item. FormToItem and ItemToForm are inverses over the form's field set.
func ItemToForm(item *model.MenuItem) MenuItemForm {
	form := MenuItemForm{
		Name:            item.Name,
		Price:           item.Price,
		IsAvailable:     item.IsAvailable,
		StockCount:      item.StockCount,
		LowStockAlert:   item.LowStockAlert,
		Allergens:       []string(item.Allergens),
		ModifierIDs:     []string(item.ModifierIDs),
		PrepTimeMinutes: item.PrepTimeMinutes,
		Calories:        item.Calories,
		IsVegetarian:    item.IsVegetarian,
		IsVegan:         item.IsVegan,
		IsGlutenFree:    item.IsGlutenFree,
	}
	if item.CategoryID != nil {
		form.Category = *item.CategoryID
	}
	if item.Description != nil {
		form.Description = *item.Description
	}
	return form
}
