package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormToItem_RoundTrip(t *testing.T) {
	form := MenuItemForm{
		Name:            "Pad Thai",
		Description:     "Stir-fried rice noodles",
		Price:           13.75,
		Category:        "6f1a1a2e-9f0c-4a5d-8e9a-0c1d2e3f4a5b",
		IsAvailable:     true,
		StockCount:      24,
		LowStockAlert:   5,
		Allergens:       []string{"peanuts", "soy", "egg"},
		ModifierIDs:     []string{"mod-1", "mod-2"},
		PrepTimeMinutes: 12,
		Calories:        620,
		IsVegetarian:    false,
		IsVegan:         false,
		IsGlutenFree:    true,
	}

	item := FormToItem(&form)
	back := ItemToForm(&item)

	assert.Equal(t, form, back, "field rename must be reversible without loss")
}

func TestFormToItem_FieldMapping(t *testing.T) {
	form := MenuItemForm{
		Name:          "Lemonade",
		Category:      "drinks",
		Price:         3.5,
		StockCount:    100,
		LowStockAlert: 10,
	}

	item := FormToItem(&form)

	assert.Equal(t, "Lemonade", item.Name)
	assert.Equal(t, 3.5, item.Price)
	assert.Equal(t, 100, item.StockCount)
	assert.Equal(t, 10, item.LowStockAlert)
	if assert.NotNil(t, item.CategoryID) {
		assert.Equal(t, "drinks", *item.CategoryID)
	}

	// No identity or timestamps come from the form.
	assert.Empty(t, item.ID)
	assert.True(t, item.CreatedAt.IsZero())
	assert.True(t, item.UpdatedAt.IsZero())
}

func TestFormToItem_EmptyOptionalsStayNil(t *testing.T) {
	item := FormToItem(&MenuItemForm{Name: "Water", Price: 1})

	assert.Nil(t, item.CategoryID)
	assert.Nil(t, item.Description)
}
