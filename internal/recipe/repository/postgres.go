package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/restodine/admin-service/internal/model"
	"github.com/restodine/admin-service/internal/recipe/dto"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

// GetMenuItemRecipe returns the ordered ingredient list for one menu item.
// The ingredient name is joined in for display.
func (r *PGRepository) GetMenuItemRecipe(ctx context.Context, itemID string) ([]model.MenuItemIngredient, error) {
	lines := []model.MenuItemIngredient{}
	query := `
        SELECT mi.id, mi.menu_item_id, mi.ingredient_id, i.name AS ingredient_name,
               mi.quantity_required, mi.unit, mi.sort_order
        FROM menu_item_ingredients mi
        JOIN ingredients i ON i.id = mi.ingredient_id
        WHERE mi.menu_item_id = $1
        ORDER BY mi.sort_order ASC
    `
	if err := r.DB.SelectContext(ctx, &lines, query, itemID); err != nil {
		return nil, err
	}
	return lines, nil
}

// SaveMenuItemRecipe replaces the whole recipe in one transaction: delete
// then insert. Lines with non-positive quantity are rejected before any
// write happens.
func (r *PGRepository) SaveMenuItemRecipe(ctx context.Context, form *dto.RecipeForm) error {
	if form.MenuItemID == "" {
		return fmt.Errorf("menu item id is required")
	}
	for _, line := range form.Lines {
		if line.QuantityRequired <= 0 {
			return fmt.Errorf("quantity required must be greater than 0 for ingredient %s", line.IngredientID)
		}
	}

	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM menu_item_ingredients WHERE menu_item_id = $1`, form.MenuItemID,
	); err != nil {
		return fmt.Errorf("failed to clear recipe: %w", err)
	}

	insertQuery := `
        INSERT INTO menu_item_ingredients (
            id, menu_item_id, ingredient_id, quantity_required, unit, sort_order, created_at
        )
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `
	now := time.Now()
	for i, line := range form.Lines {
		if _, err := tx.ExecContext(ctx, insertQuery,
			uuid.New().String(), form.MenuItemID, line.IngredientID,
			line.QuantityRequired, line.Unit, i, now,
		); err != nil {
			return fmt.Errorf("failed to insert recipe line: %w", err)
		}
	}

	return tx.Commit()
}
