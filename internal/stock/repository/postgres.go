package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/restodine/admin-service/internal/model"
	"github.com/restodine/admin-service/internal/stock/dto"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) CreateIngredient(ctx context.Context, ing *model.Ingredient) error {
	query := `
        INSERT INTO ingredients (
            id, merchant_id, name, unit, quantity, reorder_point,
            reorder_quantity, cost_per_unit, supplier, expires_at,
            created_at, updated_at
        )
        VALUES (
            :id, :merchant_id, :name, :unit, :quantity, :reorder_point,
            :reorder_quantity, :cost_per_unit, :supplier, :expires_at,
            :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, ing)
	return err
}

func (r *PGRepository) GetIngredient(ctx context.Context, id string) (*model.Ingredient, error) {
	var ing model.Ingredient
	query := `SELECT * FROM ingredients WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &ing, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &ing, nil
}

func (r *PGRepository) FindIngredients(ctx context.Context, f *dto.IngredientFilters) ([]model.Ingredient, int, error) {
	var items []model.Ingredient
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.MerchantID != "" {
		conditions = append(conditions, "merchant_id = :merchant_id")
		args["merchant_id"] = f.MerchantID
	}
	if f.SearchQuery != "" {
		conditions = append(conditions, "name ILIKE :search")
		args["search"] = "%" + f.SearchQuery + "%"
	}
	if f.LowStock {
		conditions = append(conditions, "quantity <= reorder_point AND reorder_point > 0")
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM ingredients" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := "SELECT * FROM ingredients" + whereClause + " ORDER BY name ASC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &items, args)
	return items, count, err
}

func (r *PGRepository) ListAdjustments(ctx context.Context, f *dto.AdjustmentFilters) ([]model.StockAdjustment, int, error) {
	var items []model.StockAdjustment
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.MerchantID != "" {
		conditions = append(conditions, "merchant_id = :merchant_id")
		args["merchant_id"] = f.MerchantID
	}
	if f.IngredientID != "" {
		conditions = append(conditions, "ingredient_id = :ingredient_id")
		args["ingredient_id"] = f.IngredientID
	}
	if f.Type != "" {
		conditions = append(conditions, "adjustment_type = :adjustment_type")
		args["adjustment_type"] = f.Type
	}
	if f.Since != nil {
		conditions = append(conditions, "created_at >= :since")
		args["since"] = *f.Since
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM stock_adjustments" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := "SELECT * FROM stock_adjustments" + whereClause + " ORDER BY created_at DESC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &items, args)
	return items, count, err
}

func (r *PGRepository) AdjustWithLog(ctx context.Context, ing *model.Ingredient, adj *model.StockAdjustment) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	updateQuery := `
        UPDATE ingredients
        SET quantity = :quantity,
            updated_at = :updated_at
        WHERE id = :id
    `
	if _, err := tx.NamedExecContext(ctx, updateQuery, ing); err != nil {
		return fmt.Errorf("failed to update ingredient level: %w", err)
	}

	insertQuery := `
        INSERT INTO stock_adjustments (
            id, merchant_id, ingredient_id, adjustment_type, quantity_change,
            quantity_before, quantity_after, unit_cost, total_cost,
            staff_name, supplier, reference, notes, created_at
        )
        VALUES (
            :id, :merchant_id, :ingredient_id, :adjustment_type, :quantity_change,
            :quantity_before, :quantity_after, :unit_cost, :total_cost,
            :staff_name, :supplier, :reference, :notes, :created_at
        )
    `
	if _, err := tx.NamedExecContext(ctx, insertQuery, adj); err != nil {
		return fmt.Errorf("failed to log adjustment: %w", err)
	}

	return tx.Commit()
}
