package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/restodine/admin-service/internal/menu/dto"
	"github.com/restodine/admin-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, item *model.MenuItem) error {
	query := `
        INSERT INTO menu_items (
            id, merchant_id, category_id, name, description, price,
            is_available, stock_count, low_stock_alert, allergens, modifier_ids,
            prep_time_minutes, calories, is_vegetarian, is_vegan, is_gluten_free,
            created_at, updated_at
        )
        VALUES (
            :id, :merchant_id, :category_id, :name, :description, :price,
            :is_available, :stock_count, :low_stock_alert, :allergens, :modifier_ids,
            :prep_time_minutes, :calories, :is_vegetarian, :is_vegan, :is_gluten_free,
            :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, item)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.MenuItem, error) {
	var item model.MenuItem
	query := `SELECT * FROM menu_items WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &item, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.MenuItemFilters) ([]model.MenuItem, int, error) {
	var items []model.MenuItem
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.MerchantID != "" {
		conditions = append(conditions, "merchant_id = :merchant_id")
		args["merchant_id"] = f.MerchantID
	}
	if f.CategoryID != "" {
		conditions = append(conditions, "category_id = :category_id")
		args["category_id"] = f.CategoryID
	}
	if f.IsAvailable != nil {
		conditions = append(conditions, "is_available = :is_available")
		args["is_available"] = *f.IsAvailable
	}
	if f.SearchQuery != "" {
		conditions = append(conditions, "(name ILIKE :search OR description ILIKE :search)")
		args["search"] = "%" + f.SearchQuery + "%"
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM menu_items" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	orderBy := "created_at DESC"
	if f.SortBy != "" {
		// Whitelist sortable fields
		switch f.SortBy {
		case "name":
			orderBy = "name"
		case "price":
			orderBy = "price"
		case "stock_count":
			orderBy = "stock_count"
		case "created_at":
			orderBy = "created_at"
		}
		if strings.ToLower(f.SortOrder) == "asc" {
			orderBy += " ASC"
		} else {
			orderBy += " DESC"
		}
	}

	query := fmt.Sprintf("SELECT * FROM menu_items%s ORDER BY %s", whereClause, orderBy)

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
	if err != nil {
		return nil, 0, err
	}

	return items, count, nil
}

func (r *PGRepository) Update(ctx context.Context, item *model.MenuItem) error {
	query := `
        UPDATE menu_items
        SET category_id = :category_id,
            name = :name,
            description = :description,
            price = :price,
            is_available = :is_available,
            stock_count = :stock_count,
            low_stock_alert = :low_stock_alert,
            allergens = :allergens,
            modifier_ids = :modifier_ids,
            prep_time_minutes = :prep_time_minutes,
            calories = :calories,
            is_vegetarian = :is_vegetarian,
            is_vegan = :is_vegan,
            is_gluten_free = :is_gluten_free,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, item)
	return err
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	return err
}
