package stock

import (
	"context"

	"github.com/restodine/admin-service/internal/model"
	"github.com/restodine/admin-service/internal/stock/dto"
)

type Repository interface {
	CreateIngredient(ctx context.Context, ing *model.Ingredient) error
	GetIngredient(ctx context.Context, id string) (*model.Ingredient, error)
	FindIngredients(ctx context.Context, filters *dto.IngredientFilters) ([]model.Ingredient, int, error)

	// Audit trail. Adjustments are append-only; there is no update or delete.
	ListAdjustments(ctx context.Context, filters *dto.AdjustmentFilters) ([]model.StockAdjustment, int, error)

	// AdjustWithLog writes the new ingredient level and the adjustment record
	// in one transaction.
	AdjustWithLog(ctx context.Context, ing *model.Ingredient, adj *model.StockAdjustment) error
}
