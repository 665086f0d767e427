package stock

import (
	"context"
	"time"

	"github.com/restodine/admin-service/internal/model"
	"github.com/restodine/admin-service/internal/stock/dto"
)

type UseCase interface {
	CreateIngredient(ctx context.Context, input *dto.CreateIngredientInput) (*model.Ingredient, error)
	GetIngredient(ctx context.Context, id string) (*model.Ingredient, error)
	ListIngredients(ctx context.Context, filters *dto.IngredientFilters) ([]model.Ingredient, int, error)
	ListLowStock(ctx context.Context, merchantID string, page, pageSize int) ([]model.Ingredient, int, error)
	AdjustStock(ctx context.Context, input *dto.AdjustStockInput) (*model.Ingredient, error)
	ListAdjustments(ctx context.Context, filters *dto.AdjustmentFilters) ([]model.StockAdjustment, int, error)
}

// Locker serializes stock adjustments per ingredient across instances.
// Implemented by pkg/cache.RedisClient.
type Locker interface {
	AcquireLock(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key, value string) (bool, error)
}
