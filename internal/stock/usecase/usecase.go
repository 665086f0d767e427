package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/restodine/admin-service/internal/model"
	"github.com/restodine/admin-service/internal/stock"
	"github.com/restodine/admin-service/internal/stock/dto"
	"github.com/restodine/admin-service/pkg/logger"
	"go.uber.org/zap"
)

var (
	// ErrInsufficientStock is returned when a deduction would push an
	// ingredient level below zero.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrIngredientNotFound is returned when the target ingredient does not
	// exist.
	ErrIngredientNotFound = errors.New("ingredient not found")
)

var validAdjustmentTypes = map[string]bool{
	model.AdjustmentRestock:    true,
	model.AdjustmentWaste:      true,
	model.AdjustmentCorrection: true,
	model.AdjustmentTransfer:   true,
	model.AdjustmentSale:       true,
}

type stockUseCase struct {
	repo   stock.Repository
	locker stock.Locker
	logger logger.Logger
}

// NewStockUseCase wires the stock usecase. locker may be nil, in which case
// adjustments rely on the database transaction alone.
func NewStockUseCase(repo stock.Repository, locker stock.Locker, log logger.Logger) stock.UseCase {
	return &stockUseCase{
		repo:   repo,
		locker: locker,
		logger: log,
	}
}

func (uc *stockUseCase) CreateIngredient(ctx context.Context, input *dto.CreateIngredientInput) (*model.Ingredient, error) {
	now := time.Now()

	ing := &model.Ingredient{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		MerchantID:      input.MerchantID,
		Name:            input.Name,
		Unit:            input.Unit,
		Quantity:        input.Quantity,
		ReorderPoint:    input.ReorderPoint,
		ReorderQuantity: input.ReorderQuantity,
		CostPerUnit:     input.CostPerUnit,
	}
	if input.Supplier != "" {
		supplier := input.Supplier
		ing.Supplier = &supplier
	}

	if err := uc.repo.CreateIngredient(ctx, ing); err != nil {
		return nil, err
	}
	return ing, nil
}

func (uc *stockUseCase) GetIngredient(ctx context.Context, id string) (*model.Ingredient, error) {
	return uc.repo.GetIngredient(ctx, id)
}

func (uc *stockUseCase) ListIngredients(ctx context.Context, filters *dto.IngredientFilters) ([]model.Ingredient, int, error) {
	return uc.repo.FindIngredients(ctx, filters)
}

func (uc *stockUseCase) ListLowStock(ctx context.Context, merchantID string, page, pageSize int) ([]model.Ingredient, int, error) {
	return uc.repo.FindIngredients(ctx, &dto.IngredientFilters{
		MerchantID: merchantID,
		LowStock:   true,
		Page:       page,
		PageSize:   pageSize,
	})
}

// AdjustStock applies one signed inventory change under a per-ingredient
// lock, appends the audit record in the same transaction, and returns the
// updated ingredient. A change that would take the level negative is
// rejected without any write.
func (uc *stockUseCase) AdjustStock(ctx context.Context, input *dto.AdjustStockInput) (*model.Ingredient, error) {
	if !validAdjustmentTypes[input.Type] {
		return nil, fmt.Errorf("unknown adjustment type %q", input.Type)
	}

	if uc.locker != nil {
		lockKey := fmt.Sprintf("lock:stock:%s:%s", input.MerchantID, input.IngredientID)
		lockValue := uuid.New().String()

		acquired := false
		for i := 0; i < 3; i++ {
			ok, err := uc.locker.AcquireLock(ctx, lockKey, lockValue, 5*time.Second)
			if err != nil {
				uc.logger.Error("failed to acquire stock lock", zap.Error(err))
			}
			if ok {
				acquired = true
				break
			}
			time.Sleep(100 * time.Millisecond)
		}
		if !acquired {
			return nil, errors.New("system busy, please try again later")
		}
		defer uc.locker.ReleaseLock(ctx, lockKey, lockValue)
	}

	ing, err := uc.repo.GetIngredient(ctx, input.IngredientID)
	if err != nil {
		return nil, err
	}
	if ing == nil || ing.MerchantID != input.MerchantID {
		return nil, ErrIngredientNotFound
	}

	now := time.Now()
	quantityBefore := ing.Quantity
	ing.Quantity += input.QuantityChange
	ing.UpdatedAt = now

	if ing.Quantity < 0 {
		return nil, ErrInsufficientStock
	}

	adj := &model.StockAdjustment{
		ID:             uuid.New().String(),
		MerchantID:     input.MerchantID,
		IngredientID:   input.IngredientID,
		Type:           input.Type,
		QuantityChange: input.QuantityChange,
		QuantityBefore: quantityBefore,
		QuantityAfter:  ing.Quantity,
		Notes:          input.Notes,
		CreatedAt:      now,
	}
	if input.UnitCost != nil {
		unitCost := *input.UnitCost
		totalCost := unitCost * input.QuantityChange
		adj.UnitCost = &unitCost
		adj.TotalCost = &totalCost
	}
	if input.StaffName != "" {
		staff := input.StaffName
		adj.StaffName = &staff
	}
	if input.Supplier != "" {
		supplier := input.Supplier
		adj.Supplier = &supplier
	}
	if input.Reference != "" {
		ref := input.Reference
		adj.Reference = &ref
	}

	if err := uc.repo.AdjustWithLog(ctx, ing, adj); err != nil {
		return nil, err
	}

	return ing, nil
}

func (uc *stockUseCase) ListAdjustments(ctx context.Context, filters *dto.AdjustmentFilters) ([]model.StockAdjustment, int, error) {
	return uc.repo.ListAdjustments(ctx, filters)
}
