package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/restodine/admin-service/internal/category"
	"github.com/restodine/admin-service/internal/category/dto"
	"github.com/restodine/admin-service/internal/model"
	"github.com/restodine/admin-service/pkg/logger"
)

// ErrCategoryNotFound is returned when the target category does not exist.
var ErrCategoryNotFound = errors.New("category not found")

// defaultColor is applied when the form leaves the display color empty.
const defaultColor = "#6b7280"

type categoryUseCase struct {
	repo   category.Repository
	logger logger.Logger
}

func NewCategoryUseCase(repo category.Repository, log logger.Logger) category.UseCase {
	return &categoryUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *categoryUseCase) CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error) {
	now := time.Now()

	color := input.Color
	if color == "" {
		color = defaultColor
	}

	cat := &model.Category{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		MerchantID:  input.MerchantID,
		Name:        input.Name,
		Description: &input.Description,
		Color:       color,
		IsActive:    true,
	}

	if err := uc.repo.Create(ctx, cat); err != nil {
		return nil, err
	}

	return cat, nil
}

func (uc *categoryUseCase) GetCategory(ctx context.Context, id string) (*model.Category, error) {
	return uc.repo.FindByID(ctx, id)
}

func (uc *categoryUseCase) ListCategories(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *categoryUseCase) UpdateCategory(ctx context.Context, input *dto.UpdateCategoryInput) (*model.Category, error) {
	cat, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if cat == nil || cat.MerchantID != input.MerchantID {
		return nil, ErrCategoryNotFound
	}

	cat.Name = input.Name
	cat.Description = &input.Description
	if input.Color != "" {
		cat.Color = input.Color
	}
	cat.IsActive = input.IsActive
	cat.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (uc *categoryUseCase) DeleteCategory(ctx context.Context, id, merchantID string) error {
	cat, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if cat == nil || cat.MerchantID != merchantID {
		return nil // Already gone, or not ours to delete
	}
	return uc.repo.Delete(ctx, id)
}
