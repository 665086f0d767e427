package backup

import (
	"context"
	"fmt"
	"time"

	"github.com/restodine/admin-service/internal/category"
	catDTO "github.com/restodine/admin-service/internal/category/dto"
	"github.com/restodine/admin-service/internal/menu"
	menuDTO "github.com/restodine/admin-service/internal/menu/dto"
	"github.com/restodine/admin-service/internal/model"
	"github.com/restodine/admin-service/internal/recipe"
	recipeDTO "github.com/restodine/admin-service/internal/recipe/dto"
	"github.com/restodine/admin-service/pkg/logger"
	"go.uber.org/zap"
)

// Bundle is the portable snapshot of one merchant's menu configuration.
// Stock levels and receipts are deliberately excluded: adjustments are an
// append-only audit trail and receipts are immutable history, neither should
// be replayed into another database.
type Bundle struct {
	ExportedAt time.Time                       `json:"exported_at"`
	MerchantID string                          `json:"merchant_id"`
	Categories []model.Category                `json:"categories"`
	MenuItems  []model.MenuItem                `json:"menu_items"`
	Recipes    map[string][]recipeDTO.RecipeLine `json:"recipes"`
}

type Service struct {
	menuRepo menu.Repository
	catRepo  category.Repository
	recipes  recipe.Store
	logger   logger.Logger
}

func NewService(menuRepo menu.Repository, catRepo category.Repository, recipes recipe.Store, log logger.Logger) *Service {
	return &Service{
		menuRepo: menuRepo,
		catRepo:  catRepo,
		recipes:  recipes,
		logger:   log,
	}
}

// Export gathers the merchant's categories, menu items, and recipes into one
// bundle.
func (s *Service) Export(ctx context.Context, merchantID string) (*Bundle, error) {
	cats, _, err := s.catRepo.FindAll(ctx, &catDTO.CategoryFilters{MerchantID: merchantID})
	if err != nil {
		return nil, fmt.Errorf("failed to export categories: %w", err)
	}

	items, _, err := s.menuRepo.FindAll(ctx, &menuDTO.MenuItemFilters{MerchantID: merchantID})
	if err != nil {
		return nil, fmt.Errorf("failed to export menu items: %w", err)
	}

	recipes := make(map[string][]recipeDTO.RecipeLine)
	for _, item := range items {
		lines, err := s.recipes.GetMenuItemRecipe(ctx, item.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to export recipe for %s: %w", item.ID, err)
		}
		if len(lines) == 0 {
			continue
		}
		forms := make([]recipeDTO.RecipeLine, len(lines))
		for i, line := range lines {
			forms[i] = recipeDTO.RecipeLine{
				IngredientID:     line.IngredientID,
				QuantityRequired: line.QuantityRequired,
				Unit:             line.Unit,
			}
		}
		recipes[item.ID] = forms
	}

	return &Bundle{
		ExportedAt: time.Now(),
		MerchantID: merchantID,
		Categories: cats,
		MenuItems:  items,
		Recipes:    recipes,
	}, nil
}

// Restore writes a bundle back, entity by entity. IDs are preserved so
// recipes keep pointing at their items; restoring into a tenant that already
// holds those IDs fails on the conflicting row and leaves earlier writes in
// place, which the caller sees as a partial-restore error.
func (s *Service) Restore(ctx context.Context, merchantID string, bundle *Bundle) error {
	for i := range bundle.Categories {
		cat := bundle.Categories[i]
		cat.MerchantID = merchantID
		if err := s.catRepo.Create(ctx, &cat); err != nil {
			return fmt.Errorf("failed to restore category %s: %w", cat.ID, err)
		}
	}

	for i := range bundle.MenuItems {
		item := bundle.MenuItems[i]
		item.MerchantID = merchantID
		if err := s.menuRepo.Create(ctx, &item); err != nil {
			return fmt.Errorf("failed to restore menu item %s: %w", item.ID, err)
		}
	}

	for itemID, lines := range bundle.Recipes {
		form := &recipeDTO.RecipeForm{MenuItemID: itemID, Lines: lines}
		if err := s.recipes.SaveMenuItemRecipe(ctx, form); err != nil {
			return fmt.Errorf("failed to restore recipe for %s: %w", itemID, err)
		}
	}

	s.logger.Info("restored backup bundle",
		zap.String("merchant_id", merchantID),
		zap.Int("categories", len(bundle.Categories)),
		zap.Int("menu_items", len(bundle.MenuItems)),
		zap.Int("recipes", len(bundle.Recipes)),
	)
	return nil
}
