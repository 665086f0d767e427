package recipe

import (
	"context"

	"github.com/restodine/admin-service/internal/model"
	"github.com/restodine/admin-service/internal/recipe/dto"
)

// Store is the persistence collaborator for recipes. Save is an atomic
// whole-list replace from the caller's perspective; partial success is not
// representable.
type Store interface {
	GetMenuItemRecipe(ctx context.Context, itemID string) ([]model.MenuItemIngredient, error)
	SaveMenuItemRecipe(ctx context.Context, form *dto.RecipeForm) error
}
