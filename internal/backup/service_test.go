package backup

import (
	"context"
	"errors"
	"testing"

	catDTO "github.com/restodine/admin-service/internal/category/dto"
	menuDTO "github.com/restodine/admin-service/internal/menu/dto"
	"github.com/restodine/admin-service/internal/model"
	recipeDTO "github.com/restodine/admin-service/internal/recipe/dto"
	"github.com/restodine/admin-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMenuRepo struct {
	items     []model.MenuItem
	createErr error
	created   []model.MenuItem
}

func (r *fakeMenuRepo) Create(ctx context.Context, item *model.MenuItem) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.created = append(r.created, *item)
	return nil
}

func (r *fakeMenuRepo) FindByID(ctx context.Context, id string) (*model.MenuItem, error) {
	return nil, nil
}

func (r *fakeMenuRepo) FindAll(ctx context.Context, filters *menuDTO.MenuItemFilters) ([]model.MenuItem, int, error) {
	return r.items, len(r.items), nil
}

func (r *fakeMenuRepo) Update(ctx context.Context, item *model.MenuItem) error { return nil }
func (r *fakeMenuRepo) Delete(ctx context.Context, id string) error            { return nil }

type fakeCategoryRepo struct {
	categories []model.Category
	created    []model.Category
}

func (r *fakeCategoryRepo) Create(ctx context.Context, cat *model.Category) error {
	r.created = append(r.created, *cat)
	return nil
}

func (r *fakeCategoryRepo) FindByID(ctx context.Context, id string) (*model.Category, error) {
	return nil, nil
}

func (r *fakeCategoryRepo) FindAll(ctx context.Context, filters *catDTO.CategoryFilters) ([]model.Category, int, error) {
	return r.categories, len(r.categories), nil
}

func (r *fakeCategoryRepo) Update(ctx context.Context, cat *model.Category) error { return nil }
func (r *fakeCategoryRepo) Delete(ctx context.Context, id string) error           { return nil }

type fakeRecipeStore struct {
	recipes map[string][]model.MenuItemIngredient
	saved   []recipeDTO.RecipeForm
}

func (s *fakeRecipeStore) GetMenuItemRecipe(ctx context.Context, itemID string) ([]model.MenuItemIngredient, error) {
	return s.recipes[itemID], nil
}

func (s *fakeRecipeStore) SaveMenuItemRecipe(ctx context.Context, form *recipeDTO.RecipeForm) error {
	s.saved = append(s.saved, *form)
	return nil
}

func menuItem(id, name string) model.MenuItem {
	item := model.MenuItem{MerchantID: "m-1", Name: name, Price: 5}
	item.ID = id
	return item
}

func TestExport(t *testing.T) {
	cat := model.Category{MerchantID: "m-1", Name: "Mains"}
	cat.ID = "cat-1"

	menuRepo := &fakeMenuRepo{items: []model.MenuItem{menuItem("item-1", "Burger"), menuItem("item-2", "Salad")}}
	catRepo := &fakeCategoryRepo{categories: []model.Category{cat}}
	recipes := &fakeRecipeStore{recipes: map[string][]model.MenuItemIngredient{
		"item-1": {{IngredientID: "ing-1", QuantityRequired: 2, Unit: "pc"}},
	}}

	svc := NewService(menuRepo, catRepo, recipes, logger.NewNop())
	bundle, err := svc.Export(context.Background(), "m-1")

	require.NoError(t, err)
	assert.Equal(t, "m-1", bundle.MerchantID)
	assert.False(t, bundle.ExportedAt.IsZero())
	assert.Len(t, bundle.Categories, 1)
	assert.Len(t, bundle.MenuItems, 2)

	// Only items with recipe lines appear in the recipe map.
	require.Len(t, bundle.Recipes, 1)
	require.Len(t, bundle.Recipes["item-1"], 1)
	assert.Equal(t, "ing-1", bundle.Recipes["item-1"][0].IngredientID)
}

func TestRestore_PreservesIDsAndRetargetsMerchant(t *testing.T) {
	cat := model.Category{MerchantID: "m-old", Name: "Mains"}
	cat.ID = "cat-1"
	item := menuItem("item-1", "Burger")
	item.MerchantID = "m-old"

	bundle := &Bundle{
		MerchantID: "m-old",
		Categories: []model.Category{cat},
		MenuItems:  []model.MenuItem{item},
		Recipes: map[string][]recipeDTO.RecipeLine{
			"item-1": {{IngredientID: "ing-1", QuantityRequired: 2, Unit: "pc"}},
		},
	}

	menuRepo := &fakeMenuRepo{}
	catRepo := &fakeCategoryRepo{}
	recipes := &fakeRecipeStore{}
	svc := NewService(menuRepo, catRepo, recipes, logger.NewNop())

	require.NoError(t, svc.Restore(context.Background(), "m-new", bundle))

	require.Len(t, catRepo.created, 1)
	assert.Equal(t, "cat-1", catRepo.created[0].ID, "IDs survive restore")
	assert.Equal(t, "m-new", catRepo.created[0].MerchantID, "ownership follows the restoring tenant")

	require.Len(t, menuRepo.created, 1)
	assert.Equal(t, "item-1", menuRepo.created[0].ID)
	assert.Equal(t, "m-new", menuRepo.created[0].MerchantID)

	require.Len(t, recipes.saved, 1)
	assert.Equal(t, "item-1", recipes.saved[0].MenuItemID)
}

func TestRestore_StopsOnConflict(t *testing.T) {
	bundle := &Bundle{
		Categories: []model.Category{},
		MenuItems:  []model.MenuItem{menuItem("item-1", "Burger")},
	}

	menuRepo := &fakeMenuRepo{createErr: errors.New("duplicate key value")}
	svc := NewService(menuRepo, &fakeCategoryRepo{}, &fakeRecipeStore{}, logger.NewNop())

	err := svc.Restore(context.Background(), "m-1", bundle)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "item-1")
}
