package menu

import (
	"context"

	"github.com/restodine/admin-service/internal/menu/dto"
	"github.com/restodine/admin-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, item *model.MenuItem) error
	FindByID(ctx context.Context, id string) (*model.MenuItem, error)
	FindAll(ctx context.Context, filters *dto.MenuItemFilters) ([]model.MenuItem, int, error)
	Update(ctx context.Context, item *model.MenuItem) error
	Delete(ctx context.Context, id string) error
}
