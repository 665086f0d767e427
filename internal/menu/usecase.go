package menu

import (
	"context"

	"github.com/restodine/admin-service/internal/menu/dto"
	"github.com/restodine/admin-service/internal/model"
)

type UseCase interface {
	CreateItem(ctx context.Context, merchantID string, form *dto.MenuItemForm) (*model.MenuItem, error)
	GetItem(ctx context.Context, id string) (*model.MenuItem, error)
	ListItems(ctx context.Context, filters *dto.MenuItemFilters) ([]model.MenuItem, int, error)
	UpdateItem(ctx context.Context, id, merchantID string, form *dto.MenuItemForm) (*model.MenuItem, error)
	DeleteItem(ctx context.Context, id, merchantID string) error
}
