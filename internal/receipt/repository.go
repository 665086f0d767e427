package receipt

import (
	"context"

	"github.com/restodine/admin-service/internal/model"
	"github.com/restodine/admin-service/internal/receipt/dto"
)

type Repository interface {
	// Create stores the immutable checkout snapshot. Receipts are never
	// updated except for the one-shot printed_at transition.
	Create(ctx context.Context, rec *model.Receipt) error
	FindByID(ctx context.Context, id string) (*model.Receipt, error)
	FindAll(ctx context.Context, filters *dto.ReceiptFilters) ([]model.Receipt, int, error)

	// MarkPrinted sets printed_at if and only if it is still unset. Returns
	// true when this call performed the transition.
	MarkPrinted(ctx context.Context, id string) (bool, error)
}
