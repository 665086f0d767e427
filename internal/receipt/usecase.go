package receipt

import (
	"context"

	"github.com/restodine/admin-service/internal/model"
	"github.com/restodine/admin-service/internal/receipt/dto"
)

type UseCase interface {
	CreateReceipt(ctx context.Context, merchantID string, data *model.ReceiptData) (*model.Receipt, error)
	GetReceipt(ctx context.Context, id string) (*model.Receipt, error)
	ListReceipts(ctx context.Context, filters *dto.ReceiptFilters) ([]model.Receipt, int, error)

	// PrintReceipt returns the printable document and performs the one-shot
	// printed_at transition. The content is returned on every call; only the
	// first call flips the marker.
	PrintReceipt(ctx context.Context, id, merchantID string) (string, *model.Receipt, error)
}
