package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/restodine/admin-service/internal/model"
	"github.com/restodine/admin-service/internal/receipt"
	"github.com/restodine/admin-service/internal/receipt/dto"
	"github.com/restodine/admin-service/pkg/logger"
	"go.uber.org/zap"
)

// ErrReceiptNotFound is returned when the target receipt does not exist.
var ErrReceiptNotFound = errors.New("receipt not found")

type receiptUseCase struct {
	repo   receipt.Repository
	logger logger.Logger
}

func NewReceiptUseCase(repo receipt.Repository, log logger.Logger) receipt.UseCase {
	return &receiptUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *receiptUseCase) CreateReceipt(ctx context.Context, merchantID string, data *model.ReceiptData) (*model.Receipt, error) {
	now := time.Now()

	if data.Timestamp == "" {
		data.Timestamp = now.Format(time.RFC3339)
	}

	rec := &model.Receipt{
		ID:         uuid.New().String(),
		MerchantID: merchantID,
		Data:       *data,
		CreatedAt:  now,
	}

	if err := uc.repo.Create(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (uc *receiptUseCase) GetReceipt(ctx context.Context, id string) (*model.Receipt, error) {
	return uc.repo.FindByID(ctx, id)
}

func (uc *receiptUseCase) ListReceipts(ctx context.Context, filters *dto.ReceiptFilters) ([]model.Receipt, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *receiptUseCase) PrintReceipt(ctx context.Context, id, merchantID string) (string, *model.Receipt, error) {
	rec, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return "", nil, err
	}
	if rec == nil || rec.MerchantID != merchantID {
		return "", nil, ErrReceiptNotFound
	}

	content := receipt.GeneratePrintContent(&rec.Data)

	first, err := uc.repo.MarkPrinted(ctx, id)
	if err != nil {
		// The document is still usable; the marker just did not move.
		uc.logger.Error("failed to mark receipt printed", zap.String("id", id), zap.Error(err))
		return content, rec, nil
	}
	if first {
		now := time.Now()
		rec.PrintedAt = &now
	}

	return content, rec, nil
}
