package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/restodine/admin-service/internal/model"
	"github.com/restodine/admin-service/internal/receipt/dto"
	"github.com/restodine/admin-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	receipts map[string]*model.Receipt
	markErr  error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{receipts: make(map[string]*model.Receipt)}
}

func (r *fakeRepo) Create(ctx context.Context, rec *model.Receipt) error {
	cp := *rec
	r.receipts[rec.ID] = &cp
	return nil
}

func (r *fakeRepo) FindByID(ctx context.Context, id string) (*model.Receipt, error) {
	rec, ok := r.receipts[id]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (r *fakeRepo) FindAll(ctx context.Context, filters *dto.ReceiptFilters) ([]model.Receipt, int, error) {
	var out []model.Receipt
	for _, rec := range r.receipts {
		out = append(out, *rec)
	}
	return out, len(out), nil
}

func (r *fakeRepo) MarkPrinted(ctx context.Context, id string) (bool, error) {
	if r.markErr != nil {
		return false, r.markErr
	}
	rec, ok := r.receipts[id]
	if !ok || rec.PrintedAt != nil {
		return false, nil
	}
	now := time.Now()
	rec.PrintedAt = &now
	return true, nil
}

func sampleData() *model.ReceiptData {
	return &model.ReceiptData{
		OrderNumber:   "88",
		Business:      model.BusinessInfo{Name: "Blue Fern Bistro", Address: "12 Market Lane", Phone: "555-0117"},
		Items:         []model.ReceiptItem{{Name: "Soup", Quantity: 1, UnitPrice: 6.00, Total: 6.00}},
		Subtotal:      6.00,
		TaxRate:       0.08,
		TaxAmount:     0.48,
		Total:         6.48,
		PaymentMethod: "card",
		Timestamp:     "2026-03-14T12:00:00Z",
	}
}

func TestCreateReceipt_DefaultsTimestamp(t *testing.T) {
	repo := newFakeRepo()
	uc := NewReceiptUseCase(repo, logger.NewNop())
	data := sampleData()
	data.Timestamp = ""

	rec, err := uc.CreateReceipt(context.Background(), "m-1", data)

	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "m-1", rec.MerchantID)
	_, parseErr := time.Parse(time.RFC3339, rec.Data.Timestamp)
	assert.NoError(t, parseErr, "missing timestamp is defaulted to RFC3339 now")
	assert.Nil(t, rec.PrintedAt)
}

func TestPrintReceipt_FirstPrintSetsMarker(t *testing.T) {
	repo := newFakeRepo()
	uc := NewReceiptUseCase(repo, logger.NewNop())
	rec, err := uc.CreateReceipt(context.Background(), "m-1", sampleData())
	require.NoError(t, err)

	content, printed, err := uc.PrintReceipt(context.Background(), rec.ID, "m-1")

	require.NoError(t, err)
	assert.Contains(t, content, "Blue Fern Bistro")
	assert.Contains(t, content, "Order #88")
	require.NotNil(t, printed.PrintedAt)
	require.NotNil(t, repo.receipts[rec.ID].PrintedAt)
}

func TestPrintReceipt_ReprintKeepsOriginalMarker(t *testing.T) {
	repo := newFakeRepo()
	uc := NewReceiptUseCase(repo, logger.NewNop())
	rec, err := uc.CreateReceipt(context.Background(), "m-1", sampleData())
	require.NoError(t, err)

	_, _, err = uc.PrintReceipt(context.Background(), rec.ID, "m-1")
	require.NoError(t, err)
	first := *repo.receipts[rec.ID].PrintedAt

	content, _, err := uc.PrintReceipt(context.Background(), rec.ID, "m-1")

	require.NoError(t, err)
	assert.NotEmpty(t, content, "reprint still yields the document")
	assert.Equal(t, first, *repo.receipts[rec.ID].PrintedAt, "printed_at moves at most once")
}

func TestPrintReceipt_NotFound(t *testing.T) {
	uc := NewReceiptUseCase(newFakeRepo(), logger.NewNop())

	_, _, err := uc.PrintReceipt(context.Background(), "missing", "m-1")

	assert.ErrorIs(t, err, ErrReceiptNotFound)
}

func TestPrintReceipt_ForeignMerchantCannotPrint(t *testing.T) {
	repo := newFakeRepo()
	uc := NewReceiptUseCase(repo, logger.NewNop())
	rec, err := uc.CreateReceipt(context.Background(), "m-1", sampleData())
	require.NoError(t, err)

	_, _, err = uc.PrintReceipt(context.Background(), rec.ID, "m-2")

	assert.ErrorIs(t, err, ErrReceiptNotFound)
	assert.Nil(t, repo.receipts[rec.ID].PrintedAt, "foreign request must not move the marker")
}

func TestPrintReceipt_MarkFailureStillReturnsContent(t *testing.T) {
	repo := newFakeRepo()
	uc := NewReceiptUseCase(repo, logger.NewNop())
	rec, err := uc.CreateReceipt(context.Background(), "m-1", sampleData())
	require.NoError(t, err)
	repo.markErr = errors.New("connection lost")

	content, printed, err := uc.PrintReceipt(context.Background(), rec.ID, "m-1")

	require.NoError(t, err)
	assert.NotEmpty(t, content)
	assert.Nil(t, printed.PrintedAt)
}
