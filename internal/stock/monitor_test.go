package stock

import (
	"context"
	"testing"
	"time"

	"github.com/restodine/admin-service/internal/model"
	"github.com/restodine/admin-service/internal/notify"
	"github.com/restodine/admin-service/internal/stock/dto"
	"github.com/restodine/admin-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUseCase serves a fixed ingredient list and records stock adjustments.
type fakeUseCase struct {
	ingredients []model.Ingredient
	adjustments []dto.AdjustStockInput
}

func (f *fakeUseCase) CreateIngredient(ctx context.Context, input *dto.CreateIngredientInput) (*model.Ingredient, error) {
	return nil, nil
}

func (f *fakeUseCase) GetIngredient(ctx context.Context, id string) (*model.Ingredient, error) {
	for i := range f.ingredients {
		if f.ingredients[i].ID == id {
			return &f.ingredients[i], nil
		}
	}
	return nil, nil
}

func (f *fakeUseCase) ListIngredients(ctx context.Context, filters *dto.IngredientFilters) ([]model.Ingredient, int, error) {
	return f.ingredients, len(f.ingredients), nil
}

func (f *fakeUseCase) ListLowStock(ctx context.Context, merchantID string, page, pageSize int) ([]model.Ingredient, int, error) {
	return nil, 0, nil
}

func (f *fakeUseCase) AdjustStock(ctx context.Context, input *dto.AdjustStockInput) (*model.Ingredient, error) {
	f.adjustments = append(f.adjustments, *input)
	return nil, nil
}

func (f *fakeUseCase) ListAdjustments(ctx context.Context, filters *dto.AdjustmentFilters) ([]model.StockAdjustment, int, error) {
	return nil, 0, nil
}

func ingredient(id, name string, qty, reorderPoint float64) model.Ingredient {
	ing := model.Ingredient{
		MerchantID:   "m-1",
		Name:         name,
		Unit:         "kg",
		Quantity:     qty,
		ReorderPoint: reorderPoint,
	}
	ing.ID = id
	return ing
}

func newTestMonitor(uc UseCase) (*Monitor, *notify.Recorder) {
	rec := &notify.Recorder{}
	m := NewMonitor(uc, rec, logger.NewNop(), time.Minute, 3*24*time.Hour)
	return m, rec
}

func TestMonitor_ScanDerivesAlerts(t *testing.T) {
	expires := time.Now().Add(24 * time.Hour)
	uc := &fakeUseCase{ingredients: []model.Ingredient{
		ingredient("ing-1", "Flour", 0, 10),
		ingredient("ing-2", "Sugar", 5, 10),
		ingredient("ing-3", "Salt", 100, 10),
	}}
	uc.ingredients = append(uc.ingredients, func() model.Ingredient {
		ing := ingredient("ing-4", "Milk", 50, 10)
		ing.ExpiresAt = &expires
		return ing
	}())

	m, rec := newTestMonitor(uc)
	require.NoError(t, m.Scan(context.Background()))

	alerts := m.Alerts()
	byID := make(map[string]model.StockAlert, len(alerts))
	for _, a := range alerts {
		byID[a.ID] = a
	}

	require.Len(t, alerts, 3)
	assert.Equal(t, model.SeverityCritical, byID["out_of_stock:ing-1"].Severity)
	assert.Equal(t, model.SeverityWarning, byID["low_stock:ing-2"].Severity)
	assert.Contains(t, byID["low_stock:ing-2"].Message, "Sugar")
	assert.Equal(t, model.AlertExpiring, byID["expiring:ing-4"].Type)
	assert.NotContains(t, byID, "low_stock:ing-3")

	// One notification per new alert.
	assert.Len(t, rec.Messages, 3)
	for _, msg := range rec.Messages {
		assert.Equal(t, "Stock Alert", msg.Title)
		assert.Equal(t, notify.VariantWarning, msg.Variant)
	}
}

func TestMonitor_ExpiredIngredientIsCritical(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	ing := ingredient("ing-1", "Cream", 20, 5)
	ing.ExpiresAt = &past
	uc := &fakeUseCase{ingredients: []model.Ingredient{ing}}

	m, _ := newTestMonitor(uc)
	require.NoError(t, m.Scan(context.Background()))

	alerts := m.Alerts()
	require.Len(t, alerts, 1)
	assert.Equal(t, model.AlertExpiring, alerts[0].Type)
	assert.Equal(t, model.SeverityCritical, alerts[0].Severity)
}

func TestMonitor_RescanKeepsIdentityAndDoesNotRenotify(t *testing.T) {
	uc := &fakeUseCase{ingredients: []model.Ingredient{ingredient("ing-1", "Flour", 0, 10)}}
	m, rec := newTestMonitor(uc)

	require.NoError(t, m.Scan(context.Background()))
	first := m.Alerts()[0]

	require.NoError(t, m.Scan(context.Background()))
	second := m.Alerts()[0]

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.CreatedAt, second.CreatedAt, "creation time survives rescans")
	assert.Len(t, rec.Messages, 1, "persisting condition does not re-notify")
}

func TestMonitor_DismissSurvivesRescanWhileConditionPersists(t *testing.T) {
	uc := &fakeUseCase{ingredients: []model.Ingredient{ingredient("ing-1", "Flour", 0, 10)}}
	m, rec := newTestMonitor(uc)
	ctx := context.Background()

	require.NoError(t, m.Scan(ctx))
	require.NoError(t, m.OnAlertAction(ctx, "out_of_stock:ing-1", ActionDismiss))
	assert.Empty(t, m.Alerts())

	require.NoError(t, m.Scan(ctx))
	assert.Empty(t, m.Alerts(), "dismissed alert stays gone while still out of stock")
	assert.Len(t, rec.Messages, 1)

	// Condition clears, then recurs: the alert fires fresh.
	uc.ingredients[0].Quantity = 50
	require.NoError(t, m.Scan(ctx))
	uc.ingredients[0].Quantity = 0
	require.NoError(t, m.Scan(ctx))

	require.Len(t, m.Alerts(), 1)
	assert.Len(t, rec.Messages, 2)
}

func TestMonitor_AcknowledgeSurvivesRescan(t *testing.T) {
	uc := &fakeUseCase{ingredients: []model.Ingredient{ingredient("ing-1", "Flour", 2, 10)}}
	m, _ := newTestMonitor(uc)
	ctx := context.Background()

	require.NoError(t, m.Scan(ctx))
	require.NoError(t, m.OnAlertAction(ctx, "low_stock:ing-1", ActionAcknowledge))
	require.NoError(t, m.Scan(ctx))

	alerts := m.Alerts()
	require.Len(t, alerts, 1)
	assert.True(t, alerts[0].Acknowledged)
}

func TestMonitor_ReorderBooksRestock(t *testing.T) {
	cost := 2.50
	ing := ingredient("ing-1", "Flour", 2, 10)
	ing.ReorderQuantity = 25
	ing.CostPerUnit = &cost
	uc := &fakeUseCase{ingredients: []model.Ingredient{ing}}
	m, _ := newTestMonitor(uc)
	ctx := context.Background()

	require.NoError(t, m.Scan(ctx))
	require.NoError(t, m.OnAlertAction(ctx, "low_stock:ing-1", ActionReorder))

	require.Len(t, uc.adjustments, 1)
	adj := uc.adjustments[0]
	assert.Equal(t, model.AdjustmentRestock, adj.Type)
	assert.Equal(t, 25.0, adj.QuantityChange)
	assert.Equal(t, "ing-1", adj.IngredientID)
	assert.Equal(t, "m-1", adj.MerchantID)
	require.NotNil(t, adj.UnitCost)
	assert.Equal(t, cost, *adj.UnitCost)
}

func TestMonitor_ReorderWithoutQuantityFails(t *testing.T) {
	uc := &fakeUseCase{ingredients: []model.Ingredient{ingredient("ing-1", "Flour", 2, 10)}}
	m, _ := newTestMonitor(uc)
	ctx := context.Background()

	require.NoError(t, m.Scan(ctx))
	err := m.OnAlertAction(ctx, "low_stock:ing-1", ActionReorder)

	assert.Error(t, err)
	assert.Empty(t, uc.adjustments)
}

func TestMonitor_UnknownAlertOrAction(t *testing.T) {
	uc := &fakeUseCase{ingredients: []model.Ingredient{ingredient("ing-1", "Flour", 0, 10)}}
	m, _ := newTestMonitor(uc)
	ctx := context.Background()
	require.NoError(t, m.Scan(ctx))

	assert.Error(t, m.OnAlertAction(ctx, "no-such-alert", ActionDismiss))
	assert.Error(t, m.OnAlertAction(ctx, "out_of_stock:ing-1", "snooze"))
}
