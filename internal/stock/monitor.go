package stock

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/restodine/admin-service/internal/model"
	"github.com/restodine/admin-service/internal/notify"
	"github.com/restodine/admin-service/internal/stock/dto"
	"github.com/restodine/admin-service/pkg/logger"
	"go.uber.org/zap"
)

// Alert actions accepted by the monitor.
const (
	ActionDismiss     = "dismiss"
	ActionAcknowledge = "acknowledge"
	ActionReorder     = "reorder"
)

// Monitor owns the stock alert lifecycle. It periodically scans ingredient
// levels, derives the active alert set (low stock, out of stock, expiring),
// and applies user actions routed back to it. Alert IDs are deterministic
// per type+ingredient so an alert keeps its identity across scans.
type Monitor struct {
	uc           UseCase
	notifier     notify.Notifier
	logger       logger.Logger
	interval     time.Duration
	expiryWindow time.Duration

	mu        sync.Mutex
	alerts    map[string]*model.StockAlert
	dismissed map[string]bool
	acked     map[string]bool
}

func NewMonitor(uc UseCase, notifier notify.Notifier, log logger.Logger, interval, expiryWindow time.Duration) *Monitor {
	return &Monitor{
		uc:           uc,
		notifier:     notifier,
		logger:       log,
		interval:     interval,
		expiryWindow: expiryWindow,
		alerts:       make(map[string]*model.StockAlert),
		dismissed:    make(map[string]bool),
		acked:        make(map[string]bool),
	}
}

// Start runs the scan loop until ctx is canceled.
func (m *Monitor) Start(ctx context.Context) {
	m.logger.Info("starting stock alert monitor", zap.Duration("interval", m.interval))
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("stopping stock alert monitor")
			return
		case <-ticker.C:
			if err := m.Scan(ctx); err != nil {
				m.logger.Error("stock alert scan failed", zap.Error(err))
			}
		}
	}
}

// Scan recomputes the active alert set from current ingredient levels.
// Dismissals and acknowledgements survive rescans while the underlying
// condition persists; once the condition clears, the alert (and its
// dismissal) is forgotten so a recurrence fires fresh.
func (m *Monitor) Scan(ctx context.Context) error {
	ingredients, _, err := m.uc.ListIngredients(ctx, &dto.IngredientFilters{})
	if err != nil {
		return err
	}

	now := time.Now()
	current := make(map[string]*model.StockAlert)

	for i := range ingredients {
		ing := &ingredients[i]
		for _, alert := range m.deriveAlerts(ing, now) {
			current[alert.ID] = alert
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for id, alert := range current {
		if m.dismissed[id] {
			continue
		}
		if existing, ok := m.alerts[id]; ok {
			// Keep the original creation time and ack state.
			alert.CreatedAt = existing.CreatedAt
			alert.Acknowledged = m.acked[id]
		} else {
			m.notifier.Notify(ctx, notify.Message{
				Title:       "Stock Alert",
				Description: alert.Message,
				Variant:     notify.VariantWarning,
			})
		}
		m.alerts[id] = alert
	}

	// Drop alerts whose condition cleared, and let their dismissals expire.
	for id := range m.alerts {
		if _, ok := current[id]; !ok {
			delete(m.alerts, id)
			delete(m.acked, id)
		}
	}
	for id := range m.dismissed {
		if _, ok := current[id]; !ok {
			delete(m.dismissed, id)
		}
	}

	return nil
}

func (m *Monitor) deriveAlerts(ing *model.Ingredient, now time.Time) []*model.StockAlert {
	var alerts []*model.StockAlert

	if ing.Quantity <= 0 {
		alerts = append(alerts, &model.StockAlert{
			ID:           fmt.Sprintf("%s:%s", model.AlertOutOfStock, ing.ID),
			Type:         model.AlertOutOfStock,
			Severity:     model.SeverityCritical,
			IngredientID: ing.ID,
			Message:      fmt.Sprintf("%s is out of stock", ing.Name),
			CreatedAt:    now,
		})
	} else if ing.ReorderPoint > 0 && ing.Quantity <= ing.ReorderPoint {
		alerts = append(alerts, &model.StockAlert{
			ID:           fmt.Sprintf("%s:%s", model.AlertLowStock, ing.ID),
			Type:         model.AlertLowStock,
			Severity:     model.SeverityWarning,
			IngredientID: ing.ID,
			Message:      fmt.Sprintf("%s is low on stock (%.2f %s left)", ing.Name, ing.Quantity, ing.Unit),
			CreatedAt:    now,
		})
	}

	if ing.ExpiresAt != nil && ing.ExpiresAt.Before(now.Add(m.expiryWindow)) {
		severity := model.SeverityWarning
		if ing.ExpiresAt.Before(now) {
			severity = model.SeverityCritical
		}
		alerts = append(alerts, &model.StockAlert{
			ID:           fmt.Sprintf("%s:%s", model.AlertExpiring, ing.ID),
			Type:         model.AlertExpiring,
			Severity:     severity,
			IngredientID: ing.ID,
			Message:      fmt.Sprintf("%s expires %s", ing.Name, ing.ExpiresAt.Format("2006-01-02")),
			CreatedAt:    now,
		})
	}

	return alerts
}

// Alerts returns the active alert set, ordered by creation time then ID for
// a stable listing.
func (m *Monitor) Alerts() []model.StockAlert {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]model.StockAlert, 0, len(m.alerts))
	for _, alert := range m.alerts {
		out = append(out, *alert)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// OnAlertAction applies a user action to one alert.
func (m *Monitor) OnAlertAction(ctx context.Context, alertID, action string) error {
	m.mu.Lock()
	alert, ok := m.alerts[alertID]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("unknown alert %q", alertID)
	}

	switch action {
	case ActionDismiss:
		delete(m.alerts, alertID)
		delete(m.acked, alertID)
		m.dismissed[alertID] = true
		m.mu.Unlock()
		return nil

	case ActionAcknowledge:
		alert.Acknowledged = true
		m.acked[alertID] = true
		m.mu.Unlock()
		return nil

	case ActionReorder:
		ingredientID := alert.IngredientID
		m.mu.Unlock()
		return m.reorder(ctx, ingredientID)

	default:
		m.mu.Unlock()
		return fmt.Errorf("unknown alert action %q", action)
	}
}

// reorder books a restock of the ingredient's configured reorder quantity.
func (m *Monitor) reorder(ctx context.Context, ingredientID string) error {
	ing, err := m.uc.GetIngredient(ctx, ingredientID)
	if err != nil {
		return err
	}
	if ing == nil {
		return fmt.Errorf("ingredient %q not found", ingredientID)
	}
	if ing.ReorderQuantity <= 0 {
		return fmt.Errorf("ingredient %q has no reorder quantity configured", ing.Name)
	}

	_, err = m.uc.AdjustStock(ctx, &dto.AdjustStockInput{
		MerchantID:     ing.MerchantID,
		IngredientID:   ing.ID,
		Type:           model.AdjustmentRestock,
		QuantityChange: ing.ReorderQuantity,
		UnitCost:       ing.CostPerUnit,
		Notes:          "Reorder from stock alert",
	})
	return err
}
