package listener

import (
	"context"
	"encoding/json"
	"time"

	"github.com/restodine/admin-service/internal/model"
	"github.com/restodine/admin-service/internal/recipe"
	"github.com/restodine/admin-service/internal/stock"
	"github.com/restodine/admin-service/internal/stock/dto"
	"github.com/restodine/admin-service/pkg/broker"
	"github.com/restodine/admin-service/pkg/logger"
	"go.uber.org/zap"
)

// StockListener consumes completed-order events and deducts the recipe
// ingredients of each ordered menu item from stock.
type StockListener struct {
	consumer *broker.KafkaConsumer
	uc       stock.UseCase
	recipes  recipe.Store
	logger   logger.Logger
}

func NewStockListener(consumer *broker.KafkaConsumer, uc stock.UseCase, recipes recipe.Store, log logger.Logger) *StockListener {
	return &StockListener{
		consumer: consumer,
		uc:       uc,
		recipes:  recipes,
		logger:   log,
	}
}

func (l *StockListener) Start(ctx context.Context) {
	l.logger.Info("starting stock kafka listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("stopping stock kafka listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("failed to read kafka message", zap.Error(err))
				time.Sleep(1 * time.Second)
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

type OrderCompletedEvent struct {
	EventID   string       `json:"event_id"`
	EventType string       `json:"event_type"`
	Payload   OrderPayload `json:"payload"`
	Timestamp time.Time    `json:"timestamp"`
}

type OrderPayload struct {
	ID         string             `json:"id"`
	MerchantID string             `json:"merchant_id"`
	Items      []OrderItemPayload `json:"items"`
}

type OrderItemPayload struct {
	MenuItemID string  `json:"menu_item_id"`
	Quantity   float64 `json:"quantity"`
}

func (l *StockListener) processMessage(ctx context.Context, value []byte) {
	var event OrderCompletedEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("failed to unmarshal event", zap.Error(err))
		return
	}

	if event.EventType != "OrderCompleted" {
		return
	}

	l.logger.Info("processing OrderCompleted event", zap.String("order_id", event.Payload.ID))

	for _, item := range event.Payload.Items {
		lines, err := l.recipes.GetMenuItemRecipe(ctx, item.MenuItemID)
		if err != nil {
			l.logger.Error("failed to load recipe for ordered item",
				zap.String("order_id", event.Payload.ID),
				zap.String("menu_item_id", item.MenuItemID),
				zap.Error(err),
			)
			continue
		}

		for _, line := range lines {
			input := &dto.AdjustStockInput{
				MerchantID:     event.Payload.MerchantID,
				IngredientID:   line.IngredientID,
				Type:           model.AdjustmentSale,
				QuantityChange: -item.Quantity * line.QuantityRequired,
				Reference:      event.Payload.ID,
				Notes:          "Order sale",
			}

			if _, err := l.uc.AdjustStock(ctx, input); err != nil {
				l.logger.Error("failed to deduct stock for order item",
					zap.String("order_id", event.Payload.ID),
					zap.String("ingredient_id", line.IngredientID),
					zap.Error(err),
				)
			}
		}
	}
}
