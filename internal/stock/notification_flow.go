package stock

import (
	"context"

	"github.com/restodine/admin-service/internal/model"
)

// AlertSource supplies the active alerts and receives user actions on them.
// Implemented by Monitor.
type AlertSource interface {
	Alerts() []model.StockAlert
	OnAlertAction(ctx context.Context, alertID, action string) error
}

// NotificationFlow is the presentational side of stock alerts. It does not
// own alert lifecycle: the list comes from the source unmodified, and user
// actions are routed back verbatim with no filtering, deduplication, or
// reinterpretation.
type NotificationFlow struct {
	source AlertSource
}

func NewNotificationFlow(source AlertSource) *NotificationFlow {
	return &NotificationFlow{source: source}
}

// Notifications returns the source's current alert list.
func (f *NotificationFlow) Notifications() []model.StockAlert {
	return f.source.Alerts()
}

// OnNotificationAction forwards (notificationID, action) to the source
// exactly as received.
func (f *NotificationFlow) OnNotificationAction(ctx context.Context, notificationID, action string) error {
	return f.source.OnAlertAction(ctx, notificationID, action)
}
