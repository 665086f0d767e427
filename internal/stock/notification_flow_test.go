package stock

import (
	"context"
	"errors"
	"testing"

	"github.com/restodine/admin-service/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSource captures every action forwarded to it.
type recordingSource struct {
	alerts  []model.StockAlert
	actions [][2]string
	err     error
}

func (s *recordingSource) Alerts() []model.StockAlert { return s.alerts }

func (s *recordingSource) OnAlertAction(ctx context.Context, alertID, action string) error {
	s.actions = append(s.actions, [2]string{alertID, action})
	return s.err
}

func TestNotificationFlow_NotificationsAreSourceList(t *testing.T) {
	src := &recordingSource{alerts: []model.StockAlert{
		{ID: "low_stock:ing-1", Type: model.AlertLowStock, Message: "Flour is low on stock"},
		{ID: "expiring:ing-2", Type: model.AlertExpiring, Message: "Milk expires 2026-09-03"},
	}}
	flow := NewNotificationFlow(src)

	assert.Equal(t, src.alerts, flow.Notifications())
}

func TestNotificationFlow_ForwardsActionVerbatim(t *testing.T) {
	src := &recordingSource{}
	flow := NewNotificationFlow(src)

	pairs := [][2]string{
		{"low_stock:ing-1", ActionDismiss},
		{"out_of_stock:ing-2", ActionAcknowledge},
		{"expiring:ing-3", ActionReorder},
		{"", ""},
		{"weird id with spaces", "not-a-known-action"},
	}
	for _, p := range pairs {
		require.NoError(t, flow.OnNotificationAction(context.Background(), p[0], p[1]))
	}

	// Exactly one forwarded call per action, same order, same values, no
	// filtering or rewriting of unknown IDs or actions.
	assert.Equal(t, pairs, src.actions)
}

func TestNotificationFlow_PropagatesSourceError(t *testing.T) {
	src := &recordingSource{err: errors.New("unknown alert")}
	flow := NewNotificationFlow(src)

	err := flow.OnNotificationAction(context.Background(), "gone:ing-9", ActionDismiss)

	assert.Error(t, err)
	assert.Equal(t, src.err, err)
}
