package notify

import (
	"context"

	"github.com/restodine/admin-service/pkg/logger"
	"go.uber.org/zap"
)

const (
	VariantInfo        = "info"
	VariantSuccess     = "success"
	VariantWarning     = "warning"
	VariantDestructive = "destructive"
)

// Message is a user-facing notification. Fire-and-forget; callers never
// consume a return value.
type Message struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Variant     string `json:"variant"`
}

// Notifier delivers messages to the user. Implementations must not block the
// caller on delivery problems.
type Notifier interface {
	Notify(ctx context.Context, msg Message)
}

// LogNotifier is the swallow-and-log implementation: every message is written
// to the structured log and nothing can fail.
type LogNotifier struct {
	logger logger.Logger
}

func NewLogNotifier(log logger.Logger) *LogNotifier {
	return &LogNotifier{logger: log}
}

func (n *LogNotifier) Notify(_ context.Context, msg Message) {
	n.logger.Info("user notification",
		zap.String("title", msg.Title),
		zap.String("description", msg.Description),
		zap.String("variant", msg.Variant),
	)
}

// Recorder captures messages for assertions in tests.
type Recorder struct {
	Messages []Message
}

func (r *Recorder) Notify(_ context.Context, msg Message) {
	r.Messages = append(r.Messages, msg)
}
