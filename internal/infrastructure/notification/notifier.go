package notification

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/cart"
)

// ZapNotifier renders notifications to structured logs. The HTTP layer
// additionally returns notifications in the response envelope so the web
// client can show its transient toast
type ZapNotifier struct {
	logger *zap.Logger
}

// NewZapNotifier creates a log-backed notifier
func NewZapNotifier(logger *zap.Logger) *ZapNotifier {
	return &ZapNotifier{logger: logger}
}

// Publish logs the notification
func (n *ZapNotifier) Publish(_ context.Context, notification cart.Notification) {
	fields := []zap.Field{
		zap.String("level", string(notification.Level)),
		zap.String("message", notification.Message),
	}
	if notification.Action != nil {
		fields = append(fields,
			zap.String("action_label", notification.Action.Label),
			zap.String("action_target", notification.Action.Target),
		)
	}

	if notification.Level == cart.NotificationError {
		n.logger.Warn("notification", fields...)
		return
	}
	n.logger.Info("notification", fields...)
}

// CollectingNotifier buffers notifications in memory. The HTTP layer drains
// the buffer of the current request into the response envelope; tests use
// it for assertions
type CollectingNotifier struct {
	mu            sync.Mutex
	notifications []cart.Notification
}

// NewCollectingNotifier creates an empty collector
func NewCollectingNotifier() *CollectingNotifier {
	return &CollectingNotifier{}
}

// Publish buffers the notification
func (n *CollectingNotifier) Publish(_ context.Context, notification cart.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notifications = append(n.notifications, notification)
}

// Drain returns and clears all buffered notifications
func (n *CollectingNotifier) Drain() []cart.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	drained := n.notifications
	n.notifications = nil
	return drained
}

// Fanout forwards each notification to every wrapped notifier
type Fanout struct {
	sinks []cart.Notifier
}

// NewFanout creates a notifier that forwards to all sinks
func NewFanout(sinks ...cart.Notifier) *Fanout {
	return &Fanout{sinks: sinks}
}

// Publish forwards the notification to every sink
func (f *Fanout) Publish(ctx context.Context, notification cart.Notification) {
	for _, sink := range f.sinks {
		sink.Publish(ctx, notification)
	}
}

// Interface guards
var (
	_ cart.Notifier = (*ZapNotifier)(nil)
	_ cart.Notifier = (*CollectingNotifier)(nil)
	_ cart.Notifier = (*Fanout)(nil)
)
