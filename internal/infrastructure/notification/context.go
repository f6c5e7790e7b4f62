package notification

import (
	"context"

	"github.com/storefront/backend/internal/domain/cart"
)

type collectorContextKey struct{}

// WithCollector attaches a fresh per-request collector to the context
func WithCollector(ctx context.Context) (context.Context, *CollectingNotifier) {
	collector := NewCollectingNotifier()
	return context.WithValue(ctx, collectorContextKey{}, collector), collector
}

// CollectorFromContext returns the request collector, if any
func CollectorFromContext(ctx context.Context) (*CollectingNotifier, bool) {
	collector, ok := ctx.Value(collectorContextKey{}).(*CollectingNotifier)
	return collector, ok
}

// ContextNotifier forwards notifications to the collector attached to the
// current request context, when present. Combined with a ZapNotifier in a
// Fanout it lets the service announce once while the HTTP layer returns the
// announcement in the response envelope
type ContextNotifier struct{}

// NewContextNotifier creates a context-scoped notifier
func NewContextNotifier() *ContextNotifier {
	return &ContextNotifier{}
}

// Publish forwards to the request collector when one is attached
func (n *ContextNotifier) Publish(ctx context.Context, notification cart.Notification) {
	if collector, ok := CollectorFromContext(ctx); ok {
		collector.Publish(ctx, notification)
	}
}

// Ensure ContextNotifier implements cart.Notifier
var _ cart.Notifier = (*ContextNotifier)(nil)
