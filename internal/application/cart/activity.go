package cart

import (
	"context"

	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/shared"
)

// ActivityHandler records cart lifecycle events in the application log.
// Merge failures are logged at warn level so they stand out during triage
type ActivityHandler struct {
	logger *zap.Logger
}

// NewActivityHandler creates an ActivityHandler
func NewActivityHandler(logger *zap.Logger) *ActivityHandler {
	return &ActivityHandler{logger: logger}
}

// EventTypes lists the cart events this handler records
func (h *ActivityHandler) EventTypes() []string {
	return []string{
		cart.EventTypeItemAdded,
		cart.EventTypeCartCleared,
		cart.EventTypeCartMerged,
		cart.EventTypeCartMergeFailed,
	}
}

// Handle logs a single cart event
func (h *ActivityHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	fields := []zap.Field{
		zap.String("event_id", event.EventID().String()),
		zap.String("cart_key", event.AggregateID()),
	}

	switch e := event.(type) {
	case *cart.ItemAddedEvent:
		fields = append(fields,
			zap.String("product_id", e.ProductID),
			zap.Int("quantity", e.Quantity),
		)
	case *cart.CartMergedEvent:
		fields = append(fields, zap.Int("item_count", e.ItemCount))
	case *cart.CartMergeFailedEvent:
		h.logger.Warn("cart activity: "+event.EventType(),
			append(fields, zap.String("reason", e.Reason))...)
		return nil
	}

	h.logger.Info("cart activity: "+event.EventType(), fields...)
	return nil
}
