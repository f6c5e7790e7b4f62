package cart

import (
	"github.com/storefront/backend/internal/domain/shared"
)

// Event types produced by the cart
const (
	EventTypeItemAdded       = "cart.item_added"
	EventTypeCartCleared     = "cart.cleared"
	EventTypeCartMerged      = "cart.merged"
	EventTypeCartMergeFailed = "cart.merge_failed"
)

const aggregateTypeCart = "Cart"

// ItemAddedEvent is published after an item lands in either cart
type ItemAddedEvent struct {
	shared.BaseDomainEvent
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
}

// NewItemAddedEvent creates an ItemAddedEvent
func NewItemAddedEvent(cartKey string, product ProductRef, quantity int) *ItemAddedEvent {
	return &ItemAddedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeItemAdded, aggregateTypeCart, cartKey),
		ProductID:       product.ID,
		ProductName:     product.Name,
		Quantity:        quantity,
	}
}

// CartClearedEvent is published after the active cart is emptied
type CartClearedEvent struct {
	shared.BaseDomainEvent
}

// NewCartClearedEvent creates a CartClearedEvent
func NewCartClearedEvent(cartKey string) *CartClearedEvent {
	return &CartClearedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCartCleared, aggregateTypeCart, cartKey),
	}
}

// CartMergedEvent is published after a guest cart is fully merged into the
// remote cart on login
type CartMergedEvent struct {
	shared.BaseDomainEvent
	ItemCount int `json:"item_count"`
}

// NewCartMergedEvent creates a CartMergedEvent
func NewCartMergedEvent(cartKey string, itemCount int) *CartMergedEvent {
	return &CartMergedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCartMerged, aggregateTypeCart, cartKey),
		ItemCount:       itemCount,
	}
}

// CartMergeFailedEvent is published when any of the merge calls fails.
// The guest cart stays persisted in that case
type CartMergeFailedEvent struct {
	shared.BaseDomainEvent
	Reason string `json:"reason"`
}

// NewCartMergeFailedEvent creates a CartMergeFailedEvent
func NewCartMergeFailedEvent(cartKey, reason string) *CartMergeFailedEvent {
	return &CartMergeFailedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCartMergeFailed, aggregateTypeCart, cartKey),
		Reason:          reason,
	}
}
