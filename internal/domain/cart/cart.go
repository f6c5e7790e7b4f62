package cart

import (
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/shared"
)

// GuestCart is the cart of an unauthenticated session. It is an ordered
// list of items, unique by product id, persisted through a Store
type GuestCart struct {
	Key   string
	Items []CartItem
}

// NewGuestCart creates an empty guest cart for the given cart key
func NewGuestCart(key string) *GuestCart {
	return &GuestCart{
		Key:   key,
		Items: make([]CartItem, 0),
	}
}

// AddItem appends a new entry or, when the product id is already present,
// increments the existing entry's quantity
func (c *GuestCart) AddItem(product ProductRef, quantity int) error {
	if product.ID == "" {
		return shared.NewDomainError("INVALID_PRODUCT", "Product id cannot be empty")
	}
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	for i := range c.Items {
		if c.Items[i].Product.ID == product.ID {
			c.Items[i].Quantity += quantity
			return nil
		}
	}

	c.Items = append(c.Items, CartItem{Product: product, Quantity: quantity})
	return nil
}

// RemoveItem removes the entry with the matching product id.
// Removing an absent id is a no-op, not an error
func (c *GuestCart) RemoveItem(productID string) {
	for i := range c.Items {
		if c.Items[i].Product.ID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// UpdateQuantity sets the quantity for the matching product id.
// A quantity of zero or below removes the entry. An absent id is a no-op
func (c *GuestCart) UpdateQuantity(productID string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(productID)
		return
	}
	for i := range c.Items {
		if c.Items[i].Product.ID == productID {
			c.Items[i].Quantity = quantity
			return
		}
	}
}

// Clear empties the cart
func (c *GuestCart) Clear() {
	c.Items = c.Items[:0]
}

// IsEmpty reports whether the cart has no items
func (c *GuestCart) IsEmpty() bool {
	return len(c.Items) == 0
}

// FindItem returns the entry with the matching product id
func (c *GuestCart) FindItem(productID string) (CartItem, bool) {
	for _, item := range c.Items {
		if item.Product.ID == productID {
			return item, true
		}
	}
	return CartItem{}, false
}

// TotalItemCount sums the quantities across a cart snapshot.
// It is a pure derived-value function usable for both guest and remote carts
func TotalItemCount(items []CartItem) int {
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return total
}

// TotalPrice sums price x quantity across a cart snapshot
func TotalPrice(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}
