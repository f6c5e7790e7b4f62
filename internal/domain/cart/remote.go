package cart

import "context"

// RemoteItem is a line in the server-authoritative cart
type RemoteItem struct {
	ID       string     `json:"id"`
	Quantity int        `json:"quantity"`
	Product  ProductRef `json:"product"`
}

// RemoteCart is the read-only mirror of the server-authoritative cart,
// refetched after each mutation
type RemoteCart struct {
	ID    string       `json:"id"`
	Items []RemoteItem `json:"items"`
}

// FindByProductID returns the remote line matching the product id
func (c RemoteCart) FindByProductID(productID string) (RemoteItem, bool) {
	for _, item := range c.Items {
		if item.Product.ID == productID {
			return item, true
		}
	}
	return RemoteItem{}, false
}

// CartItems converts the remote mirror into a plain cart snapshot so the
// derived-value functions work on either cart
func (c RemoteCart) CartItems() []CartItem {
	items := make([]CartItem, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, CartItem{Product: item.Product, Quantity: item.Quantity})
	}
	return items
}

// RemoteService is the port to the commerce platform's per-user cart API.
// The session credential travels in the context
type RemoteService interface {
	Fetch(ctx context.Context) (RemoteCart, error)
	AddItem(ctx context.Context, productID string, quantity int) error
	RemoveItem(ctx context.Context, productID string) error
	UpdateQuantity(ctx context.Context, productID string, quantity int) error
	Clear(ctx context.Context) error
}
