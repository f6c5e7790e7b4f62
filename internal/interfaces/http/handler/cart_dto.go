package handler

import (
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/cart"
)

// StorePayload is the wire form of a store reference
type StorePayload struct {
	ID   string `json:"id" binding:"required"`
	Name string `json:"name"`
}

// ProductPayload is the wire form of a product reference
type ProductPayload struct {
	ID       string        `json:"id" binding:"required"`
	Name     string        `json:"name" binding:"required"`
	Price    string        `json:"price" binding:"required"`
	ImageURL string        `json:"image_url"`
	Store    *StorePayload `json:"store"`
}

// AddItemRequest adds a product to the active cart. A missing quantity
// defaults to one
type AddItemRequest struct {
	Product  ProductPayload `json:"product" binding:"required"`
	Quantity int            `json:"quantity" binding:"omitempty,gt=0"`
}

// UpdateQuantityRequest sets the quantity of a cart entry. Zero removes it
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" binding:"gte=0"`
}

// RemovePurchasedRequest bulk-removes just-ordered products
type RemovePurchasedRequest struct {
	ProductIDs []string `json:"product_ids" binding:"required,min=1"`
}

// CartResponse is the cart snapshot returned after reads and mutations
type CartResponse struct {
	Items         []cart.CartItem `json:"items"`
	TotalQuantity int             `json:"total_quantity"`
	TotalPrice    string          `json:"total_price"`
}

// GroupedCartResponse is the per-store partition of the cart
type GroupedCartResponse struct {
	Groups     []cart.StoreGroup `json:"groups"`
	TotalPrice string            `json:"total_price"`
}

// toProductRef converts the wire product into the domain reference
func (p ProductPayload) toProductRef() (cart.ProductRef, error) {
	price, err := decimal.NewFromString(p.Price)
	if err != nil {
		return cart.ProductRef{}, err
	}

	ref := cart.ProductRef{
		ID:       p.ID,
		Name:     p.Name,
		Price:    price,
		ImageURL: p.ImageURL,
	}
	if p.Store != nil {
		ref.Store = &cart.StoreRef{ID: p.Store.ID, Name: p.Store.Name}
	}
	return ref, nil
}

// newCartResponse builds the snapshot response from a cart item list
func newCartResponse(items []cart.CartItem) CartResponse {
	if items == nil {
		items = []cart.CartItem{}
	}
	return CartResponse{
		Items:         items,
		TotalQuantity: cart.TotalItemCount(items),
		TotalPrice:    cart.TotalPrice(items).StringFixed(2),
	}
}
