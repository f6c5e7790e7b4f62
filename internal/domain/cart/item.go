package cart

import (
	"github.com/shopspring/decimal"
)

// StoreRef identifies the store a product is sold from
type StoreRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ProductRef is the subset of a product needed for cart display and merging
type ProductRef struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	ImageURL string          `json:"image_url,omitempty"`
	Store    *StoreRef       `json:"store,omitempty"`
}

// CartItem is a (product reference, quantity) pair, unique by product id
// within a cart
type CartItem struct {
	Product  ProductRef `json:"product"`
	Quantity int        `json:"quantity"`
}

// Subtotal returns price x quantity for this item
func (i CartItem) Subtotal() decimal.Decimal {
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ItemClass is the classification of a cart entry. Grouping and pricing
// operations branch on it explicitly instead of relying on incidental
// nil checks
type ItemClass int

const (
	ItemWellFormed ItemClass = iota
	ItemMissingProduct
	ItemMissingStore
	ItemBadQuantity
)

// String returns a readable name for logging
func (c ItemClass) String() string {
	switch c {
	case ItemWellFormed:
		return "well_formed"
	case ItemMissingProduct:
		return "missing_product"
	case ItemMissingStore:
		return "missing_store"
	case ItemBadQuantity:
		return "bad_quantity"
	default:
		return "unknown"
	}
}

// ClassifyItem decides whether an entry is well-formed. Entries read back
// from persistence or from the remote mirror may be malformed; callers skip
// them rather than fail the whole operation
func ClassifyItem(item CartItem) ItemClass {
	if item.Product.ID == "" {
		return ItemMissingProduct
	}
	if item.Quantity <= 0 {
		return ItemBadQuantity
	}
	if item.Product.Store == nil || item.Product.Store.ID == "" {
		return ItemMissingStore
	}
	return ItemWellFormed
}
