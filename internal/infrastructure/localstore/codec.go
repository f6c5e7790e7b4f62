package localstore

import (
	"encoding/json"

	"github.com/storefront/backend/internal/domain/cart"
)

// encodeItems serializes a guest cart to its persisted JSON form: a plain
// array of item records under a single string key, no schema version
func encodeItems(items []cart.CartItem) (string, error) {
	if items == nil {
		items = []cart.CartItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// decodeItems parses the persisted form. Corrupt content yields ok=false;
// callers recover to an empty cart instead of propagating the parse error
func decodeItems(raw string) ([]cart.CartItem, bool) {
	var items []cart.CartItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, false
	}
	if items == nil {
		items = []cart.CartItem{}
	}
	return items, true
}
