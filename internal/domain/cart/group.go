package cart

import "github.com/shopspring/decimal"

// StoreGroup is a per-store partition of a cart: the store reference, its
// items and a running subtotal
type StoreGroup struct {
	Store    StoreRef        `json:"store"`
	Items    []CartItem      `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// GroupByStore partitions a cart snapshot by product store id. Groups keep
// the first-seen order of stores. Malformed entries (see ClassifyItem) are
// returned separately so the caller can log them; they never fail the
// grouping of the well-formed rest
func GroupByStore(items []CartItem) ([]StoreGroup, []CartItem) {
	groups := make([]StoreGroup, 0)
	index := make(map[string]int)
	skipped := make([]CartItem, 0)

	for _, item := range items {
		if ClassifyItem(item) != ItemWellFormed {
			skipped = append(skipped, item)
			continue
		}

		storeID := item.Product.Store.ID
		i, ok := index[storeID]
		if !ok {
			groups = append(groups, StoreGroup{
				Store:    *item.Product.Store,
				Items:    make([]CartItem, 0, 1),
				Subtotal: decimal.Zero,
			})
			i = len(groups) - 1
			index[storeID] = i
		}

		groups[i].Items = append(groups[i].Items, item)
		groups[i].Subtotal = groups[i].Subtotal.Add(item.Subtotal())
	}

	return groups, skipped
}
