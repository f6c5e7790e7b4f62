package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productA() ProductRef {
	return ProductRef{
		ID:    "prod-a",
		Name:  "Ceramic Mug",
		Price: decimal.RequireFromString("12.50"),
		Store: &StoreRef{ID: "store-1", Name: "North Shop"},
	}
}

func productB() ProductRef {
	return ProductRef{
		ID:    "prod-b",
		Name:  "Linen Tote",
		Price: decimal.RequireFromString("29.90"),
		Store: &StoreRef{ID: "store-2", Name: "South Shop"},
	}
}

func TestGuestCart_AddItem_AccumulatesQuantityPerProduct(t *testing.T) {
	c := NewGuestCart("cart-key")

	require.NoError(t, c.AddItem(productA(), 2))
	require.NoError(t, c.AddItem(productA(), 3))

	require.Len(t, c.Items, 1)
	assert.Equal(t, 5, c.Items[0].Quantity)
	assert.Equal(t, "prod-a", c.Items[0].Product.ID)
}

func TestGuestCart_AddItem_DistinctProductsKeepOrder(t *testing.T) {
	c := NewGuestCart("cart-key")

	require.NoError(t, c.AddItem(productA(), 1))
	require.NoError(t, c.AddItem(productB(), 4))

	require.Len(t, c.Items, 2)
	assert.Equal(t, "prod-a", c.Items[0].Product.ID)
	assert.Equal(t, "prod-b", c.Items[1].Product.ID)
}

func TestGuestCart_AddItem_RejectsInvalidInput(t *testing.T) {
	c := NewGuestCart("cart-key")

	assert.Error(t, c.AddItem(ProductRef{}, 1))
	assert.Error(t, c.AddItem(productA(), 0))
	assert.Error(t, c.AddItem(productA(), -2))
	assert.True(t, c.IsEmpty())
}

func TestGuestCart_RemoveItem_AbsentIDIsNoOp(t *testing.T) {
	c := NewGuestCart("cart-key")
	require.NoError(t, c.AddItem(productA(), 2))

	c.RemoveItem("does-not-exist")

	require.Len(t, c.Items, 1)
}

func TestGuestCart_UpdateQuantity(t *testing.T) {
	c := NewGuestCart("cart-key")
	require.NoError(t, c.AddItem(productA(), 2))

	c.UpdateQuantity("prod-a", 7)
	item, ok := c.FindItem("prod-a")
	require.True(t, ok)
	assert.Equal(t, 7, item.Quantity)

	// zero and negative quantities remove the entry
	c.UpdateQuantity("prod-a", 0)
	_, ok = c.FindItem("prod-a")
	assert.False(t, ok)

	// unknown id is a no-op
	c.UpdateQuantity("ghost", 5)
	assert.True(t, c.IsEmpty())
}

func TestGuestCart_Clear(t *testing.T) {
	c := NewGuestCart("cart-key")
	require.NoError(t, c.AddItem(productA(), 2))
	require.NoError(t, c.AddItem(productB(), 1))

	c.Clear()

	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0, TotalItemCount(c.Items))
}

func TestTotalPrice(t *testing.T) {
	items := []CartItem{
		{Product: productA(), Quantity: 2}, // 25.00
		{Product: productB(), Quantity: 1}, // 29.90
	}

	total := TotalPrice(items)

	assert.Equal(t, "54.90", total.StringFixed(2))
}

func TestTotalItemCount(t *testing.T) {
	items := []CartItem{
		{Product: productA(), Quantity: 2},
		{Product: productB(), Quantity: 3},
	}

	assert.Equal(t, 5, TotalItemCount(items))
	assert.Equal(t, 0, TotalItemCount(nil))
}

func TestClassifyItem(t *testing.T) {
	tests := []struct {
		name string
		item CartItem
		want ItemClass
	}{
		{"well formed", CartItem{Product: productA(), Quantity: 1}, ItemWellFormed},
		{"missing product id", CartItem{Quantity: 1}, ItemMissingProduct},
		{"nil store", CartItem{Product: ProductRef{ID: "p", Name: "x"}, Quantity: 1}, ItemMissingStore},
		{"empty store id", CartItem{Product: ProductRef{ID: "p", Store: &StoreRef{}}, Quantity: 1}, ItemMissingStore},
		{"zero quantity", CartItem{Product: productA(), Quantity: 0}, ItemBadQuantity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyItem(tt.item))
		})
	}
}

func TestGroupByStore(t *testing.T) {
	sharedStore := &StoreRef{ID: "store-1", Name: "North Shop"}
	items := []CartItem{
		{Product: ProductRef{ID: "p1", Price: decimal.RequireFromString("10.00"), Store: sharedStore}, Quantity: 2},
		{Product: ProductRef{ID: "p2", Price: decimal.RequireFromString("5.00"), Store: &StoreRef{ID: "store-2", Name: "South Shop"}}, Quantity: 1},
		{Product: ProductRef{ID: "p3", Price: decimal.RequireFromString("3.00"), Store: sharedStore}, Quantity: 1},
	}

	groups, skipped := GroupByStore(items)

	require.Len(t, groups, 2)
	assert.Empty(t, skipped)

	assert.Equal(t, "store-1", groups[0].Store.ID)
	assert.Len(t, groups[0].Items, 2)
	assert.Equal(t, "23.00", groups[0].Subtotal.StringFixed(2))

	assert.Equal(t, "store-2", groups[1].Store.ID)
	assert.Len(t, groups[1].Items, 1)
	assert.Equal(t, "5.00", groups[1].Subtotal.StringFixed(2))
}

func TestGroupByStore_SkipsMalformedEntries(t *testing.T) {
	items := []CartItem{
		{Product: productA(), Quantity: 1},
		{Product: ProductRef{ID: "no-store", Name: "Orphan", Price: decimal.RequireFromString("1.00")}, Quantity: 1},
	}

	groups, skipped := GroupByStore(items)

	require.Len(t, groups, 1)
	require.Len(t, skipped, 1)
	assert.Equal(t, "no-store", skipped[0].Product.ID)
}

func TestRemoteCart_FindByProductID(t *testing.T) {
	rc := RemoteCart{
		ID: "remote-1",
		Items: []RemoteItem{
			{ID: "line-1", Quantity: 3, Product: productA()},
		},
	}

	item, ok := rc.FindByProductID("prod-a")
	require.True(t, ok)
	assert.Equal(t, 3, item.Quantity)

	_, ok = rc.FindByProductID("prod-b")
	assert.False(t, ok)
}

func TestRemoteCart_CartItems(t *testing.T) {
	rc := RemoteCart{
		Items: []RemoteItem{
			{ID: "line-1", Quantity: 2, Product: productA()},
			{ID: "line-2", Quantity: 1, Product: productB()},
		},
	}

	items := rc.CartItems()

	require.Len(t, items, 2)
	assert.Equal(t, "54.90", TotalPrice(items).StringFixed(2))
}
