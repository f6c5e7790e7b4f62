package cart

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/shared"
)

// MockStore is a mock implementation of cart.Store
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Load(ctx context.Context, key string) ([]cart.CartItem, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]cart.CartItem), args.Error(1)
}

func (m *MockStore) Save(ctx context.Context, key string, items []cart.CartItem) error {
	args := m.Called(ctx, key, items)
	return args.Error(0)
}

func (m *MockStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// MockRemoteService is a mock implementation of cart.RemoteService
type MockRemoteService struct {
	mock.Mock
}

func (m *MockRemoteService) Fetch(ctx context.Context) (cart.RemoteCart, error) {
	args := m.Called(ctx)
	return args.Get(0).(cart.RemoteCart), args.Error(1)
}

func (m *MockRemoteService) AddItem(ctx context.Context, productID string, quantity int) error {
	args := m.Called(ctx, productID, quantity)
	return args.Error(0)
}

func (m *MockRemoteService) RemoveItem(ctx context.Context, productID string) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

func (m *MockRemoteService) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	args := m.Called(ctx, productID, quantity)
	return args.Error(0)
}

func (m *MockRemoteService) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// recordingNotifier captures published notifications for assertions
type recordingNotifier struct {
	mu            sync.Mutex
	notifications []cart.Notification
}

func (n *recordingNotifier) Publish(_ context.Context, notification cart.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notifications = append(n.notifications, notification)
}

func (n *recordingNotifier) all() []cart.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]cart.Notification(nil), n.notifications...)
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func productA() cart.ProductRef {
	return cart.ProductRef{
		ID:    "prod-a",
		Name:  "Ceramic Mug",
		Price: price("12.50"),
		Store: &cart.StoreRef{ID: "store-1", Name: "North Shop"},
	}
}

func productB() cart.ProductRef {
	return cart.ProductRef{
		ID:    "prod-b",
		Name:  "Linen Tote",
		Price: price("29.90"),
		Store: &cart.StoreRef{ID: "store-2", Name: "South Shop"},
	}
}

func newTestService() (*Service, *MockStore, *MockRemoteService, *recordingNotifier) {
	store := new(MockStore)
	remote := new(MockRemoteService)
	notifier := &recordingNotifier{}
	svc := NewService(store, remote, notifier, nil, zap.NewNop())
	return svc, store, remote, notifier
}

func guestSession() Session {
	return Session{CartKey: "cart-key", Authenticated: false}
}

func authSession() Session {
	return Session{CartKey: "cart-key", UserID: "user-1", Authenticated: true}
}

func TestAddItem_Guest_PersistsAndNotifies(t *testing.T) {
	svc, store, _, notifier := newTestService()
	ctx := context.Background()

	store.On("Load", ctx, "cart-key").Return([]cart.CartItem{}, nil)
	store.On("Save", ctx, "cart-key", mock.MatchedBy(func(items []cart.CartItem) bool {
		return len(items) == 1 && items[0].Product.ID == "prod-a" && items[0].Quantity == 2
	})).Return(nil)

	err := svc.AddItem(ctx, guestSession(), productA(), 2)

	require.NoError(t, err)
	store.AssertExpectations(t)

	notifications := notifier.all()
	require.Len(t, notifications, 1)
	assert.Equal(t, cart.NotificationSuccess, notifications[0].Level)
	require.NotNil(t, notifications[0].Action)
	assert.Equal(t, "View cart", notifications[0].Action.Label)
	assert.Equal(t, "/cart", notifications[0].Action.Target)
}

func TestAddItem_Guest_AccumulatesQuantityForSameProduct(t *testing.T) {
	svc, store, _, _ := newTestService()
	ctx := context.Background()

	existing := []cart.CartItem{{Product: productA(), Quantity: 2}}
	store.On("Load", ctx, "cart-key").Return(existing, nil)
	store.On("Save", ctx, "cart-key", mock.MatchedBy(func(items []cart.CartItem) bool {
		return len(items) == 1 && items[0].Quantity == 5
	})).Return(nil)

	err := svc.AddItem(ctx, guestSession(), productA(), 3)

	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestAddItem_Authenticated_DelegatesToRemote(t *testing.T) {
	svc, store, remote, notifier := newTestService()
	ctx := context.Background()

	remote.On("AddItem", ctx, "prod-a", 1).Return(nil)

	err := svc.AddItem(ctx, authSession(), productA(), 1)

	require.NoError(t, err)
	remote.AssertExpectations(t)
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	assert.Len(t, notifier.all(), 1)
}

func TestAddItem_Authenticated_RemoteFailurePropagates(t *testing.T) {
	svc, _, remote, notifier := newTestService()
	ctx := context.Background()

	remoteErr := errors.New("upstream unavailable")
	remote.On("AddItem", ctx, "prod-a", 1).Return(remoteErr)

	err := svc.AddItem(ctx, authSession(), productA(), 1)

	require.ErrorIs(t, err, remoteErr)
	assert.Empty(t, notifier.all())
}

func TestAddItem_RejectsNonPositiveQuantity(t *testing.T) {
	svc, _, _, _ := newTestService()

	err := svc.AddItem(context.Background(), guestSession(), productA(), 0)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_QUANTITY", domainErr.Code)
}

func TestRemoveItem_Guest_AbsentIDIsNoOp(t *testing.T) {
	svc, store, _, _ := newTestService()
	ctx := context.Background()

	store.On("Load", ctx, "cart-key").Return([]cart.CartItem{{Product: productA(), Quantity: 1}}, nil)

	err := svc.RemoveItem(ctx, guestSession(), "ghost")

	require.NoError(t, err)
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateQuantity_Guest_ZeroRemovesEntry(t *testing.T) {
	svc, store, _, _ := newTestService()
	ctx := context.Background()

	store.On("Load", ctx, "cart-key").Return([]cart.CartItem{{Product: productA(), Quantity: 2}}, nil)
	store.On("Save", ctx, "cart-key", mock.MatchedBy(func(items []cart.CartItem) bool {
		return len(items) == 0
	})).Return(nil)

	err := svc.UpdateQuantity(ctx, guestSession(), "prod-a", 0)

	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestUpdateQuantity_Authenticated_UnknownIDIsNoOp(t *testing.T) {
	svc, _, remote, _ := newTestService()
	ctx := context.Background()

	remote.On("Fetch", ctx).Return(cart.RemoteCart{ID: "rc-1"}, nil)

	err := svc.UpdateQuantity(ctx, authSession(), "ghost", 5)

	require.NoError(t, err)
	remote.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateQuantity_Authenticated_SetsQuantity(t *testing.T) {
	svc, _, remote, _ := newTestService()
	ctx := context.Background()

	remote.On("Fetch", ctx).Return(cart.RemoteCart{
		ID:    "rc-1",
		Items: []cart.RemoteItem{{ID: "line-1", Quantity: 2, Product: productA()}},
	}, nil)
	remote.On("UpdateQuantity", ctx, "prod-a", 7).Return(nil)

	err := svc.UpdateQuantity(ctx, authSession(), "prod-a", 7)

	require.NoError(t, err)
	remote.AssertExpectations(t)
}

func TestTotalPrice_GuestAndAuthenticated(t *testing.T) {
	svc, store, remote, _ := newTestService()
	ctx := context.Background()

	items := []cart.CartItem{
		{Product: productA(), Quantity: 2}, // 25.00
		{Product: productB(), Quantity: 1}, // 29.90
	}
	store.On("Load", ctx, "cart-key").Return(items, nil)
	remote.On("Fetch", ctx).Return(cart.RemoteCart{
		ID: "rc-1",
		Items: []cart.RemoteItem{
			{ID: "l1", Quantity: 2, Product: productA()},
			{ID: "l2", Quantity: 1, Product: productB()},
		},
	}, nil)

	guestTotal, err := svc.TotalPrice(ctx, guestSession())
	require.NoError(t, err)
	assert.Equal(t, "54.90", guestTotal)

	authTotal, err := svc.TotalPrice(ctx, authSession())
	require.NoError(t, err)
	assert.Equal(t, "54.90", authTotal)
}

func TestClear_Authenticated_CountIsZeroAfterwards(t *testing.T) {
	svc, _, remote, _ := newTestService()
	ctx := context.Background()

	remote.On("Clear", ctx).Return(nil)
	remote.On("Fetch", ctx).Return(cart.RemoteCart{ID: "rc-1"}, nil)

	require.NoError(t, svc.Clear(ctx, authSession()))

	count, err := svc.TotalItemCount(ctx, authSession())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestClear_Guest_DeletesPersistedCart(t *testing.T) {
	svc, store, _, _ := newTestService()
	ctx := context.Background()

	store.On("Delete", ctx, "cart-key").Return(nil)

	require.NoError(t, svc.Clear(ctx, guestSession()))
	store.AssertExpectations(t)
}

func TestRemovePurchasedItems_LeavesUnpurchasedItems(t *testing.T) {
	svc, _, remote, _ := newTestService()
	ctx := context.Background()

	remote.On("Fetch", ctx).Return(cart.RemoteCart{
		ID: "rc-1",
		Items: []cart.RemoteItem{
			{ID: "l1", Quantity: 1, Product: productA()},
			{ID: "l2", Quantity: 1, Product: productB()},
		},
	}, nil)
	remote.On("RemoveItem", ctx, "prod-a").Return(nil)

	err := svc.RemovePurchasedItems(ctx, authSession(), []string{"prod-a", "not-in-cart"})

	require.NoError(t, err)
	remote.AssertCalled(t, "RemoveItem", ctx, "prod-a")
	remote.AssertNotCalled(t, "RemoveItem", ctx, "prod-b")
	remote.AssertNotCalled(t, "RemoveItem", ctx, "not-in-cart")
}

func TestItemsGroupedByStore_SkipsMalformedEntry(t *testing.T) {
	svc, store, _, _ := newTestService()
	ctx := context.Background()

	items := []cart.CartItem{
		{Product: productA(), Quantity: 1},
		{Product: cart.ProductRef{ID: "orphan", Name: "No Store", Price: price("3.00")}, Quantity: 1},
		{Product: productB(), Quantity: 2},
	}
	store.On("Load", ctx, "cart-key").Return(items, nil)

	groups, err := svc.ItemsGroupedByStore(ctx, guestSession())

	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "store-1", groups[0].Store.ID)
	assert.Equal(t, "store-2", groups[1].Store.ID)
}

func TestMergeOnLogin_EmptyGuestCartIsNoOp(t *testing.T) {
	svc, store, remote, _ := newTestService()
	ctx := context.Background()

	store.On("Load", ctx, "cart-key").Return([]cart.CartItem{}, nil)

	err := svc.MergeOnLogin(ctx, authSession())

	require.NoError(t, err)
	remote.AssertNotCalled(t, "Fetch", mock.Anything)
}

func TestMergeOnLogin_SumsOverlappingAndAddsNewItems(t *testing.T) {
	svc, store, remote, _ := newTestService()
	ctx := context.Background()

	guestItems := []cart.CartItem{
		{Product: productA(), Quantity: 2},
		{Product: productB(), Quantity: 1},
	}
	store.On("Load", ctx, "cart-key").Return(guestItems, nil)
	remote.On("Fetch", ctx).Return(cart.RemoteCart{
		ID:    "rc-1",
		Items: []cart.RemoteItem{{ID: "l1", Quantity: 3, Product: productA()}},
	}, nil)
	// remote quantity is the base, guest quantity is additive: 3 + 2 = 5
	remote.On("UpdateQuantity", ctx, "prod-a", 5).Return(nil)
	remote.On("AddItem", ctx, "prod-b", 1).Return(nil)
	store.On("Delete", ctx, "cart-key").Return(nil)

	err := svc.MergeOnLogin(ctx, authSession())

	require.NoError(t, err)
	remote.AssertExpectations(t)
	store.AssertCalled(t, "Delete", ctx, "cart-key")
}

func TestMergeOnLogin_PartialFailureKeepsGuestCart(t *testing.T) {
	svc, store, remote, notifier := newTestService()
	ctx := context.Background()

	guestItems := []cart.CartItem{
		{Product: productA(), Quantity: 2},
		{Product: productB(), Quantity: 1},
	}
	store.On("Load", ctx, "cart-key").Return(guestItems, nil)
	remote.On("Fetch", ctx).Return(cart.RemoteCart{
		ID:    "rc-1",
		Items: []cart.RemoteItem{{ID: "l1", Quantity: 3, Product: productA()}},
	}, nil)
	remote.On("UpdateQuantity", ctx, "prod-a", 5).Return(errors.New("timeout"))
	remote.On("AddItem", ctx, "prod-b", 1).Return(nil)

	err := svc.MergeOnLogin(ctx, authSession())

	require.ErrorIs(t, err, shared.ErrMergeFailed)
	// the guest cart must stay persisted even though the add for B went
	// through; this pins the documented partial-failure behavior
	store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)

	notifications := notifier.all()
	require.Len(t, notifications, 1)
	assert.Equal(t, cart.NotificationError, notifications[0].Level)
}

func TestMergeOnLogin_FetchFailureKeepsGuestCart(t *testing.T) {
	svc, store, remote, notifier := newTestService()
	ctx := context.Background()

	store.On("Load", ctx, "cart-key").Return([]cart.CartItem{{Product: productA(), Quantity: 1}}, nil)
	remote.On("Fetch", ctx).Return(cart.RemoteCart{}, errors.New("unreachable"))

	err := svc.MergeOnLogin(ctx, authSession())

	require.ErrorIs(t, err, shared.ErrMergeFailed)
	store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	assert.Len(t, notifier.all(), 1)
}
