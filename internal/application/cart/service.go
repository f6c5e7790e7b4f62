package cart

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/shared"
)

// Session carries the authentication state of the calling user. CartKey
// addresses the guest cart while unauthenticated; once a session exists the
// remote cart is authoritative and the credential travels in the context
type Session struct {
	CartKey       string
	UserID        string
	Authenticated bool
}

// Service presents a single cart interface regardless of authentication
// state. Exactly one of the guest store or the remote service is active for
// any call, decided by the session. All collaborators are injected; the
// service holds no package-level state
type Service struct {
	store    cart.Store
	remote   cart.RemoteService
	notifier cart.Notifier
	bus      shared.EventBus
	logger   *zap.Logger
}

// NewService creates a new cart Service
func NewService(
	store cart.Store,
	remote cart.RemoteService,
	notifier cart.Notifier,
	bus shared.EventBus,
	logger *zap.Logger,
) *Service {
	return &Service{
		store:    store,
		remote:   remote,
		notifier: notifier,
		bus:      bus,
		logger:   logger,
	}
}

// Items returns the current snapshot of the active cart. For authenticated
// sessions this refetches the remote mirror; for guests it reads the
// persisted guest cart
func (s *Service) Items(ctx context.Context, sess Session) ([]cart.CartItem, error) {
	if sess.Authenticated {
		remote, err := s.remote.Fetch(ctx)
		if err != nil {
			return nil, err
		}
		return remote.CartItems(), nil
	}
	return s.store.Load(ctx, sess.CartKey)
}

// AddItem increments the quantity when the product is already present,
// otherwise appends a new entry. On success a confirmation notification with
// a view-cart shortcut is emitted. Remote failures propagate to the caller
func (s *Service) AddItem(ctx context.Context, sess Session, product cart.ProductRef, quantity int) error {
	if product.ID == "" {
		return shared.NewDomainError("INVALID_PRODUCT", "Product id cannot be empty")
	}
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	if sess.Authenticated {
		if err := s.remote.AddItem(ctx, product.ID, quantity); err != nil {
			return err
		}
	} else {
		guest, err := s.loadGuest(ctx, sess.CartKey)
		if err != nil {
			return err
		}
		if err := guest.AddItem(product, quantity); err != nil {
			return err
		}
		if err := s.store.Save(ctx, sess.CartKey, guest.Items); err != nil {
			return err
		}
	}

	s.notifier.Publish(ctx, cart.Notification{
		Level:   cart.NotificationSuccess,
		Message: fmt.Sprintf("%s added to cart", product.Name),
		Action:  &cart.NotificationAction{Label: "View cart", Target: "/cart"},
	})
	s.publish(ctx, cart.NewItemAddedEvent(sess.CartKey, product, quantity))

	return nil
}

// RemoveItem removes the entry with the matching product id. An absent id is
// a no-op, not an error
func (s *Service) RemoveItem(ctx context.Context, sess Session, productID string) error {
	if sess.Authenticated {
		remote, err := s.remote.Fetch(ctx)
		if err != nil {
			return err
		}
		if _, ok := remote.FindByProductID(productID); !ok {
			return nil
		}
		return s.remote.RemoveItem(ctx, productID)
	}

	guest, err := s.loadGuest(ctx, sess.CartKey)
	if err != nil {
		return err
	}
	if _, ok := guest.FindItem(productID); !ok {
		return nil
	}
	guest.RemoveItem(productID)
	return s.store.Save(ctx, sess.CartKey, guest.Items)
}

// UpdateQuantity sets the quantity for the matching product id. A quantity
// of zero or below removes the entry instead of storing a non-positive
// value. An absent id is a no-op
func (s *Service) UpdateQuantity(ctx context.Context, sess Session, productID string, quantity int) error {
	if quantity <= 0 {
		return s.RemoveItem(ctx, sess, productID)
	}

	if sess.Authenticated {
		remote, err := s.remote.Fetch(ctx)
		if err != nil {
			return err
		}
		if _, ok := remote.FindByProductID(productID); !ok {
			return nil
		}
		return s.remote.UpdateQuantity(ctx, productID, quantity)
	}

	guest, err := s.loadGuest(ctx, sess.CartKey)
	if err != nil {
		return err
	}
	if _, ok := guest.FindItem(productID); !ok {
		return nil
	}
	guest.UpdateQuantity(productID, quantity)
	return s.store.Save(ctx, sess.CartKey, guest.Items)
}

// Clear empties the active cart
func (s *Service) Clear(ctx context.Context, sess Session) error {
	if sess.Authenticated {
		if err := s.remote.Clear(ctx); err != nil {
			return err
		}
	} else {
		if err := s.store.Delete(ctx, sess.CartKey); err != nil {
			return err
		}
	}

	s.publish(ctx, cart.NewCartClearedEvent(sess.CartKey))
	return nil
}

// RemovePurchasedItems bulk-removes the entries of a just-placed order so
// items that were not part of it remain in the cart. Used by the
// authenticated, non-buy-now checkout flow
func (s *Service) RemovePurchasedItems(ctx context.Context, sess Session, productIDs []string) error {
	if len(productIDs) == 0 {
		return nil
	}

	if sess.Authenticated {
		remote, err := s.remote.Fetch(ctx)
		if err != nil {
			return err
		}
		for _, id := range productIDs {
			if _, ok := remote.FindByProductID(id); !ok {
				continue
			}
			if err := s.remote.RemoveItem(ctx, id); err != nil {
				return fmt.Errorf("remove purchased item %s: %w", id, err)
			}
		}
		return nil
	}

	guest, err := s.loadGuest(ctx, sess.CartKey)
	if err != nil {
		return err
	}
	for _, id := range productIDs {
		guest.RemoveItem(id)
	}
	return s.store.Save(ctx, sess.CartKey, guest.Items)
}

// TotalItemCount sums quantities across the active cart
func (s *Service) TotalItemCount(ctx context.Context, sess Session) (int, error) {
	items, err := s.Items(ctx, sess)
	if err != nil {
		return 0, err
	}
	return cart.TotalItemCount(items), nil
}

// TotalPrice sums price x quantity across the active cart, rendered with
// two fixed decimal places
func (s *Service) TotalPrice(ctx context.Context, sess Session) (string, error) {
	items, err := s.Items(ctx, sess)
	if err != nil {
		return "", err
	}
	return cart.TotalPrice(items).StringFixed(2), nil
}

// ItemsGroupedByStore partitions the active cart by store. Malformed
// entries are skipped and logged, never fatal to the grouping
func (s *Service) ItemsGroupedByStore(ctx context.Context, sess Session) ([]cart.StoreGroup, error) {
	items, err := s.Items(ctx, sess)
	if err != nil {
		return nil, err
	}

	groups, skipped := cart.GroupByStore(items)
	for _, item := range skipped {
		s.logger.Warn("skipping malformed cart entry in store grouping",
			zap.String("cart_key", sess.CartKey),
			zap.String("product_id", item.Product.ID),
			zap.String("class", cart.ClassifyItem(item).String()),
		)
	}
	return groups, nil
}

// MergeOnLogin reconciles the guest cart into the remote cart. It runs once
// per unauthenticated-to-authenticated transition (the caller detects the
// transition). Quantities of products present in both carts are summed with
// the remote quantity as the base; products only in the guest cart are
// added. All remote calls are issued concurrently and awaited jointly.
//
// The merge is best-effort and non-transactional: on any failure the guest
// cart stays persisted even though some calls may already have been applied,
// so a later merge can double-count those products. That matches the
// shipped behavior and is pinned by tests rather than fixed
func (s *Service) MergeOnLogin(ctx context.Context, sess Session) error {
	guestItems, err := s.store.Load(ctx, sess.CartKey)
	if err != nil {
		return err
	}
	if len(guestItems) == 0 {
		return nil
	}

	remote, err := s.remote.Fetch(ctx)
	if err != nil {
		return s.failMerge(ctx, sess, err)
	}

	// Plain errgroup, not WithContext: every product call must be
	// attempted even when a sibling fails
	var g errgroup.Group
	for _, item := range guestItems {
		existing, found := remote.FindByProductID(item.Product.ID)
		productID := item.Product.ID
		quantity := item.Quantity

		if found {
			merged := existing.Quantity + quantity
			g.Go(func() error {
				if err := s.remote.UpdateQuantity(ctx, productID, merged); err != nil {
					return fmt.Errorf("merge update %s: %w", productID, err)
				}
				return nil
			})
		} else {
			g.Go(func() error {
				if err := s.remote.AddItem(ctx, productID, quantity); err != nil {
					return fmt.Errorf("merge add %s: %w", productID, err)
				}
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return s.failMerge(ctx, sess, err)
	}

	if err := s.store.Delete(ctx, sess.CartKey); err != nil {
		// The remote cart already holds the merged items; a stale guest
		// cart only risks the documented double-count on a later merge
		s.logger.Warn("guest cart not cleared after merge",
			zap.String("cart_key", sess.CartKey),
			zap.Error(err),
		)
	}

	if _, err := s.remote.Fetch(ctx); err != nil {
		s.logger.Warn("remote mirror refresh after merge failed",
			zap.String("cart_key", sess.CartKey),
			zap.Error(err),
		)
	}

	s.publish(ctx, cart.NewCartMergedEvent(sess.CartKey, len(guestItems)))
	s.logger.Info("guest cart merged into account cart",
		zap.String("cart_key", sess.CartKey),
		zap.Int("item_count", len(guestItems)),
	)
	return nil
}

// failMerge reports a merge failure without clearing the guest cart
func (s *Service) failMerge(ctx context.Context, sess Session, cause error) error {
	s.logger.Error("cart merge failed",
		zap.String("cart_key", sess.CartKey),
		zap.Error(cause),
	)
	s.notifier.Publish(ctx, cart.Notification{
		Level:   cart.NotificationError,
		Message: "Some items could not be moved to your account cart",
	})
	s.publish(ctx, cart.NewCartMergeFailedEvent(sess.CartKey, cause.Error()))
	return fmt.Errorf("%w: %v", shared.ErrMergeFailed, cause)
}

func (s *Service) loadGuest(ctx context.Context, key string) (*cart.GuestCart, error) {
	items, err := s.store.Load(ctx, key)
	if err != nil {
		return nil, err
	}
	return &cart.GuestCart{Key: key, Items: items}, nil
}

func (s *Service) publish(ctx context.Context, event shared.DomainEvent) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, event); err != nil {
		s.logger.Warn("event publish failed",
			zap.String("event_type", event.EventType()),
			zap.Error(err),
		)
	}
}
