package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	cartapp "github.com/storefront/backend/internal/application/cart"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// CartService is the application-layer surface the handler depends on
type CartService interface {
	Items(ctx context.Context, sess cartapp.Session) ([]cart.CartItem, error)
	AddItem(ctx context.Context, sess cartapp.Session, product cart.ProductRef, quantity int) error
	RemoveItem(ctx context.Context, sess cartapp.Session, productID string) error
	UpdateQuantity(ctx context.Context, sess cartapp.Session, productID string, quantity int) error
	Clear(ctx context.Context, sess cartapp.Session) error
	RemovePurchasedItems(ctx context.Context, sess cartapp.Session, productIDs []string) error
	ItemsGroupedByStore(ctx context.Context, sess cartapp.Session) ([]cart.StoreGroup, error)
	MergeOnLogin(ctx context.Context, sess cartapp.Session) error
}

// CartHandler exposes the unified cart over HTTP
type CartHandler struct {
	BaseHandler
	service CartService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(service CartService) *CartHandler {
	return &CartHandler{service: service}
}

// RegisterRoutes mounts the cart endpoints on a router group
func (h *CartHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/cart", h.GetCart)
	group.GET("/cart/grouped", h.GetGroupedCart)
	group.POST("/cart/items", h.AddItem)
	group.PATCH("/cart/items/:productId", h.UpdateQuantity)
	group.DELETE("/cart/items/:productId", h.RemoveItem)
	group.DELETE("/cart", h.ClearCart)
	group.POST("/cart/merge", h.MergeCart)
	group.POST("/cart/purchased", h.RemovePurchased)
}

// GetCart returns the active cart snapshot with derived totals
func (h *CartHandler) GetCart(c *gin.Context) {
	sess := middleware.GetSession(c)

	items, err := h.service.Items(c.Request.Context(), sess)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, newCartResponse(items))
}

// GetGroupedCart returns the active cart partitioned by store
func (h *CartHandler) GetGroupedCart(c *gin.Context) {
	sess := middleware.GetSession(c)
	ctx := c.Request.Context()

	groups, err := h.service.ItemsGroupedByStore(ctx, sess)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	items, err := h.service.Items(ctx, sess)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, GroupedCartResponse{
		Groups:     groups,
		TotalPrice: cart.TotalPrice(items).StringFixed(2),
	})
}

// AddItem adds a product to the active cart and returns the refreshed
// snapshot
func (h *CartHandler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	product, err := req.Product.toProductRef()
	if err != nil {
		h.BadRequest(c, "Invalid product price")
		return
	}

	sess := middleware.GetSession(c)
	ctx := c.Request.Context()

	if err := h.service.AddItem(ctx, sess, product, req.Quantity); err != nil {
		h.HandleError(c, err)
		return
	}

	items, err := h.service.Items(ctx, sess)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, newCartResponse(items))
}

// UpdateQuantity sets the quantity of a cart entry; zero removes it
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	sess := middleware.GetSession(c)
	ctx := c.Request.Context()
	productID := c.Param("productId")

	if err := h.service.UpdateQuantity(ctx, sess, productID, req.Quantity); err != nil {
		h.HandleError(c, err)
		return
	}

	items, err := h.service.Items(ctx, sess)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, newCartResponse(items))
}

// RemoveItem removes a product from the active cart
func (h *CartHandler) RemoveItem(c *gin.Context) {
	sess := middleware.GetSession(c)
	ctx := c.Request.Context()

	if err := h.service.RemoveItem(ctx, sess, c.Param("productId")); err != nil {
		h.HandleError(c, err)
		return
	}

	items, err := h.service.Items(ctx, sess)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, newCartResponse(items))
}

// ClearCart empties the active cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	sess := middleware.GetSession(c)

	if err := h.service.Clear(c.Request.Context(), sess); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, newCartResponse(nil))
}

// MergeCart triggers the guest cart reconciliation explicitly, e.g. from
// the login flow. The merge is best-effort: a failure leaves the guest cart
// intact and is reported through the notification channel, so the response
// stays 200 with the failure announcement attached
func (h *CartHandler) MergeCart(c *gin.Context) {
	sess := middleware.GetSession(c)
	if !sess.Authenticated {
		h.Unauthorized(c, "Sign in to merge your cart")
		return
	}

	ctx := c.Request.Context()
	if err := h.service.MergeOnLogin(ctx, sess); err != nil {
		// non-fatal: the guest cart stays persisted and the error
		// notification rides the envelope
		h.Success(c, newCartResponse(nil))
		return
	}

	items, err := h.service.Items(ctx, sess)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, newCartResponse(items))
}

// RemovePurchased bulk-removes the products of a just-placed order
func (h *CartHandler) RemovePurchased(c *gin.Context) {
	var req RemovePurchasedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	sess := middleware.GetSession(c)
	ctx := c.Request.Context()

	if err := h.service.RemovePurchasedItems(ctx, sess, req.ProductIDs); err != nil {
		h.HandleError(c, err)
		return
	}

	items, err := h.service.Items(ctx, sess)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, newCartResponse(items))
}
