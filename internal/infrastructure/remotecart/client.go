package remotecart

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/infrastructure/auth"
)

// maxResponseSize is the maximum allowed response size from the platform (10MB)
const maxResponseSize = 10 * 1024 * 1024

// Common errors
var (
	ErrRequestFailed     = errors.New("remotecart: request failed")
	ErrInvalidResponse   = errors.New("remotecart: invalid response")
	ErrMissingCredential = errors.New("remotecart: session credential missing from context")
)

// GraphQL documents for the five cart operations. The platform returns the
// updated cart shape from every operation
const (
	queryFetchCart = `query { cart { id items { id quantity product { id name price imageUrl store { id name } } } } }`

	mutationAddItem = `mutation AddToCart($productId: ID!, $quantity: Int!) {
  cart: addToCart(productId: $productId, quantity: $quantity) { id items { id quantity product { id name price imageUrl store { id name } } } }
}`

	mutationRemoveItem = `mutation RemoveFromCart($productId: ID!) {
  cart: removeFromCart(productId: $productId) { id items { id quantity product { id name price imageUrl store { id name } } } }
}`

	mutationUpdateQuantity = `mutation UpdateCartItem($productId: ID!, $quantity: Int!) {
  cart: updateCartItem(productId: $productId, quantity: $quantity) { id items { id quantity product { id name price imageUrl store { id name } } } }
}`

	mutationClearCart = `mutation { cart: clearCart { id items { id quantity product { id name price imageUrl store { id name } } } } }`
)

// Client implements cart.RemoteService against the commerce platform's
// GraphQL endpoint. The per-user session credential is read from the
// request context and sent as a bearer token
type Client struct {
	config     *Config
	httpClient *http.Client
}

// NewClient creates a new remote cart client
func NewClient(config *Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
	}, nil
}

// Fetch retrieves the current per-user cart
func (c *Client) Fetch(ctx context.Context) (cart.RemoteCart, error) {
	envelope, err := c.do(ctx, queryFetchCart, nil)
	if err != nil {
		return cart.RemoteCart{}, err
	}
	if envelope.Data.Cart == nil {
		// A user without a server-side cart yet gets an empty mirror
		return cart.RemoteCart{}, nil
	}
	return envelope.Data.Cart.toDomain(), nil
}

// AddItem adds a product to the remote cart
func (c *Client) AddItem(ctx context.Context, productID string, quantity int) error {
	_, err := c.do(ctx, mutationAddItem, map[string]any{
		"productId": productID,
		"quantity":  quantity,
	})
	return err
}

// RemoveItem removes a product from the remote cart
func (c *Client) RemoveItem(ctx context.Context, productID string) error {
	_, err := c.do(ctx, mutationRemoveItem, map[string]any{
		"productId": productID,
	})
	return err
}

// UpdateQuantity sets the quantity of a product in the remote cart
func (c *Client) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	_, err := c.do(ctx, mutationUpdateQuantity, map[string]any{
		"productId": productID,
		"quantity":  quantity,
	})
	return err
}

// Clear empties the remote cart
func (c *Client) Clear(ctx context.Context) error {
	_, err := c.do(ctx, mutationClearCart, nil)
	return err
}

// do executes a GraphQL call and decodes the shared cart envelope
func (c *Client) do(ctx context.Context, query string, variables map[string]any) (*cartEnvelope, error) {
	token, ok := auth.TokenFromContext(ctx)
	if !ok {
		return nil, ErrMissingCredential
	}

	body, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrRequestFailed, resp.StatusCode)
	}

	var envelope cartEnvelope
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if envelope.hasErrors() {
		return nil, fmt.Errorf("%w: %s", ErrRequestFailed, envelope.firstErrorMessage())
	}

	return &envelope, nil
}

// Ensure Client implements cart.RemoteService
var _ cart.RemoteService = (*Client)(nil)
