package remotecart

import (
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/cart"
)

// graphqlRequest is the wire form of a GraphQL call
type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// graphqlError is a single entry of the GraphQL errors array
type graphqlError struct {
	Message string `json:"message"`
}

// cartEnvelope is the response envelope shared by all cart operations: the
// API returns the updated cart shape after each query or mutation
type cartEnvelope struct {
	Data struct {
		Cart *cartPayload `json:"cart"`
	} `json:"data"`
	Errors []graphqlError `json:"errors,omitempty"`
}

// hasErrors reports whether the platform rejected the call
func (e *cartEnvelope) hasErrors() bool {
	return len(e.Errors) > 0
}

// firstErrorMessage returns the first error message, if any
func (e *cartEnvelope) firstErrorMessage() string {
	if len(e.Errors) == 0 {
		return ""
	}
	return e.Errors[0].Message
}

type cartPayload struct {
	ID    string            `json:"id"`
	Items []cartItemPayload `json:"items"`
}

type cartItemPayload struct {
	ID       string         `json:"id"`
	Quantity int            `json:"quantity"`
	Product  productPayload `json:"product"`
}

type productPayload struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Price    string        `json:"price"`
	ImageURL string        `json:"imageUrl"`
	Store    *storePayload `json:"store"`
}

type storePayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// toDomain maps the wire cart into the domain mirror. Prices that fail to
// parse become zero rather than failing the whole cart; the grouping layer
// already tolerates imperfect entries
func (p *cartPayload) toDomain() cart.RemoteCart {
	remote := cart.RemoteCart{
		ID:    p.ID,
		Items: make([]cart.RemoteItem, 0, len(p.Items)),
	}

	for _, item := range p.Items {
		price, err := decimal.NewFromString(item.Product.Price)
		if err != nil {
			price = decimal.Zero
		}

		product := cart.ProductRef{
			ID:       item.Product.ID,
			Name:     item.Product.Name,
			Price:    price,
			ImageURL: item.Product.ImageURL,
		}
		if item.Product.Store != nil {
			product.Store = &cart.StoreRef{
				ID:   item.Product.Store.ID,
				Name: item.Product.Store.Name,
			}
		}

		remote.Items = append(remote.Items, cart.RemoteItem{
			ID:       item.ID,
			Quantity: item.Quantity,
			Product:  product,
		})
	}

	return remote
}
