package medusa

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/bunnybot/storefront-api/pkg/config"
	pkgerrors "github.com/bunnybot/storefront-api/pkg/errors"
	"github.com/bunnybot/storefront-api/pkg/logger"
)

// Client talks to the commerce service's store API.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *logger.Logger
}

// NewClient validates the configuration and builds a commerce-service client.
func NewClient(cfg config.MedusaConfig, logg *logger.Logger) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("medusa base url is required")
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  logg,
	}, nil
}

// GetProducts returns the full store product list.
func (c *Client) GetProducts(ctx context.Context) ([]Product, error) {
	var resp productsResponse
	if err := c.do(ctx, http.MethodGet, "/store/products", "", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Products, nil
}

// GetProductByID returns one product, or a not-found error.
func (c *Client) GetProductByID(ctx context.Context, id string) (*Product, error) {
	var resp productResponse
	if err := c.do(ctx, http.MethodGet, "/store/products/"+url.PathEscape(id), "", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Product, nil
}

// GetProductByHandle returns the product with the given handle, or a not-found error.
func (c *Client) GetProductByHandle(ctx context.Context, handle string) (*Product, error) {
	var resp productsResponse
	endpoint := "/store/products?handle=" + url.QueryEscape(handle)
	if err := c.do(ctx, http.MethodGet, endpoint, "", nil, &resp); err != nil {
		return nil, err
	}
	if len(resp.Products) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return &resp.Products[0], nil
}

// CreateCart starts a new empty cart.
func (c *Client) CreateCart(ctx context.Context) (*Cart, error) {
	var resp cartResponse
	if err := c.do(ctx, http.MethodPost, "/store/carts", "", map[string]any{}, &resp); err != nil {
		return nil, err
	}
	return &resp.Cart, nil
}

// GetCart returns the cart with the given id, or a not-found error.
func (c *Client) GetCart(ctx context.Context, cartID string) (*Cart, error) {
	var resp cartResponse
	if err := c.do(ctx, http.MethodGet, "/store/carts/"+url.PathEscape(cartID), "", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Cart, nil
}

// AddToCart appends or merges a variant line and returns the updated cart.
func (c *Client) AddToCart(ctx context.Context, cartID, variantID string, quantity int) (*Cart, error) {
	body := map[string]any{"variant_id": variantID, "quantity": quantity}
	var resp cartResponse
	endpoint := "/store/carts/" + url.PathEscape(cartID) + "/line-items"
	if err := c.do(ctx, http.MethodPost, endpoint, "", body, &resp); err != nil {
		return nil, err
	}
	return &resp.Cart, nil
}

// UpdateCartItem replaces the quantity of one line and returns the updated cart.
func (c *Client) UpdateCartItem(ctx context.Context, cartID, itemID string, quantity int) (*Cart, error) {
	body := map[string]any{"quantity": quantity}
	var resp cartResponse
	endpoint := "/store/carts/" + url.PathEscape(cartID) + "/line-items/" + url.PathEscape(itemID)
	if err := c.do(ctx, http.MethodPost, endpoint, "", body, &resp); err != nil {
		return nil, err
	}
	return &resp.Cart, nil
}

// RemoveFromCart deletes one line and returns the updated cart.
func (c *Client) RemoveFromCart(ctx context.Context, cartID, itemID string) (*Cart, error) {
	var resp cartResponse
	endpoint := "/store/carts/" + url.PathEscape(cartID) + "/line-items/" + url.PathEscape(itemID)
	if err := c.do(ctx, http.MethodDelete, endpoint, "", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Cart, nil
}

// Login authenticates a customer and returns the customer record.
// The commerce service sets its own session credentials; the storefront
// never mints tokens itself.
func (c *Client) Login(ctx context.Context, credentials LoginCredentials) (*Customer, error) {
	var resp customerResponse
	if err := c.do(ctx, http.MethodPost, "/store/auth", "", credentials, &resp); err != nil {
		return nil, err
	}
	return &resp.Customer, nil
}

// Register creates a customer account.
func (c *Client) Register(ctx context.Context, data RegisterData) (*Customer, error) {
	var resp customerResponse
	if err := c.do(ctx, http.MethodPost, "/store/customers", "", data, &resp); err != nil {
		return nil, err
	}
	return &resp.Customer, nil
}

// GetCustomer returns the customer for the supplied bearer token.
func (c *Client) GetCustomer(ctx context.Context, token string) (*Customer, error) {
	var resp customerResponse
	if err := c.do(ctx, http.MethodGet, "/store/auth", token, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Customer, nil
}

// Logout invalidates the commerce-service session.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodDelete, "/store/auth", token, nil, nil)
}

// GetOrders lists the authenticated customer's orders.
func (c *Client) GetOrders(ctx context.Context, token string) ([]Order, error) {
	var resp ordersResponse
	if err := c.do(ctx, http.MethodGet, "/store/customers/me/orders", token, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Orders, nil
}

// GetOrderByID returns one order, or a not-found error.
func (c *Client) GetOrderByID(ctx context.Context, orderID, token string) (*Order, error) {
	var resp orderResponse
	if err := c.do(ctx, http.MethodGet, "/store/orders/"+url.PathEscape(orderID), token, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Order, nil
}

// Ping verifies the commerce service is reachable.
func (c *Client) Ping(ctx context.Context) error {
	var resp productsResponse
	return c.do(ctx, http.MethodGet, "/store/products?limit=1", "", nil, &resp)
}

func (c *Client) do(ctx context.Context, method, endpoint, token string, body, dest any) error {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode medusa request")
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build medusa request")
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "call commerce service")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return pkgerrors.New(pkgerrors.CodeNotFound, "commerce resource not found")
	case resp.StatusCode == http.StatusUnauthorized:
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "commerce session rejected")
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return pkgerrors.New(pkgerrors.CodeDependency,
			fmt.Sprintf("commerce service returned %d", resp.StatusCode))
	}

	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode commerce service response")
	}
	return nil
}
