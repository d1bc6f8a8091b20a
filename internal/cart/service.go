package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/bunnybot/storefront-api/internal/medusa"
	pkgerrors "github.com/bunnybot/storefront-api/pkg/errors"
	"github.com/bunnybot/storefront-api/pkg/logger"
	"github.com/bunnybot/storefront-api/pkg/money"
)

type commerceCarts interface {
	CreateCart(ctx context.Context) (*medusa.Cart, error)
	GetCart(ctx context.Context, cartID string) (*medusa.Cart, error)
	AddToCart(ctx context.Context, cartID, variantID string, quantity int) (*medusa.Cart, error)
	UpdateCartItem(ctx context.Context, cartID, itemID string, quantity int) (*medusa.Cart, error)
	RemoveFromCart(ctx context.Context, cartID, itemID string) (*medusa.Cart, error)
}

type sessionStore interface {
	BindCartSession(ctx context.Context, sessionID, cartID string, ttl time.Duration) error
	LookupCartSession(ctx context.Context, sessionID string) (string, error)
}

// View is the storefront cart shape. All money fields are minor units.
type View struct {
	CartID        string `json:"cartId"`
	Items         []Line `json:"items"`
	Subtotal      int64  `json:"subtotal"`
	TaxTotal      int64  `json:"taxTotal"`
	ShippingTotal int64  `json:"shippingTotal"`
	Total         int64  `json:"total"`
	TotalDisplay  string `json:"totalDisplay"`
	ItemCount     int    `json:"itemCount"`
}

// Service binds browser sessions to commerce carts and proxies cart
// mutations to the commerce service.
type Service interface {
	Resolve(ctx context.Context, sessionID string) (*View, error)
	AddItem(ctx context.Context, sessionID, variantID string, quantity int) (*View, error)
	UpdateItem(ctx context.Context, sessionID, itemID string, quantity int) (*View, error)
	RemoveItem(ctx context.Context, sessionID, itemID string) (*View, error)
}

type service struct {
	commerce   commerceCarts
	sessions   sessionStore
	sessionTTL time.Duration
	logg       *logger.Logger
}

// NewService builds a cart service over the commerce client and the
// session store.
func NewService(commerce commerceCarts, sessions sessionStore, sessionTTL time.Duration, logg *logger.Logger) (Service, error) {
	if commerce == nil {
		return nil, fmt.Errorf("commerce client required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session store required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if sessionTTL <= 0 {
		sessionTTL = 30 * 24 * time.Hour
	}
	return &service{commerce: commerce, sessions: sessions, sessionTTL: sessionTTL, logg: logg}, nil
}

// Resolve returns the cart bound to the session, creating and binding a
// fresh cart when none exists or the bound cart is gone.
func (s *service) Resolve(ctx context.Context, sessionID string) (*View, error) {
	record, err := s.ensureCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return toView(record), nil
}

// AddItem adds a variant to the session's cart, creating the cart first
// when the session has none.
func (s *service) AddItem(ctx context.Context, sessionID, variantID string, quantity int) (*View, error) {
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be a positive integer")
	}

	record, err := s.ensureCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	updated, err := s.commerce.AddToCart(ctx, record.ID, variantID, quantity)
	if err != nil {
		return nil, err
	}
	return toView(updated), nil
}

// UpdateItem sets the quantity of an existing cart line.
func (s *service) UpdateItem(ctx context.Context, sessionID, itemID string, quantity int) (*View, error) {
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be a positive integer")
	}

	cartID, err := s.boundCartID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	updated, err := s.commerce.UpdateCartItem(ctx, cartID, itemID, quantity)
	if err != nil {
		return nil, err
	}
	return toView(updated), nil
}

// RemoveItem drops a line from the session's cart.
func (s *service) RemoveItem(ctx context.Context, sessionID, itemID string) (*View, error) {
	cartID, err := s.boundCartID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	updated, err := s.commerce.RemoveFromCart(ctx, cartID, itemID)
	if err != nil {
		return nil, err
	}
	return toView(updated), nil
}

func (s *service) ensureCart(ctx context.Context, sessionID string) (*medusa.Cart, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart session id required")
	}

	cartID, err := s.sessions.LookupCartSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if cartID != "" {
		record, err := s.commerce.GetCart(ctx, cartID)
		if err == nil {
			return record, nil
		}
		// A stale binding to a deleted cart is recoverable; rebind below.
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
			return nil, err
		}
		s.logg.Warn(s.logg.WithCartID(ctx, cartID), "bound cart no longer exists, creating a new one")
	}

	record, err := s.commerce.CreateCart(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.BindCartSession(ctx, sessionID, record.ID, s.sessionTTL); err != nil {
		return nil, err
	}
	s.logg.Info(s.logg.WithCartID(ctx, record.ID), "created cart for session")
	return record, nil
}

func (s *service) boundCartID(ctx context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "cart session id required")
	}
	cartID, err := s.sessions.LookupCartSession(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if cartID == "" {
		return "", pkgerrors.New(pkgerrors.CodeNotFound, "no cart bound to session")
	}
	return cartID, nil
}

func toView(record *medusa.Cart) *View {
	items := make([]Line, 0, len(record.Items))
	for _, item := range record.Items {
		items = append(items, toLine(item))
	}
	return &View{
		CartID:        record.ID,
		Items:         items,
		Subtotal:      record.Subtotal,
		TaxTotal:      record.TaxTotal,
		ShippingTotal: record.ShippingTotal,
		Total:         record.Total,
		TotalDisplay:  money.FormatCNY(record.Total),
		ItemCount:     ItemCount(items),
	}
}

func toLine(item medusa.CartItem) Line {
	line := Line{
		ID:          item.ID,
		VariantID:   item.VariantID,
		ProductName: item.Title,
		Quantity:    item.Quantity,
		UnitPrice:   item.UnitPrice,
		Subtotal:    int64(item.Quantity) * item.UnitPrice,
	}
	if item.Variant != nil {
		line.VariantTitle = item.Variant.Title
	}
	if item.Thumbnail != nil {
		line.Thumbnail = *item.Thumbnail
	}
	return line
}
