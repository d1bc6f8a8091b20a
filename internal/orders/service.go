package orders

import (
	"context"
	"fmt"

	"github.com/bunnybot/storefront-api/internal/medusa"
)

type commerceOrders interface {
	GetOrders(ctx context.Context, token string) ([]medusa.Order, error)
	GetOrderByID(ctx context.Context, orderID, token string) (*medusa.Order, error)
}

// Service exposes the customer's order history as storefront views. The
// commerce service owns authorization; the customer token is passed through.
type Service interface {
	History(ctx context.Context, token string) ([]ListItem, error)
	Detail(ctx context.Context, orderID, token string) (*DetailView, error)
}

type service struct {
	commerce commerceOrders
}

func NewService(commerce commerceOrders) (Service, error) {
	if commerce == nil {
		return nil, fmt.Errorf("commerce client required")
	}
	return &service{commerce: commerce}, nil
}

func (s *service) History(ctx context.Context, token string) ([]ListItem, error) {
	records, err := s.commerce.GetOrders(ctx, token)
	if err != nil {
		return nil, err
	}
	items := make([]ListItem, 0, len(records))
	for _, record := range records {
		items = append(items, ToListItem(record))
	}
	return items, nil
}

func (s *service) Detail(ctx context.Context, orderID, token string) (*DetailView, error) {
	record, err := s.commerce.GetOrderByID(ctx, orderID, token)
	if err != nil {
		return nil, err
	}
	view := ToDetailView(*record)
	return &view, nil
}
