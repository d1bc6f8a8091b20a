package orders

import (
	"strings"

	"github.com/bunnybot/storefront-api/internal/medusa"
	"github.com/bunnybot/storefront-api/pkg/money"
)

// ListItem is the compact order shape for the account order history.
type ListItem struct {
	ID        string `json:"id"`
	DisplayID int    `json:"displayId"`
	Status    string `json:"status"`
	Total     int64  `json:"total"`
	ItemCount int    `json:"itemCount"`
	CreatedAt string `json:"createdAt"`
}

// DetailView is the full order page shape.
type DetailView struct {
	ID                string           `json:"id"`
	DisplayID         int              `json:"displayId"`
	Status            string           `json:"status"`
	FulfillmentStatus string           `json:"fulfillmentStatus"`
	PaymentStatus     string           `json:"paymentStatus"`
	Items             []ItemView       `json:"items"`
	Subtotal          int64            `json:"subtotal"`
	TaxTotal          int64            `json:"taxTotal"`
	ShippingTotal     int64            `json:"shippingTotal"`
	Total             int64            `json:"total"`
	TotalDisplay      string           `json:"totalDisplay"`
	CreatedAt         string           `json:"createdAt"`
	ShippingAddress   *ShippingAddress `json:"shippingAddress"`
	TrackingNumbers   []string         `json:"trackingNumbers"`
}

type ItemView struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"`
	Total     int64  `json:"total"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// ShippingAddress is the flattened display address.
type ShippingAddress struct {
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address"`
	City    string `json:"city"`
}

// ToListItem builds the history row for an order. ItemCount is the summed
// line quantity, not the number of lines.
func ToListItem(order medusa.Order) ListItem {
	count := 0
	for _, item := range order.Items {
		count += item.Quantity
	}
	return ListItem{
		ID:        order.ID,
		DisplayID: order.DisplayID,
		Status:    order.Status,
		Total:     order.Total,
		ItemCount: count,
		CreatedAt: order.CreatedAt,
	}
}

// ToDetailView builds the order page view. TrackingNumbers is flattened
// across fulfillments and is always a slice, never nil.
func ToDetailView(order medusa.Order) DetailView {
	items := make([]ItemView, 0, len(order.Items))
	for _, item := range order.Items {
		view := ItemView{
			ID:        item.ID,
			Title:     item.Title,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Total:     item.Total,
		}
		if item.Thumbnail != nil {
			view.Thumbnail = *item.Thumbnail
		}
		items = append(items, view)
	}

	tracking := make([]string, 0)
	for _, fulfillment := range order.Fulfillments {
		tracking = append(tracking, fulfillment.TrackingNumbers...)
	}

	return DetailView{
		ID:                order.ID,
		DisplayID:         order.DisplayID,
		Status:            order.Status,
		FulfillmentStatus: order.FulfillmentStatus,
		PaymentStatus:     order.PaymentStatus,
		Items:             items,
		Subtotal:          order.Subtotal,
		TaxTotal:          order.TaxTotal,
		ShippingTotal:     order.ShippingTotal,
		Total:             order.Total,
		TotalDisplay:      money.FormatCNY(order.Total),
		CreatedAt:         order.CreatedAt,
		ShippingAddress:   flattenAddress(order.ShippingAddress),
		TrackingNumbers:   tracking,
	}
}

func flattenAddress(address *medusa.Address) *ShippingAddress {
	if address == nil {
		return nil
	}
	flat := &ShippingAddress{
		Name:    strings.TrimSpace(address.FirstName + " " + address.LastName),
		Address: address.Address1,
		City:    address.City,
	}
	if address.Address2 != nil && *address.Address2 != "" {
		flat.Address = flat.Address + " " + *address.Address2
	}
	if address.Phone != nil {
		flat.Phone = *address.Phone
	}
	return flat
}
