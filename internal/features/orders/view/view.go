// Package view turns order state into the render-ready models the console and CLI print.
package view

import (
	"fmt"

	"order-console/internal/core/apierror"
	"order-console/internal/core/state"
	"order-console/internal/features/orders/domain"
)

// EmptyMessage is shown when a customer has no orders.
const EmptyMessage = "No orders found"

// Status is the render state of a view.
type Status string

const (
	StatusLoading Status = "loading"
	StatusEmpty   Status = "empty"
	StatusReady   Status = "ready"
	StatusError   Status = "error"
)

// OrderCard is one row of the order list.
type OrderCard struct {
	ID           int64  `json:"id"`
	OrderNumber  string `json:"orderNumber"`
	CustomerName string `json:"customerName"`
	Status       string `json:"status"`
	StatusColor  string `json:"statusColor"`
	Total        string `json:"total"`
	ItemCount    int    `json:"itemCount"`
	CreatedDate  string `json:"createdDate"`
}

// ListView is the order list screen.
type ListView struct {
	Status  Status                   `json:"status"`
	Message string                   `json:"message,omitempty"`
	Orders  []OrderCard              `json:"orders"`
	Error   *apierror.CanonicalError `json:"error,omitempty"`
}

// ItemLine is one product line of an order detail.
type ItemLine struct {
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unitPrice"`
	TotalPrice  string `json:"totalPrice"`
}

// DetailView is the order detail screen.
type DetailView struct {
	Status  Status                   `json:"status"`
	Message string                   `json:"message,omitempty"`
	Order   *OrderCard               `json:"order,omitempty"`
	Items   []ItemLine               `json:"items,omitempty"`
	Error   *apierror.CanonicalError `json:"error,omitempty"`
}

// List renders the order list. A recorded error wins over the other states; the
// orders loaded before the error are still listed.
func List(r state.Resource[domain.Order]) ListView {
	v := ListView{Orders: make([]OrderCard, 0, len(r.Items))}
	for _, o := range r.Items {
		v.Orders = append(v.Orders, card(o))
	}

	switch {
	case r.Error != nil:
		v.Status = StatusError
		v.Message = apierror.FormatForDisplay(*r.Error)
		v.Error = r.Error
	case r.Loading:
		v.Status = StatusLoading
	case len(r.Items) == 0:
		v.Status = StatusEmpty
		v.Message = EmptyMessage
	default:
		v.Status = StatusReady
	}
	return v
}

// Detail renders the current order.
func Detail(r state.Resource[domain.Order]) DetailView {
	var v DetailView
	switch {
	case r.Error != nil:
		v.Status = StatusError
		v.Message = apierror.FormatForDisplay(*r.Error)
		v.Error = r.Error
	case r.Loading:
		v.Status = StatusLoading
	case r.Current == nil:
		v.Status = StatusEmpty
		v.Message = "Order not selected"
	default:
		v.Status = StatusReady
	}

	if r.Current != nil {
		c := card(*r.Current)
		v.Order = &c
		for _, it := range r.Current.OrderItems {
			v.Items = append(v.Items, ItemLine{
				ProductName: it.ProductName,
				Quantity:    it.Quantity,
				UnitPrice:   money(it.UnitPrice),
				TotalPrice:  money(it.TotalPrice),
			})
		}
	}
	return v
}

func card(o domain.Order) OrderCard {
	c := OrderCard{
		ID:           o.ID,
		OrderNumber:  o.OrderNumber,
		CustomerName: o.CustomerName,
		Status:       string(o.Status),
		StatusColor:  o.Status.Color(),
		Total:        money(o.TotalAmount),
		ItemCount:    len(o.OrderItems),
	}
	if !o.CreatedAt.IsZero() {
		c.CreatedDate = o.CreatedAt.Format("2006-01-02")
	}
	return c
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
