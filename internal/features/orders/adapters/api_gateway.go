package adapters

import (
	"context"
	"net/url"
	"strconv"

	"order-console/internal/core/apiclient"
	"order-console/internal/features/orders/domain"
)

// APIOrderGateway implements ports.OrderGateway over the order API.
type APIOrderGateway struct {
	client *apiclient.Client
}

// NewAPIOrderGateway creates a gateway using client.
func NewAPIOrderGateway(client *apiclient.Client) *APIOrderGateway {
	return &APIOrderGateway{client: client}
}

// ListOrders calls GET /api/orders?customerId={id}.
func (g *APIOrderGateway) ListOrders(ctx context.Context, customerID int64) ([]domain.Order, error) {
	q := url.Values{"customerId": {strconv.FormatInt(customerID, 10)}}
	orders, err := apiclient.Get[[]domain.Order](ctx, g.client, ordersPath, apiclient.WithQuery(q))
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, nil
}

// GetOrder calls GET /api/orders/{id}.
func (g *APIOrderGateway) GetOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	return g.single(apiclient.Get[domain.Order](ctx, g.client, orderPath(orderID)))
}

// CreateOrder calls POST /api/orders. The request is validated before sending.
func (g *APIOrderGateway) CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error) {
	return g.single(apiclient.Post[domain.Order](ctx, g.client, ordersPath, req))
}

// ConfirmOrder calls POST /api/orders/{id}/confirm.
func (g *APIOrderGateway) ConfirmOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	return g.transition(ctx, orderID, "confirm")
}

// CancelOrder calls POST /api/orders/{id}/cancel.
func (g *APIOrderGateway) CancelOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	return g.transition(ctx, orderID, "cancel")
}

// ShipOrder calls POST /api/orders/{id}/ship.
func (g *APIOrderGateway) ShipOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	return g.transition(ctx, orderID, "ship")
}

// DeliverOrder calls POST /api/orders/{id}/deliver.
func (g *APIOrderGateway) DeliverOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	return g.transition(ctx, orderID, "deliver")
}

func (g *APIOrderGateway) transition(ctx context.Context, orderID int64, action string) (*domain.Order, error) {
	return g.single(apiclient.Post[domain.Order](ctx, g.client, orderActionPath(orderID, action), nil))
}

func (g *APIOrderGateway) single(order domain.Order, err error) (*domain.Order, error) {
	if err != nil {
		return nil, err
	}
	return &order, nil
}
