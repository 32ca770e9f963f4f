package ports

import (
	"context"

	"order-console/internal/core/state"
	"order-console/internal/features/orders/domain"
)

// OrderGateway is the driven port to the remote order API.
type OrderGateway interface {
	// ListOrders returns the orders of a customer, never nil.
	ListOrders(ctx context.Context, customerID int64) ([]domain.Order, error)
	// GetOrder returns a single order.
	GetOrder(ctx context.Context, orderID int64) (*domain.Order, error)
	// CreateOrder places a new order.
	CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error)
	// ConfirmOrder, CancelOrder, ShipOrder and DeliverOrder ask the server to move the
	// order to its next status and return the updated order.
	ConfirmOrder(ctx context.Context, orderID int64) (*domain.Order, error)
	CancelOrder(ctx context.Context, orderID int64) (*domain.Order, error)
	ShipOrder(ctx context.Context, orderID int64) (*domain.Order, error)
	DeliverOrder(ctx context.Context, orderID int64) (*domain.Order, error)
}

// OrderService is the driving port used by the console and the CLI.
type OrderService interface {
	FetchOrders(ctx context.Context, customerID int64) ([]domain.Order, error)
	FetchOrder(ctx context.Context, orderID int64) (*domain.Order, error)
	CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error)
	ConfirmOrder(ctx context.Context, orderID int64) (*domain.Order, error)
	CancelOrder(ctx context.Context, orderID int64) (*domain.Order, error)
	ShipOrder(ctx context.Context, orderID int64) (*domain.Order, error)
	DeliverOrder(ctx context.Context, orderID int64) (*domain.Order, error)
	ClearError()
	State() state.Resource[domain.Order]
}
