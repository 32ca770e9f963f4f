package service

import (
	"context"
	"fmt"

	"order-console/internal/core/state"
	"order-console/internal/features/orders/domain"
	"order-console/internal/features/orders/ports"
)

// StoreName identifies the order store in events and metrics.
const StoreName = "orders"

// OrderStore keeps the observable order state and runs order operations against it.
type OrderStore struct {
	// gateway is the remote order API.
	gateway ports.OrderGateway
	// store holds the order list, the selected order, loading and error.
	store *state.Store[domain.Order]
}

// NewOrderStore creates an OrderStore with an empty order list.
func NewOrderStore(gateway ports.OrderGateway, opts ...state.Option) *OrderStore {
	return &OrderStore{
		gateway: gateway,
		store:   state.New[domain.Order](StoreName, opts...),
	}
}

// State returns a snapshot of the current state.
func (s *OrderStore) State() state.Resource[domain.Order] {
	return s.store.Snapshot()
}

// Subscribe streams state changes; call the returned func to stop.
func (s *OrderStore) Subscribe() (<-chan state.Resource[domain.Order], func()) {
	return s.store.Subscribe()
}

// ClearError drops the recorded error.
func (s *OrderStore) ClearError() {
	s.store.ClearError()
}

// FetchOrders replaces the order list with the orders of customerID.
func (s *OrderStore) FetchOrders(ctx context.Context, customerID int64) ([]domain.Order, error) {
	return state.Execute(ctx, s.store,
		state.Operation{Name: "fetchOrders", Key: "list"},
		func(ctx context.Context) ([]domain.Order, error) {
			return s.gateway.ListOrders(ctx, customerID)
		},
		func(r *state.Resource[domain.Order], orders []domain.Order) {
			r.Items = append([]domain.Order{}, orders...)
		},
	)
}

// FetchOrder loads one order as the current order.
func (s *OrderStore) FetchOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	return state.Execute(ctx, s.store,
		state.Operation{Name: "fetchOrder", Key: "detail"},
		func(ctx context.Context) (*domain.Order, error) {
			return s.gateway.GetOrder(ctx, orderID)
		},
		func(r *state.Resource[domain.Order], order *domain.Order) {
			if order != nil {
				cur := *order
				r.Current = &cur
			}
		},
	)
}

// CreateOrder places an order and prepends it to the list.
func (s *OrderStore) CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error) {
	return state.Execute(ctx, s.store,
		state.Operation{Name: "createOrder"},
		func(ctx context.Context) (*domain.Order, error) {
			return s.gateway.CreateOrder(ctx, req)
		},
		func(r *state.Resource[domain.Order], order *domain.Order) {
			if order != nil {
				r.Items = append([]domain.Order{*order}, r.Items...)
			}
		},
	)
}

// ConfirmOrder confirms orderID and replaces it in the list and as current.
func (s *OrderStore) ConfirmOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	return s.transition(ctx, "confirmOrder", orderID, s.gateway.ConfirmOrder)
}

// CancelOrder cancels orderID and replaces it in the list and as current.
func (s *OrderStore) CancelOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	return s.transition(ctx, "cancelOrder", orderID, s.gateway.CancelOrder)
}

// ShipOrder marks orderID as shipping and replaces it in the list and as current.
func (s *OrderStore) ShipOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	return s.transition(ctx, "shipOrder", orderID, s.gateway.ShipOrder)
}

// DeliverOrder marks orderID as delivered and replaces it in the list and as current.
func (s *OrderStore) DeliverOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	return s.transition(ctx, "deliverOrder", orderID, s.gateway.DeliverOrder)
}

func (s *OrderStore) transition(
	ctx context.Context,
	name string,
	orderID int64,
	call func(context.Context, int64) (*domain.Order, error),
) (*domain.Order, error) {
	return state.Execute(ctx, s.store,
		state.Operation{Name: name, Key: fmt.Sprintf("order:%d", orderID)},
		func(ctx context.Context) (*domain.Order, error) {
			return call(ctx, orderID)
		},
		func(r *state.Resource[domain.Order], order *domain.Order) {
			if order != nil {
				replaceOrder(r, orderID, *order)
			}
		},
	)
}

// replaceOrder swaps the entry with id in the list, and the current order if it matches.
func replaceOrder(r *state.Resource[domain.Order], id int64, order domain.Order) {
	items := make([]domain.Order, len(r.Items))
	for i, o := range r.Items {
		if o.ID == id {
			items[i] = order
			continue
		}
		items[i] = o
	}
	r.Items = items

	if r.Current != nil && r.Current.ID == id {
		cur := order
		r.Current = &cur
	}
}
