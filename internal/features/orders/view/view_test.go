package view

import (
	"testing"
	"time"

	"order-console/internal/core/apierror"
	"order-console/internal/core/state"
	"order-console/internal/features/orders/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOrder() domain.Order {
	return domain.Order{
		ID:           5,
		OrderNumber:  "ORD-5",
		CustomerName: "Kim",
		Status:       domain.OrderStatusShipping,
		TotalAmount:  59.97,
		OrderItems: []domain.OrderItem{
			{ProductName: "Mug", Quantity: 3, UnitPrice: 19.99, TotalPrice: 59.97},
		},
		CreatedAt: domain.Timestamp{Time: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)},
	}
}

func TestList_Empty(t *testing.T) {
	v := List(state.Resource[domain.Order]{Items: []domain.Order{}, Phase: state.PhaseSuccess})

	assert.Equal(t, StatusEmpty, v.Status)
	assert.Equal(t, "No orders found", v.Message)
	assert.NotNil(t, v.Orders)
	assert.Empty(t, v.Orders)
}

func TestList_Loading(t *testing.T) {
	v := List(state.Resource[domain.Order]{Items: []domain.Order{}, Loading: true})
	assert.Equal(t, StatusLoading, v.Status)
}

func TestList_Ready(t *testing.T) {
	v := List(state.Resource[domain.Order]{Items: []domain.Order{sampleOrder()}})

	assert.Equal(t, StatusReady, v.Status)
	require.Len(t, v.Orders, 1)
	assert.Equal(t, OrderCard{
		ID:           5,
		OrderNumber:  "ORD-5",
		CustomerName: "Kim",
		Status:       "SHIPPING",
		StatusColor:  "#9370DB",
		Total:        "$59.97",
		ItemCount:    1,
		CreatedDate:  "2026-03-01",
	}, v.Orders[0])
}

func TestList_Error(t *testing.T) {
	v := List(state.Resource[domain.Order]{
		Items: []domain.Order{sampleOrder()},
		Error: &apierror.CanonicalError{Code: apierror.CodeNetwork, Message: "Unable to connect to the server"},
	})

	assert.Equal(t, StatusError, v.Status)
	assert.Equal(t, "Unable to connect to the server", v.Message)
	assert.Len(t, v.Orders, 1)
}

func TestDetail(t *testing.T) {
	o := sampleOrder()
	v := Detail(state.Resource[domain.Order]{Current: &o})

	assert.Equal(t, StatusReady, v.Status)
	require.NotNil(t, v.Order)
	assert.Equal(t, "ORD-5", v.Order.OrderNumber)
	assert.Equal(t, []ItemLine{{ProductName: "Mug", Quantity: 3, UnitPrice: "$19.99", TotalPrice: "$59.97"}}, v.Items)

	none := Detail(state.Resource[domain.Order]{})
	assert.Equal(t, StatusEmpty, none.Status)
	assert.Nil(t, none.Order)
}

func TestDetail_FieldErrors(t *testing.T) {
	v := Detail(state.Resource[domain.Order]{Error: &apierror.CanonicalError{
		Message:     "Validation failed",
		FieldErrors: []apierror.FieldError{{Field: "customerName", Message: "required"}},
	}})

	assert.Equal(t, StatusError, v.Status)
	assert.Equal(t, "customerName: required", v.Message)
}
