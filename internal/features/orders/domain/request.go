package domain

import "order-console/internal/core/validation"

// CreateOrderRequest is the payload for placing an order.
type CreateOrderRequest struct {
	// CustomerID identifies the customer placing the order.
	CustomerID int64 `json:"customerId" validate:"gt=0"`
	// CustomerName is the display name of the customer.
	CustomerName string `json:"customerName" validate:"notblank,max=100"`
	// Items are the lines to order; at least one is required.
	Items []CreateOrderItemRequest `json:"items" validate:"min=1,dive"`
}

// CreateOrderItemRequest is one line of a CreateOrderRequest.
type CreateOrderItemRequest struct {
	ProductID   int64   `json:"productId" validate:"gt=0"`
	ProductName string  `json:"productName" validate:"notblank,max=200"`
	Quantity    int     `json:"quantity" validate:"gt=0"`
	UnitPrice   float64 `json:"unitPrice" validate:"gte=0.01"`
}

// Validate checks the request before it is sent.
func (r CreateOrderRequest) Validate() error {
	return validation.Struct(r)
}
