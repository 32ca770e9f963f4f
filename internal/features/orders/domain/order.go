package domain

// OrderStatus represents the current state of an order.
// Transitions are decided by the server; the client only displays them.
type OrderStatus string

const (
	// OrderStatusPending indicates the order has been placed and awaits confirmation.
	OrderStatusPending OrderStatus = "PENDING"
	// OrderStatusConfirmed indicates the order has been accepted.
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	// OrderStatusShipping indicates the order has been handed to the carrier.
	OrderStatusShipping OrderStatus = "SHIPPING"
	// OrderStatusDelivered indicates the order reached the customer.
	OrderStatusDelivered OrderStatus = "DELIVERED"
	// OrderStatusCancelled indicates the order was cancelled before shipping.
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// Color returns the badge color used to render the status.
func (s OrderStatus) Color() string {
	switch s {
	case OrderStatusPending:
		return "#FFA500"
	case OrderStatusConfirmed:
		return "#4169E1"
	case OrderStatusShipping:
		return "#9370DB"
	case OrderStatusDelivered:
		return "#32CD32"
	case OrderStatusCancelled:
		return "#DC143C"
	default:
		return "#808080"
	}
}

// Order represents a customer order as returned by the order API.
type Order struct {
	// ID is the unique identifier for the order.
	ID int64 `json:"id"`
	// OrderNumber is the human-readable order reference.
	OrderNumber string `json:"orderNumber"`
	// CustomerID identifies the customer who placed the order.
	CustomerID int64 `json:"customerId"`
	// CustomerName is the display name of the customer.
	CustomerName string `json:"customerName"`
	// Status is the current state of the order.
	Status OrderStatus `json:"status"`
	// TotalAmount is the sum of all item totals.
	TotalAmount float64 `json:"totalAmount"`
	// OrderItems contains the products included in the order.
	OrderItems []OrderItem `json:"orderItems"`
	// CreatedAt is when the order was placed.
	CreatedAt Timestamp `json:"createdAt"`
	// UpdatedAt is when the order last changed.
	UpdatedAt Timestamp `json:"updatedAt"`
}

// OrderItem represents an individual line within an order.
type OrderItem struct {
	// ID is the unique identifier of the line.
	ID int64 `json:"id"`
	// ProductID identifies the product.
	ProductID int64 `json:"productId"`
	// ProductName is the product name at the time of purchase.
	ProductName string `json:"productName"`
	// Quantity is the number of units purchased.
	Quantity int `json:"quantity"`
	// UnitPrice is the price of a single unit.
	UnitPrice float64 `json:"unitPrice"`
	// TotalPrice is Quantity times UnitPrice, as computed by the server.
	TotalPrice float64 `json:"totalPrice"`
}
