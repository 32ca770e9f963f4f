package handler

import (
	"context"
	"net/http"
	"strconv"

	"order-console/internal/core/apierror"
	"order-console/internal/core/server"
	"order-console/internal/features/orders/domain"
	"order-console/internal/features/orders/ports"
	"order-console/internal/features/orders/view"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler serves the order screens of the console.
type OrderHandler struct {
	// service is the order store the screens render.
	service ports.OrderService
}

// NewOrderHandler creates a new instance of OrderHandler.
func NewOrderHandler(s ports.OrderService) *OrderHandler {
	return &OrderHandler{
		service: s,
	}
}

// Register mounts the order routes on r.
func (h *OrderHandler) Register(r fiber.Router) {
	r.Get("/orders", h.ListOrders)
	r.Post("/orders", h.CreateOrder)
	r.Delete("/orders/error", h.ClearError)
	r.Get("/orders/:id", h.GetOrder)
	r.Post("/orders/:id/confirm", h.ConfirmOrder)
	r.Post("/orders/:id/cancel", h.CancelOrder)
	r.Post("/orders/:id/ship", h.ShipOrder)
	r.Post("/orders/:id/deliver", h.DeliverOrder)
}

// ListOrders handles GET /orders.
// @Summary List customer orders
// @Description Loads the orders of a customer and renders the order list.
// @Tags Orders
// @Produce json
// @Param customerId query int true "Customer ID"
// @Success 200 {object} view.ListView
// @Failure 400 {object} server.ErrorResponse
// @Failure 502 {object} server.ErrorResponse
// @Router /orders [get]
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	customerID, err := strconv.ParseInt(c.Query("customerId"), 10, 64)
	if err != nil || customerID <= 0 {
		return server.BadRequest(c, "customerId must be a positive number",
			apierror.FieldError{Field: "customerId", Message: "must be a positive number", RejectedValue: c.Query("customerId")})
	}

	if _, err := h.service.FetchOrders(server.Context(c), customerID); err != nil {
		return server.Fail(c, err)
	}

	return c.Status(http.StatusOK).JSON(view.List(h.service.State()))
}

// GetOrder handles GET /orders/:id.
// @Summary Get order detail
// @Description Loads one order and renders the detail screen.
// @Tags Orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} view.DetailView
// @Failure 400 {object} server.ErrorResponse
// @Failure 404 {object} server.ErrorResponse
// @Router /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	orderID, ok := orderIDParam(c)
	if !ok {
		return invalidOrderID(c)
	}

	if _, err := h.service.FetchOrder(server.Context(c), orderID); err != nil {
		return server.Fail(c, err)
	}

	return c.Status(http.StatusOK).JSON(view.Detail(h.service.State()))
}

// CreateOrder handles POST /orders.
// @Summary Place an order
// @Description Validates and submits a new order; it is prepended to the order list.
// @Tags Orders
// @Accept json
// @Produce json
// @Param order body domain.CreateOrderRequest true "Order to place"
// @Success 201 {object} domain.Order
// @Failure 400 {object} server.ErrorResponse
// @Failure 500 {object} server.ErrorResponse
// @Router /orders [post]
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	var req domain.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return server.BadRequest(c, "Invalid request body")
	}

	order, err := h.service.CreateOrder(server.Context(c), req)
	if err != nil {
		return server.Fail(c, err)
	}

	return c.Status(http.StatusCreated).JSON(order)
}

// ConfirmOrder handles POST /orders/:id/confirm.
// @Summary Confirm an order
// @Tags Orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} domain.Order
// @Failure 400 {object} server.ErrorResponse
// @Router /orders/{id}/confirm [post]
func (h *OrderHandler) ConfirmOrder(c *fiber.Ctx) error {
	return h.transition(c, h.service.ConfirmOrder)
}

// CancelOrder handles POST /orders/:id/cancel.
// @Summary Cancel an order
// @Tags Orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} domain.Order
// @Failure 400 {object} server.ErrorResponse
// @Router /orders/{id}/cancel [post]
func (h *OrderHandler) CancelOrder(c *fiber.Ctx) error {
	return h.transition(c, h.service.CancelOrder)
}

// ShipOrder handles POST /orders/:id/ship.
// @Summary Mark an order as shipping
// @Tags Orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} domain.Order
// @Failure 400 {object} server.ErrorResponse
// @Router /orders/{id}/ship [post]
func (h *OrderHandler) ShipOrder(c *fiber.Ctx) error {
	return h.transition(c, h.service.ShipOrder)
}

// DeliverOrder handles POST /orders/:id/deliver.
// @Summary Mark an order as delivered
// @Tags Orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} domain.Order
// @Failure 400 {object} server.ErrorResponse
// @Router /orders/{id}/deliver [post]
func (h *OrderHandler) DeliverOrder(c *fiber.Ctx) error {
	return h.transition(c, h.service.DeliverOrder)
}

// ClearError handles DELETE /orders/error.
// @Summary Dismiss the order error
// @Tags Orders
// @Success 204
// @Router /orders/error [delete]
func (h *OrderHandler) ClearError(c *fiber.Ctx) error {
	h.service.ClearError()
	return c.SendStatus(http.StatusNoContent)
}

func (h *OrderHandler) transition(c *fiber.Ctx, call func(ctx context.Context, id int64) (*domain.Order, error)) error {
	orderID, ok := orderIDParam(c)
	if !ok {
		return invalidOrderID(c)
	}

	order, err := call(server.Context(c), orderID)
	if err != nil {
		return server.Fail(c, err)
	}

	return c.Status(http.StatusOK).JSON(order)
}

func orderIDParam(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	return id, err == nil && id > 0
}

func invalidOrderID(c *fiber.Ctx) error {
	return server.BadRequest(c, "Order ID must be a positive number",
		apierror.FieldError{Field: "id", Message: "must be a positive number", RejectedValue: c.Params("id")})
}
