package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"order-console/internal/core/apiclient"
	"order-console/internal/core/apierror"
	"order-console/internal/core/server"
	"order-console/internal/core/state"
	"order-console/internal/features/orders/adapters"
	"order-console/internal/features/orders/domain"
	"order-console/internal/features/orders/service"
	"order-console/internal/features/orders/view"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockOrderService is a mock implementation of ports.OrderService
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) FetchOrders(ctx context.Context, customerID int64) ([]domain.Order, error) {
	args := m.Called(ctx, customerID)
	orders, _ := args.Get(0).([]domain.Order)
	return orders, args.Error(1)
}

func (m *MockOrderService) FetchOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	return m.order(m.Called(ctx, orderID))
}

func (m *MockOrderService) CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error) {
	return m.order(m.Called(ctx, req))
}

func (m *MockOrderService) ConfirmOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	return m.order(m.Called(ctx, orderID))
}

func (m *MockOrderService) CancelOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	return m.order(m.Called(ctx, orderID))
}

func (m *MockOrderService) ShipOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	return m.order(m.Called(ctx, orderID))
}

func (m *MockOrderService) DeliverOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	return m.order(m.Called(ctx, orderID))
}

func (m *MockOrderService) ClearError() {
	m.Called()
}

func (m *MockOrderService) State() state.Resource[domain.Order] {
	return m.Called().Get(0).(state.Resource[domain.Order])
}

func (m *MockOrderService) order(args mock.Arguments) (*domain.Order, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func setupApp(svc *MockOrderService) *fiber.App {
	app := fiber.New()
	NewOrderHandler(svc).Register(app)
	return app
}

// TestOrderHandler_ListOrders_Empty runs the whole stack against an API with no orders.
func TestOrderHandler_ListOrders_Empty(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "100", r.URL.Query().Get("customerId"))
		_, _ = io.WriteString(w, `[]`)
	}))
	defer api.Close()

	client, err := apiclient.New(apiclient.Config{BaseURL: api.URL})
	require.NoError(t, err)
	store := service.NewOrderStore(adapters.NewAPIOrderGateway(client))

	app := fiber.New()
	NewOrderHandler(store).Register(app)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/orders?customerId=100", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got view.ListView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, view.StatusEmpty, got.Status)
	assert.Equal(t, "No orders found", got.Message)
	assert.Empty(t, got.Orders)

	st := store.State()
	assert.Empty(t, st.Items)
	assert.False(t, st.Loading)
	assert.Nil(t, st.Error)
}

// TestOrderHandler_ListOrders_APIDown verifies that an unreachable API answers 502.
func TestOrderHandler_ListOrders_APIDown(t *testing.T) {
	svc := new(MockOrderService)
	svc.On("FetchOrders", mock.Anything, int64(100)).Return(nil, &apierror.Error{
		Canonical: apierror.CanonicalError{Status: 0, Code: apierror.CodeNetwork, Message: "Unable to connect to the server"},
	})

	resp, err := setupApp(svc).Test(httptest.NewRequest(http.MethodGet, "/orders?customerId=100", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	var body server.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Unable to connect to the server", body.Message)
	assert.Equal(t, apierror.CodeNetwork, body.Error.Code)
}

// TestOrderHandler_StoredErrorPathSurvivesLaterRequests verifies that the path recorded in the
// store's error is not rewritten when the server reuses its request buffers.
func TestOrderHandler_StoredErrorPathSurvivesLaterRequests(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer api.Close()

	client, err := apiclient.New(apiclient.Config{BaseURL: api.URL})
	require.NoError(t, err)
	store := service.NewOrderStore(adapters.NewAPIOrderGateway(client))

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	NewOrderHandler(store).Register(app)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	defer func() { _ = app.Shutdown() }()

	base := fmt.Sprintf("http://%s", ln.Addr().String())
	get := func(path string) {
		resp, err := http.Get(base + path)
		require.NoError(t, err)
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}

	get("/orders?customerId=1")
	require.NotNil(t, store.State().Error)
	assert.Equal(t, "/orders", store.State().Error.Path)

	for i := 0; i < 50; i++ {
		get("/zzzzzz")
	}
	assert.Equal(t, "/orders", store.State().Error.Path)
}

func TestOrderHandler_ListOrders_InvalidCustomer(t *testing.T) {
	svc := new(MockOrderService)

	for _, target := range []string{"/orders", "/orders?customerId=abc", "/orders?customerId=-1"} {
		resp, err := setupApp(svc).Test(httptest.NewRequest(http.MethodGet, target, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, target)
	}
	svc.AssertNotCalled(t, "FetchOrders", mock.Anything, mock.Anything)
}

func TestOrderHandler_GetOrder(t *testing.T) {
	o := domain.Order{ID: 5, OrderNumber: "ORD-5", Status: domain.OrderStatusPending}

	t.Run("Success", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("FetchOrder", mock.Anything, int64(5)).Return(&o, nil)
		svc.On("State").Return(state.Resource[domain.Order]{Items: []domain.Order{}, Current: &o})

		resp, err := setupApp(svc).Test(httptest.NewRequest(http.MethodGet, "/orders/5", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var got view.DetailView
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, view.StatusReady, got.Status)
		assert.Equal(t, "ORD-5", got.Order.OrderNumber)
	})

	t.Run("NotFound", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("FetchOrder", mock.Anything, int64(9)).Return(nil, &apierror.StructuredError{
			StatusCode: 404,
			Body:       apierror.CanonicalError{Status: 404, Code: "ORDER_NOT_FOUND", Message: "Not found"},
		})

		resp, err := setupApp(svc).Test(httptest.NewRequest(http.MethodGet, "/orders/9", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("InvalidID", func(t *testing.T) {
		svc := new(MockOrderService)
		resp, err := setupApp(svc).Test(httptest.NewRequest(http.MethodGet, "/orders/abc", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestOrderHandler_CreateOrder(t *testing.T) {
	req := domain.CreateOrderRequest{
		CustomerID:   100,
		CustomerName: "Kim",
		Items:        []domain.CreateOrderItemRequest{{ProductID: 1, ProductName: "Mug", Quantity: 1, UnitPrice: 9.99}},
	}

	t.Run("Success", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("CreateOrder", mock.Anything, req).Return(&domain.Order{ID: 11, Status: domain.OrderStatusPending}, nil)

		body, _ := json.Marshal(req)
		httpReq := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(body))
		httpReq.Header.Set("Content-Type", "application/json")

		resp, err := setupApp(svc).Test(httpReq)
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		svc.AssertExpectations(t)
	})

	t.Run("ValidationFailure", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("CreateOrder", mock.Anything, mock.Anything).Return(nil, &apierror.Error{
			Canonical: apierror.CanonicalError{
				Status:      500,
				Code:        apierror.CodeRequest,
				Message:     "Validation failed",
				FieldErrors: []apierror.FieldError{{Field: "customerName", Message: "is required"}},
			},
		})

		httpReq := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader([]byte(`{"customerId":100}`)))
		httpReq.Header.Set("Content-Type", "application/json")

		resp, err := setupApp(svc).Test(httpReq)
		require.NoError(t, err)

		var body server.ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "customerName: is required", body.Message)
	})

	t.Run("InvalidBody", func(t *testing.T) {
		svc := new(MockOrderService)
		httpReq := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader([]byte(`{`)))
		httpReq.Header.Set("Content-Type", "application/json")

		resp, err := setupApp(svc).Test(httpReq)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestOrderHandler_Transitions(t *testing.T) {
	routes := map[string]string{
		"confirm": "ConfirmOrder",
		"cancel":  "CancelOrder",
		"ship":    "ShipOrder",
		"deliver": "DeliverOrder",
	}

	for action, method := range routes {
		t.Run(action, func(t *testing.T) {
			svc := new(MockOrderService)
			svc.On(method, mock.Anything, int64(5)).Return(&domain.Order{ID: 5}, nil)

			resp, err := setupApp(svc).Test(httptest.NewRequest(http.MethodPost, "/orders/5/"+action, nil))
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			svc.AssertExpectations(t)
		})
	}

	t.Run("Rejected", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("CancelOrder", mock.Anything, int64(5)).Return(nil, errors.New("boom"))

		resp, err := setupApp(svc).Test(httptest.NewRequest(http.MethodPost, "/orders/5/cancel", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})
}

func TestOrderHandler_ClearError(t *testing.T) {
	svc := new(MockOrderService)
	svc.On("ClearError").Return()

	resp, err := setupApp(svc).Test(httptest.NewRequest(http.MethodDelete, "/orders/error", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	svc.AssertExpectations(t)
}
