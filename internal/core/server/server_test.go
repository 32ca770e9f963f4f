package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"order-console/internal/core/apierror"
	"order-console/internal/core/config"
	"order-console/internal/core/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNew verifies that New creates a Server with the correct configuration.
func TestNew(t *testing.T) {
	cfg := &config.AppConfig{ServerPort: 8080}

	logger.Init("development", "debug")
	srv := New(cfg, nil)

	require.NotNil(t, srv)
	assert.NotNil(t, srv.App)
	assert.Equal(t, cfg, srv.cfg)
	assert.True(t, srv.App.Config().Immutable)
}

// TestNew_Metrics verifies that /metrics is mounted only when enabled.
func TestNew_Metrics(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "order_console_up 1\n")
	})

	srv := New(&config.AppConfig{MetricsEnabled: true}, metrics)
	resp, err := srv.App.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "order_console_up 1")

	srv = New(&config.AppConfig{MetricsEnabled: false}, metrics)
	resp, err = srv.App.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// TestNew_CorrelationHeader verifies that every console response carries a request id.
func TestNew_CorrelationHeader(t *testing.T) {
	srv := New(&config.AppConfig{}, nil)
	srv.App.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString(RequestID(c))
	})

	resp, err := srv.App.Test(httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.NoError(t, err)

	id := resp.Header.Get("X-Correlation-ID")
	assert.NotEmpty(t, id)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, id, string(body))
}

// TestServer_Run_Error verifies that Run returns an error when binding fails (e.g., privileged port).
func TestServer_Run_Error(t *testing.T) {
	cfg := &config.AppConfig{ServerPort: 1}
	logger.Init("development", "error")

	srv := New(cfg, nil)

	errCh := make(chan error)
	go func() {
		errCh <- srv.Run()
	}()

	select {
	case err := <-errCh:
		assert.Error(t, err)
	case <-time.After(1 * time.Second):
		_ = srv.Shutdown()
		t.Log("Server unexpectedly started or timed out on Error test")
	}
}

func decodeError(t *testing.T, resp *http.Response) ErrorResponse {
	t.Helper()
	var out ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// TestFail verifies the status mapping of failures.
func TestFail(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{
			name:    "network error maps to bad gateway",
			err:     &apierror.NetworkError{Err: errors.New("refused")},
			status:  http.StatusBadGateway,
			code:    apierror.CodeNetwork,
			message: "Unable to connect to the server",
		},
		{
			name: "structured error keeps its status",
			err: &apierror.StructuredError{StatusCode: 404, Body: apierror.CanonicalError{
				Status: 404, Code: "ORDER_NOT_FOUND", Message: "Not found",
			}},
			status:  http.StatusNotFound,
			code:    "ORDER_NOT_FOUND",
			message: "Not found",
		},
		{
			name:    "unknown error",
			err:     errors.New("boom"),
			status:  http.StatusInternalServerError,
			code:    apierror.CodeUnknown,
			message: "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/orders", func(c *fiber.Ctx) error { return Fail(c, tt.err) })

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/orders", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			body := decodeError(t, resp)
			assert.Equal(t, tt.code, body.Error.Code)
			assert.Equal(t, tt.message, body.Message)
		})
	}
}

// TestFail_LocationIsConsolePath verifies that client-side errors report the console path.
func TestFail_LocationIsConsolePath(t *testing.T) {
	app := fiber.New()
	app.Get("/orders/:id", func(c *fiber.Ctx) error {
		return Fail(c, &apierror.NetworkError{Err: errors.New("refused")})
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/orders/5", nil))
	require.NoError(t, err)
	assert.Equal(t, "/orders/5", decodeError(t, resp).Error.Path)
}

// TestBadRequest verifies console input errors.
func TestBadRequest(t *testing.T) {
	app := fiber.New()
	app.Get("/orders/:id", func(c *fiber.Ctx) error {
		return BadRequest(c, "Invalid order id", apierror.FieldError{Field: "id", Message: "must be a number"})
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/orders/abc", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeError(t, resp)
	assert.Equal(t, CodeInvalidInput, body.Error.Code)
	assert.Equal(t, "id: must be a number", body.Message)
	assert.Equal(t, "unknown", body.RequestID)
}
