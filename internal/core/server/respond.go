package server

import (
	"context"
	"net/http"
	"time"

	"order-console/internal/core/apierror"
	"order-console/internal/core/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
)

// CodeInvalidInput marks console input rejected before any API call.
const CodeInvalidInput = "INVALID_INPUT"

// ErrorResponse is the body of a failed console request.
type ErrorResponse struct {
	// Message is the text to show to the user.
	Message string `json:"message"`
	// Error is the canonical error behind the message.
	Error apierror.CanonicalError `json:"error"`
	// RequestID is the console request identifier, for support.
	RequestID string `json:"requestId"`
}

// Context returns the request context carrying the console path as the UI location.
// The path is copied: stores keep it in recorded errors after the request buffer is reused.
func Context(c *fiber.Ctx) context.Context {
	return apierror.WithLocation(c.UserContext(), utils.CopyString(c.Path()))
}

// RequestID returns the id set by the requestid middleware.
func RequestID(c *fiber.Ctx) string {
	id, ok := c.Locals("requestid").(string)
	if !ok {
		return "unknown"
	}
	return id
}

// Fail writes err as an ErrorResponse. The status is the canonical status, or 502
// when the API could not be reached.
func Fail(c *fiber.Ctx, err error) error {
	return write(c, apierror.Normalize(Context(c), err))
}

// BadRequest answers 400 for console input that never reached the API.
func BadRequest(c *fiber.Ctx, message string, fields ...apierror.FieldError) error {
	return write(c, apierror.CanonicalError{
		Timestamp:   time.Now().UTC().Format(apierror.TimestampLayout),
		Status:      http.StatusBadRequest,
		Label:       "Bad Request",
		Code:        CodeInvalidInput,
		Message:     message,
		Path:        utils.CopyString(c.Path()),
		FieldErrors: fields,
	})
}

func write(c *fiber.Ctx, canonical apierror.CanonicalError) error {
	status := canonical.Status
	if status == 0 {
		status = http.StatusBadGateway
	}

	requestID := RequestID(c)
	logger.Get().Warn("Console request failed",
		zap.String("path", c.Path()),
		zap.String("request_id", requestID),
		zap.String("code", canonical.Code),
		zap.String("correlation_id", canonical.CorrelationID),
		zap.Int("status", status),
	)

	return c.Status(status).JSON(ErrorResponse{
		Message:   apierror.FormatForDisplay(canonical),
		Error:     canonical,
		RequestID: requestID,
	})
}
