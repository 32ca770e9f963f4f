// Package handler exposes the console session: login with issued tokens, logout,
// and the flags a browser polls to know when to return to the login screen.
package handler

import (
	"context"
	"errors"
	"net/http"

	"order-console/internal/core/apierror"
	"order-console/internal/core/auth"
	"order-console/internal/core/server"

	"github.com/gofiber/fiber/v2"
)

// Session is the part of auth.Session the console needs.
type Session interface {
	Login(ctx context.Context, t auth.Tokens) error
	Logout(ctx context.Context) error
	Authenticated(ctx context.Context) (bool, error)
	IsInvalidated() bool
}

// Status is the body of GET /session.
type Status struct {
	Authenticated bool `json:"authenticated"`
	// Invalidated is true after the API rejected the credentials with a 401.
	Invalidated bool `json:"invalidated"`
}

// SessionHandler serves the session routes.
type SessionHandler struct {
	session Session
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(s Session) *SessionHandler {
	return &SessionHandler{session: s}
}

// Register mounts the session routes on r.
func (h *SessionHandler) Register(r fiber.Router) {
	r.Get("/session", h.GetSession)
	r.Post("/session", h.Login)
	r.Delete("/session", h.Logout)
}

// GetSession handles GET /session.
// @Summary Session status
// @Description Reports whether credentials are stored and whether the API invalidated them.
// @Tags Session
// @Produce json
// @Success 200 {object} Status
// @Router /session [get]
func (h *SessionHandler) GetSession(c *fiber.Ctx) error {
	ok, err := h.session.Authenticated(c.UserContext())
	if err != nil {
		return server.Fail(c, err)
	}
	return c.JSON(Status{Authenticated: ok, Invalidated: h.session.IsInvalidated()})
}

// Login handles POST /session.
// @Summary Log in
// @Description Stores the tokens issued by the identity provider.
// @Tags Session
// @Accept json
// @Param tokens body auth.Tokens true "Issued tokens"
// @Success 204
// @Failure 400 {object} server.ErrorResponse
// @Router /session [post]
func (h *SessionHandler) Login(c *fiber.Ctx) error {
	var t auth.Tokens
	if err := c.BodyParser(&t); err != nil {
		return server.BadRequest(c, "Invalid request body")
	}

	if err := h.session.Login(c.UserContext(), t); err != nil {
		if errors.Is(err, auth.ErrEmptyToken) {
			return server.BadRequest(c, "accessToken is required",
				apierror.FieldError{Field: "accessToken", Message: "is required"})
		}
		return server.Fail(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// Logout handles DELETE /session.
// @Summary Log out
// @Tags Session
// @Success 204
// @Router /session [delete]
func (h *SessionHandler) Logout(c *fiber.Ctx) error {
	if err := h.session.Logout(c.UserContext()); err != nil {
		return server.Fail(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}
