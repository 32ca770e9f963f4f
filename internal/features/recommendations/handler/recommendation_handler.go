package handler

import (
	"net/http"
	"strconv"

	"order-console/internal/core/apierror"
	"order-console/internal/core/server"
	"order-console/internal/features/recommendations/ports"
	"order-console/internal/features/recommendations/view"

	"github.com/gofiber/fiber/v2"
)

// RecommendationHandler serves the recommendation screen.
type RecommendationHandler struct {
	service ports.RecommendationService
}

// NewRecommendationHandler creates a new RecommendationHandler.
func NewRecommendationHandler(s ports.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{service: s}
}

// Register mounts the recommendation routes on r.
func (h *RecommendationHandler) Register(r fiber.Router) {
	r.Get("/recommendations", h.GetRecommendations)
	r.Delete("/recommendations", h.ClearRecommendations)
}

// GetRecommendations handles GET /recommendations.
// @Summary Recommend products
// @Description Loads product recommendations for a customer, optionally hinted by order history.
// @Tags Recommendations
// @Produce json
// @Param customerId query int true "Customer ID"
// @Param orderHistory query string false "Order history hint"
// @Success 200 {object} view.ListView
// @Failure 400 {object} server.ErrorResponse
// @Failure 502 {object} server.ErrorResponse
// @Router /recommendations [get]
func (h *RecommendationHandler) GetRecommendations(c *fiber.Ctx) error {
	customerID, err := strconv.ParseInt(c.Query("customerId"), 10, 64)
	if err != nil || customerID <= 0 {
		return server.BadRequest(c, "customerId must be a positive number",
			apierror.FieldError{Field: "customerId", Message: "must be a positive number", RejectedValue: c.Query("customerId")})
	}

	if _, err := h.service.FetchRecommendations(server.Context(c), customerID, c.Query("orderHistory")); err != nil {
		return server.Fail(c, err)
	}

	return c.Status(http.StatusOK).JSON(view.List(h.service.State()))
}

// ClearRecommendations handles DELETE /recommendations.
// @Summary Clear recommendations
// @Description Empties the recommendation list and dismisses its error.
// @Tags Recommendations
// @Success 204
// @Router /recommendations [delete]
func (h *RecommendationHandler) ClearRecommendations(c *fiber.Ctx) error {
	h.service.ClearRecommendations()
	h.service.ClearError()
	return c.SendStatus(http.StatusNoContent)
}
