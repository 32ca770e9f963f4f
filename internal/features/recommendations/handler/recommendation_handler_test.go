package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"order-console/internal/core/apierror"
	"order-console/internal/core/server"
	"order-console/internal/core/state"
	"order-console/internal/features/recommendations/domain"
	"order-console/internal/features/recommendations/view"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRecommendationService is a mock implementation of ports.RecommendationService
type MockRecommendationService struct {
	mock.Mock
}

func (m *MockRecommendationService) FetchRecommendations(ctx context.Context, customerID int64, orderHistory string) ([]domain.Recommendation, error) {
	args := m.Called(ctx, customerID, orderHistory)
	recs, _ := args.Get(0).([]domain.Recommendation)
	return recs, args.Error(1)
}

func (m *MockRecommendationService) ClearRecommendations() { m.Called() }

func (m *MockRecommendationService) ClearError() { m.Called() }

func (m *MockRecommendationService) State() state.Resource[domain.Recommendation] {
	return m.Called().Get(0).(state.Resource[domain.Recommendation])
}

func setupApp(svc *MockRecommendationService) *fiber.App {
	app := fiber.New()
	NewRecommendationHandler(svc).Register(app)
	return app
}

func TestRecommendationHandler_GetRecommendations(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		recs := []domain.Recommendation{{ProductID: 3, ProductName: "Kettle", ConfidenceScore: 0.9}}
		svc := new(MockRecommendationService)
		svc.On("FetchRecommendations", mock.Anything, int64(100), "tea").Return(recs, nil)
		svc.On("State").Return(state.Resource[domain.Recommendation]{Items: recs})

		resp, err := setupApp(svc).Test(httptest.NewRequest(http.MethodGet, "/recommendations?customerId=100&orderHistory=tea", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var got view.ListView
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		require.Len(t, got.Recommendations, 1)
		assert.Equal(t, "90%", got.Recommendations[0].Confidence)
	})

	t.Run("Failure", func(t *testing.T) {
		svc := new(MockRecommendationService)
		svc.On("FetchRecommendations", mock.Anything, int64(100), "").Return(nil, &apierror.Error{
			Canonical: apierror.CanonicalError{Status: 503, Code: "RECOMMENDER_UNAVAILABLE", Message: "Recommender unavailable"},
		})

		resp, err := setupApp(svc).Test(httptest.NewRequest(http.MethodGet, "/recommendations?customerId=100", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		var body server.ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "Recommender unavailable", body.Message)
	})

	t.Run("InvalidCustomer", func(t *testing.T) {
		svc := new(MockRecommendationService)
		resp, err := setupApp(svc).Test(httptest.NewRequest(http.MethodGet, "/recommendations?customerId=x", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		svc.AssertNotCalled(t, "FetchRecommendations", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestRecommendationHandler_Clear(t *testing.T) {
	svc := new(MockRecommendationService)
	svc.On("ClearRecommendations").Return()
	svc.On("ClearError").Return()

	resp, err := setupApp(svc).Test(httptest.NewRequest(http.MethodDelete, "/recommendations", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	svc.AssertExpectations(t)
}
