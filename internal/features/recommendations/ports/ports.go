package ports

import (
	"context"

	"order-console/internal/core/state"
	"order-console/internal/features/recommendations/domain"
)

// RecommendationGateway is the driven port to the remote recommendation API.
type RecommendationGateway interface {
	// Recommend returns suggestions for a customer. orderHistory is an optional free-form
	// hint forwarded to the recommender; it is omitted when empty.
	Recommend(ctx context.Context, customerID int64, orderHistory string) ([]domain.Recommendation, error)
}

// RecommendationService is the driving port used by the console and the CLI.
type RecommendationService interface {
	FetchRecommendations(ctx context.Context, customerID int64, orderHistory string) ([]domain.Recommendation, error)
	ClearRecommendations()
	ClearError()
	State() state.Resource[domain.Recommendation]
}
