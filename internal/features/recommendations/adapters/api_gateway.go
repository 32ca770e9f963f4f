package adapters

import (
	"context"
	"net/url"
	"strconv"

	"order-console/internal/core/apiclient"
	"order-console/internal/features/recommendations/domain"
)

const recommendationsPath = "/api/recommendations"

// APIRecommendationGateway implements ports.RecommendationGateway over the recommendation API.
type APIRecommendationGateway struct {
	client *apiclient.Client
}

// NewAPIRecommendationGateway creates a gateway using client.
func NewAPIRecommendationGateway(client *apiclient.Client) *APIRecommendationGateway {
	return &APIRecommendationGateway{client: client}
}

// Recommend calls GET /api/recommendations?customerId={id}[&orderHistory={h}] and rejects
// responses with out-of-range confidence scores.
func (g *APIRecommendationGateway) Recommend(ctx context.Context, customerID int64, orderHistory string) ([]domain.Recommendation, error) {
	q := url.Values{"customerId": {strconv.FormatInt(customerID, 10)}}
	if orderHistory != "" {
		q.Set("orderHistory", orderHistory)
	}

	recs, err := apiclient.Get[[]domain.Recommendation](ctx, g.client, recommendationsPath, apiclient.WithQuery(q))
	if err != nil {
		return nil, err
	}

	for _, r := range recs {
		if err := r.Validate(); err != nil {
			return nil, err
		}
	}
	if recs == nil {
		recs = []domain.Recommendation{}
	}
	return recs, nil
}
