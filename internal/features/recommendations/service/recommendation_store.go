package service

import (
	"context"

	"order-console/internal/core/state"
	"order-console/internal/features/recommendations/domain"
	"order-console/internal/features/recommendations/ports"
)

// StoreName identifies the recommendation store in events and metrics.
const StoreName = "recommendations"

// RecommendationStore keeps the observable recommendation list.
type RecommendationStore struct {
	gateway ports.RecommendationGateway
	store   *state.Store[domain.Recommendation]
}

// NewRecommendationStore creates a RecommendationStore with an empty list.
func NewRecommendationStore(gateway ports.RecommendationGateway, opts ...state.Option) *RecommendationStore {
	return &RecommendationStore{
		gateway: gateway,
		store:   state.New[domain.Recommendation](StoreName, opts...),
	}
}

// State returns a snapshot of the current state.
func (s *RecommendationStore) State() state.Resource[domain.Recommendation] {
	return s.store.Snapshot()
}

// Subscribe streams state changes; call the returned func to stop.
func (s *RecommendationStore) Subscribe() (<-chan state.Resource[domain.Recommendation], func()) {
	return s.store.Subscribe()
}

// FetchRecommendations replaces the list with suggestions for customerID.
func (s *RecommendationStore) FetchRecommendations(ctx context.Context, customerID int64, orderHistory string) ([]domain.Recommendation, error) {
	return state.Execute(ctx, s.store,
		state.Operation{Name: "fetchRecommendations", Key: "list"},
		func(ctx context.Context) ([]domain.Recommendation, error) {
			return s.gateway.Recommend(ctx, customerID, orderHistory)
		},
		func(r *state.Resource[domain.Recommendation], recs []domain.Recommendation) {
			r.Items = append([]domain.Recommendation{}, recs...)
		},
	)
}

// ClearRecommendations empties the list.
func (s *RecommendationStore) ClearRecommendations() {
	s.store.Update(func(r *state.Resource[domain.Recommendation]) {
		r.Items = []domain.Recommendation{}
	})
}

// ClearError drops the recorded error.
func (s *RecommendationStore) ClearError() {
	s.store.ClearError()
}
