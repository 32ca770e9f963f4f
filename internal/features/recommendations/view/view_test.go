package view

import (
	"testing"

	"order-console/internal/core/apierror"
	"order-console/internal/core/state"
	"order-console/internal/features/recommendations/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList(t *testing.T) {
	v := List(state.Resource[domain.Recommendation]{Items: []domain.Recommendation{
		{ProductID: 3, ProductName: "Kettle", Reason: "Bought tea", ConfidenceScore: 0.874},
		{ProductID: 4, ProductName: "Cups", Reason: "Bought a mug", ConfidenceScore: 0.5},
	}})

	assert.Equal(t, StatusReady, v.Status)
	require.Len(t, v.Recommendations, 2)
	assert.Equal(t, Card{Rank: 1, ProductID: 3, ProductName: "Kettle", Reason: "Bought tea", Confidence: "87%"}, v.Recommendations[0])
	assert.Equal(t, 2, v.Recommendations[1].Rank)
	assert.Equal(t, "50%", v.Recommendations[1].Confidence)
}

func TestList_Empty(t *testing.T) {
	v := List(state.Resource[domain.Recommendation]{Items: []domain.Recommendation{}})
	assert.Equal(t, StatusEmpty, v.Status)
	assert.Equal(t, EmptyMessage, v.Message)
}

func TestList_Error(t *testing.T) {
	v := List(state.Resource[domain.Recommendation]{
		Error:   &apierror.CanonicalError{Message: "Recommender unavailable"},
	})
	assert.Equal(t, StatusError, v.Status)
	assert.Equal(t, "Recommender unavailable", v.Message)
}

func TestList_Loading(t *testing.T) {
	v := List(state.Resource[domain.Recommendation]{Items: []domain.Recommendation{}, Loading: true})
	assert.Equal(t, StatusLoading, v.Status)
}
