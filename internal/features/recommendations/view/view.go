// Package view renders recommendation state for the console and the CLI.
package view

import (
	"fmt"
	"math"

	"order-console/internal/core/apierror"
	"order-console/internal/core/state"
	"order-console/internal/features/recommendations/domain"
)

// EmptyMessage is shown when there is nothing to recommend.
const EmptyMessage = "No AI recommendations available at the moment."

// Status is the render state of the list.
type Status string

const (
	StatusLoading Status = "loading"
	StatusEmpty   Status = "empty"
	StatusReady   Status = "ready"
	StatusError   Status = "error"
)

// Card is one ranked recommendation.
type Card struct {
	Rank        int    `json:"rank"`
	ProductID   int64  `json:"productId"`
	ProductName string `json:"productName"`
	Reason      string `json:"reason"`
	// Confidence is the score as a whole percentage, e.g. "87%".
	Confidence string `json:"confidence"`
}

// ListView is the recommendation screen.
type ListView struct {
	Status          Status                   `json:"status"`
	Message         string                   `json:"message,omitempty"`
	Recommendations []Card                   `json:"recommendations"`
	Error           *apierror.CanonicalError `json:"error,omitempty"`
}

// List renders the recommendation list, ranked in server order.
func List(r state.Resource[domain.Recommendation]) ListView {
	v := ListView{Recommendations: make([]Card, 0, len(r.Items))}
	for i, rec := range r.Items {
		v.Recommendations = append(v.Recommendations, Card{
			Rank:        i + 1,
			ProductID:   rec.ProductID,
			ProductName: rec.ProductName,
			Reason:      rec.Reason,
			Confidence:  fmt.Sprintf("%.0f%%", math.Round(rec.ConfidenceScore*100)),
		})
	}

	switch {
	case r.Error != nil:
		v.Status = StatusError
		v.Message = apierror.FormatForDisplay(*r.Error)
		v.Error = r.Error
	case r.Loading:
		v.Status = StatusLoading
	case len(r.Items) == 0:
		v.Status = StatusEmpty
		v.Message = EmptyMessage
	default:
		v.Status = StatusReady
	}
	return v
}
