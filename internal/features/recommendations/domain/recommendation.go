package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidConfidence is returned when a recommendation carries a score outside [0,1].
var ErrInvalidConfidence = errors.New("confidence score out of range")

// Recommendation is a product suggested for a customer.
type Recommendation struct {
	// ProductID identifies the suggested product.
	ProductID int64 `json:"productId"`
	// ProductName is the display name of the product.
	ProductName string `json:"productName"`
	// Reason explains why the product is suggested.
	Reason string `json:"reason"`
	// ConfidenceScore is the recommender's confidence, between 0 and 1.
	ConfidenceScore float64 `json:"confidenceScore"`
}

// Validate rejects a recommendation whose score is outside [0,1].
func (r Recommendation) Validate() error {
	if !(r.ConfidenceScore >= 0 && r.ConfidenceScore <= 1) {
		return fmt.Errorf("%w: product %d scored %g", ErrInvalidConfidence, r.ProductID, r.ConfidenceScore)
	}
	return nil
}
