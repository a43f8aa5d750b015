package models

import (
	"time"

	"bakery-service/apperrors"
)

const (
	MinRating = 1
	MaxRating = 5
)

type FeedbackRecord struct {
	ID          int       `json:"id"`
	Author      string    `json:"author"`
	Description string    `json:"description"`
	Rating      int       `json:"rating"`
	Image       string    `json:"image,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (f *FeedbackRecord) Validate() error {
	if f.Rating < MinRating || f.Rating > MaxRating {
		return apperrors.Validation("rating must be between %d and %d", MinRating, MaxRating)
	}
	return nil
}
