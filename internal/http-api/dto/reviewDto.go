package dto

import (
	"time"

	"reviewhub/internal/http-api/models"
)

// CreateReviewDTO for creating a review. The author always comes from the
// authenticated caller, never from the payload.
type CreateReviewDTO struct {
	Text  string `json:"text" binding:"required"`
	Score *int   `json:"score" binding:"required,min=0,max=10"`
}

// UpdateReviewDTO for PATCH on a review (partial)
type UpdateReviewDTO struct {
	Text  *string `json:"text,omitempty"`
	Score *int    `json:"score,omitempty" binding:"omitempty,min=0,max=10"`
}

// ReviewResponse renders the author as a bare username
type ReviewResponse struct {
	ID      int64     `json:"id"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	Score   int       `json:"score"`
	PubDate time.Time `json:"pub_date"`
}

func FromModelToReviewResponse(review *models.Review) *ReviewResponse {
	return &ReviewResponse{
		ID:      review.ID,
		Text:    review.Text,
		Author:  review.Author.Username,
		Score:   review.Score,
		PubDate: review.PubDate,
	}
}
