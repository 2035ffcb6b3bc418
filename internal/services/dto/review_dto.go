package dto

import (
	"time"

	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/models"
)

type CreateReviewRequest struct {
	HireID  string `json:"hire_id" validate:"required,uuid"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"omitempty,max=2000"`
}

type CreateGuestReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"omitempty,max=2000"`
}

type CreateClientReviewRequest struct {
	HireID  string `json:"hire_id" validate:"required,uuid"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"omitempty,max=2000"`
}

type ReviewResponse struct {
	ID             string    `json:"id"`
	HireID         string    `json:"hire_id"`
	ProfessionalID string    `json:"professional_id"`
	ReviewerID     *string   `json:"reviewer_id,omitempty"`
	ReviewerName   string    `json:"reviewer_name,omitempty"`
	Rating         int       `json:"rating"`
	Comment        string    `json:"comment,omitempty"`
	IsGuestReview  bool      `json:"is_guest_review"`
	CreatedAt      time.Time `json:"created_at"`
}

type ClientReviewResponse struct {
	ID             string    `json:"id"`
	HireID         string    `json:"hire_id"`
	ClientID       string    `json:"client_id"`
	ProfessionalID string    `json:"professional_id"`
	Rating         int       `json:"rating"`
	Comment        string    `json:"comment,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// GuestHirePreview - то, что видит гость, открыв ссылку с токеном отзыва.
type GuestHirePreview struct {
	HireID           string `json:"hire_id"`
	ProfessionalName string `json:"professional_name"`
	Profession       string `json:"profession"`
	GuestName        string `json:"guest_name"`
	AlreadyReviewed  bool   `json:"already_reviewed"`
}

func ToReviewResponse(r *models.Review) ReviewResponse {
	resp := ReviewResponse{
		ID:             r.ID,
		HireID:         r.HireID,
		ProfessionalID: r.ProfessionalID,
		ReviewerID:     r.ReviewerID,
		Rating:         r.Rating,
		Comment:        r.Comment,
		IsGuestReview:  r.IsGuestReview,
		CreatedAt:      r.CreatedAt,
	}
	if r.IsGuestReview {
		resp.ReviewerName = r.GuestName
	}
	return resp
}

func ToReviewResponses(reviews []models.Review) []ReviewResponse {
	result := make([]ReviewResponse, 0, len(reviews))
	for i := range reviews {
		result = append(result, ToReviewResponse(&reviews[i]))
	}
	return result
}

func ToClientReviewResponse(r *models.ClientReview) ClientReviewResponse {
	return ClientReviewResponse{
		ID:             r.ID,
		HireID:         r.HireID,
		ClientID:       r.ClientID,
		ProfessionalID: r.ProfessionalID,
		Rating:         r.Rating,
		Comment:        r.Comment,
		CreatedAt:      r.CreatedAt,
	}
}

func ToClientReviewResponses(reviews []models.ClientReview) []ClientReviewResponse {
	result := make([]ClientReviewResponse, 0, len(reviews))
	for i := range reviews {
		result = append(result, ToClientReviewResponse(&reviews[i]))
	}
	return result
}
