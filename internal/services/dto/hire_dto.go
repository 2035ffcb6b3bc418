package dto

import (
	"time"

	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/models"
)

type CreateHireRequest struct {
	ProfessionalID  string `json:"professional_id" validate:"required,uuid"`
	ProposalMessage string `json:"proposal_message" validate:"required,min=10,max=2000"`
}

type RespondToHireRequest struct {
	Accept bool `json:"accept"`
}

type CreateGuestHireRequest struct {
	GuestName  string `json:"guest_name" validate:"required,min=2,max=100"`
	GuestEmail string `json:"guest_email" validate:"required,email"`
	Message    string `json:"message" validate:"omitempty,max=2000"`
}

type ListHiresQuery struct {
	Role   string `form:"role" validate:"omitempty,oneof=client professional"`
	Status string `form:"status" validate:"omitempty,is-hire-status"`
}

type HireResponse struct {
	ID              string                `json:"id"`
	ClientID        *string               `json:"client_id,omitempty"`
	ProfessionalID  string                `json:"professional_id"`
	Status          string                `json:"status"`
	ProposalMessage string                `json:"proposal_message,omitempty"`
	StartedAt       *time.Time            `json:"started_at,omitempty"`
	CompletedAt     *time.Time            `json:"completed_at,omitempty"`
	CancelledAt     *time.Time            `json:"cancelled_at,omitempty"`
	GuestClientName string                `json:"guest_client_name,omitempty"`
	Professional    *ProfessionalResponse `json:"professional,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
}

type GuestHireResponse struct {
	Hire        HireResponse `json:"hire"`
	ReviewToken string       `json:"review_token"`
}

func ToHireResponse(hire *models.Hire) HireResponse {
	resp := HireResponse{
		ID:              hire.ID,
		ClientID:        hire.ClientID,
		ProfessionalID:  hire.ProfessionalID,
		Status:          string(hire.Status),
		ProposalMessage: hire.ProposalMessage,
		StartedAt:       hire.StartedAt,
		CompletedAt:     hire.CompletedAt,
		CancelledAt:     hire.CancelledAt,
		GuestClientName: hire.GuestClientName,
		CreatedAt:       hire.CreatedAt,
	}
	if hire.Professional.ID != "" {
		p := ToProfessionalResponse(&hire.Professional)
		resp.Professional = &p
	}
	return resp
}

func ToHireResponses(hires []models.Hire) []HireResponse {
	result := make([]HireResponse, 0, len(hires))
	for i := range hires {
		result = append(result, ToHireResponse(&hires[i]))
	}
	return result
}
