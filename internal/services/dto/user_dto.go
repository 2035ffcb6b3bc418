package dto

import (
	"time"

	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/models"
)

type UserResponse struct {
	ID                 string                `json:"id"`
	Email              string                `json:"email"`
	Name               string                `json:"name"`
	Phone              string                `json:"phone,omitempty"`
	Address            string                `json:"address,omitempty"`
	IsProfessional     bool                  `json:"is_professional"`
	SubscriptionType   string                `json:"subscription_type"`
	SubscriptionStatus string                `json:"subscription_status"`
	SubscriptionEnd    *time.Time            `json:"subscription_end,omitempty"`
	Professional       *ProfessionalResponse `json:"professional,omitempty"`
	CreatedAt          time.Time             `json:"created_at"`
}

type ProfessionalResponse struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	Name         string     `json:"name,omitempty"`
	Profession   string     `json:"profession"`
	Category     string     `json:"category"`
	City         string     `json:"city"`
	About        string     `json:"about,omitempty"`
	HourlyRate   float64    `json:"hourly_rate,omitempty"`
	Rating       float64    `json:"rating"`
	RatingCount  int        `json:"rating_count"`
	IsVerified   bool       `json:"is_verified"`
	IsPremium    bool       `json:"is_premium"`
	PremiumUntil *time.Time `json:"premium_until,omitempty"`
}

type UpdateContactRequest struct {
	Phone   string `json:"phone" validate:"omitempty,max=30"`
	Address string `json:"address" validate:"omitempty,max=255"`
}

type UpdateProfessionalRequest struct {
	Profession string  `json:"profession" validate:"omitempty,max=100"`
	Category   string  `json:"category" validate:"omitempty,max=100"`
	City       string  `json:"city" validate:"omitempty,max=100"`
	About      string  `json:"about" validate:"omitempty,max=2000"`
	HourlyRate float64 `json:"hourly_rate" validate:"omitempty,min=0"`
}

func ToUserResponse(user *models.User) UserResponse {
	resp := UserResponse{
		ID:                 user.ID,
		Email:              user.Email,
		Name:               user.Name,
		Phone:              user.Phone,
		Address:            user.Address,
		IsProfessional:     user.IsProfessional,
		SubscriptionType:   string(user.SubscriptionType),
		SubscriptionStatus: string(user.SubscriptionStatus),
		SubscriptionEnd:    user.SubscriptionEndDate,
		CreatedAt:          user.CreatedAt,
	}
	if user.Professional != nil {
		p := ToProfessionalResponse(user.Professional)
		p.Name = user.Name
		resp.Professional = &p
	}
	return resp
}

func ToProfessionalResponse(p *models.Professional) ProfessionalResponse {
	resp := ProfessionalResponse{
		ID:           p.ID,
		UserID:       p.UserID,
		Profession:   p.Profession,
		Category:     p.Category,
		City:         p.City,
		About:        p.About,
		HourlyRate:   p.HourlyRate,
		Rating:       p.Rating,
		RatingCount:  p.RatingCount,
		IsVerified:   p.IsVerified,
		IsPremium:    p.IsPremium,
		PremiumUntil: p.PremiumUntil,
	}
	if p.User.ID != "" {
		resp.Name = p.User.Name
	}
	return resp
}
