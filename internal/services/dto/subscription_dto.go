package dto

import "time"

type CreatePreferenceResponse struct {
	PreferenceID string `json:"preference_id"`
	InitPoint    string `json:"init_point"`
}

// PaymentWebhookRequest - формат уведомления платежного провайдера.
// Тело содержит только тип события и id платежа; детали дотягиваются
// отдельным запросом к API провайдера.
type PaymentWebhookRequest struct {
	Type string `json:"type"`
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

type SubscriptionStatusResponse struct {
	Type      string     `json:"type"`
	Status    string     `json:"status"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	Entitled  bool       `json:"entitled"`
}
