package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/config"
)

// Provider - клиент платежного провайдера (MercadoPago).
// В тестах BaseURL указывает на httptest-сервер.
type Provider interface {
	CreatePreference(ctx context.Context, req PreferenceRequest) (*Preference, error)
	GetPayment(ctx context.Context, paymentID string) (*Payment, error)
}

type PreferenceRequest struct {
	Title             string
	Amount            float64
	Currency          string
	ExternalReference string // user_id платящего пользователя
	SuccessURL        string
	FailureURL        string
}

type Preference struct {
	ID        string `json:"id"`
	InitPoint string `json:"init_point"`
}

type Payment struct {
	ID                string  `json:"-"`
	Status            string  `json:"status"` // "approved", "pending", "rejected"
	ExternalReference string  `json:"external_reference"`
	TransactionAmount float64 `json:"transaction_amount"`
	CurrencyID        string  `json:"currency_id"`
}

type mercadoPago struct {
	baseURL     string
	accessToken string
	client      *http.Client
}

func NewMercadoPago(cfg *config.Config) Provider {
	return &mercadoPago{
		baseURL:     cfg.Payments.BaseURL,
		accessToken: cfg.Payments.AccessToken,
		client:      &http.Client{Timeout: 15 * time.Second},
	}
}

func (m *mercadoPago) CreatePreference(ctx context.Context, req PreferenceRequest) (*Preference, error) {
	body := map[string]interface{}{
		"items": []map[string]interface{}{
			{
				"title":       req.Title,
				"quantity":    1,
				"unit_price":  req.Amount,
				"currency_id": req.Currency,
			},
		},
		"external_reference": req.ExternalReference,
		"back_urls": map[string]string{
			"success": req.SuccessURL,
			"failure": req.FailureURL,
		},
		"auto_return": "approved",
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/checkout/preferences", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+m.accessToken)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("mercadopago: create preference returned %d", resp.StatusCode)
	}

	var preference Preference
	if err := json.NewDecoder(resp.Body).Decode(&preference); err != nil {
		return nil, err
	}
	return &preference, nil
}

func (m *mercadoPago) GetPayment(ctx context.Context, paymentID string) (*Payment, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, m.baseURL+"/v1/payments/"+paymentID, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+m.accessToken)

	resp, err := m.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("mercadopago: get payment returned %d", resp.StatusCode)
	}

	var payment Payment
	if err := json.NewDecoder(resp.Body).Decode(&payment); err != nil {
		return nil, err
	}
	payment.ID = paymentID
	return &payment, nil
}
