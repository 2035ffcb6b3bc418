package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/config"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/logger"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/models"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/payments"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/repositories"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/services/dto"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/pkg/apperrors"
)

type SubscriptionService struct {
	userRepo         repositories.UserRepository
	professionalRepo repositories.ProfessionalRepository
	paymentRepo      repositories.PaymentRepository
	provider         payments.Provider
}

func NewSubscriptionService(
	userRepo repositories.UserRepository,
	professionalRepo repositories.ProfessionalRepository,
	paymentRepo repositories.PaymentRepository,
	provider payments.Provider,
) *SubscriptionService {
	return &SubscriptionService{
		userRepo:         userRepo,
		professionalRepo: professionalRepo,
		paymentRepo:      paymentRepo,
		provider:         provider,
	}
}

// IsEntitled - единственный предикат доступа к premium-возможностям.
// Отмененная подписка сохраняет доступ до конца оплаченного периода;
// истекший end_date закрывает доступ независимо от статуса.
func IsEntitled(user *models.User, now time.Time) bool {
	if user.SubscriptionType != models.SubscriptionTypePremium {
		return false
	}
	if user.SubscriptionEndDate == nil || !user.SubscriptionEndDate.After(now) {
		return false
	}
	switch user.SubscriptionStatus {
	case models.SubscriptionStatusActive, models.SubscriptionStatusCancelled:
		return true
	}
	return false
}

// CreatePreference создает платежное намерение у провайдера и возвращает
// ссылку оплаты. Запись о подписке появляется только после webhook.
func (s *SubscriptionService) CreatePreference(ctx context.Context, db *gorm.DB, userID string) (*dto.CreatePreferenceResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, err
	}
	if !user.IsProfessional {
		return nil, apperrors.ErrNotProfessional
	}

	cfg := config.GetConfig()
	preference, err := s.provider.CreatePreference(ctx, payments.PreferenceRequest{
		Title:             "Suscripción Premium",
		Amount:            cfg.Payments.PremiumAmount,
		Currency:          cfg.Payments.Currency,
		ExternalReference: user.ID,
		SuccessURL:        cfg.Payments.SuccessURL,
		FailureURL:        cfg.Payments.FailureURL,
	})
	if err != nil {
		logger.WithError(err).Error("create preference failed", "user_id", userID)
		return nil, apperrors.ErrPaymentProvider.WithError(err)
	}

	return &dto.CreatePreferenceResponse{
		PreferenceID: preference.ID,
		InitPoint:    preference.InitPoint,
	}, nil
}

// ProcessWebhook обрабатывает платежное уведомление. Детали платежа
// дотягиваются у провайдера; активация идемпотентна за счет журнала
// payment_events. Повторная доставка возвращает nil без побочных эффектов.
func (s *SubscriptionService) ProcessWebhook(ctx context.Context, db *gorm.DB, req dto.PaymentWebhookRequest) error {
	if req.Type != "payment" || req.Data.ID == "" {
		logger.Debug("webhook ignored", "type", req.Type)
		return nil
	}

	// Повторную доставку отсекаем до похода к провайдеру
	processed, err := s.paymentRepo.HasProcessed(db, req.Data.ID)
	if err != nil {
		return err
	}
	if processed {
		logger.Info("webhook: duplicate delivery ignored", "payment_id", req.Data.ID)
		return nil
	}

	payment, err := s.provider.GetPayment(ctx, req.Data.ID)
	if err != nil {
		logger.WithError(err).Error("webhook: payment lookup failed", "payment_id", req.Data.ID)
		return apperrors.ErrPaymentProvider.WithError(err)
	}

	if payment.Status != "approved" {
		logger.Info("webhook: payment not approved, skipping", "payment_id", payment.ID, "status", payment.Status)
		return nil
	}

	userID := payment.ExternalReference
	if userID == "" {
		logger.Warn("webhook: payment without external reference", "payment_id", payment.ID)
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		event := &models.PaymentEvent{
			PaymentID: payment.ID,
			UserID:    userID,
			Status:    payment.Status,
			Amount:    payment.TransactionAmount,
			Currency:  payment.CurrencyID,
		}
		if err := s.paymentRepo.RecordEvent(tx, event); err != nil {
			if err == repositories.ErrPaymentAlreadyProcessed {
				logger.Info("webhook: duplicate delivery ignored", "payment_id", payment.ID)
				return nil
			}
			return err
		}

		now := time.Now()
		end := now.AddDate(0, 1, 0)
		if err := s.userRepo.UpdateSubscription(tx, userID,
			models.SubscriptionTypePremium, models.SubscriptionStatusActive, &now, &end); err != nil {
			return err
		}

		// Зеркалим premium-флаг в профиль специалиста для ранжирования
		if err := s.professionalRepo.SetPremium(tx, userID, true, &end); err != nil {
			if err != repositories.ErrProfessionalNotFound {
				return err
			}
		}

		logger.Info("subscription activated", "user_id", userID, "payment_id", payment.ID, "until", end)
		return nil
	})
}

// CancelSubscription помечает подписку отмененной. Доступ сохраняется
// до конца оплаченного периода: end_date не трогаем.
func (s *SubscriptionService) CancelSubscription(db *gorm.DB, userID string) (*dto.SubscriptionStatusResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, err
	}

	switch user.SubscriptionStatus {
	case models.SubscriptionStatusCancelled:
		return nil, apperrors.ErrSubscriptionCancelled
	case models.SubscriptionStatusActive:
	default:
		return nil, apperrors.ErrNoActiveSubscription
	}

	if err := s.userRepo.SetSubscriptionStatus(db, userID, models.SubscriptionStatusCancelled); err != nil {
		return nil, err
	}

	logger.Info("subscription cancelled", "user_id", userID)

	user.SubscriptionStatus = models.SubscriptionStatusCancelled
	resp := s.toStatusResponse(user)
	return &resp, nil
}

func (s *SubscriptionService) GetStatus(db *gorm.DB, userID string) (*dto.SubscriptionStatusResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, err
	}
	resp := s.toStatusResponse(user)
	return &resp, nil
}

func (s *SubscriptionService) toStatusResponse(user *models.User) dto.SubscriptionStatusResponse {
	return dto.SubscriptionStatusResponse{
		Type:      string(user.SubscriptionType),
		Status:    string(user.SubscriptionStatus),
		StartDate: user.SubscriptionStartDate,
		EndDate:   user.SubscriptionEndDate,
		Entitled:  IsEntitled(user, time.Now()),
	}
}
