package services

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/email"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/logger"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/metrics"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/models"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/repositories"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/services/dto"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/pkg/apperrors"
)

// Типы уведомлений. Строки исторические, фронтенд на них завязан.
const (
	NotificationHireRequested = "solicitud_enviada"
	NotificationNewReview     = "nueva_resena"
	NotificationNewMessage    = "nuevo_mensaje"
)

type NotificationService struct {
	notificationRepo repositories.NotificationRepository
	userRepo         repositories.UserRepository
	emailProvider    email.Provider
	metrics          *metrics.Collector
}

func NewNotificationService(
	notificationRepo repositories.NotificationRepository,
	userRepo repositories.UserRepository,
	emailProvider email.Provider,
	collector *metrics.Collector,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		emailProvider:    emailProvider,
		metrics:          collector,
	}
}

// Notify создает уведомление и по возможности дублирует его письмом.
// Вызывается из других сервисов best-effort: любая ошибка логируется
// и проглатывается, бизнес-операция от нее не зависит.
func (s *NotificationService) Notify(db *gorm.DB, userID string, senderID *string, notifType, title, message string, data map[string]interface{}) {
	var payload datatypes.JSON
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			logger.WithError(err).Warn("notification payload marshal failed", "type", notifType)
		} else {
			payload = datatypes.JSON(raw)
		}
	}

	notification := &models.Notification{
		UserID:   userID,
		SenderID: senderID,
		Type:     notifType,
		Title:    title,
		Message:  message,
		Data:     payload,
	}

	if err := s.notificationRepo.Create(db, notification); err != nil {
		logger.WithError(err).Warn("notification insert failed", "type", notifType, "user_id", userID)
		s.metrics.RecordNotificationFailure()
		return
	}

	s.sendEmailCopy(db, userID, title, message)
}

func (s *NotificationService) sendEmailCopy(db *gorm.DB, userID, title, message string) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		logger.WithError(err).Warn("notification email: recipient lookup failed", "user_id", userID)
		return
	}

	body := fmt.Sprintf("<h3>%s</h3><p>%s</p>", title, message)
	if err := s.emailProvider.Send(user.Email, title, body); err != nil {
		logger.WithError(err).Warn("notification email send failed", "user_id", userID)
		s.metrics.RecordNotificationFailure()
	}
}

func (s *NotificationService) ListForUser(db *gorm.DB, userID string, onlyUnread bool, criteria repositories.NotificationCriteria) ([]dto.NotificationResponse, int64, error) {
	notifications, total, err := s.notificationRepo.FindByUser(db, userID, onlyUnread, criteria)
	if err != nil {
		return nil, 0, err
	}
	return dto.ToNotificationResponses(notifications), total, nil
}

func (s *NotificationService) MarkAsRead(db *gorm.DB, notificationID, userID string) error {
	err := s.notificationRepo.MarkAsRead(db, notificationID, userID)
	if err == repositories.ErrNotificationNotFound {
		return apperrors.ErrNotFound(err)
	}
	return err
}

func (s *NotificationService) MarkAllAsRead(db *gorm.DB, userID string) (int64, error) {
	return s.notificationRepo.MarkAllAsRead(db, userID)
}

func (s *NotificationService) UnreadCount(db *gorm.DB, userID string) (int64, error) {
	return s.notificationRepo.CountUnread(db, userID)
}
