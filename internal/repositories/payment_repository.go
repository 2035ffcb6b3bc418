package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/models"
)

var ErrPaymentAlreadyProcessed = errors.New("payment already processed")

type PaymentRepository interface {
	RecordEvent(db *gorm.DB, event *models.PaymentEvent) error
	HasProcessed(db *gorm.DB, paymentID string) (bool, error)
}

type PaymentRepositoryImpl struct{}

func NewPaymentRepository() PaymentRepository {
	return &PaymentRepositoryImpl{}
}

// RecordEvent фиксирует платеж в журнале; повторная доставка вебхука
// упирается в уникальный payment_id и превращается в ErrPaymentAlreadyProcessed.
func (r *PaymentRepositoryImpl) RecordEvent(db *gorm.DB, event *models.PaymentEvent) error {
	if err := db.Create(event).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrPaymentAlreadyProcessed
		}
		return err
	}
	return nil
}

func (r *PaymentRepositoryImpl) HasProcessed(db *gorm.DB, paymentID string) (bool, error) {
	var count int64
	err := db.Model(&models.PaymentEvent{}).Where("payment_id = ?", paymentID).Count(&count).Error
	return count > 0, err
}
