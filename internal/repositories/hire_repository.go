package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/models"
)

var (
	ErrHireNotFound      = errors.New("hire not found")
	ErrHireStatusChanged = errors.New("hire status changed concurrently")
)

type HireRepository interface {
	Create(db *gorm.DB, hire *models.Hire) error
	FindByID(db *gorm.DB, id string) (*models.Hire, error)
	FindByReviewToken(db *gorm.DB, token string) (*models.Hire, error)
	FindActiveBetween(db *gorm.DB, clientID, professionalID string) (*models.Hire, error)
	FindByClient(db *gorm.DB, clientID string, status models.HireStatus) ([]models.Hire, error)
	FindByProfessional(db *gorm.DB, professionalID string, status models.HireStatus) ([]models.Hire, error)
	UpdateStatusGuarded(db *gorm.DB, hireID string, from, to models.HireStatus, extra map[string]interface{}) error
	MarkGuestReviewed(db *gorm.DB, hireID string) error
}

type HireRepositoryImpl struct{}

func NewHireRepository() HireRepository {
	return &HireRepositoryImpl{}
}

func (r *HireRepositoryImpl) Create(db *gorm.DB, hire *models.Hire) error {
	return db.Create(hire).Error
}

func (r *HireRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Hire, error) {
	var hire models.Hire
	err := db.Preload("Client").Preload("Professional").First(&hire, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHireNotFound
		}
		return nil, err
	}
	return &hire, nil
}

func (r *HireRepositoryImpl) FindByReviewToken(db *gorm.DB, token string) (*models.Hire, error) {
	var hire models.Hire
	err := db.Preload("Professional").Where("review_token = ?", token).First(&hire).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHireNotFound
		}
		return nil, err
	}
	return &hire, nil
}

// FindActiveBetween ищет нетерминальную заявку между парой пользователей.
// Проверка read-before-write для инварианта "одна активная заявка на пару".
func (r *HireRepositoryImpl) FindActiveBetween(db *gorm.DB, clientID, professionalID string) (*models.Hire, error) {
	var hire models.Hire
	err := db.Where("client_id = ? AND professional_id = ? AND status IN ?",
		clientID, professionalID, models.ActiveHireStatuses).
		First(&hire).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHireNotFound
		}
		return nil, err
	}
	return &hire, nil
}

func (r *HireRepositoryImpl) FindByClient(db *gorm.DB, clientID string, status models.HireStatus) ([]models.Hire, error) {
	var hires []models.Hire
	query := db.Preload("Professional").Preload("Professional.User").
		Where("client_id = ?", clientID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Order("created_at DESC").Find(&hires).Error
	return hires, err
}

func (r *HireRepositoryImpl) FindByProfessional(db *gorm.DB, professionalID string, status models.HireStatus) ([]models.Hire, error) {
	var hires []models.Hire
	query := db.Preload("Client").
		Where("professional_id = ?", professionalID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Order("created_at DESC").Find(&hires).Error
	return hires, err
}

// UpdateStatusGuarded пишет новый статус с условием WHERE status = from.
// Хранилище не дает compare-and-swap, но условие в UPDATE сужает окно гонки:
// если статус успел измениться, RowsAffected == 0 и вызывающий получает
// ErrHireStatusChanged вместо молчаливой перезаписи.
func (r *HireRepositoryImpl) UpdateStatusGuarded(db *gorm.DB, hireID string, from, to models.HireStatus, extra map[string]interface{}) error {
	updates := map[string]interface{}{
		"status":     to,
		"updated_at": time.Now(),
	}
	for k, v := range extra {
		updates[k] = v
	}

	result := db.Model(&models.Hire{}).
		Where("id = ? AND status = ?", hireID, from).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Либо заявки нет, либо статус уже другой
		var count int64
		if err := db.Model(&models.Hire{}).Where("id = ?", hireID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrHireNotFound
		}
		return ErrHireStatusChanged
	}
	return nil
}

func (r *HireRepositoryImpl) MarkGuestReviewed(db *gorm.DB, hireID string) error {
	result := db.Model(&models.Hire{}).Where("id = ?", hireID).Updates(map[string]interface{}{
		"reviewed_by_guest": true,
		"status":            models.HireStatusCompleted,
		"completed_at":      time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrHireNotFound
	}
	return nil
}
