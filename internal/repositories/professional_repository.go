package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/models"
)

var ErrProfessionalNotFound = errors.New("professional not found")

type ProfessionalRepository interface {
	Create(db *gorm.DB, professional *models.Professional) error
	FindByID(db *gorm.DB, id string) (*models.Professional, error)
	FindByUserID(db *gorm.DB, userID string) (*models.Professional, error)
	Update(db *gorm.DB, professional *models.Professional) error
	List(db *gorm.DB, criteria ProfessionalCriteria) ([]models.Professional, int64, error)
	SetPremium(db *gorm.DB, userID string, premium bool, until *time.Time) error
	RecalculateRating(db *gorm.DB, professionalID string) error
	ClearExpiredPremium(db *gorm.DB, now time.Time) (int64, error)
}

type ProfessionalRepositoryImpl struct{}

type ProfessionalCriteria struct {
	Category string `form:"category"`
	City     string `form:"city"`
	Search   string `form:"search"`
	Page     int    `form:"page" validate:"min=0"`
	PageSize int    `form:"page_size" validate:"min=0,max=100"`
}

func NewProfessionalRepository() ProfessionalRepository {
	return &ProfessionalRepositoryImpl{}
}

func (r *ProfessionalRepositoryImpl) Create(db *gorm.DB, professional *models.Professional) error {
	return db.Create(professional).Error
}

func (r *ProfessionalRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Professional, error) {
	var professional models.Professional
	err := db.Preload("User").First(&professional, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfessionalNotFound
		}
		return nil, err
	}
	return &professional, nil
}

func (r *ProfessionalRepositoryImpl) FindByUserID(db *gorm.DB, userID string) (*models.Professional, error) {
	var professional models.Professional
	err := db.Preload("User").Where("user_id = ?", userID).First(&professional).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfessionalNotFound
		}
		return nil, err
	}
	return &professional, nil
}

func (r *ProfessionalRepositoryImpl) Update(db *gorm.DB, professional *models.Professional) error {
	result := db.Model(&models.Professional{}).Where("id = ?", professional.ID).Updates(map[string]interface{}{
		"profession":  professional.Profession,
		"category":    professional.Category,
		"city":        professional.City,
		"about":       professional.About,
		"hourly_rate": professional.HourlyRate,
		"is_active":   professional.IsActive,
		"updated_at":  time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfessionalNotFound
	}
	return nil
}

// List возвращает активных специалистов; premium-аккаунты первыми,
// дальше по рейтингу.
func (r *ProfessionalRepositoryImpl) List(db *gorm.DB, criteria ProfessionalCriteria) ([]models.Professional, int64, error) {
	query := db.Model(&models.Professional{}).Where("is_active = ?", true)

	if criteria.Category != "" {
		query = query.Where("category = ?", criteria.Category)
	}
	if criteria.City != "" {
		query = query.Where("city = ?", criteria.City)
	}
	if criteria.Search != "" {
		query = query.Where("profession ILIKE ?", "%"+criteria.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := criteria.Page
	if page < 1 {
		page = 1
	}
	pageSize := criteria.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	var professionals []models.Professional
	err := query.Preload("User").
		Order("is_premium DESC, rating DESC, rating_count DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&professionals).Error

	return professionals, total, err
}

func (r *ProfessionalRepositoryImpl) SetPremium(db *gorm.DB, userID string, premium bool, until *time.Time) error {
	result := db.Model(&models.Professional{}).Where("user_id = ?", userID).Updates(map[string]interface{}{
		"is_premium":    premium,
		"premium_until": until,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfessionalNotFound
	}
	return nil
}

// RecalculateRating пересчитывает агрегаты рейтинга по отзывам.
// Вызывается только из пути вставки отзыва, в той же транзакции.
func (r *ProfessionalRepositoryImpl) RecalculateRating(db *gorm.DB, professionalID string) error {
	return db.Exec(`
		UPDATE professionals SET
			rating = COALESCE((SELECT AVG(rating) FROM reviews WHERE professional_id = ?), 0),
			rating_count = (SELECT COUNT(*) FROM reviews WHERE professional_id = ?),
			updated_at = NOW()
		WHERE id = ?
	`, professionalID, professionalID, professionalID).Error
}

// ClearExpiredPremium снимает premium-флаг у специалистов с истекшим сроком.
func (r *ProfessionalRepositoryImpl) ClearExpiredPremium(db *gorm.DB, now time.Time) (int64, error) {
	result := db.Model(&models.Professional{}).
		Where("is_premium = ? AND premium_until IS NOT NULL AND premium_until < ?", true, now).
		Updates(map[string]interface{}{"is_premium": false})
	return result.RowsAffected, result.Error
}
