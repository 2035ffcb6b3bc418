package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/models"
)

var (
	ErrReviewNotFound       = errors.New("review not found")
	ErrReviewAlreadyExists  = errors.New("review already exists for this hire")
	ErrClientReviewExists   = errors.New("client review already exists for this pair")
)

type ReviewRepository interface {
	CreateReview(db *gorm.DB, review *models.Review) error
	HasReviewForHire(db *gorm.DB, hireID string) (bool, error)
	FindReviewsByProfessional(db *gorm.DB, professionalID string, criteria ReviewCriteria) ([]models.Review, int64, error)

	CreateClientReview(db *gorm.DB, review *models.ClientReview) error
	FindClientReviews(db *gorm.DB, clientID string) ([]models.ClientReview, error)
}

type ReviewRepositoryImpl struct{}

type ReviewCriteria struct {
	Limit  int `form:"limit" validate:"min=0,max=100"`
	Offset int `form:"offset" validate:"min=0"`
}

func NewReviewRepository() ReviewRepository {
	return &ReviewRepositoryImpl{}
}

// CreateReview вставляет отзыв; единственность на hire_id обеспечивает
// уникальный индекс, нарушение переводим в доменную ошибку.
func (r *ReviewRepositoryImpl) CreateReview(db *gorm.DB, review *models.Review) error {
	if err := db.Create(review).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrReviewAlreadyExists
		}
		return err
	}
	return nil
}

func (r *ReviewRepositoryImpl) HasReviewForHire(db *gorm.DB, hireID string) (bool, error) {
	var count int64
	err := db.Model(&models.Review{}).Where("hire_id = ?", hireID).Count(&count).Error
	return count > 0, err
}

func (r *ReviewRepositoryImpl) FindReviewsByProfessional(db *gorm.DB, professionalID string, criteria ReviewCriteria) ([]models.Review, int64, error) {
	var total int64
	if err := db.Model(&models.Review{}).Where("professional_id = ?", professionalID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := criteria.Limit
	if limit <= 0 {
		limit = 20
	}

	var reviews []models.Review
	err := db.Where("professional_id = ?", professionalID).
		Order("created_at DESC").
		Limit(limit).Offset(criteria.Offset).
		Find(&reviews).Error
	return reviews, total, err
}

func (r *ReviewRepositoryImpl) CreateClientReview(db *gorm.DB, review *models.ClientReview) error {
	if err := db.Create(review).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrClientReviewExists
		}
		return err
	}
	return nil
}

func (r *ReviewRepositoryImpl) FindClientReviews(db *gorm.DB, clientID string) ([]models.ClientReview, error) {
	var reviews []models.ClientReview
	err := db.Where("client_id = ?", clientID).Order("created_at DESC").Find(&reviews).Error
	return reviews, err
}
