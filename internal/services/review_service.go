package services

import (
	"gorm.io/gorm"

	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/logger"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/metrics"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/models"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/repositories"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/services/dto"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/pkg/apperrors"
)

type ReviewService struct {
	reviewRepo       repositories.ReviewRepository
	hireRepo         repositories.HireRepository
	professionalRepo repositories.ProfessionalRepository

	notificationService *NotificationService
	metrics             *metrics.Collector
}

func NewReviewService(
	reviewRepo repositories.ReviewRepository,
	hireRepo repositories.HireRepository,
	professionalRepo repositories.ProfessionalRepository,
	notificationService *NotificationService,
	collector *metrics.Collector,
) *ReviewService {
	return &ReviewService{
		reviewRepo:          reviewRepo,
		hireRepo:            hireRepo,
		professionalRepo:    professionalRepo,
		notificationService: notificationService,
		metrics:             collector,
	}
}

// SubmitReview - отзыв клиента по завершенной заявке.
// Не более одного отзыва на заявку; рейтинг пересчитывается в той же
// транзакции, что и вставка.
func (s *ReviewService) SubmitReview(db *gorm.DB, reviewerID string, req dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	hire, err := s.hireRepo.FindByID(db, req.HireID)
	if err != nil {
		if err == repositories.ErrHireNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, err
	}

	if hire.ClientID == nil || *hire.ClientID != reviewerID {
		return nil, apperrors.ErrHireAccessDenied
	}
	if hire.Status != models.HireStatusCompleted {
		return nil, apperrors.ErrHireNotCompleted
	}

	exists, err := s.reviewRepo.HasReviewForHire(db, hire.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrDuplicateReview
	}

	review := &models.Review{
		HireID:         hire.ID,
		ProfessionalID: hire.ProfessionalID,
		ReviewerID:     &reviewerID,
		Rating:         req.Rating,
		Comment:        req.Comment,
	}

	if err := s.insertAndRecalculate(db, review); err != nil {
		return nil, err
	}

	s.metrics.RecordReviewSubmitted("auth")
	s.notifyProfessional(db, hire, &reviewerID, review.ID)

	resp := dto.ToReviewResponse(review)
	return &resp, nil
}

// FetchHireByToken показывает гостю, что именно он оценивает.
func (s *ReviewService) FetchHireByToken(db *gorm.DB, token string) (*dto.GuestHirePreview, error) {
	hire, err := s.hireRepo.FindByReviewToken(db, token)
	if err != nil {
		if err == repositories.ErrHireNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, err
	}

	preview := &dto.GuestHirePreview{
		HireID:          hire.ID,
		Profession:      hire.Professional.Profession,
		GuestName:       hire.GuestClientName,
		AlreadyReviewed: hire.ReviewedByGuest,
	}
	if hire.Professional.User.ID != "" {
		preview.ProfessionalName = hire.Professional.User.Name
	}
	return preview, nil
}

// SubmitGuestReview - отзыв по одноразовому токену. Токен сгорает:
// повторная отправка возвращает конфликт.
func (s *ReviewService) SubmitGuestReview(db *gorm.DB, token string, req dto.CreateGuestReviewRequest) (*dto.ReviewResponse, error) {
	hire, err := s.hireRepo.FindByReviewToken(db, token)
	if err != nil {
		if err == repositories.ErrHireNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, err
	}

	if hire.ReviewedByGuest {
		return nil, apperrors.ErrHireAlreadyReviewed
	}

	review := &models.Review{
		HireID:         hire.ID,
		ProfessionalID: hire.ProfessionalID,
		GuestName:      hire.GuestClientName,
		Rating:         req.Rating,
		Comment:        req.Comment,
		IsGuestReview:  true,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.reviewRepo.CreateReview(tx, review); err != nil {
			if err == repositories.ErrReviewAlreadyExists {
				return apperrors.ErrHireAlreadyReviewed
			}
			return err
		}
		if err := s.hireRepo.MarkGuestReviewed(tx, hire.ID); err != nil {
			return err
		}
		return s.professionalRepo.RecalculateRating(tx, review.ProfessionalID)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordReviewSubmitted("guest")
	s.notifyProfessional(db, hire, nil, review.ID)

	resp := dto.ToReviewResponse(review)
	return &resp, nil
}

// SubmitClientReview - отзыв специалиста о клиенте по завершенной заявке.
func (s *ReviewService) SubmitClientReview(db *gorm.DB, callerUserID string, req dto.CreateClientReviewRequest) (*dto.ClientReviewResponse, error) {
	professional, err := s.professionalRepo.FindByUserID(db, callerUserID)
	if err != nil {
		if err == repositories.ErrProfessionalNotFound {
			return nil, apperrors.ErrNotProfessional
		}
		return nil, err
	}

	hire, err := s.hireRepo.FindByID(db, req.HireID)
	if err != nil {
		if err == repositories.ErrHireNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, err
	}

	if hire.ProfessionalID != professional.ID {
		return nil, apperrors.ErrHireAccessDenied
	}
	if hire.Status != models.HireStatusCompleted {
		return nil, apperrors.ErrHireNotCompleted
	}
	if hire.ClientID == nil {
		return nil, apperrors.ErrInvalidOperation("review", "Guest hires cannot receive client reviews")
	}

	review := &models.ClientReview{
		HireID:         hire.ID,
		ClientID:       *hire.ClientID,
		ProfessionalID: professional.ID,
		Rating:         req.Rating,
		Comment:        req.Comment,
	}

	if err := s.reviewRepo.CreateClientReview(db, review); err != nil {
		if err == repositories.ErrClientReviewExists {
			return nil, apperrors.ErrDuplicateReview
		}
		return nil, err
	}

	s.metrics.RecordReviewSubmitted("client")
	resp := dto.ToClientReviewResponse(review)
	return &resp, nil
}

func (s *ReviewService) ListForProfessional(db *gorm.DB, professionalID string, criteria repositories.ReviewCriteria) ([]dto.ReviewResponse, int64, error) {
	reviews, total, err := s.reviewRepo.FindReviewsByProfessional(db, professionalID, criteria)
	if err != nil {
		return nil, 0, err
	}
	return dto.ToReviewResponses(reviews), total, nil
}

// ListClientReviews - отзывы специалистов о клиенте.
func (s *ReviewService) ListClientReviews(db *gorm.DB, clientID string) ([]dto.ClientReviewResponse, error) {
	reviews, err := s.reviewRepo.FindClientReviews(db, clientID)
	if err != nil {
		return nil, err
	}
	return dto.ToClientReviewResponses(reviews), nil
}

func (s *ReviewService) insertAndRecalculate(db *gorm.DB, review *models.Review) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := s.reviewRepo.CreateReview(tx, review); err != nil {
			if err == repositories.ErrReviewAlreadyExists {
				return apperrors.ErrDuplicateReview
			}
			return err
		}
		return s.professionalRepo.RecalculateRating(tx, review.ProfessionalID)
	})
}

func (s *ReviewService) notifyProfessional(db *gorm.DB, hire *models.Hire, senderID *string, reviewID string) {
	professional, err := s.professionalRepo.FindByID(db, hire.ProfessionalID)
	if err != nil {
		logger.WithError(err).Warn("review notification: professional lookup failed", "hire_id", hire.ID)
		return
	}
	s.notificationService.Notify(db, professional.UserID, senderID,
		NotificationNewReview,
		"Nueva reseña",
		"Has recibido una nueva reseña",
		map[string]interface{}{"hire_id": hire.ID, "review_id": reviewID},
	)
}
