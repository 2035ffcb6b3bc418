package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/logger"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/metrics"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/models"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/repositories"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/services/dto"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/pkg/apperrors"
)

type HireService struct {
	hireRepo            repositories.HireRepository
	professionalRepo    repositories.ProfessionalRepository
	notificationService *NotificationService
	metrics             *metrics.Collector
}

func NewHireService(
	hireRepo repositories.HireRepository,
	professionalRepo repositories.ProfessionalRepository,
	notificationService *NotificationService,
	collector *metrics.Collector,
) *HireService {
	return &HireService{
		hireRepo:            hireRepo,
		professionalRepo:    professionalRepo,
		notificationService: notificationService,
		metrics:             collector,
	}
}

// CreateProposal создает заявку клиента специалисту.
// Инвариант: не более одной активной заявки на пару (клиент, специалист).
func (s *HireService) CreateProposal(db *gorm.DB, clientID string, req dto.CreateHireRequest) (*dto.HireResponse, error) {
	professional, err := s.professionalRepo.FindByID(db, req.ProfessionalID)
	if err != nil {
		if err == repositories.ErrProfessionalNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, err
	}

	if professional.UserID == clientID {
		return nil, apperrors.ErrInvalidOperation("hire", "Cannot hire yourself")
	}

	hire := &models.Hire{
		ClientID:        &clientID,
		ProfessionalID:  professional.ID,
		Status:          models.HireStatusPending,
		ProposalMessage: req.ProposalMessage,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.hireRepo.FindActiveBetween(tx, clientID, professional.ID); err == nil {
			return apperrors.ErrActiveHireExists
		} else if err != repositories.ErrHireNotFound {
			return err
		}
		return s.hireRepo.Create(tx, hire)
	})
	if err != nil {
		return nil, err
	}

	// Уведомление best-effort, ошибка не ломает создание заявки
	s.notificationService.Notify(db, professional.UserID, &clientID,
		NotificationHireRequested,
		"Nueva solicitud de contratación",
		"Has recibido una nueva solicitud de contratación",
		map[string]interface{}{"hire_id": hire.ID},
	)

	created, err := s.hireRepo.FindByID(db, hire.ID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToHireResponse(created)
	return &resp, nil
}

// RespondToProposal - ответ специалиста на ожидающую заявку.
func (s *HireService) RespondToProposal(db *gorm.DB, hireID, callerUserID string, accept bool) (*dto.HireResponse, error) {
	hire, err := s.loadHireForProfessional(db, hireID, callerUserID)
	if err != nil {
		return nil, err
	}

	target := models.HireStatusRejected
	extra := map[string]interface{}{}
	if accept {
		target = models.HireStatusInProgress
		extra["started_at"] = time.Now()
	}

	return s.transition(db, hire, target, extra)
}

// RequestCompletion - специалист отмечает работу выполненной и ждет
// подтверждения клиента.
func (s *HireService) RequestCompletion(db *gorm.DB, hireID, callerUserID string) (*dto.HireResponse, error) {
	hire, err := s.loadHireForProfessional(db, hireID, callerUserID)
	if err != nil {
		return nil, err
	}
	return s.transition(db, hire, models.HireStatusWaitingClientApproval, nil)
}

// CompleteEngagement - клиент подтверждает завершение работы.
func (s *HireService) CompleteEngagement(db *gorm.DB, hireID, callerUserID string) (*dto.HireResponse, error) {
	hire, err := s.loadHireForClient(db, hireID, callerUserID)
	if err != nil {
		return nil, err
	}
	return s.transition(db, hire, models.HireStatusCompleted, map[string]interface{}{
		"completed_at": time.Now(),
	})
}

// DisputeCompletion - клиент возвращает заявку в работу вместо подтверждения.
func (s *HireService) DisputeCompletion(db *gorm.DB, hireID, callerUserID string) (*dto.HireResponse, error) {
	hire, err := s.loadHireForClient(db, hireID, callerUserID)
	if err != nil {
		return nil, err
	}
	if hire.Status != models.HireStatusWaitingClientApproval {
		return nil, apperrors.ErrInvalidHireTransition
	}
	return s.transition(db, hire, models.HireStatusInProgress, nil)
}

// CancelEngagement доступен обеим сторонам заявки из любого активного статуса.
func (s *HireService) CancelEngagement(db *gorm.DB, hireID, callerUserID string) (*dto.HireResponse, error) {
	hire, err := s.hireRepo.FindByID(db, hireID)
	if err != nil {
		if err == repositories.ErrHireNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, err
	}

	isClient := hire.ClientID != nil && *hire.ClientID == callerUserID
	isProfessional := hire.Professional.UserID == callerUserID
	if !isClient && !isProfessional {
		return nil, apperrors.ErrHireAccessDenied
	}

	return s.transition(db, hire, models.HireStatusCancelled, map[string]interface{}{
		"cancelled_at": time.Now(),
	})
}

// CreateGuestHire регистрирует работу с клиентом вне платформы.
// Специалист получает одноразовый токен отзыва и передает его клиенту.
func (s *HireService) CreateGuestHire(db *gorm.DB, callerUserID string, req dto.CreateGuestHireRequest) (*dto.GuestHireResponse, error) {
	professional, err := s.professionalRepo.FindByUserID(db, callerUserID)
	if err != nil {
		if err == repositories.ErrProfessionalNotFound {
			return nil, apperrors.ErrNotProfessional
		}
		return nil, err
	}

	token := uuid.NewString()
	now := time.Now()
	hire := &models.Hire{
		ProfessionalID:   professional.ID,
		Status:           models.HireStatusInProgress,
		ProposalMessage:  req.Message,
		StartedAt:        &now,
		GuestClientName:  req.GuestName,
		GuestClientEmail: req.GuestEmail,
		ReviewToken:      &token,
	}

	if err := s.hireRepo.Create(db, hire); err != nil {
		return nil, err
	}

	logger.Info("guest hire created", "hire_id", hire.ID, "professional_id", professional.ID)

	return &dto.GuestHireResponse{
		Hire:        dto.ToHireResponse(hire),
		ReviewToken: token,
	}, nil
}

func (s *HireService) ListForClient(db *gorm.DB, clientID string, status models.HireStatus) ([]dto.HireResponse, error) {
	hires, err := s.hireRepo.FindByClient(db, clientID, status)
	if err != nil {
		return nil, err
	}
	return dto.ToHireResponses(hires), nil
}

func (s *HireService) ListForProfessional(db *gorm.DB, callerUserID string, status models.HireStatus) ([]dto.HireResponse, error) {
	professional, err := s.professionalRepo.FindByUserID(db, callerUserID)
	if err != nil {
		if err == repositories.ErrProfessionalNotFound {
			return nil, apperrors.ErrNotProfessional
		}
		return nil, err
	}
	hires, err := s.hireRepo.FindByProfessional(db, professional.ID, status)
	if err != nil {
		return nil, err
	}
	return dto.ToHireResponses(hires), nil
}

func (s *HireService) GetHire(db *gorm.DB, hireID, callerUserID string) (*dto.HireResponse, error) {
	hire, err := s.hireRepo.FindByID(db, hireID)
	if err != nil {
		if err == repositories.ErrHireNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, err
	}

	isClient := hire.ClientID != nil && *hire.ClientID == callerUserID
	if !isClient && hire.Professional.UserID != callerUserID {
		return nil, apperrors.ErrHireAccessDenied
	}

	resp := dto.ToHireResponse(hire)
	return &resp, nil
}

// transition выполняет переход статуса через единую таблицу переходов
// и охраняемую запись; после успеха перечитывает заявку.
func (s *HireService) transition(db *gorm.DB, hire *models.Hire, to models.HireStatus, extra map[string]interface{}) (*dto.HireResponse, error) {
	if !models.CanTransition(hire.Status, to) {
		return nil, apperrors.ErrInvalidHireTransition.WithDetails(
			fmt.Sprintf("cannot move from %s to %s", hire.Status, to))
	}

	if err := s.hireRepo.UpdateStatusGuarded(db, hire.ID, hire.Status, to, extra); err != nil {
		switch err {
		case repositories.ErrHireNotFound:
			return nil, apperrors.ErrNotFound(err)
		case repositories.ErrHireStatusChanged:
			return nil, apperrors.ErrInvalidHireTransition.WithError(err)
		}
		return nil, err
	}

	s.metrics.RecordHireTransition(string(to))
	logger.Info("hire status changed", "hire_id", hire.ID, "from", hire.Status, "to", to)

	updated, err := s.hireRepo.FindByID(db, hire.ID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToHireResponse(updated)
	return &resp, nil
}

func (s *HireService) loadHireForProfessional(db *gorm.DB, hireID, callerUserID string) (*models.Hire, error) {
	hire, err := s.hireRepo.FindByID(db, hireID)
	if err != nil {
		if err == repositories.ErrHireNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, err
	}
	if hire.Professional.UserID != callerUserID {
		return nil, apperrors.ErrHireAccessDenied
	}
	return hire, nil
}

func (s *HireService) loadHireForClient(db *gorm.DB, hireID, callerUserID string) (*models.Hire, error) {
	hire, err := s.hireRepo.FindByID(db, hireID)
	if err != nil {
		if err == repositories.ErrHireNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, err
	}
	if hire.ClientID == nil || *hire.ClientID != callerUserID {
		return nil, apperrors.ErrHireAccessDenied
	}
	return hire, nil
}
