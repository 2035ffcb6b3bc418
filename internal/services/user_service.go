package services

import (
	"gorm.io/gorm"

	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/repositories"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/services/dto"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/pkg/apperrors"
)

type UserService struct {
	userRepo         repositories.UserRepository
	professionalRepo repositories.ProfessionalRepository
}

func NewUserService(userRepo repositories.UserRepository, professionalRepo repositories.ProfessionalRepository) *UserService {
	return &UserService{userRepo: userRepo, professionalRepo: professionalRepo}
}

func (s *UserService) GetProfile(db *gorm.DB, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, err
	}
	resp := dto.ToUserResponse(user)
	return &resp, nil
}

func (s *UserService) UpdateContactInfo(db *gorm.DB, userID string, req dto.UpdateContactRequest) (*dto.UserResponse, error) {
	if err := s.userRepo.UpdateContactInfo(db, userID, req.Phone, req.Address); err != nil {
		if err == repositories.ErrUserNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, err
	}
	return s.GetProfile(db, userID)
}

func (s *UserService) UpdateProfessionalProfile(db *gorm.DB, userID string, req dto.UpdateProfessionalRequest) (*dto.ProfessionalResponse, error) {
	professional, err := s.professionalRepo.FindByUserID(db, userID)
	if err != nil {
		if err == repositories.ErrProfessionalNotFound {
			return nil, apperrors.ErrNotProfessional
		}
		return nil, err
	}

	if req.Profession != "" {
		professional.Profession = req.Profession
	}
	if req.Category != "" {
		professional.Category = req.Category
	}
	if req.City != "" {
		professional.City = req.City
	}
	if req.About != "" {
		professional.About = req.About
	}
	if req.HourlyRate > 0 {
		professional.HourlyRate = req.HourlyRate
	}

	if err := s.professionalRepo.Update(db, professional); err != nil {
		return nil, err
	}

	updated, err := s.professionalRepo.FindByID(db, professional.ID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToProfessionalResponse(updated)
	return &resp, nil
}

func (s *UserService) GetProfessional(db *gorm.DB, professionalID string) (*dto.ProfessionalResponse, error) {
	professional, err := s.professionalRepo.FindByID(db, professionalID)
	if err != nil {
		if err == repositories.ErrProfessionalNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, err
	}
	resp := dto.ToProfessionalResponse(professional)
	return &resp, nil
}

func (s *UserService) ListProfessionals(db *gorm.DB, criteria repositories.ProfessionalCriteria) ([]dto.ProfessionalResponse, int64, error) {
	professionals, total, err := s.professionalRepo.List(db, criteria)
	if err != nil {
		return nil, 0, err
	}
	result := make([]dto.ProfessionalResponse, 0, len(professionals))
	for i := range professionals {
		result = append(result, dto.ToProfessionalResponse(&professionals[i]))
	}
	return result, total, nil
}
