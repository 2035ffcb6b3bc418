package services

import (
	"gorm.io/gorm"

	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/auth"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/logger"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/models"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/repositories"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/services/dto"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/pkg/apperrors"
)

type AuthService struct {
	userRepo         repositories.UserRepository
	professionalRepo repositories.ProfessionalRepository
}

func NewAuthService(userRepo repositories.UserRepository, professionalRepo repositories.ProfessionalRepository) *AuthService {
	return &AuthService{userRepo: userRepo, professionalRepo: professionalRepo}
}

// Register создает пользователя; для специалиста - в той же транзакции
// и профиль Professional.
func (s *AuthService) Register(db *gorm.DB, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:          req.Email,
		PasswordHash:   hash,
		Name:           req.Name,
		Phone:          req.Phone,
		IsProfessional: req.IsProfessional,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.Create(tx, user); err != nil {
			if err == repositories.ErrUserAlreadyExists {
				return apperrors.ErrEmailAlreadyExists
			}
			return err
		}

		if req.IsProfessional {
			professional := &models.Professional{
				UserID:     user.ID,
				Profession: req.Profession,
				Category:   req.Category,
				City:       req.City,
			}
			if err := s.professionalRepo.Create(tx, professional); err != nil {
				return err
			}
			user.Professional = professional
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	token, err := auth.GenerateToken(user.ID, user.IsProfessional)
	if err != nil {
		return nil, err
	}

	logger.Info("user registered", "user_id", user.ID, "is_professional", user.IsProfessional)

	return &dto.AuthResponse{Token: token, User: dto.ToUserResponse(user)}, nil
}

// EmailExists используется фронтендом до отправки формы регистрации.
func (s *AuthService) EmailExists(db *gorm.DB, email string) (bool, error) {
	return s.userRepo.EmailExists(db, email)
}

func (s *AuthService) Login(db *gorm.DB, req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, user.IsProfessional)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{Token: token, User: dto.ToUserResponse(user)}, nil
}
