package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/models"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

type UserRepository interface {
	Create(db *gorm.DB, user *models.User) error
	FindByID(db *gorm.DB, id string) (*models.User, error)
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	EmailExists(db *gorm.DB, email string) (bool, error)
	Update(db *gorm.DB, user *models.User) error
	UpdateContactInfo(db *gorm.DB, userID, phone, address string) error
	UpdateSubscription(db *gorm.DB, userID string, subType models.SubscriptionType, status models.SubscriptionStatus, start, end *time.Time) error
	SetSubscriptionStatus(db *gorm.DB, userID string, status models.SubscriptionStatus) error
	ExpireSubscriptions(db *gorm.DB, now time.Time) (int64, error)
}

type UserRepositoryImpl struct{}

func NewUserRepository() UserRepository {
	return &UserRepositoryImpl{}
}

func (r *UserRepositoryImpl) Create(db *gorm.DB, user *models.User) error {
	var existing models.User
	if err := db.Where("email = ?", user.Email).First(&existing).Error; err == nil {
		return ErrUserAlreadyExists
	}
	if err := db.Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (r *UserRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	err := db.Preload("Professional").First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	err := db.Preload("Professional").Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) EmailExists(db *gorm.DB, email string) (bool, error) {
	var count int64
	err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *UserRepositoryImpl) Update(db *gorm.DB, user *models.User) error {
	result := db.Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
		"name":       user.Name,
		"phone":      user.Phone,
		"address":    user.Address,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) UpdateContactInfo(db *gorm.DB, userID, phone, address string) error {
	result := db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"phone":   phone,
		"address": address,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) UpdateSubscription(db *gorm.DB, userID string, subType models.SubscriptionType, status models.SubscriptionStatus, start, end *time.Time) error {
	result := db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"subscription_type":       subType,
		"subscription_status":     status,
		"subscription_start_date": start,
		"subscription_end_date":   end,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// ExpireSubscriptions переводит в expired подписки с прошедшим end_date.
// Отмененные тоже: после конца оплаченного периода entitlement закрыт.
func (r *UserRepositoryImpl) ExpireSubscriptions(db *gorm.DB, now time.Time) (int64, error) {
	result := db.Model(&models.User{}).
		Where("subscription_status IN ? AND subscription_end_date IS NOT NULL AND subscription_end_date < ?",
			[]models.SubscriptionStatus{models.SubscriptionStatusActive, models.SubscriptionStatusCancelled}, now).
		Update("subscription_status", models.SubscriptionStatusExpired)
	return result.RowsAffected, result.Error
}

// SetSubscriptionStatus меняет только статус; end_date намеренно не трогаем -
// при отмене entitlement действует до конца оплаченного периода.
func (r *UserRepositoryImpl) SetSubscriptionStatus(db *gorm.DB, userID string, status models.SubscriptionStatus) error {
	result := db.Model(&models.User{}).Where("id = ?", userID).Update("subscription_status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
