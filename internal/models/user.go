package models

import "time"

type User struct {
	BaseModel
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Name         string `gorm:"not null"`
	// Контактные поля заполняются лениво, при первом редактировании профиля
	Phone   string
	Address string

	IsProfessional bool `gorm:"default:false"`

	SubscriptionType      SubscriptionType   `gorm:"type:varchar(20);default:'free'"`
	SubscriptionStatus    SubscriptionStatus `gorm:"type:varchar(20);default:'inactive'"`
	SubscriptionStartDate *time.Time
	SubscriptionEndDate   *time.Time

	// Relations
	Professional *Professional `gorm:"foreignKey:UserID"`
}
