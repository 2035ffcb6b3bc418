package models

import "time"

type Professional struct {
	BaseModel
	UserID     string `gorm:"not null;uniqueIndex"`
	Profession string `gorm:"not null"`
	Category   string `gorm:"index"`
	City       string `gorm:"index"`
	About      string
	HourlyRate float64

	// Агрегаты рейтинга; мутируются только путем пересчета при вставке отзыва
	Rating      float64 `gorm:"default:0"`
	RatingCount int     `gorm:"default:0"`

	IsActive   bool `gorm:"default:true"`
	IsVerified bool `gorm:"default:false"`

	// Денормализованное зеркало подписки владельца (User)
	IsPremium    bool `gorm:"default:false"`
	PremiumUntil *time.Time

	// Relations
	User User `gorm:"foreignKey:UserID"`
}
