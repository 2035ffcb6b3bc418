package models

import "time"

// Hire - центральная сущность: одна рабочая заявка между клиентом и специалистом.
// ClientID == nil только для гостевых заявок, созданных вне платформы.
type Hire struct {
	BaseModel
	ClientID       *string    `gorm:"type:uuid;index"`
	ProfessionalID string     `gorm:"type:uuid;not null;index"`
	Status         HireStatus `gorm:"type:varchar(30);not null;default:'pending';index"`

	ProposalMessage string `gorm:"type:text"`

	StartedAt   *time.Time
	CompletedAt *time.Time
	CancelledAt *time.Time

	// Гостевой поток: заявка не привязана к аккаунту клиента,
	// отзыв авторизуется одноразовым непредсказуемым токеном
	GuestClientName  string
	GuestClientEmail string
	ReviewToken      *string `gorm:"uniqueIndex"`
	ReviewedByGuest  bool    `gorm:"default:false"`

	// Relations
	Client       *User        `gorm:"foreignKey:ClientID"`
	Professional Professional `gorm:"foreignKey:ProfessionalID"`
}
