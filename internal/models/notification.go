package models

import (
	"time"

	"gorm.io/datatypes"
)

type Notification struct {
	BaseModel
	UserID   string  `gorm:"type:uuid;not null;index"`
	SenderID *string `gorm:"type:uuid"`
	Type     string  `gorm:"not null"` // "solicitud_enviada", "nueva_resena", "nuevo_mensaje"
	Title    string  `gorm:"not null"`
	Message  string
	Data     datatypes.JSON `gorm:"type:jsonb"` // {"hire_id": "...", "review_id": "..."}
	IsRead   bool           `gorm:"default:false"`
	ReadAt   *time.Time
}

// PaymentEvent - журнал обработанных платежных событий.
// Уникальный payment_id делает webhook идемпотентным при повторной доставке.
type PaymentEvent struct {
	BaseModel
	PaymentID string `gorm:"not null;uniqueIndex"`
	UserID    string `gorm:"type:uuid;not null;index"`
	Status    string `gorm:"not null"`
	Amount    float64
	Currency  string
}
