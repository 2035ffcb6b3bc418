package models

// Review - отзыв клиента (или гостя) о специалисте.
// Уникальный индекс по hire_id - гарантия "не более одного отзыва на заявку"
// на уровне хранилища, а не только проверки в сервисе.
type Review struct {
	BaseModel
	HireID         string  `gorm:"type:uuid;not null;uniqueIndex"`
	ProfessionalID string  `gorm:"type:uuid;not null;index"`
	ReviewerID     *string `gorm:"type:uuid;index"`
	GuestName      string
	Rating         int `gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment        string
	IsGuestReview  bool `gorm:"default:false"`

	// Relations
	Hire         Hire         `gorm:"foreignKey:HireID"`
	Professional Professional `gorm:"foreignKey:ProfessionalID"`
}

// ClientReview - отзыв специалиста о клиенте.
// Не более одного на пару (клиент, специалист) по завершенной заявке.
type ClientReview struct {
	BaseModel
	HireID         string `gorm:"type:uuid;not null;index"`
	ClientID       string `gorm:"type:uuid;not null;index:idx_client_reviews_pair,unique"`
	ProfessionalID string `gorm:"type:uuid;not null;index:idx_client_reviews_pair,unique"`
	Rating         int    `gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment        string

	// Relations
	Hire Hire `gorm:"foreignKey:HireID"`
}
