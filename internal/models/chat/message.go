package chat

import "time"

// Message создается при отправке; после вставки мутируется только флаг Read.
type Message struct {
	ID             string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	ConversationID string `gorm:"type:uuid;index;not null"`
	SenderID       string `gorm:"type:uuid;index;not null"`
	Content        string `gorm:"type:text;not null"`
	Read           bool   `gorm:"default:false"`
	CreatedAt      time.Time
}

func (Message) TableName() string {
	return "chat.messages"
}
