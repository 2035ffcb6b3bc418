package chat

import "time"

// Conversation - диалог ровно двух участников.
// Пара хранится в каноническом порядке (UserLowID < UserHighID), поэтому
// (A,B) и (B,A) всегда разрешаются в одну и ту же строку; уникальный
// составной индекс закрывает гонку одновременного первого контакта.
type Conversation struct {
	ID            string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserLowID     string `gorm:"type:uuid;not null;index:idx_conversation_pair,unique"`
	UserHighID    string `gorm:"type:uuid;not null;index:idx_conversation_pair,unique"`
	LastMessageAt *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Messages []Message `gorm:"foreignKey:ConversationID"`
}

func (Conversation) TableName() string {
	return "chat.conversations"
}

// Participants возвращает обе стороны диалога.
func (c *Conversation) Participants() [2]string {
	return [2]string{c.UserLowID, c.UserHighID}
}

// HasParticipant проверяет, состоит ли пользователь в диалоге.
func (c *Conversation) HasParticipant(userID string) bool {
	return c.UserLowID == userID || c.UserHighID == userID
}

// OtherParticipant возвращает собеседника указанного пользователя.
func (c *Conversation) OtherParticipant(userID string) string {
	if c.UserLowID == userID {
		return c.UserHighID
	}
	return c.UserLowID
}

// CanonicalPair возвращает пару id в каноническом порядке.
func CanonicalPair(userA, userB string) (low, high string) {
	if userA < userB {
		return userA, userB
	}
	return userB, userA
}
