package dto

import (
	"time"

	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/models/chat"
)

type StartConversationRequest struct {
	RecipientID string `json:"recipient_id" validate:"required,uuid"`
}

type SendMessageRequest struct {
	Content string `json:"content" validate:"required,min=1,max=5000"`
}

type ConversationResponse struct {
	ID            string           `json:"id"`
	OtherUserID   string           `json:"other_user_id"`
	LastMessage   *MessageResponse `json:"last_message,omitempty"`
	UnreadCount   int64            `json:"unread_count"`
	LastMessageAt *time.Time       `json:"last_message_at,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}

type MessageResponse struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	SenderID       string    `json:"sender_id"`
	Content        string    `json:"content"`
	Read           bool      `json:"read"`
	CreatedAt      time.Time `json:"created_at"`
}

func ToMessageResponse(m *chat.Message) MessageResponse {
	return MessageResponse{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Content:        m.Content,
		Read:           m.Read,
		CreatedAt:      m.CreatedAt,
	}
}

func ToMessageResponses(messages []chat.Message) []MessageResponse {
	result := make([]MessageResponse, 0, len(messages))
	for i := range messages {
		result = append(result, ToMessageResponse(&messages[i]))
	}
	return result
}
