package dto

import (
	"encoding/json"
	"time"

	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/models"
)

type NotificationResponse struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Title     string          `json:"title"`
	Message   string          `json:"message,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	IsRead    bool            `json:"is_read"`
	ReadAt    *time.Time      `json:"read_at,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

func ToNotificationResponse(n *models.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Data:      json.RawMessage(n.Data),
		IsRead:    n.IsRead,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}

func ToNotificationResponses(notifications []models.Notification) []NotificationResponse {
	result := make([]NotificationResponse, 0, len(notifications))
	for i := range notifications {
		result = append(result, ToNotificationResponse(&notifications[i]))
	}
	return result
}
