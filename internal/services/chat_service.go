package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/config"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/metrics"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/models/chat"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/repositories"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/services/dto"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/pkg/apperrors"
)

// MessagePublisher доставляет новые сообщения live-подписчикам диалога.
// Реализуется ws-хабом; nil-значение допустимо в тестах.
type MessagePublisher interface {
	Publish(conversationID string, message dto.MessageResponse)
}

type ChatService struct {
	chatRepo  repositories.ChatRepository
	userRepo  repositories.UserRepository
	publisher MessagePublisher

	notificationService *NotificationService
	metrics             *metrics.Collector
}

func NewChatService(
	chatRepo repositories.ChatRepository,
	userRepo repositories.UserRepository,
	publisher MessagePublisher,
	notificationService *NotificationService,
	collector *metrics.Collector,
) *ChatService {
	return &ChatService{
		chatRepo:            chatRepo,
		userRepo:            userRepo,
		publisher:           publisher,
		notificationService: notificationService,
		metrics:             collector,
	}
}

// StartConversation открывает (или находит существующий) диалог с собеседником.
func (s *ChatService) StartConversation(db *gorm.DB, userID, recipientID string) (*dto.ConversationResponse, error) {
	if userID == recipientID {
		return nil, apperrors.ErrSelfConversation
	}

	if _, err := s.userRepo.FindByID(db, recipientID); err != nil {
		if err == repositories.ErrUserNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, err
	}

	conversation, err := s.chatRepo.GetOrCreateConversation(db, userID, recipientID)
	if err != nil {
		return nil, err
	}

	resp := toConversationResponse(conversation, userID, nil, 0)
	return &resp, nil
}

func (s *ChatService) ListConversations(db *gorm.DB, userID string) ([]dto.ConversationResponse, error) {
	items, err := s.chatRepo.FindUserConversations(db, userID)
	if err != nil {
		return nil, err
	}

	result := make([]dto.ConversationResponse, 0, len(items))
	for i := range items {
		result = append(result, toConversationResponse(
			&items[i].Conversation, userID, items[i].LastMessage, items[i].UnreadCount))
	}
	return result, nil
}

// GetMessages возвращает историю диалога и попутно помечает входящие
// сообщения прочитанными.
func (s *ChatService) GetMessages(db *gorm.DB, conversationID, userID string, criteria repositories.MessageCriteria) ([]dto.MessageResponse, int64, error) {
	if _, err := s.authorizeParticipant(db, conversationID, userID); err != nil {
		return nil, 0, err
	}

	messages, total, err := s.chatRepo.FindMessagesByConversation(db, conversationID, criteria)
	if err != nil {
		return nil, 0, err
	}

	if _, err := s.chatRepo.MarkMessagesAsRead(db, conversationID, userID); err != nil {
		return nil, 0, err
	}

	return dto.ToMessageResponses(messages), total, nil
}

// SendMessage отправляет сообщение. Для специалистов без действующей
// подписки действует месячный лимит бесплатных сообщений.
func (s *ChatService) SendMessage(db *gorm.DB, conversationID, senderID, content string) (*dto.MessageResponse, error) {
	conversation, err := s.authorizeParticipant(db, conversationID, senderID)
	if err != nil {
		return nil, err
	}

	sender, err := s.userRepo.FindByID(db, senderID)
	if err != nil {
		return nil, err
	}

	if sender.IsProfessional && !IsEntitled(sender, time.Now()) {
		if err := s.checkMessageQuota(db, senderID); err != nil {
			return nil, err
		}
	}

	message := &chat.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        content,
	}
	if err := s.chatRepo.CreateMessage(db, message); err != nil {
		return nil, err
	}

	s.metrics.RecordMessageSent()

	resp := dto.ToMessageResponse(message)
	if s.publisher != nil {
		s.publisher.Publish(conversationID, resp)
	}

	recipientID := conversation.OtherParticipant(senderID)
	s.notificationService.Notify(db, recipientID, &senderID,
		NotificationNewMessage,
		"Nuevo mensaje",
		"Has recibido un nuevo mensaje",
		map[string]interface{}{"conversation_id": conversationID, "message_id": message.ID},
	)

	return &resp, nil
}

func (s *ChatService) UnreadCount(db *gorm.DB, conversationID, userID string) (int64, error) {
	if _, err := s.authorizeParticipant(db, conversationID, userID); err != nil {
		return 0, err
	}
	return s.chatRepo.GetUnreadCount(db, conversationID, userID)
}

// AuthorizeSubscriber используется ws-хендлером перед подпиской на диалог.
func (s *ChatService) AuthorizeSubscriber(db *gorm.DB, conversationID, userID string) error {
	_, err := s.authorizeParticipant(db, conversationID, userID)
	return err
}

func (s *ChatService) checkMessageQuota(db *gorm.DB, senderID string) error {
	// Окно квоты - календарный месяц в UTC
	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	sent, err := s.chatRepo.CountMessagesSentSince(db, senderID, monthStart)
	if err != nil {
		return err
	}

	limit := int64(config.GetConfig().Limits.FreeMessagesPerMonth)
	if sent >= limit {
		return apperrors.ErrMessageLimitReached
	}
	return nil
}

func (s *ChatService) authorizeParticipant(db *gorm.DB, conversationID, userID string) (*chat.Conversation, error) {
	conversation, err := s.chatRepo.FindConversationByID(db, conversationID)
	if err != nil {
		if err == repositories.ErrConversationNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, err
	}
	if !conversation.HasParticipant(userID) {
		return nil, apperrors.ErrConversationAccessDenied
	}
	return conversation, nil
}

func toConversationResponse(c *chat.Conversation, viewerID string, last *chat.Message, unread int64) dto.ConversationResponse {
	resp := dto.ConversationResponse{
		ID:            c.ID,
		OtherUserID:   c.OtherParticipant(viewerID),
		UnreadCount:   unread,
		LastMessageAt: c.LastMessageAt,
		CreatedAt:     c.CreatedAt,
	}
	if last != nil {
		m := dto.ToMessageResponse(last)
		resp.LastMessage = &m
	}
	return resp
}
