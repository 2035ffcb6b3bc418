package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/models/chat"
)

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrMessageNotFound      = errors.New("message not found")
)

type ChatRepository interface {
	GetOrCreateConversation(db *gorm.DB, userA, userB string) (*chat.Conversation, error)
	FindConversationByID(db *gorm.DB, id string) (*chat.Conversation, error)
	FindUserConversations(db *gorm.DB, userID string) ([]ConversationWithUnread, error)

	CreateMessage(db *gorm.DB, message *chat.Message) error
	FindMessagesByConversation(db *gorm.DB, conversationID string, criteria MessageCriteria) ([]chat.Message, int64, error)
	MarkMessagesAsRead(db *gorm.DB, conversationID, readerID string) (int64, error)
	GetUnreadCount(db *gorm.DB, conversationID, readerID string) (int64, error)
	CountMessagesSentSince(db *gorm.DB, senderID string, since time.Time) (int64, error)
}

type ChatRepositoryImpl struct{}

type MessageCriteria struct {
	Limit  int `form:"limit" validate:"min=0,max=200"`
	Offset int `form:"offset" validate:"min=0"`
}

// ConversationWithUnread - элемент списка диалогов пользователя.
// Счетчик непрочитанных считается хранилищем, не клиентом.
type ConversationWithUnread struct {
	Conversation chat.Conversation `json:"conversation"`
	LastMessage  *chat.Message     `json:"last_message,omitempty"`
	UnreadCount  int64             `json:"unread_count"`
}

func NewChatRepository() ChatRepository {
	return &ChatRepositoryImpl{}
}

// GetOrCreateConversation разрешает неупорядоченную пару в единственный диалог.
// Пара канонизируется сортировкой id; гонку одновременного первого контакта
// закрывает уникальный индекс: при нарушении перечитываем созданную строку.
func (r *ChatRepositoryImpl) GetOrCreateConversation(db *gorm.DB, userA, userB string) (*chat.Conversation, error) {
	low, high := chat.CanonicalPair(userA, userB)

	var conversation chat.Conversation
	err := db.Where("user_low_id = ? AND user_high_id = ?", low, high).First(&conversation).Error
	if err == nil {
		return &conversation, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	conversation = chat.Conversation{UserLowID: low, UserHighID: high}
	if err := db.Create(&conversation).Error; err != nil {
		if isUniqueViolation(err) {
			// Собеседник успел создать диалог первым
			var existing chat.Conversation
			if err := db.Where("user_low_id = ? AND user_high_id = ?", low, high).First(&existing).Error; err != nil {
				return nil, err
			}
			return &existing, nil
		}
		return nil, err
	}
	return &conversation, nil
}

func (r *ChatRepositoryImpl) FindConversationByID(db *gorm.DB, id string) (*chat.Conversation, error) {
	var conversation chat.Conversation
	err := db.First(&conversation, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, err
	}
	return &conversation, nil
}

func (r *ChatRepositoryImpl) FindUserConversations(db *gorm.DB, userID string) ([]ConversationWithUnread, error) {
	var conversations []chat.Conversation
	err := db.Where("user_low_id = ? OR user_high_id = ?", userID, userID).
		Order("last_message_at DESC NULLS LAST").
		Find(&conversations).Error
	if err != nil {
		return nil, err
	}

	result := make([]ConversationWithUnread, 0, len(conversations))
	for _, conversation := range conversations {
		item := ConversationWithUnread{Conversation: conversation}

		var last chat.Message
		err := db.Where("conversation_id = ?", conversation.ID).
			Order("created_at DESC").
			First(&last).Error
		if err == nil {
			item.LastMessage = &last
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		unread, err := r.GetUnreadCount(db, conversation.ID, userID)
		if err != nil {
			return nil, err
		}
		item.UnreadCount = unread

		result = append(result, item)
	}
	return result, nil
}

func (r *ChatRepositoryImpl) CreateMessage(db *gorm.DB, message *chat.Message) error {
	if err := db.Create(message).Error; err != nil {
		return err
	}
	now := time.Now()
	return db.Model(&chat.Conversation{}).
		Where("id = ?", message.ConversationID).
		Update("last_message_at", now).Error
}

// FindMessagesByConversation возвращает сообщения в порядке возрастания
// created_at - этот порядок авторитетен для отображения.
func (r *ChatRepositoryImpl) FindMessagesByConversation(db *gorm.DB, conversationID string, criteria MessageCriteria) ([]chat.Message, int64, error) {
	var total int64
	if err := db.Model(&chat.Message{}).Where("conversation_id = ?", conversationID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := criteria.Limit
	if limit <= 0 {
		limit = 100
	}

	var messages []chat.Message
	err := db.Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Limit(limit).Offset(criteria.Offset).
		Find(&messages).Error
	return messages, total, err
}

// MarkMessagesAsRead помечает прочитанными все сообщения диалога,
// отправленные не самим читателем.
func (r *ChatRepositoryImpl) MarkMessagesAsRead(db *gorm.DB, conversationID, readerID string) (int64, error) {
	result := db.Model(&chat.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND read = ?", conversationID, readerID, false).
		Update("read", true)
	return result.RowsAffected, result.Error
}

func (r *ChatRepositoryImpl) GetUnreadCount(db *gorm.DB, conversationID, readerID string) (int64, error) {
	var count int64
	err := db.Model(&chat.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND read = ?", conversationID, readerID, false).
		Count(&count).Error
	return count, err
}

// CountMessagesSentSince считает отправленные пользователем сообщения
// с указанного момента; используется лимитом бесплатного тарифа.
func (r *ChatRepositoryImpl) CountMessagesSentSince(db *gorm.DB, senderID string, since time.Time) (int64, error) {
	var count int64
	err := db.Model(&chat.Message{}).
		Where("sender_id = ? AND created_at >= ?", senderID, since).
		Count(&count).Error
	return count, err
}
