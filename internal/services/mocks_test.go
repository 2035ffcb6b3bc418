package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/metrics"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/models"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/models/chat"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/repositories"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/services/dto"
	"github.com/prometheus/client_golang/prometheus"
)

// Моки репозиториев на функциональных полях: тест задает только то,
// что ему нужно, остальное паникует при неожиданном вызове.

type mockHireRepo struct {
	createFn              func(hire *models.Hire) error
	findByIDFn            func(id string) (*models.Hire, error)
	findByReviewTokenFn   func(token string) (*models.Hire, error)
	findActiveBetweenFn   func(clientID, professionalID string) (*models.Hire, error)
	updateStatusGuardedFn func(hireID string, from, to models.HireStatus, extra map[string]interface{}) error
	markGuestReviewedFn   func(hireID string) error
}

func (m *mockHireRepo) Create(db *gorm.DB, hire *models.Hire) error { return m.createFn(hire) }
func (m *mockHireRepo) FindByID(db *gorm.DB, id string) (*models.Hire, error) {
	return m.findByIDFn(id)
}
func (m *mockHireRepo) FindByReviewToken(db *gorm.DB, token string) (*models.Hire, error) {
	return m.findByReviewTokenFn(token)
}
func (m *mockHireRepo) FindActiveBetween(db *gorm.DB, clientID, professionalID string) (*models.Hire, error) {
	return m.findActiveBetweenFn(clientID, professionalID)
}
func (m *mockHireRepo) FindByClient(db *gorm.DB, clientID string, status models.HireStatus) ([]models.Hire, error) {
	return nil, nil
}
func (m *mockHireRepo) FindByProfessional(db *gorm.DB, professionalID string, status models.HireStatus) ([]models.Hire, error) {
	return nil, nil
}
func (m *mockHireRepo) UpdateStatusGuarded(db *gorm.DB, hireID string, from, to models.HireStatus, extra map[string]interface{}) error {
	return m.updateStatusGuardedFn(hireID, from, to, extra)
}
func (m *mockHireRepo) MarkGuestReviewed(db *gorm.DB, hireID string) error {
	return m.markGuestReviewedFn(hireID)
}

type mockProfessionalRepo struct {
	findByIDFn     func(id string) (*models.Professional, error)
	findByUserIDFn func(userID string) (*models.Professional, error)
}

func (m *mockProfessionalRepo) Create(db *gorm.DB, p *models.Professional) error { return nil }
func (m *mockProfessionalRepo) FindByID(db *gorm.DB, id string) (*models.Professional, error) {
	return m.findByIDFn(id)
}
func (m *mockProfessionalRepo) FindByUserID(db *gorm.DB, userID string) (*models.Professional, error) {
	return m.findByUserIDFn(userID)
}
func (m *mockProfessionalRepo) Update(db *gorm.DB, p *models.Professional) error { return nil }
func (m *mockProfessionalRepo) List(db *gorm.DB, criteria repositories.ProfessionalCriteria) ([]models.Professional, int64, error) {
	return nil, 0, nil
}
func (m *mockProfessionalRepo) SetPremium(db *gorm.DB, userID string, premium bool, until *time.Time) error {
	return nil
}
func (m *mockProfessionalRepo) RecalculateRating(db *gorm.DB, professionalID string) error {
	return nil
}
func (m *mockProfessionalRepo) ClearExpiredPremium(db *gorm.DB, now time.Time) (int64, error) {
	return 0, nil
}

type mockUserRepo struct {
	findByIDFn func(id string) (*models.User, error)
}

func (m *mockUserRepo) Create(db *gorm.DB, user *models.User) error { return nil }
func (m *mockUserRepo) FindByID(db *gorm.DB, id string) (*models.User, error) {
	return m.findByIDFn(id)
}
func (m *mockUserRepo) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	return nil, repositories.ErrUserNotFound
}
func (m *mockUserRepo) EmailExists(db *gorm.DB, email string) (bool, error) { return false, nil }
func (m *mockUserRepo) Update(db *gorm.DB, user *models.User) error         { return nil }
func (m *mockUserRepo) UpdateContactInfo(db *gorm.DB, userID, phone, address string) error {
	return nil
}
func (m *mockUserRepo) UpdateSubscription(db *gorm.DB, userID string, subType models.SubscriptionType, status models.SubscriptionStatus, start, end *time.Time) error {
	return nil
}
func (m *mockUserRepo) SetSubscriptionStatus(db *gorm.DB, userID string, status models.SubscriptionStatus) error {
	return nil
}
func (m *mockUserRepo) ExpireSubscriptions(db *gorm.DB, now time.Time) (int64, error) {
	return 0, nil
}

type mockChatRepo struct {
	getOrCreateFn      func(userA, userB string) (*chat.Conversation, error)
	findConversationFn func(id string) (*chat.Conversation, error)
	createMessageFn    func(message *chat.Message) error
	countSentSinceFn   func(senderID string, since time.Time) (int64, error)
}

func (m *mockChatRepo) GetOrCreateConversation(db *gorm.DB, userA, userB string) (*chat.Conversation, error) {
	return m.getOrCreateFn(userA, userB)
}
func (m *mockChatRepo) FindConversationByID(db *gorm.DB, id string) (*chat.Conversation, error) {
	return m.findConversationFn(id)
}
func (m *mockChatRepo) FindUserConversations(db *gorm.DB, userID string) ([]repositories.ConversationWithUnread, error) {
	return nil, nil
}
func (m *mockChatRepo) CreateMessage(db *gorm.DB, message *chat.Message) error {
	return m.createMessageFn(message)
}
func (m *mockChatRepo) FindMessagesByConversation(db *gorm.DB, conversationID string, criteria repositories.MessageCriteria) ([]chat.Message, int64, error) {
	return nil, 0, nil
}
func (m *mockChatRepo) MarkMessagesAsRead(db *gorm.DB, conversationID, readerID string) (int64, error) {
	return 0, nil
}
func (m *mockChatRepo) GetUnreadCount(db *gorm.DB, conversationID, readerID string) (int64, error) {
	return 0, nil
}
func (m *mockChatRepo) CountMessagesSentSince(db *gorm.DB, senderID string, since time.Time) (int64, error) {
	return m.countSentSinceFn(senderID, since)
}

type mockNotificationRepo struct {
	created []*models.Notification
}

func (m *mockNotificationRepo) Create(db *gorm.DB, n *models.Notification) error {
	m.created = append(m.created, n)
	return nil
}
func (m *mockNotificationRepo) FindByUser(db *gorm.DB, userID string, onlyUnread bool, criteria repositories.NotificationCriteria) ([]models.Notification, int64, error) {
	return nil, 0, nil
}
func (m *mockNotificationRepo) MarkAsRead(db *gorm.DB, notificationID, userID string) error {
	return nil
}
func (m *mockNotificationRepo) MarkAllAsRead(db *gorm.DB, userID string) (int64, error) {
	return 0, nil
}
func (m *mockNotificationRepo) CountUnread(db *gorm.DB, userID string) (int64, error) {
	return 0, nil
}

type mockEmailProvider struct {
	sent []string
}

func (m *mockEmailProvider) Send(to, subject, htmlBody string) error {
	m.sent = append(m.sent, to)
	return nil
}

type mockPublisher struct {
	published []string // conversation id каждого вызова
}

func (m *mockPublisher) Publish(conversationID string, message dto.MessageResponse) {
	m.published = append(m.published, conversationID)
}

func testCollector() *metrics.Collector {
	return metrics.NewCollector(prometheus.NewRegistry())
}

func testNotificationService(userRepo repositories.UserRepository) (*NotificationService, *mockNotificationRepo) {
	notifRepo := &mockNotificationRepo{}
	return NewNotificationService(notifRepo, userRepo, &mockEmailProvider{}, testCollector()), notifRepo
}
