package ws

import (
	"sync"

	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/logger"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/metrics"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/services/dto"
)

// Event - единица доставки подписчику.
type Event struct {
	Type    string               `json:"type"` // "message"
	Message *dto.MessageResponse `json:"message,omitempty"`
}

// Hub раздает события диалогов live-подписчикам.
// Реализует services.MessagePublisher.
type Hub struct {
	mu            sync.RWMutex
	subscriptions map[string]map[*Subscription]struct{} // conversationID -> подписки
	metrics       *metrics.Collector
}

// Subscription - подписка одного соединения на один диалог.
// Канал C закрывается при Close; Close безопасно звать многократно.
type Subscription struct {
	C <-chan Event

	hub            *Hub
	ch             chan Event
	conversationID string
	subscriberID   string

	mu     sync.Mutex
	seen   map[string]struct{} // id доставленных сообщений
	closed bool
	once   sync.Once
}

func NewHub(collector *metrics.Collector) *Hub {
	return &Hub{
		subscriptions: make(map[string]map[*Subscription]struct{}),
		metrics:       collector,
	}
}

// Subscribe регистрирует подписку на диалог. Владение подпиской у вызывающего:
// он обязан вызвать Close, когда соединение закрывается.
func (h *Hub) Subscribe(conversationID, subscriberID string) *Subscription {
	sub := &Subscription{
		hub:            h,
		ch:             make(chan Event, 32),
		conversationID: conversationID,
		subscriberID:   subscriberID,
		seen:           make(map[string]struct{}),
	}
	sub.C = sub.ch

	h.mu.Lock()
	if h.subscriptions[conversationID] == nil {
		h.subscriptions[conversationID] = make(map[*Subscription]struct{})
	}
	h.subscriptions[conversationID][sub] = struct{}{}
	h.mu.Unlock()

	h.metrics.SubscriptionOpened()
	logger.Debug("ws subscription opened", "conversation_id", conversationID, "subscriber_id", subscriberID)
	return sub
}

// Publish рассылает сообщение всем подписчикам диалога.
// Повторная публикация того же сообщения подписчику не доставляется:
// каждая подписка отслеживает id уже доставленных сообщений.
// Медленный подписчик с переполненным буфером событие пропускает.
func (h *Hub) Publish(conversationID string, message dto.MessageResponse) {
	h.mu.RLock()
	subs := make([]*Subscription, 0, len(h.subscriptions[conversationID]))
	for sub := range h.subscriptions[conversationID] {
		subs = append(subs, sub)
	}
	h.mu.RUnlock()

	event := Event{Type: "message", Message: &message}
	for _, sub := range subs {
		if !sub.markDelivered(message.ID) {
			continue
		}
		if !sub.trySend(event) {
			logger.Warn("ws subscriber buffer full, dropping event",
				"conversation_id", conversationID, "subscriber_id", sub.subscriberID)
		}
	}
}

// Close снимает подписку и закрывает канал событий.
// Закрытие канала сериализовано с trySend одним мьютексом: Publish,
// успевший взять снимок подписок до Close, в закрытый канал не пишет.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.mu.Lock()
		if subs, ok := s.hub.subscriptions[s.conversationID]; ok {
			delete(subs, s)
			if len(subs) == 0 {
				delete(s.hub.subscriptions, s.conversationID)
			}
		}
		s.hub.mu.Unlock()

		s.mu.Lock()
		s.closed = true
		close(s.ch)
		s.mu.Unlock()

		s.hub.metrics.SubscriptionClosed()
	})
}

// trySend кладет событие в буфер подписки. false - буфер переполнен.
// Закрытой подписке событие молча не доставляется.
func (s *Subscription) trySend(event Event) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return true
	}
	select {
	case s.ch <- event:
		return true
	default:
		return false
	}
}

// markDelivered возвращает false, если сообщение уже доставлялось этой подписке.
func (s *Subscription) markDelivered(messageID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seen[messageID]; ok {
		return false
	}
	s.seen[messageID] = struct{}{}
	return true
}
