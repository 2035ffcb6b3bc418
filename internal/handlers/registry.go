package handlers

import (
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/services"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/validator"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/ws"
)

// AppHandlers - все HTTP-хендлеры приложения, собранные за один проход.
type AppHandlers struct {
	Auth          *AuthHandler
	User          *UserHandler
	Hire          *HireHandler
	Chat          *ChatHandler
	Review        *ReviewHandler
	Subscription  *SubscriptionHandler
	Notifications *NotificationHandler
	WS            *ws.Handler
}

func NewAppHandlers(container *services.ServiceContainer, hub *ws.Hub, v *validator.Validator) *AppHandlers {
	base := NewBaseHandler(v)
	return &AppHandlers{
		Auth:          NewAuthHandler(base, container.Auth),
		User:          NewUserHandler(base, container.User),
		Hire:          NewHireHandler(base, container.Hire),
		Chat:          NewChatHandler(base, container.Chat),
		Review:        NewReviewHandler(base, container.Review),
		Subscription:  NewSubscriptionHandler(base, container.Subscription),
		Notifications: NewNotificationHandler(base, container.Notifications),
		WS:            ws.NewHandler(hub, container.Chat),
	}
}
