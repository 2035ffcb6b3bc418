package services

// ServiceContainer - единая точка доступа ко всем сервисам приложения.
// Собирается один раз при старте, хендлеры получают его по ссылке.
type ServiceContainer struct {
	Auth          *AuthService
	User          *UserService
	Hire          *HireService
	Chat          *ChatService
	Review        *ReviewService
	Subscription  *SubscriptionService
	Notifications *NotificationService
}
