package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/handlers"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/metrics"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/middleware"
)

// Setup вешает все маршруты приложения на роутер.
func Setup(router *gin.Engine, h *handlers.AppHandlers) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", metrics.Handler())

	api := router.Group("/api")

	// Публичные маршруты
	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.GET("/email-exists", h.Auth.EmailExists)
	}

	api.GET("/professionals", h.User.ListProfessionals)
	api.GET("/professionals/:id", h.User.GetProfessional)
	api.GET("/professionals/:id/reviews", h.Review.ListByProfessional)

	// Гостевой отзыв по одноразовому токену
	api.GET("/review/:token", h.Review.GetHireByToken)
	api.POST("/review/:token", h.Review.CreateGuestReview)

	// Webhook платежного провайдера
	api.POST("/subscriptions/webhook", h.Subscription.Webhook)

	// Маршруты под JWT
	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware())
	{
		authed.GET("/users/me", h.User.GetProfile)
		authed.PUT("/users/me/contact", h.User.UpdateContactInfo)
		authed.PUT("/professionals/me", middleware.ProfessionalOnly(), h.User.UpdateProfessionalProfile)

		hires := authed.Group("/hires")
		{
			hires.POST("", h.Hire.Create)
			hires.GET("", h.Hire.ListMine)
			hires.POST("/guest", middleware.ProfessionalOnly(), h.Hire.CreateGuest)
			hires.GET("/:id", h.Hire.Get)
			hires.POST("/:id/respond", middleware.ProfessionalOnly(), h.Hire.Respond)
			hires.POST("/:id/request-completion", middleware.ProfessionalOnly(), h.Hire.RequestCompletion)
			hires.POST("/:id/complete", h.Hire.Complete)
			hires.POST("/:id/dispute", h.Hire.Dispute)
			hires.POST("/:id/cancel", h.Hire.Cancel)
		}

		conversations := authed.Group("/conversations")
		{
			conversations.POST("", h.Chat.StartConversation)
			conversations.GET("", h.Chat.ListConversations)
			conversations.GET("/:id/messages", h.Chat.GetMessages)
			conversations.POST("/:id/messages", h.Chat.SendMessage)
			conversations.GET("/:id/unread", h.Chat.UnreadCount)
		}

		reviews := authed.Group("/reviews")
		{
			reviews.POST("", h.Review.Create)
			reviews.POST("/client", middleware.ProfessionalOnly(), h.Review.CreateClientReview)
		}

		authed.GET("/clients/:id/reviews", middleware.ProfessionalOnly(), h.Review.ListClientReviews)

		subscriptions := authed.Group("/subscriptions")
		{
			subscriptions.POST("/preference", middleware.ProfessionalOnly(), h.Subscription.CreatePreference)
			subscriptions.POST("/cancel", h.Subscription.Cancel)
			subscriptions.GET("/status", h.Subscription.Status)
		}

		notifications := authed.Group("/notifications")
		{
			notifications.GET("", h.Notifications.List)
			notifications.GET("/unread-count", h.Notifications.UnreadCount)
			notifications.POST("/read-all", h.Notifications.MarkAllRead)
			notifications.POST("/:id/read", h.Notifications.MarkRead)
		}
	}

	// Live-подписка на диалог: токен идет query-параметром
	router.GET("/ws/conversations/:id", middleware.AuthMiddleware(), h.WS.Serve)
}
