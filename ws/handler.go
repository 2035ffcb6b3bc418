package ws

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"

	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/logger"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/middleware"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/services"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/pkg/apperrors"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/pkg/contextkeys"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Кросс-доменные подключения разрешены, авторизация своя (JWT)
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Handler struct {
	hub         *Hub
	chatService *services.ChatService
}

func NewHandler(hub *Hub, chatService *services.ChatService) *Handler {
	return &Handler{hub: hub, chatService: chatService}
}

// Serve - GET /ws/conversations/:id. Требует AuthMiddleware выше по цепочке
// (токен для браузерных клиентов передается query-параметром).
func (h *Handler) Serve(c *gin.Context) {
	userID := middleware.GetUserID(c)
	conversationID := c.Param("id")

	db, ok := c.MustGet(string(contextkeys.DBContextKey)).(*gorm.DB)
	if !ok {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	if err := h.chatService.AuthorizeSubscriber(db, conversationID, userID); err != nil {
		status := http.StatusForbidden
		if appErr, ok := apperrors.AsAppError(err); ok {
			status = appErr.HTTPCode
		}
		c.AbortWithStatusJSON(status, gin.H{"error": "access denied"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.WithError(err).Warn("ws upgrade failed", "conversation_id", conversationID)
		return
	}

	sub := h.hub.Subscribe(conversationID, userID)
	cl := &client{conn: conn, sub: sub}
	go cl.serve()
}
