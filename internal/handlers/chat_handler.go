package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/repositories"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/services"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/services/dto"
)

type ChatHandler struct {
	*BaseHandler
	chatService *services.ChatService
}

func NewChatHandler(base *BaseHandler, chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{BaseHandler: base, chatService: chatService}
}

// StartConversation - POST /api/conversations
func (h *ChatHandler) StartConversation(c *gin.Context) {
	userID, ok := h.RequireUserID(c)
	if !ok {
		return
	}

	var req dto.StartConversationRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.chatService.StartConversation(h.GetDB(c), userID, req.RecipientID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListConversations - GET /api/conversations
func (h *ChatHandler) ListConversations(c *gin.Context) {
	userID, ok := h.RequireUserID(c)
	if !ok {
		return
	}

	resp, err := h.chatService.ListConversations(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversations": resp})
}

// GetMessages - GET /api/conversations/:id/messages
func (h *ChatHandler) GetMessages(c *gin.Context) {
	userID, ok := h.RequireUserID(c)
	if !ok {
		return
	}

	var criteria repositories.MessageCriteria
	if !h.BindAndValidateQuery(c, &criteria) {
		return
	}

	messages, total, err := h.chatService.GetMessages(h.GetDB(c), c.Param("id"), userID, criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages, "total": total})
}

// SendMessage - POST /api/conversations/:id/messages
func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID, ok := h.RequireUserID(c)
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.chatService.SendMessage(h.GetDB(c), c.Param("id"), userID, req.Content)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// UnreadCount - GET /api/conversations/:id/unread
func (h *ChatHandler) UnreadCount(c *gin.Context) {
	userID, ok := h.RequireUserID(c)
	if !ok {
		return
	}

	count, err := h.chatService.UnreadCount(h.GetDB(c), c.Param("id"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread_count": count})
}
