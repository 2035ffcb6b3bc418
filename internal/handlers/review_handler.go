package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/repositories"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/services"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/services/dto"
)

type ReviewHandler struct {
	*BaseHandler
	reviewService *services.ReviewService
}

func NewReviewHandler(base *BaseHandler, reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{BaseHandler: base, reviewService: reviewService}
}

// Create - POST /api/reviews (авторизованный клиент)
func (h *ReviewHandler) Create(c *gin.Context) {
	userID, ok := h.RequireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateReviewRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.reviewService.SubmitReview(h.GetDB(c), userID, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// CreateClientReview - POST /api/reviews/client (специалист о клиенте)
func (h *ReviewHandler) CreateClientReview(c *gin.Context) {
	userID, ok := h.RequireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateClientReviewRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.reviewService.SubmitClientReview(h.GetDB(c), userID, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GetHireByToken - GET /api/review/:token (публичный, без авторизации)
func (h *ReviewHandler) GetHireByToken(c *gin.Context) {
	resp, err := h.reviewService.FetchHireByToken(h.GetDB(c), c.Param("token"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreateGuestReview - POST /api/review/:token (публичный, одноразовый)
func (h *ReviewHandler) CreateGuestReview(c *gin.Context) {
	var req dto.CreateGuestReviewRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.reviewService.SubmitGuestReview(h.GetDB(c), c.Param("token"), req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListClientReviews - GET /api/clients/:id/reviews (для специалистов:
// что другие специалисты писали об этом клиенте)
func (h *ReviewHandler) ListClientReviews(c *gin.Context) {
	if _, ok := h.RequireUserID(c); !ok {
		return
	}

	resp, err := h.reviewService.ListClientReviews(h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": resp})
}

// ListByProfessional - GET /api/professionals/:id/reviews
func (h *ReviewHandler) ListByProfessional(c *gin.Context) {
	var criteria repositories.ReviewCriteria
	if !h.BindAndValidateQuery(c, &criteria) {
		return
	}

	reviews, total, err := h.reviewService.ListForProfessional(h.GetDB(c), c.Param("id"), criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews, "total": total})
}
