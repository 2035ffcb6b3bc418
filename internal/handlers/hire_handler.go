package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/models"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/services"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/services/dto"
)

type HireHandler struct {
	*BaseHandler
	hireService *services.HireService
}

func NewHireHandler(base *BaseHandler, hireService *services.HireService) *HireHandler {
	return &HireHandler{BaseHandler: base, hireService: hireService}
}

// Create - POST /api/hires
func (h *HireHandler) Create(c *gin.Context) {
	userID, ok := h.RequireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateHireRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.hireService.CreateProposal(h.GetDB(c), userID, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Respond - POST /api/hires/:id/respond (специалист принимает или отклоняет)
func (h *HireHandler) Respond(c *gin.Context) {
	userID, ok := h.RequireUserID(c)
	if !ok {
		return
	}

	var req dto.RespondToHireRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.hireService.RespondToProposal(h.GetDB(c), c.Param("id"), userID, req.Accept)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RequestCompletion - POST /api/hires/:id/request-completion
func (h *HireHandler) RequestCompletion(c *gin.Context) {
	userID, ok := h.RequireUserID(c)
	if !ok {
		return
	}

	resp, err := h.hireService.RequestCompletion(h.GetDB(c), c.Param("id"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Complete - POST /api/hires/:id/complete (подтверждение клиента)
func (h *HireHandler) Complete(c *gin.Context) {
	userID, ok := h.RequireUserID(c)
	if !ok {
		return
	}

	resp, err := h.hireService.CompleteEngagement(h.GetDB(c), c.Param("id"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Dispute - POST /api/hires/:id/dispute (клиент возвращает в работу)
func (h *HireHandler) Dispute(c *gin.Context) {
	userID, ok := h.RequireUserID(c)
	if !ok {
		return
	}

	resp, err := h.hireService.DisputeCompletion(h.GetDB(c), c.Param("id"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cancel - POST /api/hires/:id/cancel (любая сторона)
func (h *HireHandler) Cancel(c *gin.Context) {
	userID, ok := h.RequireUserID(c)
	if !ok {
		return
	}

	resp, err := h.hireService.CancelEngagement(h.GetDB(c), c.Param("id"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreateGuest - POST /api/hires/guest (только специалисты)
func (h *HireHandler) CreateGuest(c *gin.Context) {
	userID, ok := h.RequireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateGuestHireRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.hireService.CreateGuestHire(h.GetDB(c), userID, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Get - GET /api/hires/:id
func (h *HireHandler) Get(c *gin.Context) {
	userID, ok := h.RequireUserID(c)
	if !ok {
		return
	}

	resp, err := h.hireService.GetHire(h.GetDB(c), c.Param("id"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListMine - GET /api/hires?role=client|professional&status=...
func (h *HireHandler) ListMine(c *gin.Context) {
	userID, ok := h.RequireUserID(c)
	if !ok {
		return
	}

	var query dto.ListHiresQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}
	status := models.HireStatus(query.Status)

	var (
		hires []dto.HireResponse
		err   error
	)
	if query.Role == "professional" {
		hires, err = h.hireService.ListForProfessional(h.GetDB(c), userID, status)
	} else {
		hires, err = h.hireService.ListForClient(h.GetDB(c), userID, status)
	}
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hires": hires})
}
