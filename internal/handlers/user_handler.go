package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/repositories"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/services"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/services/dto"
)

type UserHandler struct {
	*BaseHandler
	userService *services.UserService
}

func NewUserHandler(base *BaseHandler, userService *services.UserService) *UserHandler {
	return &UserHandler{BaseHandler: base, userService: userService}
}

// GetProfile - GET /api/users/me
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := h.RequireUserID(c)
	if !ok {
		return
	}

	resp, err := h.userService.GetProfile(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateContactInfo - PUT /api/users/me/contact
func (h *UserHandler) UpdateContactInfo(c *gin.Context) {
	userID, ok := h.RequireUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateContactRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.userService.UpdateContactInfo(h.GetDB(c), userID, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateProfessionalProfile - PUT /api/professionals/me
func (h *UserHandler) UpdateProfessionalProfile(c *gin.Context) {
	userID, ok := h.RequireUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfessionalRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.userService.UpdateProfessionalProfile(h.GetDB(c), userID, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetProfessional - GET /api/professionals/:id
func (h *UserHandler) GetProfessional(c *gin.Context) {
	resp, err := h.userService.GetProfessional(h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListProfessionals - GET /api/professionals
func (h *UserHandler) ListProfessionals(c *gin.Context) {
	var criteria repositories.ProfessionalCriteria
	if !h.BindAndValidateQuery(c, &criteria) {
		return
	}

	professionals, total, err := h.userService.ListProfessionals(h.GetDB(c), criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"professionals": professionals, "total": total})
}
