package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/middleware"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/validator"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/pkg/apperrors"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/pkg/contextkeys"
)

// BaseHandler - общие помощники для всех хендлеров: доступ к БД из
// контекста, биндинг с валидацией, единый перевод ошибок сервисов в HTTP.
type BaseHandler struct {
	Validator *validator.Validator
}

func NewBaseHandler(v *validator.Validator) *BaseHandler {
	return &BaseHandler{Validator: v}
}

// GetDB достает *gorm.DB, положенный DBMiddleware (пул или тестовую транзакцию).
func (h *BaseHandler) GetDB(c *gin.Context) *gorm.DB {
	db, ok := c.MustGet(string(contextkeys.DBContextKey)).(*gorm.DB)
	if !ok {
		panic("db missing from gin context: DBMiddleware not installed")
	}
	return db
}

// BindAndValidateJSON биндит JSON-тело и прогоняет кастомную валидацию.
// При ошибке пишет ответ сам и возвращает false.
func (h *BaseHandler) BindAndValidateJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		h.handleBindingError(c, err)
		return false
	}
	if err := h.Validator.Validate(obj); err != nil {
		h.handleBindingError(c, err)
		return false
	}
	return true
}

// BindAndValidateQuery - то же для query-параметров.
func (h *BaseHandler) BindAndValidateQuery(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		h.handleBindingError(c, err)
		return false
	}
	if err := h.Validator.Validate(obj); err != nil {
		h.handleBindingError(c, err)
		return false
	}
	return true
}

// RequireUserID возвращает id аутентифицированного пользователя.
// Пустой id означает дыру в роутинге (нет AuthMiddleware) - отвечаем 401.
func (h *BaseHandler) RequireUserID(c *gin.Context) (string, bool) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return "", false
	}
	return userID, true
}

// HandleServiceError переводит ошибку сервиса в HTTP-ответ.
func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	apperrors.HandleError(c, err)
}

func (h *BaseHandler) handleBindingError(c *gin.Context, err error) {
	if vErr, ok := err.(*validator.ValidationError); ok {
		appErr := apperrors.New(apperrors.CodeValidationFailed, "validation", "Validation failed", http.StatusBadRequest).
			WithDetails(vErr.Errors)
		c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: appErr})
		return
	}

	appErr := apperrors.New(apperrors.CodeValidationFailed, "validation", "Invalid request body", http.StatusBadRequest).
		WithDetails(err.Error())
	c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: appErr})
}
