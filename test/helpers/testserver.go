package helpers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/app"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/config"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/logger"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/metrics"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/pkg/contextkeys"
)

// TestConfig ставит тестовую конфигурацию процесса.
// paymentsBaseURL указывает на мок платежного провайдера (httptest).
func TestConfig(paymentsBaseURL string) {
	cfg := &config.Config{}
	cfg.Server.Env = "test"
	cfg.JWT.Secret = "integration-test-secret"
	cfg.JWT.TTL = 60
	cfg.Email.Enabled = false
	cfg.Payments.BaseURL = paymentsBaseURL
	cfg.Payments.AccessToken = "TEST-TOKEN"
	cfg.Payments.Currency = "ARS"
	cfg.Payments.PremiumAmount = 2999
	cfg.Limits.FreeMessagesPerMonth = 20
	config.AppConfig = cfg
	logger.Init("test")
	gin.SetMode(gin.TestMode)
}

// NewServer собирает полный роутер приложения поверх переданной БД.
// Каждый сервер получает свой prometheus-реестр.
func NewServer(db *gorm.DB) *gin.Engine {
	collector := metrics.NewCollector(prometheus.NewRegistry())
	container, hub := app.BuildServices(db, collector)
	return app.SetupRouter(db, container, hub)
}

// Request гонит HTTP-запрос через роутер, подкладывая тестовую транзакцию
// в context запроса (DBMiddleware отдаст ей приоритет перед пулом).
func Request(t *testing.T, router *gin.Engine, tx *gorm.DB, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	ctx := context.WithValue(req.Context(), contextkeys.DBContextKey, tx)
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// DecodeBody парсит JSON-ответ в out.
func DecodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out),
		"body: %s", rec.Body.String())
}

// RegisterUser регистрирует пользователя через API и возвращает токен и id.
func RegisterUser(t *testing.T, router *gin.Engine, tx *gorm.DB, email string, isProfessional bool) (token, userID string) {
	t.Helper()

	body := map[string]interface{}{
		"email":           email,
		"password":        "secret123",
		"name":            "Test User",
		"is_professional": isProfessional,
	}
	if isProfessional {
		body["profession"] = "Electricista"
		body["category"] = "hogar"
		body["city"] = "Buenos Aires"
	}

	rec := Request(t, router, tx, http.MethodPost, "/api/auth/register", "", body)
	require.Equal(t, http.StatusCreated, rec.Code, "register %s: %s", email, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	DecodeBody(t, rec, &resp)
	require.NotEmpty(t, resp.Token)
	return resp.Token, resp.User.ID
}

// ProfessionalID достает id профиля специалиста по его пользовательскому токену.
func ProfessionalID(t *testing.T, router *gin.Engine, tx *gorm.DB, token string) string {
	t.Helper()

	rec := Request(t, router, tx, http.MethodGet, "/api/users/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Professional *struct {
			ID string `json:"id"`
		} `json:"professional"`
	}
	DecodeBody(t, rec, &resp)
	require.NotNil(t, resp.Professional, "user has no professional profile")
	return resp.Professional.ID
}

// CreateHire создает заявку клиента к специалисту и возвращает ее id.
func CreateHire(t *testing.T, router *gin.Engine, tx *gorm.DB, clientToken, professionalID string) string {
	t.Helper()

	rec := Request(t, router, tx, http.MethodPost, "/api/hires", clientToken, map[string]interface{}{
		"professional_id":  professionalID,
		"proposal_message": "Necesito ayuda con la instalación eléctrica",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		ID string `json:"id"`
	}
	DecodeBody(t, rec, &resp)
	return resp.ID
}

// HirePath строит путь операции над заявкой.
func HirePath(hireID, action string) string {
	return fmt.Sprintf("/api/hires/%s/%s", hireID, action)
}
