package integration

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AgusWeb1999/ChooseYourWorker-sub001/test/helpers"
)

func TestReviewLifecycle(t *testing.T) {
	db := helpers.OpenTestDB(t)
	tx := helpers.WithTx(t, db)
	router := helpers.NewServer(db)

	clientToken, clientID := helpers.RegisterUser(t, router, tx, "rev-client@test.local", false)
	proToken, _ := helpers.RegisterUser(t, router, tx, "rev-pro@test.local", true)
	proID := helpers.ProfessionalID(t, router, tx, proToken)

	hireID := helpers.CreateHire(t, router, tx, clientToken, proID)

	// Отзыв по незавершенной заявке запрещен
	rec := helpers.Request(t, router, tx, http.MethodPost, "/api/reviews", clientToken,
		map[string]interface{}{"hire_id": hireID, "rating": 5, "comment": "excelente"})
	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())

	// Доводим заявку до completed
	rec = helpers.Request(t, router, tx, http.MethodPost, helpers.HirePath(hireID, "respond"), proToken,
		map[string]interface{}{"accept": true})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = helpers.Request(t, router, tx, http.MethodPost, helpers.HirePath(hireID, "complete"), clientToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Теперь отзыв проходит
	rec = helpers.Request(t, router, tx, http.MethodPost, "/api/reviews", clientToken,
		map[string]interface{}{"hire_id": hireID, "rating": 5, "comment": "excelente trabajo"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// Повторный отзыв по той же заявке - конфликт
	rec = helpers.Request(t, router, tx, http.MethodPost, "/api/reviews", clientToken,
		map[string]interface{}{"hire_id": hireID, "rating": 1, "comment": "intento duplicado"})
	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())

	// Рейтинг специалиста пересчитан
	rec = helpers.Request(t, router, tx, http.MethodGet, "/api/professionals/"+proID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var pro struct {
		Rating      float64 `json:"rating"`
		RatingCount int     `json:"rating_count"`
	}
	helpers.DecodeBody(t, rec, &pro)
	assert.Equal(t, 1, pro.RatingCount)
	assert.InDelta(t, 5.0, pro.Rating, 0.001)

	// Специалист оставляет отзыв о клиенте; второй по той же паре - конфликт
	rec = helpers.Request(t, router, tx, http.MethodPost, "/api/reviews/client", proToken,
		map[string]interface{}{"hire_id": hireID, "rating": 4, "comment": "buen cliente"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = helpers.Request(t, router, tx, http.MethodPost, "/api/reviews/client", proToken,
		map[string]interface{}{"hire_id": hireID, "rating": 2, "comment": "duplicado"})
	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())

	// Отзывы о клиенте видны другим специалистам
	rec = helpers.Request(t, router, tx, http.MethodGet, "/api/clients/"+clientID+"/reviews", proToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var clientReviews struct {
		Reviews []struct {
			Rating int `json:"rating"`
		} `json:"reviews"`
	}
	helpers.DecodeBody(t, rec, &clientReviews)
	require.Len(t, clientReviews.Reviews, 1)
	assert.Equal(t, 4, clientReviews.Reviews[0].Rating)
}

// Гостевой поток: заявка вне платформы, отзыв по одноразовому токену.
func TestGuestReviewFlow(t *testing.T) {
	db := helpers.OpenTestDB(t)
	tx := helpers.WithTx(t, db)
	router := helpers.NewServer(db)

	proToken, _ := helpers.RegisterUser(t, router, tx, "guest-pro@test.local", true)
	proID := helpers.ProfessionalID(t, router, tx, proToken)

	rec := helpers.Request(t, router, tx, http.MethodPost, "/api/hires/guest", proToken,
		map[string]interface{}{
			"guest_name":  "Carlos",
			"guest_email": "carlos@example.com",
			"message":     "Reparación de caño",
		})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var guestHire struct {
		ReviewToken string `json:"review_token"`
	}
	helpers.DecodeBody(t, rec, &guestHire)
	require.NotEmpty(t, guestHire.ReviewToken)

	tokenPath := "/api/review/" + guestHire.ReviewToken

	// Гость видит превью без авторизации
	rec = helpers.Request(t, router, tx, http.MethodGet, tokenPath, "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var preview struct {
		GuestName       string `json:"guest_name"`
		AlreadyReviewed bool   `json:"already_reviewed"`
	}
	helpers.DecodeBody(t, rec, &preview)
	assert.Equal(t, "Carlos", preview.GuestName)
	assert.False(t, preview.AlreadyReviewed)

	// Отправка отзыва завершает заявку и сжигает токен
	rec = helpers.Request(t, router, tx, http.MethodPost, tokenPath, "",
		map[string]interface{}{"rating": 5, "comment": "muy profesional"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = helpers.Request(t, router, tx, http.MethodPost, tokenPath, "",
		map[string]interface{}{"rating": 1, "comment": "segundo intento"})
	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())

	// Отзыв гостя попадает в публичный список и в рейтинг
	rec = helpers.Request(t, router, tx, http.MethodGet,
		fmt.Sprintf("/api/professionals/%s/reviews", proID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var reviews struct {
		Reviews []struct {
			IsGuestReview bool   `json:"is_guest_review"`
			ReviewerName  string `json:"reviewer_name"`
		} `json:"reviews"`
		Total int64 `json:"total"`
	}
	helpers.DecodeBody(t, rec, &reviews)
	require.Equal(t, int64(1), reviews.Total)
	assert.True(t, reviews.Reviews[0].IsGuestReview)
	assert.Equal(t, "Carlos", reviews.Reviews[0].ReviewerName)
}

// Неизвестный токен отзыва дает 404.
func TestGuestReviewUnknownToken(t *testing.T) {
	db := helpers.OpenTestDB(t)
	tx := helpers.WithTx(t, db)
	router := helpers.NewServer(db)

	rec := helpers.Request(t, router, tx, http.MethodGet, "/api/review/00000000-0000-0000-0000-000000000000", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code, rec.Body.String())
}
