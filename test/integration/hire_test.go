package integration

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AgusWeb1999/ChooseYourWorker-sub001/test/helpers"
)

// Полный жизненный цикл заявки: предложение, принятие, запрос завершения,
// подтверждение клиента.
func TestHireLifecycle(t *testing.T) {
	db := helpers.OpenTestDB(t)
	tx := helpers.WithTx(t, db)
	router := helpers.NewServer(db)

	clientToken, _ := helpers.RegisterUser(t, router, tx, "client-lifecycle@test.local", false)
	proToken, _ := helpers.RegisterUser(t, router, tx, "pro-lifecycle@test.local", true)
	proID := helpers.ProfessionalID(t, router, tx, proToken)

	hireID := helpers.CreateHire(t, router, tx, clientToken, proID)

	// Специалист принимает
	rec := helpers.Request(t, router, tx, http.MethodPost, helpers.HirePath(hireID, "respond"), proToken,
		map[string]interface{}{"accept": true})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var hire struct {
		Status    string  `json:"status"`
		StartedAt *string `json:"started_at"`
	}
	helpers.DecodeBody(t, rec, &hire)
	assert.Equal(t, "in_progress", hire.Status)
	assert.NotNil(t, hire.StartedAt)

	// Специалист просит подтверждения завершения
	rec = helpers.Request(t, router, tx, http.MethodPost, helpers.HirePath(hireID, "request-completion"), proToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	helpers.DecodeBody(t, rec, &hire)
	assert.Equal(t, "waiting_client_approval", hire.Status)

	// Клиент подтверждает
	rec = helpers.Request(t, router, tx, http.MethodPost, helpers.HirePath(hireID, "complete"), clientToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	helpers.DecodeBody(t, rec, &hire)
	assert.Equal(t, "completed", hire.Status)

	// Завершенную заявку отменить нельзя
	rec = helpers.Request(t, router, tx, http.MethodPost, helpers.HirePath(hireID, "cancel"), clientToken, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

// Вторая заявка той же паре при активной первой должна дать конфликт.
func TestHireDuplicateProposalConflict(t *testing.T) {
	db := helpers.OpenTestDB(t)
	tx := helpers.WithTx(t, db)
	router := helpers.NewServer(db)

	clientToken, _ := helpers.RegisterUser(t, router, tx, "client-dup@test.local", false)
	proToken, _ := helpers.RegisterUser(t, router, tx, "pro-dup@test.local", true)
	proID := helpers.ProfessionalID(t, router, tx, proToken)

	_ = helpers.CreateHire(t, router, tx, clientToken, proID)

	rec := helpers.Request(t, router, tx, http.MethodPost, "/api/hires", clientToken, map[string]interface{}{
		"professional_id":  proID,
		"proposal_message": "Otra solicitud mientras la primera sigue activa",
	})
	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())

	// После отклонения первой вторая проходит
	var hires struct {
		Hires []struct {
			ID string `json:"id"`
		} `json:"hires"`
	}
	rec = helpers.Request(t, router, tx, http.MethodGet, "/api/hires?role=professional", proToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	helpers.DecodeBody(t, rec, &hires)
	require.Len(t, hires.Hires, 1)

	rec = helpers.Request(t, router, tx, http.MethodPost, helpers.HirePath(hires.Hires[0].ID, "respond"), proToken,
		map[string]interface{}{"accept": false})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = helpers.Request(t, router, tx, http.MethodPost, "/api/hires", clientToken, map[string]interface{}{
		"professional_id":  proID,
		"proposal_message": "Nueva solicitud después del rechazo",
	})
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

// Переход из pending сразу в completed запрещен таблицей переходов.
func TestHireForbiddenTransition(t *testing.T) {
	db := helpers.OpenTestDB(t)
	tx := helpers.WithTx(t, db)
	router := helpers.NewServer(db)

	clientToken, _ := helpers.RegisterUser(t, router, tx, "client-jump@test.local", false)
	proToken, _ := helpers.RegisterUser(t, router, tx, "pro-jump@test.local", true)
	proID := helpers.ProfessionalID(t, router, tx, proToken)

	hireID := helpers.CreateHire(t, router, tx, clientToken, proID)

	rec := helpers.Request(t, router, tx, http.MethodPost, helpers.HirePath(hireID, "complete"), clientToken, nil)
	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
}

// Чужой пользователь не может управлять заявкой.
func TestHireAccessControl(t *testing.T) {
	db := helpers.OpenTestDB(t)
	tx := helpers.WithTx(t, db)
	router := helpers.NewServer(db)

	clientToken, _ := helpers.RegisterUser(t, router, tx, "client-acl@test.local", false)
	proToken, _ := helpers.RegisterUser(t, router, tx, "pro-acl@test.local", true)
	strangerToken, _ := helpers.RegisterUser(t, router, tx, "stranger-acl@test.local", true)
	proID := helpers.ProfessionalID(t, router, tx, proToken)

	hireID := helpers.CreateHire(t, router, tx, clientToken, proID)

	rec := helpers.Request(t, router, tx, http.MethodPost, helpers.HirePath(hireID, "respond"), strangerToken,
		map[string]interface{}{"accept": true})
	assert.Equal(t, http.StatusForbidden, rec.Code, rec.Body.String())

	rec = helpers.Request(t, router, tx, http.MethodPost, helpers.HirePath(hireID, "cancel"), strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

// Создание заявки шлет специалисту уведомление solicitud_enviada.
func TestHireCreatesNotification(t *testing.T) {
	db := helpers.OpenTestDB(t)
	tx := helpers.WithTx(t, db)
	router := helpers.NewServer(db)

	clientToken, _ := helpers.RegisterUser(t, router, tx, "client-notif@test.local", false)
	proToken, _ := helpers.RegisterUser(t, router, tx, "pro-notif@test.local", true)
	proID := helpers.ProfessionalID(t, router, tx, proToken)

	_ = helpers.CreateHire(t, router, tx, clientToken, proID)

	rec := helpers.Request(t, router, tx, http.MethodGet, "/api/notifications", proToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Notifications []struct {
			Type string `json:"type"`
		} `json:"notifications"`
	}
	helpers.DecodeBody(t, rec, &resp)
	require.NotEmpty(t, resp.Notifications)
	assert.Equal(t, "solicitud_enviada", resp.Notifications[0].Type)
}

// Фильтр по статусу в списке заявок; невалидный статус отклоняется валидатором.
func TestHireListStatusFilter(t *testing.T) {
	db := helpers.OpenTestDB(t)
	tx := helpers.WithTx(t, db)
	router := helpers.NewServer(db)

	clientToken, _ := helpers.RegisterUser(t, router, tx, "client-filter@test.local", false)
	proToken, _ := helpers.RegisterUser(t, router, tx, "pro-filter@test.local", true)
	proID := helpers.ProfessionalID(t, router, tx, proToken)

	hireID := helpers.CreateHire(t, router, tx, clientToken, proID)
	rec := helpers.Request(t, router, tx, http.MethodPost, helpers.HirePath(hireID, "respond"), proToken,
		map[string]interface{}{"accept": false})
	require.Equal(t, http.StatusOK, rec.Code)

	var hires struct {
		Hires []struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"hires"`
	}

	rec = helpers.Request(t, router, tx, http.MethodGet, "/api/hires?status=rejected", clientToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	helpers.DecodeBody(t, rec, &hires)
	require.Len(t, hires.Hires, 1)
	assert.Equal(t, "rejected", hires.Hires[0].Status)

	rec = helpers.Request(t, router, tx, http.MethodGet, "/api/hires?status=pending", clientToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	helpers.DecodeBody(t, rec, &hires)
	assert.Empty(t, hires.Hires)

	rec = helpers.Request(t, router, tx, http.MethodGet, "/api/hires?status=archived", clientToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
}
