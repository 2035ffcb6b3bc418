package integration

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/config"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/test/helpers"
)

// (A,B) и (B,A) должны разрешаться в один и тот же диалог.
func TestConversationCanonicalPair(t *testing.T) {
	db := helpers.OpenTestDB(t)
	tx := helpers.WithTx(t, db)
	router := helpers.NewServer(db)

	tokenA, idA := helpers.RegisterUser(t, router, tx, "chat-a@test.local", false)
	tokenB, idB := helpers.RegisterUser(t, router, tx, "chat-b@test.local", true)

	var first, second struct {
		ID string `json:"id"`
	}

	rec := helpers.Request(t, router, tx, http.MethodPost, "/api/conversations", tokenA,
		map[string]interface{}{"recipient_id": idB})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	helpers.DecodeBody(t, rec, &first)

	rec = helpers.Request(t, router, tx, http.MethodPost, "/api/conversations", tokenB,
		map[string]interface{}{"recipient_id": idA})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	helpers.DecodeBody(t, rec, &second)

	assert.Equal(t, first.ID, second.ID)
}

func TestConversationWithSelfRejected(t *testing.T) {
	db := helpers.OpenTestDB(t)
	tx := helpers.WithTx(t, db)
	router := helpers.NewServer(db)

	token, id := helpers.RegisterUser(t, router, tx, "chat-self@test.local", false)

	rec := helpers.Request(t, router, tx, http.MethodPost, "/api/conversations", token,
		map[string]interface{}{"recipient_id": id})
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
}

// Сообщения возвращаются по возрастанию created_at, счетчик непрочитанных
// живет на стороне хранилища и сбрасывается чтением.
func TestMessagingAndUnreadCount(t *testing.T) {
	db := helpers.OpenTestDB(t)
	tx := helpers.WithTx(t, db)
	router := helpers.NewServer(db)

	tokenA, _ := helpers.RegisterUser(t, router, tx, "msg-a@test.local", false)
	tokenB, idB := helpers.RegisterUser(t, router, tx, "msg-b@test.local", false)

	var conversation struct {
		ID string `json:"id"`
	}
	rec := helpers.Request(t, router, tx, http.MethodPost, "/api/conversations", tokenA,
		map[string]interface{}{"recipient_id": idB})
	require.Equal(t, http.StatusOK, rec.Code)
	helpers.DecodeBody(t, rec, &conversation)

	for _, content := range []string{"primero", "segundo", "tercero"} {
		rec = helpers.Request(t, router, tx, http.MethodPost,
			fmt.Sprintf("/api/conversations/%s/messages", conversation.ID), tokenA,
			map[string]interface{}{"content": content})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec = helpers.Request(t, router, tx, http.MethodGet,
		fmt.Sprintf("/api/conversations/%s/unread", conversation.ID), tokenB, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var unread struct {
		UnreadCount int64 `json:"unread_count"`
	}
	helpers.DecodeBody(t, rec, &unread)
	assert.Equal(t, int64(3), unread.UnreadCount)

	// Чтение истории помечает входящие прочитанными
	rec = helpers.Request(t, router, tx, http.MethodGet,
		fmt.Sprintf("/api/conversations/%s/messages", conversation.ID), tokenB, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var messages struct {
		Messages []struct {
			Content string `json:"content"`
		} `json:"messages"`
	}
	helpers.DecodeBody(t, rec, &messages)
	require.Len(t, messages.Messages, 3)
	assert.Equal(t, "primero", messages.Messages[0].Content)
	assert.Equal(t, "tercero", messages.Messages[2].Content)

	rec = helpers.Request(t, router, tx, http.MethodGet,
		fmt.Sprintf("/api/conversations/%s/unread", conversation.ID), tokenB, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	helpers.DecodeBody(t, rec, &unread)
	assert.Equal(t, int64(0), unread.UnreadCount)
}

// Посторонний пользователь не видит чужой диалог.
func TestConversationAccessDenied(t *testing.T) {
	db := helpers.OpenTestDB(t)
	tx := helpers.WithTx(t, db)
	router := helpers.NewServer(db)

	tokenA, _ := helpers.RegisterUser(t, router, tx, "acl-a@test.local", false)
	_, idB := helpers.RegisterUser(t, router, tx, "acl-b@test.local", false)
	strangerToken, _ := helpers.RegisterUser(t, router, tx, "acl-c@test.local", false)

	var conversation struct {
		ID string `json:"id"`
	}
	rec := helpers.Request(t, router, tx, http.MethodPost, "/api/conversations", tokenA,
		map[string]interface{}{"recipient_id": idB})
	require.Equal(t, http.StatusOK, rec.Code)
	helpers.DecodeBody(t, rec, &conversation)

	rec = helpers.Request(t, router, tx, http.MethodGet,
		fmt.Sprintf("/api/conversations/%s/messages", conversation.ID), strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code, rec.Body.String())
}

// Специалист на бесплатном тарифе упирается в месячный лимит сообщений.
func TestProfessionalMessageQuota(t *testing.T) {
	db := helpers.OpenTestDB(t)
	tx := helpers.WithTx(t, db)

	prevLimit := config.AppConfig.Limits.FreeMessagesPerMonth
	config.AppConfig.Limits.FreeMessagesPerMonth = 2
	t.Cleanup(func() { config.AppConfig.Limits.FreeMessagesPerMonth = prevLimit })

	router := helpers.NewServer(db)

	proToken, _ := helpers.RegisterUser(t, router, tx, "quota-pro@test.local", true)
	_, clientID := helpers.RegisterUser(t, router, tx, "quota-client@test.local", false)

	var conversation struct {
		ID string `json:"id"`
	}
	rec := helpers.Request(t, router, tx, http.MethodPost, "/api/conversations", proToken,
		map[string]interface{}{"recipient_id": clientID})
	require.Equal(t, http.StatusOK, rec.Code)
	helpers.DecodeBody(t, rec, &conversation)

	path := fmt.Sprintf("/api/conversations/%s/messages", conversation.ID)
	for i := 0; i < 2; i++ {
		rec = helpers.Request(t, router, tx, http.MethodPost, path, proToken,
			map[string]interface{}{"content": "mensaje dentro del límite"})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec = helpers.Request(t, router, tx, http.MethodPost, path, proToken,
		map[string]interface{}{"content": "mensaje por encima del límite"})
	assert.Equal(t, http.StatusForbidden, rec.Code, rec.Body.String())
}
