package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	dbpkg "streampass/db"
	"streampass/models"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHandlerRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(dbpkg.SetDBtoContext(db))
	r.GET("/api/cards/:code", GetCardByCode)
	r.POST("/api/activate", Activate)
	return r
}

func TestGetCardByCodeHandler(t *testing.T) {
	db := openTestDB(t)
	service := seedService(t, db, "Netflix", "NFX", 0)
	plan := seedPlan(t, db, service, "Mensal", 30)

	result, err := GenerateBatch(db, GenerateCardsRequest{PlanID: plan.ID, Quantity: 1})
	require.NoError(t, err)
	card := result.Cards[0]

	r := setupHandlerRouter(db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/cards/"+card.Code, nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), card.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/cards/NAOEXISTE", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestActivateHandlerValidation(t *testing.T) {
	db := openTestDB(t)
	r := setupHandlerRouter(db)

	post := func(body map[string]any) *httptest.ResponseRecorder {
		b, _ := json.Marshal(body)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/activate", bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusBadRequest, post(map[string]any{
		"channel": models.CHANNEL_EMAIL, "recipient": "x@y.com",
	}).Code)
	assert.Equal(t, http.StatusBadRequest, post(map[string]any{
		"code": "ABC", "channel": models.CHANNEL_EMAIL,
	}).Code)
	assert.Equal(t, http.StatusBadRequest, post(map[string]any{
		"code": "ABC", "channel": "POMBO", "recipient": "x@y.com",
	}).Code)
}

func TestActivateHandlerDeliveryFailure(t *testing.T) {
	db := openTestDB(t)
	service := seedService(t, db, "Netflix", "NFX", 0)
	plan := seedPlan(t, db, service, "Mensal", 30)

	result, err := GenerateBatch(db, GenerateCardsRequest{PlanID: plan.ID, Quantity: 1})
	require.NoError(t, err)
	card := result.Cards[0]

	// Relay de email sem configurar: a entrega falha na hora, sem rede.
	t.Setenv("EMAIL_RELAY_URL", "")

	r := setupHandlerRouter(db)
	b, _ := json.Marshal(map[string]any{
		"code": card.Code, "channel": models.CHANNEL_EMAIL, "recipient": "x@y.com",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/activate", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)

	// Tentativa registrada, cartão segue resgatável.
	var got models.Card
	require.NoError(t, db.First(&got, card.ID).Error)
	assert.Equal(t, models.CARD_STATUS_GENERATED, got.Status)

	var activations []models.Activation
	require.NoError(t, db.Where("card_id = ?", card.ID).Find(&activations).Error)
	require.Len(t, activations, 1)
	assert.False(t, activations[0].Delivered)
}
