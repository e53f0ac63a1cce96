package controllers

import (
	"fmt"
	"testing"
	"time"

	"streampass/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateBatchSingleProfileMode(t *testing.T) {
	db := openTestDB(t)
	service := seedService(t, db, "Netflix", "NFX", 0)
	plan := seedPlan(t, db, service, "Netflix 30d", 30)

	result, err := GenerateBatch(db, GenerateCardsRequest{PlanID: plan.ID, Quantity: 5})
	require.NoError(t, err)

	assert.Equal(t, 5, result.Requested)
	assert.Equal(t, 5, result.Generated)
	require.Len(t, result.Cards, 5)
	require.Len(t, result.Report, 5)

	var accounts, profiles int
	require.NoError(t, db.Model(&models.Account{}).Count(&accounts).Error)
	require.NoError(t, db.Model(&models.Profile{}).Count(&profiles).Error)
	assert.Equal(t, 5, accounts)
	assert.Equal(t, 5, profiles)

	seen := make(map[string]bool)
	for i, card := range result.Cards {
		// Sem vendedor o estado inicial é GENERATED.
		assert.Equal(t, models.CARD_STATUS_GENERATED, card.Status)
		assert.False(t, seen[card.Code], "código repetido no lote: %s", card.Code)
		seen[card.Code] = true

		expectedSerie := fmt.Sprintf("NFX-%s-%04d", time.Now().Format("20060102"), i+1)
		assert.Equal(t, expectedSerie, card.Serie)
		assert.Equal(t, result.Lote, card.Lote)

		require.NotNil(t, card.ExpiresAt)
		assert.WithinDuration(t, time.Now().AddDate(0, 0, 30), *card.ExpiresAt, time.Minute)

		var profile models.Profile
		require.NoError(t, db.First(&profile, card.ProfileID).Error)
		assert.Equal(t, "Main Profile", profile.Name)
		assert.Empty(t, profile.PIN)
	}
}

func TestGenerateBatchWithVendorAndProfiles(t *testing.T) {
	db := openTestDB(t)
	service := seedService(t, db, "HBO", "HBO", 3)
	plan := seedPlan(t, db, service, "HBO 90d", 90)
	vendor := seedVendor(t, db, "Revenda Um")

	result, err := GenerateBatch(db, GenerateCardsRequest{
		PlanID:   plan.ID,
		Quantity: 3,
		VendorID: vendor.ID,
		Profiles: 3,
	})
	require.NoError(t, err)
	require.Len(t, result.Cards, 3)

	// 3 contas x 3 perfis.
	var accounts, profiles int
	require.NoError(t, db.Model(&models.Account{}).Count(&accounts).Error)
	require.NoError(t, db.Model(&models.Profile{}).Count(&profiles).Error)
	assert.Equal(t, 3, accounts)
	assert.Equal(t, 9, profiles)

	for _, card := range result.Cards {
		assert.Equal(t, models.CARD_STATUS_ASSIGNED, card.Status)
		assert.Equal(t, vendor.ID, card.VendorID)

		// O cartão fica amarrado ao primeiro perfil (ocupado) da conta.
		var profile models.Profile
		require.NoError(t, db.First(&profile, card.ProfileID).Error)
		assert.Equal(t, "Perfil 1", profile.Name)
		assert.Equal(t, models.POOL_STATUS_OCCUPIED, profile.Status)
	}
}

func TestGenerateBatchQuantityValidation(t *testing.T) {
	db := openTestDB(t)
	service := seedService(t, db, "Netflix", "NFX", 0)
	plan := seedPlan(t, db, service, "Mensal", 30)

	_, err := GenerateBatch(db, GenerateCardsRequest{PlanID: plan.ID, Quantity: 0})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = GenerateBatch(db, GenerateCardsRequest{PlanID: plan.ID, Quantity: 1001})
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestGenerateBatchPlanAndServiceChecks(t *testing.T) {
	db := openTestDB(t)

	_, err := GenerateBatch(db, GenerateCardsRequest{PlanID: 42, Quantity: 1})
	assert.ErrorIs(t, err, ErrPlanNotFound)

	service := seedService(t, db, "Desativado", "OFF", 0)
	require.NoError(t, db.Model(&service).Update("status", models.SERVICE_STATUS_INACTIVE).Error)
	plan := seedPlan(t, db, service, "Mensal", 30)

	_, err = GenerateBatch(db, GenerateCardsRequest{PlanID: plan.ID, Quantity: 1})
	assert.ErrorIs(t, err, ErrServiceInactive)
}

func TestGenerateBatchManualPartialFailure(t *testing.T) {
	db := openTestDB(t)
	service := seedService(t, db, "Disney", "DSN", 0)
	plan := seedPlan(t, db, service, "Mensal", 30)

	result, err := GenerateBatch(db, GenerateCardsRequest{
		PlanID:   plan.ID,
		Quantity: 3,
		Credentials: []ManualCredential{
			{Username: "a@exemplo.com", Password: "s1"},
			{Username: "", Password: "s2"}, // unidade inválida, deve ser pulada
			{Username: "c@exemplo.com", Password: "s3"},
		},
	})
	// O lote responde sucesso mesmo com unidade falha; o report conta a história.
	require.NoError(t, err)

	assert.Equal(t, 3, result.Requested)
	assert.Equal(t, 2, result.Generated)
	require.Len(t, result.Report, 3)
	assert.True(t, result.Report[0].OK)
	assert.False(t, result.Report[1].OK)
	assert.NotEmpty(t, result.Report[1].Error)
	assert.True(t, result.Report[2].OK)

	// A unidade falha não deixa conta/perfil órfãos.
	var accounts int
	require.NoError(t, db.Model(&models.Account{}).Count(&accounts).Error)
	assert.Equal(t, 2, accounts)
}

func TestGenerateBatchManualCredentialCount(t *testing.T) {
	db := openTestDB(t)
	service := seedService(t, db, "Disney", "DSN", 0)
	plan := seedPlan(t, db, service, "Mensal", 30)

	_, err := GenerateBatch(db, GenerateCardsRequest{
		PlanID:      plan.ID,
		Quantity:    2,
		Credentials: []ManualCredential{{Username: "a@exemplo.com", Password: "s1"}},
	})
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestGenerateBatchCustomLote(t *testing.T) {
	db := openTestDB(t)
	service := seedService(t, db, "Netflix", "NFX", 0)
	plan := seedPlan(t, db, service, "Mensal", 30)

	result, err := GenerateBatch(db, GenerateCardsRequest{PlanID: plan.ID, Quantity: 2, Lote: "PROMO-ABC"})
	require.NoError(t, err)
	assert.Equal(t, "PROMO-ABC", result.Lote)
	for _, card := range result.Cards {
		assert.Equal(t, "PROMO-ABC", card.Lote)
	}
}

func TestAssignVendor(t *testing.T) {
	db := openTestDB(t)
	service := seedService(t, db, "Netflix", "NFX", 0)
	plan := seedPlan(t, db, service, "Mensal", 30)
	vendor := seedVendor(t, db, "Revenda Dois")

	result, err := GenerateBatch(db, GenerateCardsRequest{PlanID: plan.ID, Quantity: 2})
	require.NoError(t, err)

	ids := []int64{result.Cards[0].ID, result.Cards[1].ID}
	require.NoError(t, assignVendor(db, ids, vendor.ID))

	for _, id := range ids {
		var card models.Card
		require.NoError(t, db.First(&card, id).Error)
		assert.Equal(t, models.CARD_STATUS_ASSIGNED, card.Status)
		assert.Equal(t, vendor.ID, card.VendorID)
	}
}

func TestAssignVendorRejectsActivatedCard(t *testing.T) {
	db := openTestDB(t)
	service := seedService(t, db, "Netflix", "NFX", 0)
	plan := seedPlan(t, db, service, "Mensal", 30)
	vendor := seedVendor(t, db, "Revenda Três")

	result, err := GenerateBatch(db, GenerateCardsRequest{PlanID: plan.ID, Quantity: 2})
	require.NoError(t, err)

	activated := result.Cards[0]
	require.NoError(t, db.Model(&activated).Update("status", models.CARD_STATUS_ACTIVATED).Error)

	err = assignVendor(db, []int64{activated.ID, result.Cards[1].ID}, vendor.ID)
	assert.ErrorIs(t, err, ErrCardActivated)

	// Operação toda rejeitada: o segundo cartão não mudou de dono.
	var other models.Card
	require.NoError(t, db.First(&other, result.Cards[1].ID).Error)
	assert.Equal(t, models.CARD_STATUS_GENERATED, other.Status)
	assert.Zero(t, other.VendorID)
}

func TestLazyExpirationOnRead(t *testing.T) {
	db := openTestDB(t)
	service := seedService(t, db, "Netflix", "NFX", 0)
	plan := seedPlan(t, db, service, "Mensal", 30)

	result, err := GenerateBatch(db, GenerateCardsRequest{PlanID: plan.ID, Quantity: 1})
	require.NoError(t, err)

	card := result.Cards[0]
	past := time.Now().AddDate(0, 0, -1)
	require.NoError(t, db.Model(&card).Update("expires_at", &past).Error)

	var got models.Card
	require.NoError(t, db.First(&got, card.ID).Error)
	refreshCardStatus(db, &got)
	assert.Equal(t, models.CARD_STATUS_EXPIRED, got.Status)

	// Persistido, não só em memória.
	var reread models.Card
	require.NoError(t, db.First(&reread, card.ID).Error)
	assert.Equal(t, models.CARD_STATUS_EXPIRED, reread.Status)

	// Estado terminal não volta atrás na releitura.
	refreshCardStatus(db, &reread)
	assert.Equal(t, models.CARD_STATUS_EXPIRED, reread.Status)
}

func TestConsumeCardOverride(t *testing.T) {
	db := openTestDB(t)
	service := seedService(t, db, "Netflix", "NFX", 0)
	plan := seedPlan(t, db, service, "Mensal", 30)

	result, err := GenerateBatch(db, GenerateCardsRequest{PlanID: plan.ID, Quantity: 1})
	require.NoError(t, err)

	card, err := consumeCard(db, result.Cards[0].ID)
	require.NoError(t, err)
	assert.Equal(t, models.CARD_STATUS_CONSUMED, card.Status)

	_, err = consumeCard(db, 9999)
	assert.ErrorIs(t, err, ErrCardNotFound)
}

func TestCodesUniqueAcrossBatches(t *testing.T) {
	db := openTestDB(t)
	service := seedService(t, db, "Netflix", "NFX", 0)
	plan := seedPlan(t, db, service, "Mensal", 30)

	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		result, err := GenerateBatch(db, GenerateCardsRequest{PlanID: plan.ID, Quantity: 10})
		require.NoError(t, err)
		for _, card := range result.Cards {
			assert.False(t, seen[card.Code], "código repetido entre lotes: %s", card.Code)
			seen[card.Code] = true
		}
	}
	assert.Len(t, seen, 50)
}
