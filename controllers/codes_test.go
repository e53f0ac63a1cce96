package controllers

import (
	"strings"
	"testing"

	"streampass/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateUniqueCode(t *testing.T) {
	db := openTestDB(t)

	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		code := GenerateUniqueCode(db, 12)
		require.Len(t, code, 12)
		for _, r := range code {
			assert.True(t, strings.ContainsRune(cardCodeAlphabet, r), "caractere fora do alfabeto: %q", r)
		}
		assert.False(t, seen[code], "código repetido: %s", code)
		seen[code] = true
	}
}

func TestClockSuffixUsesCardAlphabet(t *testing.T) {
	// O fallback de colisão não pode reintroduzir caracteres ambíguos
	// que o alfabeto exclui de propósito.
	for i := 0; i < 50; i++ {
		suffix := clockSuffix(6)
		require.Len(t, suffix, 6)
		for _, r := range suffix {
			assert.True(t, strings.ContainsRune(cardCodeAlphabet, r), "caractere fora do alfabeto: %q", r)
		}
	}
}

func TestCardCodeExists(t *testing.T) {
	db := openTestDB(t)

	service := seedService(t, db, "Netflix", "NFX", 0)
	plan := seedPlan(t, db, service, "Mensal", 30)

	card := models.Card{PlanID: plan.ID, Code: "ABCDEF234567", Serie: "NFX-20260828-0001", Lote: "L1", ProfileID: 1}
	require.NoError(t, db.Create(&card).Error)

	assert.True(t, cardCodeExists(db, "ABCDEF234567"))
	assert.False(t, cardCodeExists(db, "ZZZZZZ234567"))
}
