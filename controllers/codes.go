package controllers

import (
	"time"

	"streampass/models"
	"streampass/tools"

	"github.com/jinzhu/gorm"
)

// Alfabeto dos códigos de cartão. Sem 0/O/1/I para não confundir quem
// digita o código impresso.
const cardCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const codeMaxAttempts = 10

// GenerateUniqueCode gera um código de cartão que não existe na base.
// A checagem aqui é uma otimização: quem garante unicidade de verdade é o
// índice único de cards.code na hora do insert. Após codeMaxAttempts
// colisões, um sufixo derivado do relógio garante o término.
func GenerateUniqueCode(db *gorm.DB, length int) string {
	for attempt := 0; attempt < codeMaxAttempts; attempt++ {
		code := tools.RandomFrom(cardCodeAlphabet, length)
		if !cardCodeExists(db, code) {
			return code
		}
	}

	// Fallback determinístico: sufixo derivado do relógio, codificado no
	// mesmo alfabeto do código (nada de 0/1 voltando pela porta dos fundos).
	suffix := clockSuffix(6)
	base := tools.RandomFrom(cardCodeAlphabet, length)
	if len(suffix) >= length {
		return suffix[:length]
	}
	return base[:length-len(suffix)] + suffix
}

// clockSuffix codifica os nanos do relógio em n caracteres do alfabeto
// de códigos.
func clockSuffix(n int) string {
	v := time.Now().UnixNano()
	b := make([]byte, n)
	for i := range b {
		b[i] = cardCodeAlphabet[v%int64(len(cardCodeAlphabet))]
		v /= int64(len(cardCodeAlphabet))
	}
	return string(b)
}

func cardCodeExists(db *gorm.DB, code string) bool {
	var count int
	if err := db.Model(&models.Card{}).Where("code = ?", code).Count(&count).Error; err != nil {
		// Em caso de erro de leitura, assume colisão e deixa o retry decidir.
		return true
	}
	return count > 0
}
