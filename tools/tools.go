package tools

import (
	"crypto/sha512"
	"encoding/hex"
	"math/rand"
	"time"
)

const numbers = "0123456789"
const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const lowercase = "abcdefghijklmnopqrstuvwxyz0123456789"

// Fonte única de aleatoriedade do pacote. Evita instanciar geradores
// por chamada (e as seeds fracas que isso costuma trazer).
var seededRand = rand.New(rand.NewSource(time.Now().UnixNano()))

func EncryptTextSHA512(text string) string {
	sum := sha512.Sum512([]byte(text))
	return hex.EncodeToString(sum[:])
}

// RandomFrom monta uma string de tamanho length sorteando do alfabeto dado.
func RandomFrom(alphabet string, length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = alphabet[seededRand.Intn(len(alphabet))]
	}
	return string(b)
}

// RandomNumbers gera uma sequência só de dígitos (usada para PINs).
func RandomNumbers(length int) string {
	return RandomFrom(numbers, length)
}

// RandomString gera uma string alfanumérica (usada para senhas).
func RandomString(length int) string {
	return RandomFrom(charset, length)
}

// RandomLower gera uma string minúscula (usada em usernames sintetizados).
func RandomLower(length int) string {
	return RandomFrom(lowercase, length)
}
