package tools

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncryptTextSHA512(t *testing.T) {
	// Vetor de teste padrão do SHA-512.
	want := "ddaf35a193617abacc417349ae20413112e6fa4e89a97ea20a9eeee64b55d39a" +
		"2192992a274fc1a836ba3c23a3feebbd454d4423643ce80e2a9ac94fa54ca49f"
	assert.Equal(t, want, EncryptTextSHA512("abc"))
}

func TestRandomNumbers(t *testing.T) {
	pin := RandomNumbers(4)
	assert.Len(t, pin, 4)
	for _, r := range pin {
		assert.True(t, r >= '0' && r <= '9')
	}
}

func TestRandomString(t *testing.T) {
	s := RandomString(8)
	assert.Len(t, s, 8)
	for _, r := range s {
		assert.True(t, strings.ContainsRune(charset, r))
	}
}

func TestRandomLower(t *testing.T) {
	s := RandomLower(12)
	assert.Len(t, s, 12)
	assert.Equal(t, strings.ToLower(s), s)
}

func TestRandomFromAlphabet(t *testing.T) {
	s := RandomFrom("AB", 100)
	assert.Len(t, s, 100)
	for _, r := range s {
		assert.Contains(t, []rune{'A', 'B'}, r)
	}
}
