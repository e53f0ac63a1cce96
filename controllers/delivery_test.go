package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRelayChannelSend(t *testing.T) {
	var received string
	ok := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusOK)
	}))
	defer ok.Close()

	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer broken.Close()

	payload := CredentialsPayload{ServiceName: "Netflix", Username: "u", Password: "p", Profile: "Main Profile"}

	assert.True(t, relayChannel{url: ok.URL}.Send(context.Background(), "x@y.com", payload))
	assert.Equal(t, "application/json", received)

	// Status não-2xx e relay ausente contam como falha de entrega.
	assert.False(t, relayChannel{url: broken.URL}.Send(context.Background(), "x@y.com", payload))
	assert.False(t, relayChannel{url: ""}.Send(context.Background(), "x@y.com", payload))
}

func TestRelayChannelTimeout(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer slow.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	// Timeout do contexto vira falha de entrega, nunca bloqueio indefinido.
	assert.False(t, relayChannel{url: slow.URL}.Send(ctx, "x@y.com", CredentialsPayload{}))
}

func TestChannelFor(t *testing.T) {
	for _, kind := range []string{"EMAIL", "WHATSAPP", "SMS"} {
		ch, ok := ChannelFor(kind)
		assert.True(t, ok, kind)
		assert.NotNil(t, ch)
	}
	_, ok := ChannelFor("POMBO")
	assert.False(t, ok)
}

func TestFormatCredentialsMessage(t *testing.T) {
	exp := time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC)
	msg := formatCredentialsMessage(CredentialsPayload{
		ServiceName: "HBO",
		Username:    "hbo280826abcd",
		Password:    "s3nh4qwe",
		Profile:     "Perfil 1",
		PIN:         "1234",
		ExpiresAt:   &exp,
	})
	assert.Contains(t, msg, "hbo280826abcd")
	assert.Contains(t, msg, "PIN: 1234")
	assert.Contains(t, msg, "25/12/2026")

	// Sem PIN (modo login único) a linha de PIN some.
	msg = formatCredentialsMessage(CredentialsPayload{ServiceName: "Netflix", Username: "u", Password: "p", Profile: "Main Profile"})
	assert.NotContains(t, msg, "PIN")
}
