package controllers

import (
	"context"
	"fmt"
	"log"
	"time"

	"streampass/models"
	"streampass/tools"
)

// CredentialsPayload é o que um canal entrega ao destinatário.
type CredentialsPayload struct {
	ServiceName string     `json:"service_name"`
	Code        string     `json:"code"`
	Username    string     `json:"username"`
	Password    string     `json:"password"`
	Profile     string     `json:"profile"`
	PIN         string     `json:"pin"`
	ExpiresAt   *time.Time `json:"expires_at"`
}

// DeliveryChannel entrega as credenciais ao destinatário. O booleano é
// definitivo: o coordenador de ativação não faz retry por conta própria.
type DeliveryChannel interface {
	Send(ctx context.Context, recipient string, payload CredentialsPayload) bool
}

// ChannelFor resolve a implementação do canal pedido na ativação.
func ChannelFor(kind string) (DeliveryChannel, bool) {
	switch kind {
	case models.CHANNEL_WHATSAPP:
		return whatsAppChannel{}, true
	case models.CHANNEL_EMAIL:
		return relayChannel{url: getenv("EMAIL_RELAY_URL", "")}, true
	case models.CHANNEL_SMS:
		return relayChannel{url: getenv("SMS_RELAY_URL", "")}, true
	}
	return nil, false
}

// DeliveryTimeout é o teto da chamada síncrona de entrega. Estourar o
// prazo conta como falha de entrega (o cartão continua resgatável).
func DeliveryTimeout() time.Duration {
	secs := getenvInt("DELIVERY_TIMEOUT_SECONDS", confInt(conf.Security.DeliveryTimeoutSecs, 30))
	return time.Duration(secs) * time.Second
}

type whatsAppChannel struct{}

func (whatsAppChannel) Send(ctx context.Context, recipient string, payload CredentialsPayload) bool {
	text := formatCredentialsMessage(payload)
	if err := tools.SendWhatsAppText(ctx, recipient, text); err != nil {
		log.Printf("entrega whatsapp para %s falhou: %v", recipient, err)
		return false
	}
	return true
}

// relayChannel repassa o payload para um relay HTTP externo (email/sms).
// Contrato: 2xx = entregue.
type relayChannel struct {
	url string
}

func (r relayChannel) Send(ctx context.Context, recipient string, payload CredentialsPayload) bool {
	if r.url == "" {
		log.Printf("relay de entrega não configurado; descartando envio para %s", recipient)
		return false
	}
	body := map[string]any{"recipient": recipient, "credentials": payload}
	if err := tools.PostJSON(ctx, r.url, body); err != nil {
		log.Printf("entrega via relay para %s falhou: %v", recipient, err)
		return false
	}
	return true
}

func formatCredentialsMessage(p CredentialsPayload) string {
	msg := fmt.Sprintf("Seu acesso %s está pronto!\nUsuário: %s\nSenha: %s\nPerfil: %s",
		p.ServiceName, p.Username, p.Password, p.Profile)
	if p.PIN != "" {
		msg += "\nPIN: " + p.PIN
	}
	if p.ExpiresAt != nil {
		msg += "\nVálido até: " + p.ExpiresAt.Format("02/01/2006")
	}
	return msg
}
