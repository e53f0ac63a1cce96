package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Erros sentinela do motor de emissão/ativação. Os handlers traduzem cada
// um para o status HTTP correspondente via RespondCoreError.
var (
	ErrCardNotFound    = errors.New("cartão não encontrado")
	ErrPlanNotFound    = errors.New("plano não encontrado")
	ErrServiceNotFound = errors.New("serviço não encontrado")
	ErrVendorNotFound  = errors.New("vendedor não encontrado")
	ErrAccountNotFound = errors.New("conta não encontrada")

	ErrCardActivated = errors.New("cartão já resgatado")
	ErrCardExpired   = errors.New("cartão expirado")
	ErrCardConsumed  = errors.New("cartão consumido")

	ErrServiceInactive = errors.New("serviço inativo")
	ErrInvalidQuantity = errors.New("quantidade deve estar entre 1 e 1000")

	ErrDeliveryFailed = errors.New("falha na entrega das credenciais")
)

// RespondCoreError responde o erro com o status HTTP adequado.
// Erros desconhecidos viram 500 sem vazar detalhe interno.
func RespondCoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrCardNotFound),
		errors.Is(err, ErrPlanNotFound),
		errors.Is(err, ErrServiceNotFound),
		errors.Is(err, ErrVendorNotFound),
		errors.Is(err, ErrAccountNotFound):
		RespondError(c, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrCardActivated), errors.Is(err, ErrCardConsumed):
		RespondError(c, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrCardExpired):
		RespondError(c, err.Error(), http.StatusForbidden)
	case errors.Is(err, ErrServiceInactive), errors.Is(err, ErrInvalidQuantity):
		RespondError(c, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrDeliveryFailed):
		RespondError(c, err.Error(), http.StatusBadGateway)
	default:
		log.Printf("erro interno: %v", err)
		RespondError(c, "erro interno", http.StatusInternalServerError)
	}
}
