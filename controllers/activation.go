package controllers

import (
	"context"
	"net/http"
	"time"

	dbpkg "streampass/db"
	"streampass/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

type ActivateRequest struct {
	Code      string `json:"code" form:"code"`
	Channel   string `json:"channel" form:"channel"`
	Recipient string `json:"recipient" form:"recipient"`

	// Dados do cliente final (só o fluxo de consumidor usa).
	Name  string `json:"name" form:"name"`
	Email string `json:"email" form:"email"`
	Phone string `json:"phone" form:"phone"`

	// Metadados de quem pediu o resgate.
	IP      string `json:"-"`
	Device  string `json:"device" form:"device"`
	Browser string `json:"browser" form:"browser"`

	// ResolveRedeemer liga o passo de resolver/criar o Client final.
	ResolveRedeemer bool `json:"-"`
}

type ActivationResult struct {
	Activation  models.Activation  `json:"activation"`
	Card        models.Card        `json:"card"`
	Credentials CredentialsPayload `json:"credentials"`
}

// ActivateCard resgata um código exatamente uma vez.
//
// A leitura/validação e o commit ficam na mesma transação, e a transição
// para ACTIVATED é um UPDATE condicionado ao estado não terminal com
// checagem de RowsAffected: duas ativações simultâneas do mesmo código
// nunca confirmam as duas. O "claim" (um write na linha do cartão antes da
// entrega) serializa concorrentes no lock de linha do banco.
//
// O cartão só vira ACTIVATED depois do canal confirmar a entrega. Falha ou
// timeout de entrega persiste a Activation com delivered=false e deixa o
// cartão como estava, pronto para retry.
func ActivateCard(db *gorm.DB, channel DeliveryChannel, timeout time.Duration, req ActivateRequest) (*ActivationResult, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	var card models.Card
	if err := tx.Where("code = ?", req.Code).First(&card).Error; err != nil {
		tx.Rollback()
		if gorm.IsRecordNotFoundError(err) {
			return nil, ErrCardNotFound
		}
		return nil, err
	}

	switch card.Status {
	case models.CARD_STATUS_ACTIVATED:
		tx.Rollback()
		return nil, ErrCardActivated
	case models.CARD_STATUS_CONSUMED:
		tx.Rollback()
		return nil, ErrCardConsumed
	case models.CARD_STATUS_EXPIRED:
		tx.Rollback()
		return nil, ErrCardExpired
	}

	// Expiração preguiçosa: marca EXPIRED, persiste e falha.
	if card.ExpiresAt != nil && time.Now().After(*card.ExpiresAt) {
		if err := tx.Model(&card).Update("status", models.CARD_STATUS_EXPIRED).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		if err := tx.Commit().Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		return nil, ErrCardExpired
	}

	// Claim: o primeiro write na linha segura o lock até o commit. Se outra
	// ativação confirmou entre o SELECT e aqui, RowsAffected vem 0.
	claim := tx.Model(&models.Card{}).
		Where("id = ? AND status IN (?)", card.ID, []int{models.CARD_STATUS_GENERATED, models.CARD_STATUS_ASSIGNED}).
		Update("updated_at", time.Now())
	if claim.Error != nil {
		tx.Rollback()
		return nil, claim.Error
	}
	if claim.RowsAffected != 1 {
		tx.Rollback()
		return nil, ErrCardActivated
	}

	// Resolve o grafo cartão -> perfil -> conta -> plano -> serviço.
	var profile models.Profile
	if err := tx.First(&profile, card.ProfileID).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	var account models.Account
	if err := tx.First(&account, profile.AccountID).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	var plan models.Plan
	if err := tx.First(&plan, card.PlanID).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	var service models.Service
	if err := tx.First(&service, plan.ServiceID).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	var redeemer models.Client
	if req.ResolveRedeemer {
		var err error
		redeemer, err = findOrCreateRedeemer(tx, req.Name, req.Email, req.Phone)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	payload := CredentialsPayload{
		ServiceName: service.Name,
		Code:        card.Code,
		Username:    account.Username,
		Password:    account.Password,
		Profile:     profile.Name,
		PIN:         profile.PIN,
		ExpiresAt:   card.ExpiresAt,
	}

	// Snapshot imutável da tentativa; o delivered é decidido a seguir.
	activation := models.Activation{
		Token:       uuid.New().String(),
		CardID:      card.ID,
		Username:    account.Username,
		Password:    account.Password,
		ProfileName: profile.Name,
		PIN:         profile.PIN,
		Channel:     req.Channel,
		Recipient:   req.Recipient,
		IP:          req.IP,
		Device:      req.Device,
		Browser:     req.Browser,
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	delivered := channel.Send(ctx, req.Recipient, payload)
	cancel()

	if !delivered {
		// Descarta claim (e redeemer criado) e registra a tentativa falha.
		// O cartão continua resgatável.
		tx.Rollback()
		if err := db.Create(&activation).Error; err != nil {
			return nil, err
		}
		return nil, ErrDeliveryFailed
	}

	now := time.Now()
	commit := tx.Model(&models.Card{}).
		Where("id = ? AND status IN (?)", card.ID, []int{models.CARD_STATUS_GENERATED, models.CARD_STATUS_ASSIGNED}).
		Updates(map[string]any{
			"status":        models.CARD_STATUS_ACTIVATED,
			"activated_at":  &now,
			"activation_ip": req.IP,
			"redeemer_id":   redeemer.ID,
		})
	if commit.Error != nil {
		tx.Rollback()
		return nil, commit.Error
	}
	if commit.RowsAffected != 1 {
		tx.Rollback()
		return nil, ErrCardActivated
	}

	activation.Delivered = true
	activation.ConfirmedAt = &now
	if err := tx.Create(&activation).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	card.Status = models.CARD_STATUS_ACTIVATED
	card.ActivatedAt = &now
	card.ActivationIP = req.IP
	card.RedeemerID = redeemer.ID

	return &ActivationResult{Activation: activation, Card: card, Credentials: payload}, nil
}

/************************************************
/**** MARK: HANDLERS ****/
/************************************************/

// POST /api/activate — resgate pelo consumidor final (público).
// Resolve/cria o Client final por email ou telefone.
func Activate(c *gin.Context) {
	activateHandler(c, true)
}

// POST /api/cards/activate — resgate operado pelo painel (autenticado),
// sem criar cliente final.
func ActivateByVendor(c *gin.Context) {
	activateHandler(c, false)
}

func activateHandler(c *gin.Context, resolveRedeemer bool) {
	var req ActivateRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Code == "" {
		RespondError(c, "code é obrigatório", http.StatusBadRequest)
		return
	}
	if req.Recipient == "" {
		RespondError(c, "recipient é obrigatório", http.StatusBadRequest)
		return
	}

	channel, ok := ChannelFor(req.Channel)
	if !ok {
		RespondError(c, "channel inválido", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	req.IP = c.ClientIP()
	if req.Device == "" {
		req.Device = c.GetHeader("User-Agent")
	}
	req.ResolveRedeemer = resolveRedeemer

	result, err := ActivateCard(db, channel, DeliveryTimeout(), req)
	if err != nil {
		RespondCoreError(c, err)
		return
	}
	RespondSuccess(c, result)
}
