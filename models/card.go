package models

import "time"

/************************************************
/**** MARK: CARD STATUS ****/
/************************************************/
const CARD_STATUS_GENERATED = 0
const CARD_STATUS_ASSIGNED = 1
const CARD_STATUS_ACTIVATED = 2
const CARD_STATUS_EXPIRED = 3
const CARD_STATUS_CONSUMED = 4

// Card representa um código resgatável que entrega as credenciais de um
// perfil exatamente uma vez. O ciclo de vida:
//
//	GENERATED -> ASSIGNED -> ACTIVATED (terminal)
//
// De GENERATED/ASSIGNED o cartão passa para EXPIRED na leitura, quando a
// data de expiração já passou. CONSUMED é terminal e só existe via override
// administrativo explícito, nunca pelo fluxo automático.
type Card struct {
	ID     int64  `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	PlanID int64  `gorm:"not null;index" json:"plan_id" form:"plan_id"`
	Code   string `gorm:"not null;unique" json:"code" form:"code"`
	Serie  string `gorm:"not null" json:"serie" form:"serie"`
	Lote   string `gorm:"not null;index" json:"lote" form:"lote"`

	// ProfileID vincula o cartão ao perfil que será entregue na ativação.
	// O vínculo é definido na emissão e nunca muda.
	ProfileID int64 `gorm:"not null;index" json:"profile_id"`

	// VendorID (0 = sem vendedor) e RedeemerID (0 = não resgatado) apontam
	// para Client; relações resolvidas por lookup, sem back-pointers.
	VendorID   int64 `gorm:"index;default:0" json:"vendor_id"`
	RedeemerID int64 `gorm:"default:0" json:"redeemer_id"`

	Status       int        `gorm:"not null;default:0" json:"status" form:"status"`
	ExpiresAt    *time.Time `json:"expires_at"`
	ActivatedAt  *time.Time `json:"activated_at"`
	ActivationIP string     `gorm:"default:''" json:"activation_ip"`
	CreatedAt    *time.Time `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
}

// Terminal informa se o cartão não admite mais nenhuma transição automática.
func (card Card) Terminal() bool {
	return card.Status == CARD_STATUS_ACTIVATED ||
		card.Status == CARD_STATUS_EXPIRED ||
		card.Status == CARD_STATUS_CONSUMED
}
