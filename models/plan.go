package models

import "time"

// Plan representa uma oferta comercial de um serviço: duração e preços.
type Plan struct {
	ID        int64  `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	ServiceID int64  `gorm:"not null;unique_index:idx_plan_service_name" json:"service_id" form:"service_id"`
	Name      string `gorm:"not null;unique_index:idx_plan_service_name" json:"name" form:"name"`

	// DurationDays define a validade dos cartões emitidos neste plano.
	DurationDays int `gorm:"not null;default:30" json:"duration_days" form:"duration_days"`

	PurchasePriceCents int64      `gorm:"not null;default:0" json:"purchase_price_cents" form:"purchase_price_cents"`
	SalePriceCents     int64      `gorm:"not null;default:0" json:"sale_price_cents" form:"sale_price_cents"`
	Currency           string     `gorm:"not null;default:'BRL'" json:"currency" form:"currency"`
	IsActive           bool       `gorm:"not null;default:true" json:"is_active" form:"is_active"`
	CreatedAt          *time.Time `json:"created_at"`
	UpdatedAt          *time.Time `json:"updated_at"`
}

func (plan Plan) MissingFields() string {
	if plan.ServiceID == 0 {
		return "service_id"
	} else if plan.Name == "" {
		return "name"
	} else if plan.DurationDays <= 0 {
		return "duration_days"
	}
	return ""
}
