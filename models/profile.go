package models

import "time"

// Profile representa um "assento" dentro de uma conta. Em serviços com
// MaxProfiles > 0 cada perfil tem um PIN de 4 dígitos; no modo login único
// existe um único perfil sem PIN.
type Profile struct {
	ID        int64  `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	AccountID int64  `gorm:"not null;index" json:"account_id" form:"account_id"`
	Name      string `gorm:"not null" json:"name" form:"name"`
	PIN       string `gorm:"column:pin;default:''" json:"pin" form:"pin"`

	Status     int        `gorm:"not null;default:0" json:"status" form:"status"`
	AssignedAt *time.Time `json:"assigned_at"`
	CreatedAt  *time.Time `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at"`
}
