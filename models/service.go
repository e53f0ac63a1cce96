package models

import "time"

/************************************************
/**** MARK: SERVICE STATUS ****/
/************************************************/
const SERVICE_STATUS_ACTIVE = 0
const SERVICE_STATUS_INACTIVE = 1

// Service representa um provedor de streaming (Netflix, HBO, etc) com a
// política de capacidade de perfis por conta.
type Service struct {
	ID   int64  `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Name string `gorm:"not null;unique" json:"name" form:"name"`
	Code string `gorm:"not null;unique" json:"code" form:"code"`

	// MaxProfiles define quantos perfis cada conta comporta.
	// 0 significa modo "login único": 1 conta -> 1 perfil, sem PIN.
	MaxProfiles int `gorm:"not null;default:0" json:"max_profiles" form:"max_profiles"`

	Status    int        `gorm:"not null;default:0" json:"status" form:"status"`
	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

func (service Service) MissingFields() string {
	if service.Name == "" {
		return "name"
	} else if service.Code == "" {
		return "code"
	}
	return ""
}
