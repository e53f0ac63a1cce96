package models

import "time"

/************************************************
/**** MARK: POOL STATUS (Account e Profile) ****/
/************************************************/
const POOL_STATUS_AVAILABLE = 0
const POOL_STATUS_OCCUPIED = 1

// Account representa uma credencial de login compartilhada do serviço.
// Username e password são sempre gerados (ou importados via emissão manual),
// nunca escolhidos pelo cliente final.
type Account struct {
	ID        int64  `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	ServiceID int64  `gorm:"not null;unique_index:idx_account_service_username" json:"service_id" form:"service_id"`
	Username  string `gorm:"not null;unique_index:idx_account_service_username" json:"username" form:"username"`
	Password  string `gorm:"not null" json:"password" form:"password"`

	Status     int        `gorm:"not null;default:0" json:"status" form:"status"`
	LastUsedAt *time.Time `json:"last_used_at"`
	CreatedAt  *time.Time `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at"`
}
