package models

import "time"

/************************************************
/**** MARK: DELIVERY CHANNELS ****/
/************************************************/
const CHANNEL_EMAIL = "EMAIL"
const CHANNEL_WHATSAPP = "WHATSAPP"
const CHANNEL_SMS = "SMS"

// Activation é o registro imutável de uma tentativa de resgate. As quatro
// credenciais são um snapshot do momento da tentativa: um reset posterior
// da conta não altera o que foi entregue.
type Activation struct {
	ID     int64  `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Token  string `gorm:"not null;unique" json:"token"`
	CardID int64  `gorm:"not null;index" json:"card_id"`

	Username    string `gorm:"not null" json:"username"`
	Password    string `gorm:"not null" json:"password"`
	ProfileName string `gorm:"not null" json:"profile_name"`
	PIN         string `gorm:"column:pin;default:''" json:"pin"`

	Channel   string `gorm:"not null" json:"channel"`
	Recipient string `gorm:"not null" json:"recipient"`
	IP        string `gorm:"default:''" json:"ip"`
	Device    string `gorm:"default:''" json:"device"`
	Browser   string `gorm:"default:''" json:"browser"`

	Delivered   bool       `gorm:"not null;default:false" json:"delivered"`
	ConfirmedAt *time.Time `json:"confirmed_at"`
	CreatedAt   *time.Time `json:"created_at"`
}
