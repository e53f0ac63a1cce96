package models

import "time"

// Client representa tanto o vendedor (dono de cartões ASSIGNED antes do
// resgate) quanto o cliente final que concluiu uma ativação. A distinção é
// dada pelo papel nos cartões (VendorID / RedeemerID), não por tipo aqui.
type Client struct {
	ID       int64  `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Name     string `gorm:"not null" json:"name" form:"name"`
	Email    string `gorm:"index;default:''" json:"email" form:"email"`
	Phone    string `gorm:"index;default:''" json:"phone" form:"phone"`
	Username string `gorm:"not null;unique" json:"username" form:"username"`
	Password string `gorm:"not null" json:"password"`

	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

func (client Client) MissingFields() string {
	if client.Name == "" {
		return "name"
	}
	return ""
}
