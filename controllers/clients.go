package controllers

import (
	"net/http"
	"strings"
	"time"

	dbpkg "streampass/db"
	"streampass/models"
	"streampass/tools"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

// findOrCreateRedeemer resolve o cliente final da ativação: procura por
// email, depois por telefone; se não existir, cria com username sintetizado
// e senha aleatória. Roda na transação da ativação.
func findOrCreateRedeemer(tx *gorm.DB, name, email, phone string) (models.Client, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	phone = strings.TrimSpace(phone)

	var client models.Client
	if email != "" {
		if err := tx.Where("email = ?", email).First(&client).Error; err == nil {
			return client, nil
		} else if !gorm.IsRecordNotFoundError(err) {
			return models.Client{}, err
		}
	}
	if phone != "" {
		if err := tx.Where("phone = ?", phone).First(&client).Error; err == nil {
			return client, nil
		} else if !gorm.IsRecordNotFoundError(err) {
			return models.Client{}, err
		}
	}

	if name == "" {
		name = "Cliente"
	}
	client = models.Client{
		Name:     name,
		Email:    email,
		Phone:    phone,
		Username: "cli" + time.Now().Format("020106") + tools.RandomLower(6),
		Password: tools.RandomString(8),
	}
	if err := tx.Create(&client).Error; err != nil {
		return models.Client{}, err
	}
	return client, nil
}

// POST /api/clients (admin) — cadastro de vendedor/cliente.
func CreateClient(c *gin.Context) {
	var client models.Client
	if err := c.Bind(&client); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if missing := client.MissingFields(); missing != "" {
		RespondError(c, missing+" é obrigatório", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	if client.Username == "" {
		client.Username = "cli" + time.Now().Format("020106") + tools.RandomLower(6)
	}
	if client.Password == "" {
		client.Password = tools.RandomString(8)
	}

	if err := db.Create(&client).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"client": client})
}

// GET /api/clients (admin)
func GetClients(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	offset, limit := Pagination(c)

	var clients []models.Client
	if err := db.Order("id asc").Offset(offset).Limit(limit).Find(&clients).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"clients": clients})
}
