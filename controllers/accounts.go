package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	dbpkg "streampass/db"
	"streampass/models"
	"streampass/tools"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

const defaultAccountPasswordLen = 8
const usernameMaxAttempts = 10

// allocateAccount cria uma conta nova com perfis conforme a política do
// serviço e devolve (conta, perfis). Roda dentro da transação do chamador:
// se a unidade do lote falhar depois, nada disso fica órfão.
//
// MaxProfiles == 0: 1 perfil "Main Profile", sem PIN, já OCCUPIED (modo
// login único). MaxProfiles > 0: min(requested, MaxProfiles) perfis com
// PIN de 4 dígitos; o primeiro fica OCCUPIED, os demais AVAILABLE.
func allocateAccount(tx *gorm.DB, service models.Service, requestedProfiles int) (models.Account, []models.Profile, error) {
	now := time.Now()
	account := models.Account{
		ServiceID:  service.ID,
		Username:   newAccountUsername(tx, service),
		Password:   tools.RandomString(getenvInt("ACCOUNT_PASSWORD_LEN", confInt(conf.Security.AccountPasswordLen, defaultAccountPasswordLen))),
		Status:     models.POOL_STATUS_OCCUPIED,
		LastUsedAt: &now,
	}
	if err := tx.Create(&account).Error; err != nil {
		return models.Account{}, nil, err
	}

	profiles, err := createProfiles(tx, service, account, requestedProfiles)
	if err != nil {
		return models.Account{}, nil, err
	}
	return account, profiles, nil
}

// importAccount é o caminho de emissão manual: mesma política de perfis,
// mas contra credenciais fornecidas pelo operador.
func importAccount(tx *gorm.DB, service models.Service, username, password string, requestedProfiles int) (models.Account, []models.Profile, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return models.Account{}, nil, fmt.Errorf("credencial manual incompleta")
	}

	now := time.Now()
	account := models.Account{
		ServiceID:  service.ID,
		Username:   username,
		Password:   password,
		Status:     models.POOL_STATUS_OCCUPIED,
		LastUsedAt: &now,
	}
	// O índice único (service_id, username) rejeita credencial repetida.
	if err := tx.Create(&account).Error; err != nil {
		return models.Account{}, nil, err
	}

	profiles, err := createProfiles(tx, service, account, requestedProfiles)
	if err != nil {
		return models.Account{}, nil, err
	}
	return account, profiles, nil
}

func createProfiles(tx *gorm.DB, service models.Service, account models.Account, requested int) ([]models.Profile, error) {
	now := time.Now()

	if service.MaxProfiles == 0 {
		profile := models.Profile{
			AccountID:  account.ID,
			Name:       "Main Profile",
			Status:     models.POOL_STATUS_OCCUPIED,
			AssignedAt: &now,
		}
		if err := tx.Create(&profile).Error; err != nil {
			return nil, err
		}
		return []models.Profile{profile}, nil
	}

	count := requested
	if count < 1 {
		count = 1
	}
	if count > service.MaxProfiles {
		count = service.MaxProfiles
	}

	profiles := make([]models.Profile, 0, count)
	for i := 0; i < count; i++ {
		profile := models.Profile{
			AccountID: account.ID,
			Name:      fmt.Sprintf("Perfil %d", i+1),
			PIN:       tools.RandomNumbers(4),
			Status:    models.POOL_STATUS_AVAILABLE,
		}
		if i == 0 {
			profile.Status = models.POOL_STATUS_OCCUPIED
			profile.AssignedAt = &now
		}
		if err := tx.Create(&profile).Error; err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}

// newAccountUsername sintetiza um username "códigodoserviço+data+sufixo"
// que ainda não existe para o serviço. O índice único cobre a corrida
// entre geradores concorrentes.
func newAccountUsername(tx *gorm.DB, service models.Service) string {
	base := strings.ToLower(service.Code) + time.Now().Format("020106")
	for attempt := 0; attempt < usernameMaxAttempts; attempt++ {
		username := base + tools.RandomLower(4)
		var count int
		if err := tx.Model(&models.Account{}).
			Where("service_id = ? AND username = ?", service.ID, username).
			Count(&count).Error; err == nil && count == 0 {
			return username
		}
	}
	// Sufixo maior torna nova colisão improvável o bastante para o índice resolver.
	return base + tools.RandomLower(10)
}

// resetAccount devolve a conta e todos os seus perfis ao pool: estado
// AVAILABLE e timestamps de atribuição limpos. Idempotente por construção.
// Não ressuscita nenhum cartão já ACTIVATED que apontava para a conta.
func resetAccount(db *gorm.DB, accountID int64) error {
	var account models.Account
	if err := db.First(&account, accountID).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return ErrAccountNotFound
		}
		return err
	}

	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	if err := tx.Model(&account).
		Updates(map[string]any{"status": models.POOL_STATUS_AVAILABLE, "last_used_at": nil}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Model(&models.Profile{}).
		Where("account_id = ?", account.ID).
		Updates(map[string]any{"status": models.POOL_STATUS_AVAILABLE, "assigned_at": nil}).Error; err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

// POST /api/accounts/:id/reset (admin)
func ResetAccount(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	if err := resetAccount(db, id); err != nil {
		RespondCoreError(c, err)
		return
	}
	RespondSuccess(c, gin.H{"status": "reset"})
}

// GET /api/accounts?service_id=&status=&page=&limit= (admin)
func GetAccounts(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	query := db.Model(&models.Account{})
	if v := c.Query("service_id"); v != "" {
		query = query.Where("service_id = ?", v)
	}
	if v := c.Query("status"); v != "" {
		query = query.Where("status = ?", v)
	}

	offset, limit := Pagination(c)

	var total int
	if err := query.Count(&total).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	var accounts []models.Account
	if err := query.Order("id asc").Offset(offset).Limit(limit).Find(&accounts).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"accounts": accounts, "total": total})
}
