package controllers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	dbpkg "streampass/db"
	"streampass/models"
	"streampass/tools"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

const defaultCardCodeLen = 12
const batchMaxQuantity = 1000

type ManualCredential struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type GenerateCardsRequest struct {
	PlanID   int64 `json:"plan_id" form:"plan_id"`
	Quantity int   `json:"quantity" form:"quantity"`
	VendorID int64 `json:"vendor_id" form:"vendor_id"`

	// Lote opcional; vazio gera "{service.code}-{timestamp}-{random}".
	Lote string `json:"lote" form:"lote"`

	// Profiles é quantos perfis criar por conta (limitado por MaxProfiles).
	Profiles int `json:"profiles" form:"profiles"`

	// Credentials dispara o caminho de emissão manual: uma credencial por
	// unidade, na ordem. Vazio usa o alocador automático.
	Credentials []ManualCredential `json:"credentials"`
}

// UnitReport é o resultado de uma unidade do lote: ou o código emitido,
// ou o erro que fez a unidade ser pulada.
type UnitReport struct {
	Seq   int    `json:"seq"`
	OK    bool   `json:"ok"`
	Code  string `json:"code,omitempty"`
	Error string `json:"error,omitempty"`
}

type BatchResult struct {
	Lote      string        `json:"lote"`
	Requested int           `json:"requested"`
	Generated int           `json:"generated"`
	Cards     []models.Card `json:"cards"`
	Report    []UnitReport  `json:"report"`
}

// GenerateBatch emite um lote de cartões. Cada unidade roda na sua própria
// transação: uma unidade que falha é logada, reportada e pulada, sem
// derrubar as demais nem deixar conta/perfil órfãos para trás. O lote como
// um todo responde sucesso; quem chama precisa olhar o report.
func GenerateBatch(db *gorm.DB, req GenerateCardsRequest) (*BatchResult, error) {
	if req.Quantity < 1 || req.Quantity > batchMaxQuantity {
		return nil, ErrInvalidQuantity
	}

	var plan models.Plan
	if err := db.First(&plan, req.PlanID).Error; err != nil {
		return nil, ErrPlanNotFound
	}
	var service models.Service
	if err := db.First(&service, plan.ServiceID).Error; err != nil {
		return nil, ErrServiceNotFound
	}
	if service.Status != models.SERVICE_STATUS_ACTIVE {
		return nil, ErrServiceInactive
	}

	var vendor models.Client
	if req.VendorID > 0 {
		if err := db.First(&vendor, req.VendorID).Error; err != nil {
			return nil, ErrVendorNotFound
		}
	}

	manual := len(req.Credentials) > 0
	if manual && len(req.Credentials) != req.Quantity {
		return nil, fmt.Errorf("%w: emissão manual exige %d credenciais", ErrInvalidQuantity, req.Quantity)
	}

	now := time.Now()
	lote := req.Lote
	if lote == "" {
		lote = fmt.Sprintf("%s-%d-%s", service.Code, now.Unix(), tools.RandomFrom(cardCodeAlphabet, 4))
	}

	codeLen := getenvInt("CARD_CODE_LEN", confInt(conf.Security.CardCodeLen, defaultCardCodeLen))
	expiresAt := now.AddDate(0, 0, plan.DurationDays)

	result := &BatchResult{
		Lote:      lote,
		Requested: req.Quantity,
		Report:    make([]UnitReport, 0, req.Quantity),
	}

	for seq := 1; seq <= req.Quantity; seq++ {
		var cred ManualCredential
		if manual {
			cred = req.Credentials[seq-1]
		}

		card, err := generateBatchUnit(db, service, plan, vendor, lote, seq, codeLen, expiresAt, req.Profiles, manual, cred)
		if err != nil {
			log.Printf("lote %s: unidade %d falhou: %v", lote, seq, err)
			result.Report = append(result.Report, UnitReport{Seq: seq, Error: err.Error()})
			continue
		}

		result.Cards = append(result.Cards, card)
		result.Generated++
		result.Report = append(result.Report, UnitReport{Seq: seq, OK: true, Code: card.Code})
	}

	return result, nil
}

// generateBatchUnit produz um cartão com sua conta e perfis, tudo ou nada.
func generateBatchUnit(db *gorm.DB, service models.Service, plan models.Plan, vendor models.Client,
	lote string, seq int, codeLen int, expiresAt time.Time, profiles int, manual bool, cred ManualCredential) (models.Card, error) {

	// Pré-checagem de unicidade fora da transação; o índice único cobre a
	// janela entre a checagem e o insert.
	code := GenerateUniqueCode(db, codeLen)

	tx := db.Begin()
	if tx.Error != nil {
		return models.Card{}, tx.Error
	}

	var (
		pool []models.Profile
		err  error
	)
	if manual {
		_, pool, err = importAccount(tx, service, cred.Username, cred.Password, profiles)
	} else {
		_, pool, err = allocateAccount(tx, service, profiles)
	}
	if err != nil {
		tx.Rollback()
		return models.Card{}, err
	}

	now := time.Now()
	card := models.Card{
		PlanID:    plan.ID,
		Code:      code,
		Serie:     fmt.Sprintf("%s-%s-%04d", service.Code, now.Format("20060102"), seq),
		Lote:      lote,
		ProfileID: pool[0].ID,
		Status:    models.CARD_STATUS_GENERATED,
		ExpiresAt: &expiresAt,
	}
	if vendor.ID > 0 {
		card.VendorID = vendor.ID
		card.Status = models.CARD_STATUS_ASSIGNED
	}

	if err := tx.Create(&card).Error; err != nil {
		tx.Rollback()
		return models.Card{}, err
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.Card{}, err
	}
	return card, nil
}

// assignVendor faz a transição em massa GENERATED -> ASSIGNED. Qualquer
// cartão já ACTIVATED/CONSUMED (ou expirado na leitura) rejeita a operação
// inteira: ou todos mudam de dono, ou nenhum.
func assignVendor(db *gorm.DB, cardIDs []int64, vendorID int64) error {
	var vendor models.Client
	if err := db.First(&vendor, vendorID).Error; err != nil {
		return ErrVendorNotFound
	}

	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	for _, id := range cardIDs {
		var card models.Card
		if err := tx.First(&card, id).Error; err != nil {
			tx.Rollback()
			return ErrCardNotFound
		}

		refreshCardStatus(tx, &card)

		switch card.Status {
		case models.CARD_STATUS_ACTIVATED:
			tx.Rollback()
			return fmt.Errorf("%w (%s)", ErrCardActivated, card.Code)
		case models.CARD_STATUS_CONSUMED:
			tx.Rollback()
			return fmt.Errorf("%w (%s)", ErrCardConsumed, card.Code)
		case models.CARD_STATUS_EXPIRED:
			tx.Rollback()
			return fmt.Errorf("%w (%s)", ErrCardExpired, card.Code)
		}

		if err := tx.Model(&card).
			Updates(map[string]any{"vendor_id": vendor.ID, "status": models.CARD_STATUS_ASSIGNED}).Error; err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit().Error
}

// refreshCardStatus aplica a expiração preguiçosa: um cartão não terminal
// vira EXPIRED na primeira leitura após a data de expiração. Não existe
// varredura em background; este é o único caminho para EXPIRED.
func refreshCardStatus(db *gorm.DB, card *models.Card) {
	if card.Terminal() {
		return
	}
	if card.ExpiresAt == nil || time.Now().Before(*card.ExpiresAt) {
		return
	}
	if err := db.Model(card).Update("status", models.CARD_STATUS_EXPIRED).Error; err != nil {
		log.Printf("cartão %s: falha ao marcar expirado: %v", card.Code, err)
		return
	}
	card.Status = models.CARD_STATUS_EXPIRED
}

// consumeCard é o override administrativo: marca o cartão CONSUMED
// (terminal) a partir de qualquer estado. Nunca acontece pelo fluxo normal.
func consumeCard(db *gorm.DB, cardID int64) (models.Card, error) {
	var card models.Card
	if err := db.First(&card, cardID).Error; err != nil {
		return models.Card{}, ErrCardNotFound
	}
	if err := db.Model(&card).Update("status", models.CARD_STATUS_CONSUMED).Error; err != nil {
		return models.Card{}, err
	}
	card.Status = models.CARD_STATUS_CONSUMED
	return card, nil
}

/************************************************
/**** MARK: HANDLERS ****/
/************************************************/

// POST /api/cards/generate (admin)
func GenerateCards(c *gin.Context) {
	var req GenerateCardsRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if req.PlanID <= 0 {
		RespondError(c, "plan_id é obrigatório", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	result, err := GenerateBatch(db, req)
	if err != nil {
		RespondCoreError(c, err)
		return
	}
	RespondSuccess(c, result)
}

type AssignVendorRequest struct {
	CardIDs  []int64 `json:"card_ids"`
	VendorID int64   `json:"vendor_id" form:"vendor_id"`
}

// POST /api/cards/assign (admin)
func AssignVendor(c *gin.Context) {
	var req AssignVendorRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if len(req.CardIDs) == 0 || req.VendorID <= 0 {
		RespondError(c, "card_ids e vendor_id são obrigatórios", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	if err := assignVendor(db, req.CardIDs, req.VendorID); err != nil {
		RespondCoreError(c, err)
		return
	}
	RespondSuccess(c, gin.H{"status": "assigned", "count": len(req.CardIDs)})
}

// GET /api/cards/:code
func GetCardByCode(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		RespondError(c, "code é obrigatório", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var card models.Card
	if err := db.Where("code = ?", code).First(&card).Error; err != nil {
		RespondCoreError(c, ErrCardNotFound)
		return
	}

	refreshCardStatus(db, &card)
	RespondSuccess(c, gin.H{"card": card})
}

// GET /api/cards?lote=&status=&vendor_id=&page=&limit= (admin)
func GetCards(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	query := db.Model(&models.Card{})
	if v := c.Query("lote"); v != "" {
		query = query.Where("lote = ?", v)
	}
	if v := c.Query("status"); v != "" {
		query = query.Where("status = ?", v)
	}
	if v := c.Query("vendor_id"); v != "" {
		query = query.Where("vendor_id = ?", v)
	}

	offset, limit := Pagination(c)

	var total int
	if err := query.Count(&total).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	var cards []models.Card
	if err := query.Order("id asc").Offset(offset).Limit(limit).Find(&cards).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	// Expiração preguiçosa sobre a página lida.
	for i := range cards {
		refreshCardStatus(db, &cards[i])
	}

	RespondSuccess(c, gin.H{"cards": cards, "total": total})
}

// PrintRow é a tupla que o renderizador externo consome para imprimir o
// lote. A ordem segue a série de emissão.
type PrintRow struct {
	Code     string `json:"code"`
	Serie    string `json:"serie"`
	Lote     string `json:"lote"`
	Username string `json:"username"`
	Password string `json:"password"`
	Profile  string `json:"profile"`
	PIN      string `json:"pin"`
}

// batchPrintRows monta as tuplas ordenadas do lote para o renderizador
// externo. Lote inexistente devolve slice vazio.
func batchPrintRows(db *gorm.DB, lote string) ([]PrintRow, error) {
	var cards []models.Card
	if err := db.Where("lote = ?", lote).Order("serie asc").Find(&cards).Error; err != nil {
		return nil, err
	}

	rows := make([]PrintRow, 0, len(cards))
	for _, card := range cards {
		var profile models.Profile
		if err := db.First(&profile, card.ProfileID).Error; err != nil {
			return nil, err
		}
		var account models.Account
		if err := db.First(&account, profile.AccountID).Error; err != nil {
			return nil, err
		}
		rows = append(rows, PrintRow{
			Code:     card.Code,
			Serie:    card.Serie,
			Lote:     card.Lote,
			Username: account.Username,
			Password: account.Password,
			Profile:  profile.Name,
			PIN:      profile.PIN,
		})
	}
	return rows, nil
}

// GET /api/lotes/:lote/print (admin)
func GetBatchPrintData(c *gin.Context) {
	lote := c.Param("lote")
	if lote == "" {
		RespondError(c, "lote é obrigatório", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	rows, err := batchPrintRows(db, lote)
	if err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	if len(rows) == 0 {
		RespondError(c, "lote não encontrado", http.StatusNotFound)
		return
	}

	RespondSuccess(c, gin.H{"lote": lote, "rows": rows})
}

// POST /api/cards/:id/consume (admin)
func ConsumeCard(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	card, err := consumeCard(db, id)
	if err != nil {
		RespondCoreError(c, err)
		return
	}
	RespondSuccess(c, gin.H{"card": card})
}
