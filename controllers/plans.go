package controllers

import (
	"net/http"

	dbpkg "streampass/db"
	"streampass/models"

	"github.com/gin-gonic/gin"
)

// GET /api/plans?service_id=
func GetPlans(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	query := db.Model(&models.Plan{})
	if v := c.Query("service_id"); v != "" {
		query = query.Where("service_id = ?", v)
	}

	var plans []models.Plan
	if err := query.Order("id asc").Find(&plans).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"plans": plans})
}

// GET /api/plans/:id
func GetPlanByID(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var plan models.Plan
	if err := db.First(&plan, id).Error; err != nil {
		RespondCoreError(c, ErrPlanNotFound)
		return
	}
	RespondSuccess(c, gin.H{"plan": plan})
}

// POST /api/plans (admin)
func CreatePlan(c *gin.Context) {
	var plan models.Plan
	if err := c.Bind(&plan); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if missing := plan.MissingFields(); missing != "" {
		RespondError(c, missing+" é obrigatório", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	// O plano precisa apontar para um serviço existente.
	if err := db.First(&models.Service{}, plan.ServiceID).Error; err != nil {
		RespondCoreError(c, ErrServiceNotFound)
		return
	}

	if err := db.Create(&plan).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"plan": plan})
}

// PUT /api/plans/:id (admin)
func UpdatePlan(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	var body models.Plan
	if err := c.Bind(&body); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var plan models.Plan
	if err := db.First(&plan, id).Error; err != nil {
		RespondCoreError(c, ErrPlanNotFound)
		return
	}

	if body.Name != "" {
		plan.Name = body.Name
	}
	if body.DurationDays > 0 {
		plan.DurationDays = body.DurationDays
	}
	if body.PurchasePriceCents >= 0 {
		plan.PurchasePriceCents = body.PurchasePriceCents
	}
	if body.SalePriceCents >= 0 {
		plan.SalePriceCents = body.SalePriceCents
	}
	if body.Currency != "" {
		plan.Currency = body.Currency
	}
	plan.IsActive = body.IsActive

	if err := db.Save(&plan).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"plan": plan})
}
