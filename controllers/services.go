package controllers

import (
	"net/http"

	dbpkg "streampass/db"
	"streampass/models"

	"github.com/gin-gonic/gin"
)

// GET /api/services
func GetServices(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var services []models.Service
	if err := db.Order("id asc").Find(&services).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"services": services})
}

// GET /api/services/:id
func GetServiceByID(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var service models.Service
	if err := db.First(&service, id).Error; err != nil {
		RespondCoreError(c, ErrServiceNotFound)
		return
	}
	RespondSuccess(c, gin.H{"service": service})
}

// POST /api/services (admin)
func CreateService(c *gin.Context) {
	var service models.Service
	if err := c.Bind(&service); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if missing := service.MissingFields(); missing != "" {
		RespondError(c, missing+" é obrigatório", http.StatusBadRequest)
		return
	}
	if service.MaxProfiles < 0 {
		RespondError(c, "max_profiles inválido", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	if err := db.Create(&service).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"service": service})
}

// PUT /api/services/:id (admin)
func UpdateService(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	var body models.Service
	if err := c.Bind(&body); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var service models.Service
	if err := db.First(&service, id).Error; err != nil {
		RespondCoreError(c, ErrServiceNotFound)
		return
	}

	if body.Name != "" {
		service.Name = body.Name
	}
	if body.Code != "" {
		service.Code = body.Code
	}
	if body.MaxProfiles >= 0 {
		service.MaxProfiles = body.MaxProfiles
	}
	service.Status = body.Status

	if err := db.Save(&service).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"service": service})
}
