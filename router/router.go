package router

import (
	"log"

	"streampass/config"
	"streampass/controllers"
	"streampass/middleware"

	"github.com/gin-gonic/gin"
)

// Initialize amarra rotas e middlewares: público -> autenticado -> admin.
func Initialize(r *gin.Engine, cfg config.Configuration) {
	_ = cfg

	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())

	api := r.Group("/api")

	// Público (sem auth)
	api.POST("/users", Logger(), controllers.CreateUser)
	api.POST("/login", Logger(), controllers.Login)

	// Resgate pelo consumidor final: só o código na mão, sem conta.
	api.POST("/activate", Logger(), controllers.Activate)
	api.GET("/cards/:code", Logger(), controllers.GetCardByCode)

	// Autenticado (token)
	auth := api.Group("")
	auth.Use(controllers.AuthRequired())
	auth.Use(Authorizer())

	auth.GET("/me", Logger(), controllers.Me)
	auth.GET("/services", Logger(), controllers.GetServices)
	auth.GET("/services/:id", Logger(), controllers.GetServiceByID)
	auth.GET("/plans", Logger(), controllers.GetPlans)
	auth.GET("/plans/:id", Logger(), controllers.GetPlanByID)
	auth.POST("/cards/activate", Logger(), controllers.ActivateByVendor)

	// Admin
	admin := auth.Group("")
	admin.Use(Adminizer())

	admin.POST("/services", Logger(), controllers.CreateService)
	admin.PUT("/services/:id", Logger(), controllers.UpdateService)

	admin.POST("/plans", Logger(), controllers.CreatePlan)
	admin.PUT("/plans/:id", Logger(), controllers.UpdatePlan)

	admin.POST("/cards/generate", Logger(), controllers.GenerateCards)
	admin.POST("/cards/assign", Logger(), controllers.AssignVendor)
	admin.POST("/cards/:id/consume", Logger(), controllers.ConsumeCard)
	admin.GET("/cards", Logger(), controllers.GetCards)
	admin.GET("/lotes/:lote/print", Logger(), controllers.GetBatchPrintData)

	admin.GET("/accounts", Logger(), controllers.GetAccounts)
	admin.POST("/accounts/:id/reset", Logger(), controllers.ResetAccount)

	admin.POST("/clients", Logger(), controllers.CreateClient)
	admin.GET("/clients", Logger(), controllers.GetClients)

	log.Printf("Routes initialized")
}
