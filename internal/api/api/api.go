package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/wb-go/wbf/ginext"

	"confreg/cmd/middleware"
	"confreg/internal/service"
)

type Routers struct {
	Service     service.Service
	CORSOrigins []string
}

func NewRouters(r *Routers) *ginext.Engine {
	app := ginext.New("release")

	app.Use(middleware.LoggingMiddleware())
	app.Use(corsMiddleware(r.CORSOrigins))

	apiGroup := app.Group("/api")

	apiGroup.GET("/", r.Service.Root)
	apiGroup.GET("/health", r.Service.Health)
	apiGroup.GET("/pricing", r.Service.GetPricing)

	apiGroup.POST("/registration", r.Service.CreateRegistration)
	apiGroup.GET("/registration/:id", r.Service.GetRegistration)
	apiGroup.GET("/registrations", r.Service.ListRegistrations)

	apiGroup.POST("/create-order", r.Service.CreateOrder)
	apiGroup.POST("/verify-payment", r.Service.VerifyPayment)

	apiGroup.POST("/contact", r.Service.SubmitContact)
	apiGroup.GET("/contacts", r.Service.ListContacts)

	return app
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	if len(origins) == 0 {
		return cors.Default()
	}

	cfg := cors.DefaultConfig()
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cors.New(cfg)
}
