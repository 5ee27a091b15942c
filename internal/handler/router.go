package handler

import (
	"net/http"

	"hospital-medicine-api/internal/config"
	"hospital-medicine-api/internal/middleware"
	"hospital-medicine-api/internal/service"
	"hospital-medicine-api/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps are the collaborators the HTTP layer is built from
type RouterDeps struct {
	Config          *config.Config
	Logger          zerolog.Logger
	Metrics         *middleware.Metrics
	Signer          *utils.TokenSigner
	HospitalService *service.HospitalService
	AuthService     *service.AuthService
}

// NewRouter builds the gin engine with every route and middleware
func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger(deps.Logger))
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware())
	}
	r.Use(middleware.CORS(deps.Config))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "hospital-medicine-api",
		})
	})
	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	// Token issuance (HTTP Basic)
	authHandler := NewAuthHandler(deps.AuthService)
	auth := r.Group("/auth")
	auth.Use(middleware.BasicAuth(deps.AuthService))
	{
		auth.POST("/token", authHandler.Token)
	}

	// Hospital routes (bearer token)
	hospitalHandler := NewHospitalHandler(deps.HospitalService)
	hospitals := r.Group("/hospitals")
	hospitals.Use(middleware.BearerAuth(deps.Signer))
	hospitalHandler.Register(hospitals)

	return r
}
