package handlers

import (
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(r *gin.Engine, services *portssvc.ServiceContainer) {
	r.GET("/health", getHealth)

	setupAPIV1Routes(r, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(r *gin.Engine, services *portssvc.ServiceContainer) {
	v1 := r.Group("/api/v1")
	v1.GET("", getHome)

	registerAccountRoutes(v1, services.Account)
	registerTransactionRoutes(v1, services.Transaction)
	registerAuditRoutes(v1, services.Audit)
}
