package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// getHealth godoc
// @Summary Liveness probe.
// @Tags root
// @Produce plain
// @Success 200 {string} string "OK"
// @Router /health [get]
func getHealth(ctx *gin.Context) {
	ctx.String(http.StatusOK, "OK")
}

// getHome reports the service name under the API root.
func getHome(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "Ledger Engine API v1"})
}
