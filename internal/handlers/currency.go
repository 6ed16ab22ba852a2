// internal/handlers/currency.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/autosalvage/storefront/internal/currency"
)

// GET /api/currencies
func GetCurrencies(c *gin.Context) {
	c.JSON(http.StatusOK, currency.Supported)
}
