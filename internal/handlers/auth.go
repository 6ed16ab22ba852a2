// internal/handlers/auth.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/autosalvage/storefront/internal/i18n"
	"github.com/autosalvage/storefront/internal/metrics"
	"github.com/autosalvage/storefront/internal/services"
	"github.com/autosalvage/storefront/internal/utils"
)

type AuthService interface {
	Login(req *services.LoginRequest) (*services.AuthResponse, error)
}

type AuthHandler struct {
	authService AuthService
}

func NewAuthHandler(authService AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// POST /api/login
func (h *AuthHandler) Login(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	authResponse, err := h.authService.Login(&req)
	if errors.Is(err, services.ErrInvalidCredentials) {
		metrics.LoginAttempts.WithLabelValues("rejected").Inc()
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": i18n.T(lang, i18n.KeyAuthInvalidCredentials),
		})
		return
	}
	if err != nil {
		logError(c, err, "Login failed")
		utils.InternalErrorResponse(c)
		return
	}

	metrics.LoginAttempts.WithLabelValues("accepted").Inc()
	c.JSON(http.StatusOK, authResponse)
}
