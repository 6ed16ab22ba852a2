// internal/middleware/auth.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/autosalvage/storefront/internal/i18n"
	"github.com/autosalvage/storefront/internal/utils"
)

// AdminRequired guards the listing write endpoints. With enforce off every
// request passes, though a valid token still populates the context.
func AdminRequired(enforce bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := utils.GetLangFromContext(c)

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			if enforce {
				utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthRequired))
				return
			}
			c.Next()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			if enforce {
				utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthInvalidToken))
				return
			}
			c.Next()
			return
		}

		claims, err := utils.ValidateAdminToken(strings.TrimSpace(parts[1]))
		if err != nil {
			if enforce {
				utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthInvalidToken))
				return
			}
			c.Next()
			return
		}

		c.Set("admin", claims.Username)
		c.Next()
	}
}
