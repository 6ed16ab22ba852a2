// internal/middleware/i18n.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/autosalvage/storefront/internal/i18n"
)

func I18nMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("lang", preferredLanguage(c.GetHeader("Accept-Language")))
		c.Next()
	}
}

// preferredLanguage picks the first supported language of an Accept-Language
// header such as "fr-FR,fr;q=0.9,en;q=0.8".
func preferredLanguage(header string) string {
	for _, tag := range strings.Split(header, ",") {
		tag = strings.TrimSpace(strings.Split(tag, ";")[0])
		base := strings.ToLower(strings.SplitN(strings.ReplaceAll(tag, "_", "-"), "-", 2)[0])
		if base != "" && i18n.IsSupported(base) {
			return base
		}
	}
	return "en"
}
