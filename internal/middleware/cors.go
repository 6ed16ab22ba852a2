// internal/middleware/cors.go
package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/autosalvage/storefront/internal/config"
	"github.com/autosalvage/storefront/internal/metrics"
	"github.com/autosalvage/storefront/internal/utils"
)

// CORS rejects requests whose Origin is not allowed before any handler runs.
// Requests without an Origin header, such as curl or server-to-server calls,
// always pass.
func CORS(cfg config.CORSConfig) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(cfg.AllowedOrigins))
	for _, origin := range cfg.AllowedOrigins {
		allowed[origin] = struct{}{}
	}

	allowOrigin := func(origin string) bool {
		if cfg.AllowAllOrigins {
			return true
		}
		_, ok := allowed[origin]
		return ok
	}

	corsHandler := cors.New(cors.Config{
		// Credentials are allowed, so the origin is echoed rather than "*".
		AllowOriginFunc:  allowOrigin,
		AllowMethods:     []string{"GET", "HEAD", "PUT", "PATCH", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Requested-With", "Accept-Language"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && !allowOrigin(origin) {
			metrics.BlockedOrigins.Inc()
			logrus.WithFields(logrus.Fields{
				"origin":     origin,
				"method":     c.Request.Method,
				"path":       c.Request.URL.Path,
				"request_id": utils.GetRequestIDFromContext(c),
			}).Warn("Blocked CORS request")
			utils.ForbiddenResponse(c, "")
			return
		}
		corsHandler(c)
	}
}
